package pathfinding

import (
	"strings"

	"github.com/zucenko/trainrun/model"
	"github.com/zyedidia/generic/mapset"
)

// Grids are the three views of one train composition.
type Grids struct {
	// every cell walkable, used to measure how far doors are
	All Grid
	// wagon floors
	Inside Grid
	// complement of Inside, linked to it at doors
	Outside Grid
	// door pairs, [0] the door cell and [1] the wagon cell behind it
	Doors [][2]Cell
	// every cell of Doors, both views may be walkable there
	DoorCells mapset.Set[Cell]
	// composed size in tiles without padding
	Cols, Rows int
}

// Compose builds the grids from the wagons, index 0 being the rightmost wagon.
// Neighbouring wagons share one column.
func Compose(wagons []*model.Wagon, pad Padding) *Grids {
	cols, rows := 0, 0
	for _, w := range wagons {
		cols += w.Cols() - 1
		if w.Rows() > rows {
			rows = w.Rows()
		}
	}
	cols++

	width := cols + pad.Left + pad.Right
	height := rows + pad.Top + pad.Bottom
	grids := &Grids{
		All:       NewGrid(width, height, true, pad),
		Inside:    NewGrid(width, height, false, pad),
		DoorCells: mapset.New[Cell](),
		Cols:      cols,
		Rows:      rows,
	}

	offset := 0
	for i := len(wagons) - 1; i >= 0; i-- {
		w := wagons[i]
		top := (rows - w.Rows()) / 2
		for r, line := range w.Tiles {
			for c := range line {
				tile := &line[c]
				inner := Cell{pad.Left + offset + c, pad.Top + top + r}
				grids.Inside.set(inner, !tile.Solid)
				if tile.IsDoor() {
					dx, dy := tile.Facing.Step()
					behind := Cell{inner.X - dx, inner.Y - dy}
					grids.Doors = append(grids.Doors, [2]Cell{inner, behind})
				}
			}
		}
		offset += w.Cols() - 1
	}

	grids.Outside = grids.Inside.Clone()
	for x := range grids.Outside.Cells {
		for y := range grids.Outside.Cells[x] {
			grids.Outside.Cells[x][y] = !grids.Outside.Cells[x][y]
		}
	}

	for _, door := range grids.Doors {
		grids.DoorCells.Put(door[0])
		grids.DoorCells.Put(door[1])
		grids.Outside.set(door[0], true)
		if grids.Inside.Cells[door[0].X][door[0].Y] {
			grids.Outside.set(door[1], true)
		}
	}
	return grids
}

// For picks the view an agent walks on.
func (g *Grids) For(inside bool) Grid {
	if inside {
		return g.Inside
	}
	return g.Outside
}

// Render draws view like Grid.String but marks door linked cells, '+' when
// walkable and 'x' when blocked.
func (g *Grids) Render(view Grid) string {
	var b strings.Builder
	for y := 0; y < view.Height(); y++ {
		for x := 0; x < view.Width(); x++ {
			walkable := view.Cells[x][y]
			switch {
			case g.DoorCells.Has(Cell{x, y}) && walkable:
				b.WriteByte('+')
			case g.DoorCells.Has(Cell{x, y}):
				b.WriteByte('x')
			case walkable:
				b.WriteByte('.')
			default:
				b.WriteByte('#')
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}
