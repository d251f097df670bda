package pathfinding

import (
	"fmt"
	"strings"
)

// Padding is the number of tiles reserved around the composed wagons,
// agents path through it when walking along the outside of the train.
type Padding struct {
	Top, Bottom, Left, Right int
}

type Cell struct {
	X, Y int
}

// Path is a sequence of cells, the first one is where the search started.
type Path []Cell

// Grid is a walkability map indexed Cells[x][y].
type Grid struct {
	Cells   [][]bool
	Padding Padding
}

func NewGrid(width, height int, walkable bool, padding Padding) Grid {
	cells := make([][]bool, 0, width)
	for x := 0; x < width; x++ {
		column := make([]bool, height)
		if walkable {
			for y := range column {
				column[y] = true
			}
		}
		cells = append(cells, column)
	}
	return Grid{Cells: cells, Padding: padding}
}

func (g Grid) Width() int {
	return len(g.Cells)
}

func (g Grid) Height() int {
	if len(g.Cells) == 0 {
		return 0
	}
	return len(g.Cells[0])
}

func (g Grid) InBounds(c Cell) bool {
	return c.X >= 0 && c.Y >= 0 && c.X < g.Width() && c.Y < g.Height()
}

// IsWalkable must only be called for cells inside the grid.
func (g Grid) IsWalkable(x, y int) bool {
	if x < 0 || y < 0 || x >= g.Width() || y >= g.Height() {
		panic(fmt.Sprintf("pathfinding: cell (%d,%d) outside %dx%d grid", x, y, g.Width(), g.Height()))
	}
	return g.Cells[x][y]
}

func (g Grid) set(c Cell, walkable bool) {
	g.Cells[c.X][c.Y] = walkable
}

// Clone returns a grid that shares no memory with g.
func (g Grid) Clone() Grid {
	cells := make([][]bool, len(g.Cells))
	for x, column := range g.Cells {
		cells[x] = append([]bool(nil), column...)
	}
	return Grid{Cells: cells, Padding: g.Padding}
}

// String draws the grid row by row, '.' walkable and '#' blocked.
func (g Grid) String() string {
	var b strings.Builder
	for y := 0; y < g.Height(); y++ {
		for x := 0; x < g.Width(); x++ {
			if g.Cells[x][y] {
				b.WriteByte('.')
			} else {
				b.WriteByte('#')
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}
