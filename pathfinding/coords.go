package pathfinding

import (
	"math"

	"github.com/zucenko/trainrun/model"
)

// cellZero is the world position of the top left corner of cell (0,0).
// origin is where the train itself starts, the padding lies before it.
func cellZero(origin model.Vec, pad Padding) model.Vec {
	return model.Vec{
		X: origin.X - float64(pad.Left*model.TileWidth),
		Y: origin.Y - float64(pad.Top*model.TileHeight),
	}
}

func WorldToCell(p, origin model.Vec, pad Padding) Cell {
	zero := cellZero(origin, pad)
	return Cell{
		X: int(math.Floor((p.X - zero.X) / model.TileWidth)),
		Y: int(math.Floor((p.Y - zero.Y) / model.TileHeight)),
	}
}

// CellToWorld returns the centre of the cell.
func CellToWorld(c Cell, origin model.Vec, pad Padding) model.Vec {
	zero := cellZero(origin, pad)
	return model.Vec{
		X: zero.X + float64(c.X*model.TileWidth) + model.TileWidth/2,
		Y: zero.Y + float64(c.Y*model.TileHeight) + model.TileHeight/2,
	}
}

// Waypoints converts a path into tile centres, skipping the start cell the
// agent already stands on.
func Waypoints(path Path, origin model.Vec, pad Padding) []model.Vec {
	if len(path) < 2 {
		return nil
	}
	steps := make([]model.Vec, 0, len(path)-1)
	for _, c := range path[1:] {
		steps = append(steps, CellToWorld(c, origin, pad))
	}
	return steps
}

// FindPath translates world positions to cells and searches g.
func FindPath(g Grid, origin, from, to model.Vec) (Path, bool) {
	start := WorldToCell(from, origin, g.Padding)
	end := WorldToCell(to, origin, g.Padding)
	return Search(g, start, end)
}

// StepsTo counts the moves between two world positions, false when there is no
// path or from lies outside the grid.
func StepsTo(g Grid, origin, from, to model.Vec) (int, bool) {
	if !g.InBounds(WorldToCell(from, origin, g.Padding)) {
		return 0, false
	}
	path, ok := FindPath(g, origin, from, to)
	if !ok {
		return 0, false
	}
	return len(path) - 1, true
}
