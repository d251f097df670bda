package model

import (
	"errors"
	"fmt"
)

var (
	ErrEvenHeight = errors.New("wagon interior height needs to be an odd number")
	ErrNotWall    = errors.New("doors can only replace a non corner wall tile")
	ErrNotDoor    = errors.New("tile is not a door")
)

// NewWagon creates a wagon with a width x height interior surrounded by walls,
// its top left corner placed at (0,0).
func NewWagon(width, height int) (*Wagon, error) {
	if height%2 == 0 {
		return nil, fmt.Errorf("%w: got %d", ErrEvenHeight, height)
	}
	if width < 1 || height < 1 {
		return nil, fmt.Errorf("wagon interior %dx%d is empty", width, height)
	}
	rows, cols := height+2, width+2
	inner := float64(TileWidth - WallStrip)
	innerY := float64(TileHeight - WallStrip)

	tiles := make([][]Tile, 0, rows)
	for r := 0; r < rows; r++ {
		row := make([]Tile, 0, cols)
		for c := 0; c < cols; c++ {
			tile := Tile{
				Pos:   Vec{float64(c * TileWidth), float64(r * TileHeight)},
				Solid: true,
			}
			switch {
			case r == 0 && c == 0:
				tile.Bounds = []Rect{{inner, innerY, WallStrip, WallStrip}}
			case r == rows-1 && c == 0:
				tile.Bounds = []Rect{{inner, 0, WallStrip, WallStrip}}
			case r == 0 && c == cols-1:
				tile.Bounds = []Rect{{0, innerY, WallStrip, WallStrip}}
			case r == rows-1 && c == cols-1:
				tile.Bounds = []Rect{{0, 0, WallStrip, WallStrip}}
			case c == 0:
				tile.Bounds = []Rect{{inner, 0, WallStrip, TileHeight}}
			case c == cols-1:
				tile.Bounds = []Rect{{0, 0, WallStrip, TileHeight}}
			case r == 0:
				tile.Bounds = []Rect{{0, innerY, TileWidth, WallStrip}}
			case r == rows-1:
				tile.Bounds = []Rect{{0, 0, TileWidth, WallStrip}}
			default:
				tile.Solid = false
			}
			row = append(row, tile)
		}
		tiles = append(tiles, row)
	}
	return &Wagon{Tiles: tiles}, nil
}

// Origin is the world position of the top left tile.
func (w *Wagon) Origin() Vec {
	return w.Tiles[0][0].Pos
}

func (w *Wagon) Move(d Vec) {
	for r := range w.Tiles {
		for c := range w.Tiles[r] {
			w.Tiles[r][c].Pos = w.Tiles[r][c].Pos.Add(d)
		}
	}
}

func (w *Wagon) SetPosition(p Vec) {
	w.Move(p.Sub(w.Origin()))
}

func (w *Wagon) isBorder(row, col int) bool {
	return row == 0 || col == 0 || row == w.Rows()-1 || col == w.Cols()-1
}

func (w *Wagon) isCorner(row, col int) bool {
	return (row == 0 || row == w.Rows()-1) && (col == 0 || col == w.Cols()-1)
}

// Connect attaches other to the left side of w. The middle tile of w's left wall
// opens up and other is moved so its right wall overlaps w's left wall.
func (w *Wagon) Connect(other *Wagon) {
	half := w.Rows() / 2
	otherHalf := other.Rows() / 2
	otherLast := other.Cols() - 1

	w.Tiles[half-1][0].Bounds = withConnector(w.Tiles[half-1][0].Bounds,
		Rect{0, TileHeight - WallStrip, TileWidth, WallStrip})
	w.Tiles[half][0].Solid = false
	w.Tiles[half][0].Kind = Plain
	w.Tiles[half][0].Bounds = nil
	w.Tiles[half+1][0].Bounds = withConnector(w.Tiles[half+1][0].Bounds,
		Rect{0, 0, TileWidth, WallStrip})

	shared := &other.Tiles[otherHalf][otherLast]
	shared.Solid = true
	shared.Kind = Plain
	shared.Bounds = nil

	origin := w.Origin()
	other.SetPosition(Vec{
		origin.X - float64(otherLast*TileWidth),
		origin.Y + float64((half-otherHalf)*TileHeight),
	})
}

// withConnector keeps the wall strip and puts the connector strip second.
func withConnector(bounds []Rect, strip Rect) []Rect {
	if len(bounds) > 1 {
		bounds = bounds[:1]
	}
	return append(append([]Rect(nil), bounds...), strip)
}

// PlaceDoor turns a wall tile into a door facing away from the wagon.
func (w *Wagon) PlaceDoor(row, col int, open bool) error {
	if row < 0 || col < 0 || row >= w.Rows() || col >= w.Cols() ||
		!w.isBorder(row, col) || w.isCorner(row, col) {
		return fmt.Errorf("%w: (%d,%d)", ErrNotWall, row, col)
	}
	tile := &w.Tiles[row][col]
	switch {
	case row == 0:
		tile.Facing = North
	case row == w.Rows()-1:
		tile.Facing = South
	case col == 0:
		tile.Facing = West
	default:
		tile.Facing = East
	}
	tile.Kind = Door
	tile.Solid = !open
	return nil
}

// ToggleDoor flips the door solidity and reports whether it is open now.
func (w *Wagon) ToggleDoor(row, col int) (bool, error) {
	if row < 0 || col < 0 || row >= w.Rows() || col >= w.Cols() {
		return false, fmt.Errorf("%w: (%d,%d) outside wagon", ErrNotDoor, row, col)
	}
	tile := &w.Tiles[row][col]
	if !tile.IsDoor() {
		return false, fmt.Errorf("%w: (%d,%d)", ErrNotDoor, row, col)
	}
	tile.Solid = !tile.Solid
	return !tile.Solid, nil
}

// TileAt finds the tile covering a world position.
func (w *Wagon) TileAt(p Vec) (row, col int, ok bool) {
	for r := range w.Tiles {
		for c := range w.Tiles[r] {
			if w.Tiles[r][c].Rect().Contains(p) {
				return r, c, true
			}
		}
	}
	return 0, 0, false
}

// Attach connects w to the left of the last wagon.
func (t *Train) Attach(w *Wagon) {
	if len(t.Wagons) > 0 {
		t.Wagons[len(t.Wagons)-1].Connect(w)
	}
	t.Wagons = append(t.Wagons, w)
}

// Update ramps the speed once per tick.
func (t *Train) Update() {
	if t.Moving {
		if t.Speed+t.Accel < t.TopSpeed {
			t.Speed += t.Accel
		}
	} else if t.Speed > 0 {
		t.Speed -= t.Accel / 2
		if t.Speed < 0 {
			t.Speed = 0
		}
	}
}

// MoveTo places the leftmost wagon at p, dragging the others along.
func (t *Train) MoveTo(p Vec) {
	if len(t.Wagons) == 0 {
		return
	}
	d := p.Sub(t.Wagons[len(t.Wagons)-1].Origin())
	for _, w := range t.Wagons {
		w.Move(d)
	}
}

func (t *Train) SetSize(cols, rows int) {
	t.Cols = cols
	t.Rows = rows
}

// Origin is the world position of the composed cell (0,0), before padding.
func (t *Train) Origin() Vec {
	if len(t.Wagons) == 0 {
		return Vec{}
	}
	first := t.Wagons[len(t.Wagons)-1]
	origin := first.Origin()
	origin.Y -= float64((t.Rows-first.Rows())/2) * TileHeight
	return origin
}

// DoorAt finds the door tile under a world position.
func (t *Train) DoorAt(p Vec) (w *Wagon, row, col int, ok bool) {
	for _, wagon := range t.Wagons {
		r, c, found := wagon.TileAt(p)
		if found && wagon.Tiles[r][c].IsDoor() {
			return wagon, r, c, true
		}
	}
	return nil, 0, 0, false
}
