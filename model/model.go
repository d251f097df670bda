package model

const (
	TileWidth  = 64
	TileHeight = 64
	// thickness of the collision strip a wall tile carries on its interior side
	WallStrip = 6
)

type Vec struct {
	X, Y float64
}

func (v Vec) Add(o Vec) Vec {
	return Vec{v.X + o.X, v.Y + o.Y}
}

func (v Vec) Sub(o Vec) Vec {
	return Vec{v.X - o.X, v.Y - o.Y}
}

func (v Vec) Scale(f float64) Vec {
	return Vec{v.X * f, v.Y * f}
}

// Rect is an axis aligned rectangle, Left/Top is the minimum corner.
type Rect struct {
	Left, Top, Width, Height float64
}

func (r Rect) Translate(d Vec) Rect {
	return Rect{r.Left + d.X, r.Top + d.Y, r.Width, r.Height}
}

// Intersects reports overlap with a positive area, touching edges do not count.
func (r Rect) Intersects(o Rect) bool {
	left := max64(r.Left, o.Left)
	top := max64(r.Top, o.Top)
	right := min64(r.Left+r.Width, o.Left+o.Width)
	bottom := min64(r.Top+r.Height, o.Top+o.Height)
	return left < right && top < bottom
}

// Contains is inclusive on the minimum edges and exclusive on the maximum ones.
func (r Rect) Contains(p Vec) bool {
	return p.X >= r.Left && p.X < r.Left+r.Width &&
		p.Y >= r.Top && p.Y < r.Top+r.Height
}

func max64(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

func min64(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

// Direction is the way a door faces, out of its wagon.
type Direction int

const (
	North Direction = iota
	South
	East
	West
)

type TileKind int

const (
	Plain TileKind = iota
	Door
)

type Tile struct {
	// world position of the top left corner
	Pos    Vec
	Solid  bool
	Kind   TileKind
	Facing Direction
	// collision rectangles relative to Pos, at most two
	Bounds []Rect
}

func (t *Tile) IsDoor() bool {
	return t.Kind == Door
}

// Rect is the full world rectangle the tile covers.
func (t *Tile) Rect() Rect {
	return Rect{t.Pos.X, t.Pos.Y, TileWidth, TileHeight}
}

// CollisionRects returns the tile bounds in world space.
func (t *Tile) CollisionRects() []Rect {
	rects := make([]Rect, 0, len(t.Bounds))
	for _, b := range t.Bounds {
		rects = append(rects, b.Translate(t.Pos))
	}
	return rects
}

// Wagon tiles are row major: Tiles[row][col].
type Wagon struct {
	Tiles [][]Tile
}

func (w *Wagon) Rows() int {
	return len(w.Tiles)
}

func (w *Wagon) Cols() int {
	if len(w.Tiles) == 0 {
		return 0
	}
	return len(w.Tiles[0])
}

type Train struct {
	// index 0 is the rightmost wagon, every attached wagon goes to the left
	Wagons   []*Wagon
	Moving   bool
	Speed    float64
	TopSpeed float64
	Accel    float64
	// composed size in tiles, set after each grid rebuild
	Cols, Rows int
}
