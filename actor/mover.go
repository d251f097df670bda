package actor

import (
	"math"

	"github.com/zucenko/trainrun/model"
)

const (
	DefaultSpeed   = 300
	DefaultArrival = 4
)

// Mover walks agents along their waypoints.
type Mover struct {
	// world units per second
	Speed float64
	// a waypoint counts as reached closer than this on both axes
	Arrival float64
}

func NewMover(speed, arrival float64) Mover {
	if speed <= 0 {
		speed = DefaultSpeed
	}
	if arrival <= 0 {
		arrival = DefaultArrival
	}
	return Mover{Speed: speed, Arrival: arrival}
}

// Update advances a towards its current waypoint. A move that would touch any
// solid tile bound is dropped as a whole.
func (m Mover) Update(a *Agent, wagons []*model.Wagon, dt float64) {
	if len(a.Steps) == 0 {
		return
	}
	dest := a.Steps[0]
	if math.Abs(dest.X-a.Pos.X) < m.Arrival && math.Abs(dest.Y-a.Pos.Y) < m.Arrival {
		a.Steps = a.Steps[1:]
		return
	}

	dir := dest.Sub(a.Pos)
	length := math.Hypot(dir.X, dir.Y)
	d := dir.Scale(m.Speed * dt / length)
	if d == (model.Vec{}) {
		return
	}
	if Collides(a.Bounds().Translate(d), wagons) {
		return
	}
	a.Pos = a.Pos.Add(d)
	a.Inside = IsInside(a.Pos, wagons)
}

// Collides reports whether r overlaps a collision bound of any solid tile.
func Collides(r model.Rect, wagons []*model.Wagon) bool {
	for _, w := range wagons {
		for row := range w.Tiles {
			for col := range w.Tiles[row] {
				tile := &w.Tiles[row][col]
				if !tile.Solid {
					continue
				}
				for _, b := range tile.CollisionRects() {
					if r.Intersects(b) {
						return true
					}
				}
			}
		}
	}
	return false
}

// IsInside reports whether p stands on a wagon floor. Doors never count.
func IsInside(p model.Vec, wagons []*model.Wagon) bool {
	for _, w := range wagons {
		for row := range w.Tiles {
			for col := range w.Tiles[row] {
				tile := &w.Tiles[row][col]
				if tile.Solid || tile.IsDoor() {
					continue
				}
				if tile.Rect().Contains(p) {
					return true
				}
			}
		}
	}
	return false
}
