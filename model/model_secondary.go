package model

import "fmt"

func (d Direction) Name() string {
	switch d {
	case North:
		return "NORTH"
	case South:
		return "SOUTH"
	case East:
		return "EAST"
	case West:
		return "WEST"
	default:
		return fmt.Sprintf("n/a:%d", d)
	}
}

// Step is the unit heading, y grows downwards.
func (d Direction) Step() (dx, dy int) {
	switch d {
	case North:
		return 0, -1
	case South:
		return 0, 1
	case East:
		return 1, 0
	case West:
		return -1, 0
	default:
		panic(d)
	}
}

func (k TileKind) Name() string {
	switch k {
	case Plain:
		return "PLAIN"
	case Door:
		return "DOOR"
	default:
		return fmt.Sprintf("n/a:%d", k)
	}
}
