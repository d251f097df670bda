package main

import "image/color"

func HexToRGBA(u uint32) color.RGBA {
	return color.RGBA{
		R: uint8(0xff & (u >> 16)),
		G: uint8(0xff & (u >> 8)),
		B: uint8(0xff & u),
		A: 0xff,
	}
}

var (
	COLOR_BACKGROUND = HexToRGBA(0x464646)
	COLOR_FLOOR      = HexToRGBA(0x8a6f4d)
	COLOR_WALL       = HexToRGBA(0x2b2b2b)
	COLOR_DOOR_OPEN  = HexToRGBA(0x0abd38)
	COLOR_DOOR_SHUT  = HexToRGBA(0xfa3636)
	COLOR_PLAYER     = HexToRGBA(0x34fbf6)
	COLOR_SELECTED   = HexToRGBA(0xedbc1e)
	COLOR_ENEMY      = HexToRGBA(0xcb18dd)
	COLOR_PATH       = HexToRGBA(0xffffff)
)

// Camera maps world positions to the screen: screen = (world - X,Y) * Zoom.
type Camera struct {
	X, Y float64
	Zoom float64
}

func (c *Camera) ToScreen(x, y float64) (float64, float64) {
	return (x - c.X) * c.Zoom, (y - c.Y) * c.Zoom
}

func (c *Camera) ToWorld(x, y int) (float64, float64) {
	return float64(x)/c.Zoom + c.X, float64(y)/c.Zoom + c.Y
}
