package main

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten"
)

// Nine draws a nine patch stretched over a rectangle, corners keep their size.
type Nine struct {
	images              *ebiten.Image
	alpha               float64
	R, G, B, Scale      float64
	positions           [4][2]int
	x, y, width, height int
	scaleCenterWidth    float64
	scaleCenterHeight   float64
	targetPositions     [3][2]float64
}

// NewFrame builds a nine patch with a border line of the given thickness.
func NewFrame(border int, c color.Color) (*Nine, error) {
	side := 3 * border
	img := image.NewRGBA(image.Rect(0, 0, side, side))
	for x := 0; x < side; x++ {
		for y := 0; y < side; y++ {
			if x < border || y < border || x >= 2*border || y >= 2*border {
				img.Set(x, y, c)
			}
		}
	}
	eImg, err := ebiten.NewImageFromImage(img, ebiten.FilterDefault)
	if err != nil {
		return nil, err
	}
	return &Nine{
		images: eImg,
		alpha:  1,
		R:      1, G: 1, B: 1, Scale: 1,
		positions: [4][2]int{{0, 0}, {border, border}, {2 * border, 2 * border}, {side, side}},
	}, nil
}

func (n *Nine) SetPosition(x, y int) {
	n.x = x
	n.y = y
	n.SetSize(n.width, n.height)
}

func (n *Nine) SetSize(width, height int) {
	n.width = width
	n.height = height
	n.targetPositions[0][0] = float64(n.x)
	n.targetPositions[0][1] = float64(n.y)

	n.targetPositions[1][0] = float64(n.x) + n.Scale*float64(n.positions[1][0])
	n.targetPositions[1][1] = float64(n.y) + n.Scale*float64(n.positions[1][1])

	n.targetPositions[2][0] = float64(n.x+n.width) - n.Scale*float64(n.positions[3][0]-n.positions[2][0])
	n.targetPositions[2][1] = float64(n.y+n.height) - n.Scale*float64(n.positions[3][1]-n.positions[2][1])

	innerWidth := n.targetPositions[2][0] - n.targetPositions[1][0]
	innerHigh := n.targetPositions[2][1] - n.targetPositions[1][1]
	if innerWidth < 0 {
		innerWidth = 0
	}
	if innerHigh < 0 {
		innerHigh = 0
	}
	n.scaleCenterWidth = innerWidth / float64(n.positions[2][0]-n.positions[1][0])
	n.scaleCenterHeight = innerHigh / float64(n.positions[2][1]-n.positions[1][1])
}

func (n *Nine) Draw(screen *ebiten.Image) {
	scaleX := [3]float64{n.Scale, n.scaleCenterWidth, n.Scale}
	scaleY := [3]float64{n.Scale, n.scaleCenterHeight, n.Scale}
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			src := image.Rect(n.positions[i][0], n.positions[j][1], n.positions[i+1][0], n.positions[j+1][1])
			op := &ebiten.DrawImageOptions{}
			op.GeoM.Scale(scaleX[i], scaleY[j])
			op.GeoM.Translate(n.targetPositions[i][0], n.targetPositions[j][1])
			op.ColorM.Scale(n.R, n.G, n.B, n.alpha)
			screen.DrawImage(n.images.SubImage(src).(*ebiten.Image), op)
		}
	}
}
