package actor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zucenko/trainrun/model"
)

// wagon3 has a 3x3 interior, tiles from (0,0) to (320,320).
func wagon3(t *testing.T) *model.Wagon {
	t.Helper()
	w, err := model.NewWagon(3, 3)
	require.NoError(t, err)
	return w
}

func agentAt(pos model.Vec, steps ...model.Vec) *Agent {
	a := NewAgent(Player, pos)
	a.SetPath(steps)
	return a
}

func TestArrivalPopsWithoutMoving(t *testing.T) {
	m := NewMover(0, 0)
	a := agentAt(model.Vec{X: 100, Y: 100}, model.Vec{X: 102, Y: 101}, model.Vec{X: 200, Y: 100})

	m.Update(a, nil, 0.1)
	assert.Equal(t, model.Vec{X: 100, Y: 100}, a.Pos)
	assert.Equal(t, []model.Vec{{X: 200, Y: 100}}, a.Steps)
}

func TestArrivalNeedsBothAxes(t *testing.T) {
	m := NewMover(0, 0)
	a := agentAt(model.Vec{X: 100, Y: 100}, model.Vec{X: 101, Y: 110})

	m.Update(a, nil, 0.01)
	assert.Len(t, a.Steps, 1)
	assert.NotEqual(t, model.Vec{X: 100, Y: 100}, a.Pos)
}

func TestMoveThenPop(t *testing.T) {
	w := wagon3(t)
	m := NewMover(300, 4)
	a := agentAt(model.Vec{X: 160, Y: 160}, model.Vec{X: 190, Y: 160})

	m.Update(a, []*model.Wagon{w}, 0.1)
	assert.InDelta(t, 190, a.Pos.X, 1e-9)
	assert.InDelta(t, 160, a.Pos.Y, 1e-9)
	assert.Len(t, a.Steps, 1)
	assert.True(t, a.Inside)

	m.Update(a, []*model.Wagon{w}, 0.1)
	assert.Empty(t, a.Steps)
}

func TestWallVetoesWholeMove(t *testing.T) {
	w := wagon3(t)
	m := NewMover(300, 4)
	start := model.Vec{X: 224, Y: 160}
	a := agentAt(start, model.Vec{X: 352, Y: 160})
	a.Inside = true

	m.Update(a, []*model.Wagon{w}, 0.1)
	assert.Equal(t, start, a.Pos)
	assert.Len(t, a.Steps, 1)
	assert.True(t, a.Inside)
}

func TestClosedDoorBlocks(t *testing.T) {
	w := wagon3(t)
	require.NoError(t, w.PlaceDoor(0, 2, false))
	m := NewMover(300, 4)
	start := model.Vec{X: 160, Y: 80}
	a := agentAt(start, model.Vec{X: 160, Y: 32})

	m.Update(a, []*model.Wagon{w}, 0.1)
	assert.Equal(t, start, a.Pos)
}

func TestDoorIsNotInside(t *testing.T) {
	w := wagon3(t)
	require.NoError(t, w.PlaceDoor(0, 2, true))
	wagons := []*model.Wagon{w}
	m := NewMover(300, 4)
	a := agentAt(model.Vec{X: 160, Y: 96}, model.Vec{X: 160, Y: 32})
	a.Inside = true

	m.Update(a, wagons, 0.1)
	assert.InDelta(t, 66, a.Pos.Y, 1e-9)
	assert.True(t, a.Inside)

	m.Update(a, wagons, 0.1)
	assert.InDelta(t, 36, a.Pos.Y, 1e-9)
	assert.False(t, a.Inside)
}

func TestWalkingOutsideStaysOutside(t *testing.T) {
	w := wagon3(t)
	m := NewMover(300, 4)
	a := agentAt(model.Vec{X: -100, Y: -100}, model.Vec{X: -200, Y: -100})

	m.Update(a, []*model.Wagon{w}, 0.1)
	assert.InDelta(t, -130, a.Pos.X, 1e-9)
	assert.False(t, a.Inside)
}

func TestCollidesAndIsInside(t *testing.T) {
	w := wagon3(t)
	wagons := []*model.Wagon{w}

	assert.False(t, Collides(model.Rect{Left: 100, Top: 100, Width: 25, Height: 25}, wagons))
	assert.True(t, Collides(model.Rect{Left: 50, Top: 100, Width: 25, Height: 25}, wagons))
	// touching an edge is not an overlap
	assert.False(t, Collides(model.Rect{Left: 64, Top: 100, Width: 25, Height: 25}, wagons))

	assert.True(t, IsInside(model.Vec{X: 64, Y: 64}, wagons))
	assert.False(t, IsInside(model.Vec{X: 32, Y: 100}, wagons))
	assert.False(t, IsInside(model.Vec{X: 1000, Y: 1000}, wagons))
}
