package dispatch

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zucenko/trainrun/model"
	"github.com/zucenko/trainrun/pathfinding"
)

func centre(x, y int) model.Vec {
	return pathfinding.CellToWorld(pathfinding.Cell{X: x, Y: y}, model.Vec{}, pathfinding.Padding{})
}

// drainAll keeps draining until n completions arrived.
func drainAll(t *testing.T, d *Dispatcher, n int) []Completion {
	t.Helper()
	var got []Completion
	require.Eventually(t, func() bool {
		got = append(got, d.Drain()...)
		return len(got) >= n
	}, 5*time.Second, time.Millisecond)
	assert.Len(t, got, n)
	return got
}

func TestDrainEmptyDoesNotBlock(t *testing.T) {
	d := NewDispatcher(4)
	assert.Empty(t, d.Drain())
}

func TestConcurrentRequestsAllComplete(t *testing.T) {
	g := pathfinding.NewGrid(40, 40, true, pathfinding.Padding{})
	for y := 0; y < 39; y++ {
		g.Cells[20][y] = false
	}

	d := NewDispatcher(1)
	const n = 32
	want := make(map[uuid.UUID]pathfinding.Path, n)
	for i := 0; i < n; i++ {
		req := Request{
			Requester:   uuid.New(),
			Ticket:      uint64(i),
			Start:       centre(i%20, i),
			Grid:        g,
			Destination: centre(39-i%10, 39-i),
		}
		path, ok := pathfinding.FindPath(g, req.Origin, req.Start, req.Destination)
		require.True(t, ok)
		want[req.Requester] = path
		d.Submit(req)
	}

	got := drainAll(t, d, n)
	seen := make(map[uuid.UUID]bool, n)
	for _, c := range got {
		require.NoError(t, c.Err)
		require.True(t, c.Found)
		expected, ok := want[c.Requester]
		require.True(t, ok, "unknown requester %v", c.Requester)
		assert.Equal(t, expected, c.Path)
		assert.False(t, seen[c.Requester], "duplicate completion for %v", c.Requester)
		seen[c.Requester] = true
	}
	assert.Len(t, seen, n)
}

func TestSubmitCopiesGrid(t *testing.T) {
	g := pathfinding.NewGrid(5, 1, true, pathfinding.Padding{})
	d := NewDispatcher(1)
	id := uuid.New()
	d.Submit(Request{Requester: id, Start: centre(0, 0), Grid: g, Destination: centre(4, 0)})
	g.Cells[2][0] = false

	c := drainAll(t, d, 1)[0]
	assert.Equal(t, id, c.Requester)
	assert.True(t, c.Found)
	assert.Len(t, c.Path, 5)
}

func TestNoPathIsNotAnError(t *testing.T) {
	g := pathfinding.NewGrid(5, 1, true, pathfinding.Padding{})
	g.Cells[2][0] = false
	d := NewDispatcher(1)
	d.Submit(Request{Requester: uuid.New(), Ticket: 3, Generation: 9, Start: centre(0, 0), Grid: g, Destination: centre(4, 0)})

	c := drainAll(t, d, 1)[0]
	assert.NoError(t, c.Err)
	assert.False(t, c.Found)
	assert.Nil(t, c.Path)
	assert.Equal(t, uint64(3), c.Ticket)
	assert.Equal(t, uint64(9), c.Generation)
}

func TestWorkerPanicIsReported(t *testing.T) {
	g := pathfinding.NewGrid(3, 3, true, pathfinding.Padding{})
	d := NewDispatcher(1)
	id := uuid.New()
	d.Submit(Request{Requester: id, Start: model.Vec{X: -500, Y: 0}, Grid: g, Destination: centre(1, 1)})

	c := drainAll(t, d, 1)[0]
	assert.Equal(t, id, c.Requester)
	assert.False(t, c.Found)
	assert.True(t, errors.Is(c.Err, ErrWorkerPanic))
}
