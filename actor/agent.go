package actor

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/zucenko/trainrun/model"
	"github.com/zucenko/trainrun/pathfinding"
)

type Kind int

const (
	Player Kind = iota
	Enemy
)

func (k Kind) Name() string {
	switch k {
	case Player:
		return "PLAYER"
	case Enemy:
		return "ENEMY"
	default:
		return fmt.Sprintf("n/a:%d", k)
	}
}

const agentSize = 25

type order struct {
	ticket      uint64
	destination model.Vec
}

type seekMark struct {
	done       bool
	generation uint64
	from       pathfinding.Cell
}

type Agent struct {
	Id   uuid.UUID
	Kind Kind
	// centre of the agent
	Pos    model.Vec
	Size   model.Vec
	Inside bool
	// waypoints still to visit, Steps[0] is the current target
	Steps    []model.Vec
	Selected bool

	pending *order
	seek    seekMark
}

func NewAgent(kind Kind, pos model.Vec) *Agent {
	return &Agent{
		Id:   uuid.New(),
		Kind: kind,
		Pos:  pos,
		Size: model.Vec{X: agentSize, Y: agentSize},
	}
}

func (a *Agent) Bounds() model.Rect {
	return model.Rect{
		Left:   a.Pos.X - a.Size.X/2,
		Top:    a.Pos.Y - a.Size.Y/2,
		Width:  a.Size.X,
		Height: a.Size.Y,
	}
}

// SetPath replaces every queued waypoint.
func (a *Agent) SetPath(steps []model.Vec) {
	a.Steps = append(a.Steps[:0:0], steps...)
}

func (a *Agent) Idle() bool {
	return len(a.Steps) == 0 && a.pending == nil
}

// Waiting reports whether a path request is still out.
func (a *Agent) Waiting() bool {
	return a.pending != nil
}
