package actor

import (
	"math"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"github.com/zucenko/trainrun/dispatch"
	"github.com/zucenko/trainrun/model"
	"github.com/zucenko/trainrun/pathfinding"
)

// PathDispatcher runs path requests off the simulation goroutine.
type PathDispatcher interface {
	Submit(req dispatch.Request)
	Drain() []dispatch.Completion
}

// Nav is the navigation state orders are issued against.
type Nav struct {
	Grids      *pathfinding.Grids
	Generation uint64
	Origin     model.Vec
}

type Manager struct {
	agents     []*Agent
	byId       map[uuid.UUID]*Agent
	dispatcher PathDispatcher
	mover      Mover
	tickets    uint64
}

func NewManager(dispatcher PathDispatcher, mover Mover) *Manager {
	return &Manager{
		byId:       make(map[uuid.UUID]*Agent),
		dispatcher: dispatcher,
		mover:      mover,
	}
}

// Spawn adds an agent and classifies it against the wagons.
func (m *Manager) Spawn(kind Kind, pos model.Vec, wagons []*model.Wagon) *Agent {
	a := NewAgent(kind, pos)
	a.Inside = IsInside(pos, wagons)
	m.agents = append(m.agents, a)
	m.byId[a.Id] = a
	log.Debugf("Manager.Spawn %s %v at %v inside:%v", kind.Name(), a.Id, pos, a.Inside)
	return a
}

func (m *Manager) Agents() []*Agent {
	return m.agents
}

func (m *Manager) Get(id uuid.UUID) (*Agent, bool) {
	a, ok := m.byId[id]
	return a, ok
}

// Remove forgets the agent, results still in flight for it are dropped.
func (m *Manager) Remove(id uuid.UUID) {
	if _, ok := m.byId[id]; !ok {
		return
	}
	delete(m.byId, id)
	for i, a := range m.agents {
		if a.Id == id {
			m.agents = append(m.agents[:i], m.agents[i+1:]...)
			break
		}
	}
}

// Select marks the players touched by the rectangle spanned by from and to.
// A degenerate rectangle selects the player under the point.
func (m *Manager) Select(from, to model.Vec) int {
	r := model.Rect{
		Left:   math.Min(from.X, to.X),
		Top:    math.Min(from.Y, to.Y),
		Width:  math.Abs(to.X - from.X),
		Height: math.Abs(to.Y - from.Y),
	}
	point := r.Width == 0 || r.Height == 0
	count := 0
	for _, a := range m.agents {
		if a.Kind != Player {
			a.Selected = false
			continue
		}
		if point {
			a.Selected = a.Bounds().Contains(from)
		} else {
			a.Selected = r.Intersects(a.Bounds())
		}
		if a.Selected {
			count++
		}
	}
	return count
}

func (m *Manager) Selected() []*Agent {
	var selected []*Agent
	for _, a := range m.agents {
		if a.Selected {
			selected = append(selected, a)
		}
	}
	return selected
}

// Order sends every selected agent to dest.
func (m *Manager) Order(dest model.Vec, nav Nav) int {
	count := 0
	for _, a := range m.agents {
		if a.Selected {
			m.Request(a, dest, nav)
			count++
		}
	}
	return count
}

// Request asks for a path from a to dest on the view a currently walks. Any
// earlier request of a is superseded.
func (m *Manager) Request(a *Agent, dest model.Vec, nav Nav) {
	m.tickets++
	a.pending = &order{ticket: m.tickets, destination: dest}
	m.dispatcher.Submit(dispatch.Request{
		Requester:   a.Id,
		Ticket:      m.tickets,
		Generation:  nav.Generation,
		Start:       a.Pos,
		Grid:        nav.Grids.For(a.Inside),
		Origin:      nav.Origin,
		Destination: dest,
	})
}

// Pump applies finished path requests. Results for removed agents or for
// superseded tickets are dropped, results computed on an older grid are asked
// for again.
func (m *Manager) Pump(nav Nav) {
	for _, c := range m.dispatcher.Drain() {
		a, ok := m.byId[c.Requester]
		if !ok {
			log.Debugf("Manager.Pump result for removed agent %v", c.Requester)
			continue
		}
		if a.pending == nil || a.pending.ticket != c.Ticket {
			log.Debugf("Manager.Pump stale ticket %d for %v", c.Ticket, c.Requester)
			continue
		}
		dest := a.pending.destination
		a.pending = nil

		switch {
		case c.Err != nil:
			log.Warnf("Manager.Pump path for %v failed: %v", a.Id, c.Err)
		case c.Generation != nav.Generation:
			log.Debugf("Manager.Pump generation %d outdated, now %d, asking again", c.Generation, nav.Generation)
			m.Request(a, dest, nav)
		case !c.Found:
			log.Debugf("Manager.Pump no path for %v to %v", a.Id, dest)
		default:
			a.SetPath(pathfinding.Waypoints(c.Path, nav.Origin, nav.Grids.All.Padding))
		}
	}
}

func (m *Manager) Update(wagons []*model.Wagon, dt float64) {
	for _, a := range m.agents {
		m.mover.Update(a, wagons, dt)
	}
}

// SeekDoors sends idle enemies outside the train towards the nearest door,
// through it when the door is open. An enemy is looked at again only once it
// moved to another cell or the grids changed.
func (m *Manager) SeekDoors(nav Nav) {
	for _, a := range m.agents {
		if a.Kind != Enemy || a.Inside || !a.Idle() {
			continue
		}
		cell := pathfinding.WorldToCell(a.Pos, nav.Origin, nav.Grids.All.Padding)
		if a.seek.done && a.seek.generation == nav.Generation && a.seek.from == cell {
			continue
		}
		a.seek = seekMark{done: true, generation: nav.Generation, from: cell}

		target, ok := nearestDoor(a, nav)
		if !ok || target == cell {
			continue
		}
		m.Request(a, pathfinding.CellToWorld(target, nav.Origin, nav.Grids.All.Padding), nav)
	}
}

// nearestDoor measures on the All view, open doors lead to the cell behind.
func nearestDoor(a *Agent, nav Nav) (pathfinding.Cell, bool) {
	pad := nav.Grids.All.Padding
	best, bestSteps, found := pathfinding.Cell{}, 0, false
	for _, door := range nav.Grids.Doors {
		steps, ok := pathfinding.StepsTo(nav.Grids.All, nav.Origin, a.Pos,
			pathfinding.CellToWorld(door[0], nav.Origin, pad))
		if !ok || (found && steps >= bestSteps) {
			continue
		}
		best, bestSteps, found = door[0], steps, true
		if nav.Grids.Inside.Cells[door[0].X][door[0].Y] {
			best = door[1]
		}
	}
	return best, found
}
