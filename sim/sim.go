package sim

import (
	"errors"
	"fmt"
	"sync"

	log "github.com/sirupsen/logrus"
	"github.com/zucenko/trainrun/actor"
	"github.com/zucenko/trainrun/config"
	"github.com/zucenko/trainrun/dispatch"
	"github.com/zucenko/trainrun/model"
	"github.com/zucenko/trainrun/pathfinding"
)

var (
	ErrNoDoor      = errors.New("no door at that position")
	ErrUnknownView = errors.New("unknown grid view")
)

const dispatchBuffer = 64

// Simulation owns the train, its grids and the agents. Grids are rebuilt
// lazily, always before anything is submitted against them.
type Simulation struct {
	mu sync.Mutex

	train      *model.Train
	pad        pathfinding.Padding
	grids      *pathfinding.Grids
	generation uint64
	dirty      bool

	dispatcher *dispatch.Dispatcher
	manager    *actor.Manager
	ticks      uint64
}

func New(cfg config.Config) (*Simulation, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	train := &model.Train{
		TopSpeed: cfg.Train.TopSpeed,
		Accel:    cfg.Train.Accel,
		Moving:   cfg.Train.Moving,
	}
	for i, wc := range cfg.Wagons {
		w, err := wc.Build()
		if err != nil {
			return nil, fmt.Errorf("wagon %d: %w", i, err)
		}
		if i == 0 {
			w.SetPosition(model.Vec{X: cfg.Train.X, Y: cfg.Train.Y})
		}
		train.Attach(w)
	}

	dispatcher := dispatch.NewDispatcher(dispatchBuffer)
	s := &Simulation{
		train:      train,
		pad:        cfg.GridPadding(),
		dirty:      true,
		dispatcher: dispatcher,
		manager:    actor.NewManager(dispatcher, actor.NewMover(cfg.Mover.Speed, cfg.Mover.Arrival)),
	}
	s.rebuild()
	for _, a := range cfg.Actors {
		kind := actor.Player
		if a.Kind == "enemy" {
			kind = actor.Enemy
		}
		s.manager.Spawn(kind, model.Vec{X: a.X, Y: a.Y}, train.Wagons)
	}
	log.Infof("Simulation.New %d wagons, %d actors, grid %dx%d",
		len(train.Wagons), len(cfg.Actors), s.grids.All.Width(), s.grids.All.Height())
	return s, nil
}

func (s *Simulation) rebuild() {
	if !s.dirty {
		return
	}
	s.grids = pathfinding.Compose(s.train.Wagons, s.pad)
	s.train.SetSize(s.grids.Cols, s.grids.Rows)
	s.generation++
	s.dirty = false
	log.WithFields(log.Fields{
		"generation": s.generation,
		"cols":       s.grids.Cols,
		"rows":       s.grids.Rows,
	}).Debug("Simulation.rebuild")
}

func (s *Simulation) nav() actor.Nav {
	return actor.Nav{
		Grids:      s.grids,
		Generation: s.generation,
		Origin:     s.train.Origin(),
	}
}

// Tick advances the world by dt seconds.
func (s *Simulation) Tick(dt float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.train.Update()
	s.rebuild()
	nav := s.nav()
	s.manager.Pump(nav)
	s.manager.SeekDoors(nav)
	s.manager.Update(s.train.Wagons, dt)
	s.ticks++
}

func (s *Simulation) Select(from, to model.Vec) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.manager.Select(from, to)
}

// Order sends the selected agents to dest.
func (s *Simulation) Order(dest model.Vec) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rebuild()
	return s.manager.Order(dest, s.nav())
}

// ToggleDoor flips the door under p and reports whether it is open now.
func (s *Simulation) ToggleDoor(p model.Vec) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	w, row, col, ok := s.train.DoorAt(p)
	if !ok {
		return false, fmt.Errorf("%w: %v", ErrNoDoor, p)
	}
	open, err := w.ToggleDoor(row, col)
	if err != nil {
		return false, err
	}
	s.dirty = true
	log.Infof("Simulation.ToggleDoor (%d,%d) open:%v", row, col, open)
	return open, nil
}

// AttachWagon connects w to the left end of the train.
func (s *Simulation) AttachWagon(w *model.Wagon) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.train.Attach(w)
	s.dirty = true
	log.Infof("Simulation.AttachWagon now %d wagons", len(s.train.Wagons))
}

func (s *Simulation) SetMoving(moving bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.train.Moving = moving
}

func (s *Simulation) Spawn(kind actor.Kind, pos model.Vec) *actor.Agent {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.manager.Spawn(kind, pos, s.train.Wagons)
}

// Apply runs the commands of a client message in order: selections, orders,
// door toggles, then the moving flag.
func (s *Simulation) Apply(msg model.ClientMessage) {
	for _, sel := range msg.Select {
		s.Select(sel.From, sel.To)
	}
	for _, dest := range msg.Order {
		s.Order(dest)
	}
	for _, p := range msg.Toggle {
		if _, err := s.ToggleDoor(p); err != nil {
			log.Warnf("Simulation.Apply %v", err)
		}
	}
	for _, moving := range msg.Moving {
		s.SetMoving(moving)
	}
}

// Grid returns a copy of one of the current views: all, inside or outside.
func (s *Simulation) Grid(view string) (pathfinding.Grid, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	g, err := s.view(view)
	if err != nil {
		return pathfinding.Grid{}, err
	}
	return g.Clone(), nil
}

// Render draws a view with its door linked cells marked.
func (s *Simulation) Render(view string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	g, err := s.view(view)
	if err != nil {
		return "", err
	}
	return s.grids.Render(g), nil
}

func (s *Simulation) view(name string) (pathfinding.Grid, error) {
	s.rebuild()
	switch name {
	case "all":
		return s.grids.All, nil
	case "inside":
		return s.grids.Inside, nil
	case "outside":
		return s.grids.Outside, nil
	default:
		return pathfinding.Grid{}, fmt.Errorf("%w: %q", ErrUnknownView, name)
	}
}

func (s *Simulation) Generation() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.generation
}

// View hands the live state to f while holding the lock. f must not keep
// any of it.
func (s *Simulation) View(f func(train *model.Train, grids *pathfinding.Grids, agents []*actor.Agent)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	f(s.train, s.grids, s.manager.Agents())
}

func (s *Simulation) Snapshot() model.ServerMessage {
	s.mu.Lock()
	defer s.mu.Unlock()

	msg := model.ServerMessage{
		Setup: []model.Setup{{
			Cols:       s.grids.Cols,
			Rows:       s.grids.Rows,
			Origin:     s.train.Origin(),
			Generation: s.generation,
			Speed:      s.train.Speed,
		}},
	}
	for _, a := range s.manager.Agents() {
		msg.Agents = append(msg.Agents, model.AgentState{
			Id:       a.Id.String(),
			Kind:     a.Kind.Name(),
			Pos:      a.Pos,
			Inside:   a.Inside,
			Selected: a.Selected,
			Steps:    append([]model.Vec(nil), a.Steps...),
		})
	}
	for _, w := range s.train.Wagons {
		for row := range w.Tiles {
			for col := range w.Tiles[row] {
				tile := &w.Tiles[row][col]
				if !tile.IsDoor() {
					continue
				}
				msg.Doors = append(msg.Doors, model.DoorState{
					Pos:    tile.Pos.Add(model.Vec{X: model.TileWidth / 2, Y: model.TileHeight / 2}),
					Facing: tile.Facing,
					Open:   !tile.Solid,
				})
			}
		}
	}
	return msg
}
