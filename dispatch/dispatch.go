package dispatch

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"github.com/zucenko/trainrun/model"
	"github.com/zucenko/trainrun/pathfinding"
)

var ErrWorkerPanic = errors.New("path worker panicked")

// Request is one path computation. Grid is copied on Submit, the worker never
// shares it with the caller.
type Request struct {
	Requester   uuid.UUID
	Ticket      uint64
	Generation  uint64
	Start       model.Vec
	Grid        pathfinding.Grid
	Origin      model.Vec
	Destination model.Vec
}

// Completion answers a Request. Found is false when no path exists, Err is set
// when the worker failed.
type Completion struct {
	Requester  uuid.UUID
	Ticket     uint64
	Generation uint64
	Path       pathfinding.Path
	Found      bool
	Err        error
}

type Dispatcher struct {
	completions chan Completion
}

// NewDispatcher creates a dispatcher whose completion channel holds buffer
// results before workers start to wait for a Drain.
func NewDispatcher(buffer int) *Dispatcher {
	return &Dispatcher{
		completions: make(chan Completion, buffer),
	}
}

// Submit starts a worker for the request and returns immediately.
func (d *Dispatcher) Submit(req Request) {
	req.Grid = req.Grid.Clone()
	log.WithFields(log.Fields{
		"requester":  req.Requester,
		"ticket":     req.Ticket,
		"generation": req.Generation,
	}).Debug("Dispatcher.Submit")
	go d.work(req)
}

func (d *Dispatcher) work(req Request) {
	c := Completion{
		Requester:  req.Requester,
		Ticket:     req.Ticket,
		Generation: req.Generation,
	}
	defer func() {
		if r := recover(); r != nil {
			log.Warnf("Dispatcher worker for %v: %v", req.Requester, r)
			c.Path, c.Found = nil, false
			c.Err = fmt.Errorf("%w: %v", ErrWorkerPanic, r)
		}
		d.completions <- c
	}()
	c.Path, c.Found = pathfinding.FindPath(req.Grid, req.Origin, req.Start, req.Destination)
}

// Drain returns every completion posted since the last call without waiting.
func (d *Dispatcher) Drain() []Completion {
	var done []Completion
	for {
		select {
		case c := <-d.completions:
			done = append(done, c)
		default:
			return done
		}
	}
}
