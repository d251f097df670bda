package main

import (
	"github.com/matryer/way"
)

const URI_WATCH = "/watch"
const URI_GRID = "/grid/:view"

func (s *Server) routes() {
	s.router = way.NewRouter()
	s.router.HandleFunc("GET", URI_WATCH, s.FeedServer.HandleWatch())
	s.router.HandleFunc("GET", URI_GRID, s.FeedServer.HandleGrid(s.Simulation))
}
