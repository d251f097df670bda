package main

import (
	"flag"
	"net/http"
	"time"

	"github.com/matryer/way"
	log "github.com/sirupsen/logrus"
	"github.com/zucenko/trainrun/config"
	"github.com/zucenko/trainrun/server"
	"github.com/zucenko/trainrun/sim"
)

type Server struct {
	router     *way.Router
	FeedServer *server.FeedServer
	Simulation *sim.Simulation
}

func main() {
	cfgPath := flag.String("config", "", "yaml config, defaults when empty")
	debug := flag.Bool("debug", false, "debug logging")
	flag.Parse()
	if *debug {
		log.SetLevel(log.DebugLevel)
	}

	cfg := config.Default()
	if *cfgPath != "" {
		var err error
		if cfg, err = config.Load(*cfgPath); err != nil {
			log.Fatal(err)
		}
	}
	simulation, err := sim.New(cfg)
	if err != nil {
		log.Fatal(err)
	}

	s := Server{
		FeedServer: server.NewFeedServer(),
		Simulation: simulation,
	}
	go s.FeedServer.Loop()
	go s.run(cfg.Server.Tick)
	s.routes()

	port := cfg.PortOrEnv()
	log.Infof("Listening on port %s", port)
	log.Fatalln(http.ListenAndServe(":"+port, s.router))
}

// run ticks the simulation and publishes every tick, applying watcher
// commands in between.
func (s *Server) run(tick time.Duration) {
	ticker := time.NewTicker(tick)
	defer ticker.Stop()
	last := time.Now()
	for {
		select {
		case now := <-ticker.C:
			s.Simulation.Tick(now.Sub(last).Seconds())
			last = now
			s.FeedServer.Publish(s.Simulation.Snapshot())
		case cm := <-s.FeedServer.Commands:
			s.Simulation.Apply(cm)
		}
	}
}
