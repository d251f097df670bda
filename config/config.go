package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/zucenko/trainrun/model"
	"github.com/zucenko/trainrun/pathfinding"
	"gopkg.in/yaml.v3"
)

type Padding struct {
	Top    int `yaml:"top"`
	Bottom int `yaml:"bottom"`
	Left   int `yaml:"left"`
	Right  int `yaml:"right"`
}

type MoverConfig struct {
	Speed   float64 `yaml:"speed"`
	Arrival float64 `yaml:"arrival"`
}

type TrainConfig struct {
	// world position of the rightmost wagon
	X        float64 `yaml:"x"`
	Y        float64 `yaml:"y"`
	TopSpeed float64 `yaml:"top_speed"`
	Accel    float64 `yaml:"accel"`
	Moving   bool    `yaml:"moving"`
}

type DoorConfig struct {
	Row  int  `yaml:"row"`
	Col  int  `yaml:"col"`
	Open bool `yaml:"open"`
}

// WagonConfig is either an interior size with doors or an ASCII layout.
type WagonConfig struct {
	Width  int          `yaml:"width"`
	Height int          `yaml:"height"`
	Doors  []DoorConfig `yaml:"doors"`
	Layout string       `yaml:"layout"`
}

type ActorConfig struct {
	Kind string  `yaml:"kind"`
	X    float64 `yaml:"x"`
	Y    float64 `yaml:"y"`
}

type ServerConfig struct {
	Port string        `yaml:"port"`
	Tick time.Duration `yaml:"tick"`
}

type Config struct {
	Padding Padding       `yaml:"padding"`
	Mover   MoverConfig   `yaml:"mover"`
	Train   TrainConfig   `yaml:"train"`
	Wagons  []WagonConfig `yaml:"wagons"`
	Actors  []ActorConfig `yaml:"actors"`
	Server  ServerConfig  `yaml:"server"`
}

func Default() Config {
	return Config{
		Padding: Padding{Top: 2, Bottom: 2, Left: 2, Right: 2},
		Mover:   MoverConfig{Speed: 300, Arrival: 4},
		Train:   TrainConfig{X: 788, Y: 225, TopSpeed: 1000, Accel: 5},
		Wagons: []WagonConfig{
			{Width: 5, Height: 7, Doors: []DoorConfig{{Row: 8, Col: 3}}},
			{Width: 5, Height: 5, Doors: []DoorConfig{{Row: 0, Col: 3, Open: true}}},
			{Width: 3, Height: 3},
		},
		Actors: []ActorConfig{
			{Kind: "player", X: 884, Y: 321},
			{Kind: "player", X: 948, Y: 385},
			{Kind: "enemy", X: 500, Y: 130},
			{Kind: "enemy", X: 1000, Y: 880},
		},
		Server: ServerConfig{Port: "8080", Tick: 16 * time.Millisecond},
	}
}

// Load reads a yaml file on top of Default.
func Load(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("opening config: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

// Parse decodes yaml on top of Default. Empty input gives the defaults.
func Parse(r io.Reader) (Config, error) {
	c := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func (c Config) Validate() error {
	if c.Padding.Top < 0 || c.Padding.Bottom < 0 || c.Padding.Left < 0 || c.Padding.Right < 0 {
		return fmt.Errorf("negative padding %+v", c.Padding)
	}
	if len(c.Wagons) == 0 {
		return errors.New("config needs at least one wagon")
	}
	if c.Mover.Speed <= 0 || c.Mover.Arrival <= 0 {
		return fmt.Errorf("mover speed and arrival need to be positive, got %+v", c.Mover)
	}
	if c.Server.Tick <= 0 {
		return fmt.Errorf("server tick needs to be positive, got %v", c.Server.Tick)
	}
	for i, a := range c.Actors {
		if a.Kind != "player" && a.Kind != "enemy" {
			return fmt.Errorf("actor %d: unknown kind %q", i, a.Kind)
		}
	}
	return nil
}

// PortOrEnv prefers the PORT environment variable.
func (c Config) PortOrEnv() string {
	if port := os.Getenv("PORT"); port != "" {
		return port
	}
	return c.Server.Port
}

func (c Config) GridPadding() pathfinding.Padding {
	return pathfinding.Padding{
		Top:    c.Padding.Top,
		Bottom: c.Padding.Bottom,
		Left:   c.Padding.Left,
		Right:  c.Padding.Right,
	}
}

// Build creates the wagon at (0,0).
func (w WagonConfig) Build() (*model.Wagon, error) {
	if w.Layout != "" {
		return ParseLayout(w.Layout)
	}
	wagon, err := model.NewWagon(w.Width, w.Height)
	if err != nil {
		return nil, err
	}
	for _, d := range w.Doors {
		if err := wagon.PlaceDoor(d.Row, d.Col, d.Open); err != nil {
			return nil, err
		}
	}
	return wagon, nil
}
