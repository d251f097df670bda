package main

import (
	"fmt"
	"image/color"
	"math"
	"time"

	"github.com/golang/freetype/truetype"
	"github.com/hajimehoshi/ebiten"
	"github.com/hajimehoshi/ebiten/ebitenutil"
	"github.com/hajimehoshi/ebiten/inpututil"
	"github.com/hajimehoshi/ebiten/text"
	log "github.com/sirupsen/logrus"
	"github.com/tanema/gween"
	"github.com/zucenko/trainrun/actor"
	"github.com/zucenko/trainrun/model"
	"github.com/zucenko/trainrun/pathfinding"
	"github.com/zucenko/trainrun/sim"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
)

const (
	screenWidth  = 1280
	screenHeight = 720
	panStep      = 256
	zoomStep     = 1.25
)

// StrokeSource represents a input device to provide strokes.
type StrokeSource interface {
	Position() (int, int)
	IsJustReleased() bool
}

type MouseStrokeSource struct{}

func (m *MouseStrokeSource) Position() (int, int) {
	return ebiten.CursorPosition()
}

func (m *MouseStrokeSource) IsJustReleased() bool {
	return inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft)
}

// Stroke is one selection drag.
type Stroke struct {
	source StrokeSource

	// where the drag started
	initX, initY int

	currentX, currentY int

	released bool
}

func NewStroke(source StrokeSource) *Stroke {
	cx, cy := source.Position()
	return &Stroke{
		source:   source,
		initX:    cx,
		initY:    cy,
		currentX: cx,
		currentY: cy,
	}
}

func (s *Stroke) Update() {
	if s.released {
		return
	}
	if s.source.IsJustReleased() {
		s.released = true
		return
	}
	s.currentX, s.currentY = s.source.Position()
}

func (s *Stroke) IsReleased() bool {
	return s.released
}

// Rect returns the dragged rectangle on screen, normalised.
func (s *Stroke) Rect() (x, y, w, h int) {
	x, y = s.initX, s.initY
	w, h = s.currentX-s.initX, s.currentY-s.initY
	if w < 0 {
		x, w = s.currentX, -w
	}
	if h < 0 {
		y, h = s.currentY, -h
	}
	return
}

type GameState int

const (
	IDLE GameState = iota + 1
	SELECTING
	PANNING
)

func (s GameState) Name() string {
	switch s {
	case IDLE:
		return "IDLE"
	case SELECTING:
		return "SELECTING"
	case PANNING:
		return "PANNING"
	default:
		return fmt.Sprintf("N/A(%d)", s)
	}
}

type Game struct {
	State    GameState
	Sim      *sim.Simulation
	Camera   Camera
	Tweens   map[*gween.Tween]*Action
	Frame    *Nine
	stroke   *Stroke
	moving   bool
	hud      string
	HudLabel *ebiten.Image
	lastTick time.Time
}

var Font font.Face

func loadFont() {
	tt, err := truetype.Parse(goregular.TTF)
	if err != nil {
		log.Fatal(err)
	}
	const dpi = 72
	Font = truetype.NewFace(tt, &truetype.Options{
		Size:       20,
		DPI:        dpi,
		SubPixelsX: 100,
		Hinting:    font.HintingFull,
	})
}

func NewGame(s *sim.Simulation) (*Game, error) {
	frame, err := NewFrame(2, COLOR_SELECTED)
	if err != nil {
		return nil, err
	}
	g := &Game{
		State:    IDLE,
		Sim:      s,
		Camera:   Camera{Zoom: 1},
		Tweens:   make(map[*gween.Tween]*Action),
		Frame:    frame,
		lastTick: time.Now(),
	}
	origin := s.Snapshot().Setup[0].Origin
	g.Camera.X, g.Camera.Y = origin.X-panStep/2, origin.Y-panStep/2
	return g, nil
}

func prepareTextImage(s string) *ebiten.Image {
	image, _ := ebiten.NewImage(600, 30, ebiten.FilterLinear)
	text.Draw(image, s, Font, 5, 22, color.White)
	return image
}

func (g *Game) cursorWorld() model.Vec {
	x, y := g.Camera.ToWorld(ebiten.CursorPosition())
	return model.Vec{X: x, Y: y}
}

func (g *Game) handleInput() {
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		g.stroke = NewStroke(&MouseStrokeSource{})
		g.State = SELECTING
	}
	if g.stroke != nil {
		g.stroke.Update()
		if g.stroke.IsReleased() {
			x, y, w, h := g.stroke.Rect()
			fx, fy := g.Camera.ToWorld(x, y)
			tx, ty := g.Camera.ToWorld(x+w, y+h)
			n := g.Sim.Select(model.Vec{X: fx, Y: fy}, model.Vec{X: tx, Y: ty})
			log.Debugf("selected %d", n)
			g.stroke = nil
			g.State = IDLE
		}
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight) {
		g.Sim.Order(g.cursorWorld())
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyT) {
		if _, err := g.Sim.ToggleDoor(g.cursorWorld()); err != nil {
			log.Debug(err)
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.moving = !g.moving
		g.Sim.SetMoving(g.moving)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEqual) {
		g.zoomTo(g.Camera.Zoom * zoomStep)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyMinus) {
		g.zoomTo(g.Camera.Zoom / zoomStep)
	}
	if g.State == IDLE {
		dx, dy := 0.0, 0.0
		switch {
		case inpututil.IsKeyJustPressed(ebiten.KeyLeft):
			dx = -panStep
		case inpututil.IsKeyJustPressed(ebiten.KeyRight):
			dx = panStep
		case inpututil.IsKeyJustPressed(ebiten.KeyUp):
			dy = -panStep
		case inpututil.IsKeyJustPressed(ebiten.KeyDown):
			dy = panStep
		}
		if dx != 0 || dy != 0 {
			g.pan(g.Camera.X+dx/g.Camera.Zoom, g.Camera.Y+dy/g.Camera.Zoom)
		}
		if inpututil.IsKeyJustPressed(ebiten.KeyF) {
			g.focusSelection()
		}
	}
}

func (g *Game) pan(x, y float64) {
	g.State = PANNING
	g.panTo(x, y).addOnFinish(func() { g.State = IDLE })
}

// focusSelection centres the camera on the selected players.
func (g *Game) focusSelection() {
	var sum model.Vec
	n := 0
	g.Sim.View(func(_ *model.Train, _ *pathfinding.Grids, agents []*actor.Agent) {
		for _, a := range agents {
			if a.Selected {
				sum = sum.Add(a.Pos)
				n++
			}
		}
	})
	if n == 0 {
		return
	}
	centre := sum.Scale(1 / float64(n))
	g.pan(centre.X-screenWidth/2/g.Camera.Zoom, centre.Y-screenHeight/2/g.Camera.Zoom)
}

func (g *Game) update(screen *ebiten.Image) error {
	now := time.Now()
	dt := math.Min(now.Sub(g.lastTick).Seconds(), .1)
	g.lastTick = now

	g.updateTweens(float32(dt))
	g.handleInput()
	g.Sim.Tick(dt)

	if ebiten.IsDrawingSkipped() {
		return nil
	}

	if err := screen.Fill(COLOR_BACKGROUND); err != nil {
		log.Warn(err)
	}
	var speed float64
	var cols, rows int
	g.Sim.View(func(train *model.Train, grids *pathfinding.Grids, agents []*actor.Agent) {
		for _, w := range train.Wagons {
			g.drawWagon(screen, w)
		}
		for _, a := range agents {
			g.drawAgent(screen, a)
		}
		speed = train.Speed
		cols, rows = grids.Cols, grids.Rows
	})

	if g.stroke != nil {
		x, y, w, h := g.stroke.Rect()
		g.Frame.SetPosition(x, y)
		g.Frame.SetSize(w, h)
		g.Frame.Draw(screen)
	}

	hud := fmt.Sprintf("speed %.0f  grid %dx%d  generation %d", speed, cols, rows, g.Sim.Generation())
	if hud != g.hud {
		g.hud = hud
		g.HudLabel = prepareTextImage(hud)
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(10, screenHeight-40)
	screen.DrawImage(g.HudLabel, op)

	ebitenutil.DebugPrintAt(screen, g.State.Name(), 10, 10)
	return nil
}

func (g *Game) drawWagon(screen *ebiten.Image, w *model.Wagon) {
	size := model.TileWidth * g.Camera.Zoom
	for row := range w.Tiles {
		for col := range w.Tiles[row] {
			tile := &w.Tiles[row][col]
			x, y := g.Camera.ToScreen(tile.Pos.X, tile.Pos.Y)
			var c color.Color = COLOR_FLOOR
			switch {
			case tile.IsDoor() && tile.Solid:
				c = COLOR_DOOR_SHUT
			case tile.IsDoor():
				c = COLOR_DOOR_OPEN
			case tile.Solid:
				c = COLOR_WALL
			}
			ebitenutil.DrawRect(screen, x+1, y+1, size-2, size-2, c)
		}
	}
}

func (g *Game) drawAgent(screen *ebiten.Image, a *actor.Agent) {
	var c color.Color = COLOR_PLAYER
	switch {
	case a.Kind == actor.Enemy:
		c = COLOR_ENEMY
	case a.Selected:
		c = COLOR_SELECTED
	}
	prev := a.Pos
	for _, step := range a.Steps {
		x1, y1 := g.Camera.ToScreen(prev.X, prev.Y)
		x2, y2 := g.Camera.ToScreen(step.X, step.Y)
		ebitenutil.DrawLine(screen, x1, y1, x2, y2, COLOR_PATH)
		prev = step
	}
	b := a.Bounds()
	x, y := g.Camera.ToScreen(b.Left, b.Top)
	ebitenutil.DrawRect(screen, x, y, b.Width*g.Camera.Zoom, b.Height*g.Camera.Zoom, c)
}

func main() {
	cfg, err := Load()
	if err != nil {
		log.Fatal(err)
	}
	s, err := sim.New(cfg)
	if err != nil {
		log.Fatal(err)
	}
	loadFont()
	game, err := NewGame(s)
	if err != nil {
		log.Fatal(err)
	}
	if err := ebiten.Run(game.update, screenWidth, screenHeight, 1, "Train run"); err != nil {
		log.Fatal(err)
	}
}
