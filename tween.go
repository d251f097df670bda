package main

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Action reacts to one running tween and may queue the tweens that follow it.
type Action struct {
	nexts    []func(g *Game)
	onChange func(float32)
	onFinish []func()
}

func (a *Action) addOnFinish(f func()) {
	a.onFinish = append(a.onFinish, f)
}

// next queues t to start once the current tween finished and returns its
// action.
func (a *Action) next(t *gween.Tween, onChange func(float32)) *Action {
	action := &Action{onChange: onChange}
	a.nexts = append(a.nexts,
		func(g *Game) {
			g.Tweens[t] = action
		})
	return action
}

const cameraSeconds = .35

// panTo moves the camera along x first, then y. The returned action belongs to
// the last leg.
func (g *Game) panTo(x, y float64) *Action {
	cam := &g.Camera
	action := &Action{onChange: func(v float32) { cam.X = float64(v) }}
	g.Tweens[gween.New(float32(cam.X), float32(x), cameraSeconds, ease.OutQuad)] = action
	return action.next(gween.New(float32(cam.Y), float32(y), cameraSeconds, ease.OutQuad),
		func(v float32) { cam.Y = float64(v) })
}

func (g *Game) zoomTo(zoom float64) {
	cam := &g.Camera
	g.Tweens[gween.New(float32(cam.Zoom), float32(zoom), cameraSeconds, ease.InOutSine)] =
		&Action{onChange: func(v float32) { cam.Zoom = float64(v) }}
}

func (g *Game) updateTweens(dt float32) {
	for t, a := range g.Tweens {
		curr, finished := t.Update(dt)
		if a.onChange != nil {
			a.onChange(curr)
		}
		if finished {
			for _, onFinish := range a.onFinish {
				onFinish()
			}
			for _, next := range a.nexts {
				next(g)
			}
			delete(g.Tweens, t)
		}
	}
}
