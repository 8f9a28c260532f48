package stage

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/phanxgames/habitat"
)

// Animation timings in seconds.
const (
	snapDuration  = 0.18
	toastDuration = 1.6
)

// snapAnim slides a just-placed item from where it was released onto its
// placeholder. Positions are map space.
type snapAnim struct {
	x, y *gween.Tween
	pos  habitat.Vec2
	done bool
}

func (g *Game) startSnap(id string, from, to habitat.Vec2) {
	if from == to {
		return
	}
	g.snaps[id] = &snapAnim{
		x:   gween.New(float32(from.X), float32(to.X), snapDuration, ease.OutBack),
		y:   gween.New(float32(from.Y), float32(to.Y), snapDuration, ease.OutBack),
		pos: from,
	}
}

func (a *snapAnim) update(dt float32) {
	x, xDone := a.x.Update(dt)
	y, yDone := a.y.Update(dt)
	a.pos = habitat.Vec2{X: float64(x), Y: float64(y)}
	a.done = xDone && yDone
}

// toast is the transient success message. The host owns its lifetime.
type toast struct {
	text  string
	alpha float32
	fade  *gween.Tween
}

func (g *Game) showToast(msg string) {
	g.toast = toast{
		text:  msg,
		alpha: 1,
		fade:  gween.New(1, 0, toastDuration, ease.InQuad),
	}
}

func (g *Game) updateAnimations(dt float32) {
	for id, a := range g.snaps {
		a.update(dt)
		if a.done {
			delete(g.snaps, id)
		}
	}
	if g.toast.fade != nil {
		a, done := g.toast.fade.Update(dt)
		g.toast.alpha = a
		if done {
			g.toast = toast{}
		}
	}
}

// drawOrigin is where id is drawn on screen, following a running snap.
func (g *Game) drawOrigin(id string) habitat.Vec2 {
	if a, ok := g.snaps[id]; ok {
		return a.pos.Sub(habitat.Vec2{Y: g.board.ScrollOffset()})
	}
	o, _ := g.board.DisplayOrigin(id)
	return o
}
