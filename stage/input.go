package stage

import (
	"errors"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/phanxgames/habitat"
)

// Keyboard and wheel scrolling steps, in pixels.
const (
	wheelStep    = 40.0
	keyStep      = 80.0
	scrollTweenS = 0.25
)

// pointerMode is what a held pointer is doing.
type pointerMode uint8

const (
	modeNone       pointerMode = iota
	modeItem                   // dragging a board item
	modeScrollMap              // pressed on empty map; drags scroll vertically
	modeScrollTray             // pressed on empty tray; drags scroll horizontally
)

// pointerState tracks the single primary pointer: the mouse or the first
// touch, whichever pressed first.
type pointerState struct {
	down    bool
	mode    pointerMode
	lastX   float64
	lastY   float64
	touch   bool
	touchID ebiten.TouchID
}

// processInput reads the mouse, touches, wheel and keys for this frame.
func (g *Game) processInput() {
	if !ebiten.IsFocused() {
		if g.ptr.down {
			g.cancelPointer()
		}
		return
	}

	x, y, pressed := g.readPointer()
	g.processPointer(x, y, pressed)

	if _, wy := ebiten.Wheel(); wy != 0 && !g.ptr.down {
		g.scrollMapBy(-wy * wheelStep)
	}
	g.processKeys()
}

// readPointer returns the primary pointer position and whether it is held.
// A touch that started the current gesture keeps ownership until it lifts.
func (g *Game) readPointer() (float64, float64, bool) {
	g.touchIDs = ebiten.AppendTouchIDs(g.touchIDs[:0])
	if g.ptr.down && g.ptr.touch {
		for _, id := range g.touchIDs {
			if id == g.ptr.touchID {
				tx, ty := ebiten.TouchPosition(id)
				return float64(tx), float64(ty), true
			}
		}
		return g.ptr.lastX, g.ptr.lastY, false
	}
	if !g.ptr.down && len(g.touchIDs) > 0 {
		id := g.touchIDs[0]
		g.ptr.touch = true
		g.ptr.touchID = id
		tx, ty := ebiten.TouchPosition(id)
		return float64(tx), float64(ty), true
	}
	mx, my := ebiten.CursorPosition()
	return float64(mx), float64(my), ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
}

func (g *Game) processKeys() {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyEscape):
		if g.ptr.down {
			g.cancelPointer()
		}
	case inpututil.IsKeyJustPressed(ebiten.KeyPageDown):
		g.ScrollMap(g.mapView.Offset+g.mapView.Visible, scrollTweenS)
	case inpututil.IsKeyJustPressed(ebiten.KeyPageUp):
		g.ScrollMap(g.mapView.Offset-g.mapView.Visible, scrollTweenS)
	case inpututil.IsKeyJustPressed(ebiten.KeyHome):
		g.ScrollMap(0, scrollTweenS)
	case inpututil.IsKeyJustPressed(ebiten.KeyEnd):
		g.ScrollMap(g.mapView.Max(), scrollTweenS)
	case inpututil.IsKeyJustPressed(ebiten.KeyR):
		if err := g.Restart(g.cfg.Board); err != nil {
			g.logf("restart: %v", err)
		}
	}
	if ebiten.IsKeyPressed(ebiten.KeyDown) {
		g.scrollMapBy(keyStep / 8)
	}
	if ebiten.IsKeyPressed(ebiten.KeyUp) {
		g.scrollMapBy(-keyStep / 8)
	}
}

// processPointer runs the pointer state machine for one frame.
func (g *Game) processPointer(x, y float64, pressed bool) {
	ps := &g.ptr

	if pressed && !ps.down {
		ps.down = true
		ps.lastX = x
		ps.lastY = y
		ps.mode = g.pointerDown(x, y)
	} else if !pressed && ps.down {
		if ps.mode == modeItem {
			g.drop(x, y)
		}
		*ps = pointerState{lastX: x, lastY: y}
	} else if pressed && ps.down {
		if x == ps.lastX && y == ps.lastY {
			return
		}
		dx := x - ps.lastX
		dy := y - ps.lastY
		switch ps.mode {
		case modeItem:
			if _, err := g.board.Move(habitat.Vec2{X: x, Y: y}); err != nil {
				ps.mode = modeNone
			}
		case modeScrollMap:
			g.scrollMapBy(-dy)
		case modeScrollTray:
			g.trayView.ScrollBy(-dx)
			g.board.ScrollTray(g.trayView.Offset)
		}
		ps.lastX = x
		ps.lastY = y
	}
}

// pointerDown decides what a press starts: a drag on an item, or a scroll
// of whichever area was pressed.
func (g *Game) pointerDown(x, y float64) pointerMode {
	p := habitat.Vec2{X: x, Y: y}
	if id, ok := g.board.ItemAt(p); ok {
		grab, err := g.board.Grab(id, p, g.cfg.Now())
		switch {
		case err == nil && grab.DoubleTap:
			// The second tap ends as a tap and opens the delete dialog
			// instead of dragging.
			if _, err := g.board.Release(p); err != nil {
				g.logf("release %s: %v", id, err)
			}
			if it, _ := g.board.Item(id); it.Location == habitat.LocationInTray && g.pendingDelete == id {
				g.pendingDelete = ""
			}
			return modeNone
		case err == nil:
			delete(g.snaps, id)
			return modeItem
		case errors.Is(err, habitat.ErrItemPlaced):
		default:
			g.logf("grab %s: %v", id, err)
		}
	}
	if g.board.InTrayArea(p) {
		return modeScrollTray
	}
	return modeScrollMap
}

// drop releases the dragged item and starts the snap animation when it lands
// on its placeholder.
func (g *Game) drop(x, y float64) {
	s, ok := g.board.Dragging()
	if !ok {
		return
	}
	from := s.Origin
	d, err := g.board.Release(habitat.Vec2{X: x, Y: y})
	if err != nil {
		g.logf("release: %v", err)
		return
	}
	if d.Result == habitat.DropPlaced {
		g.startSnap(d.ItemID, from.Add(habitat.Vec2{Y: g.board.ScrollOffset()}), d.Position)
	}
}

// cancelPointer ends the current gesture as if the system interrupted it.
func (g *Game) cancelPointer() {
	if g.ptr.mode == modeItem {
		g.board.Cancel()
	}
	g.ptr = pointerState{lastX: g.ptr.lastX, lastY: g.ptr.lastY}
}

func (g *Game) scrollMapBy(d float64) {
	g.mapView.ScrollBy(d)
	g.board.Scroll(g.mapView.Offset)
}
