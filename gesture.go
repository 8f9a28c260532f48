package habitat

import "time"

// DragSession is the state of one drag, from grab to release. Offset is the
// vector from the item's origin to the grab point and never changes during
// the session. Origin is the item's current screen-space display origin.
type DragSession struct {
	ItemID string
	Offset Vec2
	Origin Vec2
	Start  time.Time
}

// GestureTracker is the drag controller for a single item. A Board builds
// one per item up front.
type GestureTracker struct {
	itemID  string
	half    Vec2
	session DragSession
	active  bool
}

func newGestureTracker(itemID string, itemSize float64) *GestureTracker {
	return &GestureTracker{
		itemID: itemID,
		half:   Vec2{X: itemSize / 2, Y: itemSize / 2},
	}
}

// ItemID returns the item this tracker drives.
func (g *GestureTracker) ItemID() string {
	return g.itemID
}

// Grab starts a session. A tray item jumps to canonical and is held at its
// visual center; a canvas item keeps the exact point the pointer touched.
// pointer and itemOrigin are both screen-space.
func (g *GestureTracker) Grab(loc Location, pointer, itemOrigin, canonical Vec2, at time.Time) DragSession {
	var origin, offset Vec2
	if loc == LocationInTray {
		origin = canonical
		offset = g.half
	} else {
		origin = itemOrigin
		offset = pointer.Sub(itemOrigin)
	}
	g.session = DragSession{ItemID: g.itemID, Offset: offset, Origin: origin, Start: at}
	g.active = true
	return g.session
}

// Move returns the display origin for pointer. It is a pure function of the
// pointer and the offset captured at grab time.
func (g *GestureTracker) Move(pointer Vec2) Vec2 {
	return pointer.Sub(g.session.Offset)
}

// ReleasePoint returns the map-space hit-test point for a release at pointer.
func (g *GestureTracker) ReleasePoint(pointer Vec2, scroll float64) Vec2 {
	return ReleasePoint(pointer, g.session.Offset, scroll)
}

// Session returns the current session, if any.
func (g *GestureTracker) Session() (DragSession, bool) {
	return g.session, g.active
}

// Active reports whether a drag is in progress.
func (g *GestureTracker) Active() bool {
	return g.active
}

func (g *GestureTracker) setOrigin(origin Vec2) {
	g.session.Origin = origin
}

func (g *GestureTracker) end() DragSession {
	s := g.session
	g.session = DragSession{}
	g.active = false
	return s
}

// TapClock remembers the last grab time per item for double-tap detection.
// Keying by item id keeps a tap on one item from pairing with a tap on another.
type TapClock struct {
	window time.Duration
	last   map[string]time.Time
}

// NewTapClock creates a clock that pairs taps no more than window apart.
func NewTapClock(window time.Duration) *TapClock {
	return &TapClock{window: window, last: make(map[string]time.Time)}
}

// Tap records a grab of id at t and reports whether it completes a double
// tap. A completed pair is forgotten so a third tap starts a new pair.
func (c *TapClock) Tap(id string, t time.Time) bool {
	prev, ok := c.last[id]
	if ok {
		d := t.Sub(prev)
		if d >= 0 && d <= c.window {
			delete(c.last, id)
			return true
		}
	}
	c.last[id] = t
	return false
}

// Forget drops the tap history of id.
func (c *TapClock) Forget(id string) {
	delete(c.last, id)
}
