package habitat

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"time"
)

// Errors returned by Board operations. None of them leave the board in a
// changed state.
var (
	ErrUnknownItem  = errors.New("habitat: unknown item")
	ErrItemPlaced   = errors.New("habitat: item already placed")
	ErrNoDrag       = errors.New("habitat: no drag in progress")
	ErrNotRemovable = errors.New("habitat: placed items cannot be removed")
)

// DropResult classifies the outcome of a release.
type DropResult uint8

const (
	DropMissed   DropResult = iota // no useful target; miss policy applied
	DropPlaced                     // own placeholder; item is now placed
	DropTrashed                    // trash; item is back in the tray
	DropReturned                   // released over the tray; item is back in the tray
)

func (d DropResult) String() string {
	switch d {
	case DropPlaced:
		return "placed"
	case DropTrashed:
		return "trashed"
	case DropReturned:
		return "returned"
	default:
		return "missed"
	}
}

// Drop reports what a release or cancellation did. Point is the map-space
// hit-test point. Target is set when Hit is true, including a foreign
// placeholder that produced a miss.
type Drop struct {
	ItemID   string
	Result   DropResult
	Point    Vec2
	Target   Target
	Hit      bool
	Location Location
	Position Vec2
	Score    int
}

// Grab describes a started drag.
type Grab struct {
	ItemID    string
	Offset    Vec2
	Origin    Vec2
	DoubleTap bool
}

// Board is the top-level game state: the item and target registries, one
// gesture tracker per item, the placement set and the score. All methods
// must be called from a single goroutine (the host's input thread).
type Board struct {
	cfg       BoardConfig
	items     *ItemRegistry
	targets   *TargetRegistry
	trackers  []*GestureTracker
	active    int
	taps      *TapClock
	canonical Vec2

	score  int
	placed map[string]struct{}
	scored map[string]struct{}

	scroll     float64
	trayScroll float64

	handlers handlerRegistry
	store    EventStore
	warnings []string

	debug    bool
	debugOut io.Writer
}

// NewBoard builds a fresh session from cfg. Every item starts in the tray.
func NewBoard(cfg BoardConfig) (*Board, error) {
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	canonical := cfg.CanonicalOrigin()
	items, err := NewItemRegistry(cfg.Items, canonical)
	if err != nil {
		return nil, fmt.Errorf("board config: %w", err)
	}
	targets, err := NewTargetRegistry(cfg.Trash, cfg.Placeholders)
	if err != nil {
		return nil, fmt.Errorf("board config: %w", err)
	}

	b := &Board{
		cfg:       cfg,
		items:     items,
		targets:   targets,
		trackers:  make([]*GestureTracker, items.Len()),
		active:    -1,
		taps:      NewTapClock(cfg.DoubleTapWindow),
		canonical: canonical,
		placed:    make(map[string]struct{}),
		scored:    make(map[string]struct{}),
		debugOut:  os.Stderr,
	}
	for i := range b.trackers {
		b.trackers[i] = newGestureTracker(items.At(i).ID, cfg.ItemSize)
	}
	for _, o := range targets.Overlaps() {
		b.warnings = append(b.warnings, o.String())
	}
	for _, it := range cfg.Items {
		if _, ok := targets.Placeholder(it.ID); !ok {
			b.warnings = append(b.warnings, fmt.Sprintf("item %q has no placeholder", it.ID))
		}
	}
	return b, nil
}

// Config returns the configuration the board was built from.
func (b *Board) Config() BoardConfig {
	return b.cfg
}

// Warnings returns layout problems found at construction time.
func (b *Board) Warnings() []string {
	return b.warnings
}

// Items returns a copy of every item in registry order.
func (b *Board) Items() []Item {
	return b.items.All()
}

// Item returns the item with the given id.
func (b *Board) Item(id string) (Item, bool) {
	return b.items.Get(id)
}

// TrayItems returns the items currently in the tray, in registry order.
func (b *Board) TrayItems() []Item {
	return b.items.InTray()
}

// Targets returns the target registry.
func (b *Board) Targets() *TargetRegistry {
	return b.targets
}

// Score returns the running score.
func (b *Board) Score() int {
	return b.score
}

// IsPlaced reports whether id is in the placed set.
func (b *Board) IsPlaced(id string) bool {
	_, ok := b.placed[id]
	return ok
}

// PlacedIDs returns the placed set in registry order.
func (b *Board) PlacedIDs() []string {
	var out []string
	for i := 0; i < b.items.Len(); i++ {
		id := b.items.At(i).ID
		if b.IsPlaced(id) {
			out = append(out, id)
		}
	}
	return out
}

// Complete reports whether every item that has a placeholder is placed.
func (b *Board) Complete() bool {
	for _, p := range b.targets.placeholders {
		if !b.IsPlaced(p.ItemID) {
			return false
		}
	}
	return true
}

// CanonicalOrigin returns the screen-space spawn origin for grabbed tray items.
func (b *Board) CanonicalOrigin() Vec2 {
	return b.canonical
}

// Scroll sets the vertical map scroll offset reported by the host viewport.
func (b *Board) Scroll(offset float64) {
	b.scroll = offset
}

// ScrollOffset returns the current vertical scroll offset.
func (b *Board) ScrollOffset() float64 {
	return b.scroll
}

// Dragging returns the active drag session, if any.
func (b *Board) Dragging() (DragSession, bool) {
	if b.active < 0 {
		return DragSession{}, false
	}
	return b.trackers[b.active].Session()
}

// Grab starts dragging id. pointer is in screen space and at is the event
// time used for double-tap detection. A placed item cannot be dragged; the
// grab still counts as a tap so a double tap on a placed item is reported.
// A drag left open by the host is cancelled before the new one starts.
func (b *Board) Grab(id string, pointer Vec2, at time.Time) (Grab, error) {
	idx := b.items.Index(id)
	if idx < 0 {
		return Grab{}, fmt.Errorf("%w: %q", ErrUnknownItem, id)
	}
	item := b.items.At(idx)

	double := b.taps.Tap(id, at)
	if double {
		b.debugf("double tap %s", id)
	}

	if item.Location == LocationPlaced {
		if double {
			b.emit(Event{Type: EventDoubleTap, ItemID: id, Location: item.Location, Point: pointer, Position: item.Pos})
		}
		return Grab{}, fmt.Errorf("%w: %q", ErrItemPlaced, id)
	}

	if b.active >= 0 {
		stale := b.trackers[b.active].ItemID()
		b.debugf("grab %s while %s still dragging; cancelling", id, stale)
		b.Cancel()
		item = b.items.At(idx)
	}

	screenOrigin := item.Pos.Sub(Vec2{Y: b.scroll})
	s := b.trackers[idx].Grab(item.Location, pointer, screenOrigin, b.canonical, at)
	b.active = idx
	if item.Location == LocationInTray {
		// The only InTray -> OnCanvas transition. Pos is map space.
		b.items.relocate(id, LocationOnCanvas, s.Origin.Add(Vec2{Y: b.scroll}))
	}
	b.debugf("grab %s offset=(%g,%g) origin=(%g,%g)", id, s.Offset.X, s.Offset.Y, s.Origin.X, s.Origin.Y)

	item = b.items.At(idx)
	b.emit(Event{Type: EventGrab, ItemID: id, Location: item.Location, Point: pointer, Position: item.Pos})
	if double {
		b.emit(Event{Type: EventDoubleTap, ItemID: id, Location: item.Location, Point: pointer, Position: item.Pos})
	}
	return Grab{ItemID: id, Offset: s.Offset, Origin: s.Origin, DoubleTap: double}, nil
}

// Move updates the dragged item's display origin to pointer - offset and
// returns it. No scroll correction is applied: the dragged item is drawn in
// screen space.
func (b *Board) Move(pointer Vec2) (Vec2, error) {
	if b.active < 0 {
		return Vec2{}, ErrNoDrag
	}
	t := b.trackers[b.active]
	origin := t.Move(pointer)
	t.setOrigin(origin)
	return origin, nil
}

// Release ends the drag at pointer and resolves the drop.
func (b *Board) Release(pointer Vec2) (Drop, error) {
	if b.active < 0 {
		return Drop{}, ErrNoDrag
	}
	t := b.trackers[b.active]
	p := t.ReleasePoint(pointer, b.scroll)
	t.end()
	b.active = -1

	// A finger lifted over the pinned tray returns the item to it.
	if b.InTrayArea(pointer) {
		return b.settle(t.ItemID(), p, Target{}, false, true, EventMissed), nil
	}
	target, hit := b.targets.Resolve(p)
	return b.settle(t.ItemID(), p, target, hit, false, EventMissed), nil
}

// Cancel ends an interrupted drag as a miss at the item's last display
// position. It reports false when no drag was active.
func (b *Board) Cancel() (Drop, bool) {
	if b.active < 0 {
		return Drop{}, false
	}
	t := b.trackers[b.active]
	s := t.end()
	b.active = -1
	p := s.Origin.Add(Vec2{Y: b.scroll})
	half := b.cfg.ItemSize / 2
	overTray := b.InTrayArea(s.Origin.Add(Vec2{X: half, Y: half}))
	b.debugf("cancel %s at (%g,%g)", s.ItemID, p.X, p.Y)
	return b.settle(s.ItemID, p, Target{}, false, overTray, EventCancelled), true
}

// settle applies the placement state machine for a finished drag. A miss
// that stays on the canvas is clamped to the map so the item remains
// reachable by scrolling.
func (b *Board) settle(id string, p Vec2, target Target, hit, overTray bool, missEvent EventType) Drop {
	d := Drop{ItemID: id, Point: p, Target: target, Hit: hit}

	switch {
	case overTray:
		b.items.relocate(id, LocationInTray, b.canonical)
		d.Result = DropReturned
	case hit && target.Kind == TargetTrash:
		b.items.relocate(id, LocationInTray, b.canonical)
		d.Result = DropTrashed
	case hit && target.Kind == TargetPlaceholder && target.ItemID == id:
		b.items.relocate(id, LocationPlaced, target.Rect.Origin())
		b.placed[id] = struct{}{}
		if _, done := b.scored[id]; !done {
			b.scored[id] = struct{}{}
			b.score += b.cfg.ScoreIncrement
		}
		d.Result = DropPlaced
	default:
		if b.cfg.OnMiss == MissReturnToTray {
			b.items.relocate(id, LocationInTray, b.canonical)
		} else {
			b.items.relocate(id, LocationOnCanvas, b.clampToMap(p))
		}
		d.Result = DropMissed
	}

	item, _ := b.items.Get(id)
	d.Location = item.Location
	d.Position = item.Pos
	d.Score = b.score
	b.debugf("release %s at (%g,%g) -> %s (score %d)", id, p.X, p.Y, d.Result, b.score)

	evt := Event{ItemID: id, Location: item.Location, Point: p, Position: item.Pos, Target: target, Hit: hit}
	switch d.Result {
	case DropPlaced:
		evt.Type = EventPlaced
	case DropTrashed:
		evt.Type = EventTrashed
	default:
		evt.Type = missEvent
	}
	b.emit(evt)
	return d
}

func (b *Board) clampToMap(p Vec2) Vec2 {
	maxX := math.Max(0, b.cfg.Map.Width-b.cfg.ItemSize)
	maxY := math.Max(0, b.cfg.Map.Height-b.cfg.ItemSize)
	return Vec2{
		X: math.Max(0, math.Min(p.X, maxX)),
		Y: math.Max(0, math.Min(p.Y, maxY)),
	}
}

// Remove sends id back to the tray, the delete action offered after a double
// tap. Placed items can only be removed when the board was configured with
// placed_reversible; the score is kept and the item will not score again.
func (b *Board) Remove(id string) error {
	idx := b.items.Index(id)
	if idx < 0 {
		return fmt.Errorf("%w: %q", ErrUnknownItem, id)
	}
	item := b.items.At(idx)
	switch item.Location {
	case LocationInTray:
		return nil
	case LocationPlaced:
		if !b.cfg.PlacedReversible {
			return fmt.Errorf("%w: %q", ErrNotRemovable, id)
		}
		delete(b.placed, id)
	}
	if b.active == idx {
		b.trackers[idx].end()
		b.active = -1
	}
	b.taps.Forget(id)
	b.items.relocate(id, LocationInTray, b.canonical)
	b.debugf("remove %s", id)
	b.emit(Event{Type: EventRemoved, ItemID: id, Location: LocationInTray, Position: b.canonical})
	return nil
}
