package habitat

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"
)

// testConfig is the ocean layout trimmed to two items. Canonical origin is
// (155, 282); tray slot 0 is (16, 660, 80, 80) and slot 1 is (112, 660, 80, 80).
func testConfig() BoardConfig {
	return BoardConfig{
		Name:           "test",
		Map:            Size{Width: 390, Height: 1000},
		Viewport:       Size{Width: 390, Height: 844},
		TrayHeight:     200,
		ItemSize:       80,
		ScoreIncrement: 3,
		Trash:          Rect{X: 20, Y: 540, Width: 30, Height: 30},
		Items: []ItemSpec{
			{ID: "whale", Name: "Blue Whale", Asset: "sea/whale.png"},
			{ID: "shark", Name: "Shark", Asset: "sea/shark.png"},
		},
		Placeholders: []PlaceholderSpec{
			{ID: "whale", Rect: Rect{X: 50, Y: 600, Width: 80, Height: 80}},
			{ID: "shark", Rect: Rect{X: 180, Y: 300, Width: 80, Height: 80}},
		},
	}
}

var t0 = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func newTestBoard(t *testing.T, mutate ...func(*BoardConfig)) *Board {
	t.Helper()
	cfg := testConfig()
	for _, m := range mutate {
		m(&cfg)
	}
	b, err := NewBoard(cfg)
	if err != nil {
		t.Fatalf("NewBoard: %v", err)
	}
	return b
}

// checkInvariants verifies location == Placed <=> id in placed set.
func checkInvariants(t *testing.T, b *Board) {
	t.Helper()
	for _, it := range b.Items() {
		if (it.Location == LocationPlaced) != b.IsPlaced(it.ID) {
			t.Errorf("item %s: location %v but IsPlaced=%v", it.ID, it.Location, b.IsPlaced(it.ID))
		}
	}
}

func location(t *testing.T, b *Board, id string) Location {
	t.Helper()
	it, ok := b.Item(id)
	if !ok {
		t.Fatalf("item %s missing", id)
	}
	return it.Location
}

func TestNewBoardStartsInTray(t *testing.T) {
	b := newTestBoard(t)
	if got := len(b.TrayItems()); got != 2 {
		t.Fatalf("TrayItems = %d, want 2", got)
	}
	if b.Score() != 0 {
		t.Errorf("Score = %d, want 0", b.Score())
	}
	if len(b.Warnings()) != 0 {
		t.Errorf("Warnings = %v, want none", b.Warnings())
	}
	if got := b.CanonicalOrigin(); got != (Vec2{155, 282}) {
		t.Errorf("CanonicalOrigin = %v, want (155,282)", got)
	}
	checkInvariants(t, b)
}

func TestNewBoardRejectsBadConfig(t *testing.T) {
	_, err := NewBoard(testConfig())
	if err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}
	cfg := testConfig()
	cfg.Placeholders = append(cfg.Placeholders, PlaceholderSpec{ID: "squid", Rect: Rect{Width: 1, Height: 1}})
	if _, err := NewBoard(cfg); err == nil || !strings.Contains(err.Error(), "squid") {
		t.Errorf("NewBoard with unknown placeholder id: err = %v", err)
	}
}

func TestNewBoardWarnsOnOverlap(t *testing.T) {
	b := newTestBoard(t, func(c *BoardConfig) {
		c.Trash = Rect{X: 50, Y: 600, Width: 30, Height: 30}
	})
	if len(b.Warnings()) != 1 {
		t.Fatalf("Warnings = %v, want one overlap", b.Warnings())
	}
	if !strings.Contains(b.Warnings()[0], "whale") {
		t.Errorf("warning %q should name whale", b.Warnings()[0])
	}
}

// Scenario A: a tray item dropped on its placeholder is placed and scores.
func TestScenarioPlaceFromTray(t *testing.T) {
	b := newTestBoard(t)
	var notified []string
	b.OnPlaced(func(e Event) { notified = append(notified, e.ItemID) })

	slot := b.TraySlot(0).Center()
	g, err := b.Grab("whale", slot, t0)
	if err != nil {
		t.Fatalf("Grab: %v", err)
	}
	if g.Offset != (Vec2{40, 40}) {
		t.Errorf("tray grab offset = %v, want item center (40,40)", g.Offset)
	}
	if g.Origin != b.CanonicalOrigin() {
		t.Errorf("tray grab origin = %v, want canonical %v", g.Origin, b.CanonicalOrigin())
	}
	if location(t, b, "whale") != LocationOnCanvas {
		t.Errorf("whale should be on canvas after grab")
	}
	checkInvariants(t, b)

	ph, _ := b.Targets().Placeholder("whale")
	center := ph.Rect.Center()
	if _, err := b.Move(center); err != nil {
		t.Fatalf("Move: %v", err)
	}
	d, err := b.Release(center)
	if err != nil {
		t.Fatalf("Release: %v", err)
	}
	if d.Result != DropPlaced {
		t.Fatalf("Result = %v, want placed (point %v)", d.Result, d.Point)
	}
	it, _ := b.Item("whale")
	if it.Location != LocationPlaced {
		t.Errorf("Location = %v, want placed", it.Location)
	}
	if it.Pos != ph.Rect.Origin() {
		t.Errorf("Pos = %v, want snapped to %v", it.Pos, ph.Rect.Origin())
	}
	if b.Score() != 3 {
		t.Errorf("Score = %d, want 3", b.Score())
	}
	if !b.IsPlaced("whale") {
		t.Error("whale should be in the placed set")
	}
	if len(notified) != 1 || notified[0] != "whale" {
		t.Errorf("success notifications = %v, want [whale]", notified)
	}
	checkInvariants(t, b)
}

// Scenario B: dropping on the trash sends the item back to the tray.
func TestScenarioTrash(t *testing.T) {
	b := newTestBoard(t)
	if _, err := b.Grab("shark", b.TraySlot(1).Center(), t0); err != nil {
		t.Fatal(err)
	}
	// Offset is (40,40); the adjusted release point is (25, 545).
	release := Vec2{25 + 40, 540 + 5 + 40}
	if _, err := b.Move(release); err != nil {
		t.Fatal(err)
	}
	d, err := b.Release(release)
	if err != nil {
		t.Fatal(err)
	}
	if d.Point != (Vec2{25, 545}) {
		t.Errorf("Point = %v, want (25,545)", d.Point)
	}
	if d.Result != DropTrashed || d.Target.Kind != TargetTrash {
		t.Errorf("drop = %+v, want trashed", d)
	}
	it, _ := b.Item("shark")
	if it.Location != LocationInTray {
		t.Errorf("Location = %v, want in-tray", it.Location)
	}
	if it.Pos != b.CanonicalOrigin() {
		t.Errorf("Pos = %v, want reset to canonical", it.Pos)
	}
	if b.Score() != 0 {
		t.Errorf("Score = %d, want 0", b.Score())
	}
	checkInvariants(t, b)
}

func placeWhale(t *testing.T, b *Board, at time.Time) {
	t.Helper()
	ph, _ := b.Targets().Placeholder("whale")
	if _, err := b.Grab("whale", b.TraySlot(0).Center(), at); err != nil {
		t.Fatal(err)
	}
	d, err := b.Release(ph.Rect.Center())
	if err != nil {
		t.Fatal(err)
	}
	if d.Result != DropPlaced {
		t.Fatalf("placeWhale: result %v", d.Result)
	}
}

// Scenario C: a placed item is terminal and never scores twice.
func TestScenarioPlacedIsTerminal(t *testing.T) {
	b := newTestBoard(t)
	placeWhale(t, b, t0)

	ph, _ := b.Targets().Placeholder("whale")
	_, err := b.Grab("whale", ph.Rect.Center(), t0.Add(time.Second))
	if !errors.Is(err, ErrItemPlaced) {
		t.Fatalf("Grab on placed item: err = %v, want ErrItemPlaced", err)
	}
	if _, ok := b.Dragging(); ok {
		t.Error("no drag should start on a placed item")
	}
	if _, err := b.Release(ph.Rect.Center()); !errors.Is(err, ErrNoDrag) {
		t.Errorf("Release: err = %v, want ErrNoDrag", err)
	}
	if err := b.Remove("whale"); !errors.Is(err, ErrNotRemovable) {
		t.Errorf("Remove: err = %v, want ErrNotRemovable", err)
	}
	if b.Score() != 3 {
		t.Errorf("Score = %d, want 3", b.Score())
	}
	if location(t, b, "whale") != LocationPlaced {
		t.Error("whale should still be placed")
	}
	checkInvariants(t, b)
}

func TestPlacedReversible(t *testing.T) {
	b := newTestBoard(t, func(c *BoardConfig) { c.PlacedReversible = true })
	placeWhale(t, b, t0)

	var removed []string
	b.OnRemoved(func(e Event) { removed = append(removed, e.ItemID) })

	if err := b.Remove("whale"); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if location(t, b, "whale") != LocationInTray || b.IsPlaced("whale") {
		t.Fatal("whale should be back in the tray and out of the placed set")
	}
	if b.Score() != 3 {
		t.Errorf("Score after removal = %d, want 3 (score never decreases)", b.Score())
	}
	checkInvariants(t, b)

	placeWhale(t, b, t0.Add(time.Second))
	if b.Score() != 3 {
		t.Errorf("Score after re-placing = %d, want 3 (each item scores once)", b.Score())
	}
	if len(removed) != 1 {
		t.Errorf("removed events = %v", removed)
	}
	checkInvariants(t, b)
}

// Scenario D: a miss leaves the item where it was dropped.
func TestScenarioMissRemainsInPlace(t *testing.T) {
	b := newTestBoard(t)
	if _, err := b.Grab("shark", b.TraySlot(1).Center(), t0); err != nil {
		t.Fatal(err)
	}
	drop := Vec2{340, 100}
	origin, _ := b.Move(drop)
	d, err := b.Release(drop)
	if err != nil {
		t.Fatal(err)
	}
	if d.Result != DropMissed || d.Hit {
		t.Fatalf("drop = %+v, want a miss with no target", d)
	}
	it, _ := b.Item("shark")
	if it.Location != LocationOnCanvas {
		t.Errorf("Location = %v, want on-canvas", it.Location)
	}
	if it.Pos != origin {
		t.Errorf("Pos = %v, want drop origin %v", it.Pos, origin)
	}
	if b.Score() != 0 || len(b.PlacedIDs()) != 0 {
		t.Errorf("score %d placed %v, want no change", b.Score(), b.PlacedIDs())
	}
	checkInvariants(t, b)
}

func TestMissReturnToTray(t *testing.T) {
	b := newTestBoard(t, func(c *BoardConfig) { c.OnMiss = MissReturnToTray })
	if _, err := b.Grab("shark", b.TraySlot(1).Center(), t0); err != nil {
		t.Fatal(err)
	}
	d, err := b.Release(Vec2{340, 100})
	if err != nil {
		t.Fatal(err)
	}
	if d.Result != DropMissed || d.Location != LocationInTray {
		t.Errorf("drop = %+v, want a miss back to the tray", d)
	}
	checkInvariants(t, b)
}

func TestForeignPlaceholderIsMiss(t *testing.T) {
	b := newTestBoard(t)
	var missed []Event
	b.OnMissed(func(e Event) { missed = append(missed, e) })

	if _, err := b.Grab("shark", b.TraySlot(1).Center(), t0); err != nil {
		t.Fatal(err)
	}
	whale, _ := b.Targets().Placeholder("whale")
	d, err := b.Release(whale.Rect.Center())
	if err != nil {
		t.Fatal(err)
	}
	if d.Result != DropMissed {
		t.Errorf("Result = %v, want missed", d.Result)
	}
	if !d.Hit || d.Target.ItemID != "whale" {
		t.Errorf("drop should report the foreign placeholder, got %+v", d)
	}
	if location(t, b, "shark") != LocationOnCanvas {
		t.Error("shark should stay on the canvas")
	}
	if len(missed) != 1 || missed[0].Target.ItemID != "whale" {
		t.Errorf("missed events = %+v", missed)
	}
	checkInvariants(t, b)
}

// dropShark leaves shark on the canvas at map position (300, 60).
func dropShark(t *testing.T, b *Board) {
	t.Helper()
	if _, err := b.Grab("shark", b.TraySlot(1).Center(), t0); err != nil {
		t.Fatal(err)
	}
	if _, err := b.Release(Vec2{340, 100 - b.ScrollOffset()}); err != nil {
		t.Fatal(err)
	}
	if it, _ := b.Item("shark"); it.Pos != (Vec2{300, 60}) {
		t.Fatalf("shark at %v, want (300,60)", it.Pos)
	}
}

func TestGrabOnCanvasKeepsTouchPoint(t *testing.T) {
	b := newTestBoard(t)
	dropShark(t, b)

	g, err := b.Grab("shark", Vec2{310, 75}, t0.Add(time.Second))
	if err != nil {
		t.Fatal(err)
	}
	if g.Offset != (Vec2{10, 15}) {
		t.Errorf("Offset = %v, want (10,15)", g.Offset)
	}
	if g.Origin != (Vec2{300, 60}) {
		t.Errorf("Origin = %v, want unchanged (300,60)", g.Origin)
	}
}

func TestGrabOffsetConstantAcrossMoves(t *testing.T) {
	b := newTestBoard(t)
	dropShark(t, b)
	if _, err := b.Grab("shark", Vec2{310, 75}, t0.Add(time.Second)); err != nil {
		t.Fatal(err)
	}
	first, _ := b.Dragging()
	for _, p := range []Vec2{{0, 0}, {200, 10}, {-50, 900}, {310, 75}} {
		origin, err := b.Move(p)
		if err != nil {
			t.Fatal(err)
		}
		s, ok := b.Dragging()
		if !ok {
			t.Fatal("drag ended during move")
		}
		if s.Offset != first.Offset {
			t.Errorf("offset changed to %v after move to %v, want %v", s.Offset, p, first.Offset)
		}
		if origin != p.Sub(first.Offset) {
			t.Errorf("Move(%v) = %v, want pointer - offset", p, origin)
		}
	}
}

func TestMoveIsIdempotent(t *testing.T) {
	b := newTestBoard(t)
	if _, err := b.Grab("whale", b.TraySlot(0).Center(), t0); err != nil {
		t.Fatal(err)
	}
	a, _ := b.Move(Vec2{100, 100})
	c, _ := b.Move(Vec2{100, 100})
	if a != c {
		t.Errorf("Move not idempotent: %v then %v", a, c)
	}
}

// Moves are not scroll-corrected; releases are.
// A tap on a tray item is a grab and a release over the tray; the item must
// stay in its slot at any scroll offset.
func TestTapOnTrayItemStaysInTray(t *testing.T) {
	for _, scroll := range []float64{0, testConfig().MaxScroll()} {
		b := newTestBoard(t)
		b.Scroll(scroll)
		slot := b.TraySlot(0).Center()
		if _, err := b.Grab("whale", slot, t0); err != nil {
			t.Fatal(err)
		}
		d, err := b.Release(slot)
		if err != nil {
			t.Fatal(err)
		}
		if d.Result != DropReturned || d.Location != LocationInTray {
			t.Errorf("scroll %v: drop = %v/%v, want returned/in-tray", scroll, d.Result, d.Location)
		}
		if got := len(b.TrayItems()); got != 2 {
			t.Errorf("scroll %v: TrayItems = %d, want 2", scroll, got)
		}
		if id, _ := b.ItemAt(slot); id != "whale" {
			t.Errorf("scroll %v: slot 0 = %q, want whale", scroll, id)
		}
		checkInvariants(t, b)
	}
}

func TestReleaseOverTrayIgnoresTargetsBeneath(t *testing.T) {
	b := newTestBoard(t)
	if _, err := b.Grab("whale", b.TraySlot(0).Center(), t0); err != nil {
		t.Fatal(err)
	}
	// Point (50,660) is inside the whale placeholder, but the finger is on
	// the tray.
	d, err := b.Release(Vec2{90, 700})
	if err != nil {
		t.Fatal(err)
	}
	if d.Result != DropReturned {
		t.Errorf("Result = %v, want returned", d.Result)
	}
	if b.Score() != 0 || b.IsPlaced("whale") {
		t.Errorf("score %d placed %v, want nothing placed", b.Score(), b.IsPlaced("whale"))
	}
}

func TestMissClampedToMap(t *testing.T) {
	tests := []struct {
		name    string
		scroll  float64
		release Vec2
		want    Vec2
	}{
		{"past right edge at max scroll", 356, Vec2{380, 600}, Vec2{310, 916}},
		{"above and left of the map", 0, Vec2{-30, -30}, Vec2{0, 0}},
		{"inside", 0, Vec2{340, 100}, Vec2{300, 60}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := newTestBoard(t)
			b.Scroll(tt.scroll)
			if _, err := b.Grab("shark", b.TraySlot(1).Center(), t0); err != nil {
				t.Fatal(err)
			}
			d, err := b.Release(tt.release)
			if err != nil {
				t.Fatal(err)
			}
			if d.Result != DropMissed || d.Position != tt.want {
				t.Errorf("drop = %v at %v, want missed at %v", d.Result, d.Position, tt.want)
			}
			origin, _ := b.DisplayOrigin("shark")
			if id, ok := b.ItemAt(origin.Add(Vec2{X: 1, Y: 1})); !ok || id != "shark" {
				t.Errorf("ItemAt(%v) = %q, %v; shark should stay reachable", origin, id, ok)
			}
		})
	}
}

func TestCancelOverTrayReturnsToTray(t *testing.T) {
	b := newTestBoard(t)
	if _, err := b.Grab("whale", b.TraySlot(0).Center(), t0); err != nil {
		t.Fatal(err)
	}
	b.Move(Vec2{200, 700})
	d, ok := b.Cancel()
	if !ok {
		t.Fatal("Cancel should report an active drag")
	}
	if d.Result != DropReturned || location(t, b, "whale") != LocationInTray {
		t.Errorf("drop = %v, whale %v; want returned to tray", d.Result, location(t, b, "whale"))
	}
}

func TestScrollAppliesOnlyAtRelease(t *testing.T) {
	b := newTestBoard(t)
	b.Scroll(100)
	dropShark(t, b)
	it, _ := b.Item("shark")
	if it.Pos != (Vec2{300, 60}) {
		t.Fatalf("shark map pos = %v", it.Pos)
	}

	// Map (300,60) is screen (300,-40) at scroll 100.
	g, err := b.Grab("shark", Vec2{310, -25}, t0.Add(time.Second))
	if err != nil {
		t.Fatal(err)
	}
	if g.Offset != (Vec2{10, 15}) {
		t.Errorf("Offset = %v, want (10,15)", g.Offset)
	}
	origin, _ := b.Move(Vec2{110, 115})
	if origin != (Vec2{100, 100}) {
		t.Errorf("Move origin = %v, want (100,100) with no scroll correction", origin)
	}
	d, err := b.Release(Vec2{110, 115})
	if err != nil {
		t.Fatal(err)
	}
	if d.Point != (Vec2{100, 200}) {
		t.Errorf("release point = %v, want (100,200) with scroll correction", d.Point)
	}
	if d.Position != (Vec2{100, 200}) {
		t.Errorf("item position = %v, want map space (100,200)", d.Position)
	}
}

func TestScrolledPlacement(t *testing.T) {
	b := newTestBoard(t)
	b.Scroll(300)
	if _, err := b.Grab("whale", b.TraySlot(0).Center(), t0); err != nil {
		t.Fatal(err)
	}
	// Placeholder (50,600) is on screen at (50,300) after scrolling 300.
	d, err := b.Release(Vec2{90, 340})
	if err != nil {
		t.Fatal(err)
	}
	if d.Result != DropPlaced {
		t.Errorf("Result = %v at point %v, want placed", d.Result, d.Point)
	}
}

func TestCancelActsAsMiss(t *testing.T) {
	b := newTestBoard(t)
	var cancelled int
	b.OnCancelled(func(Event) { cancelled++ })

	if _, ok := b.Cancel(); ok {
		t.Error("Cancel with no drag should report false")
	}
	if _, err := b.Grab("whale", b.TraySlot(0).Center(), t0); err != nil {
		t.Fatal(err)
	}
	ph, _ := b.Targets().Placeholder("whale")
	origin, _ := b.Move(ph.Rect.Center())

	d, ok := b.Cancel()
	if !ok {
		t.Fatal("Cancel should report an active drag")
	}
	if d.Result != DropMissed {
		t.Errorf("cancel result = %v, want missed even over the placeholder", d.Result)
	}
	if _, dragging := b.Dragging(); dragging {
		t.Error("drag flag should be cleared")
	}
	it, _ := b.Item("whale")
	if it.Location != LocationOnCanvas || it.Pos != origin {
		t.Errorf("item = %+v, want on-canvas at last origin %v", it, origin)
	}
	if cancelled != 1 {
		t.Errorf("cancelled events = %d, want 1", cancelled)
	}
	if _, err := b.Release(ph.Rect.Center()); !errors.Is(err, ErrNoDrag) {
		t.Errorf("Release after cancel: err = %v, want ErrNoDrag", err)
	}
	checkInvariants(t, b)
}

func TestGrabCancelsStaleDrag(t *testing.T) {
	b := newTestBoard(t)
	if _, err := b.Grab("whale", b.TraySlot(0).Center(), t0); err != nil {
		t.Fatal(err)
	}
	if _, err := b.Grab("shark", b.TraySlot(1).Center(), t0.Add(time.Second)); err != nil {
		t.Fatal(err)
	}
	s, ok := b.Dragging()
	if !ok || s.ItemID != "shark" {
		t.Fatalf("Dragging = %+v, %v; want shark", s, ok)
	}
	if location(t, b, "whale") != LocationOnCanvas {
		t.Error("whale should be left on the canvas")
	}
}

func TestGrabUnknownItem(t *testing.T) {
	b := newTestBoard(t)
	if _, err := b.Grab("kraken", Vec2{}, t0); !errors.Is(err, ErrUnknownItem) {
		t.Errorf("err = %v, want ErrUnknownItem", err)
	}
	if err := b.Remove("kraken"); !errors.Is(err, ErrUnknownItem) {
		t.Errorf("Remove err = %v, want ErrUnknownItem", err)
	}
	if _, err := b.Move(Vec2{}); !errors.Is(err, ErrNoDrag) {
		t.Errorf("Move err = %v, want ErrNoDrag", err)
	}
}

func TestItemWithoutPlaceholder(t *testing.T) {
	b := newTestBoard(t, func(c *BoardConfig) {
		c.Items = append(c.Items, ItemSpec{ID: "crab"})
	})
	if len(b.Warnings()) != 1 {
		t.Errorf("Warnings = %v, want one missing-placeholder warning", b.Warnings())
	}
	if _, err := b.Grab("crab", b.TraySlot(2).Center(), t0); err != nil {
		t.Fatal(err)
	}
	d, err := b.Release(Vec2{340, 100})
	if err != nil || d.Result != DropMissed {
		t.Errorf("drop = %+v, %v; want a miss", d, err)
	}
	if b.Complete() {
		t.Error("board should not be complete")
	}
}

func TestDoubleTap(t *testing.T) {
	b := newTestBoard(t)
	var taps []string
	b.OnDoubleTap(func(e Event) { taps = append(taps, e.ItemID) })

	dropShark(t, b)
	g, err := b.Grab("shark", Vec2{310, 75}, t0.Add(200*time.Millisecond))
	if err != nil {
		t.Fatal(err)
	}
	if !g.DoubleTap {
		t.Error("second grab within 300ms should be a double tap")
	}
	if len(taps) != 1 || taps[0] != "shark" {
		t.Errorf("double tap events = %v", taps)
	}
}

func TestDoubleTapIsPerItem(t *testing.T) {
	b := newTestBoard(t)
	var taps int
	b.OnDoubleTap(func(Event) { taps++ })

	if _, err := b.Grab("whale", b.TraySlot(0).Center(), t0); err != nil {
		t.Fatal(err)
	}
	b.Release(Vec2{340, 100})
	g, err := b.Grab("shark", b.TraySlot(0).Center(), t0.Add(100*time.Millisecond))
	if err != nil {
		t.Fatal(err)
	}
	if g.DoubleTap || taps != 0 {
		t.Error("taps on different items must not pair")
	}
}

func TestDoubleTapOnPlacedItem(t *testing.T) {
	b := newTestBoard(t, func(c *BoardConfig) { c.PlacedReversible = true })
	var taps []string
	b.OnDoubleTap(func(e Event) { taps = append(taps, e.ItemID) })

	placeWhale(t, b, t0)
	ph, _ := b.Targets().Placeholder("whale")
	// The placing grab at t0 counts as the first tap.
	if _, err := b.Grab("whale", ph.Rect.Center(), t0.Add(250*time.Millisecond)); !errors.Is(err, ErrItemPlaced) {
		t.Fatalf("err = %v, want ErrItemPlaced", err)
	}
	if len(taps) != 1 {
		t.Fatalf("double tap on placed item not reported: %v", taps)
	}
	if err := b.Remove("whale"); err != nil {
		t.Fatal(err)
	}
	checkInvariants(t, b)
}

func TestRemoveOnCanvasAndDuringDrag(t *testing.T) {
	b := newTestBoard(t)
	dropShark(t, b)
	if err := b.Remove("shark"); err != nil {
		t.Fatal(err)
	}
	if location(t, b, "shark") != LocationInTray {
		t.Error("shark should be in the tray")
	}
	if err := b.Remove("shark"); err != nil {
		t.Errorf("Remove of a tray item should be a no-op, got %v", err)
	}

	if _, err := b.Grab("whale", b.TraySlot(0).Center(), t0.Add(time.Second)); err != nil {
		t.Fatal(err)
	}
	if err := b.Remove("whale"); err != nil {
		t.Fatal(err)
	}
	if _, ok := b.Dragging(); ok {
		t.Error("removing the dragged item should end the drag")
	}
}

func TestComplete(t *testing.T) {
	b := newTestBoard(t)
	placeWhale(t, b, t0)
	if b.Complete() {
		t.Fatal("only whale is placed")
	}
	ph, _ := b.Targets().Placeholder("shark")
	if _, err := b.Grab("shark", b.TraySlot(0).Center(), t0.Add(time.Second)); err != nil {
		t.Fatal(err)
	}
	if _, err := b.Release(ph.Rect.Center()); err != nil {
		t.Fatal(err)
	}
	if !b.Complete() {
		t.Error("board should be complete")
	}
	if b.Score() != 6 {
		t.Errorf("Score = %d, want 6", b.Score())
	}
	if got := b.PlacedIDs(); len(got) != 2 || got[0] != "whale" || got[1] != "shark" {
		t.Errorf("PlacedIDs = %v, want registry order", got)
	}
}

func TestCallbackHandleRemove(t *testing.T) {
	b := newTestBoard(t)
	var count int
	h := b.OnGrab(func(Event) { count++ })
	b.Grab("whale", b.TraySlot(0).Center(), t0)
	h.Remove()
	b.Release(Vec2{340, 100})
	b.Grab("whale", Vec2{341, 101}, t0.Add(time.Second))
	if count != 1 {
		t.Errorf("grab callbacks = %d, want 1", count)
	}
	CallbackHandle{}.Remove() // zero handle is a no-op
}

type recordingStore struct {
	events []Event
}

func (s *recordingStore) EmitEvent(e Event) { s.events = append(s.events, e) }

func TestEventStoreReceivesEvents(t *testing.T) {
	b := newTestBoard(t)
	store := &recordingStore{}
	b.SetEventStore(store)
	placeWhale(t, b, t0)

	if len(store.events) != 2 {
		t.Fatalf("events = %+v, want grab and placed", store.events)
	}
	if store.events[0].Type != EventGrab || store.events[1].Type != EventPlaced {
		t.Errorf("event types = %v, %v", store.events[0].Type, store.events[1].Type)
	}
	if store.events[1].Score != 3 {
		t.Errorf("placed event score = %d, want 3", store.events[1].Score)
	}
}

func TestDebugLogging(t *testing.T) {
	b := newTestBoard(t, func(c *BoardConfig) {
		c.Trash = Rect{X: 50, Y: 600, Width: 30, Height: 30}
	})
	var buf bytes.Buffer
	b.SetDebugOutput(&buf)
	b.SetDebugMode(true)
	b.Grab("shark", b.TraySlot(1).Center(), t0)
	b.Release(Vec2{340, 100})

	out := buf.String()
	for _, want := range []string{"[habitat] warning:", "[habitat] grab shark", "-> missed"} {
		if !strings.Contains(out, want) {
			t.Errorf("debug output missing %q:\n%s", want, out)
		}
	}

	buf.Reset()
	b.SetDebugMode(false)
	b.Grab("whale", b.TraySlot(0).Center(), t0)
	if buf.Len() != 0 {
		t.Errorf("debug output with debug off: %q", buf.String())
	}
}
