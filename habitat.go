package habitat

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Vec2 is a 2D vector used for points, offsets and sizes throughout the API.
type Vec2 struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{X: v.X - o.X, Y: v.Y - o.Y}
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// ContainsPoint is Contains for a Vec2.
func (r Rect) ContainsPoint(p Vec2) bool {
	return r.Contains(p.X, p.Y)
}

// Intersects reports whether r and other overlap.
// Adjacent rectangles (sharing only an edge) are considered intersecting.
func (r Rect) Intersects(other Rect) bool {
	return r.X <= other.X+other.Width &&
		r.X+r.Width >= other.X &&
		r.Y <= other.Y+other.Height &&
		r.Y+r.Height >= other.Y
}

// Origin returns the top-left corner.
func (r Rect) Origin() Vec2 {
	return Vec2{X: r.X, Y: r.Y}
}

// Center returns the midpoint of the rectangle.
func (r Rect) Center() Vec2 {
	return Vec2{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}

// Translate returns r moved by d.
func (r Rect) Translate(d Vec2) Rect {
	r.X += d.X
	r.Y += d.Y
	return r
}

// Location is where an item currently lives.
type Location uint8

const (
	LocationInTray   Location = iota // waiting in the tray
	LocationOnCanvas                 // somewhere on the map, not yet matched
	LocationPlaced                   // snapped onto its own placeholder
)

func (l Location) String() string {
	switch l {
	case LocationInTray:
		return "in-tray"
	case LocationOnCanvas:
		return "on-canvas"
	case LocationPlaced:
		return "placed"
	default:
		return fmt.Sprintf("Location(%d)", uint8(l))
	}
}

// TargetKind distinguishes the trash target from per-item placeholders.
type TargetKind uint8

const (
	TargetTrash       TargetKind = iota // returns an item to the tray
	TargetPlaceholder                   // the drop zone for exactly one item
)

func (k TargetKind) String() string {
	switch k {
	case TargetTrash:
		return "trash"
	case TargetPlaceholder:
		return "placeholder"
	default:
		return fmt.Sprintf("TargetKind(%d)", uint8(k))
	}
}

// MissPolicy selects what happens to an item released outside its own
// placeholder and outside the trash.
type MissPolicy uint8

const (
	MissRemainInPlace MissPolicy = iota // item stays where it was dropped
	MissReturnToTray                    // item goes back to the tray
)

func (m MissPolicy) String() string {
	switch m {
	case MissRemainInPlace:
		return "remain_in_place"
	case MissReturnToTray:
		return "return_to_tray"
	default:
		return fmt.Sprintf("MissPolicy(%d)", uint8(m))
	}
}

// ParseMissPolicy converts a config string to a MissPolicy. Dashes and
// underscores are interchangeable and case is ignored.
func ParseMissPolicy(s string) (MissPolicy, error) {
	switch strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_") {
	case "", "remain_in_place", "remain":
		return MissRemainInPlace, nil
	case "return_to_tray", "return":
		return MissReturnToTray, nil
	}
	return 0, fmt.Errorf("unknown miss policy %q", s)
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (m *MissPolicy) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	p, err := ParseMissPolicy(s)
	if err != nil {
		return fmt.Errorf("line %d: %w", value.Line, err)
	}
	*m = p
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (m MissPolicy) MarshalYAML() (any, error) {
	return m.String(), nil
}

// EventType identifies a kind of board event.
type EventType uint8

const (
	EventGrab      EventType = iota // an item was picked up
	EventPlaced                     // an item landed on its own placeholder (success notification)
	EventTrashed                    // an item was dropped on the trash and went back to the tray
	EventMissed                     // an item was dropped outside every matching target
	EventCancelled                  // the host interrupted a drag
	EventDoubleTap                  // the same item was grabbed twice within the tap window
	EventRemoved                    // an item was sent back to the tray through Remove

	eventTypeCount
)

func (e EventType) String() string {
	switch e {
	case EventGrab:
		return "grab"
	case EventPlaced:
		return "placed"
	case EventTrashed:
		return "trashed"
	case EventMissed:
		return "missed"
	case EventCancelled:
		return "cancelled"
	case EventDoubleTap:
		return "double-tap"
	case EventRemoved:
		return "removed"
	default:
		return fmt.Sprintf("EventType(%d)", uint8(e))
	}
}
