package habitat

import (
	"errors"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

// ScriptFrame is the simulated time between two script steps.
const ScriptFrame = time.Second / 60

// ScriptStep is one action in a gesture script.
//
// Actions: grab (item, x, y), move (x, y), release (x, y), drag (item,
// from_x, from_y, to_x, to_y, frames), scroll (offset), cancel, remove
// (item), wait (ms or frames), expect (item + location, and/or score) and
// screenshot (label). Screenshots only apply to a rendering host.
type ScriptStep struct {
	Action   string  `yaml:"action"`
	Item     string  `yaml:"item,omitempty"`
	X        float64 `yaml:"x,omitempty"`
	Y        float64 `yaml:"y,omitempty"`
	FromX    float64 `yaml:"from_x,omitempty"`
	FromY    float64 `yaml:"from_y,omitempty"`
	ToX      float64 `yaml:"to_x,omitempty"`
	ToY      float64 `yaml:"to_y,omitempty"`
	Frames   int     `yaml:"frames,omitempty"`
	Offset   float64 `yaml:"offset,omitempty"`
	Ms       int     `yaml:"ms,omitempty"`
	Location string  `yaml:"location,omitempty"`
	Score    *int    `yaml:"score,omitempty"`
	Label    string  `yaml:"label,omitempty"`
}

// Script is a parsed gesture script. The same script drives a Board directly
// (Run) or a host through injected pointer input.
type Script struct {
	Steps []ScriptStep `yaml:"steps"`
}

// LoadScript parses a YAML or JSON gesture script.
func LoadScript(data []byte) (*Script, error) {
	var s Script
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse script: %w", err)
	}
	if len(s.Steps) == 0 {
		return nil, errors.New("parse script: no steps")
	}
	for i, st := range s.Steps {
		if err := st.validate(); err != nil {
			return nil, fmt.Errorf("parse script: step %d: %w", i, err)
		}
	}
	return &s, nil
}

func (st ScriptStep) validate() error {
	switch st.Action {
	case "grab", "remove":
		if st.Item == "" {
			return fmt.Errorf("%s needs an item", st.Action)
		}
	case "drag":
		if st.Item == "" {
			return errors.New("drag needs an item")
		}
	case "expect":
		if st.Item == "" && st.Score == nil {
			return errors.New("expect needs an item or a score")
		}
		if st.Item != "" && st.Location == "" {
			return errors.New("expect on an item needs a location")
		}
	case "move", "release", "scroll", "cancel", "wait", "screenshot":
	default:
		return fmt.Errorf("unknown action %q", st.Action)
	}
	return nil
}

// Run applies every step to b, starting the simulated clock at start. Each
// step advances the clock by one ScriptFrame. Gameplay errors from grab,
// move and release are returned, as is the first failed expectation.
func (s *Script) Run(b *Board, start time.Time) error {
	now := start
	for i, st := range s.Steps {
		if err := st.apply(b, &now); err != nil {
			return fmt.Errorf("step %d (%s): %w", i, st.Action, err)
		}
		now = now.Add(ScriptFrame)
	}
	return nil
}

func (st ScriptStep) apply(b *Board, now *time.Time) error {
	switch st.Action {
	case "grab":
		_, err := b.Grab(st.Item, Vec2{X: st.X, Y: st.Y}, *now)
		return err
	case "move":
		_, err := b.Move(Vec2{X: st.X, Y: st.Y})
		return err
	case "release":
		_, err := b.Release(Vec2{X: st.X, Y: st.Y})
		return err
	case "drag":
		return st.drag(b, now)
	case "scroll":
		b.Scroll(st.Offset)
	case "cancel":
		b.Cancel()
	case "remove":
		return b.Remove(st.Item)
	case "wait":
		*now = now.Add(st.WaitDuration())
	case "expect":
		return st.Check(b)
	}
	return nil
}

// drag grabs at from, moves over frames-2 interpolated points and releases
// at to, advancing the clock one frame per event.
func (st ScriptStep) drag(b *Board, now *time.Time) error {
	frames := st.Frames
	if frames < 2 {
		frames = 2
	}
	if _, err := b.Grab(st.Item, Vec2{X: st.FromX, Y: st.FromY}, *now); err != nil {
		return err
	}
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		*now = now.Add(ScriptFrame)
		t := float64(i) / float64(steps+1)
		p := Vec2{X: st.FromX + (st.ToX-st.FromX)*t, Y: st.FromY + (st.ToY-st.FromY)*t}
		if _, err := b.Move(p); err != nil {
			return err
		}
	}
	*now = now.Add(ScriptFrame)
	_, err := b.Release(Vec2{X: st.ToX, Y: st.ToY})
	return err
}

// WaitDuration is the simulated time a wait step takes.
func (st ScriptStep) WaitDuration() time.Duration {
	if st.Ms > 0 {
		return time.Duration(st.Ms) * time.Millisecond
	}
	return time.Duration(st.Frames) * ScriptFrame
}

// Check evaluates an expect step against b.
func (st ScriptStep) Check(b *Board) error {
	if st.Item != "" {
		it, ok := b.Item(st.Item)
		if !ok {
			return fmt.Errorf("%w: %q", ErrUnknownItem, st.Item)
		}
		if it.Location.String() != st.Location {
			return fmt.Errorf("item %s is %s, want %s", st.Item, it.Location, st.Location)
		}
	}
	if st.Score != nil && b.Score() != *st.Score {
		return fmt.Errorf("score is %d, want %d", b.Score(), *st.Score)
	}
	return nil
}
