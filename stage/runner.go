package stage

import (
	"fmt"
	"time"

	"github.com/phanxgames/habitat"
)

// Runner plays a habitat.Script through injected pointer input, one step per
// frame, so a script exercises the same code path as a real finger.
// Attach it to a Game with SetScript.
//
// Pointer actions hit-test at their coordinates like a real press: a grab
// step's item only names what the script expects to pick up.
type Runner struct {
	steps     []habitat.ScriptStep
	cursor    int
	waitCount int
	done      bool
	err       error
}

// NewRunner creates a runner for s.
func NewRunner(s *habitat.Script) *Runner {
	return &Runner{steps: s.Steps}
}

// Done reports whether all steps have been executed, or a step failed.
func (r *Runner) Done() bool {
	return r.done
}

// Err returns the first failed expectation or gameplay error.
func (r *Runner) Err() error {
	return r.err
}

// step advances the runner by one frame. Called from Game.Update.
func (r *Runner) step(g *Game) {
	if r.done {
		return
	}
	// Wait for pending injections to drain before advancing.
	if len(g.injectQueue) > 0 {
		return
	}
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++

	if err := r.apply(g, st); err != nil {
		r.err = fmt.Errorf("step %d (%s): %w", r.cursor-1, st.Action, err)
		r.done = true
		return
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && len(g.injectQueue) == 0 {
		r.done = true
	}
}

func (r *Runner) apply(g *Game, st habitat.ScriptStep) error {
	switch st.Action {
	case "grab":
		g.InjectPress(st.X, st.Y)
	case "move":
		g.InjectMove(st.X, st.Y)
	case "release":
		g.InjectRelease(st.X, st.Y)
	case "drag":
		g.InjectDrag(st.FromX, st.FromY, st.ToX, st.ToY, st.Frames)
	case "scroll":
		g.ScrollMap(st.Offset, 0)
	case "cancel":
		g.cancelPointer()
	case "remove":
		return g.board.Remove(st.Item)
	case "wait":
		r.waitCount = waitFrames(st.WaitDuration()) - 1 // this frame counts as one
		if r.waitCount < 0 {
			r.waitCount = 0
		}
	case "expect":
		return st.Check(g.board)
	case "screenshot":
		g.Screenshot(st.Label)
	}
	return nil
}

// waitFrames converts a wait to whole frames, rounding to the nearest.
func waitFrames(d time.Duration) int {
	return int((d + habitat.ScriptFrame/2) / habitat.ScriptFrame)
}
