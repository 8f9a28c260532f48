package habitat

import (
	"math"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Viewport is a one-axis scroll window over content longer than the visible
// span: the map scrolls vertically, the tray horizontally.
type Viewport struct {
	// Offset is the scroll position, 0 at the start of the content.
	Offset float64
	// Visible is the length of the window.
	Visible float64
	// Content is the length of the scrolled content.
	Content float64

	tween *gween.Tween
}

// NewViewport creates a viewport at offset 0.
func NewViewport(visible, content float64) *Viewport {
	return &Viewport{Visible: visible, Content: content}
}

// Max returns the largest valid offset.
func (v *Viewport) Max() float64 {
	return math.Max(0, v.Content-v.Visible)
}

// ScrollBy moves the offset by d and stops any running animation.
func (v *Viewport) ScrollBy(d float64) {
	v.tween = nil
	v.Offset += d
	v.clamp()
}

// ScrollTo animates the offset to target over duration seconds. A zero
// duration jumps immediately.
func (v *Viewport) ScrollTo(target float64, duration float32, easeFn ease.TweenFunc) {
	target = math.Max(0, math.Min(target, v.Max()))
	if duration <= 0 {
		v.tween = nil
		v.Offset = target
		return
	}
	if easeFn == nil {
		easeFn = ease.OutQuad
	}
	v.tween = gween.New(float32(v.Offset), float32(target), duration, easeFn)
}

// Scrolling reports whether a ScrollTo animation is running.
func (v *Viewport) Scrolling() bool {
	return v.tween != nil
}

// Update advances the scroll animation by dt seconds and reports whether the
// offset changed.
func (v *Viewport) Update(dt float32) bool {
	prev := v.Offset
	if v.tween != nil {
		val, done := v.tween.Update(dt)
		v.Offset = float64(val)
		if done {
			v.tween = nil
		}
	}
	v.clamp()
	return v.Offset != prev
}

// SetContent changes the content length, clamping the offset if needed.
func (v *Viewport) SetContent(content float64) {
	v.Content = content
	v.clamp()
}

func (v *Viewport) clamp() {
	v.Offset = math.Max(0, math.Min(v.Offset, v.Max()))
}
