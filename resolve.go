package habitat

// Resolve finds the target containing p, which must already be in map
// coordinates (pointer - grab offset + scroll). The trash is tested first,
// then placeholders in registry order; the first hit wins. Resolve has no
// side effects.
func (r *TargetRegistry) Resolve(p Vec2) (Target, bool) {
	if r.trash.Rect.ContainsPoint(p) {
		return r.trash, true
	}
	for _, t := range r.placeholders {
		if t.Rect.ContainsPoint(p) {
			return t, true
		}
	}
	return Target{}, false
}

// ReleasePoint maps a screen-space pointer to the map-space point used for
// hit testing. Scroll correction applies here only; moves stay in screen
// space.
func ReleasePoint(pointer, offset Vec2, scroll float64) Vec2 {
	return Vec2{X: pointer.X - offset.X, Y: pointer.Y - offset.Y + scroll}
}
