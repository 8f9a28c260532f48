package habitat

// Tray slot spacing in pixels.
const (
	TraySlotPadding = 16
	TraySlotGap     = 16
)

// TraySlot returns the screen-space rectangle of tray slot i, accounting for
// the horizontal tray scroll.
func (b *Board) TraySlot(i int) Rect {
	tray := b.cfg.TrayRect()
	size := b.cfg.ItemSize
	return Rect{
		X:      TraySlotPadding + float64(i)*(size+TraySlotGap) - b.trayScroll,
		Y:      tray.Y + TraySlotPadding,
		Width:  size,
		Height: size,
	}
}

// TrayContentWidth is the width of all tray slots, used to clamp tray scroll.
func (b *Board) TrayContentWidth() float64 {
	n := float64(len(b.items.InTray()))
	if n == 0 {
		return 2 * TraySlotPadding
	}
	return 2*TraySlotPadding + n*b.cfg.ItemSize + (n-1)*TraySlotGap
}

// ScrollTray sets the horizontal tray scroll offset.
func (b *Board) ScrollTray(offset float64) {
	b.trayScroll = offset
}

// TrayScrollOffset returns the horizontal tray scroll offset.
func (b *Board) TrayScrollOffset() float64 {
	return b.trayScroll
}

// InTrayArea reports whether a screen point falls on the pinned tray.
func (b *Board) InTrayArea(p Vec2) bool {
	return b.cfg.TrayRect().ContainsPoint(p)
}

// DisplayOrigin returns where the host should draw id, in screen space: the
// drag origin while dragging, the tray slot while in the tray, and the
// scrolled map position otherwise.
func (b *Board) DisplayOrigin(id string) (Vec2, bool) {
	idx := b.items.Index(id)
	if idx < 0 {
		return Vec2{}, false
	}
	if s, ok := b.trackers[idx].Session(); ok {
		return s.Origin, true
	}
	it := b.items.At(idx)
	if it.Location == LocationInTray {
		slot := 0
		for _, t := range b.items.InTray() {
			if t.ID == id {
				break
			}
			slot++
		}
		return b.TraySlot(slot).Origin(), true
	}
	return it.Pos.Sub(Vec2{Y: b.scroll}), true
}

// ItemAt returns the item under a screen point. The tray is pinned above the
// map, so a point inside the tray only ever hits tray slots. On the map the
// last item in registry order wins, matching draw order.
func (b *Board) ItemAt(p Vec2) (string, bool) {
	if b.InTrayArea(p) {
		for i, it := range b.items.InTray() {
			if b.TraySlot(i).ContainsPoint(p) {
				return it.ID, true
			}
		}
		return "", false
	}
	size := b.cfg.ItemSize
	for i := b.items.Len() - 1; i >= 0; i-- {
		it := b.items.At(i)
		if it.Location == LocationInTray {
			continue
		}
		origin, _ := b.DisplayOrigin(it.ID)
		r := Rect{X: origin.X, Y: origin.Y, Width: size, Height: size}
		if r.ContainsPoint(p) {
			return it.ID, true
		}
	}
	return "", false
}
