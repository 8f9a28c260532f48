package habitat

import "fmt"

// Target is a fixed drop rectangle. ItemID is set for placeholders only.
type Target struct {
	Kind   TargetKind
	ItemID string
	Rect   Rect
}

// TargetRegistry holds the trash rectangle and one placeholder per item,
// in the order they were configured. Immutable once built.
type TargetRegistry struct {
	trash        Target
	placeholders []Target
	byItem       map[string]int
}

// NewTargetRegistry validates and stores the drop targets. Placeholder ids
// must be unique and every rectangle must have a positive size.
func NewTargetRegistry(trash Rect, placeholders []PlaceholderSpec) (*TargetRegistry, error) {
	if trash.Width <= 0 || trash.Height <= 0 {
		return nil, fmt.Errorf("trash: non-positive size %vx%v", trash.Width, trash.Height)
	}
	r := &TargetRegistry{
		trash:        Target{Kind: TargetTrash, Rect: trash},
		placeholders: make([]Target, 0, len(placeholders)),
		byItem:       make(map[string]int, len(placeholders)),
	}
	for _, p := range placeholders {
		if p.ID == "" {
			return nil, fmt.Errorf("placeholder %d: empty id", len(r.placeholders))
		}
		if _, dup := r.byItem[p.ID]; dup {
			return nil, fmt.Errorf("placeholder %q: duplicate id", p.ID)
		}
		if p.Width <= 0 || p.Height <= 0 {
			return nil, fmt.Errorf("placeholder %q: non-positive size %vx%v", p.ID, p.Width, p.Height)
		}
		r.byItem[p.ID] = len(r.placeholders)
		r.placeholders = append(r.placeholders, Target{Kind: TargetPlaceholder, ItemID: p.ID, Rect: p.Rect})
	}
	return r, nil
}

// Trash returns the trash target.
func (r *TargetRegistry) Trash() Target {
	return r.trash
}

// Placeholders returns a copy of the placeholders in registry order.
func (r *TargetRegistry) Placeholders() []Target {
	out := make([]Target, len(r.placeholders))
	copy(out, r.placeholders)
	return out
}

// Placeholder returns the placeholder registered for itemID.
func (r *TargetRegistry) Placeholder(itemID string) (Target, bool) {
	i, ok := r.byItem[itemID]
	if !ok {
		return Target{}, false
	}
	return r.placeholders[i], true
}

// Overlap names two targets whose rectangles intersect.
type Overlap struct {
	A, B Target
}

func (o Overlap) String() string {
	return fmt.Sprintf("%s %q overlaps %s %q", o.A.Kind, o.A.ItemID, o.B.Kind, o.B.ItemID)
}

// Overlaps lists every pair of targets whose rectangles intersect. Overlaps
// are legal (registry order decides) but usually a layout mistake.
func (r *TargetRegistry) Overlaps() []Overlap {
	var out []Overlap
	for _, p := range r.placeholders {
		if r.trash.Rect.Intersects(p.Rect) {
			out = append(out, Overlap{A: r.trash, B: p})
		}
	}
	for i := 0; i < len(r.placeholders); i++ {
		for j := i + 1; j < len(r.placeholders); j++ {
			if r.placeholders[i].Rect.Intersects(r.placeholders[j].Rect) {
				out = append(out, Overlap{A: r.placeholders[i], B: r.placeholders[j]})
			}
		}
	}
	return out
}
