package habitat

import "fmt"

// Item is a draggable animal. Pos is in map coordinates while the item is on
// the canvas or placed; for tray items it holds the canonical spawn origin.
type Item struct {
	ID       string
	Name     string
	Asset    string
	Location Location
	Pos      Vec2
}

// ItemRegistry holds the fixed, ordered list of items for a session.
// Items are created once and never removed.
type ItemRegistry struct {
	items []Item
	index map[string]int
}

// NewItemRegistry creates a registry with every item in the tray at origin.
func NewItemRegistry(specs []ItemSpec, origin Vec2) (*ItemRegistry, error) {
	r := &ItemRegistry{
		items: make([]Item, 0, len(specs)),
		index: make(map[string]int, len(specs)),
	}
	for _, s := range specs {
		if s.ID == "" {
			return nil, fmt.Errorf("item %d: empty id", len(r.items))
		}
		if _, dup := r.index[s.ID]; dup {
			return nil, fmt.Errorf("item %q: duplicate id", s.ID)
		}
		name := s.Name
		if name == "" {
			name = s.ID
		}
		r.index[s.ID] = len(r.items)
		r.items = append(r.items, Item{
			ID:       s.ID,
			Name:     name,
			Asset:    s.Asset,
			Location: LocationInTray,
			Pos:      origin,
		})
	}
	return r, nil
}

// Len returns the number of items.
func (r *ItemRegistry) Len() int {
	return len(r.items)
}

// At returns the item at registry index i.
func (r *ItemRegistry) At(i int) Item {
	return r.items[i]
}

// Get returns the item with the given id.
func (r *ItemRegistry) Get(id string) (Item, bool) {
	i, ok := r.index[id]
	if !ok {
		return Item{}, false
	}
	return r.items[i], true
}

// Index returns the registry position of id, or -1.
func (r *ItemRegistry) Index(id string) int {
	i, ok := r.index[id]
	if !ok {
		return -1
	}
	return i
}

// All returns a copy of every item in registry order.
func (r *ItemRegistry) All() []Item {
	out := make([]Item, len(r.items))
	copy(out, r.items)
	return out
}

// InTray returns the tray items in registry order. Tray membership is derived
// from Location and never stored separately.
func (r *ItemRegistry) InTray() []Item {
	var out []Item
	for _, it := range r.items {
		if it.Location == LocationInTray {
			out = append(out, it)
		}
	}
	return out
}

// relocate is the only mutation path for an item's location.
func (r *ItemRegistry) relocate(id string, loc Location, pos Vec2) {
	i := r.index[id]
	r.items[i].Location = loc
	r.items[i].Pos = pos
}
