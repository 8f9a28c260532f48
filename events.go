package habitat

// Event describes one board transition. Point is the pointer (grab) or the
// adjusted map-space release point; Position is where the item ended up.
type Event struct {
	Type     EventType
	ItemID   string
	Location Location
	Point    Vec2
	Position Vec2
	Target   Target
	Hit      bool // Target is valid
	Score    int  // board score after the transition
}

// EventStore is the interface for optional external event sinks, such as
// an ECS world. Every event is forwarded after the board's own handlers run.
type EventStore interface {
	EmitEvent(event Event)
}

type eventHandler struct {
	id uint32
	fn func(Event)
}

type handlerRegistry struct {
	byType [eventTypeCount][]eventHandler
	nextID uint32
}

// CallbackHandle allows removing a registered callback.
type CallbackHandle struct {
	id    uint32
	reg   *handlerRegistry
	event EventType
}

// Remove unregisters this callback so it no longer fires.
func (h CallbackHandle) Remove() {
	if h.reg == nil || h.event >= eventTypeCount {
		return
	}
	s := h.reg.byType[h.event]
	for i := range s {
		if s[i].id == h.id {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = eventHandler{}
			h.reg.byType[h.event] = s[:len(s)-1]
			return
		}
	}
}

func (r *handlerRegistry) add(t EventType, fn func(Event)) CallbackHandle {
	r.nextID++
	id := r.nextID
	r.byType[t] = append(r.byType[t], eventHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: r, event: t}
}

// On registers a callback for events of type t.
func (b *Board) On(t EventType, fn func(Event)) CallbackHandle {
	return b.handlers.add(t, fn)
}

// OnGrab registers a callback fired when a drag starts.
func (b *Board) OnGrab(fn func(Event)) CallbackHandle {
	return b.handlers.add(EventGrab, fn)
}

// OnPlaced registers a callback fired once per successful placement. This is
// the success notification; the host decides how to show and dismiss it.
func (b *Board) OnPlaced(fn func(Event)) CallbackHandle {
	return b.handlers.add(EventPlaced, fn)
}

// OnTrashed registers a callback fired when an item is dropped on the trash.
func (b *Board) OnTrashed(fn func(Event)) CallbackHandle {
	return b.handlers.add(EventTrashed, fn)
}

// OnMissed registers a callback fired when a drop matches nothing useful.
func (b *Board) OnMissed(fn func(Event)) CallbackHandle {
	return b.handlers.add(EventMissed, fn)
}

// OnCancelled registers a callback fired when the host interrupts a drag.
func (b *Board) OnCancelled(fn func(Event)) CallbackHandle {
	return b.handlers.add(EventCancelled, fn)
}

// OnDoubleTap registers a callback fired when an item is grabbed twice within
// the double-tap window. Hosts typically open a delete dialog here.
func (b *Board) OnDoubleTap(fn func(Event)) CallbackHandle {
	return b.handlers.add(EventDoubleTap, fn)
}

// OnRemoved registers a callback fired when Remove sends an item to the tray.
func (b *Board) OnRemoved(fn func(Event)) CallbackHandle {
	return b.handlers.add(EventRemoved, fn)
}

// SetEventStore sets the optional external event sink.
func (b *Board) SetEventStore(store EventStore) {
	b.store = store
}

func (b *Board) emit(e Event) {
	e.Score = b.score
	for _, h := range b.handlers.byType[e.Type] {
		h.fn(e)
	}
	if b.store != nil {
		b.store.EmitEvent(e)
	}
}
