// Package ecs provides ECS adapters for habitat boards.
package ecs

import (
	"github.com/phanxgames/habitat"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
	"github.com/yohamta/donburi/filter"
)

// BoardEventType is the Donburi event type for habitat board events.
// Subscribe to this in your ECS systems to receive grabs, drops and taps.
var BoardEventType = events.NewEventType[habitat.Event]()

// ItemState mirrors one board item inside a Donburi world.
type ItemState struct {
	ID       string
	Location habitat.Location
	Pos      habitat.Vec2
	Score    int // board score when the item last changed
}

// ItemComponent holds ItemState on mirrored item entities.
var ItemComponent = donburi.NewComponentType[ItemState]()

var itemQuery = donburi.NewQuery(filter.Contains(ItemComponent))

type donburiStore struct {
	world donburi.World
}

// NewDonburiStore creates an EventStore backed by a Donburi world.
// Board events are published to BoardEventType and can be consumed with
// events.Subscribe and ProcessEvents.
func NewDonburiStore(world donburi.World) habitat.EventStore {
	return &donburiStore{world: world}
}

func (s *donburiStore) EmitEvent(event habitat.Event) {
	BoardEventType.Publish(s.world, event)
}

// SpawnItems creates one entity per board item and subscribes SyncItem so the
// entities follow the board once events are processed.
func SpawnItems(world donburi.World, board *habitat.Board) map[string]donburi.Entity {
	out := make(map[string]donburi.Entity, len(board.Items()))
	for _, it := range board.Items() {
		e := world.Create(ItemComponent)
		donburi.SetValue(world.Entry(e), ItemComponent, ItemState{
			ID:       it.ID,
			Location: it.Location,
			Pos:      it.Pos,
			Score:    board.Score(),
		})
		out[it.ID] = e
	}
	BoardEventType.Subscribe(world, SyncItem)
	return out
}

// SyncItem applies one board event to the mirrored item entity.
func SyncItem(w donburi.World, e habitat.Event) {
	itemQuery.Each(w, func(entry *donburi.Entry) {
		st := ItemComponent.Get(entry)
		if st.ID != e.ItemID {
			return
		}
		st.Location = e.Location
		st.Pos = e.Position
		st.Score = e.Score
	})
}
