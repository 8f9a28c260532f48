// Package ecs provides ECS adapters for habitat's board event system.
//
// The primary adapter is [NewDonburiStore], which bridges board events
// (grab, placed, trashed, missed, double tap) into a [Donburi] world as
// typed events. Subscribe to [BoardEventType] in your ECS systems to
// receive them, or call [SpawnItems] to keep one entity per item in step
// with the board.
//
// Usage:
//
//	store := ecs.NewDonburiStore(world)
//	board.SetEventStore(store)
//	ecs.SpawnItems(world, board)
//	// each frame:
//	events.ProcessAllEvents(world)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
