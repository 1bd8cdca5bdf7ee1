// Package ecs bridges the settlement simulation into a [Donburi] world.
//
// [NewDonburiSink] returns a world.EventSink. Every mosquito transition is
// published as a [TransitionEventType] event and folded into a per-house
// [Tally] component, so ECS systems can react to crossings or query totals.
//
// Usage:
//
//	ecsWorld := donburi.NewWorld()
//	sink := ecs.NewDonburiSink(ecsWorld)
//	w, err := world.New(world.Options{..., Services: world.Services{Events: sink}})
//	...
//	events.ProcessAllEvents(ecsWorld)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
