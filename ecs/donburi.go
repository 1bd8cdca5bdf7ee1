package ecs

import (
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
	"github.com/yohamta/donburi/filter"

	"github.com/phanxgames/moka/world"
)

// TransitionEventType is the Donburi event type for mosquito transitions.
// Events are queued; call ProcessEvents to deliver them to subscribers.
var TransitionEventType = events.NewEventType[world.TransitionEvent]()

// Tally is the running count of crossings for one house.
type Tally struct {
	House   string
	Entries int
	Exits   int
}

// Indoor returns entries minus exits.
func (t Tally) Indoor() int { return t.Entries - t.Exits }

// TallyComponent holds a house's Tally.
var TallyComponent = donburi.NewComponentType[Tally]()

var tallyQuery = donburi.NewQuery(filter.Contains(TallyComponent))

// DonburiSink publishes transitions into a Donburi world.
type DonburiSink struct {
	world   donburi.World
	tallies map[string]donburi.Entity
}

// NewDonburiSink creates a sink backed by w. Tally entities are created on
// a house's first transition.
func NewDonburiSink(w donburi.World) *DonburiSink {
	return &DonburiSink{world: w, tallies: make(map[string]donburi.Entity)}
}

// PublishTransition implements world.EventSink.
func (s *DonburiSink) PublishTransition(e world.TransitionEvent) {
	entity, ok := s.tallies[e.House]
	if !ok || !s.world.Valid(entity) {
		entity = s.world.Create(TallyComponent)
		TallyComponent.SetValue(s.world.Entry(entity), Tally{House: e.House})
		s.tallies[e.House] = entity
	}
	t := TallyComponent.Get(s.world.Entry(entity))
	if e.Indoor {
		t.Entries++
	} else {
		t.Exits++
	}
	TransitionEventType.Publish(s.world, e)
}

// Reset removes every tally entity the sink has created, so counting starts
// over for a new settlement.
func (s *DonburiSink) Reset() {
	for house, entity := range s.tallies {
		if s.world.Valid(entity) {
			s.world.Remove(entity)
		}
		delete(s.tallies, house)
	}
}

// Tallies returns every house tally in w.
func Tallies(w donburi.World) []Tally {
	var out []Tally
	tallyQuery.Each(w, func(entry *donburi.Entry) {
		out = append(out, *TallyComponent.Get(entry))
	})
	return out
}
