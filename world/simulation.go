package world

import (
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phanxgames/moka"
)

// Simulation moves mosquitoes between indoors and outdoors. Every Interval
// seconds of simulated time, once the simulation has begun, it runs one
// evaluation pass: each mosquito touching a door or window flips state and
// the owning house's counter follows.
type Simulation struct {
	interval   float64
	tileHeight float64
	elapsed    float64
	begun      bool
	passes     int

	mosquitoes moka.Handle
	doors      moka.Handle
	windows    moka.Handle
	adjacency  *Adjacency
	events     EventSink
	logger     *slog.Logger
	run        uuid.UUID
	pairs      *moka.PairSet
}

func newSimulation(interval, tileHeight float64, layers *layerSlots, adjacency *Adjacency, events EventSink, logger *slog.Logger, run uuid.UUID) *Simulation {
	if interval <= 0 {
		panic(fmt.Sprintf("world: evaluation interval %v must be positive", interval))
	}
	return &Simulation{
		interval:   interval,
		tileHeight: tileHeight,
		mosquitoes: layers[LayerMosquitoes],
		doors:      layers[LayerDoorSelection],
		windows:    layers[LayerWindowSelection],
		adjacency:  adjacency,
		events:     events,
		logger:     logger,
		run:        run,
		pairs:      moka.NewPairSet(),
	}
}

// Begin sets the simulation latch. It cannot be unset.
func (s *Simulation) Begin() {
	if s.begun {
		return
	}
	s.begun = true
	s.logger.Info("simulation begun", "elapsed", s.elapsed)
}

// Begun reports whether Begin has been called.
func (s *Simulation) Begun() bool { return s.begun }

// Interval returns the simulated time between evaluation passes.
func (s *Simulation) Interval() float64 { return s.interval }

// Elapsed returns the accumulated time not yet consumed by a pass.
func (s *Simulation) Elapsed() float64 { return s.elapsed }

// Passes returns how many evaluation passes have run.
func (s *Simulation) Passes() int { return s.passes }

// Advance accumulates dt and runs at most one evaluation pass. A pass
// consumes exactly one interval from the accumulator, so leftover time
// carries into the next frame. Before Begin, time accumulates but nothing
// is evaluated. It reports whether a pass ran.
func (s *Simulation) Advance(dt float64) bool {
	s.elapsed += dt
	if !s.begun || s.elapsed < s.interval {
		return false
	}
	s.elapsed -= s.interval
	s.Evaluate()
	return true
}

// Evaluate runs one evaluation pass immediately and returns the number of
// transitions. Door crossings are processed before window crossings; a
// mosquito overlapping both may transition twice. A mosquito that only
// touches a door or window edge, as one does right after leaving through
// it, does not cross. Before Begin it does nothing.
func (s *Simulation) Evaluate() int {
	if !s.begun {
		return 0
	}
	s.passes++
	mosquitoes := s.mosquitoes.MustNode()
	n := 0

	s.pairs.Clear()
	mosquitoes.CheckSceneOverlap(s.doors.MustNode(), s.pairs, true)
	for _, p := range s.pairs.Pairs() {
		m, d := asMosquito(p.First), asDoor(p.Second)
		h, ok := s.adjacency.HouseForDoor(d)
		if !ok {
			panic(fmt.Sprintf("world: door %q has no house", d.Object.Name))
		}
		// Exit one tile below the door.
		s.transition(m, h, d.node.WorldPosition().Add(moka.Vec2{Y: s.tileHeight}), d.Object.Name)
		n++
	}

	s.pairs.Clear()
	mosquitoes.CheckSceneOverlap(s.windows.MustNode(), s.pairs, true)
	for _, p := range s.pairs.Pairs() {
		m, w := asMosquito(p.First), asWindow(p.Second)
		h, ok := s.adjacency.HouseForWindow(w)
		if !ok {
			panic(fmt.Sprintf("world: window %q has no house", w.Object.Name))
		}
		// Exit one tile above the window.
		s.transition(m, h, w.node.WorldPosition().Sub(moka.Vec2{Y: s.tileHeight}), w.Object.Name)
		n++
	}
	return n
}

// transition flips m and adjusts h's counter in one step.
func (s *Simulation) transition(m *Mosquito, h *House, exit moka.Vec2, via string) {
	if m.indoor {
		m.place(exit)
		m.indoor = false
		h.release()
	} else {
		m.center(h.Anchor())
		m.indoor = true
		h.admit()
	}
	s.logger.Debug("mosquito transition",
		"mosquito", m.Index, "house", h.Object.Name, "via", via, "indoor", m.indoor, "pass", s.passes)
	s.events.PublishTransition(TransitionEvent{
		Run:      s.run,
		Pass:     s.passes,
		Mosquito: m.Index,
		House:    h.Object.Name,
		Via:      via,
		Indoor:   m.indoor,
	})
}

func asMosquito(n *moka.Node) *Mosquito {
	m, ok := n.UserData.(*Mosquito)
	if !ok {
		panic(fmt.Sprintf("world: node %q in mosquito layer is %T, not *Mosquito", n.Name, n.UserData))
	}
	return m
}
