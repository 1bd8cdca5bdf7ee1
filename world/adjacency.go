package world

import (
	"errors"
	"fmt"

	"github.com/phanxgames/moka"
)

// ErrUnattached reports a door or window that touches no house.
var ErrUnattached = errors.New("not attached to any house")

// Adjacency maps every door and window to the house it belongs to. Keys and
// values are handles, so lookups after teardown fail instead of reaching
// freed nodes.
type Adjacency struct {
	doors   map[moka.Handle]moka.Handle
	windows map[moka.Handle]moka.Handle
}

// BuildAdjacency derives the index from geometry: a door or window belongs
// to the house it intersects. When one intersects several houses the last
// pair in collision order wins. Every child of doorLayer and windowLayer must
// resolve to a house; otherwise ErrUnattached is returned.
func BuildAdjacency(doorLayer, windowLayer, houseLayer *moka.Node) (*Adjacency, error) {
	a := &Adjacency{
		doors:   make(map[moka.Handle]moka.Handle),
		windows: make(map[moka.Handle]moka.Handle),
	}
	pairs := moka.NewPairSet()

	doorLayer.CheckSceneCollision(houseLayer, pairs, true)
	for _, p := range pairs.Pairs() {
		d, h := asDoor(p.First), asHouse(p.Second)
		a.doors[d.node.Handle()] = h.node.Handle()
	}

	pairs.Clear()
	windowLayer.CheckSceneCollision(houseLayer, pairs, true)
	for _, p := range pairs.Pairs() {
		w, h := asWindow(p.First), asHouse(p.Second)
		a.windows[w.node.Handle()] = h.node.Handle()
	}

	for _, n := range doorLayer.Children() {
		if _, ok := a.doors[n.Handle()]; !ok {
			return nil, fmt.Errorf("world: door %q: %w", n.Name, ErrUnattached)
		}
	}
	for _, n := range windowLayer.Children() {
		if _, ok := a.windows[n.Handle()]; !ok {
			return nil, fmt.Errorf("world: window %q: %w", n.Name, ErrUnattached)
		}
	}
	return a, nil
}

// Doors returns the number of mapped doors.
func (a *Adjacency) Doors() int { return len(a.doors) }

// Windows returns the number of mapped windows.
func (a *Adjacency) Windows() int { return len(a.windows) }

// HouseForDoor returns the house d belongs to.
func (a *Adjacency) HouseForDoor(d *Door) (*House, bool) {
	return resolveHouse(a.doors, moka.HandleOf(d.node))
}

// HouseForWindow returns the house w belongs to.
func (a *Adjacency) HouseForWindow(w *Window) (*House, bool) {
	return resolveHouse(a.windows, moka.HandleOf(w.node))
}

func resolveHouse(m map[moka.Handle]moka.Handle, key moka.Handle) (*House, bool) {
	if !key.Valid() {
		return nil, false
	}
	h, ok := m[key]
	if !ok {
		return nil, false
	}
	n, ok := h.Node()
	if !ok {
		return nil, false
	}
	return asHouse(n), true
}
