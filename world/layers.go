package world

import (
	"fmt"

	"github.com/phanxgames/moka"
)

// Layer identifies one of the fixed top-level subtrees of the world. Layers
// are drawn in declaration order.
type Layer int

const (
	LayerBackground Layer = iota
	LayerSky
	LayerSelection
	LayerDoorSelection
	LayerWindowSelection
	LayerHouseSelection
	LayerUpdate
	LayerMosquitoes
	LayerUI
	LayerCamera

	layerCount
)

var layerNames = [layerCount]string{
	"Background",
	"Sky",
	"Selection",
	"DoorSelection",
	"WindowSelection",
	"HouseSelection",
	"Update",
	"Mosquitoes",
	"UI",
	"Camera",
}

func (l Layer) String() string {
	if l < 0 || l >= layerCount {
		return fmt.Sprintf("Layer(%d)", int(l))
	}
	return layerNames[l]
}

// layerSlots holds a non-owning handle to every layer container. Each slot
// is assigned exactly once during build.
type layerSlots [layerCount]moka.Handle

func (s *layerSlots) assign(l Layer, n *moka.Node) {
	if !s[l].IsZero() {
		panic(fmt.Sprintf("world: layer %s assigned twice", l))
	}
	s[l] = n.Handle()
}

// node resolves a slot, panicking if the world has been torn down.
func (s *layerSlots) node(l Layer) *moka.Node {
	n, ok := s[l].Node()
	if !ok {
		panic(fmt.Sprintf("world: layer %s is stale", l))
	}
	return n
}
