package world

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/phanxgames/moka"
	"github.com/tanema/gween/ease"
)

// Shortest flight, in seconds, so slow mosquitoes still hop.
const minFlight = 0.25

// Mosquito is one member of the population. Its Indoor flag is only changed
// by the simulation driver.
type Mosquito struct {
	Index int

	node   *moka.Node
	houses moka.Handle
	bounds moka.Rect
	speed  float64
	rng    *rand.Rand
	flight *moka.TweenGroup
	indoor bool
}

func newMosquito(index int, spawn moka.Vec2, size, speed float64, bounds moka.Rect, houses moka.Handle, svc Services) *Mosquito {
	m := &Mosquito{
		Index:  index,
		node:   moka.NewSprite(fmt.Sprintf("mosquito-%d", index), svc.Textures.Texture(TextureMosquito), size, size),
		houses: houses,
		bounds: bounds,
		speed:  speed,
		rng:    svc.Rand,
	}
	m.node.SetPosition(spawn.X, spawn.Y)
	m.node.UserData = m
	m.node.OnUpdate = m.update
	return m
}

// Node returns the mosquito's scene node.
func (m *Mosquito) Node() *moka.Node { return m.node }

// Indoor reports whether the mosquito is inside a house.
func (m *Mosquito) Indoor() bool { return m.indoor }

// Bounds returns the mosquito's world rectangle.
func (m *Mosquito) Bounds() moka.Rect { return m.node.BoundingRect() }

// place moves the mosquito so its top-left corner is at world p and cancels
// any flight in progress.
func (m *Mosquito) place(p moka.Vec2) {
	x, y := p.X, p.Y
	if parent := m.node.Parent; parent != nil {
		x, y = parent.WorldToLocal(x, y)
	}
	m.node.SetPosition(x, y)
	if m.flight != nil {
		m.flight.Stop()
	}
}

// center places the mosquito centred on world p.
func (m *Mosquito) center(p moka.Vec2) {
	m.place(moka.Vec2{X: p.X - m.node.Width/2, Y: p.Y - m.node.Height/2})
}

func (m *Mosquito) update(dt float64) {
	if m.speed <= 0 {
		return
	}
	if m.flight == nil || m.flight.Done {
		m.flight = m.nextFlight()
	}
	m.flight.Update(float32(dt))
}

// region returns the area the mosquito wanders in: its house while indoor,
// the whole world otherwise.
func (m *Mosquito) region() moka.Rect {
	if !m.indoor {
		return m.bounds
	}
	houses, ok := m.houses.Node()
	if !ok {
		return m.bounds
	}
	c := m.node.BoundingRect().Center()
	for _, child := range houses.Children() {
		if r := child.BoundingRect(); r.Contains(c.X, c.Y) {
			return r
		}
	}
	return m.bounds
}

func (m *Mosquito) nextFlight() *moka.TweenGroup {
	r := m.region()
	w := math.Max(r.Width-m.node.Width, 0)
	h := math.Max(r.Height-m.node.Height, 0)
	to := moka.Vec2{X: r.X + m.rng.Float64()*w, Y: r.Y + m.rng.Float64()*h}
	if parent := m.node.Parent; parent != nil {
		to.X, to.Y = parent.WorldToLocal(to.X, to.Y)
	}
	from := m.node.Position()
	d := math.Hypot(to.X-from.X, to.Y-from.Y)
	return moka.TweenPosition(m.node, to.X, to.Y, float32(math.Max(d/m.speed, minFlight)), ease.InOutSine)
}
