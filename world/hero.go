package world

import (
	"github.com/phanxgames/moka"
)

const heroSize = 48

// Hero is the player's avatar. It walks in the direction reported by
// Controls and stays inside the world.
type Hero struct {
	node     *moka.Node
	controls Controls
	speed    float64
	bounds   moka.Rect
}

func newHero(bounds moka.Rect, speed float64, svc Services) *Hero {
	h := &Hero{
		node:     moka.NewSprite("hero", svc.Textures.Texture(TextureHero), heroSize, heroSize),
		controls: svc.Controls,
		speed:    speed,
		bounds:   bounds,
	}
	c := bounds.Center()
	h.node.SetPosition(c.X-heroSize/2, c.Y-heroSize/2)
	h.node.UserData = h
	h.node.OnUpdate = h.update
	return h
}

// Node returns the hero's scene node.
func (h *Hero) Node() *moka.Node { return h.node }

// Center returns the hero's centre in world space.
func (h *Hero) Center() moka.Vec2 { return h.node.BoundingRect().Center() }

func (h *Hero) update(dt float64) {
	dx, dy := h.controls.Direction()
	if dx == 0 && dy == 0 {
		return
	}
	h.node.Move(dx*h.speed*dt, dy*h.speed*dt)
	x := moka.Range{Min: h.bounds.X, Max: h.bounds.X + h.bounds.Width - h.node.Width}.Clamp(h.node.X)
	y := moka.Range{Min: h.bounds.Y, Max: h.bounds.Y + h.bounds.Height - h.node.Height}.Clamp(h.node.Y)
	h.node.SetPosition(x, y)
}
