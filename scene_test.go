package moka

import (
	"strings"
	"testing"
)

func TestUpdateOrder(t *testing.T) {
	s := NewScene()
	var order []string
	var dts []float64
	hook := func(n *Node) *Node {
		n.OnUpdate = func(dt float64) {
			order = append(order, n.Name)
			dts = append(dts, dt)
		}
		return n
	}

	a := hook(NewContainer("a"))
	b := hook(NewContainer("b"))
	a.AddChild(hook(NewContainer("a1")))
	a.AddChild(hook(NewContainer("a2")))
	s.Root().AddChild(a)
	s.Root().AddChild(b)

	s.Update(1.0 / 60)

	if got := strings.Join(order, ","); got != "a,a1,a2,b" {
		t.Errorf("update order = %s, want a,a1,a2,b", got)
	}
	for _, dt := range dts {
		if dt != 1.0/60 {
			t.Errorf("dt = %v, want 1/60", dt)
		}
	}
}

func TestUpdateVisitsInvisibleNodes(t *testing.T) {
	s := NewScene()
	n := NewContainer("n")
	n.Visible = false
	calls := 0
	n.OnUpdate = func(float64) { calls++ }
	s.Root().AddChild(n)

	s.Update(0.1)
	if calls != 1 {
		t.Errorf("OnUpdate calls = %d, want 1", calls)
	}
}

func TestUpdateSeesChildrenAddedByHooks(t *testing.T) {
	s := NewScene()
	layer := NewContainer("layer")
	s.Root().AddChild(layer)

	spawned := 0
	s.Root().OnUpdate = func(float64) {
		c := NewContainer("spawned")
		c.OnUpdate = func(float64) { spawned++ }
		layer.AddChild(c)
	}

	s.Update(0.1)
	if spawned != 1 {
		t.Errorf("child added during the pass updated %d times, want 1", spawned)
	}
}

func TestGeoMMatchesTransformPoint(t *testing.T) {
	m := [6]float64{2, 0.5, -0.25, 3, 10, 20}
	g := GeoM(m)
	gx, gy := g.Apply(4, -6)
	wx, wy := TransformPoint(m, 4, -6)
	assertNear(t, "x", gx, wx)
	assertNear(t, "y", gy, wy)
}

func TestWorldAABB(t *testing.T) {
	r := WorldAABB([6]float64{1, 0, 0, 1, 10, 20}, 30, 40)
	if r != (Rect{X: 10, Y: 20, Width: 30, Height: 40}) {
		t.Errorf("WorldAABB = %v", r)
	}
}
