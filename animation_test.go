package moka

import (
	"math"
	"testing"

	"github.com/tanema/gween/ease"
)

func TestTweenPositionReachesTarget(t *testing.T) {
	node := NewContainer("pos")
	node.X = 10
	node.Y = 20

	g := TweenPosition(node, 100, 200, 1.0, ease.Linear)

	// Exact halves avoid float32 accumulation drift.
	g.Update(0.5)
	if g.Done {
		t.Fatal("Done before the duration elapsed")
	}
	g.Update(0.5)

	if !g.Done {
		t.Fatal("expected Done after full duration")
	}
	if math.Abs(node.X-100) > 0.5 {
		t.Errorf("X = %f, want ~100", node.X)
	}
	if math.Abs(node.Y-200) > 0.5 {
		t.Errorf("Y = %f, want ~200", node.Y)
	}
}

func TestTweenColorAllComponents(t *testing.T) {
	node := NewContainer("color")
	node.Color = Color{R: 1, G: 0, B: 0, A: 1}
	target := Color{R: 0, G: 1, B: 0.5, A: 0.5}

	g := TweenColor(node, target, 1.0, ease.Linear)
	g.Update(0.5)
	g.Update(0.5)

	if !g.Done {
		t.Fatal("expected Done after full duration")
	}
	for _, c := range []struct {
		name      string
		got, want float64
	}{
		{"R", node.Color.R, 0}, {"G", node.Color.G, 1}, {"B", node.Color.B, 0.5}, {"A", node.Color.A, 0.5},
	} {
		if math.Abs(c.got-c.want) > 0.01 {
			t.Errorf("%s = %f, want ~%f", c.name, c.got, c.want)
		}
	}
}

func TestTweenAlphaMidway(t *testing.T) {
	node := NewContainer("alpha")
	node.Color.A = 0

	g := TweenAlpha(node, 0.45, 3.0, ease.Linear)
	g.Update(1.5)
	if math.Abs(node.Color.A-0.225) > 0.001 {
		t.Errorf("A = %f, want ~0.225", node.Color.A)
	}
	g.Update(1.5)
	if !g.Done || math.Abs(node.Color.A-0.45) > 0.001 {
		t.Errorf("A = %f (done=%v), want ~0.45", node.Color.A, g.Done)
	}
}

func TestTweenStopsOnDisposedNode(t *testing.T) {
	node := NewContainer("gone")
	g := TweenPosition(node, 100, 100, 1.0, ease.Linear)
	node.Dispose()

	g.Update(0.5)
	if !g.Done {
		t.Error("tween on a disposed node should finish immediately")
	}
	if node.X != 0 {
		t.Errorf("X = %v, want no writes after dispose", node.X)
	}
}

func TestTweenStop(t *testing.T) {
	node := NewContainer("n")
	g := TweenPosition(node, 100, 0, 1.0, ease.Linear)
	g.Update(0.25)
	x := node.X
	g.Stop()
	g.Update(0.25)
	if !g.Done || node.X != x {
		t.Error("Stop should freeze the tween")
	}
}
