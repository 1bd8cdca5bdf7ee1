package moka

import "testing"

func TestHandleLifecycle(t *testing.T) {
	n := NewContainer("n")
	h := n.Handle()

	if h.IsZero() || !h.Valid() {
		t.Fatal("fresh handle should be valid")
	}
	if got, ok := h.Node(); !ok || got != n {
		t.Fatal("handle should resolve to its node")
	}
	if h != n.Handle() {
		t.Error("handles to the same node should compare equal")
	}

	n.Dispose()
	if h.Valid() {
		t.Error("handle should be stale after dispose")
	}
	if _, ok := h.Node(); ok {
		t.Error("stale handle should not resolve")
	}
}

func TestHandleAsMapKey(t *testing.T) {
	a, b := NewContainer("a"), NewContainer("b")
	m := map[Handle]string{a.Handle(): "a", b.Handle(): "b"}
	if m[a.Handle()] != "a" || m[b.Handle()] != "b" {
		t.Error("handles should work as map keys")
	}
}

func TestZeroHandle(t *testing.T) {
	var h Handle
	if !h.IsZero() || h.Valid() {
		t.Error("zero handle should be zero and invalid")
	}
}

func TestHandleOf(t *testing.T) {
	if !HandleOf(nil).IsZero() {
		t.Error("HandleOf(nil) should be zero")
	}
	n := NewContainer("n")
	if HandleOf(n) != n.Handle() {
		t.Error("HandleOf should match Handle for live nodes")
	}
	n.Dispose()
	if !HandleOf(n).IsZero() {
		t.Error("HandleOf(disposed) should be zero")
	}
}

func TestHandlePanics(t *testing.T) {
	tests := []struct {
		name string
		fn   func()
	}{
		{"nil node", func() {
			var n *Node
			n.Handle()
		}},
		{"disposed node", func() {
			n := NewContainer("n")
			n.Dispose()
			n.Handle()
		}},
		{"stale MustNode", func() {
			n := NewContainer("n")
			h := n.Handle()
			n.Dispose()
			h.MustNode()
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Error("expected panic")
				}
			}()
			tt.fn()
		})
	}
}
