package moka

import "fmt"

// Handle is a non-owning, generation-checked reference to a Node. Layer
// registries and derived indexes hold Handles rather than *Node so that a
// reference outliving its node is detected instead of silently dereferenced.
//
// Handles are comparable and can be used as map keys.
type Handle struct {
	node *Node
	id   uint32
}

// Handle returns a Handle referring to n. Panics if n is nil or disposed.
func (n *Node) Handle() Handle {
	if n == nil {
		panic("moka: handle to nil node")
	}
	if n.disposed {
		panic(fmt.Sprintf("moka: handle to disposed node %q", n.Name))
	}
	return Handle{node: n, id: n.ID}
}

// IsZero reports whether h was never assigned.
func (h Handle) IsZero() bool {
	return h.node == nil
}

// Valid reports whether the referenced node is still alive.
func (h Handle) Valid() bool {
	return h.node != nil && !h.node.disposed && h.node.ID == h.id
}

// Node resolves the handle. ok is false when the node has been disposed.
func (h Handle) Node() (n *Node, ok bool) {
	if !h.Valid() {
		return nil, false
	}
	return h.node, true
}

// MustNode resolves the handle and panics if the node is gone.
func (h Handle) MustNode() *Node {
	n, ok := h.Node()
	if !ok {
		panic(fmt.Sprintf("moka: stale handle (node ID was %d)", h.id))
	}
	return n
}

// HandleOf returns the handle for n, or the zero Handle when n is nil or
// disposed. Unlike n.Handle it never panics.
func HandleOf(n *Node) Handle {
	if n == nil || n.disposed {
		return Handle{}
	}
	return n.Handle()
}
