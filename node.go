package moka

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// --- ID counter ---

// nodeIDCounter is a plain counter (no atomic — moka is single-threaded).
var nodeIDCounter uint32

func nextNodeID() uint32 {
	nodeIDCounter++
	return nodeIDCounter
}

// --- Node ---

// Node is the fundamental scene graph element. A single flat struct is used for
// all node kinds; behaviour specific to a kind is attached through the OnUpdate
// and OnDraw hooks and the kind's own state lives in UserData.
type Node struct {
	// Identity
	ID   uint32
	Name string

	// Hierarchy. Parent is a back-reference only; ownership flows downward
	// through children.
	Parent   *Node
	children []*Node

	// Transform (local)
	X, Y     float64
	ScaleX   float64
	ScaleY   float64
	Rotation float64
	PivotX   float64
	PivotY   float64

	// Local geometry. A node with zero Width or Height is a pure container:
	// its bounding rect is empty and it never collides.
	Width, Height float64

	// Visibility
	Visible bool

	// Visual. Image is an opaque handle supplied by a texture source; nil
	// means the node draws nothing of its own.
	Image *ebiten.Image
	Color Color

	// Metadata. Node kinds store their concrete state here; collision pairs
	// are downcast through it.
	UserData any

	// Per-node hooks (nil by default; zero cost when unused)
	OnUpdate  func(dt float64)
	OnDraw    func(target DrawTarget, transform [6]float64)
	OnDispose func()

	// Internal
	disposed bool
}

// nodeDefaults sets the common default field values shared by all constructors.
func nodeDefaults(n *Node) {
	n.ID = nextNodeID()
	n.ScaleX = 1
	n.ScaleY = 1
	n.Color = ColorWhite
	n.Visible = true
}

// NewContainer creates a container node with no visual representation and no
// geometry.
func NewContainer(name string) *Node {
	n := &Node{Name: name}
	nodeDefaults(n)
	return n
}

// NewSprite creates a node that renders img stretched over the given size.
// img may be nil, in which case the node only carries geometry.
func NewSprite(name string, img *ebiten.Image, width, height float64) *Node {
	n := &Node{Name: name, Image: img, Width: width, Height: height}
	nodeDefaults(n)
	return n
}

// NewRectNode creates a node whose local geometry is r: the node is placed at
// (r.X, r.Y) with size (r.Width, r.Height).
func NewRectNode(name string, r Rect) *Node {
	n := &Node{Name: name, X: r.X, Y: r.Y, Width: r.Width, Height: r.Height}
	nodeDefaults(n)
	return n
}

// --- Tree manipulation ---

// AddChild transfers ownership of child to this node, appending it to the end
// of the child sequence (last in draw order).
// Panics if child is nil, already has a parent, or is an ancestor of this node.
func (n *Node) AddChild(child *Node) {
	if child == nil {
		panic("moka: cannot add nil child")
	}
	if globalDebug {
		debugCheckDisposed(n, "AddChild (parent)")
		debugCheckDisposed(child, "AddChild (child)")
	}
	if child.Parent != nil {
		panic("moka: child already has a parent")
	}
	if isAncestor(child, n) {
		panic("moka: adding child would create a cycle")
	}
	child.Parent = n
	n.children = append(n.children, child)
	if globalDebug {
		debugCheckTreeDepth(child)
		debugCheckChildCount(n)
	}
}

// Children returns the child list. The returned slice MUST NOT be mutated by the caller.
func (n *Node) Children() []*Node {
	return n.children
}

// NumChildren returns the number of children.
func (n *Node) NumChildren() int {
	return len(n.children)
}

// ChildAt returns the child at the given index.
func (n *Node) ChildAt(index int) *Node {
	return n.children[index]
}

// Walk calls fn for n and every descendant, parents before children, in
// sequence order. Returning false from fn skips that node's subtree.
func (n *Node) Walk(fn func(*Node) bool) {
	if !fn(n) {
		return
	}
	for _, child := range n.children {
		child.Walk(fn)
	}
}

// --- Disposal ---

// Dispose detaches this node from its parent, then recursively disposes all
// descendants (children before their parent) and marks the node disposed.
// Handles to any node in the subtree resolve as stale afterwards.
func (n *Node) Dispose() {
	if n.disposed {
		return
	}
	if n.Parent != nil {
		n.Parent.removeChildByPtr(n)
		n.Parent = nil
	}
	n.dispose()
}

func (n *Node) dispose() {
	for _, child := range n.children {
		child.Parent = nil
		child.dispose()
	}
	if n.OnDispose != nil {
		n.OnDispose()
	}
	n.disposed = true
	n.ID = 0
	n.children = nil
	n.Parent = nil
	n.Image = nil
	n.UserData = nil
	n.OnUpdate = nil
	n.OnDraw = nil
	n.OnDispose = nil
}

// IsDisposed returns true if this node has been disposed.
func (n *Node) IsDisposed() bool {
	return n.disposed
}

// --- Helpers ---

// isAncestor reports whether candidate is an ancestor of node (or node itself).
func isAncestor(candidate, node *Node) bool {
	for p := node; p != nil; p = p.Parent {
		if p == candidate {
			return true
		}
	}
	return false
}

// removeChildByPtr removes child from n.children without clearing child.Parent.
// Uses copy+nil to avoid retaining a dangling pointer in the backing array.
func (n *Node) removeChildByPtr(child *Node) {
	for i, c := range n.children {
		if c == child {
			copy(n.children[i:], n.children[i+1:])
			n.children[len(n.children)-1] = nil
			n.children = n.children[:len(n.children)-1]
			return
		}
	}
}
