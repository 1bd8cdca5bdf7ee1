package moka

// Pair is an ordered collision pair. First always comes from the subtree the
// check was started on, Second from the other subtree.
type Pair struct {
	First, Second *Node
}

// PairSet is a set of collision pairs that remembers insertion order.
// Inserting a pair that is already present is a no-op, so repeated checks
// against the same set do not accumulate duplicates.
type PairSet struct {
	index map[Pair]struct{}
	pairs []Pair
}

// NewPairSet returns an empty PairSet.
func NewPairSet() *PairSet {
	return &PairSet{index: make(map[Pair]struct{})}
}

// Add inserts p and reports whether it was new.
func (s *PairSet) Add(p Pair) bool {
	if s.index == nil {
		s.index = make(map[Pair]struct{})
	}
	if _, ok := s.index[p]; ok {
		return false
	}
	s.index[p] = struct{}{}
	s.pairs = append(s.pairs, p)
	return true
}

// Contains reports whether the ordered pair (first, second) is in the set.
func (s *PairSet) Contains(first, second *Node) bool {
	_, ok := s.index[Pair{first, second}]
	return ok
}

// Len returns the number of pairs in the set.
func (s *PairSet) Len() int {
	return len(s.pairs)
}

// Pairs returns the pairs in insertion order. The returned slice MUST NOT be
// mutated by the caller.
func (s *PairSet) Pairs() []Pair {
	return s.pairs
}

// Clear empties the set, keeping its storage.
func (s *PairSet) Clear() {
	clear(s.index)
	s.pairs = s.pairs[:0]
}

// collidable is a node paired with its world bounds, computed once per check.
type collidable struct {
	node   *Node
	bounds Rect
}

// collectCollidables appends every node in the subtree rooted at n that has
// non-empty world bounds. Containers are traversed but never collected.
func collectCollidables(n *Node, buf []collidable) []collidable {
	if globalDebug {
		debugCheckDisposed(n, "CheckSceneCollision")
	}
	if r := n.BoundingRect(); !r.Empty() {
		buf = append(buf, collidable{node: n, bounds: r})
	}
	for _, child := range n.children {
		if child.Parent != n {
			panic("moka: inconsistent parent/child bookkeeping in collision check")
		}
		buf = collectCollidables(child, buf)
	}
	return buf
}

// CheckSceneCollision tests every node with geometry in this subtree against
// every node with geometry in the subtree rooted at other, adding each
// intersecting (thisNode, otherNode) pair to pairs. Rectangles that share
// only an edge intersect.
//
// includeSelfPairs controls whether a node that appears in both subtrees (when
// one subtree contains the other) may be paired with itself. Disjoint subtrees
// such as two layers are unaffected by it.
//
// The check is O(n·m) in the two subtrees' collidable counts.
func (n *Node) CheckSceneCollision(other *Node, pairs *PairSet, includeSelfPairs bool) {
	n.checkScene(other, pairs, includeSelfPairs, Rect.Intersects)
}

// CheckSceneOverlap is CheckSceneCollision with the half-open test of
// [Rect.Overlaps]: nodes that only touch along an edge are not paired.
func (n *Node) CheckSceneOverlap(other *Node, pairs *PairSet, includeSelfPairs bool) {
	n.checkScene(other, pairs, includeSelfPairs, Rect.Overlaps)
}

func (n *Node) checkScene(other *Node, pairs *PairSet, includeSelfPairs bool, hit func(a, b Rect) bool) {
	if other == nil {
		panic("moka: collision check against nil subtree")
	}
	if pairs == nil {
		panic("moka: collision check with nil pair set")
	}

	lhs := collectCollidables(n, nil)
	if len(lhs) == 0 {
		return
	}
	rhs := collectCollidables(other, nil)

	for _, a := range lhs {
		for _, b := range rhs {
			if a.node == b.node && !includeSelfPairs {
				continue
			}
			if hit(a.bounds, b.bounds) {
				pairs.Add(Pair{First: a.node, Second: b.node})
			}
		}
	}
}
