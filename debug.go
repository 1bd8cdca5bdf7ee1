package moka

import (
	"fmt"
	"log/slog"
	"time"
)

// debugStats holds per-pass timing. Only populated when Scene.debug is true.
type debugStats struct {
	phase   string
	elapsed time.Duration
	nodes   int
}

// debugLogger receives warnings from node operations, which lack a Scene
// pointer. Scene.SetLogger keeps it in sync.
var debugLogger = slog.Default()

// debugLog records timing stats at debug level.
func (s *Scene) debugLog(stats debugStats) {
	if !s.debug {
		return
	}
	s.logger.Debug("moka pass", "phase", stats.phase, "elapsed", stats.elapsed, "nodes", stats.nodes)
}

// debugCheckDisposed panics with a descriptive message when a disposed node is
// used in a tree operation. In release mode callers skip this entirely.
func debugCheckDisposed(n *Node, op string) {
	if n.disposed {
		panic(fmt.Sprintf("moka debug: %s on disposed node %q", op, n.Name))
	}
}

// debugCheckTreeDepth warns if tree depth exceeds the threshold.
const debugMaxTreeDepth = 32

func debugCheckTreeDepth(n *Node) {
	depth := 0
	for p := n; p != nil; p = p.Parent {
		depth++
	}
	if depth > debugMaxTreeDepth {
		debugLogger.Warn("moka: tree depth exceeds threshold",
			"depth", depth, "threshold", debugMaxTreeDepth, "node", n.Name)
	}
}

// debugCheckChildCount warns if a node has more children than the threshold.
// The mosquito layer alone holds several hundred nodes.
const debugMaxChildCount = 1000

func debugCheckChildCount(n *Node) {
	if len(n.children) > debugMaxChildCount {
		debugLogger.Warn("moka: child count exceeds threshold",
			"node", n.Name, "children", len(n.children), "threshold", debugMaxChildCount)
	}
}
