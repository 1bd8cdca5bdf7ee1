package moka

import (
	"log/slog"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// DrawTarget receives draw calls during the draw traversal. *ebiten.Image
// satisfies it.
type DrawTarget interface {
	DrawImage(img *ebiten.Image, options *ebiten.DrawImageOptions)
}

// Scene is the top-level object that owns the node tree. A frame is one
// Update pass followed by one Draw pass.
type Scene struct {
	root   *Node
	debug  bool
	logger *slog.Logger

	// Reused per draw to avoid allocating options for every sprite.
	drawOpts ebiten.DrawImageOptions
}

// NewScene creates a new scene with a pre-created root container.
func NewScene() *Scene {
	return &Scene{
		root:   NewContainer("root"),
		logger: slog.Default(),
	}
}

// Root returns the scene's root container node.
func (s *Scene) Root() *Node {
	return s.root
}

// SetLogger sets the logger used for debug output. nil restores slog.Default().
func (s *Scene) SetLogger(logger *slog.Logger) {
	if logger == nil {
		logger = slog.Default()
	}
	s.logger = logger
	debugLogger = logger
}

// Update runs one update pass: every node's OnUpdate hook is called with dt
// (seconds), a parent always before its children, siblings in sequence order.
func (s *Scene) Update(dt float64) {
	var t0 time.Time
	if s.debug {
		t0 = time.Now()
	}

	updateNode(s.root, dt)

	if s.debug {
		s.debugLog(debugStats{phase: "update", elapsed: time.Since(t0), nodes: countNodes(s.root)})
	}
}

// Draw runs one draw pass into target. view is applied above the root (for
// example a Camera view matrix); pass IdentityTransform() for none.
func (s *Scene) Draw(target DrawTarget, view [6]float64) {
	var t0 time.Time
	if s.debug {
		t0 = time.Now()
	}

	s.drawNode(s.root, target, view)

	if s.debug {
		s.debugLog(debugStats{phase: "draw", elapsed: time.Since(t0), nodes: countNodes(s.root)})
	}
}

// Dispose tears the whole tree down, children before parents.
func (s *Scene) Dispose() {
	s.root.Dispose()
}

// SetDebugMode enables or disables debug mode. When enabled, disposed-node
// access panics, tree depth and child count warnings are logged, and per-pass
// timing stats are logged at debug level.
func (s *Scene) SetDebugMode(enabled bool) {
	s.debug = enabled
	globalDebug = enabled
}

// globalDebug mirrors the most recently set Scene debug flag so that node
// operations (which lack a Scene pointer) can check it cheaply. Only valid
// with a single Scene; multiple Scenes with differing debug modes will
// reflect whichever called SetDebugMode last.
var globalDebug bool

// --- Traversal ---

func updateNode(n *Node, dt float64) {
	if globalDebug {
		debugCheckDisposed(n, "Update")
	}
	if n.OnUpdate != nil {
		n.OnUpdate(dt)
	}
	// Index loop: an OnUpdate hook may append children to a descendant.
	for i := 0; i < len(n.children); i++ {
		updateNode(n.children[i], dt)
	}
}

func (s *Scene) drawNode(n *Node, target DrawTarget, parent [6]float64) {
	if !n.Visible {
		return
	}
	world := multiplyAffine(parent, computeLocalTransform(n))

	if n.Image != nil {
		s.drawImage(n, target, world)
	}
	if n.OnDraw != nil {
		n.OnDraw(target, world)
	}
	for _, child := range n.children {
		s.drawNode(child, target, world)
	}
}

// drawImage submits the node's image stretched to its Width x Height under
// the given world transform.
func (s *Scene) drawImage(n *Node, target DrawTarget, world [6]float64) {
	op := &s.drawOpts
	op.GeoM.Reset()
	op.ColorScale.Reset()

	b := n.Image.Bounds()
	if w, h := b.Dx(), b.Dy(); w > 0 && h > 0 && n.Width > 0 && n.Height > 0 {
		op.GeoM.Scale(n.Width/float64(w), n.Height/float64(h))
	}
	op.GeoM.Concat(GeoM(world))
	op.ColorScale.ScaleWithColor(n.Color.ToRGBA())

	target.DrawImage(n.Image, op)
}

// GeoM converts an affine matrix [a, b, c, d, tx, ty] into an ebiten.GeoM.
func GeoM(m [6]float64) ebiten.GeoM {
	var g ebiten.GeoM
	g.SetElement(0, 0, m[0])
	g.SetElement(0, 1, m[2])
	g.SetElement(0, 2, m[4])
	g.SetElement(1, 0, m[1])
	g.SetElement(1, 1, m[3])
	g.SetElement(1, 2, m[5])
	return g
}

// TransformPoint applies an affine matrix [a, b, c, d, tx, ty] to a point.
func TransformPoint(m [6]float64, x, y float64) (float64, float64) {
	return transformPoint(m, x, y)
}

// WorldAABB returns the axis-aligned bounds of a w x h rectangle at the local
// origin of transform m.
func WorldAABB(m [6]float64, w, h float64) Rect {
	return worldAABB(m, w, h)
}

func countNodes(n *Node) int {
	count := 1
	for _, child := range n.children {
		count += countNodes(child)
	}
	return count
}
