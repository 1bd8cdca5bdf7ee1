package world

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/phanxgames/moka"
	"github.com/tanema/gween/ease"
	"golang.org/x/image/colornames"

	"github.com/phanxgames/moka/level"
)

var highlightColor = moka.ColorFrom(colornames.Yellow).WithAlpha(0.35)

var houseShadeColor = moka.ColorFrom(colornames.Darkred)

// Seconds for a house shade to follow a change in its indoor count.
const shadeFade = 0.3

// houseShadeAlpha is the shade opacity for a house with indoor mosquitoes.
// It saturates at 20.
func houseShadeAlpha(indoor int) float64 {
	return min(float64(indoor)/20, 1) * 0.5
}

// Interactive is the selection-side state shared by every interactive kind:
// the catalog entry, its prevention state and the selection node.
type Interactive struct {
	Object *level.InteractiveObject

	node     *moka.Node
	attached []moka.Rect
	applied  []bool
	selected bool
}

// init sets up the embedded state in place; the draw hook captures in.
func (in *Interactive) init(obj *level.InteractiveObject, attached []moka.Rect, options int, pixel *ebiten.Image) {
	in.Object = obj
	in.node = moka.NewRectNode(obj.Name, obj.Rect())
	in.attached = attached
	in.applied = make([]bool, options)
	in.node.OnDraw = func(target moka.DrawTarget, transform [6]float64) {
		if in.selected {
			fillRect(target, pixel, transform, moka.Rect{Width: in.node.Width, Height: in.node.Height}, highlightColor)
		}
	}
}

func (in *Interactive) interactive() *Interactive { return in }

// Node returns the selection node.
func (in *Interactive) Node() *moka.Node { return in.node }

// Selected reports whether the object is the current selection.
func (in *Interactive) Selected() bool { return in.selected }

// Applied reports whether prevention option i is in effect.
func (in *Interactive) Applied(i int) bool {
	return i >= 0 && i < len(in.applied) && in.applied[i]
}

// Attached returns the rectangles of the objects attached to this one.
func (in *Interactive) Attached() []moka.Rect { return in.attached }

// Hit reports whether a click at world (x, y) lands on this object and not
// on one of its attached objects.
func (in *Interactive) Hit(x, y float64) bool {
	if !in.node.BoundingRect().Contains(x, y) {
		return false
	}
	for _, r := range in.attached {
		if r.Contains(x, y) {
			return false
		}
	}
	return true
}

// selectable is implemented by every kind that embeds Interactive.
type selectable interface {
	interactive() *Interactive
}

// Barrel is a water container that can be covered.
type Barrel struct{ Interactive }

// Door connects a house to the outside.
type Door struct{ Interactive }

// Window connects a house to the outside; it can be screened or closed.
type Window struct{ Interactive }

// Clinic offers diagnostic tests and treatment.
type Clinic struct{ Interactive }

// House shelters residents and counts the mosquitoes inside it.
type House struct {
	Interactive
	indoor int
}

// Indoor returns the number of mosquitoes currently inside.
func (h *House) Indoor() int { return h.indoor }

// Anchor is where a mosquito entering the house is placed: the centre of
// the house.
func (h *House) Anchor() moka.Vec2 {
	return h.node.BoundingRect().Center()
}

// Bounds returns the house rectangle in world space.
func (h *House) Bounds() moka.Rect {
	return h.node.BoundingRect()
}

func (h *House) admit()   { h.indoor++ }
func (h *House) release() { h.indoor-- }

func interactiveOf(n *moka.Node) *Interactive {
	s, ok := n.UserData.(selectable)
	if !ok {
		panic(fmt.Sprintf("world: node %q is not interactive (%T)", n.Name, n.UserData))
	}
	return s.interactive()
}

func asDoor(n *moka.Node) *Door {
	d, ok := n.UserData.(*Door)
	if !ok {
		panic(fmt.Sprintf("world: node %q in door layer is %T, not *Door", n.Name, n.UserData))
	}
	return d
}

func asWindow(n *moka.Node) *Window {
	w, ok := n.UserData.(*Window)
	if !ok {
		panic(fmt.Sprintf("world: node %q in window layer is %T, not *Window", n.Name, n.UserData))
	}
	return w
}

func asHouse(n *moka.Node) *House {
	h, ok := n.UserData.(*House)
	if !ok {
		panic(fmt.Sprintf("world: node %q in house layer is %T, not *House", n.Name, n.UserData))
	}
	return h
}

// newUpdateNode creates the visual counterpart of an interactive object. It
// renders the object according to its prevention state.
func newUpdateNode(obj *level.InteractiveObject, in *Interactive, house *House, textures TextureSource) *moka.Node {
	r := obj.Rect()
	n := moka.NewSprite(obj.Name+"/update", nil, r.Width, r.Height)
	n.SetPosition(r.X, r.Y)

	switch obj.Type {
	case level.TypeBarrel:
		open, covered := textures.Texture(TextureBarrel), textures.Texture(TextureBarrelCovered)
		n.OnUpdate = func(float64) {
			n.Image = open
			if in.Applied(0) {
				n.Image = covered
			}
		}
	case level.TypeDoor:
		open, closed := textures.Texture(TextureDoor), textures.Texture(TextureDoorClosed)
		n.OnUpdate = func(float64) {
			n.Image = open
			if in.Applied(0) {
				n.Image = closed
			}
		}
	case level.TypeWindow:
		open := textures.Texture(TextureWindow)
		screened := textures.Texture(TextureWindowScreened)
		closed := textures.Texture(TextureWindowClosed)
		n.OnUpdate = func(float64) {
			switch {
			case in.Applied(1):
				n.Image = closed
			case in.Applied(0):
				n.Image = screened
			default:
				n.Image = open
			}
		}
	case level.TypeClinic:
		n.Image = textures.Texture(TextureClinic)
	case level.TypeHouse:
		// Shade darkens as mosquitoes gather inside.
		n.Image = textures.Texture(TextureHouseShade)
		n.Color = houseShadeColor.WithAlpha(0)
		shown := 0
		var fade *moka.TweenGroup
		n.OnUpdate = func(dt float64) {
			if house.indoor != shown {
				shown = house.indoor
				fade = moka.TweenColor(n, houseShadeColor.WithAlpha(houseShadeAlpha(shown)), shadeFade, ease.OutQuad)
			}
			if fade != nil {
				fade.Update(float32(dt))
			}
		}
	}
	return n
}
