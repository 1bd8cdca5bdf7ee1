package world

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/phanxgames/moka"
	"golang.org/x/image/colornames"

	"github.com/phanxgames/moka/level"
)

const (
	panelElementWidth  = 75
	panelElementHeight = 20
	panelMargin        = 10
)

var (
	panelIdleColor    = moka.ColorFrom(colornames.Darkslategray).WithAlpha(0.85)
	panelAppliedColor = moka.ColorFrom(colornames.Seagreen).WithAlpha(0.85)
	panelLabelColor   = moka.ColorFrom(colornames.Ivory)
)

// PanelOption is one option/undo element pair of a panel.
type PanelOption struct {
	Label string
	Undo  string
}

type panelLayout uint8

const (
	// panelStacked lays elements out top to bottom.
	panelStacked panelLayout = iota
	// panelTabs lays elements out left to right.
	panelTabs
)

type panelSpec struct {
	layout  panelLayout
	options []PanelOption
}

var panelSpecs = map[string]panelSpec{
	level.TypeBarrel: {panelStacked, []PanelOption{{"Cover", "Undo"}}},
	level.TypeDoor:   {panelStacked, []PanelOption{{"Close", "Undo"}}},
	level.TypeWindow: {panelStacked, []PanelOption{{"Screen", "Undo"}, {"Close", "Undo"}}},
	level.TypeClinic: {panelTabs, []PanelOption{{"RDTs", "Undo"}, {"ACTs", "Undo"}}},
	level.TypeHouse:  {panelTabs, []PanelOption{{"Bed Net", "Undo"}, {"Repair", "Undo"}}},
}

// panelOrder fixes the order panels are attached to the UI layer.
var panelOrder = []string{level.TypeBarrel, level.TypeDoor, level.TypeWindow, level.TypeClinic, level.TypeHouse}

// Panel is the UI of one interactive type. It is shown below the selected
// object of that type and hidden otherwise.
type Panel struct {
	Type string

	spec   panelSpec
	node   *moka.Node
	target *Interactive
}

func newPanel(typ string, pixel *ebiten.Image, font *moka.Font) *Panel {
	p := &Panel{
		Type: typ,
		spec: panelSpecs[typ],
		node: moka.NewContainer("panel/" + typ),
	}
	p.node.Visible = false
	p.node.UserData = p
	p.node.OnDraw = func(target moka.DrawTarget, transform [6]float64) {
		for i := range p.spec.options {
			c := panelIdleColor
			if p.target != nil && p.target.Applied(i) {
				c = panelAppliedColor
			}
			r := p.localRect(i)
			fillRect(target, pixel, transform, r, c)
			moka.DrawText(target, font, p.Label(i), r, transform, panelLabelColor)
		}
	}
	return p
}

// Options returns the panel's option/undo pairs.
func (p *Panel) Options() []PanelOption { return p.spec.options }

// Target returns the object the panel is shown for, or nil.
func (p *Panel) Target() *Interactive { return p.target }

// Visible reports whether the panel is shown.
func (p *Panel) Visible() bool { return p.node.Visible }

// Label returns the text element i currently shows: the option, or its undo
// once applied.
func (p *Panel) Label(i int) string {
	o := p.spec.options[i]
	if p.target != nil && p.target.Applied(i) {
		return o.Undo
	}
	return o.Label
}

func (p *Panel) size() (w, h float64) {
	n := float64(len(p.spec.options))
	if p.spec.layout == panelTabs {
		return n * panelElementWidth, panelElementHeight
	}
	return panelElementWidth, n * panelElementHeight
}

func (p *Panel) localRect(i int) moka.Rect {
	r := moka.Rect{Width: panelElementWidth, Height: panelElementHeight}
	if p.spec.layout == panelTabs {
		r.X = float64(i) * panelElementWidth
	} else {
		r.Y = float64(i) * panelElementHeight
	}
	return r
}

// show attaches the panel to target, centred below it.
func (p *Panel) show(target *Interactive) {
	p.target = target
	r := target.node.BoundingRect()
	w, _ := p.size()
	p.node.SetPosition(r.X+r.Width/2-w/2, r.Y+r.Height+panelMargin)
	p.node.Visible = true
}

func (p *Panel) hide() {
	p.target = nil
	p.node.Visible = false
}

// elementAt returns the element under world (x, y).
func (p *Panel) elementAt(x, y float64) (int, bool) {
	if !p.node.Visible {
		return 0, false
	}
	lx, ly := p.node.WorldToLocal(x, y)
	for i := range p.spec.options {
		if p.localRect(i).Contains(lx, ly) {
			return i, true
		}
	}
	return 0, false
}
