package world

import (
	"github.com/phanxgames/moka"
	"github.com/tanema/gween/ease"
	"golang.org/x/image/colornames"

	"github.com/phanxgames/moka/level"
)

const (
	nightAlpha = 0.45
	nightFall  = 3 // seconds
)

var mapTextures = []string{TextureGround, TextureHouses, TextureRoofs}

// buildBackground attaches the map layers and the prevention geometry.
func buildBackground(layer *moka.Node, lvl *level.Level, textures TextureSource) {
	b := lvl.Bounds()
	for _, name := range mapTextures {
		layer.AddChild(moka.NewSprite(name, textures.Texture(name), b.Width, b.Height))
	}
	objs := lvl.Prevention.Objects()
	for i := range objs {
		o := &objs[i]
		r := o.Rect()
		n := moka.NewSprite(o.Name, textures.Texture(PreventionTexture(o.Type)), r.Width, r.Height)
		n.SetPosition(r.X, r.Y)
		n.UserData = o
		layer.AddChild(n)
	}
}

// Darkness is the night overlay drawn over the map. It fades in when the
// simulation begins.
type Darkness struct {
	node *moka.Node
	fade *moka.TweenGroup
}

func newDarkness(bounds moka.Rect, textures TextureSource) *Darkness {
	d := &Darkness{
		node: moka.NewSprite("darkness", textures.Texture(TexturePixel), bounds.Width, bounds.Height),
	}
	d.node.SetPosition(bounds.X, bounds.Y)
	d.node.Color = moka.ColorFrom(colornames.Midnightblue).WithAlpha(0)
	d.node.UserData = d
	d.node.OnUpdate = func(dt float64) {
		if d.fade != nil {
			d.fade.Update(float32(dt))
		}
	}
	return d
}

// Alpha returns the overlay's current opacity.
func (d *Darkness) Alpha() float64 { return d.node.Color.A }

func (d *Darkness) fall() {
	d.fade = moka.TweenAlpha(d.node, nightAlpha, nightFall, ease.InOutQuad)
}
