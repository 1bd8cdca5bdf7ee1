package world

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/phanxgames/moka"
)

// fillRect draws img stretched over r, where r is in the local space of
// transform.
func fillRect(target moka.DrawTarget, img *ebiten.Image, transform [6]float64, r moka.Rect, c moka.Color) {
	if img == nil || r.Empty() {
		return
	}
	b := img.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return
	}
	var op ebiten.DrawImageOptions
	op.GeoM.Scale(r.Width/float64(b.Dx()), r.Height/float64(b.Dy()))
	op.GeoM.Translate(r.X, r.Y)
	op.GeoM.Concat(moka.GeoM(transform))
	op.ColorScale.ScaleWithColor(c.ToRGBA())
	target.DrawImage(img, &op)
}
