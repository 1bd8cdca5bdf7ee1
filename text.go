package moka

import (
	"bytes"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// Font wraps Ebitengine's text/v2 for TrueType font rendering.
type Font struct {
	face *text.GoTextFace
	lh   float64 // cached line height
}

// LoadFont loads a TrueType font from raw TTF/OTF data at the given size.
func LoadFont(ttfData []byte, size float64) (*Font, error) {
	source, err := text.NewGoTextFaceSource(bytes.NewReader(ttfData))
	if err != nil {
		return nil, fmt.Errorf("moka: parse font: %w", err)
	}
	face := &text.GoTextFace{Source: source, Size: size}
	m := face.Metrics()
	return &Font{face: face, lh: m.HAscent + m.HDescent + m.HLineGap}, nil
}

// MeasureString returns the width and height of the rendered text.
func (f *Font) MeasureString(s string) (width, height float64) {
	return text.Measure(s, f.face, f.lh)
}

// LineHeight returns the vertical distance between baselines.
func (f *Font) LineHeight() float64 {
	return f.lh
}

// Face returns the underlying GoTextFace for direct text/v2 rendering.
func (f *Font) Face() *text.GoTextFace {
	return f.face
}

// DrawText draws s centred in box, where box is in the local space of
// transform. Text can only be rendered into an *ebiten.Image; for any other
// target, or a nil font, nothing is drawn and DrawText reports false.
func DrawText(target DrawTarget, f *Font, s string, box Rect, transform [6]float64, c Color) bool {
	dst, ok := target.(*ebiten.Image)
	if !ok || dst == nil || f == nil || s == "" {
		return false
	}
	op := &text.DrawOptions{}
	op.PrimaryAlign = text.AlignCenter
	op.SecondaryAlign = text.AlignCenter
	op.LineSpacing = f.lh
	center := box.Center()
	op.GeoM.Translate(center.X, center.Y)
	op.GeoM.Concat(GeoM(transform))
	op.ColorScale.ScaleWithColor(c.ToRGBA())
	text.Draw(dst, s, f.face, op)
	return true
}
