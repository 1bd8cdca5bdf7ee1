package moka

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2/examples/resources/fonts"
)

func TestLoadFontInvalid(t *testing.T) {
	if _, err := LoadFont([]byte("not a font"), 12); err == nil {
		t.Error("expected error for invalid font data")
	}
}

func TestFontMeasure(t *testing.T) {
	f, err := LoadFont(fonts.MPlus1pRegular_ttf, 12)
	if err != nil {
		t.Fatalf("LoadFont: %v", err)
	}
	if f.LineHeight() <= 0 {
		t.Errorf("LineHeight = %v, want > 0", f.LineHeight())
	}
	short, h := f.MeasureString("Undo")
	long, _ := f.MeasureString("Bed Net Undo")
	if short <= 0 || h <= 0 {
		t.Errorf("Measure(Undo) = %vx%v", short, h)
	}
	if long <= short {
		t.Errorf("longer label measured %v, not wider than %v", long, short)
	}
	if f.Face() == nil {
		t.Error("Face should be set")
	}
}

func TestDrawTextNeedsImageTarget(t *testing.T) {
	f, err := LoadFont(fonts.MPlus1pRegular_ttf, 12)
	if err != nil {
		t.Fatal(err)
	}
	log := &drawLog{}
	if DrawText(log, f, "Close", Rect{Width: 75, Height: 20}, IdentityTransform(), ColorWhite) {
		t.Error("DrawText should skip targets that are not images")
	}
	if log.images != 0 {
		t.Errorf("images drawn = %d, want 0", log.images)
	}
	if DrawText(log, nil, "Close", Rect{Width: 75, Height: 20}, IdentityTransform(), ColorWhite) {
		t.Error("DrawText with a nil font should draw nothing")
	}
}
