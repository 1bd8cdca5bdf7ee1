package main

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func TestSanitizeLabel(t *testing.T) {
	tests := []struct{ in, want string }{
		{"after-begin", "after-begin"},
		{"  ", "unlabeled"},
		{"door a/closed", "door_a_closed"},
		{"v1.2", "v1.2"},
	}
	for _, tt := range tests {
		if got := sanitizeLabel(tt.in); got != tt.want {
			t.Errorf("sanitizeLabel(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestUnpremultiply(t *testing.T) {
	pixels := []byte{
		255, 0, 0, 255, // opaque red
		64, 32, 0, 128, // half-transparent, premultiplied
		0, 0, 0, 0, // transparent
	}
	img := unpremultiply(pixels, 3, 1)

	want := []color.NRGBA{
		{R: 255, A: 255},
		{R: 127, G: 63, A: 128},
		{},
	}
	for x, w := range want {
		if got := img.NRGBAAt(x, 0); got != w {
			t.Errorf("pixel %d = %v, want %v", x, got, w)
		}
	}
}

func TestWritePNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shot.png")
	src := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	src.SetNRGBA(1, 1, color.NRGBA{G: 255, A: 255})
	if err := writePNG(path, src); err != nil {
		t.Fatalf("writePNG: %v", err)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	got, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Bounds().Dx() != 2 {
		t.Errorf("width = %d, want 2", got.Bounds().Dx())
	}
	if r, g, _, _ := got.At(1, 1).RGBA(); r != 0 || g != 0xffff {
		t.Errorf("pixel = %v", got.At(1, 1))
	}
	if err := writePNG(filepath.Join(t.TempDir(), "missing", "shot.png"), src); err == nil {
		t.Error("expected error for missing directory")
	}
}
