package moka

import (
	"math"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// scrollAnim holds active scroll-to tweens for camera X and Y.
type scrollAnim struct {
	tweenX *gween.Tween
	tweenY *gween.Tween
	doneX  bool
	doneY  bool
}

// Camera controls the view into the world: the centre position and the size
// of the visible area. Rotation and zoom are not used by the settlement.
type Camera struct {
	// X and Y are the world-space position the camera centres on.
	X, Y float64
	// Width and Height are the size of the visible area in world units.
	Width, Height float64

	// BoundsEnabled clamps the camera position so the visible area stays
	// within Bounds.
	BoundsEnabled bool
	// Bounds is the world-space rectangle the camera is clamped to when
	// BoundsEnabled is true.
	Bounds Rect

	scrollTween *scrollAnim
}

// NewCamera creates a camera showing a width x height area, centred on the
// middle of that area.
func NewCamera(width, height float64) *Camera {
	return &Camera{
		X:      width / 2,
		Y:      height / 2,
		Width:  width,
		Height: height,
	}
}

// SetBounds enables camera bounds clamping.
func (c *Camera) SetBounds(bounds Rect) {
	c.BoundsEnabled = true
	c.Bounds = bounds
	c.clampToBounds()
}

// SetSize changes the visible area, for example after a fullscreen toggle.
func (c *Camera) SetSize(width, height float64) {
	c.Width = width
	c.Height = height
	if c.BoundsEnabled {
		c.clampToBounds()
	}
}

// Follow centres the camera on (x, y), clamped to bounds when enabled. Any
// running scroll animation is cancelled.
func (c *Camera) Follow(x, y float64) {
	c.scrollTween = nil
	c.X = x
	c.Y = y
	if c.BoundsEnabled {
		c.clampToBounds()
	}
}

// ScrollTo animates the camera to the given world position over duration seconds.
func (c *Camera) ScrollTo(x, y float64, duration float32, easeFn ease.TweenFunc) {
	c.scrollTween = &scrollAnim{
		tweenX: gween.New(float32(c.X), float32(x), duration, easeFn),
		tweenY: gween.New(float32(c.Y), float32(y), duration, easeFn),
	}
}

// Update advances a running scroll animation by dt seconds.
func (c *Camera) Update(dt float64) {
	if c.scrollTween != nil {
		if !c.scrollTween.doneX {
			val, done := c.scrollTween.tweenX.Update(float32(dt))
			c.X = float64(val)
			c.scrollTween.doneX = done
		}
		if !c.scrollTween.doneY {
			val, done := c.scrollTween.tweenY.Update(float32(dt))
			c.Y = float64(val)
			c.scrollTween.doneY = done
		}
		if c.scrollTween.doneX && c.scrollTween.doneY {
			c.scrollTween = nil
		}
	}
	if c.BoundsEnabled {
		c.clampToBounds()
	}
}

// clampToBounds restricts camera position so the visible area stays within Bounds.
func (c *Camera) clampToBounds() {
	halfW := c.Width / 2
	halfH := c.Height / 2

	minX := c.Bounds.X + halfW
	maxX := c.Bounds.X + c.Bounds.Width - halfW
	minY := c.Bounds.Y + halfH
	maxY := c.Bounds.Y + c.Bounds.Height - halfH

	// If bounds are smaller than visible area, centre the camera.
	if minX > maxX {
		c.X = c.Bounds.X + c.Bounds.Width/2
	} else {
		c.X = math.Max(minX, math.Min(c.X, maxX))
	}
	if minY > maxY {
		c.Y = c.Bounds.Y + c.Bounds.Height/2
	} else {
		c.Y = math.Max(minY, math.Min(c.Y, maxY))
	}
}

// ViewMatrix returns the world-to-screen transform: Translate(-left, -top).
func (c *Camera) ViewMatrix() [6]float64 {
	return [6]float64{1, 0, 0, 1, c.Width/2 - c.X, c.Height/2 - c.Y}
}

// WorldToScreen converts world coordinates to screen coordinates.
func (c *Camera) WorldToScreen(wx, wy float64) (sx, sy float64) {
	return transformPoint(c.ViewMatrix(), wx, wy)
}

// ScreenToWorld converts screen coordinates to world coordinates.
func (c *Camera) ScreenToWorld(sx, sy float64) (wx, wy float64) {
	return transformPoint(invertAffine(c.ViewMatrix()), sx, sy)
}

// VisibleBounds returns the camera's visible area in world space.
func (c *Camera) VisibleBounds() Rect {
	return Rect{X: c.X - c.Width/2, Y: c.Y - c.Height/2, Width: c.Width, Height: c.Height}
}
