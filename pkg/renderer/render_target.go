package renderer

import (
	"image"
	"image/color"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// RenderTarget receives the final color of every pixel. StoreColor is
// called exactly once per pixel, from any worker goroutine; no two calls
// share a pixel.
type RenderTarget interface {
	Width() int
	Height() int
	StoreColor(x, y int, c core.Vec3)
}

// ImageTarget stores pixels as 8-bit RGBA
type ImageTarget struct {
	img *image.RGBA
}

// NewImageTarget creates a black width×height target
func NewImageTarget(width, height int) *ImageTarget {
	return &ImageTarget{img: image.NewRGBA(image.Rect(0, 0, width, height))}
}

func (t *ImageTarget) Width() int  { return t.img.Bounds().Dx() }
func (t *ImageTarget) Height() int { return t.img.Bounds().Dy() }

// StoreColor writes c, expected in [0, 1] per channel, as 8-bit color
func (t *ImageTarget) StoreColor(x, y int, c core.Vec3) {
	t.img.SetRGBA(x, y, color.RGBA{
		R: uint8(c.X * 255),
		G: uint8(c.Y * 255),
		B: uint8(c.Z * 255),
		A: 255,
	})
}

// Image returns the rendered image
func (t *ImageTarget) Image() *image.RGBA {
	return t.img
}
