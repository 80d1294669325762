package material

import (
	"image"
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// ImageTexture looks up colors in a 2D pixel grid
type ImageTexture struct {
	Width  int
	Height int
	Pixels []core.Vec3 // Row-major: Pixels[y*Width + x]
}

// NewImageTexture creates a new image texture
func NewImageTexture(width, height int, pixels []core.Vec3) *ImageTexture {
	return &ImageTexture{
		Width:  width,
		Height: height,
		Pixels: pixels,
	}
}

// NewImageTextureFromImage copies a decoded image into a texture with
// channels scaled to [0, 1]
func NewImageTextureFromImage(img image.Image) *ImageTexture {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	pixels := make([]core.Vec3, 0, width*height)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			pixels = append(pixels, core.NewVec3(float64(r)/0xffff, float64(g)/0xffff, float64(b)/0xffff))
		}
	}
	return NewImageTexture(width, height, pixels)
}

// Evaluate samples the texture with nearest-neighbor filtering. UVs wrap,
// and V=0 is the bottom row of the image.
func (t *ImageTexture) Evaluate(uv core.Vec2, point core.Vec3) core.Vec3 {
	if t.Width == 0 || t.Height == 0 || len(t.Pixels) < t.Width*t.Height {
		return core.Vec3{}
	}

	u := wrapUnit(uv.X)
	v := wrapUnit(uv.Y)

	x := min(int(u*float64(t.Width)), t.Width-1)
	y := min(int((1.0-v)*float64(t.Height)), t.Height-1)

	return t.Pixels[max(y, 0)*t.Width+max(x, 0)]
}

// wrapUnit maps x into [0, 1)
func wrapUnit(x float64) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return 0
	}
	return x - math.Floor(x)
}
