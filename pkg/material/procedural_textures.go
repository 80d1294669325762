package material

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// CheckerTexture alternates between two textures on a UV grid
type CheckerTexture struct {
	Even, Odd Texture
	Frequency float64 // checks per unit of UV
}

// NewCheckerTexture creates a two-color UV checkerboard
func NewCheckerTexture(even, odd core.Vec3, frequency float64) *CheckerTexture {
	return &CheckerTexture{
		Even:      NewConstantTexture(even),
		Odd:       NewConstantTexture(odd),
		Frequency: frequency,
	}
}

// Evaluate picks Even or Odd by the parity of the check containing uv
func (c *CheckerTexture) Evaluate(uv core.Vec2, point core.Vec3) core.Vec3 {
	checkU := int(math.Floor(uv.X * c.Frequency))
	checkV := int(math.Floor(uv.Y * c.Frequency))
	if (checkU+checkV)%2 == 0 {
		return c.Even.Evaluate(uv, point)
	}
	return c.Odd.Evaluate(uv, point)
}

// NewCheckerboardTexture bakes a checkerboard into an image texture
func NewCheckerboardTexture(width, height, checkSize int, color1, color2 core.Vec3) *ImageTexture {
	pixels := make([]core.Vec3, width*height)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if (x/checkSize+y/checkSize)%2 == 0 {
				pixels[y*width+x] = color1
			} else {
				pixels[y*width+x] = color2
			}
		}
	}

	return NewImageTexture(width, height, pixels)
}
