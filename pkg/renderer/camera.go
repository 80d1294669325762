package renderer

import (
	"errors"
	"fmt"
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// ErrInvalidCamera is returned for a camera with no image area or an unusable field of view
var ErrInvalidCamera = errors.New("invalid camera")

// Camera generates primary rays for raster positions. (px, py) is measured
// in pixels from the top-left corner; the integer position maps to the
// centre of that pixel.
type Camera interface {
	GenerateRay(px, py float64) core.Ray
}

// PerspectiveCamera is a pinhole camera defined by a look-at frame and a
// vertical field of view
type PerspectiveCamera struct {
	cameraToWorld core.Transform
	width         float64
	height        float64
	halfHeight    float64 // tan(vfov/2)
	halfWidth     float64 // halfHeight scaled by the aspect ratio
}

// NewPerspectiveCamera creates a camera for a width×height image
func NewPerspectiveCamera(config scene.CameraConfig, width, height int) (*PerspectiveCamera, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: image size %dx%d", ErrInvalidCamera, width, height)
	}
	if config.VFov <= 0 || config.VFov >= 180 {
		return nil, fmt.Errorf("%w: vertical fov %v", ErrInvalidCamera, config.VFov)
	}

	cameraToWorld, err := core.LookAt(config.Eye, config.LookAt, config.Up)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCamera, err)
	}

	halfHeight := math.Tan(config.VFov * math.Pi / 360)
	aspect := float64(width) / float64(height)
	return &PerspectiveCamera{
		cameraToWorld: cameraToWorld,
		width:         float64(width),
		height:        float64(height),
		halfHeight:    halfHeight,
		halfWidth:     halfHeight * aspect,
	}, nil
}

// GenerateRay returns the world-space ray through raster position (px, py)
func (c *PerspectiveCamera) GenerateRay(px, py float64) core.Ray {
	// Raster to [-1, 1], y up
	ndcX := 2*(px+0.5)/c.width - 1
	ndcY := 1 - 2*(py+0.5)/c.height

	direction := core.NewVec3(ndcX*c.halfWidth, ndcY*c.halfHeight, 1)
	return core.NewRay(
		c.cameraToWorld.ApplyPoint(core.Vec3{}),
		c.cameraToWorld.ApplyVector(direction).Normalize(),
	)
}

// FixedCamera returns the same ray for every pixel
type FixedCamera struct {
	Ray core.Ray
}

// GenerateRay ignores the raster position
func (c FixedCamera) GenerateRay(px, py float64) core.Ray {
	return c.Ray
}
