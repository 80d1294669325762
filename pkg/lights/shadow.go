package lights

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// ShadowRayOffset moves shadow ray origins off the surface to avoid self-intersection
const ShadowRayOffset = 5e-4

// shadowToggle implements the per-light shadowing flag. Shadowing is off
// until enabled.
type shadowToggle struct {
	shadowing bool
}

func (s *shadowToggle) Shadowing() bool {
	return s.shadowing
}

func (s *shadowToggle) SetShadowing(enabled bool) {
	s.shadowing = enabled
}

// shadowRayOrigin offsets the hit point along the surface normal
func shadowRayOrigin(si *material.SurfaceInteraction) core.Vec3 {
	return si.Position.Add(si.Normal.Multiply(ShadowRayOffset))
}

// shadowRayTo builds a shadow ray toward a point, bounded by the distance to it
func shadowRayTo(si *material.SurfaceInteraction, target core.Vec3) (core.Ray, float64) {
	origin := shadowRayOrigin(si)
	toTarget := target.Subtract(origin)
	distance := toTarget.Length()
	if distance == 0 {
		return core.NewRay(origin, si.Normal), 0
	}
	return core.NewRay(origin, toTarget.Multiply(1/distance)), distance
}

// shadowRayAlong builds an unbounded shadow ray in a fixed direction
func shadowRayAlong(si *material.SurfaceInteraction, direction core.Vec3) (core.Ray, float64) {
	return core.NewRay(shadowRayOrigin(si), direction), math.Inf(1)
}
