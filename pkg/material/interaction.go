package material

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// SurfaceInteraction records where a ray met a surface and everything the
// shading step needs about that point.
type SurfaceInteraction struct {
	Position core.Vec3 // world-space hit point
	Normal   core.Vec3 // unit geometric normal
	TexCoord core.Vec2
	Outgoing core.Vec3 // wo, pointing back along the incoming ray
	Dpdu     core.Vec3
	Dpdv     core.Vec3
	Material Material

	// HitDistance is the ray parameter of the current nearest hit. Aggregates
	// only accept hits closer than this, so callers can preset it to bound a query.
	HitDistance float64
}

// NewSurfaceInteraction returns an empty interaction with no hit recorded
func NewSurfaceInteraction() SurfaceInteraction {
	return SurfaceInteraction{HitDistance: math.Inf(1)}
}

// ShadingFrame returns the orthonormal basis (s, t, n) used for BSDF evaluation.
// s is Dpdu made perpendicular to the normal.
func (si *SurfaceInteraction) ShadingFrame() (core.Vec3, core.Vec3, core.Vec3) {
	n := si.Normal
	s := si.Dpdu.Subtract(n.Multiply(n.Dot(si.Dpdu)))
	if s.LengthSquared() < 1e-20 {
		s, _ = core.OrthonormalBasis(n)
	} else {
		s = s.Normalize()
	}
	return s, n.Cross(s), n
}

// WorldToLocal expresses v in the shading frame, where the normal is +Z
func (si *SurfaceInteraction) WorldToLocal(v core.Vec3) core.Vec3 {
	s, t, n := si.ShadingFrame()
	return core.NewVec3(v.Dot(s), v.Dot(t), v.Dot(n))
}

// LocalToWorld is the inverse of WorldToLocal
func (si *SurfaceInteraction) LocalToWorld(v core.Vec3) core.Vec3 {
	s, t, n := si.ShadingFrame()
	return s.Multiply(v.X).Add(t.Multiply(v.Y)).Add(n.Multiply(v.Z))
}
