package material

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Material evaluates a BSDF. Directions are in the local shading frame
// (normal along +Z) and both point away from the surface.
type Material interface {
	DistributionF(wi, wo core.Vec3) core.Vec3
}

// TexturedMaterial is implemented by materials whose parameters vary over
// the surface
type TexturedMaterial interface {
	Material
	DistributionFAt(si *SurfaceInteraction, wi, wo core.Vec3) core.Vec3
}

// SampledMaterial is implemented by materials that can importance sample
// an incoming direction for a given outgoing one
type SampledMaterial interface {
	Material
	// SampleDistributionF returns the sampled wi, the BSDF value and the pdf of wi
	SampleDistributionF(wo core.Vec3, u core.Vec2) (core.Vec3, core.Vec3, float64)
}

// Evaluate dispatches to the textured variant when the material has one
func Evaluate(m Material, si *SurfaceInteraction, wi, wo core.Vec3) core.Vec3 {
	if m == nil {
		return core.Vec3{}
	}
	if tm, ok := m.(TexturedMaterial); ok && si != nil {
		return tm.DistributionFAt(si, wi, wo)
	}
	return m.DistributionF(wi, wo)
}

// Shading-frame trigonometry. w is a unit vector in local space.

func CosTheta(w core.Vec3) float64    { return w.Z }
func Cos2Theta(w core.Vec3) float64   { return w.Z * w.Z }
func AbsCosTheta(w core.Vec3) float64 { return math.Abs(w.Z) }

func Sin2Theta(w core.Vec3) float64 { return math.Max(0, 1-Cos2Theta(w)) }
func SinTheta(w core.Vec3) float64  { return math.Sqrt(Sin2Theta(w)) }
func TanTheta(w core.Vec3) float64  { return SinTheta(w) / CosTheta(w) }
func Tan2Theta(w core.Vec3) float64 { return Sin2Theta(w) / Cos2Theta(w) }

func CosPhi(w core.Vec3) float64 {
	sinTheta := SinTheta(w)
	if sinTheta == 0 {
		return 1
	}
	return clamp(w.X/sinTheta, -1, 1)
}

func SinPhi(w core.Vec3) float64 {
	sinTheta := SinTheta(w)
	if sinTheta == 0 {
		return 0
	}
	return clamp(w.Y/sinTheta, -1, 1)
}

func Cos2Phi(w core.Vec3) float64 { return CosPhi(w) * CosPhi(w) }
func Sin2Phi(w core.Vec3) float64 { return SinPhi(w) * SinPhi(w) }

// SameHemisphere reports whether w and wp lie on the same side of the surface
func SameHemisphere(w, wp core.Vec3) bool {
	return w.Z*wp.Z > 0
}

func clamp(x, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, x))
}
