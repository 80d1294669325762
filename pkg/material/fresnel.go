package material

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// FresnelDielectric returns the unpolarized Fresnel reflectance at a
// boundary between media with indices etaI (incident side) and etaT.
// A negative cosThetaI means the ray is leaving the medium.
func FresnelDielectric(cosThetaI, etaI, etaT float64) core.Vec3 {
	cosThetaI = clamp(cosThetaI, -1, 1)
	if cosThetaI <= 0 {
		etaI, etaT = etaT, etaI
		cosThetaI = math.Abs(cosThetaI)
	}

	sinThetaI := math.Sqrt(math.Max(0, 1-cosThetaI*cosThetaI))
	sinThetaT := etaI / etaT * sinThetaI
	// Total internal reflection
	if sinThetaT >= 1 {
		return core.NewVec3(1, 1, 1)
	}
	cosThetaT := math.Sqrt(math.Max(0, 1-sinThetaT*sinThetaT))

	rParallel := (etaT*cosThetaI - etaI*cosThetaT) / (etaT*cosThetaI + etaI*cosThetaT)
	rPerpendicular := (etaI*cosThetaI - etaT*cosThetaT) / (etaI*cosThetaI + etaT*cosThetaT)
	reflectance := (rParallel*rParallel + rPerpendicular*rPerpendicular) / 2
	return core.NewVec3(reflectance, reflectance, reflectance)
}
