package material

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// TrowbridgeReitz is the GGX microfacet distribution with separate
// roughness along the tangent (X) and bitangent (Y) directions
type TrowbridgeReitz struct {
	AlphaX, AlphaY float64
}

// NewTrowbridgeReitz creates an isotropic distribution from a perceptual roughness
func NewTrowbridgeReitz(roughness float64) TrowbridgeReitz {
	alpha := RoughnessToAlpha(roughness)
	return TrowbridgeReitz{AlphaX: alpha, AlphaY: alpha}
}

// RoughnessToAlpha maps perceptual roughness in [0, 1] to the distribution's alpha
func RoughnessToAlpha(roughness float64) float64 {
	roughness = math.Max(roughness, 1e-3)
	x := math.Log(roughness)
	return 1.62142 + 0.819955*x + 0.1734*x*x + 0.0171201*x*x*x + 0.000640711*x*x*x*x
}

// D returns the differential area of microfacets oriented along wh
func (tr TrowbridgeReitz) D(wh core.Vec3) float64 {
	tan2Theta := Tan2Theta(wh)
	if math.IsInf(tan2Theta, 0) || math.IsNaN(tan2Theta) {
		return 0
	}
	cos4Theta := Cos2Theta(wh) * Cos2Theta(wh)
	e := (Cos2Phi(wh)/(tr.AlphaX*tr.AlphaX) + Sin2Phi(wh)/(tr.AlphaY*tr.AlphaY)) * tan2Theta
	return 1 / (math.Pi * tr.AlphaX * tr.AlphaY * cos4Theta * (1 + e) * (1 + e))
}

// Lambda is the auxiliary masking function. It is infinite at grazing
// angles so G falls to zero there.
func (tr TrowbridgeReitz) Lambda(w core.Vec3) float64 {
	absTanTheta := math.Abs(TanTheta(w))
	if math.IsInf(absTanTheta, 0) || math.IsNaN(absTanTheta) {
		return math.Inf(1)
	}
	alpha := math.Sqrt(Cos2Phi(w)*tr.AlphaX*tr.AlphaX + Sin2Phi(w)*tr.AlphaY*tr.AlphaY)
	alpha2Tan2Theta := (alpha * absTanTheta) * (alpha * absTanTheta)
	return (-1 + math.Sqrt(1+alpha2Tan2Theta)) / 2
}

// G is the joint masking-shadowing term for wo and wi
func (tr TrowbridgeReitz) G(wo, wi core.Vec3) float64 {
	return 1 / (1 + tr.Lambda(wo) + tr.Lambda(wi))
}

// SampleWh draws a microfacet normal proportional to D(wh)·|cosθh|,
// on the same side as wo
func (tr TrowbridgeReitz) SampleWh(wo core.Vec3, u core.Vec2) core.Vec3 {
	var tan2Theta, phi float64
	if tr.AlphaX == tr.AlphaY {
		tan2Theta = tr.AlphaX * tr.AlphaX * u.X / (1 - u.X)
		phi = 2 * math.Pi * u.Y
	} else {
		phi = math.Atan(tr.AlphaY / tr.AlphaX * math.Tan(2*math.Pi*u.Y+0.5*math.Pi))
		if u.Y > 0.5 {
			phi += math.Pi
		}
		sinPhi, cosPhi := math.Sin(phi), math.Cos(phi)
		alpha2 := 1 / (cosPhi*cosPhi/(tr.AlphaX*tr.AlphaX) + sinPhi*sinPhi/(tr.AlphaY*tr.AlphaY))
		tan2Theta = alpha2 * u.X / (1 - u.X)
	}

	cosTheta := 1 / math.Sqrt(1+tan2Theta)
	sinTheta := math.Sqrt(math.Max(0, 1-cosTheta*cosTheta))
	wh := core.NewVec3(sinTheta*math.Cos(phi), sinTheta*math.Sin(phi), cosTheta)
	if !SameHemisphere(wo, wh) {
		wh = wh.Negate()
	}
	return wh
}

// PDF is the density of SampleWh returning wh
func (tr TrowbridgeReitz) PDF(wo, wh core.Vec3) float64 {
	return tr.D(wh) * AbsCosTheta(wh)
}
