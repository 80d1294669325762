package material

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Microfacet is a glossy dielectric reflector: a Torrance-Sparrow BRDF over
// a Trowbridge-Reitz distribution
type Microfacet struct {
	Albedo       core.Vec3
	Distribution TrowbridgeReitz
	EtaI, EtaT   float64    // indices of refraction outside / inside
	Textures     TextureSet // optional SlotAlbedo / SlotRoughness override
}

// NewMicrofacet creates a microfacet material from a color and a perceptual roughness
func NewMicrofacet(albedo core.Vec3, roughness float64) *Microfacet {
	return &Microfacet{
		Albedo:       albedo,
		Distribution: NewTrowbridgeReitz(roughness),
		EtaI:         1.0,
		EtaT:         1.5,
	}
}

// DistributionF evaluates albedo·D·G·F / (4|cosθi||cosθo|)
func (m *Microfacet) DistributionF(wi, wo core.Vec3) core.Vec3 {
	return m.evaluate(m.Albedo, m.Distribution, wi, wo)
}

// DistributionFAt is DistributionF with albedo and roughness looked up at the hit point
func (m *Microfacet) DistributionFAt(si *SurfaceInteraction, wi, wo core.Vec3) core.Vec3 {
	albedo := m.Albedo
	if tex, ok := m.Textures.Texture(SlotAlbedo); ok {
		albedo = tex.Evaluate(si.TexCoord, si.Position)
	}
	distribution := m.Distribution
	if tex, ok := m.Textures.Texture(SlotRoughness); ok {
		distribution = NewTrowbridgeReitz(tex.Evaluate(si.TexCoord, si.Position).X)
	}
	return m.evaluate(albedo, distribution, wi, wo)
}

// SampleDistributionF samples a microfacet normal and reflects wo about it
func (m *Microfacet) SampleDistributionF(wo core.Vec3, u core.Vec2) (core.Vec3, core.Vec3, float64) {
	if wo.Z == 0 {
		return core.Vec3{}, core.Vec3{}, 0
	}
	wh := m.Distribution.SampleWh(wo, u)
	if wo.Dot(wh) <= 0 {
		return core.Vec3{}, core.Vec3{}, 0
	}
	wi := wo.Reflect(wh)
	if !SameHemisphere(wo, wi) {
		return core.Vec3{}, core.Vec3{}, 0
	}
	pdf := m.Distribution.PDF(wo, wh) / (4 * wo.Dot(wh))
	return wi, m.DistributionF(wi, wo), pdf
}

func (m *Microfacet) evaluate(albedo core.Vec3, distribution TrowbridgeReitz, wi, wo core.Vec3) core.Vec3 {
	if wo.Z == 0 {
		return core.Vec3{}
	}
	cosThetaO := AbsCosTheta(wo)
	cosThetaI := AbsCosTheta(wi)
	if cosThetaI == 0 || cosThetaO == 0 {
		return core.Vec3{}
	}
	wh := wi.Add(wo)
	if wh.IsZero() {
		return core.Vec3{}
	}
	wh = wh.Normalize()

	fresnel := FresnelDielectric(wi.Dot(wh), m.EtaI, m.EtaT)
	scale := distribution.D(wh) * distribution.G(wo, wi) / (4 * cosThetaI * cosThetaO)
	if math.IsNaN(scale) || math.IsInf(scale, 0) {
		return core.Vec3{}
	}
	return albedo.MultiplyVec(fresnel).Multiply(scale)
}
