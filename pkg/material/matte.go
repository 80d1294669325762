package material

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Matte is a perfectly diffuse (Lambertian) reflector
type Matte struct {
	Albedo   core.Vec3
	Textures TextureSet // optional SlotAlbedo / SlotDiffuse override
}

// NewMatte creates a new matte material with a constant albedo
func NewMatte(albedo core.Vec3) *Matte {
	return &Matte{Albedo: albedo}
}

// NewTexturedMatte creates a matte material whose albedo comes from a texture
func NewTexturedMatte(albedo Texture) *Matte {
	m := &Matte{Albedo: core.NewVec3(1, 1, 1)}
	m.Textures.SetTexture(SlotAlbedo, albedo)
	return m
}

// DistributionF returns albedo/π
func (m *Matte) DistributionF(wi, wo core.Vec3) core.Vec3 {
	return m.lambert(m.Albedo, wo)
}

// DistributionFAt is DistributionF with the albedo looked up at the hit point
func (m *Matte) DistributionFAt(si *SurfaceInteraction, wi, wo core.Vec3) core.Vec3 {
	return m.lambert(m.albedoAt(si), wo)
}

// SampleDistributionF draws wi from a cosine-weighted hemisphere on the side of wo
func (m *Matte) SampleDistributionF(wo core.Vec3, u core.Vec2) (core.Vec3, core.Vec3, float64) {
	wi := core.SampleCosineHemisphereLocal(u)
	if wo.Z < 0 {
		wi.Z = -wi.Z
	}
	pdf := AbsCosTheta(wi) / math.Pi
	return wi, m.DistributionF(wi, wo), pdf
}

func (m *Matte) lambert(albedo, wo core.Vec3) core.Vec3 {
	if wo.Z == 0 {
		return core.Vec3{}
	}
	return albedo.Multiply(1.0 / math.Pi)
}

func (m *Matte) albedoAt(si *SurfaceInteraction) core.Vec3 {
	if tex, ok := m.Textures.Texture(SlotAlbedo); ok {
		return tex.Evaluate(si.TexCoord, si.Position)
	}
	if tex, ok := m.Textures.Texture(SlotDiffuse); ok {
		return tex.Evaluate(si.TexCoord, si.Position)
	}
	return m.Albedo
}
