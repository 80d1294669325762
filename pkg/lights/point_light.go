package lights

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// PointLight emits intensity I uniformly from a point, falling off with the
// square of the distance
type PointLight struct {
	shadowToggle
	Position  core.Vec3
	Intensity core.Vec3
}

// NewPointLight creates a new point light
func NewPointLight(position, intensity core.Vec3) *PointLight {
	return &PointLight{Position: position, Intensity: intensity}
}

func (pl *PointLight) Type() LightType {
	return LightTypePoint
}

// SampleLi returns I/d² toward the light
func (pl *PointLight) SampleLi(si *material.SurfaceInteraction) LightSample {
	toLight := pl.Position.Subtract(si.Position)
	distance2 := toLight.LengthSquared()
	if distance2 == 0 {
		return LightSample{}
	}
	distance := toLight.Length()
	return LightSample{
		Direction: toLight.Multiply(1 / distance),
		Radiance:  pl.Intensity.Multiply(1 / distance2),
		Distance:  distance,
	}
}

// LightDirection is undefined for point lights
func (pl *PointLight) LightDirection() core.Vec3 {
	return core.Vec3{}
}

func (pl *PointLight) EmitShadowRay(si *material.SurfaceInteraction) (core.Ray, float64) {
	return shadowRayTo(si, pl.Position)
}
