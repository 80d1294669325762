package lights

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// DirectionalLight is a light at infinity: constant radiance from one direction
type DirectionalLight struct {
	shadowToggle
	direction core.Vec3 // unit, pointing toward the light
	Radiance  core.Vec3
}

// NewDirectionalLight creates a light arriving from direction wi (toward the light)
func NewDirectionalLight(wi, radiance core.Vec3) *DirectionalLight {
	return &DirectionalLight{direction: wi.Normalize(), Radiance: radiance}
}

func (dl *DirectionalLight) Type() LightType {
	return LightTypeDirectional
}

func (dl *DirectionalLight) SampleLi(si *material.SurfaceInteraction) LightSample {
	return LightSample{
		Direction: dl.direction,
		Radiance:  dl.Radiance,
		Distance:  math.Inf(1),
	}
}

func (dl *DirectionalLight) LightDirection() core.Vec3 {
	return dl.direction
}

func (dl *DirectionalLight) EmitShadowRay(si *material.SurfaceInteraction) (core.Ray, float64) {
	return shadowRayAlong(si, dl.direction)
}
