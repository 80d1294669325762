package lights

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

type LightType string

const (
	LightTypePoint       LightType = "point"
	LightTypeDirectional LightType = "directional"
	LightTypeArea        LightType = "area"
)

// Light supplies incident radiance at a surface point and the ray used to
// test whether the light is visible from it
type Light interface {
	Type() LightType

	// SampleLi returns the radiance arriving at si and the world-space
	// direction FROM the surface point TO the light
	SampleLi(si *material.SurfaceInteraction) LightSample

	// LightDirection returns the fixed direction toward the light for lights
	// that have one, and the zero vector otherwise
	LightDirection() core.Vec3

	// EmitShadowRay returns a ray from the offset surface point toward the
	// light and the distance beyond which hits do not occlude it
	EmitShadowRay(si *material.SurfaceInteraction) (core.Ray, float64)

	// Shadowing reports whether shadow rays are traced for this light
	Shadowing() bool
	SetShadowing(enabled bool)
}

// LightSample contains the incident lighting at a surface point
type LightSample struct {
	Direction core.Vec3 // Direction from shading point to light
	Radiance  core.Vec3 // Incident radiance
	Distance  float64   // Distance to light, +Inf for directional lights
}
