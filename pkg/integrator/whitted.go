package integrator

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// reflectionOffset moves reflected ray origins off the surface
const reflectionOffset = 1e-3

// Config controls recursion in the Whitted integrator
type Config struct {
	MaxDepth            int       // last depth that still spawns a reflection ray
	SpecularReflectance core.Vec3 // weight applied to every mirror bounce
}

// DefaultConfig returns the default integrator settings
func DefaultConfig() Config {
	return Config{
		MaxDepth:            2,
		SpecularReflectance: core.NewVec3(0.3, 0.3, 0.3),
	}
}

// WhittedIntegrator computes direct lighting from every light at the first
// visible surface and adds a fixed-weight perfect mirror bounce
type WhittedIntegrator struct {
	config Config
}

// NewWhittedIntegrator creates a Whitted integrator
func NewWhittedIntegrator(config Config) *WhittedIntegrator {
	return &WhittedIntegrator{config: config}
}

// Config returns the integrator settings
func (w *WhittedIntegrator) Config() Config {
	return w.config
}

// Li returns the radiance arriving along ray
func (w *WhittedIntegrator) Li(ray core.Ray, sc *scene.Scene, depth int) core.Vec3 {
	si := material.NewSurfaceInteraction()
	if !sc.Intersects(ray, &si) {
		return core.Vec3{}
	}

	radiance := w.directLighting(sc, &si)

	if depth <= w.config.MaxDepth {
		radiance = radiance.Add(w.specularReflect(ray, sc, &si, depth))
		radiance = radiance.Add(w.specularTransmit(ray, sc, &si, depth))
	}
	return radiance
}

// directLighting sums the unoccluded contribution f·Li·cos of every light
func (w *WhittedIntegrator) directLighting(sc *scene.Scene, si *material.SurfaceInteraction) core.Vec3 {
	var total core.Vec3
	wo := si.WorldToLocal(si.Outgoing)

	for _, light := range sc.Lights {
		sample := light.SampleLi(si)
		if sample.Radiance.IsZero() {
			continue
		}

		cos := sample.Direction.Dot(si.Normal)
		if cos <= 0 {
			continue
		}

		f := material.Evaluate(si.Material, si, si.WorldToLocal(sample.Direction), wo)
		if f.IsZero() {
			continue
		}

		if light.Shadowing() {
			shadowRay, maxDistance := light.EmitShadowRay(si)
			if w.occluded(sc, shadowRay, maxDistance) {
				continue
			}
		}

		total = total.Add(f.MultiplyVec(sample.Radiance).Multiply(cos))
	}
	return total
}

// occluded reports whether anything lies on the shadow ray before maxDistance
func (w *WhittedIntegrator) occluded(sc *scene.Scene, shadowRay core.Ray, maxDistance float64) bool {
	shadow := material.NewSurfaceInteraction()
	shadow.HitDistance = maxDistance
	return sc.Intersects(shadowRay, &shadow)
}

// specularReflect traces the mirror direction and weights it by the fixed reflectance
func (w *WhittedIntegrator) specularReflect(ray core.Ray, sc *scene.Scene, si *material.SurfaceInteraction, depth int) core.Vec3 {
	direction := ray.Direction.Reflect(si.Normal).Negate()
	origin := si.Position.Add(si.Normal.Multiply(reflectionOffset))
	reflected := core.NewRay(origin, direction)
	return w.config.SpecularReflectance.MultiplyVec(w.Li(reflected, sc, depth+1))
}

// specularTransmit is the refraction term. No material transmits yet, so it
// contributes nothing.
func (w *WhittedIntegrator) specularTransmit(ray core.Ray, sc *scene.Scene, si *material.SurfaceInteraction, depth int) core.Vec3 {
	return core.Vec3{}
}
