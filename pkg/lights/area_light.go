package lights

import (
	"errors"
	"fmt"
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// ErrInvalidAreaLight is returned for area lights that cannot be sampled
var ErrInvalidAreaLight = errors.New("invalid area light")

// DiffuseAreaLight emits constant radiance from the front of a shape. Its
// sample points are drawn once at construction, so it is read-only while
// rendering.
type DiffuseAreaLight struct {
	shadowToggle
	Shape    geometry.Shape
	Radiance core.Vec3
	points   []core.Vec3
	normals  []core.Vec3
	centroid core.Vec3
}

// NewDiffuseAreaLight samples nSamples points on shape
func NewDiffuseAreaLight(shape geometry.Shape, radiance core.Vec3, nSamples int, sampler core.Sampler) (*DiffuseAreaLight, error) {
	if shape == nil {
		return nil, fmt.Errorf("%w: nil shape", ErrInvalidAreaLight)
	}
	if nSamples < 1 {
		return nil, fmt.Errorf("%w: need at least one sample, got %d", ErrInvalidAreaLight, nSamples)
	}
	if area := shape.Area(); !(area > 0) {
		return nil, fmt.Errorf("%w: shape area %v", ErrInvalidAreaLight, area)
	}

	light := &DiffuseAreaLight{
		Shape:    shape,
		Radiance: radiance,
		points:   make([]core.Vec3, nSamples),
		normals:  make([]core.Vec3, nSamples),
	}
	for i := 0; i < nSamples; i++ {
		light.points[i], light.normals[i] = shape.SamplePoint(sampler.Get2D())
		light.centroid = light.centroid.Add(light.points[i])
	}
	light.centroid = light.centroid.Multiply(1 / float64(nSamples))
	return light, nil
}

func (al *DiffuseAreaLight) Type() LightType {
	return LightTypeArea
}

// SampleLi estimates the incident radiance as the average over the stored
// samples of L·cosθ_light/(d²·pdf). The direction points at the sample centroid.
func (al *DiffuseAreaLight) SampleLi(si *material.SurfaceInteraction) LightSample {
	pdf := al.Shape.PDF(si)
	if pdf <= 0 {
		return LightSample{}
	}
	n := float64(len(al.points))

	var radiance core.Vec3
	for i, p := range al.points {
		toLight := p.Subtract(si.Position)
		distance2 := toLight.LengthSquared()
		if distance2 == 0 {
			continue
		}
		wi := toLight.Multiply(1 / math.Sqrt(distance2))
		cosLight := math.Max(0, al.normals[i].Dot(wi.Negate()))
		if cosLight == 0 {
			continue
		}
		radiance = radiance.Add(al.Radiance.Multiply(cosLight / (distance2 * pdf * n)))
	}

	toCentroid := al.centroid.Subtract(si.Position)
	distance := toCentroid.Length()
	if distance == 0 {
		return LightSample{}
	}
	return LightSample{
		Direction: toCentroid.Multiply(1 / distance),
		Radiance:  radiance,
		Distance:  distance,
	}
}

// LightDirection is undefined for area lights
func (al *DiffuseAreaLight) LightDirection() core.Vec3 {
	return core.Vec3{}
}

// EmitShadowRay aims at the sample centroid. The emitting shape itself is
// not expected to be in the aggregate.
func (al *DiffuseAreaLight) EmitShadowRay(si *material.SurfaceInteraction) (core.Ray, float64) {
	return shadowRayTo(si, al.centroid)
}
