package scene

import (
	"math/rand"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

const (
	DefaultSceneSeed   = 1
	DefaultSphereCount = 150
)

// NewDefaultScene scatters count unit spheres with random glossy colors over
// x, y in [-10, 10] and z in [-15, 15], lit by a shadowing directional light
// from above
func NewDefaultScene(aggregate geometry.Aggregate, seed int64, count int) (*Scene, error) {
	s := NewScene(aggregate)
	s.CameraConfig = CameraConfig{
		Eye:    core.NewVec3(0, 25, -25),
		LookAt: core.NewVec3(0, 0, 0),
		Up:     core.NewVec3(0, 1, 0),
		VFov:   45,
	}

	random := rand.New(rand.NewSource(seed))
	primitives := make([]*geometry.Primitive, 0, count)
	for i := 0; i < count; i++ {
		center := core.NewVec3(
			random.Float64()*20-10,
			random.Float64()*20-10,
			random.Float64()*30-15,
		)
		sphere, err := geometry.NewSphereAt(center, 1)
		if err != nil {
			return nil, err
		}
		color := core.NewVec3(random.Float64(), random.Float64(), random.Float64())
		primitives = append(primitives, geometry.NewPrimitive(sphere, material.NewMicrofacet(color, 0.04)))
	}
	if err := s.AddPrimitives(primitives...); err != nil {
		return nil, err
	}

	sun := lights.NewDirectionalLight(core.NewVec3(0, 0.9, 0), core.NewVec3(15, 15, 15))
	sun.SetShadowing(true)
	s.AddLight(sun)

	return s, nil
}

// NewMatteSphereScene is a white matte unit sphere at the origin lit straight
// from above, seen from above
func NewMatteSphereScene(aggregate geometry.Aggregate) (*Scene, error) {
	s := NewScene(aggregate)
	s.CameraConfig = CameraConfig{
		Eye:    core.NewVec3(0, 4, 0.001),
		LookAt: core.NewVec3(0, 0, 0),
		Up:     core.NewVec3(0, 0, 1),
		VFov:   40,
	}

	sphere, err := geometry.NewSphereAt(core.Vec3{}, 1)
	if err != nil {
		return nil, err
	}
	if err := s.AddShape(sphere, material.NewMatte(core.NewVec3(1, 1, 1))); err != nil {
		return nil, err
	}
	s.AddLight(lights.NewDirectionalLight(core.NewVec3(0, 1, 0), core.NewVec3(1, 1, 1)))
	return s, nil
}
