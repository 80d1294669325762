package scene

import (
	"math"
	"math/rand"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// areaLightSamples is the number of points stored per area light
const areaLightSamples = 16

// NewGroundQuad creates a horizontal square of two triangles centered at the
// given point with normal pointing up (0,1,0) and UVs spanning [0, 1]
func NewGroundQuad(center core.Vec3, size float64) (*geometry.TriangleList, error) {
	half := size / 2
	positions := []core.Vec3{
		core.NewVec3(-half, 0, -half),
		core.NewVec3(half, 0, -half),
		core.NewVec3(half, 0, half),
		core.NewVec3(-half, 0, half),
	}
	// (0,2,1) and (0,3,2) wind counter-clockwise seen from +Y
	indices := []int{0, 2, 1, 0, 3, 2}
	return geometry.NewTriangleList(core.Translate(center), positions, indices, &geometry.TriangleListOptions{
		UVs: []core.Vec2{
			core.NewVec2(0, 0), core.NewVec2(1, 0), core.NewVec2(1, 1), core.NewVec2(0, 1),
		},
	})
}

// NewTriangleScene builds a checkered floor with a glossy sphere and a
// tetrahedron, lit by a shadowing point light and a triangular area light
func NewTriangleScene(aggregate geometry.Aggregate) (*Scene, error) {
	return newTriangleScene(aggregate, nil)
}

// newTriangleScene builds the triangle scene, using groundTexture for the
// floor when it is set
func newTriangleScene(aggregate geometry.Aggregate, groundTexture material.Texture) (*Scene, error) {
	s := NewScene(aggregate)
	s.CameraConfig = CameraConfig{
		Eye:    core.NewVec3(0, 3, -8),
		LookAt: core.NewVec3(0, 0.75, 0),
		Up:     core.NewVec3(0, 1, 0),
		VFov:   40,
	}

	ground, err := NewGroundQuad(core.Vec3{}, 20)
	if err != nil {
		return nil, err
	}
	if groundTexture == nil {
		groundTexture = material.NewCheckerTexture(core.NewVec3(0.8, 0.8, 0.8), core.NewVec3(0.2, 0.3, 0.1), 10)
	}
	if err := s.AddTriangleList(ground, material.NewTexturedMatte(groundTexture)); err != nil {
		return nil, err
	}

	sphere, err := geometry.NewSphereAt(core.NewVec3(-1.2, 1, 0), 1)
	if err != nil {
		return nil, err
	}
	if err := s.AddShape(sphere, material.NewMicrofacet(core.NewVec3(0.9, 0.6, 0.2), 0.2)); err != nil {
		return nil, err
	}

	rotation := core.RotateAxis(core.NewVec3(0, 1, 0), math.Pi/6)
	tetra, err := geometry.NewTriangleList(core.Translate(core.NewVec3(1.5, 0, 0.5)).Compose(rotation),
		[]core.Vec3{
			core.NewVec3(0, 0, 0), core.NewVec3(1.5, 0, 0), core.NewVec3(0.75, 0, 1.3), core.NewVec3(0.75, 1.4, 0.43),
		},
		[]int{0, 3, 1, 1, 3, 2, 2, 3, 0, 0, 1, 2},
		nil)
	if err != nil {
		return nil, err
	}
	if err := s.AddTriangleList(tetra, material.NewMatte(core.NewVec3(0.2, 0.4, 0.8))); err != nil {
		return nil, err
	}

	point := lights.NewPointLight(core.NewVec3(3, 6, -3), core.NewVec3(40, 40, 40))
	point.SetShadowing(true)
	s.AddLight(point)

	// The emitter is only a light, it is not added to the aggregate
	panel, err := geometry.NewTriangleList(core.IdentityTransform(), []core.Vec3{
		core.NewVec3(-3, 5, -1), core.NewVec3(-2, 5, -1), core.NewVec3(-3, 5, 0),
	}, []int{0, 1, 2}, nil)
	if err != nil {
		return nil, err
	}
	area, err := lights.NewDiffuseAreaLight(panel.Triangles()[0], core.NewVec3(30, 28, 25),
		areaLightSamples, core.NewRandomSampler(rand.New(rand.NewSource(DefaultSceneSeed))))
	if err != nil {
		return nil, err
	}
	area.SetShadowing(true)
	s.AddLight(area)

	return s, nil
}
