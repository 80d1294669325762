package scene

import (
	"errors"
	"fmt"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// ErrUnknownAggregate is returned for an aggregate name that is not recognised
var ErrUnknownAggregate = errors.New("unknown aggregate")

// Scene owns everything a render reads: the primitives, the aggregate
// indexing them and the lights. It is read-only while rendering.
type Scene struct {
	Aggregate    geometry.Aggregate
	Primitives   []*geometry.Primitive
	Lights       []lights.Light
	CameraConfig CameraConfig // suggested view for built-in scenes
}

// CameraConfig describes a look-at perspective view
type CameraConfig struct {
	Eye    core.Vec3 `json:"eye"`
	LookAt core.Vec3 `json:"lookAt"`
	Up     core.Vec3 `json:"up"`
	VFov   float64   `json:"vfov"` // vertical field of view in degrees
}

// NewScene creates an empty scene indexed by aggregate
func NewScene(aggregate geometry.Aggregate) *Scene {
	return &Scene{
		Aggregate: aggregate,
		CameraConfig: CameraConfig{
			Eye:    core.NewVec3(0, 0, -5),
			LookAt: core.NewVec3(0, 0, 0),
			Up:     core.NewVec3(0, 1, 0),
			VFov:   45,
		},
	}
}

// NewAggregate creates an empty aggregate by name: "linear", "bvh" or "rtree"
func NewAggregate(name string) (geometry.Aggregate, error) {
	switch name {
	case "linear":
		return geometry.NewLinearAggregate(), nil
	case "bvh", "":
		return geometry.NewBVH(), nil
	case "rtree":
		return geometry.NewRTree(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownAggregate, name)
	}
}

// AddPrimitives records primitives and adds them to the aggregate
func (s *Scene) AddPrimitives(primitives ...*geometry.Primitive) error {
	if s.Aggregate != nil {
		if err := s.Aggregate.AddPrimitives(primitives...); err != nil {
			return fmt.Errorf("add primitives: %w", err)
		}
	}
	s.Primitives = append(s.Primitives, primitives...)
	return nil
}

// AddShape wraps shape and material in a primitive and adds it
func (s *Scene) AddShape(shape geometry.Shape, mat material.Material) error {
	return s.AddPrimitives(geometry.NewPrimitive(shape, mat))
}

// AddTriangleList adds every triangle of list with the same material
func (s *Scene) AddTriangleList(list *geometry.TriangleList, mat material.Material) error {
	primitives := make([]*geometry.Primitive, 0, list.Len())
	for _, shape := range list.Shapes() {
		primitives = append(primitives, geometry.NewPrimitive(shape, mat))
	}
	return s.AddPrimitives(primitives...)
}

// AddLight adds a light to the scene
func (s *Scene) AddLight(light lights.Light) {
	s.Lights = append(s.Lights, light)
}

// Intersects finds the nearest hit closer than si.HitDistance.
// A scene without an aggregate is empty.
func (s *Scene) Intersects(ray core.Ray, si *material.SurfaceInteraction) bool {
	if s.Aggregate == nil {
		return false
	}
	return s.Aggregate.Intersects(ray, si)
}

// Preprocess builds the acceleration structure. Call it after the last
// primitive is added and before rendering.
func (s *Scene) Preprocess() error {
	if s.Aggregate == nil {
		return nil
	}
	if err := s.Aggregate.Update(); err != nil {
		return fmt.Errorf("preprocess scene: %w", err)
	}
	return nil
}

// GetPrimitiveCount returns the number of primitives in the scene
func (s *Scene) GetPrimitiveCount() int {
	return len(s.Primitives)
}
