package geometry

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// Bounds are padded so flat shapes still have volume in the acceleration structures
const boundsPadding = 1e-6

// Primitive binds a shape to the material it is shaded with
type Primitive struct {
	Shape    Shape
	Material material.Material
}

// NewPrimitive creates a new primitive
func NewPrimitive(shape Shape, mat material.Material) *Primitive {
	return &Primitive{Shape: shape, Material: mat}
}

// Intersects tests the shape and, on a hit, stamps the material on si
func (p *Primitive) Intersects(ray core.Ray, si *material.SurfaceInteraction) bool {
	if !p.Shape.Intersects(ray, si) {
		return false
	}
	si.Material = p.Material
	return true
}

// BoundingBox returns the shape bounds, slightly padded
func (p *Primitive) BoundingBox() core.AABB {
	return p.Shape.BoundingBox().Expand(boundsPadding)
}

// closerHit tests p and copies the hit into si only when it is nearer than
// si.HitDistance
func closerHit(p *Primitive, ray core.Ray, si *material.SurfaceInteraction) bool {
	candidate := material.NewSurfaceInteraction()
	if !p.Intersects(ray, &candidate) || !(candidate.HitDistance < si.HitDistance) {
		return false
	}
	*si = candidate
	return true
}
