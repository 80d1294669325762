package geometry

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// Shape is a surface that rays can hit. Shapes are immutable after construction.
type Shape interface {
	// Intersects reports whether ray hits the surface at a non-negative
	// distance. On success every field of si except Material is written;
	// on a miss si is left untouched.
	Intersects(ray core.Ray, si *material.SurfaceInteraction) bool
	BoundingBox() core.AABB
	Area() float64
	// PDF is the density of SamplePoint with respect to surface area
	PDF(si *material.SurfaceInteraction) float64
	// SamplePoint maps a unit-square sample to a point on the surface and its normal
	SamplePoint(u core.Vec2) (core.Vec3, core.Vec3)
	ObjectToWorld() core.Transform
}

// uniformAreaPDF is the PDF shared by shapes that sample uniformly by area
func uniformAreaPDF(area float64) float64 {
	if area <= 0 {
		return 0
	}
	return 1 / area
}
