package geometry

import (
	"errors"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// ErrNilPrimitive is returned when a nil primitive is added to an aggregate
var ErrNilPrimitive = errors.New("nil primitive")

// Aggregate answers nearest-hit queries over a set of primitives.
//
// Intersects returns true iff some primitive is hit strictly closer than
// si.HitDistance on entry, leaving the nearest such hit in si. Presetting
// HitDistance bounds the query.
type Aggregate interface {
	Intersects(ray core.Ray, si *material.SurfaceInteraction) bool
	AddPrimitives(primitives ...*Primitive) error
	// Update rebuilds acceleration data after primitives were added
	Update() error
}

func validatePrimitives(primitives []*Primitive) error {
	for _, p := range primitives {
		if p == nil || p.Shape == nil {
			return ErrNilPrimitive
		}
	}
	return nil
}

// LinearAggregate tests every primitive for every ray
type LinearAggregate struct {
	primitives []*Primitive
}

// NewLinearAggregate creates an empty linear aggregate
func NewLinearAggregate() *LinearAggregate {
	return &LinearAggregate{}
}

func (a *LinearAggregate) Intersects(ray core.Ray, si *material.SurfaceInteraction) bool {
	return intersectAll(a.primitives, ray, si)
}

func (a *LinearAggregate) AddPrimitives(primitives ...*Primitive) error {
	if err := validatePrimitives(primitives); err != nil {
		return err
	}
	a.primitives = append(a.primitives, primitives...)
	return nil
}

// Update is a no-op; the linear scan is always current
func (a *LinearAggregate) Update() error {
	return nil
}

// Len returns the number of primitives
func (a *LinearAggregate) Len() int {
	return len(a.primitives)
}

func intersectAll(primitives []*Primitive, ray core.Ray, si *material.SurfaceInteraction) bool {
	hitAnything := false
	for _, p := range primitives {
		if closerHit(p, ray, si) {
			hitAnything = true
		}
	}
	return hitAnything
}
