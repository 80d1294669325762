package geometry

import (
	"errors"
	"fmt"
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// ErrInvalidRadius is returned for spheres with a non-positive radius
var ErrInvalidRadius = errors.New("sphere radius must be positive")

// Sphere is a sphere of the given radius centred at the origin of its object space
type Sphere struct {
	objectToWorld core.Transform
	worldToObject core.Transform
	radius        float64
	bbox          core.AABB
}

// NewSphere creates a sphere placed in the world by objectToWorld
func NewSphere(objectToWorld core.Transform, radius float64) (*Sphere, error) {
	if !(radius > 0) || math.IsInf(radius, 0) {
		return nil, fmt.Errorf("new sphere: %w (got %v)", ErrInvalidRadius, radius)
	}
	r := core.NewVec3(radius, radius, radius)
	return &Sphere{
		objectToWorld: objectToWorld,
		worldToObject: objectToWorld.Inverse(),
		radius:        radius,
		bbox:          objectToWorld.ApplyAABB(core.NewAABB(r.Negate(), r)),
	}, nil
}

// NewSphereAt creates a sphere by center and radius
func NewSphereAt(center core.Vec3, radius float64) (*Sphere, error) {
	return NewSphere(core.Translate(center), radius)
}

// Intersects solves |o + t·d|² = r² in object space
func (s *Sphere) Intersects(ray core.Ray, si *material.SurfaceInteraction) bool {
	local := s.worldToObject.ApplyRay(ray)
	o, d := local.Origin, local.Direction

	a := d.Dot(d)
	b := 2 * o.Dot(d)
	c := o.Dot(o) - s.radius*s.radius
	if a == 0 {
		return false
	}

	discriminant := b*b - 4*a*c
	if discriminant < 0 {
		return false
	}

	// Stable form avoids cancellation when b ≈ ±sqrt(discriminant)
	sqrtD := math.Sqrt(discriminant)
	q := -0.5 * (b + math.Copysign(sqrtD, b))
	var t0, t1 float64
	if q == 0 {
		t0, t1 = 0, 0
	} else {
		t0, t1 = q/a, c/q
	}
	if t0 > t1 {
		t0, t1 = t1, t0
	}

	if t1 < 0 {
		return false
	}
	t := t0
	if t < 0 {
		t = t1
	}

	pLocal := o.Add(d.Multiply(t))

	phi := math.Atan2(pLocal.Y, pLocal.X)
	if phi < 0 {
		phi += 2 * math.Pi
	}
	cosTheta := math.Max(-1, math.Min(1, pLocal.Z/s.radius))
	theta := math.Acos(cosTheta)
	sinTheta := math.Sin(theta)

	dpdu := core.NewVec3(-2*math.Pi*pLocal.Y, 2*math.Pi*pLocal.X, 0)
	dpdv := core.NewVec3(pLocal.Z*math.Cos(phi), pLocal.Z*math.Sin(phi), -s.radius*sinTheta).Multiply(math.Pi)

	si.Position = s.objectToWorld.ApplyPoint(pLocal)
	si.Normal = s.objectToWorld.ApplyNormal(pLocal).Normalize()
	si.TexCoord = core.NewVec2(phi/(2*math.Pi), theta/math.Pi)
	si.Outgoing = ray.Direction.Negate().Normalize()
	si.Dpdu = s.objectToWorld.ApplyVector(dpdu)
	si.Dpdv = s.objectToWorld.ApplyVector(dpdv)
	si.HitDistance = t
	return true
}

// BoundingBox returns the world-space bounds
func (s *Sphere) BoundingBox() core.AABB {
	return s.bbox
}

// Area assumes the transform scales uniformly
func (s *Sphere) Area() float64 {
	r := s.radius * s.objectToWorld.ApplyVector(core.NewVec3(1, 0, 0)).Length()
	return 4 * math.Pi * r * r
}

func (s *Sphere) PDF(si *material.SurfaceInteraction) float64 {
	return uniformAreaPDF(s.Area())
}

// SamplePoint picks a uniformly distributed point on the surface
func (s *Sphere) SamplePoint(u core.Vec2) (core.Vec3, core.Vec3) {
	pLocal := core.SampleOnUnitSphere(u).Multiply(s.radius)
	return s.objectToWorld.ApplyPoint(pLocal), s.objectToWorld.ApplyNormal(pLocal).Normalize()
}

func (s *Sphere) ObjectToWorld() core.Transform {
	return s.objectToWorld
}

// Radius returns the object-space radius
func (s *Sphere) Radius() float64 {
	return s.radius
}
