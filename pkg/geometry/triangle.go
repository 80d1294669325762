package geometry

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

const triangleEpsilon = 1e-7

// Triangle is one face of a TriangleList
type Triangle struct {
	list   *TriangleList
	first  int // offset of the first vertex index
	bbox   core.AABB
	area   float64
	normal core.Vec3 // unit geometric normal, oriented by the vertex normals when present
}

func newTriangle(list *TriangleList, first int) *Triangle {
	t := &Triangle{list: list, first: first}
	p0, p1, p2 := t.Vertices()
	t.bbox = core.NewAABBFromPoints(p0, p1, p2)

	cross := r3.Cross(r3.Sub(toR3(p1), toR3(p0)), r3.Sub(toR3(p2), toR3(p0)))
	t.area = 0.5 * r3.Norm(cross)
	t.normal = fromR3(cross).Normalize()
	if list.normals != nil {
		i0, i1, i2 := t.indices()
		shading := list.normals[i0].Add(list.normals[i1]).Add(list.normals[i2])
		if t.normal.Dot(shading) < 0 {
			t.normal = t.normal.Negate()
		}
	}
	return t
}

func toR3(v core.Vec3) r3.Vec   { return r3.Vec{X: v.X, Y: v.Y, Z: v.Z} }
func fromR3(v r3.Vec) core.Vec3 { return core.NewVec3(v.X, v.Y, v.Z) }

func (t *Triangle) indices() (int, int, int) {
	idx := t.list.indices
	return idx[t.first], idx[t.first+1], idx[t.first+2]
}

// Vertices returns the world-space corner positions
func (t *Triangle) Vertices() (core.Vec3, core.Vec3, core.Vec3) {
	i0, i1, i2 := t.indices()
	pos := t.list.positions
	return pos[i0], pos[i1], pos[i2]
}

// Intersects uses the Möller-Trumbore algorithm
func (t *Triangle) Intersects(ray core.Ray, si *material.SurfaceInteraction) bool {
	p0, p1, p2 := t.Vertices()
	edge1 := p1.Subtract(p0)
	edge2 := p2.Subtract(p0)

	h := ray.Direction.Cross(edge2)
	det := edge1.Dot(h)
	// Ray parallel to the triangle plane
	if det > -triangleEpsilon && det < triangleEpsilon {
		return false
	}

	f := 1.0 / det
	s := ray.Origin.Subtract(p0)
	u := f * s.Dot(h)
	if u < 0.0 || u > 1.0 {
		return false
	}

	q := s.Cross(edge1)
	v := f * ray.Direction.Dot(q)
	if v < 0.0 || u+v > 1.0 {
		return false
	}

	dist := f * edge2.Dot(q)
	if dist <= triangleEpsilon {
		return false
	}

	i0, i1, i2 := t.indices()
	w := 1 - u - v

	texCoord := core.NewVec2(u, v)
	if t.list.uvs != nil {
		uvs := t.list.uvs
		texCoord = uvs[i0].Multiply(w).Add(uvs[i1].Multiply(u)).Add(uvs[i2].Multiply(v))
	}

	dpdu := edge1
	if t.list.tangents != nil {
		tan := t.list.tangents
		dpdu = tan[i0].Multiply(w).Add(tan[i1].Multiply(u)).Add(tan[i2].Multiply(v))
	}

	si.Position = ray.At(dist)
	si.Normal = t.normal
	si.TexCoord = texCoord
	si.Outgoing = ray.Direction.Negate().Normalize()
	si.Dpdu = dpdu
	si.Dpdv = edge2
	si.HitDistance = dist
	return true
}

func (t *Triangle) BoundingBox() core.AABB {
	return t.bbox
}

// Area returns ½|e1 × e2|
func (t *Triangle) Area() float64 {
	return t.area
}

func (t *Triangle) PDF(si *material.SurfaceInteraction) float64 {
	return uniformAreaPDF(t.area)
}

// SamplePoint picks a uniformly distributed point on the triangle
func (t *Triangle) SamplePoint(u core.Vec2) (core.Vec3, core.Vec3) {
	b0, b1 := core.SampleUniformTriangle(u)
	p0, p1, p2 := t.Vertices()
	p := p0.Multiply(b0).Add(p1.Multiply(b1)).Add(p2.Multiply(1 - b0 - b1))
	return p, t.normal
}

// ObjectToWorld returns the transform of the owning list. Vertex data is
// already in world space.
func (t *Triangle) ObjectToWorld() core.Transform {
	return t.list.objectToWorld
}

// Normal returns the unit geometric normal
func (t *Triangle) Normal() core.Vec3 {
	return t.normal
}
