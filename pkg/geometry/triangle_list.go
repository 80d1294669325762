package geometry

import (
	"errors"
	"fmt"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

var (
	// ErrIndexCount is returned when the index buffer is not a whole number of triangles
	ErrIndexCount = errors.New("index count must be a multiple of 3")
	// ErrIndexOutOfRange is returned when an index does not name a vertex
	ErrIndexOutOfRange = errors.New("vertex index out of range")
	// ErrAttributeCount is returned when a per-vertex attribute has the wrong length
	ErrAttributeCount = errors.New("attribute count must match vertex count")
)

// TriangleListOptions contains optional per-vertex attributes
type TriangleListOptions struct {
	Normals  []core.Vec3 // Optional vertex normals
	Tangents []core.Vec3 // Optional vertex tangents, used as dpdu
	UVs      []core.Vec2 // Optional texture coordinates
}

// TriangleList owns the vertex data shared by a set of triangles.
// Positions, normals and tangents are stored in world space.
type TriangleList struct {
	objectToWorld core.Transform
	positions     []core.Vec3
	normals       []core.Vec3
	tangents      []core.Vec3
	uvs           []core.Vec2
	indices       []int
	triangles     []*Triangle
}

// NewTriangleList creates a triangle list from vertex positions and face indices
// positions: object-space vertices
// indices: each group of 3 indices forms a triangle
// options: optional attributes (can be nil)
func NewTriangleList(objectToWorld core.Transform, positions []core.Vec3, indices []int, options *TriangleListOptions) (*TriangleList, error) {
	if len(indices)%3 != 0 {
		return nil, fmt.Errorf("new triangle list: %w (got %d)", ErrIndexCount, len(indices))
	}
	for i, index := range indices {
		if index < 0 || index >= len(positions) {
			return nil, fmt.Errorf("new triangle list: %w: indices[%d] = %d with %d vertices", ErrIndexOutOfRange, i, index, len(positions))
		}
	}
	if options == nil {
		options = &TriangleListOptions{}
	}
	attributes := []struct {
		name  string
		count int
	}{
		{"normals", len(options.Normals)},
		{"tangents", len(options.Tangents)},
		{"uvs", len(options.UVs)},
	}
	for _, attr := range attributes {
		if attr.count != 0 && attr.count != len(positions) {
			return nil, fmt.Errorf("new triangle list: %w: %d %s for %d vertices", ErrAttributeCount, attr.count, attr.name, len(positions))
		}
	}

	list := &TriangleList{
		objectToWorld: objectToWorld,
		positions:     make([]core.Vec3, len(positions)),
		indices:       append([]int(nil), indices...),
	}
	for i, p := range positions {
		list.positions[i] = objectToWorld.ApplyPoint(p)
	}
	if len(options.Normals) > 0 {
		list.normals = make([]core.Vec3, len(options.Normals))
		for i, n := range options.Normals {
			list.normals[i] = objectToWorld.ApplyNormal(n).Normalize()
		}
	}
	if len(options.Tangents) > 0 {
		list.tangents = make([]core.Vec3, len(options.Tangents))
		for i, t := range options.Tangents {
			list.tangents[i] = objectToWorld.ApplyVector(t)
		}
	}
	if len(options.UVs) > 0 {
		list.uvs = append([]core.Vec2(nil), options.UVs...)
	}

	numTriangles := len(indices) / 3
	list.triangles = make([]*Triangle, numTriangles)
	for i := 0; i < numTriangles; i++ {
		list.triangles[i] = newTriangle(list, i*3)
	}
	return list, nil
}

// Triangles returns the triangles of the list, in index order
func (l *TriangleList) Triangles() []*Triangle {
	return l.triangles
}

// Shapes returns the triangles as shapes, ready to wrap in primitives
func (l *TriangleList) Shapes() []Shape {
	shapes := make([]Shape, len(l.triangles))
	for i, t := range l.triangles {
		shapes[i] = t
	}
	return shapes
}

// Len returns the number of triangles
func (l *TriangleList) Len() int {
	return len(l.triangles)
}

// VertexCount returns the number of vertices
func (l *TriangleList) VertexCount() int {
	return len(l.positions)
}

func (l *TriangleList) HasNormals() bool { return l.normals != nil }
func (l *TriangleList) HasUVs() bool     { return l.uvs != nil }
