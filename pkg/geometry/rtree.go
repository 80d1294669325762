package geometry

import (
	"fmt"
	"math"

	"github.com/dhconnelly/rtreego"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

const (
	rtreeMinChildren = 4
	rtreeMaxChildren = 16
	// Rect sides must be strictly positive
	rtreeEpsilon = 1e-6
)

// rtreeEntry adapts a primitive to rtreego.Spatial
type rtreeEntry struct {
	primitive *Primitive
	box       core.AABB
	rect      rtreego.Rect
}

func (e *rtreeEntry) Bounds() rtreego.Rect {
	return e.rect
}

func aabbToRect(box core.AABB) (rtreego.Rect, error) {
	size := box.Size()
	return rtreego.NewRect(
		rtreego.Point{box.Min.X, box.Min.Y, box.Min.Z},
		[]float64{math.Max(size.X, rtreeEpsilon), math.Max(size.Y, rtreeEpsilon), math.Max(size.Z, rtreeEpsilon)},
	)
}

// RTree indexes primitives in an R-tree. A query searches the box around
// the part of the ray inside the scene, then tests candidates with a ray/box
// test before intersecting them.
type RTree struct {
	primitives []*Primitive
	tree       *rtreego.Rtree
	bounds     core.AABB
	dirty      bool
}

// NewRTree creates an empty R-tree aggregate
func NewRTree() *RTree {
	return &RTree{bounds: core.EmptyAABB()}
}

func (rt *RTree) AddPrimitives(primitives ...*Primitive) error {
	if err := validatePrimitives(primitives); err != nil {
		return err
	}
	if len(primitives) == 0 {
		return nil
	}
	rt.primitives = append(rt.primitives, primitives...)
	rt.dirty = true
	return nil
}

// Update rebuilds the tree from every primitive added so far
func (rt *RTree) Update() error {
	tree := rtreego.NewTree(3, rtreeMinChildren, rtreeMaxChildren)
	bounds := core.EmptyAABB()
	for i, p := range rt.primitives {
		box := p.BoundingBox()
		rect, err := aabbToRect(box)
		if err != nil {
			return fmt.Errorf("rtree update: primitive %d: %w", i, err)
		}
		tree.Insert(&rtreeEntry{primitive: p, box: box, rect: rect})
		bounds = bounds.Union(box)
	}
	rt.tree = tree
	rt.bounds = bounds
	rt.dirty = false
	return nil
}

func (rt *RTree) Intersects(ray core.Ray, si *material.SurfaceInteraction) bool {
	if rt.dirty {
		return intersectAll(rt.primitives, ray, si)
	}
	if rt.tree == nil || rt.tree.Size() == 0 {
		return false
	}

	tEnter, tExit, ok := rt.bounds.Intersect(ray, 0, si.HitDistance)
	if !ok {
		return false
	}
	if math.IsInf(tExit, 1) {
		// Degenerate direction, the segment box is unbounded
		return intersectAll(rt.primitives, ray, si)
	}
	query, err := aabbToRect(core.NewAABBFromPoints(ray.At(tEnter), ray.At(tExit)).Expand(rtreeEpsilon))
	if err != nil {
		return false
	}

	hitAnything := false
	// Candidates are intersected inside the filter and always refused, so
	// the search returns nothing and builds no result slice.
	rt.tree.SearchIntersect(query, func(results []rtreego.Spatial, object rtreego.Spatial) (bool, bool) {
		entry := object.(*rtreeEntry)
		if entry.box.Hit(ray, 0, si.HitDistance) && closerHit(entry.primitive, ray, si) {
			hitAnything = true
		}
		return true, false
	})
	return hitAnything
}

// Bounds returns the bounds of all primitives as of the last Update
func (rt *RTree) Bounds() core.AABB {
	return rt.bounds
}

// Len returns the number of primitives
func (rt *RTree) Len() int {
	return len(rt.primitives)
}
