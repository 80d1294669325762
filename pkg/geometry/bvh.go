package geometry

import (
	"sort"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// Leaf threshold: if we have this many or fewer primitives, store them in a leaf node
const leafThreshold = 4

// BVHNode is a node of the bounding volume hierarchy. Leaves reference a
// range of the ordered primitive array; internal nodes have two children.
type BVHNode struct {
	Bounds      core.AABB
	Left, Right *BVHNode
	SplitAxis   int
	Offset      int // first primitive of a leaf
	Count       int // number of primitives in a leaf, 0 for internal nodes
}

// BVH is a bounding volume hierarchy over primitives.
// Primitives added after the last Update are still found, by a linear scan,
// until Update is called again.
type BVH struct {
	primitives []*Primitive // in insertion order
	ordered    []*Primitive // leaf order, valid when !dirty
	root       *BVHNode
	dirty      bool
}

// NewBVH creates an empty hierarchy
func NewBVH() *BVH {
	return &BVH{}
}

func (bvh *BVH) AddPrimitives(primitives ...*Primitive) error {
	if err := validatePrimitives(primitives); err != nil {
		return err
	}
	if len(primitives) == 0 {
		return nil
	}
	bvh.primitives = append(bvh.primitives, primitives...)
	bvh.dirty = true
	return nil
}

// Update rebuilds the hierarchy with median splits along the longest centroid axis
func (bvh *BVH) Update() error {
	bvh.ordered = make([]*Primitive, len(bvh.primitives))
	copy(bvh.ordered, bvh.primitives)

	bvh.root = nil
	if len(bvh.ordered) > 0 {
		bvh.root = bvh.build(0, len(bvh.ordered))
	}
	bvh.dirty = false
	return nil
}

func (bvh *BVH) build(start, end int) *BVHNode {
	prims := bvh.ordered[start:end]

	bounds := core.EmptyAABB()
	centroids := core.EmptyAABB()
	for _, p := range prims {
		box := p.BoundingBox()
		bounds = bounds.Union(box)
		center := box.Center()
		centroids = centroids.Union(core.NewAABB(center, center))
	}

	leaf := &BVHNode{Bounds: bounds, Offset: start, Count: len(prims)}
	if len(prims) <= leafThreshold {
		return leaf
	}

	axis := centroids.LongestAxis()
	// All centroids coincide: no split separates them
	if centroids.Max.Axis(axis) <= centroids.Min.Axis(axis) {
		return leaf
	}

	sort.Slice(prims, func(i, j int) bool {
		return prims[i].BoundingBox().Center().Axis(axis) < prims[j].BoundingBox().Center().Axis(axis)
	})
	mid := start + len(prims)/2

	return &BVHNode{
		Bounds:    bounds,
		SplitAxis: axis,
		Left:      bvh.build(start, mid),
		Right:     bvh.build(mid, end),
	}
}

// Intersects traverses nearest child first and skips nodes beyond the closest hit so far
func (bvh *BVH) Intersects(ray core.Ray, si *material.SurfaceInteraction) bool {
	if bvh.dirty {
		return intersectAll(bvh.primitives, ray, si)
	}
	if bvh.root == nil {
		return false
	}

	dirNegative := [3]bool{ray.Direction.X < 0, ray.Direction.Y < 0, ray.Direction.Z < 0}
	hitAnything := false

	var stack [64]*BVHNode
	stack[0] = bvh.root
	top := 1
	for top > 0 {
		top--
		node := stack[top]
		if !node.Bounds.Hit(ray, 0, si.HitDistance) {
			continue
		}

		if node.Count > 0 {
			for _, p := range bvh.ordered[node.Offset : node.Offset+node.Count] {
				if closerHit(p, ray, si) {
					hitAnything = true
				}
			}
			continue
		}

		// Push the far child first so the near one is popped next
		if dirNegative[node.SplitAxis] {
			stack[top], stack[top+1] = node.Left, node.Right
		} else {
			stack[top], stack[top+1] = node.Right, node.Left
		}
		top += 2
	}
	return hitAnything
}

// Bounds returns the bounds of all primitives as of the last Update
func (bvh *BVH) Bounds() core.AABB {
	if bvh.root == nil {
		return core.EmptyAABB()
	}
	return bvh.root.Bounds
}

// Len returns the number of primitives
func (bvh *BVH) Len() int {
	return len(bvh.primitives)
}

// bvhStats contains statistics about the BVH structure
type bvhStats struct {
	totalNodes      int
	leafNodes       int
	maxDepth        int
	totalPrimitives int
	maxLeafSize     int
}

// getStats returns statistics about the BVH structure
func (bvh *BVH) getStats() bvhStats {
	stats := bvhStats{}
	if bvh.root != nil {
		bvh.collectStats(bvh.root, 0, &stats)
	}
	return stats
}

// collectStats recursively collects statistics about the BVH
func (bvh *BVH) collectStats(node *BVHNode, depth int, stats *bvhStats) {
	stats.totalNodes++
	stats.maxDepth = max(stats.maxDepth, depth)

	if node.Count > 0 {
		stats.leafNodes++
		stats.totalPrimitives += node.Count
		stats.maxLeafSize = max(stats.maxLeafSize, node.Count)
		return
	}
	bvh.collectStats(node.Left, depth+1, stats)
	bvh.collectStats(node.Right, depth+1, stats)
}
