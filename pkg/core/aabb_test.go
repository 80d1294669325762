package core

import (
	"math"
	"testing"
)

func TestAABB_Hit(t *testing.T) {
	box := NewAABB(NewVec3(-1, -1, -1), NewVec3(1, 1, 1))

	tests := []struct {
		name     string
		ray      Ray
		expected bool
	}{
		{"straight through", NewRay(NewVec3(0, 0, -5), NewVec3(0, 0, 1)), true},
		{"miss to the side", NewRay(NewVec3(3, 0, -5), NewVec3(0, 0, 1)), false},
		{"pointing away", NewRay(NewVec3(0, 0, -5), NewVec3(0, 0, -1)), false},
		{"origin inside", NewRay(NewVec3(0, 0, 0), NewVec3(1, 0, 0)), true},
		{"parallel inside slab", NewRay(NewVec3(0.5, 0.5, -5), NewVec3(0, 0, 1)), true},
		{"parallel outside slab", NewRay(NewVec3(0.5, 1.5, -5), NewVec3(0, 0, 1)), false},
		{"diagonal", NewRay(NewVec3(-5, -5, -5), NewVec3(1, 1, 1)), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := box.Hit(tt.ray, 0, math.Inf(1)); got != tt.expected {
				t.Errorf("Expected %t, got %t", tt.expected, got)
			}
		})
	}
}

func TestAABB_IntersectRange(t *testing.T) {
	box := NewAABB(NewVec3(-1, -1, -1), NewVec3(1, 1, 1))
	ray := NewRay(NewVec3(0, 0, -5), NewVec3(0, 0, 1))

	t0, t1, ok := box.Intersect(ray, 0, math.Inf(1))
	if !ok {
		t.Fatal("Expected intersection")
	}
	if math.Abs(t0-4) > 1e-12 || math.Abs(t1-6) > 1e-12 {
		t.Errorf("Expected [4, 6], got [%f, %f]", t0, t1)
	}

	// tMax before the box rejects it
	if box.Hit(ray, 0, 3.5) {
		t.Error("Expected no hit when tMax ends before the box")
	}
}

func TestAABB_FlatBox(t *testing.T) {
	// Triangles in a plane produce zero-thickness boxes
	flat := NewAABBFromPoints(NewVec3(0, 0, 0), NewVec3(1, 0, 0), NewVec3(0, 0, 1))
	ray := NewRay(NewVec3(0.2, 1, 0.2), NewVec3(0, -1, 0))
	if !flat.Hit(ray, 0, math.Inf(1)) {
		t.Error("Expected ray to hit flat box")
	}
}

func TestAABB_UnionAndAxis(t *testing.T) {
	a := NewAABB(NewVec3(0, 0, 0), NewVec3(1, 1, 1))
	b := NewAABB(NewVec3(-2, 0.5, 0), NewVec3(0, 3, 0.5))
	u := a.Union(b)
	if u.Min != NewVec3(-2, 0, 0) || u.Max != NewVec3(1, 3, 1) {
		t.Errorf("Unexpected union %v", u)
	}
	if axis := u.LongestAxis(); axis != 0 && axis != 1 {
		t.Errorf("Expected X or Y as longest axis, got %d", axis)
	}

	empty := EmptyAABB()
	if got := empty.Union(a); got != a {
		t.Errorf("Union with empty box should be identity, got %v", got)
	}
}
