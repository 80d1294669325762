package scene

import (
	"errors"
	"math"
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

func TestScene_IntersectsWithoutAggregate(t *testing.T) {
	s := NewScene(nil)
	si := material.NewSurfaceInteraction()
	if s.Intersects(core.NewRay(core.Vec3{}, core.NewVec3(0, 0, 1)), &si) {
		t.Error("Scene without aggregate should never report a hit")
	}
	if err := s.Preprocess(); err != nil {
		t.Errorf("Preprocess without aggregate should succeed, got %v", err)
	}
}

func TestScene_AddPrimitivesRejectsNil(t *testing.T) {
	s := NewScene(geometry.NewLinearAggregate())
	if err := s.AddPrimitives(nil); !errors.Is(err, geometry.ErrNilPrimitive) {
		t.Errorf("Expected ErrNilPrimitive, got %v", err)
	}
	if s.GetPrimitiveCount() != 0 {
		t.Errorf("Rejected primitives should not be recorded, got %d", s.GetPrimitiveCount())
	}
}

func TestNewAggregate(t *testing.T) {
	tests := []struct {
		name    string
		wantErr bool
	}{
		{"linear", false},
		{"bvh", false},
		{"rtree", false},
		{"", false},
		{"octree", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			agg, err := NewAggregate(tt.name)
			if tt.wantErr {
				if !errors.Is(err, ErrUnknownAggregate) {
					t.Errorf("Expected ErrUnknownAggregate, got %v", err)
				}
				return
			}
			if err != nil || agg == nil {
				t.Errorf("Expected aggregate, got %v (err %v)", agg, err)
			}
		})
	}
}

func TestBuild_AllScenes(t *testing.T) {
	for _, info := range ListScenes() {
		for _, aggName := range []string{"linear", "bvh", "rtree"} {
			t.Run(info.ID+"/"+aggName, func(t *testing.T) {
				agg, err := NewAggregate(aggName)
				if err != nil {
					t.Fatalf("Unexpected error: %v", err)
				}
				s, err := Build(info.ID, agg)
				if err != nil {
					t.Fatalf("Build failed: %v", err)
				}
				if s.GetPrimitiveCount() == 0 {
					t.Error("Expected primitives in scene")
				}
				if len(s.Lights) == 0 {
					t.Error("Expected lights in scene")
				}

				// The camera looks at something
				eye := s.CameraConfig.Eye
				ray := core.NewRay(eye, s.CameraConfig.LookAt.Subtract(eye).Normalize())
				si := material.NewSurfaceInteraction()
				if !s.Intersects(ray, &si) && info.ID != "default" {
					t.Error("Expected the view ray to hit the scene")
				}
			})
		}
	}
}

func TestBuild_UnknownScene(t *testing.T) {
	if _, err := Build("missing", geometry.NewBVH()); !errors.Is(err, ErrUnknownScene) {
		t.Errorf("Expected ErrUnknownScene, got %v", err)
	}
}

func TestListScenes_Sorted(t *testing.T) {
	scenes := ListScenes()
	if len(scenes) != len(builtinScenes) {
		t.Fatalf("Expected %d scenes, got %d", len(builtinScenes), len(scenes))
	}
	for i := 1; i < len(scenes); i++ {
		if scenes[i-1].DisplayName > scenes[i].DisplayName {
			t.Errorf("Scenes not sorted: %q before %q", scenes[i-1].DisplayName, scenes[i].DisplayName)
		}
	}
}

func TestNewDefaultScene_Deterministic(t *testing.T) {
	a, err := NewDefaultScene(geometry.NewLinearAggregate(), 7, 20)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	b, err := NewDefaultScene(geometry.NewLinearAggregate(), 7, 20)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if a.GetPrimitiveCount() != 20 {
		t.Fatalf("Expected 20 spheres, got %d", a.GetPrimitiveCount())
	}
	for i := range a.Primitives {
		boxA := a.Primitives[i].BoundingBox()
		boxB := b.Primitives[i].BoundingBox()
		if boxA != boxB {
			t.Fatalf("Sphere %d differs between runs with the same seed", i)
		}
		center := boxA.Center()
		if math.Abs(center.X) > 10 || math.Abs(center.Y) > 10 || math.Abs(center.Z) > 15 {
			t.Errorf("Sphere %d centered outside the placement box: %v", i, center)
		}
	}
	if !a.Lights[0].Shadowing() {
		t.Error("Expected the default light to cast shadows")
	}
}

func TestNewGroundQuad_FacesUp(t *testing.T) {
	ground, err := NewGroundQuad(core.NewVec3(0, -1, 0), 4)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if ground.Len() != 2 {
		t.Fatalf("Expected 2 triangles, got %d", ground.Len())
	}
	for i, tri := range ground.Triangles() {
		if tri.Normal().Subtract(core.NewVec3(0, 1, 0)).Length() > 1e-12 {
			t.Errorf("Triangle %d normal %v does not face up", i, tri.Normal())
		}
	}

	// Every point of the square is covered
	for _, p := range []core.Vec3{core.NewVec3(-1.9, 0, -1.9), core.NewVec3(1.9, 0, 1.9), core.NewVec3(1.5, 0, -1.5), core.NewVec3(-1.5, 0, 1.5)} {
		ray := core.NewRay(p, core.NewVec3(0, -1, 0))
		hit := false
		for _, tri := range ground.Triangles() {
			si := material.NewSurfaceInteraction()
			if tri.Intersects(ray, &si) {
				hit = true
				if math.Abs(si.HitDistance-1) > 1e-9 {
					t.Errorf("Expected t=1 at %v, got %f", p, si.HitDistance)
				}
			}
		}
		if !hit {
			t.Errorf("Ground quad has a hole at %v", p)
		}
	}
}

func TestBuild_Options(t *testing.T) {
	extra, err := geometry.NewSphereAt(core.NewVec3(0, 3, 15), 1)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	red := core.NewVec3(1, 0, 0)

	s, err := Build("triangles", geometry.NewBVH(),
		WithGroundTexture(material.NewConstantTexture(red)),
		WithPrimitives(geometry.NewPrimitive(extra, material.NewMatte(red))))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	plain, err := Build("triangles", geometry.NewBVH())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if s.GetPrimitiveCount() != plain.GetPrimitiveCount()+1 {
		t.Errorf("Expected one extra primitive, got %d vs %d", s.GetPrimitiveCount(), plain.GetPrimitiveCount())
	}

	// The added sphere is indexed by the aggregate
	si := material.NewSurfaceInteraction()
	if !s.Intersects(core.NewRay(core.NewVec3(0, 3, 25), core.NewVec3(0, 0, -1)), &si) {
		t.Fatal("Expected the extra sphere to be hit")
	}

	// The floor uses the supplied texture
	floor := material.NewSurfaceInteraction()
	if !s.Intersects(core.NewRay(core.NewVec3(-6, 5, -3), core.NewVec3(0, -1, 0)), &floor) {
		t.Fatal("Expected the floor to be hit")
	}
	matte, ok := floor.Material.(*material.Matte)
	if !ok {
		t.Fatalf("Expected a matte floor, got %T", floor.Material)
	}
	if got := matte.DistributionFAt(&floor, core.NewVec3(0, 0, 1), core.NewVec3(0, 0, 1)); math.Abs(got.X-1/math.Pi) > 1e-12 || got.Y != 0 || got.Z != 0 {
		t.Errorf("Expected the red ground texture, got f = %v", got)
	}
}
