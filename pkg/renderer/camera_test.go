package renderer

import (
	"errors"
	"math"
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

func vecNear(a, b core.Vec3, eps float64) bool {
	return math.Abs(a.X-b.X) < eps && math.Abs(a.Y-b.Y) < eps && math.Abs(a.Z-b.Z) < eps
}

func testCameraConfig() scene.CameraConfig {
	return scene.CameraConfig{
		Eye:    core.NewVec3(0, 0, -5),
		LookAt: core.NewVec3(0, 0, 0),
		Up:     core.NewVec3(0, 1, 0),
		VFov:   90,
	}
}

func TestPerspectiveCamera_CenterRay(t *testing.T) {
	// Odd size so the central pixel centre lies on the optical axis
	cam, err := NewPerspectiveCamera(testCameraConfig(), 101, 51)
	if err != nil {
		t.Fatalf("NewPerspectiveCamera: %v", err)
	}

	ray := cam.GenerateRay(50, 25)
	if !vecNear(ray.Origin, core.NewVec3(0, 0, -5), 1e-9) {
		t.Errorf("origin = %v, want eye", ray.Origin)
	}
	if !vecNear(ray.Direction, core.NewVec3(0, 0, 1), 1e-9) {
		t.Errorf("direction = %v, want (0,0,1)", ray.Direction)
	}
}

func TestPerspectiveCamera_Orientation(t *testing.T) {
	cam, err := NewPerspectiveCamera(testCameraConfig(), 100, 100)
	if err != nil {
		t.Fatalf("NewPerspectiveCamera: %v", err)
	}

	top := cam.GenerateRay(49.5, 0).Direction
	bottom := cam.GenerateRay(49.5, 99).Direction
	if top.Y <= 0 || bottom.Y >= 0 {
		t.Errorf("row 0 should look up and the last row down: top %v, bottom %v", top, bottom)
	}

	left := cam.GenerateRay(0, 49.5).Direction
	right := cam.GenerateRay(99, 49.5).Direction
	// Looking down +Z with +Y up, screen right is world -X
	if left.X <= 0 || right.X >= 0 {
		t.Errorf("left column %v should have +X and right column %v -X", left, right)
	}
}

func TestPerspectiveCamera_FieldOfView(t *testing.T) {
	cam, err := NewPerspectiveCamera(testCameraConfig(), 100, 100)
	if err != nil {
		t.Fatalf("NewPerspectiveCamera: %v", err)
	}

	// The top edge of the image is at 45° for a 90° vertical fov
	dir := cam.GenerateRay(49.5, -0.5).Direction
	angle := math.Acos(dir.Dot(core.NewVec3(0, 0, 1)))
	if math.Abs(angle-math.Pi/4) > 1e-9 {
		t.Errorf("top edge angle = %v, want π/4", angle)
	}
}

func TestPerspectiveCamera_UnitDirections(t *testing.T) {
	cam, err := NewPerspectiveCamera(testCameraConfig(), 16, 9)
	if err != nil {
		t.Fatalf("NewPerspectiveCamera: %v", err)
	}
	for y := 0; y < 9; y++ {
		for x := 0; x < 16; x++ {
			d := cam.GenerateRay(float64(x), float64(y)).Direction
			if math.Abs(d.Length()-1) > 1e-9 {
				t.Fatalf("pixel (%d,%d) direction length %v", x, y, d.Length())
			}
		}
	}
}

func TestNewPerspectiveCamera_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		modify func(c *scene.CameraConfig)
		width  int
		height int
	}{
		{"zero width", func(c *scene.CameraConfig) {}, 0, 10},
		{"negative height", func(c *scene.CameraConfig) {}, 10, -1},
		{"zero fov", func(c *scene.CameraConfig) { c.VFov = 0 }, 10, 10},
		{"straight fov", func(c *scene.CameraConfig) { c.VFov = 180 }, 10, 10},
		{"up parallel to view", func(c *scene.CameraConfig) { c.Up = core.NewVec3(0, 0, 1) }, 10, 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := testCameraConfig()
			tt.modify(&config)
			_, err := NewPerspectiveCamera(config, tt.width, tt.height)
			if !errors.Is(err, ErrInvalidCamera) {
				t.Errorf("err = %v, want ErrInvalidCamera", err)
			}
		})
	}
}

func TestFixedCamera(t *testing.T) {
	ray := core.NewRay(core.NewVec3(1, 2, 3), core.NewVec3(0, 0, 1))
	cam := FixedCamera{Ray: ray}
	for _, p := range [][2]float64{{0, 0}, {10.25, 3.75}, {-1, 100}} {
		if got := cam.GenerateRay(p[0], p[1]); got != ray {
			t.Errorf("GenerateRay(%v) = %v, want %v", p, got, ray)
		}
	}
}
