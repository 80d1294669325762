package loaders

import (
	"errors"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/material"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadRenderFile_Defaults(t *testing.T) {
	path := writeFile(t, t.TempDir(), "render.json", `{"scene": "matte", "width": 64}`)

	cfg, err := LoadRenderFile(path)
	if err != nil {
		t.Fatalf("LoadRenderFile failed: %v", err)
	}

	want := DefaultRenderFile()
	want.Scene = "matte"
	want.Width = 64
	if cfg.Scene != want.Scene || cfg.Width != want.Width || cfg.Height != want.Height ||
		cfg.Aggregate != want.Aggregate || cfg.MaxDepth != want.MaxDepth || cfg.Reflectance != want.Reflectance ||
		cfg.Supersample != want.Supersample || cfg.Camera != nil {
		t.Errorf("Expected %+v, got %+v", want, *cfg)
	}
}

func TestLoadRenderFile_Camera(t *testing.T) {
	path := writeFile(t, t.TempDir(), "render.json", `{
		"supersample": false,
		"camera": {"eye": {"x": 1, "y": 2, "z": 3}, "lookAt": {"x": 0, "y": 0, "z": 0}, "up": {"x": 0, "y": 1, "z": 0}, "vfov": 30}
	}`)

	cfg, err := LoadRenderFile(path)
	if err != nil {
		t.Fatalf("LoadRenderFile failed: %v", err)
	}
	if cfg.Supersample {
		t.Error("Expected supersampling to be disabled")
	}
	if cfg.Camera == nil || cfg.Camera.Eye != core.NewVec3(1, 2, 3) || cfg.Camera.VFov != 30 {
		t.Errorf("Unexpected camera %+v", cfg.Camera)
	}
}

func TestLoadRenderFile_Invalid(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name    string
		content string
		wantErr error
	}{
		{"zero height", `{"height": 0}`, ErrInvalidRenderFile},
		{"negative depth", `{"maxDepth": -1}`, ErrInvalidRenderFile},
		{"mesh without path", `{"meshes": [{"scale": 2}]}`, ErrInvalidRenderFile},
		{"negative mesh scale", `{"meshes": [{"path": "a.ply", "scale": -1}]}`, ErrInvalidRenderFile},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, dir, tt.name+".json", tt.content)
			if _, err := LoadRenderFile(path); !errors.Is(err, tt.wantErr) {
				t.Errorf("Expected %v, got %v", tt.wantErr, err)
			}
		})
	}

	if _, err := LoadRenderFile(writeFile(t, dir, "broken.json", `{"width": `)); err == nil {
		t.Error("Expected a decode error")
	}
	if _, err := LoadRenderFile(filepath.Join(dir, "missing.json")); err == nil {
		t.Error("Expected a read error")
	}
}

func TestRenderFile_SceneOptions(t *testing.T) {
	dir := t.TempDir()
	meshPath := writeFile(t, dir, "quad.ply", asciiQuad)

	texPath := filepath.Join(dir, "ground.png")
	img := image.NewRGBA(image.Rect(0, 0, 1, 1))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	if err := SavePNG(texPath, img); err != nil {
		t.Fatal(err)
	}

	cfg := DefaultRenderFile()
	cfg.GroundTexture = texPath
	cfg.Meshes = []MeshConfig{
		{Path: meshPath, Translate: core.NewVec3(0, 5, 0), Scale: 2, Albedo: core.NewVec3(0.5, 0.5, 0.5)},
		{Path: meshPath, Translate: core.NewVec3(0, 7, 0), Albedo: core.NewVec3(0.5, 0.5, 0.5), Roughness: 0.3},
	}

	options, err := cfg.SceneOptions()
	if err != nil {
		t.Fatalf("SceneOptions failed: %v", err)
	}
	if len(options) != 3 {
		t.Fatalf("Expected 3 options, got %d", len(options))
	}

	plain, err := scene.Build("triangles", geometry.NewLinearAggregate())
	if err != nil {
		t.Fatal(err)
	}
	sc, err := scene.Build("triangles", geometry.NewBVH(), options...)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if sc.GetPrimitiveCount() != plain.GetPrimitiveCount()+4 {
		t.Errorf("Expected 4 mesh triangles, got %d extra primitives", sc.GetPrimitiveCount()-plain.GetPrimitiveCount())
	}

	// The higher mesh is glossy and covers (0.5, 7, 0.5); the scaled one spans [0, 2] at y=5
	tests := []struct {
		origin core.Vec3
		y      float64
		glossy bool
	}{
		{core.NewVec3(0.5, 10, 0.4), 7, true},
		{core.NewVec3(1.6, 6, 1.9), 5, false},
	}
	for _, tt := range tests {
		si := material.NewSurfaceInteraction()
		if !sc.Intersects(core.NewRay(tt.origin, core.NewVec3(0, -1, 0)), &si) {
			t.Fatalf("Expected a mesh hit below %v", tt.origin)
		}
		if d := si.Position.Y - tt.y; d > 1e-9 || d < -1e-9 {
			t.Errorf("Expected hit at y=%v, got %v", tt.y, si.Position)
		}
		_, glossy := si.Material.(*material.Microfacet)
		if glossy != tt.glossy {
			t.Errorf("Below %v: expected glossy=%v, got %T", tt.origin, tt.glossy, si.Material)
		}
	}
}

func TestMeshConfig_MissingFile(t *testing.T) {
	mesh := MeshConfig{Path: filepath.Join(t.TempDir(), "none.ply")}
	if _, err := mesh.Primitives(); err == nil {
		t.Error("Expected an error for a missing mesh")
	}
}
