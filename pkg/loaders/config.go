package loaders

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/material"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// ErrInvalidRenderFile is returned when a render file has unusable values
var ErrInvalidRenderFile = errors.New("invalid render file")

// MeshConfig places a PLY mesh in the scene
type MeshConfig struct {
	Path      string    `json:"path"`
	Translate core.Vec3 `json:"translate"`
	Scale     float64   `json:"scale,omitempty"` // uniform, defaults 1
	Albedo    core.Vec3 `json:"albedo"`
	Roughness float64   `json:"roughness,omitempty"` // 0 is matte, otherwise microfacet
}

// RenderFile is the JSON description of a render job
type RenderFile struct {
	Width         int                 `json:"width"`
	Height        int                 `json:"height"`
	Scene         string              `json:"scene"`
	Aggregate     string              `json:"aggregate"`
	Output        string              `json:"output"`
	Supersample   bool                `json:"supersample"`
	ToneMapper    string              `json:"toneMapper,omitempty"`
	Workers       int                 `json:"workers,omitempty"`
	MaxDepth      int                 `json:"maxDepth"`
	Reflectance   float64             `json:"reflectance"`
	Camera        *scene.CameraConfig `json:"camera,omitempty"` // overrides the scene's view
	GroundTexture string              `json:"groundTexture,omitempty"`
	Meshes        []MeshConfig        `json:"meshes,omitempty"`
}

// DefaultRenderFile returns the settings used when no file is given
func DefaultRenderFile() RenderFile {
	return RenderFile{
		Width:       400,
		Height:      225,
		Scene:       "default",
		Aggregate:   "bvh",
		Output:      "output/render.png",
		Supersample: true,
		ToneMapper:  "none",
		MaxDepth:    2,
		Reflectance: 0.3,
	}
}

// LoadRenderFile reads a render file. Fields missing from the JSON keep
// their DefaultRenderFile values.
func LoadRenderFile(path string) (*RenderFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read render file: %w", err)
	}

	cfg := DefaultRenderFile()
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("decode render file %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the values that cannot be defaulted
func (f *RenderFile) Validate() error {
	if f.Width <= 0 || f.Height <= 0 {
		return fmt.Errorf("%w: image size %dx%d", ErrInvalidRenderFile, f.Width, f.Height)
	}
	if f.MaxDepth < 0 {
		return fmt.Errorf("%w: maxDepth %d", ErrInvalidRenderFile, f.MaxDepth)
	}
	for i, mesh := range f.Meshes {
		if mesh.Path == "" {
			return fmt.Errorf("%w: mesh %d has no path", ErrInvalidRenderFile, i)
		}
		if mesh.Scale < 0 {
			return fmt.Errorf("%w: mesh %d scale %v", ErrInvalidRenderFile, i, mesh.Scale)
		}
	}
	return nil
}

// SceneOptions loads the textures and meshes the file refers to
func (f *RenderFile) SceneOptions() ([]scene.Option, error) {
	var options []scene.Option
	if f.GroundTexture != "" {
		tex, err := LoadImageTexture(f.GroundTexture)
		if err != nil {
			return nil, err
		}
		options = append(options, scene.WithGroundTexture(tex))
	}

	for _, mesh := range f.Meshes {
		primitives, err := mesh.Primitives()
		if err != nil {
			return nil, err
		}
		options = append(options, scene.WithPrimitives(primitives...))
	}
	return options, nil
}

// Primitives loads the mesh and wraps each triangle with its material
func (m MeshConfig) Primitives() ([]*geometry.Primitive, error) {
	data, err := LoadPLY(m.Path)
	if err != nil {
		return nil, err
	}

	scale := m.Scale
	if scale == 0 {
		scale = 1
	}
	scaling, err := core.Scale(core.NewVec3(scale, scale, scale))
	if err != nil {
		return nil, fmt.Errorf("mesh %s: %w", m.Path, err)
	}

	list, err := data.TriangleList(core.Translate(m.Translate).Compose(scaling))
	if err != nil {
		return nil, fmt.Errorf("mesh %s: %w", m.Path, err)
	}

	var mat material.Material = material.NewMatte(m.Albedo)
	if m.Roughness > 0 {
		mat = material.NewMicrofacet(m.Albedo, m.Roughness)
	}

	primitives := make([]*geometry.Primitive, 0, list.Len())
	for _, shape := range list.Shapes() {
		primitives = append(primitives, geometry.NewPrimitive(shape, mat))
	}
	return primitives, nil
}
