package scene

import (
	"errors"
	"fmt"
	"sort"

	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// ErrUnknownScene is returned when no built-in scene has the requested ID
var ErrUnknownScene = errors.New("unknown scene")

// Options adjusts how a built-in scene is assembled
type Options struct {
	GroundTexture material.Texture      // replaces the procedural floor where a scene has one
	Primitives    []*geometry.Primitive // extra primitives added before preprocessing
}

// Option sets a field of Options
type Option func(*Options)

// WithGroundTexture textures the floor of scenes that have one
func WithGroundTexture(tex material.Texture) Option {
	return func(o *Options) {
		o.GroundTexture = tex
	}
}

// WithPrimitives adds primitives, such as loaded meshes, to the scene
func WithPrimitives(primitives ...*geometry.Primitive) Option {
	return func(o *Options) {
		o.Primitives = append(o.Primitives, primitives...)
	}
}

// Builder populates a new scene using the given aggregate
type Builder func(aggregate geometry.Aggregate, options Options) (*Scene, error)

// SceneInfo describes a built-in scene
type SceneInfo struct {
	ID          string `json:"id"`          // Unique identifier
	DisplayName string `json:"displayName"` // UI display name
	Description string `json:"description"` // Optional description
}

type builtinScene struct {
	info  SceneInfo
	build Builder
}

var builtinScenes = map[string]builtinScene{
	"default": {
		info: SceneInfo{ID: "default", DisplayName: "Random Spheres",
			Description: "150 glossy spheres under a shadowing directional light"},
		build: func(aggregate geometry.Aggregate, _ Options) (*Scene, error) {
			return NewDefaultScene(aggregate, DefaultSceneSeed, DefaultSphereCount)
		},
	},
	"matte": {
		info: SceneInfo{ID: "matte", DisplayName: "Matte Sphere",
			Description: "A white matte sphere lit from above"},
		build: func(aggregate geometry.Aggregate, _ Options) (*Scene, error) {
			return NewMatteSphereScene(aggregate)
		},
	},
	"triangles": {
		info: SceneInfo{ID: "triangles", DisplayName: "Triangles",
			Description: "Checkered triangle floor with point and area lights"},
		build: func(aggregate geometry.Aggregate, options Options) (*Scene, error) {
			return newTriangleScene(aggregate, options.GroundTexture)
		},
	},
}

// ListScenes returns the built-in scenes sorted by display name
func ListScenes() []SceneInfo {
	scenes := make([]SceneInfo, 0, len(builtinScenes))
	for _, s := range builtinScenes {
		scenes = append(scenes, s.info)
	}
	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].DisplayName < scenes[j].DisplayName
	})
	return scenes
}

// Build creates the built-in scene with the given ID and preprocesses it
func Build(id string, aggregate geometry.Aggregate, opts ...Option) (*Scene, error) {
	s, ok := builtinScenes[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownScene, id)
	}

	var options Options
	for _, opt := range opts {
		opt(&options)
	}

	scene, err := s.build(aggregate, options)
	if err != nil {
		return nil, fmt.Errorf("build scene %q: %w", id, err)
	}
	if err := scene.AddPrimitives(options.Primitives...); err != nil {
		return nil, fmt.Errorf("build scene %q: %w", id, err)
	}
	if err := scene.Preprocess(); err != nil {
		return nil, fmt.Errorf("build scene %q: %w", id, err)
	}
	return scene, nil
}
