package integrator

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// Integrator defines the interface for light transport algorithms
type Integrator interface {
	// Li returns the radiance arriving along ray. depth counts the bounces
	// taken so far; camera rays start at 1.
	Li(ray core.Ray, scene *scene.Scene, depth int) core.Vec3
}
