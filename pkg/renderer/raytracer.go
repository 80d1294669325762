package renderer

import (
	"errors"
	"sync"
	"time"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/integrator"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

var (
	ErrNoScene        = errors.New("raytracer has no scene")
	ErrNoCamera       = errors.New("raytracer has no camera")
	ErrNoRenderTarget = errors.New("raytracer has no render target")
)

// supersampleOffsets are the four sub-pixel taps used when supersampling
var supersampleOffsets = [4][2]float64{
	{-0.25, -0.25},
	{0.25, -0.25},
	{-0.25, 0.25},
	{0.25, 0.25},
}

// RenderConfig contains rendering configuration
type RenderConfig struct {
	Supersample bool       // average four taps per pixel instead of one
	ToneMapper  ToneMapper // nil leaves radiance unchanged
	NumWorkers  int        // 0 picks from the CPU count
	TileSize    int        // edge length of a tile in pixels
}

// DefaultRenderConfig returns sensible default values
func DefaultRenderConfig() RenderConfig {
	return RenderConfig{
		Supersample: true,
		ToneMapper:  IdentityToneMapper{},
		NumWorkers:  0,
		TileSize:    DefaultTileSize,
	}
}

// Raytracer renders a scene through a camera into a render target using a
// pool of tile workers
type Raytracer struct {
	scene      *scene.Scene
	camera     Camera
	target     RenderTarget
	integrator integrator.Integrator
	config     RenderConfig
	logger     core.Logger
}

// NewRaytracer creates a raytracer. A nil integrator selects Whitted with
// default settings; a nil logger discards output.
func NewRaytracer(sc *scene.Scene, camera Camera, target RenderTarget, integ integrator.Integrator, config RenderConfig, logger core.Logger) *Raytracer {
	if integ == nil {
		integ = integrator.NewWhittedIntegrator(integrator.DefaultConfig())
	}
	if config.ToneMapper == nil {
		config.ToneMapper = IdentityToneMapper{}
	}
	if logger == nil {
		logger = nopLogger{}
	}
	return &Raytracer{
		scene:      sc,
		camera:     camera,
		target:     target,
		integrator: integ,
		config:     config,
		logger:     logger,
	}
}

// Render shades every pixel of the target exactly once and blocks until done
func (rt *Raytracer) Render() (RenderStats, error) {
	if rt.scene == nil {
		return RenderStats{}, ErrNoScene
	}
	if rt.camera == nil {
		return RenderStats{}, ErrNoCamera
	}
	if rt.target == nil {
		return RenderStats{}, ErrNoRenderTarget
	}

	start := time.Now()
	width, height := rt.target.Width(), rt.target.Height()
	tiles := NewTileGrid(width, height, rt.config.TileSize)
	pool := SharedWorkerPool(rt.config.NumWorkers)

	rt.logger.Printf("Rendering %dx%d: %d primitives, %d lights, %d tiles on %d workers\n",
		width, height, rt.scene.GetPrimitiveCount(), len(rt.scene.Lights), len(tiles), pool.GetNumWorkers())

	var mu sync.Mutex
	stats := RenderStats{Workers: pool.GetNumWorkers()}
	tasks := make([]func(), len(tiles))
	for i, tile := range tiles {
		tasks[i] = func() {
			tileStats := rt.renderTile(tile)
			mu.Lock()
			stats.Add(tileStats)
			mu.Unlock()
		}
	}
	pool.Run(tasks)

	stats.Duration = time.Since(start)
	rt.logger.Printf("Render complete: %d pixels, %d samples in %v (%.0f samples/s)\n",
		stats.Pixels, stats.Samples, stats.Duration, stats.SamplesPerSecond())
	return stats, nil
}

// RenderPixel computes the display color of pixel (x, y), stores it in the
// target and returns it
func (rt *Raytracer) RenderPixel(x, y int) core.Vec3 {
	px, py := float64(x), float64(y)

	var radiance core.Vec3
	if rt.config.Supersample {
		for _, offset := range supersampleOffsets {
			radiance = radiance.Add(rt.sample(px+offset[0], py+offset[1]))
		}
		radiance = radiance.Multiply(1.0 / float64(len(supersampleOffsets)))
	} else {
		radiance = rt.sample(px, py)
	}

	c := rt.config.ToneMapper.Map(radiance).Clamp(0, 1)
	rt.target.StoreColor(x, y, c)
	return c
}

// sample traces one camera ray through raster position (px, py)
func (rt *Raytracer) sample(px, py float64) core.Vec3 {
	ray := rt.camera.GenerateRay(px, py)
	c := rt.integrator.Li(ray, rt.scene, 1)
	if !c.IsFinite() {
		return core.Vec3{}
	}
	return c
}

func (rt *Raytracer) samplesPerPixel() int {
	if rt.config.Supersample {
		return len(supersampleOffsets)
	}
	return 1
}

type nopLogger struct{}

func (nopLogger) Printf(format string, args ...interface{}) {}
