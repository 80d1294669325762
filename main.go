package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/integrator"
	"github.com/df07/go-whitted-raytracer/pkg/loaders"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// parseConfig builds the render settings from the command line. A -config
// file is loaded first and explicitly set flags override it.
func parseConfig(args []string, output io.Writer) (*loaders.RenderFile, bool, error) {
	defaults := loaders.DefaultRenderFile()

	fs := flag.NewFlagSet("raytracer", flag.ContinueOnError)
	fs.SetOutput(output)
	configPath := fs.String("config", "", "JSON render file")
	sceneID := fs.String("scene", defaults.Scene, "Built-in scene ID (see -list)")
	aggregate := fs.String("aggregate", defaults.Aggregate, "Aggregate: 'linear', 'bvh' or 'rtree'")
	width := fs.Int("width", defaults.Width, "Image width")
	height := fs.Int("height", defaults.Height, "Image height")
	outputPath := fs.String("output", defaults.Output, "Output PNG path")
	workers := fs.Int("workers", defaults.Workers, "Number of workers (0 = auto)")
	maxDepth := fs.Int("max-depth", defaults.MaxDepth, "Last depth that spawns a reflection ray")
	toneMapper := fs.String("tonemap", defaults.ToneMapper, "Tone mapper: 'none', 'gamma' or 'reinhard'")
	noSupersample := fs.Bool("no-supersample", false, "Trace one ray per pixel")
	list := fs.Bool("list", false, "List built-in scenes")
	help := fs.Bool("help", false, "Show help information")

	if err := fs.Parse(args); err != nil {
		return nil, false, err
	}
	if *help {
		fmt.Fprintln(output, "Whitted Raytracer")
		fmt.Fprintln(output, "Usage: raytracer [options]")
		fs.PrintDefaults()
		return nil, true, nil
	}
	if *list {
		for _, info := range scene.ListScenes() {
			fmt.Fprintf(output, "  %-10s %s\n", info.ID, info.Description)
		}
		return nil, true, nil
	}

	cfg := &defaults
	if *configPath != "" {
		loaded, err := loaders.LoadRenderFile(*configPath)
		if err != nil {
			return nil, false, err
		}
		cfg = loaded
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "scene":
			cfg.Scene = *sceneID
		case "aggregate":
			cfg.Aggregate = *aggregate
		case "width":
			cfg.Width = *width
		case "height":
			cfg.Height = *height
		case "output":
			cfg.Output = *outputPath
		case "workers":
			cfg.Workers = *workers
		case "max-depth":
			cfg.MaxDepth = *maxDepth
		case "tonemap":
			cfg.ToneMapper = *toneMapper
		case "no-supersample":
			cfg.Supersample = !*noSupersample
		}
	})
	if err := cfg.Validate(); err != nil {
		return nil, false, err
	}
	return cfg, false, nil
}

// createScene builds the configured scene with its textures and meshes
func createScene(cfg *loaders.RenderFile) (*scene.Scene, error) {
	aggregate, err := scene.NewAggregate(cfg.Aggregate)
	if err != nil {
		return nil, err
	}
	options, err := cfg.SceneOptions()
	if err != nil {
		return nil, err
	}
	sc, err := scene.Build(cfg.Scene, aggregate, options...)
	if err != nil {
		return nil, err
	}
	if cfg.Camera != nil {
		sc.CameraConfig = *cfg.Camera
	}
	return sc, nil
}

// newRaytracer wires the scene, camera and integrator for cfg
func newRaytracer(cfg *loaders.RenderFile, sc *scene.Scene, target renderer.RenderTarget, logger core.Logger) (*renderer.Raytracer, error) {
	camera, err := renderer.NewPerspectiveCamera(sc.CameraConfig, cfg.Width, cfg.Height)
	if err != nil {
		return nil, err
	}
	toneMapper, err := renderer.NewToneMapper(cfg.ToneMapper)
	if err != nil {
		return nil, err
	}

	config := renderer.DefaultRenderConfig()
	config.Supersample = cfg.Supersample
	config.ToneMapper = toneMapper
	config.NumWorkers = cfg.Workers

	integ := integrator.NewWhittedIntegrator(integrator.Config{
		MaxDepth:            cfg.MaxDepth,
		SpecularReflectance: core.NewVec3(cfg.Reflectance, cfg.Reflectance, cfg.Reflectance),
	})
	return renderer.NewRaytracer(sc, camera, target, integ, config, logger), nil
}

func run(cfg *loaders.RenderFile) error {
	sc, err := createScene(cfg)
	if err != nil {
		return fmt.Errorf("create scene: %w", err)
	}

	target := renderer.NewImageTarget(cfg.Width, cfg.Height)
	raytracer, err := newRaytracer(cfg, sc, target, renderer.NewDefaultLogger())
	if err != nil {
		return err
	}

	startTime := time.Now()
	if _, err := raytracer.Render(); err != nil {
		return fmt.Errorf("render: %w", err)
	}
	log.Printf("Average luminance %.4f after %v", renderer.CalculateAverageLuminance(target.Image()), time.Since(startTime))

	if err := loaders.SavePNG(cfg.Output, target.Image()); err != nil {
		return err
	}
	log.Printf("Render saved as %s", cfg.Output)
	return nil
}

func main() {
	cfg, done, err := parseConfig(os.Args[1:], os.Stderr)
	if err != nil {
		if err == flag.ErrHelp {
			return
		}
		log.Fatalf("Error: %v", err)
	}
	if done {
		return
	}

	if err := run(cfg); err != nil {
		log.Fatalf("Error: %v", err)
	}
}
