package server

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image"
	"image/png"
	"net/http"
	"time"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/integrator"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// RenderResult is the payload of the "complete" event
type RenderResult struct {
	ImageData string `json:"imageData"` // Base64 encoded PNG
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	Stats     Stats  `json:"stats"`
	ElapsedMs int64  `json:"elapsedMs"`
}

// RenderingPipeline holds everything needed for one render
type RenderingPipeline struct {
	Scene     *scene.Scene
	Target    *renderer.ImageTarget
	Raytracer *renderer.Raytracer
}

// handleRender renders a scene and reports console output and the final
// image as Server-Sent Events
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	s.setSSEHeaders(w)

	req, err := s.parseRenderRequest(r)
	if err != nil {
		s.sendSSEEvent(w, "error", fmt.Sprintf("Invalid request: %v", err))
		return
	}

	consoleChan, webLogger := s.setupConsoleLogging()
	pipeline, err := s.setupRenderingPipeline(req, webLogger)
	if err != nil {
		s.sendSSEEvent(w, "error", err.Error())
		return
	}

	startTime := time.Now()
	stats, err := pipeline.Raytracer.Render()
	s.flushConsole(w, consoleChan)
	if err != nil {
		s.sendSSEEvent(w, "error", fmt.Sprintf("Render error: %v", err))
		return
	}

	img := pipeline.Target.Image()
	imageData, err := s.imageToBase64PNG(img)
	if err != nil {
		s.sendSSEEvent(w, "error", fmt.Sprintf("Failed to encode image: %v", err))
		return
	}

	data, err := json.Marshal(RenderResult{
		ImageData: imageData,
		Width:     req.Width,
		Height:    req.Height,
		Stats: Stats{
			Tiles:            stats.Tiles,
			Pixels:           stats.Pixels,
			Samples:          stats.Samples,
			Workers:          stats.Workers,
			SamplesPerSecond: stats.SamplesPerSecond(),
			AverageLuminance: renderer.CalculateAverageLuminance(img),
		},
		ElapsedMs: time.Since(startTime).Milliseconds(),
	})
	if err != nil {
		s.sendSSEEvent(w, "error", err.Error())
		return
	}
	s.sendSSEEvent(w, "complete", string(data))
}

// setupRenderingPipeline builds the scene, camera, target and raytracer for a request
func (s *Server) setupRenderingPipeline(req *RenderRequest, logger core.Logger) (*RenderingPipeline, error) {
	sceneObj, err := s.createScene(req)
	if err != nil {
		return nil, err
	}

	camera, err := renderer.NewPerspectiveCamera(sceneObj.CameraConfig, req.Width, req.Height)
	if err != nil {
		return nil, err
	}

	toneMapper, err := renderer.NewToneMapper(req.ToneMapper)
	if err != nil {
		return nil, err
	}
	config := renderer.DefaultRenderConfig()
	config.Supersample = req.Supersample
	config.ToneMapper = toneMapper

	integratorConfig := integrator.DefaultConfig()
	integratorConfig.MaxDepth = req.MaxDepth

	target := renderer.NewImageTarget(req.Width, req.Height)
	raytracer := renderer.NewRaytracer(sceneObj, camera, target,
		integrator.NewWhittedIntegrator(integratorConfig), config, logger)

	return &RenderingPipeline{Scene: sceneObj, Target: target, Raytracer: raytracer}, nil
}

// setSSEHeaders sets the required headers for Server-Sent Events
func (s *Server) setSSEHeaders(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")
}

// setupConsoleLogging creates console channel and web logger for a render
func (s *Server) setupConsoleLogging() (chan ConsoleMessage, core.Logger) {
	consoleChan := make(chan ConsoleMessage, 50)
	renderID := fmt.Sprintf("render-%d", time.Now().UnixNano())
	return consoleChan, NewWebLogger(renderID, consoleChan)
}

// flushConsole sends every queued console message as a "console" event
func (s *Server) flushConsole(w http.ResponseWriter, consoleChan chan ConsoleMessage) {
	for {
		select {
		case msg := <-consoleChan:
			data, err := json.Marshal(msg)
			if err != nil {
				continue
			}
			s.sendSSEEvent(w, "console", string(data))
		default:
			return
		}
	}
}

// imageToBase64PNG converts an image to base64-encoded PNG
func (s *Server) imageToBase64PNG(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// sendSSEEvent writes one event and flushes it to the client
func (s *Server) sendSSEEvent(w http.ResponseWriter, event, data string) {
	fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, data)
	if flusher, ok := w.(http.Flusher); ok {
		flusher.Flush()
	}
}
