package server

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"

	"github.com/df07/go-whitted-raytracer/pkg/renderer"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// Server handles web requests for the raytracer
type Server struct {
	port int
}

// NewServer creates a new web server
func NewServer(port int) *Server {
	return &Server{port: port}
}

// RenderRequest represents a render or inspect request from the client
type RenderRequest struct {
	Scene       string `json:"scene"`       // Built-in scene ID
	Aggregate   string `json:"aggregate"`   // "linear", "bvh" or "rtree"
	Width       int    `json:"width"`       // Image width
	Height      int    `json:"height"`      // Image height
	MaxDepth    int    `json:"maxDepth"`    // Last depth that spawns a reflection ray
	Supersample bool   `json:"supersample"` // Four taps per pixel
	ToneMapper  string `json:"toneMapper"`  // "none", "gamma" or "reinhard"
}

// Stats represents render statistics
type Stats struct {
	Tiles            int     `json:"tiles"`
	Pixels           int     `json:"pixels"`
	Samples          int     `json:"samples"`
	Workers          int     `json:"workers"`
	SamplesPerSecond float64 `json:"samplesPerSecond"`
	AverageLuminance float64 `json:"averageLuminance"`
}

// Handler returns the HTTP routes of the server
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/", http.FileServer(http.Dir("static/")))
	mux.HandleFunc("/api/render", s.handleRender)
	mux.HandleFunc("/api/inspect", s.handleInspect)
	mux.HandleFunc("/api/scenes", s.handleScenes)
	mux.HandleFunc("/api/health", s.handleHealth)
	return mux
}

// Start starts the web server
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	log.Printf("Starting web server on http://localhost%s", addr)
	return http.ListenAndServe(addr, s.Handler())
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleScenes lists the built-in scenes
func (s *Server) handleScenes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, scene.ListScenes())
}

// parseRenderRequest parses request parameters
func (s *Server) parseRenderRequest(r *http.Request) (*RenderRequest, error) {
	query := r.URL.Query()
	req := &RenderRequest{
		Scene:       query.Get("scene"),
		Aggregate:   query.Get("aggregate"),
		ToneMapper:  query.Get("toneMapper"),
		Supersample: query.Get("supersample") != "false",
	}
	if req.Scene == "" {
		req.Scene = "default"
	}
	if req.Aggregate == "" {
		req.Aggregate = "bvh"
	}

	var err error
	if req.Width, err = parseIntParam(query, "width", 400, 16, 2000); err != nil {
		return nil, err
	}
	if req.Height, err = parseIntParam(query, "height", 225, 16, 2000); err != nil {
		return nil, err
	}
	if req.MaxDepth, err = parseIntParam(query, "maxDepth", 2, 0, 16); err != nil {
		return nil, err
	}
	if _, err := renderer.NewToneMapper(req.ToneMapper); err != nil {
		return nil, err
	}
	return req, nil
}

// parseIntParam parses an integer parameter from URL query with validation
func parseIntParam(values url.Values, key string, defaultValue, min, max int) (int, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %d and %d, got: %d", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

// createScene builds the requested scene with the requested aggregate
func (s *Server) createScene(req *RenderRequest) (*scene.Scene, error) {
	aggregate, err := scene.NewAggregate(req.Aggregate)
	if err != nil {
		return nil, err
	}
	return scene.Build(req.Scene, aggregate)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
