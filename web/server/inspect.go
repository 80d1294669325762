package server

import (
	"fmt"
	"math"
	"net/http"
	"strconv"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/material"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// hitTolerance matches a primitive's hit distance against the scene hit
const hitTolerance = 1e-9

// InspectResponse represents the JSON response for object inspection
type InspectResponse struct {
	Hit          bool           `json:"hit"`
	MaterialType string         `json:"materialType,omitempty"`
	GeometryType string         `json:"geometryType,omitempty"`
	Point        [3]float64     `json:"point"`
	Normal       [3]float64     `json:"normal"`
	Distance     float64        `json:"distance"`
	Properties   map[string]any `json:"properties,omitempty"`
}

func toArray(v core.Vec3) [3]float64 {
	return [3]float64{v.X, v.Y, v.Z}
}

func colorHex(c core.Vec3) string {
	clamped := c.Clamp(0, 1)
	return fmt.Sprintf("#%02x%02x%02x", int(clamped.X*255), int(clamped.Y*255), int(clamped.Z*255))
}

// extractMaterialInfo describes a material for the inspector
func (s *Server) extractMaterialInfo(mat material.Material) (string, map[string]any) {
	properties := make(map[string]any)

	switch m := mat.(type) {
	case *material.Matte:
		properties["albedo"] = toArray(m.Albedo)
		properties["color"] = colorHex(m.Albedo)
		properties["textures"] = m.Textures.Len()
		return "matte", properties

	case *material.Microfacet:
		properties["albedo"] = toArray(m.Albedo)
		properties["color"] = colorHex(m.Albedo)
		properties["alphaX"] = m.Distribution.AlphaX
		properties["alphaY"] = m.Distribution.AlphaY
		properties["etaI"] = m.EtaI
		properties["etaT"] = m.EtaT
		properties["textures"] = m.Textures.Len()
		return "microfacet", properties

	default:
		return "unknown", properties
	}
}

// extractGeometryInfo describes a shape for the inspector
func (s *Server) extractGeometryInfo(shape geometry.Shape, properties map[string]any) string {
	switch g := shape.(type) {
	case *geometry.Sphere:
		properties["center"] = toArray(g.ObjectToWorld().ApplyPoint(core.Vec3{}))
		properties["radius"] = g.Radius()
		return "sphere"

	case *geometry.Triangle:
		v0, v1, v2 := g.Vertices()
		properties["vertices"] = [3][3]float64{toArray(v0), toArray(v1), toArray(v2)}
		properties["faceNormal"] = toArray(g.Normal())
		properties["area"] = g.Area()
		return "triangle"

	default:
		return "unknown"
	}
}

// inspectPixel traces the camera ray through pixel (x, y) and reports what it hits
func (s *Server) inspectPixel(sc *scene.Scene, camera renderer.Camera, x, y int) InspectResponse {
	ray := camera.GenerateRay(float64(x), float64(y))

	si := material.NewSurfaceInteraction()
	if !sc.Intersects(ray, &si) {
		return InspectResponse{Hit: false}
	}

	response := InspectResponse{
		Hit:      true,
		Point:    toArray(si.Position),
		Normal:   toArray(si.Normal),
		Distance: si.HitDistance,
	}
	response.MaterialType, response.Properties = s.extractMaterialInfo(si.Material)

	// The aggregate does not report which primitive it hit, so find the one
	// whose own intersection lands at the same distance
	for _, primitive := range sc.Primitives {
		candidate := material.NewSurfaceInteraction()
		if primitive.Material != si.Material || !primitive.Shape.Intersects(ray, &candidate) {
			continue
		}
		if math.Abs(candidate.HitDistance-si.HitDistance) <= hitTolerance {
			response.GeometryType = s.extractGeometryInfo(primitive.Shape, response.Properties)
			break
		}
	}
	return response
}

// handleInspect reports the surface under one pixel of a scene
func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	req, err := s.parseRenderRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	query := r.URL.Query()
	x, errX := strconv.Atoi(query.Get("x"))
	y, errY := strconv.Atoi(query.Get("y"))
	if errX != nil || errY != nil {
		writeError(w, http.StatusBadRequest, "x and y must be integers")
		return
	}
	if x < 0 || x >= req.Width || y < 0 || y >= req.Height {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("pixel (%d, %d) outside %dx%d image", x, y, req.Width, req.Height))
		return
	}

	sc, err := s.createScene(req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	camera, err := renderer.NewPerspectiveCamera(sc.CameraConfig, req.Width, req.Height)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, s.inspectPixel(sc, camera, x, y))
}
