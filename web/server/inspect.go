package server

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/df07/go-sphere-raytracer/pkg/core"
	"github.com/df07/go-sphere-raytracer/pkg/geometry"
	"github.com/df07/go-sphere-raytracer/pkg/renderer"
)

// InspectResponse represents the JSON response for pixel inspection
type InspectResponse struct {
	Hit          bool                   `json:"hit"`
	GeometryType string                 `json:"geometryType,omitempty"`
	Point        [3]float64             `json:"point"`
	Normal       [3]float64             `json:"normal"`
	Distance     float64                `json:"distance"`
	FrontFace    bool                   `json:"frontFace"`
	Color        [3]uint8               `json:"color"`
	Properties   map[string]interface{} `json:"properties,omitempty"`
	RayDirection [3]float64             `json:"rayDirection"`
	Camera       CameraInfo             `json:"camera"`
}

// CameraInfo describes the viewport the pixel ray was cast through
type CameraInfo struct {
	Origin     [3]float64 `json:"origin"`
	LowerLeft  [3]float64 `json:"lowerLeft"`
	Horizontal [3]float64 `json:"horizontal"`
	Vertical   [3]float64 `json:"vertical"`
}

func toArray(v core.Vec3) [3]float64 {
	return [3]float64{v.X, v.Y, v.Z}
}

func newCameraInfo(camera *renderer.Camera) CameraInfo {
	lowerLeft, horizontal, vertical := camera.Viewport()
	return CameraInfo{
		Origin:     toArray(camera.Origin()),
		LowerLeft:  toArray(lowerLeft),
		Horizontal: toArray(horizontal),
		Vertical:   toArray(vertical),
	}
}

// extractGeometryInfo extracts detailed geometry information
func extractGeometryInfo(shape geometry.Shape) (string, map[string]interface{}) {
	switch g := shape.(type) {
	case *geometry.Sphere:
		return "sphere", map[string]interface{}{
			"center": toArray(g.Center),
			"radius": g.Radius,
		}
	case nil:
		return "", nil
	default:
		return fmt.Sprintf("%T", shape), map[string]interface{}{}
	}
}

// handleInspect casts the ray through one pixel and describes what it hits
func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	req, err := s.parseRenderRequest(r)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid scene parameters: "+err.Error())
		return
	}

	// Parse pixel coordinates
	pixelX, err := strconv.Atoi(r.URL.Query().Get("x"))
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid x coordinate")
		return
	}
	pixelY, err := strconv.Atoi(r.URL.Query().Get("y"))
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid y coordinate")
		return
	}

	sceneObj, err := s.createScene(req.Scene)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	renderConfig := sceneObj.RenderConfig()
	if req.Width > 0 {
		renderConfig.Width = req.Width
	}
	if req.Height > 0 {
		renderConfig.Height = req.Height
	}
	raytracer := renderer.NewRaytracer(sceneObj, renderConfig, renderer.NewDefaultLogger())

	result, err := raytracer.InspectPixel(pixelX, pixelY)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "Pixel coordinates out of bounds")
		return
	}

	response := InspectResponse{
		Hit:          result.IsHit,
		Color:        [3]uint8{result.Color.R, result.Color.G, result.Color.B},
		RayDirection: toArray(result.Ray.Direction),
		Camera:       newCameraInfo(sceneObj.GetCamera()),
	}
	if result.IsHit {
		hit := result.HitRecord
		response.GeometryType, response.Properties = extractGeometryInfo(result.Shape)
		response.Point = toArray(hit.Point)
		response.Normal = toArray(hit.Normal)
		response.Distance = hit.T
		response.FrontFace = hit.FrontFace
	}

	writeJSON(w, http.StatusOK, response)
}
