package server

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"log"
	"net/http"
	"net/url"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/df07/go-sphere-raytracer/pkg/config"
	"github.com/df07/go-sphere-raytracer/pkg/core"
	"github.com/df07/go-sphere-raytracer/pkg/output"
	"github.com/df07/go-sphere-raytracer/pkg/renderer"
	"github.com/df07/go-sphere-raytracer/pkg/scene"
)

// Request limits
const (
	minDimension = 1
	maxDimension = 2000
	maxWorkers   = 256
)

//go:embed static
var staticFiles embed.FS

// ImageUploader stores rendered images
type ImageUploader interface {
	UploadImage(ctx context.Context, key string, img *renderer.Image, format output.Format) error
}

// Server handles web requests for the raytracer
type Server struct {
	port     int
	config   config.Config
	uploader ImageUploader // nil when no bucket is configured
}

// NewServer creates a new web server
func NewServer(cfg config.Config, uploader ImageUploader) *Server {
	return &Server{port: cfg.Port, config: cfg, uploader: uploader}
}

// RenderRequest represents a render request from the client
type RenderRequest struct {
	Scene   string        `json:"scene"`   // Scene name (e.g., "two-spheres")
	Width   int           `json:"width"`   // Image width, 0 for the scene's own
	Height  int           `json:"height"`  // Image height, 0 for the scene's own
	Workers int           `json:"workers"` // Parallel workers (0 = CPU count)
	Format  output.Format `json:"format"`  // Output encoding
	Upload  bool          `json:"upload"`  // Also upload the result
}

// Stats represents render statistics
type Stats struct {
	TotalPixels    int     `json:"totalPixels"`
	Hits           int     `json:"hits"`
	Misses         int     `json:"misses"`
	DegenerateRays int     `json:"degenerateRays"`
	Tiles          int     `json:"tiles"`
	Workers        int     `json:"workers"`
	ElapsedMs      int64   `json:"elapsedMs"`
	HitRatio       float64 `json:"hitRatio"`
}

func newStats(stats renderer.RenderStats) Stats {
	return Stats{
		TotalPixels:    stats.TotalPixels,
		Hits:           stats.Hits,
		Misses:         stats.Misses,
		DegenerateRays: stats.DegenerateRays,
		Tiles:          stats.Tiles,
		Workers:        stats.Workers,
		ElapsedMs:      stats.Duration.Milliseconds(),
		HitRatio:       stats.HitRatio(),
	}
}

// Handler returns the HTTP handler with all routes registered
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	// Serve static files
	staticRoot, err := fs.Sub(staticFiles, "static")
	if err != nil {
		panic(err)
	}
	mux.Handle("/", http.FileServerFS(staticRoot))

	// API endpoints
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/scenes", s.handleScenes)
	mux.HandleFunc("/api/render", s.handleRender)
	mux.HandleFunc("/api/render/stream", s.handleRenderStream)
	mux.HandleFunc("/api/inspect", s.handleInspect)

	return mux
}

// Start starts the web server
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	log.Printf("Starting web server on http://localhost%s", addr)

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return httpServer.ListenAndServe()
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleScenes lists built-in and file scenes
func (s *Server) handleScenes(w http.ResponseWriter, r *http.Request) {
	response, err := scene.ListAllScenes()
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, response)
}

// handleRender renders a scene and responds with the encoded image
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	req, err := s.parseRenderRequest(r)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request: %v", err))
		return
	}

	sceneObj, err := s.createScene(req.Scene)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	img, stats, err := s.render(r.Context(), sceneObj, req, renderer.NewDefaultLogger())
	if err != nil {
		log.Printf("Render of %s failed: %v", req.Scene, err)
		writeJSONError(w, http.StatusInternalServerError, fmt.Sprintf("Render error: %v", err))
		return
	}

	data, err := encodeImage(img, req.Format)
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, err.Error())
		return
	}

	if req.Upload {
		if err := s.upload(r.Context(), sceneObj.Name, img, req.Format); err != nil {
			log.Printf("Upload failed: %v", err)
			writeJSONError(w, http.StatusBadGateway, "Upload failed")
			return
		}
	}

	w.Header().Set("Content-Type", req.Format.ContentType())
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("X-Render-Hits", strconv.Itoa(stats.Hits))
	w.Header().Set("X-Render-Misses", strconv.Itoa(stats.Misses))
	w.Header().Set("X-Render-Time-Ms", strconv.FormatInt(stats.Duration.Milliseconds(), 10))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

// render renders sceneObj at the requested size
func (s *Server) render(ctx context.Context, sceneObj *scene.Scene, req *RenderRequest, logger core.Logger) (*renderer.Image, renderer.RenderStats, error) {
	renderConfig := sceneObj.RenderConfig()
	if req.Width > 0 {
		renderConfig.Width = req.Width
	}
	if req.Height > 0 {
		renderConfig.Height = req.Height
	}
	renderConfig.TileSize = s.config.TileSize
	renderConfig.NumWorkers = req.Workers

	raytracer := renderer.NewRaytracer(sceneObj, renderConfig, logger)
	return raytracer.Render(ctx)
}

// upload stores img under <scene>/render_<timestamp>.<format>
func (s *Server) upload(ctx context.Context, sceneName string, img *renderer.Image, format output.Format) error {
	if s.uploader == nil {
		return output.ErrMissingBucket
	}
	key := fmt.Sprintf("%s/render_%s.%s", sceneName, time.Now().Format("20060102_150405"), format)
	return s.uploader.UploadImage(ctx, key, img, format)
}

// parseRenderRequest parses request parameters
func (s *Server) parseRenderRequest(r *http.Request) (*RenderRequest, error) {
	query := r.URL.Query()
	req := &RenderRequest{}

	if sceneName := query.Get("scene"); sceneName != "" {
		req.Scene = sceneName
	} else {
		req.Scene = s.config.Scene // Default scene
	}

	// Zero keeps the scene's own size
	var err error
	if req.Width, err = parseIntParam(query, "width", 0, minDimension, maxDimension); err != nil {
		return nil, err
	}
	if req.Height, err = parseIntParam(query, "height", 0, minDimension, maxDimension); err != nil {
		return nil, err
	}
	if req.Workers, err = parseIntParam(query, "workers", s.config.Workers, 0, maxWorkers); err != nil {
		return nil, err
	}

	format := query.Get("format")
	if format == "" {
		format = string(output.FormatPNG)
	}
	if req.Format, err = output.ParseFormat(format); err != nil {
		return nil, err
	}

	switch query.Get("upload") {
	case "", "0", "false":
	case "1", "true":
		req.Upload = true
	default:
		return nil, fmt.Errorf("invalid upload: %s", query.Get("upload"))
	}

	// Performance warning
	if req.Width*req.Height > 1200*1200 && req.Workers == 1 {
		log.Printf("Render warning: Large image on a single worker may render slowly")
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

// createScene resolves a scene by name. File paths are not accepted over
// HTTP; scene files are reached by their json:<name> ID.
func (s *Server) createScene(sceneName string) (*scene.Scene, error) {
	if strings.HasPrefix(sceneName, "json:") || slices.Contains(scene.ListScenes(), sceneName) {
		return scene.CreateScene(sceneName)
	}
	return nil, fmt.Errorf("%w: %s", scene.ErrUnknownScene, sceneName)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeJSONError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
