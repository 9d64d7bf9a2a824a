package renderer

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log"
	"math"
	"os"
	"time"

	"github.com/df07/go-sphere-raytracer/pkg/core"
	"github.com/df07/go-sphere-raytracer/pkg/geometry"
)

// NewDefaultLogger creates a logger writing to stdout
func NewDefaultLogger() core.Logger {
	return log.New(os.Stdout, "", log.LstdFlags)
}

// RenderConfig contains rendering configuration
type RenderConfig struct {
	Width      int // Image width in pixels
	Height     int // Image height in pixels
	TileSize   int // Size of each square tile
	NumWorkers int // Parallel workers (0 = CPU count, 1 = sequential)
}

// DefaultRenderConfig returns sensible default values
func DefaultRenderConfig() RenderConfig {
	return RenderConfig{
		Width:      400,
		Height:     200,
		TileSize:   32,
		NumWorkers: 1,
	}
}

// ErrInvalidDimensions is returned when asked to render an empty image
var ErrInvalidDimensions = errors.New("image dimensions must be positive")

// Scene interface to avoid circular imports
type Scene interface {
	GetCamera() *Camera
	GetBackgroundColors() (topColor, bottomColor core.Vec3)
	GetShapes() []geometry.Shape
}

// Raytracer casts one ray per pixel and shades the closest hit
type Raytracer struct {
	scene  Scene
	config RenderConfig
	shader Shader
	logger core.Logger
}

// NewRaytracer creates a new raytracer
func NewRaytracer(scene Scene, config RenderConfig, logger core.Logger) *Raytracer {
	if config.TileSize <= 0 {
		config.TileSize = DefaultRenderConfig().TileSize
	}
	if logger == nil {
		logger = NewDefaultLogger()
	}
	top, bottom := scene.GetBackgroundColors()
	return &Raytracer{
		scene:  scene,
		config: config,
		shader: Shader{Top: top, Bottom: bottom},
		logger: logger,
	}
}

// hitWorld checks if a ray hits any object in the scene
func (rt *Raytracer) hitWorld(ray core.Ray) (geometry.HitRecord, bool) {
	return geometry.ClosestHit(ray, 0, math.Inf(1), rt.scene.GetShapes())
}

// RayColor traces a single ray and returns its color and whether it hit anything
func (rt *Raytracer) RayColor(ray core.Ray) (core.Color, bool) {
	hit, isHit := rt.hitWorld(ray)
	return rt.shader.Shade(ray, hit, isHit), isHit
}

// PixelRay returns the camera ray through pixel (i, j), with j = 0 the top row
func (rt *Raytracer) PixelRay(i, j int) core.Ray {
	return rt.pixelRay(rt.scene.GetCamera(), i, j)
}

func (rt *Raytracer) pixelRay(camera *Camera, i, j int) core.Ray {
	u, v := 0.5, 0.5
	if rt.config.Width > 1 {
		u = float64(i) / float64(rt.config.Width-1)
	}
	if rt.config.Height > 1 {
		v = float64(rt.config.Height-1-j) / float64(rt.config.Height-1)
	}
	return camera.GetRay(u, v)
}

// RenderBounds renders the pixels within bounds into img
func (rt *Raytracer) RenderBounds(bounds image.Rectangle, img *Image) RenderStats {
	camera := rt.scene.GetCamera()
	stats := RenderStats{Tiles: 1}

	for j := bounds.Min.Y; j < bounds.Max.Y; j++ {
		for i := bounds.Min.X; i < bounds.Max.X; i++ {
			ray := rt.pixelRay(camera, i, j)
			if ray.Validate() != nil {
				// Shaded as background below
				stats.DegenerateRays++
			}

			color, isHit := rt.RayColor(ray)
			img.Set(i, j, color)

			stats.TotalPixels++
			if isHit {
				stats.Hits++
			} else {
				stats.Misses++
			}
		}
	}

	return stats
}

// Render renders the whole image. It returns ctx's error if the render is
// cancelled before every tile is done.
func (rt *Raytracer) Render(ctx context.Context) (*Image, RenderStats, error) {
	if rt.config.Width <= 0 || rt.config.Height <= 0 {
		return nil, RenderStats{}, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, rt.config.Width, rt.config.Height)
	}

	startTime := time.Now()
	img := NewImage(rt.config.Width, rt.config.Height)
	tiles := NewTileGrid(rt.config.Width, rt.config.Height, rt.config.TileSize)

	var stats RenderStats
	var err error
	if rt.config.NumWorkers == 1 {
		stats, err = rt.renderSequential(ctx, tiles, img)
	} else {
		stats, err = rt.renderParallel(ctx, tiles, img)
	}
	stats.Duration = time.Since(startTime)
	if err != nil {
		return nil, stats, err
	}

	rt.logger.Printf("Rendered %dx%d in %v: %d tiles, %d workers, %d hits, %d misses\n",
		rt.config.Width, rt.config.Height, stats.Duration, stats.Tiles, stats.Workers, stats.Hits, stats.Misses)
	if stats.DegenerateRays > 0 {
		rt.logger.Printf("Warning: %d degenerate rays shaded as background\n", stats.DegenerateRays)
	}

	return img, stats, nil
}

func (rt *Raytracer) renderSequential(ctx context.Context, tiles []*Tile, img *Image) (RenderStats, error) {
	stats := RenderStats{Workers: 1}
	for _, tile := range tiles {
		if err := ctx.Err(); err != nil {
			return stats, err
		}
		stats.Merge(rt.RenderBounds(tile.Bounds, img))
	}
	return stats, nil
}

func (rt *Raytracer) renderParallel(ctx context.Context, tiles []*Tile, img *Image) (RenderStats, error) {
	pool := NewWorkerPool(rt, len(tiles), rt.config.NumWorkers)
	stats := RenderStats{Workers: pool.GetNumWorkers()}

	pool.Start(ctx)
	for taskID, tile := range tiles {
		if ctx.Err() != nil {
			break
		}
		pool.SubmitTask(TileTask{Tile: tile, TaskID: taskID, Image: img})
	}
	pool.Stop()

	var firstErr error
	for {
		result, ok := pool.GetResult()
		if !ok {
			break
		}
		if result.Error != nil && firstErr == nil {
			firstErr = result.Error
		}
		stats.Merge(result.Stats)
	}

	if firstErr != nil {
		return stats, firstErr
	}
	if stats.Tiles < len(tiles) {
		// Submission stopped early
		return stats, ctx.Err()
	}
	return stats, nil
}
