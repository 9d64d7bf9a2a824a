package renderer

import (
	"fmt"
	"math"

	"github.com/df07/go-sphere-raytracer/pkg/core"
	"github.com/df07/go-sphere-raytracer/pkg/geometry"
)

// InspectResult describes what the ray through a single pixel sees
type InspectResult struct {
	Ray       core.Ray
	IsHit     bool
	HitRecord geometry.HitRecord
	Shape     geometry.Shape // The shape that was hit, nil on a miss
	Color     core.Color
}

// InspectPixel casts the ray through pixel (i, j) and reports the closest hit
func (rt *Raytracer) InspectPixel(i, j int) (InspectResult, error) {
	if i < 0 || i >= rt.config.Width || j < 0 || j >= rt.config.Height {
		return InspectResult{}, fmt.Errorf("pixel (%d,%d) outside %dx%d image", i, j, rt.config.Width, rt.config.Height)
	}

	ray := rt.PixelRay(i, j)
	hit, isHit := rt.hitWorld(ray)
	result := InspectResult{
		Ray:       ray,
		IsHit:     isHit,
		HitRecord: hit,
		Color:     rt.shader.Shade(ray, hit, isHit),
	}
	if !isHit {
		return result, nil
	}

	// The closest hit does not name its shape; the last shape reporting the
	// same t is the one ClosestHit kept
	for _, shape := range rt.scene.GetShapes() {
		if shapeHit, ok := shape.Hit(ray, 0, math.Inf(1)); ok && shapeHit.T == hit.T {
			result.Shape = shape
		}
	}
	return result, nil
}
