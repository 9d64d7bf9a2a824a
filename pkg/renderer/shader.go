package renderer

import (
	"github.com/df07/go-sphere-raytracer/pkg/core"
	"github.com/df07/go-sphere-raytracer/pkg/geometry"
)

// Shader maps a traced ray to a pixel color: surface normals on hit,
// a vertical background gradient on miss. There are no lights and no secondary rays.
type Shader struct {
	Top    core.Vec3 // Background color looking straight up
	Bottom core.Vec3 // Background color looking straight down
}

// DefaultShader returns the white to sky-blue gradient
func DefaultShader() Shader {
	return Shader{
		Top:    core.NewVec3(0.5, 0.7, 1.0),
		Bottom: core.NewVec3(1.0, 1.0, 1.0),
	}
}

// Shade returns the color for a ray given the closest-hit result
func (s Shader) Shade(ray core.Ray, hit geometry.HitRecord, isHit bool) core.Color {
	if isHit {
		return s.normalColor(hit.Normal)
	}
	return core.ColorFromUnit(s.Background(ray))
}

// normalColor maps each component of a unit normal from [-1,1] to [0,1]
func (s Shader) normalColor(normal core.Vec3) core.Color {
	return core.ColorFromUnit(normal.Add(core.NewVec3(1, 1, 1)).Multiply(0.5))
}

// Background returns the gradient color for a ray that hit nothing.
// A ray without a direction gets the horizon color.
func (s Shader) Background(ray core.Ray) core.Vec3 {
	t := 0.5
	if unitDirection, err := ray.Direction.UnitVector(); err == nil {
		// Map y from [-1,1] to [0,1]
		t = 0.5 * (unitDirection.Y + 1.0)
	}
	return s.Bottom.Lerp(s.Top, t)
}
