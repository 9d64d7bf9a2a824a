package renderer

import (
	"github.com/df07/go-sphere-raytracer/pkg/core"
)

// CameraConfig describes a pinhole camera looking down -Z
type CameraConfig struct {
	Origin         core.Vec3 // Eye position
	AspectRatio    float64   // Viewport width / height
	ViewportHeight float64   // Viewport height in world units
	FocalLength    float64   // Distance from origin to the viewport plane
}

// DefaultCameraConfig returns a 2:1 camera at the origin, matching the viewport
// lower-left (-2,-1,-1), horizontal (4,0,0), vertical (0,2,0)
func DefaultCameraConfig() CameraConfig {
	return CameraConfig{
		Origin:         core.NewVec3(0, 0, 0),
		AspectRatio:    2.0,
		ViewportHeight: 2.0,
		FocalLength:    1.0,
	}
}

// Camera generates rays for rendering
type Camera struct {
	origin          core.Vec3
	lowerLeftCorner core.Vec3
	horizontal      core.Vec3
	vertical        core.Vec3
}

// NewCamera creates a simple camera
func NewCamera(config CameraConfig) *Camera {
	viewportWidth := config.AspectRatio * config.ViewportHeight

	origin := config.Origin
	horizontal := core.NewVec3(viewportWidth, 0, 0)
	vertical := core.NewVec3(0, config.ViewportHeight, 0)
	lowerLeftCorner := origin.Subtract(horizontal.Multiply(0.5)).
		Subtract(vertical.Multiply(0.5)).
		Subtract(core.NewVec3(0, 0, config.FocalLength))

	return &Camera{
		origin:          origin,
		horizontal:      horizontal,
		vertical:        vertical,
		lowerLeftCorner: lowerLeftCorner,
	}
}

// NewCameraFromCorners creates a camera from an explicit viewport
func NewCameraFromCorners(origin, lowerLeftCorner, horizontal, vertical core.Vec3) *Camera {
	return &Camera{
		origin:          origin,
		lowerLeftCorner: lowerLeftCorner,
		horizontal:      horizontal,
		vertical:        vertical,
	}
}

// Origin returns the eye position
func (c *Camera) Origin() core.Vec3 { return c.origin }

// Viewport returns the lower-left corner and the horizontal/vertical spans
func (c *Camera) Viewport() (lowerLeftCorner, horizontal, vertical core.Vec3) {
	return c.lowerLeftCorner, c.horizontal, c.vertical
}

// GetRay generates a ray for screen coordinates (s, t) where 0 <= s,t <= 1,
// with (0,0) at the lower-left of the viewport
func (c *Camera) GetRay(s, t float64) core.Ray {
	direction := c.lowerLeftCorner.
		Add(c.horizontal.Multiply(s)).
		Add(c.vertical.Multiply(t)).
		Subtract(c.origin)

	return core.NewRay(c.origin, direction)
}
