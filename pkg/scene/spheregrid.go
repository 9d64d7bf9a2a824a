package scene

import (
	"math"

	"github.com/df07/go-sphere-raytracer/pkg/core"
	"github.com/df07/go-sphere-raytracer/pkg/renderer"
)

// NewSphereGridScene creates a gridSize x gridSize grid of spheres on a ground sphere
func NewSphereGridScene(gridSize int) *Scene {
	if gridSize < 1 {
		gridSize = 1
	}

	camera := renderer.NewCamera(renderer.CameraConfig{
		Origin:         core.NewVec3(0, 1.5, 6), // Above and behind the grid
		AspectRatio:    16.0 / 9.0,
		ViewportHeight: 2.0,
		FocalLength:    1.2,
	})

	s, err := NewScene("spheregrid", camera, 800, 450)
	if err != nil {
		panic(err)
	}

	// Ground
	if err := s.AddSphere(core.NewVec3(0, -1000, 0), 1000); err != nil {
		panic(err)
	}

	// Fit the grid in roughly the same visual area whatever its size
	targetArea := 6.0
	spacing := targetArea
	if gridSize > 1 {
		spacing = targetArea / float64(gridSize-1)
	}

	// Scale sphere radius based on spacing, but keep reasonable minimum/maximum
	sphereRadius := math.Max(0.02, math.Min(0.5, spacing*0.35))

	for i := 0; i < gridSize; i++ {
		for j := 0; j < gridSize; j++ {
			x := float64(i)*spacing - targetArea/2.0
			z := float64(j)*spacing - targetArea/2.0
			if gridSize == 1 {
				x, z = 0, 0
			}
			// Sphere sits on the ground
			if err := s.AddSphere(core.NewVec3(x, sphereRadius, z), sphereRadius); err != nil {
				panic(err)
			}
		}
	}

	return s
}
