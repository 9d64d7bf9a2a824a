package scene

import (
	"github.com/df07/go-sphere-raytracer/pkg/core"
	"github.com/df07/go-sphere-raytracer/pkg/renderer"
)

// NewDefaultScene creates the single-sphere scene: a 2:1 viewport one unit in
// front of the eye and a sphere of radius 0.5 straight ahead
func NewDefaultScene() *Scene {
	camera := renderer.NewCameraFromCorners(
		core.NewVec3(0, 0, 0),    // origin
		core.NewVec3(-2, -1, -1), // lower-left corner
		core.NewVec3(4, 0, 0),    // horizontal
		core.NewVec3(0, 2, 0),    // vertical
	)

	s, err := NewScene("default", camera, 1200, 600)
	if err != nil {
		panic(err)
	}
	if err := s.AddSphere(core.NewVec3(0, 0, -2), 0.5); err != nil {
		panic(err)
	}
	return s
}

// NewTwoSpheresScene creates a small sphere resting on a large ground sphere
func NewTwoSpheresScene() *Scene {
	camera := renderer.NewCamera(renderer.DefaultCameraConfig())

	s, err := NewScene("two-spheres", camera, 400, 200)
	if err != nil {
		panic(err)
	}
	if err := s.AddSphere(core.NewVec3(0, 0, -1), 0.5); err != nil {
		panic(err)
	}
	// Ground
	if err := s.AddSphere(core.NewVec3(0, -100.5, -1), 100); err != nil {
		panic(err)
	}
	return s
}
