package scene

import (
	"fmt"

	"github.com/df07/go-sphere-raytracer/pkg/loaders"
	"github.com/df07/go-sphere-raytracer/pkg/renderer"
)

// Dimensions used when a scene file leaves them out
const (
	defaultFileWidth  = 400
	defaultFileHeight = 200
)

// NewJSONScene loads a scene from a .json scene file
func NewJSONScene(filename string) (*Scene, error) {
	desc, err := loaders.LoadSceneJSON(filename)
	if err != nil {
		return nil, err
	}
	return FromDescription(desc)
}

// FromDescription builds a scene from a parsed scene file
func FromDescription(desc *loaders.SceneDescription) (*Scene, error) {
	width, height := desc.Width, desc.Height
	if width == 0 {
		width = defaultFileWidth
	}
	if height == 0 {
		height = defaultFileHeight
	}

	s, err := NewScene(desc.Name, descriptionCamera(desc.Camera), width, height)
	if err != nil {
		return nil, err
	}

	if desc.Background != nil {
		s.TopColor = desc.Background.Top.Vec3()
		s.BottomColor = desc.Background.Bottom.Vec3()
	}

	for i, sphere := range desc.Spheres {
		if err := s.AddSphere(sphere.Center.Vec3(), sphere.Radius); err != nil {
			return nil, fmt.Errorf("sphere %d: %w", i, err)
		}
	}

	return s, nil
}

// descriptionCamera builds the camera, filling unset parameters from the default camera
func descriptionCamera(desc loaders.CameraDescription) *renderer.Camera {
	config := renderer.DefaultCameraConfig()
	if desc.Origin != nil {
		config.Origin = desc.Origin.Vec3()
	}

	if desc.HasCorners() {
		return renderer.NewCameraFromCorners(config.Origin,
			desc.LowerLeft.Vec3(), desc.Horizontal.Vec3(), desc.Vertical.Vec3())
	}

	if desc.AspectRatio > 0 {
		config.AspectRatio = desc.AspectRatio
	}
	if desc.ViewportHeight > 0 {
		config.ViewportHeight = desc.ViewportHeight
	}
	if desc.FocalLength > 0 {
		config.FocalLength = desc.FocalLength
	}
	return renderer.NewCamera(config)
}
