package scene

import (
	"errors"
	"fmt"

	"github.com/df07/go-sphere-raytracer/pkg/core"
	"github.com/df07/go-sphere-raytracer/pkg/geometry"
	"github.com/df07/go-sphere-raytracer/pkg/renderer"
)

// ErrInvalidScene is returned for scenes that cannot be rendered
var ErrInvalidScene = errors.New("invalid scene")

// Scene contains all the elements needed for rendering
type Scene struct {
	Name        string
	Camera      *renderer.Camera
	World       *geometry.World // Objects in the scene
	TopColor    core.Vec3       // Background looking straight up
	BottomColor core.Vec3       // Background looking straight down
	Width       int             // Default image width
	Height      int             // Default image height
}

// NewScene creates an empty scene with the default sky gradient
func NewScene(name string, camera *renderer.Camera, width, height int) (*Scene, error) {
	if camera == nil {
		return nil, fmt.Errorf("%w: %s has no camera", ErrInvalidScene, name)
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %s has dimensions %dx%d", ErrInvalidScene, name, width, height)
	}

	shader := renderer.DefaultShader()
	return &Scene{
		Name:        name,
		Camera:      camera,
		World:       geometry.NewWorld(),
		TopColor:    shader.Top,
		BottomColor: shader.Bottom,
		Width:       width,
		Height:      height,
	}, nil
}

// AddSphere adds a sphere to the scene
func (s *Scene) AddSphere(center core.Vec3, radius float64) error {
	sphere, err := geometry.NewSphere(center, radius)
	if err != nil {
		return fmt.Errorf("scene %s: %w", s.Name, err)
	}
	s.World.Add(sphere)
	return nil
}

// GetCamera returns the scene camera
func (s *Scene) GetCamera() *renderer.Camera {
	return s.Camera
}

// GetBackgroundColors returns the sky gradient colors
func (s *Scene) GetBackgroundColors() (topColor, bottomColor core.Vec3) {
	return s.TopColor, s.BottomColor
}

// GetShapes returns the shapes in the scene
func (s *Scene) GetShapes() []geometry.Shape {
	return s.World.Shapes()
}

// RenderConfig returns the scene's default render configuration
func (s *Scene) RenderConfig() renderer.RenderConfig {
	config := renderer.DefaultRenderConfig()
	config.Width = s.Width
	config.Height = s.Height
	return config
}
