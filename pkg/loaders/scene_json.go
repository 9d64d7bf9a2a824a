package loaders

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/df07/go-sphere-raytracer/pkg/core"
)

// ErrInvalidSceneFile is returned for scene files that parse but describe nothing renderable
var ErrInvalidSceneFile = errors.New("invalid scene file")

// minViewportExtent is the smallest component magnitude that keeps a viewport edge non-degenerate
const minViewportExtent = 1e-12

// Vec is a JSON [x, y, z] triple
type Vec [3]float64

// UnmarshalJSON accepts exactly three numbers
func (v *Vec) UnmarshalJSON(data []byte) error {
	var values []float64
	if err := json.Unmarshal(data, &values); err != nil {
		return err
	}
	if len(values) != len(v) {
		return fmt.Errorf("%w: vector needs 3 components, got %d", ErrInvalidSceneFile, len(values))
	}
	copy(v[:], values)
	return nil
}

// Vec3 converts to a core vector
func (v Vec) Vec3() core.Vec3 {
	return core.NewVec3(v[0], v[1], v[2])
}

// CameraDescription is either an explicit viewport (lowerLeft, horizontal,
// vertical all set) or an aspect-ratio camera looking down -Z
type CameraDescription struct {
	Origin     *Vec `json:"origin,omitempty"`
	LowerLeft  *Vec `json:"lowerLeft,omitempty"`
	Horizontal *Vec `json:"horizontal,omitempty"`
	Vertical   *Vec `json:"vertical,omitempty"`

	AspectRatio    float64 `json:"aspectRatio,omitempty"`
	ViewportHeight float64 `json:"viewportHeight,omitempty"`
	FocalLength    float64 `json:"focalLength,omitempty"`
}

// HasCorners reports whether the explicit viewport form is used
func (c CameraDescription) HasCorners() bool {
	return c.LowerLeft != nil || c.Horizontal != nil || c.Vertical != nil
}

// BackgroundDescription overrides the sky gradient
type BackgroundDescription struct {
	Top    Vec `json:"top"`
	Bottom Vec `json:"bottom"`
}

// SphereDescription is one sphere in the scene
type SphereDescription struct {
	Center Vec     `json:"center"`
	Radius float64 `json:"radius"`
}

// SceneDescription is the parsed form of a .json scene file
type SceneDescription struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description,omitempty"`
	Group       string                 `json:"group,omitempty"`
	Width       int                    `json:"width,omitempty"`
	Height      int                    `json:"height,omitempty"`
	Camera      CameraDescription      `json:"camera"`
	Background  *BackgroundDescription `json:"background,omitempty"`
	Spheres     []SphereDescription    `json:"spheres"`
}

// ParseSceneJSON parses a scene description. Unknown fields are rejected.
func ParseSceneJSON(reader io.Reader) (*SceneDescription, error) {
	decoder := json.NewDecoder(reader)
	decoder.DisallowUnknownFields()

	var desc SceneDescription
	if err := decoder.Decode(&desc); err != nil {
		return nil, fmt.Errorf("failed to decode scene: %w", err)
	}

	if err := desc.validate(); err != nil {
		return nil, err
	}
	return &desc, nil
}

// LoadSceneJSON loads a scene description from a file. A missing name
// defaults to the file name without extension.
func LoadSceneJSON(filename string) (*SceneDescription, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open scene file: %w", err)
	}
	defer file.Close()

	desc, err := ParseSceneJSON(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}

	if desc.Name == "" {
		base := filepath.Base(filename)
		desc.Name = strings.TrimSuffix(base, filepath.Ext(base))
	}
	return desc, nil
}

func (d *SceneDescription) validate() error {
	if d.Width < 0 || d.Height < 0 {
		return fmt.Errorf("%w: negative dimensions %dx%d", ErrInvalidSceneFile, d.Width, d.Height)
	}

	cam := d.Camera
	if cam.HasCorners() && (cam.LowerLeft == nil || cam.Horizontal == nil || cam.Vertical == nil) {
		return fmt.Errorf("%w: camera needs all of lowerLeft, horizontal and vertical", ErrInvalidSceneFile)
	}
	if cam.HasCorners() && (cam.AspectRatio != 0 || cam.ViewportHeight != 0 || cam.FocalLength != 0) {
		return fmt.Errorf("%w: camera mixes viewport corners with aspectRatio/viewportHeight/focalLength", ErrInvalidSceneFile)
	}
	if cam.HasCorners() && (cam.Horizontal.Vec3().NearZero(minViewportExtent) || cam.Vertical.Vec3().NearZero(minViewportExtent)) {
		return fmt.Errorf("%w: camera horizontal and vertical must be non-zero", ErrInvalidSceneFile)
	}
	if cam.AspectRatio < 0 || cam.ViewportHeight < 0 || cam.FocalLength < 0 {
		return fmt.Errorf("%w: negative camera parameter", ErrInvalidSceneFile)
	}

	// Radii are checked when the spheres are built
	return nil
}
