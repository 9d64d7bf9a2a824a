package scene

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/df07/go-sphere-raytracer/pkg/core"
	"github.com/df07/go-sphere-raytracer/pkg/geometry"
	"github.com/df07/go-sphere-raytracer/pkg/loaders"
	"github.com/df07/go-sphere-raytracer/pkg/renderer"
)

func writeSceneFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write %s: %v", path, err)
	}
	return path
}

func TestFromDescription_MatchesDefaultScene(t *testing.T) {
	input := `{
		"name": "original",
		"width": 1200,
		"height": 600,
		"camera": {"lowerLeft": [-2, -1, -1], "horizontal": [4, 0, 0], "vertical": [0, 2, 0]},
		"spheres": [{"center": [0, 0, -2], "radius": 0.5}]
	}`
	desc, err := loaders.ParseSceneJSON(strings.NewReader(input))
	if err != nil {
		t.Fatal(err)
	}

	s, err := FromDescription(desc)
	if err != nil {
		t.Fatalf("FromDescription failed: %v", err)
	}

	expected := NewDefaultScene()
	for _, uv := range [][2]float64{{0, 0}, {0.5, 0.5}, {1, 1}, {0.25, 0.75}} {
		got := s.Camera.GetRay(uv[0], uv[1])
		want := expected.Camera.GetRay(uv[0], uv[1])
		if got != want {
			t.Errorf("GetRay(%v): expected %v, got %v", uv, want, got)
		}
	}
	if len(s.GetShapes()) != 1 {
		t.Errorf("Expected 1 sphere, got %d", len(s.GetShapes()))
	}
}

func TestFromDescription_Defaults(t *testing.T) {
	desc, err := loaders.ParseSceneJSON(strings.NewReader(`{"name": "bare", "spheres": []}`))
	if err != nil {
		t.Fatal(err)
	}

	s, err := FromDescription(desc)
	if err != nil {
		t.Fatalf("FromDescription failed: %v", err)
	}
	if s.Width != 400 || s.Height != 200 {
		t.Errorf("Expected default 400x200, got %dx%d", s.Width, s.Height)
	}

	want := renderer.NewCamera(renderer.DefaultCameraConfig()).GetRay(0.5, 0.5)
	if got := s.Camera.GetRay(0.5, 0.5); got != want {
		t.Errorf("Expected default camera ray %v, got %v", want, got)
	}
}

func TestFromDescription_Background(t *testing.T) {
	desc, err := loaders.ParseSceneJSON(strings.NewReader(
		`{"background": {"top": [0, 0, 1], "bottom": [1, 0, 0]}, "spheres": []}`))
	if err != nil {
		t.Fatal(err)
	}
	s, err := FromDescription(desc)
	if err != nil {
		t.Fatal(err)
	}

	top, bottom := s.GetBackgroundColors()
	if top != core.NewVec3(0, 0, 1) || bottom != core.NewVec3(1, 0, 0) {
		t.Errorf("Unexpected background %v %v", top, bottom)
	}
}

func TestFromDescription_InvalidSphere(t *testing.T) {
	desc, err := loaders.ParseSceneJSON(strings.NewReader(
		`{"spheres": [{"center": [0, 0, -1], "radius": 0.5}, {"center": [0, 0, -1], "radius": -2}]}`))
	if err != nil {
		t.Fatal(err)
	}

	_, err = FromDescription(desc)
	if !errors.Is(err, geometry.ErrInvalidRadius) {
		t.Fatalf("Expected ErrInvalidRadius, got %v", err)
	}
	if !strings.Contains(err.Error(), "sphere 1") {
		t.Errorf("Expected error to name the sphere index, got %v", err)
	}
}

func TestNewJSONScene(t *testing.T) {
	path := writeSceneFile(t, t.TempDir(), "pair.json",
		`{"width": 40, "height": 20, "spheres": [{"center": [0,0,-1], "radius": 0.5}, {"center": [1,0,-1], "radius": 0.25}]}`)

	s, err := NewJSONScene(path)
	if err != nil {
		t.Fatalf("NewJSONScene failed: %v", err)
	}
	if s.Name != "pair" {
		t.Errorf("Expected name 'pair', got %q", s.Name)
	}
	if s.Width != 40 || s.Height != 20 || len(s.GetShapes()) != 2 {
		t.Errorf("Unexpected scene %dx%d with %d shapes", s.Width, s.Height, len(s.GetShapes()))
	}
}
