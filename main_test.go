package main

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/df07/go-sphere-raytracer/pkg/config"
	"github.com/df07/go-sphere-raytracer/pkg/output"
	"github.com/df07/go-sphere-raytracer/pkg/scene"
)

// silentLogger discards log output
type silentLogger struct{}

func (silentLogger) Printf(string, ...interface{}) {}

func TestCreateScene(t *testing.T) {
	tests := []struct {
		name        string
		sceneType   string
		expectError bool
	}{
		// Built-in scenes
		{"default scene", "default", false},
		{"two-spheres scene", "two-spheres", false},
		{"spheregrid scene", "spheregrid", false},

		// Scene files (by ID and by path)
		{"scene file by ID", "json:original", false},
		{"scene file by path", "scenes/three-spheres.json", false},

		// Invalid scenes
		{"unknown scene", "nonexistent", true},
		{"invalid scene path", "scenes/nonexistent.json", true},
		{"empty scene name", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := createScene(tt.sceneType)

			if tt.expectError {
				if err == nil {
					t.Errorf("Expected error for scene type '%s', but got none", tt.sceneType)
				}
				if s != nil {
					t.Errorf("Expected nil scene for invalid scene type '%s'", tt.sceneType)
				}
				return
			}

			if err != nil {
				t.Fatalf("Unexpected error for scene type '%s': %v", tt.sceneType, err)
			}
			if s.Width <= 0 || s.Height <= 0 {
				t.Errorf("Scene dimensions should be positive, got %dx%d", s.Width, s.Height)
			}
			if len(s.GetShapes()) == 0 {
				t.Error("Expected shapes in scene")
			}
		})
	}
}

func TestSceneFileMatchesDefaultScene(t *testing.T) {
	fromFile, err := createScene("scenes/original.json")
	if err != nil {
		t.Fatal(err)
	}
	builtIn := scene.NewDefaultScene()

	if fromFile.Width != builtIn.Width || fromFile.Height != builtIn.Height {
		t.Errorf("Expected %dx%d, got %dx%d", builtIn.Width, builtIn.Height, fromFile.Width, fromFile.Height)
	}
	if got, want := fromFile.Camera.GetRay(0.25, 0.75), builtIn.Camera.GetRay(0.25, 0.75); got != want {
		t.Errorf("Expected ray %v, got %v", want, got)
	}
}

func TestCreateOutputDir(t *testing.T) {
	baseDir := t.TempDir()

	tests := []struct {
		sceneName string
		expected  string
	}{
		{"default", "default"},
		{"two-spheres", "two-spheres"},
		{"scenes/my scene.json", "scenes_my_scene_json"},
		{"", "scene"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			dir, err := createOutputDir(baseDir, tt.sceneName)
			if err != nil {
				t.Fatalf("createOutputDir failed: %v", err)
			}
			if dir != filepath.Join(baseDir, tt.expected) {
				t.Errorf("Expected %s, got %s", filepath.Join(baseDir, tt.expected), dir)
			}
			if info, err := os.Stat(dir); err != nil || !info.IsDir() {
				t.Errorf("Expected directory %s to exist", dir)
			}
		})
	}
}

func TestTimestampedFilename(t *testing.T) {
	ts := time.Date(2024, 3, 5, 14, 7, 9, 0, time.UTC)
	got := timestampedFilename("out", "render", ts, output.FormatPPM)
	if got != filepath.Join("out", "render_20240305_140709.ppm") {
		t.Errorf("Unexpected filename %s", got)
	}
}

func TestRenderSceneOverrides(t *testing.T) {
	s, err := createScene("default")
	if err != nil {
		t.Fatal(err)
	}

	cfg := config.Default()
	cfg.Width = 8
	cfg.Height = 4
	cfg.Workers = 2
	cfg.TileSize = 3

	img, stats, err := renderScene(context.Background(), s, cfg, silentLogger{})
	if err != nil {
		t.Fatalf("renderScene failed: %v", err)
	}
	if img.Width != 8 || img.Height != 4 {
		t.Errorf("Expected 8x4 image, got %dx%d", img.Width, img.Height)
	}
	if stats.Workers != 2 || stats.Tiles != 6 {
		t.Errorf("Expected 2 workers and 6 tiles, got %+v", stats)
	}
}

func TestRun_WritesPPM(t *testing.T) {
	outputDir := t.TempDir()
	cfg := config.Default()
	cfg.Width = 5
	cfg.Height = 3
	cfg.Workers = 1
	cfg.OutputDir = outputDir

	opts := options{Config: cfg, Format: "ppm", Thumbnail: 2}
	if err := run(context.Background(), opts, silentLogger{}); err != nil {
		t.Fatalf("run failed: %v", err)
	}

	renders, err := filepath.Glob(filepath.Join(outputDir, "default", "render_*.ppm"))
	if err != nil || len(renders) != 1 {
		t.Fatalf("Expected one PPM render, got %v (%v)", renders, err)
	}
	data, err := os.ReadFile(renders[0])
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
	if lines[0] != "P3" || lines[1] != "5 3" || len(lines) != 18 {
		t.Errorf("Unexpected PPM output: %q", lines[:3])
	}
	if lines[3+5+2] != "127 127 255" {
		t.Errorf("Expected center pixel '127 127 255', got %q", lines[3+5+2])
	}

	thumbs, _ := filepath.Glob(filepath.Join(outputDir, "default", "render_*_thumb.png"))
	if len(thumbs) != 1 {
		t.Errorf("Expected a PNG thumbnail, got %v", thumbs)
	}
}

func TestRun_ExplicitOutput(t *testing.T) {
	out := filepath.Join(t.TempDir(), "nested", "image.png")
	cfg := config.Default()
	cfg.Width = 4
	cfg.Height = 2

	if err := run(context.Background(), options{Config: cfg, Format: "png", Out: out}, silentLogger{}); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if _, err := os.Stat(out); err != nil {
		t.Errorf("Expected output at %s: %v", out, err)
	}
}

func TestRun_Errors(t *testing.T) {
	cfg := config.Default()
	cfg.OutputDir = t.TempDir()
	cfg.Width = 4
	cfg.Height = 2

	badFormat := options{Config: cfg, Format: "webp"}
	if err := run(context.Background(), badFormat, silentLogger{}); !errors.Is(err, output.ErrUnsupportedFormat) {
		t.Errorf("Expected ErrUnsupportedFormat, got %v", err)
	}

	unknown := cfg
	unknown.Scene = "nonexistent"
	if err := run(context.Background(), options{Config: unknown, Format: "png"}, silentLogger{}); !errors.Is(err, scene.ErrUnknownScene) {
		t.Errorf("Expected ErrUnknownScene, got %v", err)
	}

	noBucket := options{Config: cfg, Format: "png", Upload: true}
	if err := run(context.Background(), noBucket, silentLogger{}); !errors.Is(err, output.ErrMissingBucket) {
		t.Errorf("Expected ErrMissingBucket, got %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := run(ctx, options{Config: cfg, Format: "png"}, silentLogger{}); !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
}
