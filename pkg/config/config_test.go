package config

import (
	"os"
	"path/filepath"
	"testing"
)

func mapLookup(m map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := m[key]
		return v, ok
	}
}

func TestFromLookup_Defaults(t *testing.T) {
	cfg, err := FromLookup(mapLookup(nil))
	if err != nil {
		t.Fatalf("FromLookup failed: %v", err)
	}
	if cfg != Default() {
		t.Errorf("Expected defaults %+v, got %+v", Default(), cfg)
	}
	if cfg.UploadEnabled() {
		t.Error("Expected uploads disabled without a bucket")
	}
}

func TestFromLookup_Values(t *testing.T) {
	cfg, err := FromLookup(mapLookup(map[string]string{
		KeyScene:     "two-spheres",
		KeyWidth:     "320",
		KeyHeight:    "160",
		KeyWorkers:   "4",
		KeyTileSize:  "16",
		KeyOutputDir: "/tmp/renders",
		KeyPort:      "9090",
		KeyS3Bucket:  "renders",
		KeyS3Region:  "eu-west-1",
	}))
	if err != nil {
		t.Fatalf("FromLookup failed: %v", err)
	}

	if cfg.Scene != "two-spheres" || cfg.Width != 320 || cfg.Height != 160 {
		t.Errorf("Unexpected scene settings: %+v", cfg)
	}
	if cfg.Workers != 4 || cfg.TileSize != 16 || cfg.Port != 9090 {
		t.Errorf("Unexpected render settings: %+v", cfg)
	}
	if cfg.OutputDir != "/tmp/renders" {
		t.Errorf("Expected output dir /tmp/renders, got %q", cfg.OutputDir)
	}
	if !cfg.UploadEnabled() || cfg.S3.Region != "eu-west-1" {
		t.Errorf("Unexpected S3 settings: %+v", cfg.S3)
	}
}

func TestFromLookup_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"non-numeric width", map[string]string{KeyWidth: "wide"}},
		{"negative workers", map[string]string{KeyWorkers: "-1"}},
		{"zero tile size", map[string]string{KeyTileSize: "0"}},
		{"zero port", map[string]string{KeyPort: "0"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := FromLookup(mapLookup(tt.env)); err == nil {
				t.Error("Expected error")
			}
		})
	}
}

func TestLoad_EnvFile(t *testing.T) {
	envFile := filepath.Join(t.TempDir(), ".env")
	content := "RAYTRACER_SCENE=spheregrid\nRAYTRACER_WIDTH=64\nS3_BUCKET=from-file\n"
	if err := os.WriteFile(envFile, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	// Process environment wins over the file
	t.Setenv(KeyWidth, "128")

	cfg, err := Load(envFile)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Scene != "spheregrid" {
		t.Errorf("Expected scene from file, got %q", cfg.Scene)
	}
	if cfg.Width != 128 {
		t.Errorf("Expected width from environment, got %d", cfg.Width)
	}
	if cfg.S3.Bucket != "from-file" {
		t.Errorf("Expected bucket from file, got %q", cfg.S3.Bucket)
	}
}

func TestLoad_MissingFileIgnored(t *testing.T) {
	t.Setenv(KeyScene, "two-spheres")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	if err != nil {
		t.Fatalf("Expected missing env file to be ignored, got %v", err)
	}
	if cfg.Scene != "two-spheres" {
		t.Errorf("Expected scene from environment, got %q", cfg.Scene)
	}
}
