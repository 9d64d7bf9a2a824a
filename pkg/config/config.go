package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/df07/go-sphere-raytracer/pkg/output"
)

// Environment keys
const (
	KeyScene     = "RAYTRACER_SCENE"
	KeyWidth     = "RAYTRACER_WIDTH"
	KeyHeight    = "RAYTRACER_HEIGHT"
	KeyWorkers   = "RAYTRACER_WORKERS"
	KeyTileSize  = "RAYTRACER_TILE_SIZE"
	KeyOutputDir = "RAYTRACER_OUTPUT_DIR"
	KeyPort      = "RAYTRACER_PORT"

	KeyS3AccessKey = "S3_ACCESS_KEY"
	KeyS3SecretKey = "S3_SECRET_KEY"
	KeyS3Endpoint  = "S3_ENDPOINT"
	KeyS3Region    = "S3_REGION"
	KeyS3Bucket    = "S3_BUCKET"
)

// Config holds settings shared by the CLI and the web server. Zero Width or
// Height means "use the scene's own size".
type Config struct {
	Scene     string
	Width     int
	Height    int
	Workers   int
	TileSize  int
	OutputDir string
	Port      int
	S3        output.S3Config
}

// Default returns the configuration used when nothing is set
func Default() Config {
	return Config{
		Scene:     "default",
		Workers:   1, // Sequential; 0 = CPU count
		TileSize:  32,
		OutputDir: "output",
		Port:      8080,
	}
}

// Load reads envFile (if it exists) and the process environment, which takes
// precedence over the file. An empty envFile reads the environment only.
func Load(envFile string) (Config, error) {
	values := map[string]string{}
	if envFile != "" {
		fileValues, err := godotenv.Read(envFile)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("failed to read %s: %w", envFile, err)
		}
		for k, v := range fileValues {
			values[k] = v
		}
	}

	return FromLookup(func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok {
			return v, true
		}
		v, ok := values[key]
		return v, ok
	})
}

// FromLookup builds a configuration from a key lookup function
func FromLookup(lookup func(string) (string, bool)) (Config, error) {
	cfg := Default()

	if v, ok := lookup(KeyScene); ok && v != "" {
		cfg.Scene = v
	}
	if v, ok := lookup(KeyOutputDir); ok && v != "" {
		cfg.OutputDir = v
	}

	ints := []struct {
		key string
		dst *int
		min int
	}{
		{KeyWidth, &cfg.Width, 0},
		{KeyHeight, &cfg.Height, 0},
		{KeyWorkers, &cfg.Workers, 0},
		{KeyTileSize, &cfg.TileSize, 1},
		{KeyPort, &cfg.Port, 1},
	}
	for _, field := range ints {
		v, ok := lookup(field.key)
		if !ok || v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("%s: %w", field.key, err)
		}
		if n < field.min {
			return Config{}, fmt.Errorf("%s must be at least %d, got %d", field.key, field.min, n)
		}
		*field.dst = n
	}

	cfg.S3 = output.S3Config{
		AccessKey: lookupString(lookup, KeyS3AccessKey),
		SecretKey: lookupString(lookup, KeyS3SecretKey),
		Endpoint:  lookupString(lookup, KeyS3Endpoint),
		Region:    lookupString(lookup, KeyS3Region),
		Bucket:    lookupString(lookup, KeyS3Bucket),
	}

	return cfg, nil
}

func lookupString(lookup func(string) (string, bool), key string) string {
	v, _ := lookup(key)
	return v
}

// UploadEnabled reports whether an S3 bucket is configured
func (c Config) UploadEnabled() bool {
	return c.S3.Bucket != ""
}
