package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/df07/go-sphere-raytracer/pkg/config"
	"github.com/df07/go-sphere-raytracer/pkg/core"
	"github.com/df07/go-sphere-raytracer/pkg/output"
	"github.com/df07/go-sphere-raytracer/pkg/renderer"
	"github.com/df07/go-sphere-raytracer/pkg/scene"
)

// options are the command line settings after merging with the environment
type options struct {
	config.Config
	Format    string
	Out       string
	Thumbnail uint
	Upload    bool
}

func main() {
	// Parse command line flags
	envFile := flag.String("env", ".env", "Environment file to read settings from")
	sceneType := flag.String("scene", "", "Scene: a built-in name, json:<name> or a path to a .json scene file")
	width := flag.Int("width", 0, "Image width (default: scene width)")
	height := flag.Int("height", 0, "Image height (default: scene height)")
	workers := flag.Int("workers", 0, "Number of parallel workers (1 = sequential, 0 = CPU count)")
	tileSize := flag.Int("tile", 0, "Tile size in pixels")
	format := flag.String("format", "png", "Output format: ppm, png, jpg, gif, tif or bmp")
	out := flag.String("out", "", "Output file (default: <output dir>/<scene>/render_<timestamp>.<format>)")
	thumbnail := flag.Uint("thumbnail", 0, "Also write a thumbnail no larger than this many pixels")
	upload := flag.Bool("upload", false, "Upload the render to the configured S3 bucket")
	help := flag.Bool("help", false, "Show help information")
	flag.Parse()

	// Show help if requested
	if *help {
		showHelp()
		return
	}

	cfg, err := config.Load(*envFile)
	if err != nil {
		fmt.Printf("Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	// Explicit flags win over the environment
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "scene":
			cfg.Scene = *sceneType
		case "width":
			cfg.Width = *width
		case "height":
			cfg.Height = *height
		case "workers":
			cfg.Workers = *workers
		case "tile":
			cfg.TileSize = *tileSize
		}
	})

	opts := options{
		Config:    cfg,
		Format:    *format,
		Out:       *out,
		Thumbnail: *thumbnail,
		Upload:    *upload,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, opts, renderer.NewDefaultLogger()); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}

func showHelp() {
	fmt.Println("Sphere Raytracer")
	fmt.Println("Usage: raytracer [options]")
	fmt.Println()
	fmt.Println("Options:")
	flag.PrintDefaults()
	fmt.Println()
	fmt.Println("Available scenes:")
	for _, name := range scene.ListScenes() {
		fmt.Printf("  %s\n", name)
	}
	if files, err := scene.ListJSONScenes(); err == nil {
		for _, info := range files {
			fmt.Printf("  %s - %s\n", info.ID, info.FilePath)
		}
	}
	fmt.Println()
	fmt.Println("Settings can also be given as RAYTRACER_* variables in the environment or the -env file.")
	fmt.Println("Output will be saved to output/<scene>/render_<timestamp>.<format>")
}

// run renders the configured scene and writes (and optionally uploads) the result
func run(ctx context.Context, opts options, logger core.Logger) error {
	format, err := output.ParseFormat(opts.Format)
	if err != nil {
		return err
	}

	s, err := createScene(opts.Scene)
	if err != nil {
		return err
	}
	logger.Printf("Using scene %s\n", s.Name)

	img, stats, err := renderScene(ctx, s, opts.Config, logger)
	if err != nil {
		return fmt.Errorf("render failed: %w", err)
	}
	logger.Printf("Hit ratio: %.1f%%, average luminance: %.3f\n",
		100*stats.HitRatio(), renderer.CalculateAverageLuminance(img))

	filename := opts.Out
	if filename == "" {
		outputDir, err := createOutputDir(opts.OutputDir, s.Name)
		if err != nil {
			return err
		}
		filename = timestampedFilename(outputDir, "render", time.Now(), format)
	} else if err := os.MkdirAll(filepath.Dir(filename), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	if err := writeImage(filename, img, format); err != nil {
		return err
	}
	logger.Printf("Render saved as %s\n", filename)

	if opts.Thumbnail > 0 {
		thumbFormat := format
		if thumbFormat == output.FormatPPM {
			thumbFormat = output.FormatPNG
		}
		ext := filepath.Ext(filename)
		thumbName := strings.TrimSuffix(filename, ext) + "_thumb." + string(thumbFormat)
		if err := output.SaveThumbnail(thumbName, img, opts.Thumbnail); err != nil {
			return err
		}
		logger.Printf("Thumbnail saved as %s\n", thumbName)
	}

	if opts.Upload {
		uploader, err := output.NewS3Uploader(opts.S3, logger)
		if err != nil {
			return err
		}
		key := s.Name + "/" + filepath.Base(filename)
		if err := uploader.UploadImage(ctx, key, img, format); err != nil {
			return err
		}
	}

	return nil
}

// createScene creates a scene from a built-in name or a scene file
func createScene(sceneType string) (*scene.Scene, error) {
	return scene.CreateScene(sceneType)
}

// renderScene renders s using the scene's size unless cfg overrides it
func renderScene(ctx context.Context, s *scene.Scene, cfg config.Config, logger core.Logger) (*renderer.Image, renderer.RenderStats, error) {
	renderConfig := s.RenderConfig()
	if cfg.Width > 0 {
		renderConfig.Width = cfg.Width
	}
	if cfg.Height > 0 {
		renderConfig.Height = cfg.Height
	}
	if cfg.TileSize > 0 {
		renderConfig.TileSize = cfg.TileSize
	}
	renderConfig.NumWorkers = cfg.Workers

	logger.Printf("Rendering %dx%d with tile size %d\n", renderConfig.Width, renderConfig.Height, renderConfig.TileSize)
	raytracer := renderer.NewRaytracer(s, renderConfig, logger)
	return raytracer.Render(ctx)
}

// createOutputDir creates <baseDir>/<scene name>
func createOutputDir(baseDir, sceneName string) (string, error) {
	outputDir := filepath.Join(baseDir, sanitizeName(sceneName))
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}
	return outputDir, nil
}

// sanitizeName makes a scene name safe to use as a directory name
func sanitizeName(name string) string {
	name = strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '.', ' ':
			return '_'
		}
		return r
	}, name)
	if name == "" {
		return "scene"
	}
	return name
}

func timestampedFilename(dir, prefix string, t time.Time, format output.Format) string {
	return filepath.Join(dir, fmt.Sprintf("%s_%s.%s", prefix, t.Format("20060102_150405"), format))
}

func writeImage(filename string, img *renderer.Image, format output.Format) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	if err := output.Encode(file, img, format); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}
