package main

import (
	"flag"
	"log"
	"os"

	"github.com/df07/go-sphere-raytracer/pkg/config"
	"github.com/df07/go-sphere-raytracer/pkg/output"
	"github.com/df07/go-sphere-raytracer/pkg/renderer"
	"github.com/df07/go-sphere-raytracer/web/server"
)

func main() {
	// Parse command line flags
	envFile := flag.String("env", ".env", "Environment file to read settings from")
	port := flag.Int("port", 0, "Port to serve on (default: RAYTRACER_PORT or 8080)")
	flag.Parse()

	cfg, err := config.Load(*envFile)
	if err != nil {
		log.Printf("Error loading configuration: %v", err)
		os.Exit(1)
	}
	if *port > 0 {
		cfg.Port = *port
	}

	var uploader server.ImageUploader
	if cfg.UploadEnabled() {
		s3Uploader, err := output.NewS3Uploader(cfg.S3, renderer.NewDefaultLogger())
		if err != nil {
			log.Printf("Error creating S3 uploader: %v", err)
			os.Exit(1)
		}
		uploader = s3Uploader
	}

	// Create and start web server
	webServer := server.NewServer(cfg, uploader)

	log.Printf("Sphere Raytracer Web Server")
	log.Printf("Visit http://localhost:%d/api/scenes to list scenes", cfg.Port)

	if err := webServer.Start(); err != nil {
		log.Printf("Error starting server: %v", err)
		os.Exit(1)
	}
}
