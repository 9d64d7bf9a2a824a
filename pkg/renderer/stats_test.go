package renderer

import (
	"math"
	"testing"

	"github.com/df07/go-sphere-raytracer/pkg/core"
)

func TestRenderStats_Merge(t *testing.T) {
	stats := RenderStats{Workers: 4}
	stats.Merge(RenderStats{TotalPixels: 10, Hits: 4, Misses: 6, DegenerateRays: 1, Tiles: 1, Workers: 99})
	stats.Merge(RenderStats{TotalPixels: 6, Hits: 6, Tiles: 1})

	expected := RenderStats{TotalPixels: 16, Hits: 10, Misses: 6, DegenerateRays: 1, Tiles: 2, Workers: 4}
	if stats != expected {
		t.Errorf("Expected %+v, got %+v", expected, stats)
	}
	if math.Abs(stats.HitRatio()-10.0/16.0) > 1e-12 {
		t.Errorf("Expected hit ratio %f, got %f", 10.0/16.0, stats.HitRatio())
	}
	if (RenderStats{}).HitRatio() != 0 {
		t.Error("Expected zero hit ratio for empty stats")
	}
}

func TestCalculateAverageLuminance(t *testing.T) {
	// Red, green, blue, black: (0.2126 + 0.7152 + 0.0722 + 0) / 4 = 0.25
	img := NewImage(2, 2)
	img.Set(0, 0, core.Color{R: 255})
	img.Set(1, 0, core.Color{G: 255})
	img.Set(0, 1, core.Color{B: 255})

	avgLum := CalculateAverageLuminance(img)
	if math.Abs(avgLum-0.25) > 0.0001 {
		t.Errorf("Expected average luminance 0.25, got %f", avgLum)
	}
}

func TestCalculateAverageLuminance_White(t *testing.T) {
	img := NewImage(1, 1)
	img.Set(0, 0, core.Color{R: 255, G: 255, B: 255})

	if avgLum := CalculateAverageLuminance(img); math.Abs(avgLum-1.0) > 0.0001 {
		t.Errorf("Expected average luminance 1.0, got %f", avgLum)
	}
	if avgLum := CalculateAverageLuminance(NewImage(0, 0)); avgLum != 0 {
		t.Errorf("Expected 0 for empty image, got %f", avgLum)
	}
}
