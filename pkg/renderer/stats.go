package renderer

import "time"

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	TotalPixels    int           // Total number of pixels rendered
	Hits           int           // Pixels whose ray hit a shape
	Misses         int           // Pixels shaded with the background
	DegenerateRays int           // Rays with zero direction (counted in Misses too)
	Tiles          int           // Tiles rendered
	Workers        int           // Worker goroutines used
	Duration       time.Duration // Wall time of the render
}

// Merge adds the per-pixel and per-tile counters of other into s
func (s *RenderStats) Merge(other RenderStats) {
	s.TotalPixels += other.TotalPixels
	s.Hits += other.Hits
	s.Misses += other.Misses
	s.DegenerateRays += other.DegenerateRays
	s.Tiles += other.Tiles
}

// HitRatio returns the fraction of pixels that hit geometry
func (s RenderStats) HitRatio() float64 {
	if s.TotalPixels == 0 {
		return 0
	}
	return float64(s.Hits) / float64(s.TotalPixels)
}

// CalculateAverageLuminance returns the mean Rec. 709 luminance of an image in [0, 1]
func CalculateAverageLuminance(img *Image) float64 {
	if len(img.Pixels) == 0 {
		return 0
	}
	var total float64
	for _, c := range img.Pixels {
		total += 0.2126*float64(c.R)/255 + 0.7152*float64(c.G)/255 + 0.0722*float64(c.B)/255
	}
	return total / float64(len(img.Pixels))
}
