package output

import (
	"bufio"
	"fmt"
	"io"

	"github.com/df07/go-sphere-raytracer/pkg/renderer"
)

// WritePPM writes img as a plain-text PPM: a "P3" header, then one "R G B"
// line per pixel, top row first
func WritePPM(w io.Writer, img *renderer.Image) error {
	bw := bufio.NewWriter(w)

	if _, err := fmt.Fprintf(bw, "P3\n%d %d\n255\n", img.Width, img.Height); err != nil {
		return fmt.Errorf("failed to write PPM header: %w", err)
	}
	for _, c := range img.Pixels {
		if _, err := fmt.Fprintln(bw, c); err != nil {
			return fmt.Errorf("failed to write PPM pixel: %w", err)
		}
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to write PPM: %w", err)
	}
	return nil
}
