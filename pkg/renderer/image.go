package renderer

import (
	"image"

	"github.com/df07/go-sphere-raytracer/pkg/core"
)

// Image is a row-major pixel buffer, top row first
type Image struct {
	Width  int
	Height int
	Pixels []core.Color
}

// NewImage allocates a black image
func NewImage(width, height int) *Image {
	return &Image{
		Width:  width,
		Height: height,
		Pixels: make([]core.Color, width*height),
	}
}

// At returns the pixel at column x, row y
func (img *Image) At(x, y int) core.Color {
	return img.Pixels[y*img.Width+x]
}

// Set writes the pixel at column x, row y
func (img *Image) Set(x, y int, c core.Color) {
	img.Pixels[y*img.Width+x] = c
}

// Row returns row y as a slice sharing the image's storage
func (img *Image) Row(y int) []core.Color {
	return img.Pixels[y*img.Width : (y+1)*img.Width]
}

// Bounds returns the image rectangle
func (img *Image) Bounds() image.Rectangle {
	return image.Rect(0, 0, img.Width, img.Height)
}

// ToRGBA converts to a standard library image
func (img *Image) ToRGBA() *image.RGBA {
	rgba := image.NewRGBA(img.Bounds())
	for y := 0; y < img.Height; y++ {
		for x, c := range img.Row(y) {
			rgba.SetRGBA(x, y, c.ToRGBA())
		}
	}
	return rgba
}
