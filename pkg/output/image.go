package output

import (
	"errors"
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/nfnt/resize"

	"github.com/df07/go-sphere-raytracer/pkg/renderer"
)

// ErrUnsupportedFormat is returned for file extensions with no encoder
var ErrUnsupportedFormat = errors.New("unsupported image format")

// Format is an output encoding, named by its file extension
type Format string

const (
	FormatPPM  Format = "ppm"
	FormatPNG  Format = "png"
	FormatJPEG Format = "jpg"
	FormatGIF  Format = "gif"
	FormatTIFF Format = "tif"
	FormatBMP  Format = "bmp"
)

// ParseFormat accepts a format name or file extension, with or without the dot
func ParseFormat(name string) (Format, error) {
	ext := strings.ToLower(strings.TrimPrefix(name, "."))
	if ext == string(FormatPPM) {
		return FormatPPM, nil
	}

	f, err := imaging.FormatFromExtension(ext)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, name)
	}
	switch f {
	case imaging.PNG:
		return FormatPNG, nil
	case imaging.JPEG:
		return FormatJPEG, nil
	case imaging.GIF:
		return FormatGIF, nil
	case imaging.TIFF:
		return FormatTIFF, nil
	case imaging.BMP:
		return FormatBMP, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, name)
}

// ContentType returns the MIME type for the format
func (f Format) ContentType() string {
	switch f {
	case FormatPPM:
		return "image/x-portable-pixmap"
	case FormatPNG:
		return "image/png"
	case FormatJPEG:
		return "image/jpeg"
	case FormatGIF:
		return "image/gif"
	case FormatTIFF:
		return "image/tiff"
	case FormatBMP:
		return "image/bmp"
	}
	return "application/octet-stream"
}

// Encode writes img to w in the given format
func Encode(w io.Writer, img *renderer.Image, format Format) error {
	if format == FormatPPM {
		return WritePPM(w, img)
	}

	f, err := imaging.FormatFromExtension(string(format))
	if err != nil {
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	if err := imaging.Encode(w, img.ToRGBA(), f, imaging.JPEGQuality(95)); err != nil {
		return fmt.Errorf("failed to encode %s: %w", format, err)
	}
	return nil
}

// SaveImage writes img to filename, choosing the format from its extension
func SaveImage(filename string, img *renderer.Image) error {
	format, err := ParseFormat(filepath.Ext(filename))
	if err != nil {
		return err
	}

	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}

	if err := Encode(file, img, format); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

// Thumbnail scales img down to fit within maxSize x maxSize, keeping its
// aspect ratio. Images that already fit are returned unscaled.
func Thumbnail(img *renderer.Image, maxSize uint) image.Image {
	rgba := img.ToRGBA()
	if maxSize == 0 || (uint(img.Width) <= maxSize && uint(img.Height) <= maxSize) {
		return rgba
	}
	return resize.Thumbnail(maxSize, maxSize, rgba, resize.Bilinear)
}

// SaveThumbnail writes a thumbnail of img to filename, choosing the format
// from its extension
func SaveThumbnail(filename string, img *renderer.Image, maxSize uint) error {
	format, err := ParseFormat(filepath.Ext(filename))
	if err != nil {
		return err
	}
	if format == FormatPPM {
		return fmt.Errorf("%w: thumbnails are not written as PPM", ErrUnsupportedFormat)
	}

	f, err := imaging.FormatFromExtension(string(format))
	if err != nil {
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}

	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create thumbnail file: %w", err)
	}
	if err := imaging.Encode(file, Thumbnail(img, maxSize), f); err != nil {
		file.Close()
		return fmt.Errorf("failed to encode thumbnail: %w", err)
	}
	return file.Close()
}
