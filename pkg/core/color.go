package core

import (
	"fmt"
	"image/color"
	"math"
)

// Color is an 8-bit per channel RGB color.
// Conversions into Color saturate at 0 and 255 instead of wrapping.
type Color struct {
	R, G, B uint8
}

// channelScale maps 1.0 to 255 while keeping values just below 1.0 out of 256
const channelScale = 255.999

// ColorFromUnit converts a color with channels nominally in [0, 1] to 8 bits.
// Channels outside the range are clamped; NaN becomes 0.
func ColorFromUnit(v Vec3) Color {
	c, _ := ColorFromUnitChecked(v)
	return c
}

// ColorFromUnitChecked is ColorFromUnit that also reports ErrChannelOverflow
// when any channel had to be clamped. The returned color is always usable.
func ColorFromUnitChecked(v Vec3) (Color, error) {
	r, rok := toChannel(v.X)
	g, gok := toChannel(v.Y)
	b, bok := toChannel(v.Z)
	c := Color{R: r, G: g, B: b}
	if !rok || !gok || !bok {
		return c, fmt.Errorf("%w: (%g, %g, %g)", ErrChannelOverflow, v.X, v.Y, v.Z)
	}
	return c, nil
}

func toChannel(x float64) (uint8, bool) {
	switch {
	case math.IsNaN(x):
		return 0, false
	case x < 0:
		return 0, false
	case x > 1:
		return 255, false
	}
	return uint8(channelScale * x), true
}

// ToRGBA converts to an opaque image/color value
func (c Color) ToRGBA() color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 255}
}

// String formats the color as an "R G B" triple
func (c Color) String() string {
	return fmt.Sprintf("%d %d %d", c.R, c.G, c.B)
}
