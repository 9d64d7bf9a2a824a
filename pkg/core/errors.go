package core

import "errors"

var (
	// ErrDegenerateVector is returned when a unit vector is requested for a zero-length vector
	ErrDegenerateVector = errors.New("degenerate vector: zero length")

	// ErrDegenerateRay is returned for a ray whose direction is the zero vector
	ErrDegenerateRay = errors.New("degenerate ray: zero direction")

	// ErrChannelOverflow is returned when a color channel falls outside [0, 1] and was clamped
	ErrChannelOverflow = errors.New("color channel out of range")
)
