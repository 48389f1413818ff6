// Package detector finds the near blob in a depth frame.
package detector

import "image"

// Config holds configuration options for blob detection.
type Config struct {
	// Width and Height are the depth frame dimensions the distance grid is built for.
	Width  int
	Height int

	// NearThreshold is the calibrated depth below which a pixel is near.
	NearThreshold int

	// FarThreshold is the calibrated depth at or above which a pixel is far.
	FarThreshold int

	// Reference is the point the farthest near pixel is measured from.
	Reference image.Point
}

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() Config {
	return Config{
		Width:         640,
		Height:        480,
		NearThreshold: 500,
		FarThreshold:  800,
		Reference:     image.Pt(320, 240),
	}
}
