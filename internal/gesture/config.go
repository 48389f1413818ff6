// Package gesture turns per-frame blob statistics into pointer moves, dwell
// clicks and directional swipes.
package gesture

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig is returned by Config.Validate.
var ErrInvalidConfig = errors.New("invalid gesture config")

// Config holds the tuning parameters of the gesture pipeline.
type Config struct {
	// TooClose is the near pixel count above which the subject is too close.
	TooClose int
	// TooFarOrNoise is the near pixel count below which the blob is noise.
	TooFarOrNoise int

	FrameWidth  int
	FrameHeight int
	// Margin is subtracted from the frame size when rescaling to the screen.
	Margin       int
	ScreenWidth  int
	ScreenHeight int

	// ClickArea is the half-width of the hover box in screen pixels.
	ClickArea int
	// HoverThreshold is the number of hover frames that triggers a click.
	HoverThreshold int

	MinStrokePoints int
	MaxStrokePoints int
	HDevMax         int
	VDevMax         int

	// EmitNone reports strokes that classify as no swipe.
	EmitNone bool
}

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() Config {
	return Config{
		TooClose:        15000,
		TooFarOrNoise:   500,
		FrameWidth:      640,
		FrameHeight:     480,
		Margin:          10,
		ScreenWidth:     1920,
		ScreenHeight:    1080,
		ClickArea:       20,
		HoverThreshold:  15,
		MinStrokePoints: 5,
		MaxStrokePoints: 60,
		HDevMax:         100,
		VDevMax:         100,
	}
}

// Validate checks the relations between parameters.
func (c Config) Validate() error {
	switch {
	case c.TooFarOrNoise < 0 || c.TooFarOrNoise >= c.TooClose:
		return fmt.Errorf("%w: too-far count %d must be below too-close count %d", ErrInvalidConfig, c.TooFarOrNoise, c.TooClose)
	case c.FrameWidth <= c.Margin || c.FrameHeight <= c.Margin:
		return fmt.Errorf("%w: margin %d exceeds frame %dx%d", ErrInvalidConfig, c.Margin, c.FrameWidth, c.FrameHeight)
	case c.ScreenWidth <= 0 || c.ScreenHeight <= 0:
		return fmt.Errorf("%w: screen size %dx%d", ErrInvalidConfig, c.ScreenWidth, c.ScreenHeight)
	case c.ClickArea < 0 || c.HoverThreshold < 0:
		return fmt.Errorf("%w: click area and hover threshold must not be negative", ErrInvalidConfig)
	case c.MinStrokePoints < 0 || c.MinStrokePoints >= c.MaxStrokePoints:
		return fmt.Errorf("%w: minimum stroke points %d must be below maximum %d", ErrInvalidConfig, c.MinStrokePoints, c.MaxStrokePoints)
	case c.MaxStrokePoints > StrokeCapacity:
		return fmt.Errorf("%w: maximum stroke points %d exceeds capacity %d", ErrInvalidConfig, c.MaxStrokePoints, StrokeCapacity)
	}
	return nil
}
