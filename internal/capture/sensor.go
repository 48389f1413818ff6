// Package capture provides depth sensor frame delivery for depthmouse.
package capture

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
)

// Default sensor settings
const (
	DefaultWidth  = 640
	DefaultHeight = 480
	DefaultFPS    = 30

	MinTilt = -30
	MaxTilt = 30
)

var (
	// ErrNoDevice is returned when no compatible sensor could be found.
	ErrNoDevice = errors.New("no compatible depth sensor found")
	// ErrOpen is returned when a sensor was found but could not be opened.
	ErrOpen = errors.New("failed to open sensor")
	// ErrNotOpen is returned when running or controlling a sensor that is not open.
	ErrNotOpen = errors.New("sensor is not open")
	// ErrTiltRange is returned for tilt angles outside MinTilt..MaxTilt.
	ErrTiltRange = fmt.Errorf("tilt must be within %d..%d degrees", MinTilt, MaxTilt)
)

// DepthFrame is one raw depth capture. Samples are row-major, Width*Height long.
type DepthFrame struct {
	Width     int
	Height    int
	Samples   []uint16
	Timestamp uint32
}

// At returns the raw sample at pixel (x, y).
func (f DepthFrame) At(x, y int) uint16 {
	return f.Samples[y*f.Width+x]
}

// VideoFrame is one RGB capture, 3 bytes per pixel.
type VideoFrame struct {
	Width     int
	Height    int
	RGB       []byte
	Timestamp uint32
}

// DepthFunc receives depth frames. Frames are delivered one at a time.
type DepthFunc func(frame DepthFrame)

// VideoFunc receives color frames on the same goroutine as depth frames.
type VideoFunc func(frame VideoFrame)

// LEDMode is the sensor indicator light mode.
type LEDMode int

const (
	LEDOff LEDMode = iota
	LEDGreen
	LEDRed
	LEDYellow
	LEDBlinkYellow
	LEDBlinkGreen
	LEDBlinkRedYellow
)

var ledNames = [...]string{
	"LED Off",
	"LED Green",
	"LED Red",
	"LED Yellow",
	"LED Blink Yellow",
	"LED Blink Green",
	"LED Blink Red Yellow",
}

// Valid reports whether m is a known LED mode.
func (m LEDMode) Valid() bool {
	return m >= LEDOff && m <= LEDBlinkRedYellow
}

func (m LEDMode) String() string {
	if !m.Valid() {
		return fmt.Sprintf("LED(%d)", int(m))
	}
	return ledNames[m]
}

// Sensor defines the interface for depth sensor drivers.
type Sensor interface {
	Open() error
	SetLogLevel(level int)
	SetTilt(degrees int) error
	SetLED(mode LEDMode) error
	// Run delivers frames until ctx is cancelled or the source is exhausted.
	// Callbacks are never invoked concurrently.
	Run(ctx context.Context, onDepth DepthFunc, onVideo VideoFunc) error
	Close() error
}

// DriverLevel maps a driver log level (0 fatal, 1 error, 2 warning, 3 notice,
// 4 info, 5 debug, 6 spew, 7 flood) to a slog level.
func DriverLevel(level int) slog.Level {
	switch {
	case level <= 0:
		return slog.LevelError + 4
	case level == 1:
		return slog.LevelError
	case level == 2:
		return slog.LevelWarn
	case level <= 4:
		return slog.LevelInfo
	default:
		return slog.LevelDebug - slog.Level(level-5)
	}
}
