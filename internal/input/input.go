// Package input injects synthetic pointer events into the desktop session.
package input

import (
	"errors"
	"image"
)

// ErrNoDisplay is returned when no screen is available to inject into.
var ErrNoDisplay = errors.New("no display available")

// Injector moves and clicks the system pointer.
type Injector interface {
	// Move places the pointer at absolute screen coordinates.
	Move(p image.Point) error
	// Click presses and releases the left button at p.
	Click(p image.Point) error
	// ScreenSize returns the primary screen dimensions.
	ScreenSize() (width, height int)
}
