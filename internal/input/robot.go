package input

import (
	"image"

	"github.com/go-vgo/robotgo"
)

// RobotInjector drives the pointer through robotgo.
type RobotInjector struct{}

// NewRobotInjector returns an injector for the current display. It fails
// when the display reports no usable size.
func NewRobotInjector() (*RobotInjector, error) {
	r := &RobotInjector{}
	if w, h := r.ScreenSize(); w <= 0 || h <= 0 {
		return nil, ErrNoDisplay
	}
	return r, nil
}

func (r *RobotInjector) Move(p image.Point) error {
	robotgo.Move(p.X, p.Y)
	return nil
}

func (r *RobotInjector) Click(p image.Point) error {
	robotgo.Move(p.X, p.Y)
	robotgo.Click("left")
	return nil
}

func (r *RobotInjector) ScreenSize() (int, int) {
	return robotgo.GetScreenSize()
}
