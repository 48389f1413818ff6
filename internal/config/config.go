// Package config parses the depthmouse command line and environment.
package config

import (
	"errors"
	"fmt"
	"image"
	"io"
	"strconv"
	"strings"

	"github.com/ayusman/depthmouse/internal/capture"
	"github.com/ayusman/depthmouse/internal/detector"
	"github.com/ayusman/depthmouse/internal/gesture"
	"github.com/ayusman/depthmouse/internal/notify"
)

// NumArgs is the number of positional parameters.
const NumArgs = 24

var (
	// ErrArgCount is returned when the number of parameters is wrong.
	ErrArgCount = errors.New("wrong number of parameters")
	// ErrInvalid is returned for a parameter that is not a valid value.
	ErrInvalid = errors.New("invalid parameter")
)

// Config is the tracking configuration given on the command line.
type Config struct {
	TooClose        int
	TooFarOrNoise   int
	SensorLogLevel  int
	ShowScreen      bool
	Tilt            int
	LED             capture.LEDMode
	ClickArea       int
	HoverThreshold  int
	MinStrokePoints int
	MaxStrokePoints int
	HDevMax         int
	VDevMax         int
	NearThreshold   int
	FarThreshold    int
	ReferenceX      int
	ReferenceY      int
	JSONOutput      bool
	OutputStatus    bool
	OutputLog       bool
	OutputClicks    bool
	OutputCoords    bool
	OutputSwipes    bool
	Debug           bool
	DebugStop       bool
}

type param struct {
	name  string
	usage string
	set   func(c *Config, v int)
}

func setBool(dst func(c *Config) *bool) func(*Config, int) {
	return func(c *Config, v int) { *dst(c) = v != 0 }
}

func setInt(dst func(c *Config) *int) func(*Config, int) {
	return func(c *Config, v int) { *dst(c) = v }
}

var params = [NumArgs]param{
	{"too-close", "number of near pixels above which the subject is too close", setInt(func(c *Config) *int { return &c.TooClose })},
	{"too-far", "number of near pixels below which the blob is noise", setInt(func(c *Config) *int { return &c.TooFarOrNoise })},
	{"sensor-log-level", "sensor driver log level, 0 fatal to 7 flood", setInt(func(c *Config) *int { return &c.SensorLogLevel })},
	{"show-screen", "1 serves the depth and color preview", setBool(func(c *Config) *bool { return &c.ShowScreen })},
	{"tilt", "start tilt angle, -30 to 30 degrees", setInt(func(c *Config) *int { return &c.Tilt })},
	{"led", "LED mode, 0 to 6", func(c *Config, v int) { c.LED = capture.LEDMode(v) }},
	{"click-area", "half-width of the area the pointer must stay in to click", setInt(func(c *Config) *int { return &c.ClickArea })},
	{"hover-threshold", "number of steady frames that trigger a click", setInt(func(c *Config) *int { return &c.HoverThreshold })},
	{"min-stroke-points", "minimum number of points evaluated as a stroke", setInt(func(c *Config) *int { return &c.MinStrokePoints })},
	{"max-stroke-points", "maximum number of points evaluated as a stroke", setInt(func(c *Config) *int { return &c.MaxStrokePoints })},
	{"h-dev-max", "horizontal spread ceiling for a swipe", setInt(func(c *Config) *int { return &c.HDevMax })},
	{"v-dev-max", "vertical spread ceiling for a swipe", setInt(func(c *Config) *int { return &c.VDevMax })},
	{"near-threshold", "calibrated depth below which a pixel is near", setInt(func(c *Config) *int { return &c.NearThreshold })},
	{"far-threshold", "calibrated depth at or above which a pixel is far", setInt(func(c *Config) *int { return &c.FarThreshold })},
	{"reference-x", "x of the point the pointer pixel is measured from", setInt(func(c *Config) *int { return &c.ReferenceX })},
	{"reference-y", "y of the point the pointer pixel is measured from", setInt(func(c *Config) *int { return &c.ReferenceY })},
	{"json", "1 writes JSON events to stdout", setBool(func(c *Config) *bool { return &c.JSONOutput })},
	{"output-status", "1 writes sensor status events", setBool(func(c *Config) *bool { return &c.OutputStatus })},
	{"output-log", "1 writes program log events", setBool(func(c *Config) *bool { return &c.OutputLog })},
	{"output-clicks", "1 writes click events", setBool(func(c *Config) *bool { return &c.OutputClicks })},
	{"output-coords", "1 writes coordinate events", setBool(func(c *Config) *bool { return &c.OutputCoords })},
	{"output-swipes", "1 writes swipe events", setBool(func(c *Config) *bool { return &c.OutputSwipes })},
	{"debug", "1 enables verbose debug logging", setBool(func(c *Config) *bool { return &c.Debug })},
	{"debug-stop", "1 waits for enter at every swipe evaluation", setBool(func(c *Config) *bool { return &c.DebugStop })},
}

// Parse reads the positional parameters, program name excluded.
func Parse(args []string) (Config, error) {
	var c Config
	if len(args) != NumArgs {
		return c, fmt.Errorf("%w: %d", ErrArgCount, len(args))
	}

	for i, arg := range args {
		v, err := strconv.Atoi(strings.TrimSpace(arg))
		if err != nil {
			return c, fmt.Errorf("%w: %s (argument %d) %q is not an integer", ErrInvalid, params[i].name, i+1, arg)
		}
		params[i].set(&c, v)
	}

	if err := c.Validate(); err != nil {
		return c, err
	}
	return c, nil
}

// Validate checks ranges and the relations between parameters.
func (c Config) Validate() error {
	switch {
	case c.TooFarOrNoise >= c.TooClose:
		return fmt.Errorf("%w: too-far %d must be below too-close %d", ErrInvalid, c.TooFarOrNoise, c.TooClose)
	case c.TooFarOrNoise < 0:
		return fmt.Errorf("%w: too-far %d is negative", ErrInvalid, c.TooFarOrNoise)
	case c.SensorLogLevel < 0 || c.SensorLogLevel > 7:
		return fmt.Errorf("%w: sensor-log-level %d not in 0..7", ErrInvalid, c.SensorLogLevel)
	case c.Tilt < capture.MinTilt || c.Tilt > capture.MaxTilt:
		return fmt.Errorf("%w: tilt %d not in %d..%d", ErrInvalid, c.Tilt, capture.MinTilt, capture.MaxTilt)
	case !c.LED.Valid():
		return fmt.Errorf("%w: led %d not in 0..6", ErrInvalid, int(c.LED))
	case c.ClickArea < 0 || c.HoverThreshold < 0:
		return fmt.Errorf("%w: click-area and hover-threshold must not be negative", ErrInvalid)
	case c.MinStrokePoints < 0 || c.MinStrokePoints >= c.MaxStrokePoints:
		return fmt.Errorf("%w: min-stroke-points %d must be below max-stroke-points %d", ErrInvalid, c.MinStrokePoints, c.MaxStrokePoints)
	case c.MaxStrokePoints > gesture.StrokeCapacity:
		return fmt.Errorf("%w: max-stroke-points %d exceeds %d", ErrInvalid, c.MaxStrokePoints, gesture.StrokeCapacity)
	case c.NearThreshold > c.FarThreshold:
		return fmt.Errorf("%w: near-threshold %d above far-threshold %d", ErrInvalid, c.NearThreshold, c.FarThreshold)
	case c.ReferenceX < 0 || c.ReferenceX >= capture.DefaultWidth || c.ReferenceY < 0 || c.ReferenceY >= capture.DefaultHeight:
		return fmt.Errorf("%w: reference point (%d, %d) outside the frame", ErrInvalid, c.ReferenceX, c.ReferenceY)
	}
	return nil
}

// Args formats c as positional parameters accepted by Parse.
func (c Config) Args() []string {
	b := func(v bool) string {
		if v {
			return "1"
		}
		return "0"
	}
	i := strconv.Itoa
	return []string{
		i(c.TooClose), i(c.TooFarOrNoise), i(c.SensorLogLevel), b(c.ShowScreen),
		i(c.Tilt), i(int(c.LED)), i(c.ClickArea), i(c.HoverThreshold),
		i(c.MinStrokePoints), i(c.MaxStrokePoints), i(c.HDevMax), i(c.VDevMax),
		i(c.NearThreshold), i(c.FarThreshold), i(c.ReferenceX), i(c.ReferenceY),
		b(c.JSONOutput), b(c.OutputStatus), b(c.OutputLog), b(c.OutputClicks),
		b(c.OutputCoords), b(c.OutputSwipes), b(c.Debug), b(c.DebugStop),
	}
}

// Detector returns the blob detector settings.
func (c Config) Detector() detector.Config {
	return detector.Config{
		Width:         capture.DefaultWidth,
		Height:        capture.DefaultHeight,
		NearThreshold: c.NearThreshold,
		FarThreshold:  c.FarThreshold,
		Reference:     image.Pt(c.ReferenceX, c.ReferenceY),
	}
}

// Gesture returns the gesture engine settings for a screen size.
func (c Config) Gesture(screenWidth, screenHeight int, emitNone bool) gesture.Config {
	g := gesture.DefaultConfig()
	g.TooClose = c.TooClose
	g.TooFarOrNoise = c.TooFarOrNoise
	g.FrameWidth = capture.DefaultWidth
	g.FrameHeight = capture.DefaultHeight
	g.ScreenWidth = screenWidth
	g.ScreenHeight = screenHeight
	g.ClickArea = c.ClickArea
	g.HoverThreshold = c.HoverThreshold
	g.MinStrokePoints = c.MinStrokePoints
	g.MaxStrokePoints = c.MaxStrokePoints
	g.HDevMax = c.HDevMax
	g.VDevMax = c.VDevMax
	g.EmitNone = emitNone
	return g
}

// Notify returns the output toggles.
func (c Config) Notify() notify.Config {
	return notify.Config{
		JSON:   c.JSONOutput,
		Status: c.OutputStatus,
		Log:    c.OutputLog,
		Clicks: c.OutputClicks,
		Coords: c.OutputCoords,
		Swipes: c.OutputSwipes,
	}
}

// Summary returns one line per parameter for the startup log.
func (c Config) Summary() []string {
	args := c.Args()
	lines := make([]string, NumArgs)
	for i, p := range params {
		lines[i] = fmt.Sprintf("%s %s", p.name, args[i])
	}
	return lines
}

// WriteUsage prints the parameter list.
func WriteUsage(w io.Writer, program string) {
	names := make([]string, NumArgs)
	for i, p := range params {
		names[i] = "<" + p.name + ">"
	}
	fmt.Fprintf(w, "Usage: %s %s\n\n", program, strings.Join(names, " "))
	for i, p := range params {
		fmt.Fprintf(w, "  %2d %-18s %s\n", i+1, p.name, p.usage)
	}
}
