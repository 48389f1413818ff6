package e2e

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/ayusman/depthmouse/internal/capture"
	"github.com/ayusman/depthmouse/internal/config"
)

const (
	rawNear = 0
	rawFar  = 2047
)

func trackingConfig() config.Config {
	return config.Config{
		TooClose:        100,
		TooFarOrNoise:   1,
		SensorLogLevel:  2,
		LED:             capture.LEDGreen,
		ClickArea:       20,
		HoverThreshold:  15,
		MinStrokePoints: 5,
		MaxStrokePoints: 60,
		HDevMax:         100,
		VDevMax:         100,
		NearThreshold:   500,
		FarThreshold:    800,
		ReferenceX:      320,
		ReferenceY:      240,
		JSONOutput:      true,
		OutputStatus:    true,
		OutputClicks:    true,
		OutputSwipes:    true,
	}
}

// handFrame returns a frame whose only near pixel is (x, y).
func handFrame(x, y int) capture.DepthFrame {
	f := capture.FlatFrame(capture.DefaultWidth, capture.DefaultHeight, rawFar)
	f.Samples[y*f.Width+x] = rawNear
	return f
}

// writeRecording saves frames as numbered PNGs in a new directory.
func writeRecording(t *testing.T, frames []capture.DepthFrame) string {
	t.Helper()

	dir := t.TempDir()
	for i, f := range frames {
		path := filepath.Join(dir, fmt.Sprintf("depth-%04d.png", i))
		if err := capture.SaveDepthFrame(path, f); err != nil {
			t.Fatalf("SaveDepthFrame() error = %v", err)
		}
	}
	return dir
}

// rightSwipe is a hand sweeping across the sensor followed by the hand leaving.
func rightSwipe() []capture.DepthFrame {
	var frames []capture.DepthFrame
	for i := 0; i < 10; i++ {
		frames = append(frames, handFrame(600-50*i, 100))
	}
	return append(frames, capture.FlatFrame(capture.DefaultWidth, capture.DefaultHeight, rawFar))
}
