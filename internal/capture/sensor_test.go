package capture

import (
	"context"
	"errors"
	"log/slog"
	"path/filepath"
	"testing"
)

func TestLEDMode_String(t *testing.T) {
	tests := []struct {
		mode LEDMode
		want string
	}{
		{LEDOff, "LED Off"},
		{LEDGreen, "LED Green"},
		{LEDBlinkRedYellow, "LED Blink Red Yellow"},
		{LEDMode(9), "LED(9)"},
	}

	for _, tt := range tests {
		if got := tt.mode.String(); got != tt.want {
			t.Errorf("LEDMode(%d).String() = %q, want %q", int(tt.mode), got, tt.want)
		}
	}
}

func TestDriverLevel(t *testing.T) {
	if DriverLevel(1) != slog.LevelError {
		t.Errorf("DriverLevel(1) = %v, want error", DriverLevel(1))
	}
	if DriverLevel(2) != slog.LevelWarn {
		t.Errorf("DriverLevel(2) = %v, want warn", DriverLevel(2))
	}
	if DriverLevel(5) != slog.LevelDebug {
		t.Errorf("DriverLevel(5) = %v, want debug", DriverLevel(5))
	}
	for level := 0; level < 7; level++ {
		if DriverLevel(level+1) > DriverLevel(level) {
			t.Errorf("DriverLevel(%d) is less verbose than DriverLevel(%d)", level+1, level)
		}
	}
}

func TestMockSensor_Run(t *testing.T) {
	frames := []DepthFrame{FlatFrame(4, 3, 100), FlatFrame(4, 3, 200)}
	s := NewMockSensor(frames, false)
	s.SetVideo([]VideoFrame{{Width: 4, Height: 3, RGB: make([]byte, 36)}})

	if err := s.Run(context.Background(), nil, nil); !errors.Is(err, ErrNotOpen) {
		t.Fatalf("Run() before Open error = %v, want ErrNotOpen", err)
	}

	if err := s.Open(); err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer s.Close()

	var depth []uint16
	videoCount := 0
	err := s.Run(context.Background(), func(f DepthFrame) {
		depth = append(depth, f.At(0, 0))
	}, func(f VideoFrame) {
		videoCount++
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if len(depth) != 2 || depth[0] != 100 || depth[1] != 200 {
		t.Errorf("depth samples = %v, want [100 200]", depth)
	}
	if videoCount != 1 {
		t.Errorf("video frames = %d, want 1", videoCount)
	}
}

func TestMockSensor_LoopStopsOnCancel(t *testing.T) {
	s := NewMockSensor([]DepthFrame{FlatFrame(2, 2, 0)}, true)
	s.Open()
	defer s.Close()

	ctx, cancel := context.WithCancel(context.Background())
	count := 0
	err := s.Run(ctx, func(DepthFrame) {
		count++
		if count == 10 {
			cancel()
		}
	}, nil)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if count != 10 {
		t.Errorf("frames delivered = %d, want 10", count)
	}
}

func TestMockSensor_Controls(t *testing.T) {
	s := NewMockSensor(nil, false)
	if err := s.SetTilt(5); !errors.Is(err, ErrNotOpen) {
		t.Errorf("SetTilt() before Open error = %v, want ErrNotOpen", err)
	}

	s.Open()
	defer s.Close()

	if err := s.SetTilt(MaxTilt + 1); !errors.Is(err, ErrTiltRange) {
		t.Errorf("SetTilt(31) error = %v, want ErrTiltRange", err)
	}
	if err := s.SetTilt(-12); err != nil {
		t.Fatalf("SetTilt(-12) error = %v", err)
	}
	if s.Tilt() != -12 {
		t.Errorf("Tilt() = %d, want -12", s.Tilt())
	}

	if err := s.SetLED(LEDMode(7)); err == nil {
		t.Error("SetLED(7) expected error")
	}
	if err := s.SetLED(LEDYellow); err != nil {
		t.Fatalf("SetLED() error = %v", err)
	}
	if s.LED() != LEDYellow {
		t.Errorf("LED() = %v, want %v", s.LED(), LEDYellow)
	}
}

func TestPlaybackSensor_NoFrames(t *testing.T) {
	s := NewPlaybackSensor(PlaybackConfig{DepthDir: t.TempDir(), VideoDevice: -1})
	if err := s.Open(); !errors.Is(err, ErrNoDevice) {
		t.Errorf("Open() error = %v, want ErrNoDevice", err)
	}

	s = NewPlaybackSensor(PlaybackConfig{DepthDir: filepath.Join(t.TempDir(), "missing"), VideoDevice: -1})
	if err := s.Open(); !errors.Is(err, ErrNoDevice) {
		t.Errorf("Open() missing dir error = %v, want ErrNoDevice", err)
	}
}

func TestPlaybackSensor_RoundTrip(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping OpenCV test in short mode")
	}

	dir := t.TempDir()
	frame := FlatFrame(8, 6, 0)
	for i := range frame.Samples {
		frame.Samples[i] = uint16(i * 37)
	}
	if err := SaveDepthFrame(filepath.Join(dir, "0001.png"), frame); err != nil {
		t.Fatalf("SaveDepthFrame() error = %v", err)
	}
	if err := SaveDepthFrame(filepath.Join(dir, "0002.png"), FlatFrame(8, 6, 2047)); err != nil {
		t.Fatalf("SaveDepthFrame() error = %v", err)
	}

	s := NewPlaybackSensor(PlaybackConfig{DepthDir: dir, VideoDevice: -1, FPS: 200})
	if err := s.Open(); err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer s.Close()

	var got []DepthFrame
	if err := s.Run(context.Background(), func(f DepthFrame) { got = append(got, f) }, nil); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if len(got) != 2 {
		t.Fatalf("frames = %d, want 2", len(got))
	}
	if got[0].Width != 8 || got[0].Height != 6 {
		t.Errorf("size = %dx%d, want 8x6", got[0].Width, got[0].Height)
	}
	for i, v := range frame.Samples {
		if got[0].Samples[i] != v {
			t.Fatalf("sample %d = %d, want %d", i, got[0].Samples[i], v)
		}
	}
	if got[1].At(7, 5) != 2047 {
		t.Errorf("second frame sample = %d, want 2047", got[1].At(7, 5))
	}
}
