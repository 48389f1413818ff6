package capture

import (
	"context"
	"fmt"
	"sync"
)

// MockSensor plays back in-memory frames for testing
type MockSensor struct {
	depth    []DepthFrame
	video    []VideoFrame
	loop     bool
	mu       sync.Mutex
	open     bool
	tilt     int
	led      LEDMode
	logLevel int

	// OpenErr, when set, is returned by Open.
	OpenErr error
}

func NewMockSensor(depth []DepthFrame, loop bool) *MockSensor {
	return &MockSensor{
		depth: depth,
		loop:  loop,
	}
}

func (s *MockSensor) Open() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.OpenErr != nil {
		return s.OpenErr
	}
	s.open = true
	return nil
}

func (s *MockSensor) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.open = false
	return nil
}

func (s *MockSensor) SetLogLevel(level int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.logLevel = level
}

func (s *MockSensor) SetTilt(degrees int) error {
	if degrees < MinTilt || degrees > MaxTilt {
		return ErrTiltRange
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.open {
		return ErrNotOpen
	}
	s.tilt = degrees
	return nil
}

func (s *MockSensor) SetLED(mode LEDMode) error {
	if !mode.Valid() {
		return fmt.Errorf("invalid LED mode %d", int(mode))
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.open {
		return ErrNotOpen
	}
	s.led = mode
	return nil
}

// Run delivers every depth frame in order, each followed by the color frame
// at the same index if there is one. With loop set it repeats until ctx is done.
func (s *MockSensor) Run(ctx context.Context, onDepth DepthFunc, onVideo VideoFunc) error {
	s.mu.Lock()
	if !s.open {
		s.mu.Unlock()
		return ErrNotOpen
	}
	depth, video, loop := s.depth, s.video, s.loop
	s.mu.Unlock()

	if len(depth) == 0 {
		return nil
	}

	for {
		for i, frame := range depth {
			if ctx.Err() != nil {
				return nil
			}
			frame.Timestamp = uint32(i)
			if onDepth != nil {
				onDepth(frame)
			}
			if i < len(video) && onVideo != nil {
				onVideo(video[i])
			}
		}
		if !loop {
			return nil
		}
	}
}

// SetVideo sets the color frames paired with the depth frames by index.
func (s *MockSensor) SetVideo(frames []VideoFrame) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.video = frames
}

func (s *MockSensor) Tilt() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tilt
}

func (s *MockSensor) LED() LEDMode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.led
}

func (s *MockSensor) LogLevel() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.logLevel
}

// FlatFrame returns a width x height frame with every sample set to raw.
func FlatFrame(width, height int, raw uint16) DepthFrame {
	samples := make([]uint16, width*height)
	for i := range samples {
		samples[i] = raw
	}
	return DepthFrame{Width: width, Height: height, Samples: samples}
}
