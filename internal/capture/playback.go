package capture

import (
	"context"
	"encoding/binary"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"gocv.io/x/gocv"

	"github.com/ayusman/depthmouse/internal/log"
)

// PlaybackConfig configures a PlaybackSensor.
type PlaybackConfig struct {
	// DepthDir holds 16-bit single channel PNG depth frames, played in name order.
	DepthDir string
	// VideoDevice is the GoCV capture device for color frames. Negative disables color.
	VideoDevice int
	FPS         int
	Loop        bool
}

// PlaybackSensor replays recorded depth frames and optionally pairs them with
// a live color camera. Tilt and LED requests are recorded but have no device to drive.
type PlaybackSensor struct {
	config PlaybackConfig
	files  []string
	video  *gocv.VideoCapture
	level  *slog.LevelVar
	logger *slog.Logger
	mu     sync.Mutex
	open   bool
	tilt   int
	led    LEDMode
}

// NewPlaybackSensor creates a PlaybackSensor. Open must be called before Run.
func NewPlaybackSensor(config PlaybackConfig) *PlaybackSensor {
	if config.FPS <= 0 {
		config.FPS = DefaultFPS
	}
	level := new(slog.LevelVar)
	return &PlaybackSensor{
		config: config,
		level:  level,
		logger: log.NewLogger(level).With("component", "sensor"),
	}
}

// Open indexes the depth directory and opens the color device.
func (s *PlaybackSensor) Open() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.open {
		return nil
	}

	entries, err := os.ReadDir(s.config.DepthDir)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNoDevice, err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".png") {
			continue
		}
		files = append(files, filepath.Join(s.config.DepthDir, entry.Name()))
	}
	if len(files) == 0 {
		return fmt.Errorf("%w: no depth frames in %s", ErrNoDevice, s.config.DepthDir)
	}
	sort.Strings(files)

	if s.config.VideoDevice >= 0 {
		video, err := gocv.OpenVideoCapture(s.config.VideoDevice)
		if err != nil {
			return fmt.Errorf("%w: video device %d: %v", ErrOpen, s.config.VideoDevice, err)
		}
		video.Set(gocv.VideoCaptureFrameWidth, DefaultWidth)
		video.Set(gocv.VideoCaptureFrameHeight, DefaultHeight)
		s.video = video
	}

	s.files = files
	s.open = true
	s.logger.Info("playback sensor opened", "frames", len(files), "dir", s.config.DepthDir)
	return nil
}

// SetLogLevel sets the driver verbosity (0-7).
func (s *PlaybackSensor) SetLogLevel(level int) {
	s.level.Set(DriverLevel(level))
}

// SetTilt records the requested tilt angle.
func (s *PlaybackSensor) SetTilt(degrees int) error {
	if degrees < MinTilt || degrees > MaxTilt {
		return ErrTiltRange
	}
	s.mu.Lock()
	s.tilt = degrees
	s.mu.Unlock()
	s.logger.Debug("tilt requested", "degrees", degrees)
	return nil
}

// SetLED records the requested LED mode.
func (s *PlaybackSensor) SetLED(mode LEDMode) error {
	if !mode.Valid() {
		return fmt.Errorf("invalid LED mode %d", int(mode))
	}
	s.mu.Lock()
	s.led = mode
	s.mu.Unlock()
	s.logger.Debug("led requested", "mode", mode.String())
	return nil
}

// Run plays the depth frames at the configured FPS. Color frames, when
// enabled, are read right after each depth frame.
func (s *PlaybackSensor) Run(ctx context.Context, onDepth DepthFunc, onVideo VideoFunc) error {
	s.mu.Lock()
	if !s.open {
		s.mu.Unlock()
		return ErrNotOpen
	}
	files := s.files
	video := s.video
	s.mu.Unlock()

	ticker := time.NewTicker(time.Second / time.Duration(s.config.FPS))
	defer ticker.Stop()

	start := time.Now()
	index := 0
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}

		if index >= len(files) {
			if !s.config.Loop {
				s.logger.Info("playback finished", "frames", len(files))
				return nil
			}
			index = 0
		}

		ts := uint32(time.Since(start).Milliseconds())
		frame, err := LoadDepthFrame(files[index])
		index++
		if err != nil {
			s.logger.Warn("skipping depth frame", "error", err)
			continue
		}
		frame.Timestamp = ts
		if onDepth != nil {
			onDepth(frame)
		}

		if video != nil && onVideo != nil {
			if vf, ok := readVideoFrame(video); ok {
				vf.Timestamp = ts
				onVideo(vf)
			}
		}
	}
}

// Close releases the color device.
func (s *PlaybackSensor) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.open = false
	if s.video == nil {
		return nil
	}
	err := s.video.Close()
	s.video = nil
	return err
}

// Tilt returns the last accepted tilt angle.
func (s *PlaybackSensor) Tilt() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tilt
}

// LED returns the last accepted LED mode.
func (s *PlaybackSensor) LED() LEDMode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.led
}

// readVideoFrame reads one BGR frame and converts it to packed RGB.
func readVideoFrame(video *gocv.VideoCapture) (VideoFrame, bool) {
	mat := gocv.NewMat()
	defer mat.Close()

	if ok := video.Read(&mat); !ok || mat.Empty() {
		return VideoFrame{}, false
	}

	rgb := gocv.NewMat()
	defer rgb.Close()
	gocv.CvtColor(mat, &rgb, gocv.ColorBGRToRGB)

	return VideoFrame{
		Width:  rgb.Cols(),
		Height: rgb.Rows(),
		RGB:    rgb.ToBytes(),
	}, true
}

// LoadDepthFrame reads a 16-bit single channel PNG as a DepthFrame.
func LoadDepthFrame(path string) (DepthFrame, error) {
	mat := gocv.IMRead(path, gocv.IMReadAnyDepth)
	defer mat.Close()

	if mat.Empty() {
		return DepthFrame{}, fmt.Errorf("read depth frame %s: empty image", path)
	}
	if mat.Type() != gocv.MatTypeCV16UC1 {
		return DepthFrame{}, fmt.Errorf("read depth frame %s: want 16-bit single channel, got type %d", path, mat.Type())
	}

	data, err := mat.DataPtrUint16()
	if err != nil {
		return DepthFrame{}, fmt.Errorf("read depth frame %s: %w", path, err)
	}

	samples := make([]uint16, len(data))
	copy(samples, data)

	return DepthFrame{
		Width:   mat.Cols(),
		Height:  mat.Rows(),
		Samples: samples,
	}, nil
}

// SaveDepthFrame writes a DepthFrame as a 16-bit single channel PNG.
func SaveDepthFrame(path string, frame DepthFrame) error {
	if len(frame.Samples) != frame.Width*frame.Height {
		return fmt.Errorf("save depth frame %s: %d samples for %dx%d", path, len(frame.Samples), frame.Width, frame.Height)
	}

	buf := make([]byte, 2*len(frame.Samples))
	for i, v := range frame.Samples {
		binary.LittleEndian.PutUint16(buf[2*i:], v)
	}

	mat, err := gocv.NewMatFromBytes(frame.Height, frame.Width, gocv.MatTypeCV16UC1, buf)
	if err != nil {
		return fmt.Errorf("save depth frame %s: %w", path, err)
	}
	defer mat.Close()

	if ok := gocv.IMWrite(path, mat); !ok {
		return fmt.Errorf("save depth frame %s: write failed", path)
	}
	return nil
}
