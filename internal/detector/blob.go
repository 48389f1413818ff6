package detector

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"golang.org/x/image/colornames"

	"github.com/ayusman/depthmouse/internal/capture"
)

// ErrFrameSize is returned when a frame does not match the calibrated dimensions.
var ErrFrameSize = errors.New("frame size does not match calibration")

// Visualization colors per depth band.
var (
	NearColor = colornames.Red
	MidColor  = colornames.White
	FarColor  = colornames.Black
)

// Stats aggregates the near pixels of one frame.
// Farthest is only meaningful when Count > 0.
type Stats struct {
	Count            int
	SumX             int64
	SumY             int64
	MinX             int
	MaxX             int
	MinY             int
	MaxY             int
	Farthest         image.Point
	FarthestDistance float32
}

// Bounds returns the bounding box of the near pixels.
func (s Stats) Bounds() image.Rectangle {
	if s.Count == 0 {
		return image.Rectangle{}
	}
	return image.Rect(s.MinX, s.MinY, s.MaxX+1, s.MaxY+1)
}

// Centroid returns the mean position of the near pixels.
func (s Stats) Centroid() image.Point {
	if s.Count == 0 {
		return image.Point{}
	}
	n := int64(s.Count)
	return image.Pt(int(s.SumX/n), int(s.SumY/n))
}

// Detector scans depth frames for near pixels.
type Detector struct {
	config Config
	calib  *Calibration
}

// New creates a Detector and its calibration table.
func New(config Config) *Detector {
	return &Detector{
		config: config,
		calib:  NewCalibration(config.Width, config.Height, config.Reference),
	}
}

// Config returns the detector configuration.
func (d *Detector) Config() Config {
	return d.config
}

// Calibration returns the calibration table.
func (d *Detector) Calibration() *Calibration {
	return d.calib
}

// Detect scans frame in raster order and returns the near pixel statistics.
// If vis is not nil it receives 3 bytes per pixel colored by depth band.
func (d *Detector) Detect(frame capture.DepthFrame, vis []byte) (Stats, error) {
	w, h := d.calib.Size()
	if frame.Width != w || frame.Height != h || len(frame.Samples) < w*h {
		return Stats{}, fmt.Errorf("%w: got %dx%d, want %dx%d", ErrFrameSize, frame.Width, frame.Height, w, h)
	}
	if vis != nil && len(vis) < 3*w*h {
		return Stats{}, fmt.Errorf("visualization buffer too small: %d bytes for %dx%d", len(vis), w, h)
	}

	near := d.config.NearThreshold
	far := d.config.FarThreshold

	stats := Stats{
		MinX:             w,
		MinY:             h,
		MaxX:             -1,
		MaxY:             -1,
		FarthestDistance: -1,
	}

	for i := 0; i < w*h; i++ {
		x, y := i%w, i/w
		v := int(d.calib.Gamma(frame.Samples[i]))

		switch {
		case v < near:
			if dist := d.calib.Distance(x, y); dist > stats.FarthestDistance {
				stats.FarthestDistance = dist
				stats.Farthest = image.Pt(x, y)
			}
			stats.Count++
			stats.SumX += int64(x)
			stats.SumY += int64(y)
			stats.MinX = min(stats.MinX, x)
			stats.MaxX = max(stats.MaxX, x)
			stats.MinY = min(stats.MinY, y)
			stats.MaxY = max(stats.MaxY, y)
			paint(vis, i, NearColor)
		case v < far:
			paint(vis, i, MidColor)
		default:
			paint(vis, i, FarColor)
		}
	}

	if stats.Count == 0 {
		stats.MinX, stats.MinY, stats.MaxX, stats.MaxY = 0, 0, 0, 0
		stats.FarthestDistance = 0
	}
	return stats, nil
}

func paint(vis []byte, i int, c color.RGBA) {
	if vis == nil {
		return
	}
	vis[3*i] = c.R
	vis[3*i+1] = c.G
	vis[3*i+2] = c.B
}
