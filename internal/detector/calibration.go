package detector

import (
	"image"
	"math"
	"sync"
)

// GammaSize is the number of raw depth values the gamma table covers.
const GammaSize = 2048

// Calibration converts raw sensor depth to a calibrated scale and holds the
// distance of every pixel from a reference point. It is read-only once built
// and safe for concurrent use.
type Calibration struct {
	gamma  [GammaSize]uint16
	width  int
	height int
	ref    image.Point

	once sync.Once
	dist []float32
}

// NewCalibration builds the gamma table. The distance grid is built on first use.
func NewCalibration(width, height int, ref image.Point) *Calibration {
	c := &Calibration{
		width:  width,
		height: height,
		ref:    ref,
	}
	for i := range c.gamma {
		v := float32(i) / GammaSize
		v = v * v * v * 6
		c.gamma[i] = uint16(v * 6 * 256)
	}
	return c
}

// Gamma returns the calibrated value for a raw sample. Samples past the table
// are clamped to its last entry.
func (c *Calibration) Gamma(raw uint16) uint16 {
	if int(raw) >= GammaSize {
		return c.gamma[GammaSize-1]
	}
	return c.gamma[raw]
}

// Distance returns the Euclidean distance of (x, y) from the reference point.
func (c *Calibration) Distance(x, y int) float32 {
	return c.distances()[y*c.width+x]
}

// Reference returns the reference point.
func (c *Calibration) Reference() image.Point {
	return c.ref
}

// Size returns the frame dimensions the grid covers.
func (c *Calibration) Size() (int, int) {
	return c.width, c.height
}

func (c *Calibration) distances() []float32 {
	c.once.Do(func() {
		dist := make([]float32, c.width*c.height)
		for y := 0; y < c.height; y++ {
			dy := float64(y - c.ref.Y)
			for x := 0; x < c.width; x++ {
				dx := float64(x - c.ref.X)
				dist[y*c.width+x] = float32(math.Sqrt(dx*dx + dy*dy))
			}
		}
		c.dist = dist
	})
	return c.dist
}
