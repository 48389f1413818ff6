package gesture

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// Swipe is the direction a stroke was classified as.
type Swipe string

const (
	SwipeNone  Swipe = "none"
	SwipeUp    Swipe = "up"
	SwipeDown  Swipe = "down"
	SwipeLeft  Swipe = "left"
	SwipeRight Swipe = "right"
)

// Analysis is the outcome of classifying a stroke.
type Analysis struct {
	Points int
	MeanX  int
	MeanY  int
	// HDev and VDev are the population standard deviations of x and y
	// about the truncated means.
	HDev  float64
	VDev  float64
	Stats StrokeStats
	Swipe Swipe
}

// Analyze classifies a non-empty stroke. A stroke spread wide on both axes
// is no swipe; otherwise the axis with less spread is the motion axis and
// the heavier direction on it wins.
func Analyze(s *Stroke, hDevMax, vDevMax int) Analysis {
	n := s.Len()
	st := s.Stats()
	a := Analysis{Points: n, Stats: st}
	if n == 0 {
		a.Swipe = SwipeNone
		return a
	}

	a.MeanX = int(st.SumX / int64(n))
	a.MeanY = int(st.SumY / int64(n))
	a.HDev = deviation(s.xs, a.MeanX)
	a.VDev = deviation(s.ys, a.MeanY)

	switch {
	case a.HDev >= float64(hDevMax) && a.VDev >= float64(vDevMax):
		a.Swipe = SwipeNone
	case a.HDev < a.VDev:
		if st.TopToBottom.Score() > st.BottomToTop.Score() {
			a.Swipe = SwipeDown
		} else {
			a.Swipe = SwipeUp
		}
	default:
		if st.LeftToRight.Score() > st.RightToLeft.Score() {
			a.Swipe = SwipeRight
		} else {
			a.Swipe = SwipeLeft
		}
	}
	return a
}

func deviation(values []int, mean int) float64 {
	xs := make([]float64, len(values))
	for i, v := range values {
		xs[i] = float64(v)
	}
	return math.Sqrt(stat.MomentAbout(2, xs, float64(mean), nil))
}
