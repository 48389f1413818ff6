package gesture

import "image"

// StrokeCapacity is the maximum number of samples a stroke can hold.
const StrokeCapacity = 1000

// Bucket accumulates the moves in one direction.
type Bucket struct {
	Count int
	Sum   int64
}

// Score weighs the number of moves by the distance covered.
func (b Bucket) Score() int64 {
	return int64(b.Count) * b.Sum
}

func (b *Bucket) add(delta int) {
	if delta < 0 {
		delta = -delta
	}
	b.Count++
	b.Sum += int64(delta)
}

// StrokeStats are the running statistics of an open stroke.
type StrokeStats struct {
	LeftToRight Bucket
	RightToLeft Bucket
	TopToBottom Bucket
	BottomToTop Bucket
	SumX        int64
	SumY        int64
}

// Stroke records the pointer samples between two untrackable frames.
type Stroke struct {
	xs    []int
	ys    []int
	stats StrokeStats
}

// NewStroke returns an empty stroke with room for StrokeCapacity samples.
func NewStroke() *Stroke {
	return &Stroke{
		xs: make([]int, 0, StrokeCapacity),
		ys: make([]int, 0, StrokeCapacity),
	}
}

// Append adds a sample. It returns false, leaving the stroke unchanged, when
// the stroke is full.
func (s *Stroke) Append(p image.Point) bool {
	n := len(s.xs)
	if n >= StrokeCapacity {
		return false
	}

	if n == 0 {
		s.stats = StrokeStats{}
	} else {
		dx := p.X - s.xs[n-1]
		if dx > 0 {
			s.stats.LeftToRight.add(dx)
		} else {
			s.stats.RightToLeft.add(dx)
		}
		dy := p.Y - s.ys[n-1]
		if dy > 0 {
			s.stats.TopToBottom.add(dy)
		} else {
			s.stats.BottomToTop.add(dy)
		}
	}

	s.xs = append(s.xs, p.X)
	s.ys = append(s.ys, p.Y)
	s.stats.SumX += int64(p.X)
	s.stats.SumY += int64(p.Y)
	return true
}

// Len returns the number of samples.
func (s *Stroke) Len() int {
	return len(s.xs)
}

// Stats returns the running statistics.
func (s *Stroke) Stats() StrokeStats {
	return s.stats
}

// Points returns a copy of the samples.
func (s *Stroke) Points() []image.Point {
	pts := make([]image.Point, len(s.xs))
	for i := range s.xs {
		pts[i] = image.Pt(s.xs[i], s.ys[i])
	}
	return pts
}

// Reset empties the stroke and zeroes its statistics.
func (s *Stroke) Reset() {
	s.xs = s.xs[:0]
	s.ys = s.ys[:0]
	s.stats = StrokeStats{}
}
