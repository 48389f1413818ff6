package gesture

import (
	"image"
	"math"
	"testing"
)

func strokeOf(points ...image.Point) *Stroke {
	s := NewStroke()
	for _, p := range points {
		s.Append(p)
	}
	return s
}

func line(n int, step image.Point) []image.Point {
	pts := make([]image.Point, n)
	for i := range pts {
		pts[i] = image.Pt(step.X*i, step.Y*i)
	}
	return pts
}

func TestStroke_Stats(t *testing.T) {
	s := strokeOf(image.Pt(10, 10), image.Pt(15, 7), image.Pt(12, 7), image.Pt(12, 20))
	st := s.Stats()

	if s.Len() != 4 {
		t.Fatalf("Len() = %d, want 4", s.Len())
	}
	if st.LeftToRight != (Bucket{Count: 1, Sum: 5}) {
		t.Errorf("LeftToRight = %+v", st.LeftToRight)
	}
	// The unchanged x of the last move counts as right to left.
	if st.RightToLeft != (Bucket{Count: 2, Sum: 3}) {
		t.Errorf("RightToLeft = %+v", st.RightToLeft)
	}
	if st.TopToBottom != (Bucket{Count: 1, Sum: 13}) {
		t.Errorf("TopToBottom = %+v", st.TopToBottom)
	}
	if st.BottomToTop != (Bucket{Count: 2, Sum: 3}) {
		t.Errorf("BottomToTop = %+v", st.BottomToTop)
	}
	if st.SumX != 49 || st.SumY != 44 {
		t.Errorf("sums = (%d, %d), want (49, 44)", st.SumX, st.SumY)
	}
}

func TestStroke_FirstSampleZeroesStats(t *testing.T) {
	s := strokeOf(image.Pt(3, 4))
	if s.Stats() != (StrokeStats{SumX: 3, SumY: 4}) {
		t.Errorf("Stats() after one sample = %+v", s.Stats())
	}
}

func TestStroke_Capacity(t *testing.T) {
	s := NewStroke()
	for i := 0; i < StrokeCapacity; i++ {
		if !s.Append(image.Pt(i, i)) {
			t.Fatalf("Append() rejected sample %d", i)
		}
	}
	before := s.Stats()
	if s.Append(image.Pt(0, 0)) {
		t.Error("Append() past capacity should be rejected")
	}
	if s.Len() != StrokeCapacity || s.Stats() != before {
		t.Error("rejected sample changed the stroke")
	}
}

func TestStroke_Reset(t *testing.T) {
	s := strokeOf(line(30, image.Pt(7, -3))...)
	s.Reset()

	fresh := NewStroke()
	if s.Len() != fresh.Len() || s.Stats() != fresh.Stats() || len(s.Points()) != 0 {
		t.Errorf("reset stroke = %d samples %+v, want empty", s.Len(), s.Stats())
	}

	s.Append(image.Pt(9, 9))
	if s.Stats() != (StrokeStats{SumX: 9, SumY: 9}) {
		t.Errorf("Stats() after reset and append = %+v", s.Stats())
	}
}

func TestAnalyze(t *testing.T) {
	tests := []struct {
		name   string
		points []image.Point
		want   Swipe
	}{
		{"right", line(5, image.Pt(10, 0)), SwipeRight},
		{"down", line(5, image.Pt(0, 10)), SwipeDown},
		{"left", line(5, image.Pt(-10, 0)), SwipeLeft},
		{"up", line(5, image.Pt(0, -10)), SwipeUp},
		{"mostly right", []image.Point{{0, 0}, {20, 2}, {45, 1}, {60, 3}, {90, 2}, {85, 1}}, SwipeRight},
		{"stationary", line(5, image.Pt(0, 0)), SwipeLeft},
		{"scattered", []image.Point{{0, 0}, {400, 400}, {0, 400}, {400, 0}, {0, 0}, {400, 400}}, SwipeNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := Analyze(strokeOf(tt.points...), 100, 100)
			if a.Swipe != tt.want {
				t.Errorf("Analyze() = %v (hDev %.2f vDev %.2f), want %v", a.Swipe, a.HDev, a.VDev, tt.want)
			}
		})
	}
}

func TestAnalyze_Deviation(t *testing.T) {
	a := Analyze(strokeOf(line(5, image.Pt(10, 0))...), 100, 100)

	if a.MeanX != 20 || a.MeanY != 0 {
		t.Errorf("means = (%d, %d), want (20, 0)", a.MeanX, a.MeanY)
	}
	if math.Abs(a.HDev-math.Sqrt(200)) > 1e-9 {
		t.Errorf("HDev = %f, want %f", a.HDev, math.Sqrt(200))
	}
	if a.VDev != 0 {
		t.Errorf("VDev = %f, want 0", a.VDev)
	}
	if a.Stats.LeftToRight.Count != 4 || a.Stats.RightToLeft.Count != 0 {
		t.Errorf("counts = %d/%d, want 4/0", a.Stats.LeftToRight.Count, a.Stats.RightToLeft.Count)
	}
}

func TestAnalyze_TruncatedMean(t *testing.T) {
	// Sum 7 over 3 samples truncates to 2.
	a := Analyze(strokeOf(image.Pt(0, 0), image.Pt(3, 0), image.Pt(4, 0)), 100, 100)
	if a.MeanX != 2 {
		t.Fatalf("MeanX = %d, want 2", a.MeanX)
	}
	want := math.Sqrt((4.0 + 1 + 4) / 3)
	if math.Abs(a.HDev-want) > 1e-9 {
		t.Errorf("HDev = %f, want %f", a.HDev, want)
	}
}
