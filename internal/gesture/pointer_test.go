package gesture

import (
	"image"
	"testing"
)

func TestMapper_Map(t *testing.T) {
	m := Mapper{FrameWidth: 640, FrameHeight: 480, Margin: 10, ScreenWidth: 1920, ScreenHeight: 1080}

	tests := []struct {
		name string
		in   image.Point
		want image.Point
	}{
		{"origin mirrors to right edge", image.Pt(0, 0), image.Pt(1950, 0)},
		{"center", image.Pt(320, 240), image.Pt(975, 551)},
		{"usable corner", image.Pt(640, 470), image.Pt(0, 1080)},
		{"past usable range", image.Pt(639, 479), image.Pt(3, 1100)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := m.Map(tt.in); got != tt.want {
				t.Errorf("Map(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestMapper_Deterministic(t *testing.T) {
	m := Mapper{FrameWidth: 640, FrameHeight: 480, Margin: 10, ScreenWidth: 1366, ScreenHeight: 768}
	for x := 0; x < 640; x += 37 {
		for y := 0; y < 480; y += 29 {
			p := image.Pt(x, y)
			if m.Map(p) != m.Map(p) {
				t.Fatalf("Map(%v) is not deterministic", p)
			}
		}
	}
}
