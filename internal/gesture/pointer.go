package gesture

import "image"

// Mapper converts frame coordinates to screen coordinates. The image is
// mirrored horizontally so moving the hand right moves the pointer right.
type Mapper struct {
	FrameWidth   int
	FrameHeight  int
	Margin       int
	ScreenWidth  int
	ScreenHeight int
}

// Map returns the screen position for frame point p. The result is not
// clamped and can fall slightly outside the screen near the frame edges.
func (m Mapper) Map(p image.Point) image.Point {
	px := float32(m.FrameWidth - p.X)
	py := float32(p.Y)
	mx := px / float32(m.FrameWidth-m.Margin) * float32(m.ScreenWidth)
	my := py / float32(m.FrameHeight-m.Margin) * float32(m.ScreenHeight)
	return image.Pt(int(mx), int(my))
}
