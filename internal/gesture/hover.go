package gesture

import "image"

// HoverDetector fires a click when the pointer dwells inside a small box.
//
// The cycle counter goes negative after a click and counts back up, which
// keeps a steady hand from clicking repeatedly.
type HoverDetector struct {
	area      int
	threshold int
	anchor    image.Point
	anchored  bool
	cycles    int
}

// NewHoverDetector creates a detector with the given box half-width and
// dwell threshold in frames.
func NewHoverDetector(area, threshold int) *HoverDetector {
	return &HoverDetector{area: area, threshold: threshold}
}

// Update feeds one pointer position. It returns the anchor and true when a
// click fires.
func (h *HoverDetector) Update(p image.Point) (image.Point, bool) {
	if h.anchored && h.inBox(p) {
		h.cycles++
	} else {
		h.anchor = p
		h.anchored = true
		h.cycles = 0
	}

	if h.cycles > h.threshold {
		h.cycles = -2 * h.threshold
		return h.anchor, true
	}
	return image.Point{}, false
}

func (h *HoverDetector) inBox(p image.Point) bool {
	return h.anchor.X >= p.X-h.area && h.anchor.X <= p.X+h.area &&
		h.anchor.Y >= p.Y-h.area && h.anchor.Y <= p.Y+h.area
}

// Reset forgets the anchor and zeroes the counter.
func (h *HoverDetector) Reset() {
	h.anchor = image.Point{}
	h.anchored = false
	h.cycles = 0
}

// Cycles returns the hover counter.
func (h *HoverDetector) Cycles() int {
	return h.cycles
}

// Anchor returns the hover anchor, if any.
func (h *HoverDetector) Anchor() (image.Point, bool) {
	return h.anchor, h.anchored
}
