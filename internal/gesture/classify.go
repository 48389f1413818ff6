package gesture

// Category is the trackability of a frame.
type Category int

const (
	// CategoryValid means a hand-sized blob is present.
	CategoryValid Category = iota
	CategoryTooClose
	// CategoryTooFar means some near pixels were found, too few to track.
	CategoryTooFar
	// CategoryEmpty means no near pixels were found.
	CategoryEmpty
)

var categoryNames = [...]string{"valid", "tooclose", "somepixels", "toofar"}

// String returns the status name used in notifications.
func (c Category) String() string {
	if c < CategoryValid || c > CategoryEmpty {
		return "unknown"
	}
	return categoryNames[c]
}

// Valid reports whether the frame carries a pointer.
func (c Category) Valid() bool {
	return c == CategoryValid
}

// Classifier sorts frames by near pixel count.
type Classifier struct {
	TooClose      int
	TooFarOrNoise int
}

// Classify returns the category for a near pixel count. The categories
// partition every count, so exactly one applies.
func (c Classifier) Classify(count int) Category {
	switch {
	case count > c.TooClose:
		return CategoryTooClose
	case count == 0:
		return CategoryEmpty
	case count < c.TooFarOrNoise:
		return CategoryTooFar
	default:
		return CategoryValid
	}
}
