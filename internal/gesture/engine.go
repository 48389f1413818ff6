package gesture

import (
	"image"

	"github.com/ayusman/depthmouse/internal/detector"
)

// Result is what one frame produced.
type Result struct {
	Category Category

	// Pointer is the screen position, set on valid frames.
	Pointer image.Point
	// Clicked reports a dwell click at Click.
	Clicked bool
	Click   image.Point
	// Rejected reports a sample dropped because the stroke was full.
	Rejected bool

	// Finalized reports that the open stroke was classified into Analysis.
	Finalized bool
	Analysis  Analysis
	// Swipe is the gesture to report, empty when there is none.
	Swipe Swipe
	// Discarded is the length of a stroke dropped without classification.
	Discarded int
}

// State is a snapshot of the engine state.
type State struct {
	Anchor      image.Point
	Anchored    bool
	HoverCycles int
	StrokeLen   int
	Pending     bool
}

// Engine runs the gesture pipeline for one sensor. It is not safe for
// concurrent use; frames must be processed one at a time.
type Engine struct {
	config     Config
	classifier Classifier
	mapper     Mapper
	hover      *HoverDetector
	stroke     *Stroke
	pending    bool
}

// NewEngine creates an engine. The config should already be validated.
func NewEngine(config Config) *Engine {
	return &Engine{
		config: config,
		classifier: Classifier{
			TooClose:      config.TooClose,
			TooFarOrNoise: config.TooFarOrNoise,
		},
		mapper: Mapper{
			FrameWidth:   config.FrameWidth,
			FrameHeight:  config.FrameHeight,
			Margin:       config.Margin,
			ScreenWidth:  config.ScreenWidth,
			ScreenHeight: config.ScreenHeight,
		},
		hover:  NewHoverDetector(config.ClickArea, config.HoverThreshold),
		stroke: NewStroke(),
	}
}

// Config returns the engine configuration.
func (e *Engine) Config() Config {
	return e.config
}

// Process runs one frame of blob statistics through classification, pointer
// mapping, hover detection and stroke recording, then finalizes the stroke
// if the frame was untrackable.
func (e *Engine) Process(stats detector.Stats) Result {
	res := Result{Category: e.classifier.Classify(stats.Count)}

	if res.Category.Valid() {
		p := e.mapper.Map(stats.Farthest)
		res.Pointer = p
		res.Rejected = !e.stroke.Append(p)

		if click, ok := e.hover.Update(p); ok {
			res.Clicked = true
			res.Click = click
			res.Discarded = e.stroke.Len()
			e.stroke.Reset()
		}
	} else {
		e.pending = true
		e.hover.Reset()
	}

	if e.pending {
		e.finalize(&res)
	}
	return res
}

func (e *Engine) finalize(res *Result) {
	n := e.stroke.Len()
	if n > e.config.MinStrokePoints && n < e.config.MaxStrokePoints {
		res.Finalized = true
		res.Analysis = Analyze(e.stroke, e.config.HDevMax, e.config.VDevMax)
		if res.Analysis.Swipe != SwipeNone || e.config.EmitNone {
			res.Swipe = res.Analysis.Swipe
		}
	} else {
		res.Discarded = n
	}

	e.stroke.Reset()
	e.pending = false
}

// State returns a snapshot of the engine state.
func (e *Engine) State() State {
	anchor, anchored := e.hover.Anchor()
	return State{
		Anchor:      anchor,
		Anchored:    anchored,
		HoverCycles: e.hover.Cycles(),
		StrokeLen:   e.stroke.Len(),
		Pending:     e.pending,
	}
}

// Stroke returns the open stroke.
func (e *Engine) Stroke() *Stroke {
	return e.stroke
}

// Reset returns the engine to its initial state.
func (e *Engine) Reset() {
	e.hover.Reset()
	e.stroke.Reset()
	e.pending = false
}
