// Package notify writes pipeline events as JSON lines and fans them out to
// in-process subscribers.
package notify

import (
	"encoding/json"
	"fmt"
	"image"
	"io"
	"sync"
	"time"
)

// Kind is the notification channel.
type Kind string

const (
	KindStatus Kind = "status"
	KindLog    Kind = "log"
	KindClick  Kind = "click"
	KindCoord  Kind = "coord"
	KindSwipe  Kind = "swipe"
)

// Event is one notification.
type Event struct {
	Kind Kind
	// Text is the status name, log message or swipe direction.
	Text string
	// Point is set for click and coord events.
	Point image.Point
	Time  time.Time
}

type xy struct {
	XY string `json:"xy"`
}

// MarshalJSON encodes the event as a single-key object keyed by its kind.
func (e Event) MarshalJSON() ([]byte, error) {
	var v any = e.Text
	if e.Kind == KindClick || e.Kind == KindCoord {
		v = xy{XY: fmt.Sprintf("[ %d , %d]", e.Point.X, e.Point.Y)}
	}
	return json.Marshal(map[Kind]any{e.Kind: v})
}

// Config selects which channels reach the output writer.
type Config struct {
	// JSON gates all output.
	JSON   bool
	Status bool
	Log    bool
	Clicks bool
	Coords bool
	Swipes bool
}

// DefaultConfig enables every channel.
func DefaultConfig() Config {
	return Config{JSON: true, Status: true, Log: true, Clicks: true, Coords: true, Swipes: true}
}

// Enabled reports whether kind is written to the output.
func (c Config) Enabled(kind Kind) bool {
	if !c.JSON {
		return false
	}
	switch kind {
	case KindStatus:
		return c.Status
	case KindLog:
		return c.Log
	case KindClick:
		return c.Clicks
	case KindCoord:
		return c.Coords
	case KindSwipe:
		return c.Swipes
	}
	return false
}

// Sink receives every event regardless of the output toggles.
type Sink interface {
	Notify(e Event)
}

// SinkFunc adapts a function to a Sink.
type SinkFunc func(e Event)

func (f SinkFunc) Notify(e Event) { f(e) }

// Notifier serializes events to a writer, one JSON object per line.
type Notifier struct {
	mu     sync.Mutex
	out    io.Writer
	config Config
	sinks  []Sink
	now    func() time.Time
}

// New creates a Notifier writing to out.
func New(out io.Writer, config Config) *Notifier {
	return &Notifier{
		out:    out,
		config: config,
		now:    time.Now,
	}
}

// AddSink registers a subscriber.
func (n *Notifier) AddSink(s Sink) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sinks = append(n.sinks, s)
}

// Config returns the output toggles.
func (n *Notifier) Config() Config {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.config
}

// Emit writes e if its channel is enabled and passes it to every sink.
func (n *Notifier) Emit(e Event) error {
	if e.Time.IsZero() {
		e.Time = n.now()
	}

	n.mu.Lock()
	sinks := n.sinks
	var err error
	if n.config.Enabled(e.Kind) {
		err = n.write(e)
	}
	n.mu.Unlock()

	for _, s := range sinks {
		s.Notify(e)
	}
	return err
}

func (n *Notifier) write(e Event) error {
	line, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("encode %s event: %w", e.Kind, err)
	}
	line = append(line, '\n')
	if _, err := n.out.Write(line); err != nil {
		return fmt.Errorf("write %s event: %w", e.Kind, err)
	}
	return nil
}

// Status reports a frame category or a device state.
func (n *Notifier) Status(status string) error {
	return n.Emit(Event{Kind: KindStatus, Text: status})
}

// Log reports a lifecycle message.
func (n *Notifier) Log(format string, args ...any) error {
	return n.Emit(Event{Kind: KindLog, Text: fmt.Sprintf(format, args...)})
}

// Click reports a dwell click.
func (n *Notifier) Click(p image.Point) error {
	return n.Emit(Event{Kind: KindClick, Point: p})
}

// Coord reports a pointer position.
func (n *Notifier) Coord(p image.Point) error {
	return n.Emit(Event{Kind: KindCoord, Point: p})
}

// Swipe reports a classified stroke.
func (n *Notifier) Swipe(direction string) error {
	return n.Emit(Event{Kind: KindSwipe, Text: direction})
}
