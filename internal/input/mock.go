package input

import (
	"image"
	"sync"
)

// EventKind identifies a recorded injection.
type EventKind string

const (
	EventMove  EventKind = "move"
	EventClick EventKind = "click"
)

// Event is one recorded injection.
type Event struct {
	Kind  EventKind
	Point image.Point
}

// MockInjector records injections for tests.
type MockInjector struct {
	mu     sync.Mutex
	width  int
	height int
	events []Event
	err    error
}

// NewMockInjector creates a MockInjector with the given screen size.
func NewMockInjector(width, height int) *MockInjector {
	return &MockInjector{width: width, height: height}
}

// SetError makes every later call fail with err.
func (m *MockInjector) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

func (m *MockInjector) Move(p image.Point) error {
	return m.record(EventMove, p)
}

func (m *MockInjector) Click(p image.Point) error {
	return m.record(EventClick, p)
}

func (m *MockInjector) record(kind EventKind, p image.Point) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.events = append(m.events, Event{Kind: kind, Point: p})
	return nil
}

func (m *MockInjector) ScreenSize() (int, int) {
	return m.width, m.height
}

// Events returns a copy of the recorded events.
func (m *MockInjector) Events() []Event {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Event(nil), m.events...)
}

// Count returns how many events of kind were recorded.
func (m *MockInjector) Count(kind EventKind) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, e := range m.events {
		if e.Kind == kind {
			n++
		}
	}
	return n
}
