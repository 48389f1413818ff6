package input

import (
	"errors"
	"image"
	"testing"
)

var _ Injector = (*RobotInjector)(nil)
var _ Injector = (*MockInjector)(nil)

func TestMockInjector(t *testing.T) {
	m := NewMockInjector(1920, 1080)

	m.Move(image.Pt(1, 2))
	m.Click(image.Pt(3, 4))
	m.Move(image.Pt(5, 6))

	events := m.Events()
	want := []Event{
		{EventMove, image.Pt(1, 2)},
		{EventClick, image.Pt(3, 4)},
		{EventMove, image.Pt(5, 6)},
	}
	if len(events) != len(want) {
		t.Fatalf("Events() = %v, want %v", events, want)
	}
	for i := range want {
		if events[i] != want[i] {
			t.Errorf("event %d = %v, want %v", i, events[i], want[i])
		}
	}
	if m.Count(EventMove) != 2 || m.Count(EventClick) != 1 {
		t.Errorf("counts = %d moves, %d clicks", m.Count(EventMove), m.Count(EventClick))
	}

	if w, h := m.ScreenSize(); w != 1920 || h != 1080 {
		t.Errorf("ScreenSize() = %dx%d", w, h)
	}
}

func TestMockInjector_Error(t *testing.T) {
	m := NewMockInjector(10, 10)
	boom := errors.New("boom")
	m.SetError(boom)

	if err := m.Click(image.Pt(0, 0)); !errors.Is(err, boom) {
		t.Errorf("Click() error = %v, want %v", err, boom)
	}
	if len(m.Events()) != 0 {
		t.Error("failed call was recorded")
	}
}

func TestRobotInjector_ScreenSize(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping display test in short mode")
	}

	r, err := NewRobotInjector()
	if errors.Is(err, ErrNoDisplay) {
		t.Skip("no display available")
	}
	if err != nil {
		t.Fatalf("NewRobotInjector() error = %v", err)
	}
	if w, h := r.ScreenSize(); w <= 0 || h <= 0 {
		t.Errorf("ScreenSize() = %dx%d", w, h)
	}
}
