package tray

import (
	"image"
	"testing"

	"github.com/ayusman/depthmouse/internal/notify"
)

func TestTray_Toggle(t *testing.T) {
	tr := New(false)

	var got []bool
	tr.OnToggle(func(paused bool) { got = append(got, paused) })

	tr.handleToggle()
	if !tr.IsPaused() {
		t.Error("IsPaused() = false after first toggle")
	}
	tr.handleToggle()
	if tr.IsPaused() {
		t.Error("IsPaused() = true after second toggle")
	}

	if len(got) != 2 || !got[0] || got[1] {
		t.Errorf("callbacks = %v, want [true false]", got)
	}
}

func TestTray_Tilt(t *testing.T) {
	tr := New(true)
	tr.handleTilt(TiltUp) // no callback yet

	var actions []string
	tr.OnTilt(func(action string) { actions = append(actions, action) })
	tr.handleTilt(TiltUp)
	tr.handleTilt(TiltLevel)
	tr.handleTilt(TiltDown)

	if len(actions) != 3 || actions[0] != "up" || actions[1] != "level" || actions[2] != "down" {
		t.Errorf("actions = %v", actions)
	}
}

func TestTray_Notify(t *testing.T) {
	tr := New(false)

	if tr.LastGesture() != "" {
		t.Errorf("LastGesture() = %q, want empty", tr.LastGesture())
	}

	tests := []struct {
		event notify.Event
		want  string
	}{
		{notify.Event{Kind: notify.KindSwipe, Text: "left"}, "swipe left"},
		{notify.Event{Kind: notify.KindCoord, Point: image.Pt(1, 2)}, "swipe left"},
		{notify.Event{Kind: notify.KindClick, Point: image.Pt(975, 551)}, "click at 975,551"},
		{notify.Event{Kind: notify.KindStatus, Text: "Angle: 4 degrees"}, "click at 975,551"},
	}
	for _, tt := range tests {
		tr.Notify(tt.event)
		if tr.LastGesture() != tt.want {
			t.Errorf("after %+v: LastGesture() = %q, want %q", tt.event, tr.LastGesture(), tt.want)
		}
	}
}

func TestTitles(t *testing.T) {
	if toggleTitle(true) != "○ Paused" || toggleTitle(false) != "● Tracking" {
		t.Error("toggle titles")
	}
	if lastTitle("") != "Last: none" || lastTitle("swipe up") != "Last: swipe up" {
		t.Error("last gesture titles")
	}
}
