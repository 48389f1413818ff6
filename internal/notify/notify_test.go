package notify

import (
	"bytes"
	"errors"
	"image"
	"strings"
	"testing"
)

func TestNotifier_Lines(t *testing.T) {
	var buf bytes.Buffer
	n := New(&buf, DefaultConfig())

	n.Status("tooclose")
	n.Log("Wrong Number of Parameters: %d", 3)
	n.Click(image.Pt(10, 20))
	n.Coord(image.Pt(-3, 1100))
	n.Swipe("left")

	want := []string{
		`{"status":"tooclose"}`,
		`{"log":"Wrong Number of Parameters: 3"}`,
		`{"click":{"xy":"[ 10 , 20]"}}`,
		`{"coord":{"xy":"[ -3 , 1100]"}}`,
		`{"swipe":"left"}`,
	}
	got := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	if len(got) != len(want) {
		t.Fatalf("got %d lines:\n%s", len(got), buf.String())
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("line %d = %s, want %s", i, got[i], want[i])
		}
	}
}

func TestNotifier_Toggles(t *testing.T) {
	tests := []struct {
		name   string
		config Config
		want   string
	}{
		{"master off", Config{Status: true, Log: true, Clicks: true, Coords: true, Swipes: true}, ""},
		{"only swipes", Config{JSON: true, Swipes: true}, `{"swipe":"up"}` + "\n"},
		{"only clicks", Config{JSON: true, Clicks: true}, `{"click":{"xy":"[ 1 , 2]"}}` + "\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			n := New(&buf, tt.config)
			n.Status("valid")
			n.Log("hello")
			n.Click(image.Pt(1, 2))
			n.Coord(image.Pt(1, 2))
			n.Swipe("up")

			if buf.String() != tt.want {
				t.Errorf("output = %q, want %q", buf.String(), tt.want)
			}
		})
	}
}

func TestNotifier_SinksIgnoreToggles(t *testing.T) {
	var buf bytes.Buffer
	n := New(&buf, Config{})

	var got []Event
	n.AddSink(SinkFunc(func(e Event) { got = append(got, e) }))

	n.Status("toofar")
	n.Swipe("right")

	if buf.Len() != 0 {
		t.Errorf("output = %q, want none", buf.String())
	}
	if len(got) != 2 || got[0].Kind != KindStatus || got[1].Text != "right" {
		t.Fatalf("sink events = %+v", got)
	}
	if got[0].Time.IsZero() {
		t.Error("event time not set")
	}
}

type failWriter struct{}

func (failWriter) Write([]byte) (int, error) { return 0, errors.New("closed") }

func TestNotifier_WriteError(t *testing.T) {
	n := New(failWriter{}, DefaultConfig())
	if err := n.Log("x"); err == nil {
		t.Error("Log() expected write error")
	}
}
