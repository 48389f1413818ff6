// Package plugin discovers and runs external action plugins bound to gestures.
package plugin

import "encoding/json"

// Manifest describes a plugin's metadata and capabilities.
type Manifest struct {
	Name         string          `json:"name"`
	Version      string          `json:"version"`
	Description  string          `json:"description"`
	Executable   string          `json:"executable"`
	Actions      []string        `json:"actions"`
	ConfigSchema json.RawMessage `json:"configSchema,omitempty"`
}

// Point is a screen position passed to plugins.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Request is written to a plugin's stdin as JSON.
type Request struct {
	Action string `json:"action"`
	// Trigger is the gesture that fired, e.g. "swipe-left" or "click".
	Trigger string          `json:"trigger"`
	Point   *Point          `json:"point,omitempty"`
	Config  json.RawMessage `json:"config"`
}

// Response is read from a plugin's stdout.
type Response struct {
	Success bool            `json:"success"`
	Error   string          `json:"error,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// Plugin represents a discovered plugin with its manifest and location.
type Plugin struct {
	Manifest   Manifest
	Path       string
	Executable string
}

// HasAction reports whether the plugin declares action.
func (p *Plugin) HasAction(action string) bool {
	for _, a := range p.Manifest.Actions {
		if a == action {
			return true
		}
	}
	return false
}
