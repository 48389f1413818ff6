// Package main provides a keyboard plugin.
// It taps keys and types text through robotgo, e.g. arrow keys to page a
// mirror display on swipes.
package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/go-vgo/robotgo"

	"github.com/ayusman/depthmouse/internal/plugin"
)

// TapConfig is the binding config of the tap action.
type TapConfig struct {
	Key       string   `json:"key"`
	Modifiers []string `json:"modifiers"` // cmd, alt, ctrl, shift
}

// TypeConfig is the binding config of the type action.
type TypeConfig struct {
	Text string `json:"text"`
}

// modifierMap maps user-friendly modifier names to robotgo key names.
var modifierMap = map[string]string{
	"command": "cmd",
	"cmd":     "cmd",
	"option":  "alt",
	"alt":     "alt",
	"control": "ctrl",
	"ctrl":    "ctrl",
	"shift":   "shift",
}

// Keyboard performs the key events.
type Keyboard interface {
	Tap(key string, modifiers []string) error
	Type(text string)
}

type robotKeyboard struct{}

func (robotKeyboard) Tap(key string, modifiers []string) error {
	if len(modifiers) == 0 {
		return robotgo.KeyTap(key)
	}
	return robotgo.KeyTap(key, modifiers)
}

func (robotKeyboard) Type(text string) {
	robotgo.TypeStr(text)
}

func main() {
	json.NewEncoder(os.Stdout).Encode(handle(os.Stdin, robotKeyboard{}))
}

// handle reads one request and performs it.
func handle(r io.Reader, kb Keyboard) plugin.Response {
	var req plugin.Request
	if err := json.NewDecoder(r).Decode(&req); err != nil {
		return failure(fmt.Sprintf("failed to decode request: %v", err))
	}

	var err error
	switch req.Action {
	case "tap":
		err = tap(req.Config, kb)
	case "type":
		err = typeText(req.Config, kb)
	default:
		return failure(fmt.Sprintf("unknown action: %s", req.Action))
	}
	if err != nil {
		return failure(fmt.Sprintf("action %s failed: %v", req.Action, err))
	}
	return plugin.Response{Success: true}
}

func tap(config json.RawMessage, kb Keyboard) error {
	var c TapConfig
	if err := json.Unmarshal(config, &c); err != nil {
		return fmt.Errorf("failed to parse config: %w", err)
	}
	if c.Key == "" {
		return errors.New("key is required")
	}

	modifiers, err := normalizeModifiers(c.Modifiers)
	if err != nil {
		return err
	}
	return kb.Tap(strings.ToLower(c.Key), modifiers)
}

func typeText(config json.RawMessage, kb Keyboard) error {
	var c TypeConfig
	if err := json.Unmarshal(config, &c); err != nil {
		return fmt.Errorf("failed to parse config: %w", err)
	}
	if c.Text == "" {
		return errors.New("text is required")
	}
	kb.Type(c.Text)
	return nil
}

func normalizeModifiers(mods []string) ([]string, error) {
	var out []string
	for _, m := range mods {
		name, ok := modifierMap[strings.ToLower(m)]
		if !ok {
			return nil, fmt.Errorf("unknown modifier %q", m)
		}
		out = append(out, name)
	}
	return out, nil
}

func failure(msg string) plugin.Response {
	return plugin.Response{Success: false, Error: msg}
}
