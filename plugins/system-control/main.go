// Package main provides a system control plugin.
// It handles volume and media playback controls by tapping the media keys.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/go-vgo/robotgo"

	"github.com/ayusman/depthmouse/internal/plugin"
)

// actionKeys maps action names to robotgo media key names.
var actionKeys = map[string]string{
	"volume-up":        "audio_vol_up",
	"volume-down":      "audio_vol_down",
	"volume-mute":      "audio_mute",
	"media-play-pause": "audio_play",
	"media-next":       "audio_next",
	"media-prev":       "audio_prev",
}

type tapFunc func(key string) error

func robotTap(key string) error {
	return robotgo.KeyTap(key)
}

func main() {
	json.NewEncoder(os.Stdout).Encode(handle(os.Stdin, robotTap))
}

// handle reads one request and taps the key for its action.
func handle(r io.Reader, tap tapFunc) plugin.Response {
	var req plugin.Request
	if err := json.NewDecoder(r).Decode(&req); err != nil {
		return errorResponse(fmt.Sprintf("failed to decode request: %v", err))
	}

	key, ok := actionKeys[req.Action]
	if !ok {
		return errorResponse(fmt.Sprintf("unknown action: %s", req.Action))
	}

	if err := tap(key); err != nil {
		return errorResponse(fmt.Sprintf("action %s failed: %v", req.Action, err))
	}
	return plugin.Response{Success: true}
}

func errorResponse(msg string) plugin.Response {
	return plugin.Response{Success: false, Error: msg}
}
