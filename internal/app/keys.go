package app

import (
	"bufio"
	"context"
	"io"

	"github.com/ayusman/depthmouse/internal/capture"
	"github.com/ayusman/depthmouse/internal/log"
)

// HandleKey applies a single-key device command: w tilts up, s levels, x
// tilts down, 0 to 6 select the LED mode and q or escape stops the app.
// It reports whether the key asked to quit.
func (a *App) HandleKey(key byte) bool {
	var err error
	switch {
	case key == 'w':
		_, err = a.TiltUp()
	case key == 's':
		_, err = a.TiltLevel()
	case key == 'x':
		_, err = a.TiltDown()
	case key >= '0' && key <= '6':
		err = a.SetLED(capture.LEDMode(key - '0'))
	case key == 'q' || key == 'Q' || key == 0x1b:
		a.Stop()
		return true
	}
	if err != nil {
		log.Warn("device command failed", "key", string(key), "error", err)
	}
	return false
}

// ReadKeys feeds every byte of r to HandleKey until r ends, ctx is
// cancelled or a quit key arrives.
func (a *App) ReadKeys(ctx context.Context, r io.Reader) {
	br := bufio.NewReader(r)
	for ctx.Err() == nil {
		b, err := br.ReadByte()
		if err != nil {
			return
		}
		if a.HandleKey(b) {
			return
		}
	}
}
