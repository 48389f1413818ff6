package app

import (
	"fmt"

	"github.com/ayusman/depthmouse/internal/capture"
	"github.com/ayusman/depthmouse/internal/log"
	"github.com/ayusman/depthmouse/internal/store"
)

// Tilt steps. Tilting up stops one degree short of the motor limit.
const (
	MaxTiltUp   = capture.MaxTilt - 1
	MaxTiltDown = capture.MinTilt
)

// Tilt returns the current tilt angle in degrees.
func (a *App) Tilt() int {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.tilt
}

// LED returns the current LED mode.
func (a *App) LED() capture.LEDMode {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.led
}

// TiltUp raises the sensor by one degree.
func (a *App) TiltUp() (int, error) {
	return a.stepTilt(func(t int) int {
		if t < MaxTiltUp {
			t++
		}
		return t
	})
}

// TiltDown lowers the sensor by one degree.
func (a *App) TiltDown() (int, error) {
	return a.stepTilt(func(t int) int {
		if t > MaxTiltDown {
			t--
		}
		return t
	})
}

// TiltLevel returns the sensor to horizontal.
func (a *App) TiltLevel() (int, error) {
	return a.stepTilt(func(int) int { return 0 })
}

// SetTilt moves the sensor to degrees.
func (a *App) SetTilt(degrees int) (int, error) {
	if degrees < capture.MinTilt || degrees > capture.MaxTilt {
		return a.Tilt(), fmt.Errorf("%w: %d", capture.ErrTiltRange, degrees)
	}
	return a.stepTilt(func(int) int { return degrees })
}

func (a *App) stepTilt(next func(int) int) (int, error) {
	a.mu.Lock()
	degrees := next(a.tilt)
	if err := a.sensor.SetTilt(degrees); err != nil {
		cur := a.tilt
		a.mu.Unlock()
		return cur, fmt.Errorf("set tilt: %w", err)
	}
	a.tilt = degrees
	a.mu.Unlock()

	a.notifier.Status(fmt.Sprintf("Angle: %d degrees", degrees))
	a.saveSetting(store.SettingTilt, degrees)
	return degrees, nil
}

// SetLED switches the LED mode.
func (a *App) SetLED(mode capture.LEDMode) error {
	a.mu.Lock()
	if err := a.sensor.SetLED(mode); err != nil {
		a.mu.Unlock()
		return fmt.Errorf("set LED: %w", err)
	}
	a.led = mode
	a.mu.Unlock()

	a.notifier.Status(mode.String())
	a.saveSetting(store.SettingLED, int(mode))
	return nil
}

func (a *App) saveSetting(key string, value int) {
	if a.config.Store == nil {
		return
	}
	if err := a.config.Store.Settings().SetInt(key, value); err != nil {
		log.Warn("failed to save setting", "key", key, "error", err)
	}
}
