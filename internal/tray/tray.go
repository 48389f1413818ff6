// Package tray provides a system tray menu for the depth mouse.
package tray

import (
	"fmt"
	"sync"

	"github.com/getlantern/systray"

	"github.com/ayusman/depthmouse/internal/notify"
)

// Tilt menu actions passed to the OnTilt callback.
const (
	TiltUp    = "up"
	TiltLevel = "level"
	TiltDown  = "down"
)

// Tray represents the system tray application.
type Tray struct {
	onToggle  func(paused bool)
	onTilt    func(action string)
	onPreview func()
	onQuit    func()
	paused    bool
	last      string
	mu        sync.RWMutex

	// Menu items stored for later updates
	menuToggle      *systray.MenuItem
	menuLastGesture *systray.MenuItem
	menuAngle       *systray.MenuItem
}

// New creates a new Tray. paused is the initial tracking state.
func New(paused bool) *Tray {
	return &Tray{paused: paused}
}

// OnToggle sets the callback called when tracking is paused or resumed.
func (t *Tray) OnToggle(fn func(paused bool)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onToggle = fn
}

// OnTilt sets the callback called with TiltUp, TiltLevel or TiltDown.
func (t *Tray) OnTilt(fn func(action string)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onTilt = fn
}

// OnPreview sets the callback called when the preview menu item is clicked.
func (t *Tray) OnPreview(fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onPreview = fn
}

// OnQuit sets the callback called when the quit menu item is clicked.
func (t *Tray) OnQuit(fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onQuit = fn
}

// Run starts the system tray application.
// This function blocks until systray.Quit() is called.
func (t *Tray) Run() {
	systray.Run(t.onReady, t.onExit)
}

// Quit closes the tray menu and makes Run return.
func (t *Tray) Quit() {
	systray.Quit()
}

func toggleTitle(paused bool) string {
	if paused {
		return "○ Paused"
	}
	return "● Tracking"
}

func lastTitle(name string) string {
	if name == "" {
		return "Last: none"
	}
	return "Last: " + name
}

func (t *Tray) onReady() {
	systray.SetTitle("DepthMouse")
	systray.SetTooltip("Depth camera mouse")

	t.mu.Lock()
	t.menuToggle = systray.AddMenuItem(toggleTitle(t.paused), "Pause or resume tracking")
	systray.AddSeparator()

	t.menuLastGesture = systray.AddMenuItem(lastTitle(t.last), "Last detected gesture")
	t.menuLastGesture.Disable()
	systray.AddSeparator()

	t.menuAngle = systray.AddMenuItem("Tilt", "Sensor tilt")
	t.mu.Unlock()

	menuUp := t.menuAngle.AddSubMenuItem("Up", "Tilt the sensor up one degree")
	menuLevel := t.menuAngle.AddSubMenuItem("Level", "Return the sensor to horizontal")
	menuDown := t.menuAngle.AddSubMenuItem("Down", "Tilt the sensor down one degree")

	menuPreview := systray.AddMenuItem("Open Preview...", "Open the depth preview in a browser")
	systray.AddSeparator()

	menuQuit := systray.AddMenuItem("Quit", "Quit DepthMouse")

	go func() {
		for {
			select {
			case <-t.menuToggle.ClickedCh:
				t.handleToggle()
			case <-menuUp.ClickedCh:
				t.handleTilt(TiltUp)
			case <-menuLevel.ClickedCh:
				t.handleTilt(TiltLevel)
			case <-menuDown.ClickedCh:
				t.handleTilt(TiltDown)
			case <-menuPreview.ClickedCh:
				t.handlePreview()
			case <-menuQuit.ClickedCh:
				t.handleQuit()
				return
			}
		}
	}()
}

func (t *Tray) onExit() {}

func (t *Tray) handleToggle() {
	t.mu.Lock()
	t.paused = !t.paused
	paused := t.paused
	if t.menuToggle != nil {
		t.menuToggle.SetTitle(toggleTitle(paused))
	}
	callback := t.onToggle
	t.mu.Unlock()

	// Call the callback outside the lock to prevent deadlocks
	if callback != nil {
		callback(paused)
	}
}

func (t *Tray) handleTilt(action string) {
	t.mu.RLock()
	callback := t.onTilt
	t.mu.RUnlock()

	if callback != nil {
		callback(action)
	}
}

func (t *Tray) handlePreview() {
	t.mu.RLock()
	callback := t.onPreview
	t.mu.RUnlock()

	if callback != nil {
		callback()
	}
}

func (t *Tray) handleQuit() {
	t.mu.RLock()
	callback := t.onQuit
	t.mu.RUnlock()

	if callback != nil {
		callback()
	}

	systray.Quit()
}

// Notify keeps the menu in step with gesture and device events.
func (t *Tray) Notify(e notify.Event) {
	switch e.Kind {
	case notify.KindSwipe:
		t.SetLastGesture("swipe " + e.Text)
	case notify.KindClick:
		t.SetLastGesture(fmt.Sprintf("click at %d,%d", e.Point.X, e.Point.Y))
	case notify.KindStatus:
		var degrees int
		if _, err := fmt.Sscanf(e.Text, "Angle: %d degrees", &degrees); err == nil {
			t.mu.RLock()
			if t.menuAngle != nil {
				t.menuAngle.SetTitle(fmt.Sprintf("Tilt (%d°)", degrees))
			}
			t.mu.RUnlock()
		}
	}
}

// SetLastGesture updates the last gesture display in the menu.
func (t *Tray) SetLastGesture(name string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.last = name
	if t.menuLastGesture != nil {
		t.menuLastGesture.SetTitle(lastTitle(name))
	}
}

// LastGesture returns the last gesture shown in the menu.
func (t *Tray) LastGesture() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.last
}

// IsPaused returns the current tracking state.
func (t *Tray) IsPaused() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.paused
}
