// Package app wires the depth sensor, the gesture engine and the outputs together.
package app

import (
	"bufio"
	"context"
	"fmt"
	"image"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/ayusman/depthmouse/internal/capture"
	"github.com/ayusman/depthmouse/internal/config"
	"github.com/ayusman/depthmouse/internal/detector"
	"github.com/ayusman/depthmouse/internal/exchange"
	"github.com/ayusman/depthmouse/internal/gesture"
	"github.com/ayusman/depthmouse/internal/input"
	"github.com/ayusman/depthmouse/internal/log"
	"github.com/ayusman/depthmouse/internal/notify"
	"github.com/ayusman/depthmouse/internal/plugin"
	"github.com/ayusman/depthmouse/internal/store"
)

// PluginTimeout bounds a single plugin execution.
const PluginTimeout = 5 * time.Second

// Config holds configuration options for the application.
type Config struct {
	Tracking config.Config
	// Store holds gesture bindings and device settings. Optional.
	Store     *store.Store
	PluginDir string
	EmitNone  bool
	// DebugInput is read for a line at every swipe evaluation when
	// Tracking.DebugStop is set.
	DebugInput io.Reader
}

// Status is a snapshot of the tracking state.
type Status struct {
	Category    string      `json:"category"`
	Pointer     image.Point `json:"pointer"`
	HoverCycles int         `json:"hoverCycles"`
	StrokeLen   int         `json:"strokeLength"`
	LastSwipe   string      `json:"lastSwipe,omitempty"`
	LastSwipeAt time.Time   `json:"lastSwipeAt,omitzero"`
	Clicks      int         `json:"clicks"`
	Swipes      int         `json:"swipes"`
	Frames      uint64      `json:"frames"`
	Paused      bool        `json:"paused"`
	Tilt        int         `json:"tilt"`
	LED         string      `json:"led"`
}

// App runs the gesture pipeline for one sensor.
type App struct {
	config     Config
	sensor     capture.Sensor
	injector   input.Injector
	notifier   *notify.Notifier
	detector   *detector.Detector
	engine     *gesture.Engine
	exchange   *exchange.Exchange
	pluginMgr  *plugin.Manager
	pluginExec *plugin.Executor
	debugIn    *bufio.Reader

	ctx    context.Context
	cancel context.CancelFunc
	stop   atomic.Bool
	paused atomic.Bool
	wg     sync.WaitGroup

	// Owned by the capture goroutine.
	vis             []byte
	lastCategory    gesture.Category
	seenFrame       bool
	wasPaused       bool
	videoSizeWarned bool

	mu     sync.RWMutex
	status Status
	tilt   int
	led    capture.LEDMode
}

// New creates an App. The screen size comes from the injector.
func New(cfg Config, sensor capture.Sensor, injector input.Injector, notifier *notify.Notifier) (*App, error) {
	screenW, screenH := injector.ScreenSize()
	engineCfg := cfg.Tracking.Gesture(screenW, screenH, cfg.EmitNone)
	if err := engineCfg.Validate(); err != nil {
		return nil, err
	}

	det := detector.New(cfg.Tracking.Detector())
	w, h := det.Config().Width, det.Config().Height

	ctx, cancel := context.WithCancel(context.Background())
	a := &App{
		config:     cfg,
		sensor:     sensor,
		injector:   injector,
		notifier:   notifier,
		detector:   det,
		engine:     gesture.NewEngine(engineCfg),
		exchange:   exchange.New(w, h),
		pluginMgr:  plugin.NewManager(cfg.PluginDir),
		pluginExec: plugin.NewExecutor(PluginTimeout),
		ctx:        ctx,
		cancel:     cancel,
		vis:        make([]byte, 3*w*h),
		tilt:       cfg.Tracking.Tilt,
		led:        cfg.Tracking.LED,
	}
	if cfg.DebugInput != nil {
		a.debugIn = bufio.NewReader(cfg.DebugInput)
	}
	if cfg.Store != nil && cfg.Store.Settings().GetInt(store.SettingPaused, 0) != 0 {
		a.paused.Store(true)
	}

	notifier.Log("Display Size %d %d", screenW, screenH)
	return a, nil
}

// DiscoverPlugins scans the plugin directory and loads available plugins.
func (a *App) DiscoverPlugins() error {
	return a.pluginMgr.Discover()
}

// Open opens the sensor and applies the configured tilt, LED and log level.
// The configured values always win over settings saved by a previous run.
func (a *App) Open() error {
	a.notifier.Log("Opening Device")
	a.sensor.SetLogLevel(a.config.Tracking.SensorLogLevel)

	if err := a.sensor.Open(); err != nil {
		a.notifier.Log("No depth sensor found")
		return fmt.Errorf("open sensor: %w", err)
	}

	if err := a.sensor.SetTilt(a.config.Tracking.Tilt); err != nil {
		log.Warn("failed to set tilt", "degrees", a.config.Tracking.Tilt, "error", err)
	}
	if err := a.sensor.SetLED(a.config.Tracking.LED); err != nil {
		log.Warn("failed to set LED", "mode", a.config.Tracking.LED, "error", err)
	}
	a.saveSetting(store.SettingTilt, a.config.Tracking.Tilt)
	a.saveSetting(store.SettingLED, int(a.config.Tracking.LED))

	a.notifier.Log("Device opened")
	return nil
}

// Run delivers sensor frames to the pipeline until ctx is cancelled, Stop is
// called or the sensor runs out of frames.
func (a *App) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	unlink := context.AfterFunc(a.ctx, cancel)
	defer unlink()

	a.notifier.Log("Starting Streams")
	log.Info("tracking started", "paused", a.paused.Load())

	err := a.sensor.Run(ctx, a.HandleDepth, a.HandleVideo)

	a.notifier.Log("Start Shutting Down Streams")
	a.exchange.Close()
	a.wg.Wait()
	a.notifier.Log("Done Shutting Down Streams")

	if err != nil {
		return fmt.Errorf("sensor stopped: %w", err)
	}
	return nil
}

// Stop asks the pipeline to exit. Frames already in flight finish normally.
func (a *App) Stop() {
	a.stop.Store(true)
	a.cancel()
}

// Close releases the sensor. Errors are logged only.
func (a *App) Close() {
	if err := a.sensor.Close(); err != nil {
		log.Warn("failed to close sensor", "error", err)
	}
}

// SetPaused pauses or resumes tracking. While paused, frames still reach the
// preview but no pointer events are injected.
func (a *App) SetPaused(paused bool) {
	a.paused.Store(paused)
	if a.config.Store != nil {
		v := 0
		if paused {
			v = 1
		}
		if err := a.config.Store.Settings().SetInt(store.SettingPaused, v); err != nil {
			log.Warn("failed to save paused state", "error", err)
		}
	}
	if paused {
		a.notifier.Log("Tracking paused")
	} else {
		a.notifier.Log("Tracking resumed")
	}
}

// Paused reports whether tracking is paused.
func (a *App) Paused() bool {
	return a.paused.Load()
}

// Status returns a snapshot of the tracking state.
func (a *App) Status() Status {
	a.mu.RLock()
	defer a.mu.RUnlock()
	s := a.status
	s.Paused = a.paused.Load()
	s.Tilt = a.tilt
	s.LED = a.led.String()
	return s
}

// Exchange returns the preview frame exchange.
func (a *App) Exchange() *exchange.Exchange {
	return a.exchange
}

// Notifier returns the event notifier.
func (a *App) Notifier() *notify.Notifier {
	return a.notifier
}

// PluginManager returns the plugin manager.
func (a *App) PluginManager() *plugin.Manager {
	return a.pluginMgr
}

// ShowScreen reports whether the preview is enabled.
func (a *App) ShowScreen() bool {
	return a.config.Tracking.ShowScreen
}
