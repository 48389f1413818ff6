package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"runtime"
	"syscall"

	"github.com/ayusman/depthmouse/internal/app"
	"github.com/ayusman/depthmouse/internal/capture"
	"github.com/ayusman/depthmouse/internal/config"
	"github.com/ayusman/depthmouse/internal/exchange"
	"github.com/ayusman/depthmouse/internal/input"
	"github.com/ayusman/depthmouse/internal/log"
	"github.com/ayusman/depthmouse/internal/notify"
	"github.com/ayusman/depthmouse/internal/server"
	"github.com/ayusman/depthmouse/internal/store"
	"github.com/ayusman/depthmouse/internal/tray"
)

func main() {
	os.Exit(run(os.Args, os.Stdin, os.Stdout))
}

// run starts the tracker and returns the process exit code.
func run(args []string, stdin io.Reader, stdout io.Writer) int {
	program := filepath.Base(args[0])

	cfg, err := config.Parse(args[1:])
	if err != nil {
		out := notify.New(stdout, notify.DefaultConfig())
		if errors.Is(err, config.ErrArgCount) {
			config.WriteUsage(stdout, program)
			out.Log("Wrong Number of Parameters: %d", len(args)-1)
		} else {
			out.Log("%v", err)
		}
		return 1
	}

	env, err := config.LoadEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load environment: %v\n", err)
		return 1
	}
	level := env.LogLevel
	if cfg.Debug {
		level = "debug"
	}
	log.Init(level)
	for _, line := range cfg.Summary() {
		log.Debug("parameter " + line)
	}

	notifier := notify.New(stdout, cfg.Notify())

	if err := os.MkdirAll(filepath.Dir(env.DBPath), 0755); err != nil {
		log.Error("failed to create data directory", "error", err)
		return 1
	}
	st, err := store.New(env.DBPath)
	if err != nil {
		log.Error("failed to initialize store", "path", env.DBPath, "error", err)
		return 1
	}
	defer st.Close()

	notifier.Log("Opening Display")
	injector, err := input.NewRobotInjector()
	if err != nil {
		notifier.Log("Unable to open display")
		log.Error("failed to open display", "error", err)
		return 1
	}

	sensor := capture.NewPlaybackSensor(capture.PlaybackConfig{
		DepthDir:    env.DepthDir,
		VideoDevice: env.VideoDevice,
		FPS:         env.FPS,
		Loop:        env.Loop,
	})

	hub := server.NewEventHub()
	notifier.AddSink(hub)

	a, err := app.New(app.Config{
		Tracking:   cfg,
		Store:      st,
		PluginDir:  env.PluginDir,
		EmitNone:   env.EmitNone,
		DebugInput: stdin,
	}, sensor, injector, notifier)
	if err != nil {
		log.Error("invalid tracking configuration", "error", err)
		return 1
	}
	if err := a.DiscoverPlugins(); err != nil {
		log.Warn("failed to discover plugins", "dir", env.PluginDir, "error", err)
	}

	if err := a.Open(); err != nil {
		log.Error("failed to open sensor", "error", err)
		return 1
	}
	defer a.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go hub.Run(ctx)

	if env.Addr != "" {
		var preview *exchange.Exchange
		if cfg.ShowScreen {
			preview = a.Exchange()
		}
		srv := server.New(server.Config{
			StaticDir: findWebDir(),
			Store:     st,
			Plugins:   a.PluginManager(),
			Tracker:   a,
			Exchange:  preview,
			Events:    hub,
		})
		go func() {
			if err := srv.ListenAndServe(ctx, env.Addr); err != nil {
				log.Error("http server failed", "error", err)
			}
		}()
	}

	if cfg.ShowScreen && !cfg.DebugStop {
		go a.ReadKeys(ctx, stdin)
	}

	var runErr error
	finished := make(chan struct{})
	go func() {
		runErr = a.Run(ctx)
		close(finished)
	}()

	if env.Tray {
		t := newTray(a, env.Addr)
		notifier.AddSink(t)
		go func() {
			<-finished
			t.Quit()
		}()
		t.Run()
		a.Stop()
	}

	<-finished
	if runErr != nil {
		log.Error("tracking stopped", "error", runErr)
		return 1
	}
	return 0
}

func newTray(a *app.App, addr string) *tray.Tray {
	t := tray.New(a.Paused())
	t.OnToggle(a.SetPaused)
	t.OnTilt(func(action string) {
		var err error
		switch action {
		case tray.TiltUp:
			_, err = a.TiltUp()
		case tray.TiltLevel:
			_, err = a.TiltLevel()
		case tray.TiltDown:
			_, err = a.TiltDown()
		}
		if err != nil {
			log.Warn("tilt failed", "action", action, "error", err)
		}
	})
	t.OnPreview(func() {
		if addr == "" {
			log.Warn("preview needs DEPTHMOUSE_ADDR")
			return
		}
		openBrowser(previewURL(addr))
	})
	t.OnQuit(a.Stop)
	return t
}

func previewURL(addr string) string {
	if addr[0] == ':' {
		addr = "localhost" + addr
	}
	return "http://" + addr + "/api/stream"
}

func openBrowser(url string) {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}
	if err := cmd.Start(); err != nil {
		log.Warn("failed to open browser", "url", url, "error", err)
	}
}

// findWebDir searches for the web directory in common locations.
// It checks: "web", "../web", "../../web", and ~/.depthmouse/web.
// Returns the first existing directory or empty string if none found.
func findWebDir() string {
	for _, p := range []string{"web", "../web", "../../web"} {
		if info, err := os.Stat(p); err == nil && info.IsDir() {
			if abs, err := filepath.Abs(p); err == nil {
				return abs
			}
			return p
		}
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	homeWebDir := filepath.Join(homeDir, ".depthmouse", "web")
	if info, err := os.Stat(homeWebDir); err == nil && info.IsDir() {
		return homeWebDir
	}
	return ""
}
