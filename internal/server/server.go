// Package server provides the HTTP server for the depth mouse.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/ayusman/depthmouse/internal/app"
	"github.com/ayusman/depthmouse/internal/exchange"
	"github.com/ayusman/depthmouse/internal/log"
	"github.com/ayusman/depthmouse/internal/plugin"
	"github.com/ayusman/depthmouse/internal/server/api"
	"github.com/ayusman/depthmouse/internal/store"
)

// Tracker is the running pipeline as seen by the HTTP surface.
type Tracker interface {
	api.Controller
	Status() app.Status
}

// Plugins resolves and lists plugins.
type Plugins interface {
	Resolve(name, action string) (*plugin.Plugin, error)
	List() []*plugin.Plugin
}

// Config holds the server configuration. Every field is optional; routes
// backed by a missing field are not registered.
type Config struct {
	StaticDir string
	Store     *store.Store
	Plugins   Plugins
	Tracker   Tracker
	// Exchange feeds /api/stream.
	Exchange *exchange.Exchange
	Events   *EventHub
}

// Server represents the HTTP server for the application.
type Server struct {
	config Config
	mux    *http.ServeMux
	start  time.Time
}

// New creates a new Server with the given configuration.
func New(config Config) *Server {
	s := &Server{
		config: config,
		mux:    http.NewServeMux(),
		start:  time.Now(),
	}
	s.setupRoutes()
	return s
}

// setupRoutes configures all HTTP routes for the server.
func (s *Server) setupRoutes() {
	s.mux.HandleFunc("/api/health", s.handleHealth)

	if s.config.Store != nil {
		var resolver api.ActionResolver
		if s.config.Plugins != nil {
			resolver = s.config.Plugins
		}
		bindings := api.NewBindingHandler(s.config.Store, resolver)
		s.mux.Handle("/api/bindings", bindings)
		s.mux.Handle("/api/bindings/", bindings)
	}

	if s.config.Plugins != nil {
		s.mux.Handle("/api/plugins", api.NewPluginHandler(s.config.Plugins))
	}

	if s.config.Tracker != nil {
		s.mux.HandleFunc("/api/status", s.handleStatus)
		device := api.NewDeviceHandler(s.config.Tracker)
		s.mux.Handle("/api/device", device)
		s.mux.Handle("/api/device/", device)
		s.mux.Handle("/api/tracking", device)
	}

	if s.config.Exchange != nil {
		s.mux.Handle("/api/stream", NewStreamHandler(s.config.Exchange))
	}

	if s.config.Events != nil {
		s.mux.Handle("/api/events", s.config.Events)
	}

	if s.config.StaticDir != "" {
		fs := http.FileServer(http.Dir(s.config.StaticDir))
		s.mux.Handle("/", fs)
	}
}

// ServeHTTP implements the http.Handler interface.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

// handleHealth handles GET requests to /api/health.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	writeJSON(w, map[string]any{
		"status": "ok",
		"uptime": time.Since(s.start).String(),
	})
}

// handleStatus handles GET requests to /api/status.
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	writeJSON(w, s.config.Tracker.Status())
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("http server listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
