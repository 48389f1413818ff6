package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/ayusman/depthmouse/internal/capture"
)

// Controller is the sensor and tracking control surface.
type Controller interface {
	Tilt() int
	TiltUp() (int, error)
	TiltDown() (int, error)
	TiltLevel() (int, error)
	SetTilt(degrees int) (int, error)
	LED() capture.LEDMode
	SetLED(mode capture.LEDMode) error
	Paused() bool
	SetPaused(paused bool)
}

// DeviceHandler serves /api/device and /api/tracking.
type DeviceHandler struct {
	ctl Controller
}

// NewDeviceHandler creates a DeviceHandler.
func NewDeviceHandler(ctl Controller) *DeviceHandler {
	return &DeviceHandler{ctl: ctl}
}

type deviceResponse struct {
	Tilt    int    `json:"tilt"`
	LED     int    `json:"led"`
	LEDName string `json:"led_name"`
	Paused  bool   `json:"paused"`
}

type tiltRequest struct {
	Action  string `json:"action"`
	Degrees *int   `json:"degrees"`
}

type ledRequest struct {
	Mode *int `json:"mode"`
}

type trackingRequest struct {
	Paused *bool `json:"paused"`
}

func (h *DeviceHandler) state() deviceResponse {
	led := h.ctl.LED()
	return deviceResponse{
		Tilt:    h.ctl.Tilt(),
		LED:     int(led),
		LEDName: led.String(),
		Paused:  h.ctl.Paused(),
	}
}

// ServeHTTP routes GET /api/device, POST /api/device/tilt, POST /api/device/led
// and POST /api/tracking.
func (h *DeviceHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimSuffix(r.URL.Path, "/")

	if path == "/api/device" || (path == "/api/tracking" && r.Method == http.MethodGet) {
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		writeJSON(w, http.StatusOK, h.state())
		return
	}

	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	switch path {
	case "/api/device/tilt":
		h.tilt(w, r)
	case "/api/device/led":
		h.led(w, r)
	case "/api/tracking":
		h.tracking(w, r)
	default:
		writeError(w, http.StatusNotFound, "Not found")
	}
}

func (h *DeviceHandler) tilt(w http.ResponseWriter, r *http.Request) {
	var req tiltRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	var err error
	switch {
	case req.Degrees != nil:
		_, err = h.ctl.SetTilt(*req.Degrees)
	case req.Action == "up":
		_, err = h.ctl.TiltUp()
	case req.Action == "down":
		_, err = h.ctl.TiltDown()
	case req.Action == "level":
		_, err = h.ctl.TiltLevel()
	default:
		writeError(w, http.StatusBadRequest, "action must be up, down or level")
		return
	}
	if err != nil {
		if errors.Is(err, capture.ErrTiltRange) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, h.state())
}

func (h *DeviceHandler) led(w http.ResponseWriter, r *http.Request) {
	var req ledRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.Mode == nil || !capture.LEDMode(*req.Mode).Valid() {
		writeError(w, http.StatusBadRequest, "mode must be 0 to 6")
		return
	}

	if err := h.ctl.SetLED(capture.LEDMode(*req.Mode)); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, h.state())
}

func (h *DeviceHandler) tracking(w http.ResponseWriter, r *http.Request) {
	var req trackingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.Paused == nil {
		writeError(w, http.StatusBadRequest, "paused is required")
		return
	}

	h.ctl.SetPaused(*req.Paused)
	writeJSON(w, http.StatusOK, h.state())
}
