package server

import (
	"fmt"
	"net/http"

	"gocv.io/x/gocv"

	"github.com/ayusman/depthmouse/internal/exchange"
	"github.com/ayusman/depthmouse/internal/log"
)

// StreamHandler serves the depth visualization and the color frame side by
// side as MJPEG. Every client owns its front buffers.
type StreamHandler struct {
	exchange *exchange.Exchange
}

// NewStreamHandler creates a new StreamHandler reading from x.
func NewStreamHandler(x *exchange.Exchange) *StreamHandler {
	return &StreamHandler{exchange: x}
}

// ServeHTTP streams MJPEG frames until the client leaves or the exchange closes.
func (h *StreamHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	w.Header().Set("Content-Type", "multipart/x-mixed-replace; boundary=frame")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	depth := make([]byte, h.exchange.BufferLen())
	rgb := make([]byte, h.exchange.BufferLen())

	for {
		if err := h.exchange.Wait(r.Context(), depth, rgb); err != nil {
			return
		}

		jpeg, err := h.encode(depth, rgb)
		if err != nil {
			log.Warn("failed to encode preview frame", "error", err)
			continue
		}

		fmt.Fprintf(w, "--frame\r\n")
		fmt.Fprintf(w, "Content-Type: image/jpeg\r\n")
		fmt.Fprintf(w, "Content-Length: %d\r\n\r\n", len(jpeg))
		if _, err := w.Write(jpeg); err != nil {
			return
		}
		fmt.Fprintf(w, "\r\n")

		if f, ok := w.(http.Flusher); ok {
			f.Flush()
		}
	}
}

// encode joins the two RGB buffers horizontally and encodes them as JPEG.
func (h *StreamHandler) encode(depth, rgb []byte) ([]byte, error) {
	width, height := h.exchange.Size()

	left, err := gocv.NewMatFromBytes(height, width, gocv.MatTypeCV8UC3, depth)
	if err != nil {
		return nil, err
	}
	defer left.Close()

	right, err := gocv.NewMatFromBytes(height, width, gocv.MatTypeCV8UC3, rgb)
	if err != nil {
		return nil, err
	}
	defer right.Close()

	joined := gocv.NewMat()
	defer joined.Close()
	gocv.Hconcat(left, right, &joined)

	bgr := gocv.NewMat()
	defer bgr.Close()
	gocv.CvtColor(joined, &bgr, gocv.ColorRGBToBGR)

	buf, err := gocv.IMEncode(".jpg", bgr)
	if err != nil {
		return nil, err
	}
	defer buf.Close()

	return append([]byte(nil), buf.GetBytes()...), nil
}
