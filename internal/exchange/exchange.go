// Package exchange hands the latest depth visualization and color frame from
// the capture goroutine to preview renderers.
package exchange

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

var (
	// ErrClosed is returned by Wait after Close.
	ErrClosed = errors.New("exchange closed")
	// ErrFrameSize is returned when a published frame does not fill a buffer exactly.
	ErrFrameSize = errors.New("frame size mismatch")
)

// Exchange is a double buffer guarded by one mutex and condition. Writers
// overwrite the back buffers; readers block until two fresh writes have
// accumulated and then copy the back buffers into their own front buffers.
type Exchange struct {
	width  int
	height int

	mu     sync.Mutex
	cond   *sync.Cond
	depth  []byte
	rgb    []byte
	fresh  int
	writes uint64
	closed bool
}

// New creates an exchange for width x height frames with 3 bytes per pixel.
func New(width, height int) *Exchange {
	x := &Exchange{
		width:  width,
		height: height,
		depth:  make([]byte, 3*width*height),
		rgb:    make([]byte, 3*width*height),
	}
	x.cond = sync.NewCond(&x.mu)
	return x
}

// Size returns the frame dimensions.
func (x *Exchange) Size() (int, int) {
	return x.width, x.height
}

// BufferLen is the length of one front buffer.
func (x *Exchange) BufferLen() int {
	return 3 * x.width * x.height
}

// PublishDepth overwrites the depth visualization back buffer.
func (x *Exchange) PublishDepth(vis []byte) error {
	return x.publish(x.depth, vis)
}

// PublishVideo overwrites the color back buffer. Frames of the wrong size
// are rejected and do not count as a write.
func (x *Exchange) PublishVideo(rgb []byte) error {
	return x.publish(x.rgb, rgb)
}

func (x *Exchange) publish(dst, src []byte) error {
	if len(src) != len(dst) {
		return fmt.Errorf("%w: %d bytes, want %d", ErrFrameSize, len(src), len(dst))
	}

	x.mu.Lock()
	defer x.mu.Unlock()

	copy(dst, src)
	x.fresh++
	x.writes++
	x.cond.Broadcast()
	return nil
}

// Wait blocks until two writes have landed since the last hand-off, then
// copies the back buffers into depthDst and rgbDst and resets the counter.
// A nil destination is skipped.
func (x *Exchange) Wait(ctx context.Context, depthDst, rgbDst []byte) error {
	stop := context.AfterFunc(ctx, func() {
		x.mu.Lock()
		x.cond.Broadcast()
		x.mu.Unlock()
	})
	defer stop()

	x.mu.Lock()
	defer x.mu.Unlock()

	for x.fresh < 2 && !x.closed && ctx.Err() == nil {
		x.cond.Wait()
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if x.closed {
		return ErrClosed
	}

	if depthDst != nil {
		copy(depthDst, x.depth)
	}
	if rgbDst != nil {
		copy(rgbDst, x.rgb)
	}
	x.fresh = 0
	return nil
}

// Writes returns the number of writes since creation.
func (x *Exchange) Writes() uint64 {
	x.mu.Lock()
	defer x.mu.Unlock()
	return x.writes
}

// Close wakes every waiter with ErrClosed.
func (x *Exchange) Close() {
	x.mu.Lock()
	defer x.mu.Unlock()
	x.closed = true
	x.cond.Broadcast()
}
