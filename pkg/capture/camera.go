package capture

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
)

// Camera is the still-image capture workflow. It is created by a
// Manager; use Manager.OpenCamera.
type Camera struct {
	device CameraDevice
	logger *slog.Logger

	mu     sync.Mutex
	status Status
	stream CameraStream
	shot   []byte
}

// newCamera creates a workflow already in the acquiring state so the
// manager's one-per-kind check holds from the moment it is published.
func newCamera(device CameraDevice, logger *slog.Logger) *Camera {
	return &Camera{device: device, logger: logger, status: StatusAcquiring}
}

// Status returns the workflow state.
func (c *Camera) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status
}

// acquire opens the camera device. If the workflow is closed while the
// device is still being acquired, the freshly opened stream is released
// right away and the workflow stays closed.
func (c *Camera) acquire(ctx context.Context) error {
	stream, err := c.device.Open(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.status != StatusAcquiring {
		// Closed while acquiring. The late stream must not leak.
		if err == nil {
			if cerr := stream.Close(); cerr != nil {
				c.logger.Warn("capture: releasing late camera stream", "error", cerr)
			}
		}
		return ErrClosed
	}
	if err != nil {
		c.status = StatusClosed
		return fmt.Errorf("%w: %v", ErrDeviceUnavailable, err)
	}
	c.stream = stream
	c.status = StatusActive
	return nil
}

// Snap captures a frame and moves the workflow to reviewing.
func (c *Camera) Snap(ctx context.Context) ([]byte, error) {
	c.mu.Lock()
	if c.status != StatusActive {
		s := c.status
		c.mu.Unlock()
		return nil, stateErr("snap", s)
	}
	stream := c.stream
	c.mu.Unlock()

	shot, err := stream.Snapshot(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.status != StatusActive {
		// Closed during the snapshot, the frame is discarded.
		return nil, ErrClosed
	}
	if err != nil {
		return nil, err
	}
	c.shot = shot
	c.status = StatusReviewing
	return shot, nil
}

// Retake discards the held frame and returns to the live preview.
func (c *Camera) Retake() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.status != StatusReviewing {
		return stateErr("retake", c.status)
	}
	c.shot = nil
	c.status = StatusActive
	return nil
}

// Image returns the frame held for review.
func (c *Camera) Image() ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.status != StatusReviewing {
		return nil, stateErr("read the image", c.status)
	}
	return c.shot, nil
}

// Submit hands the held frame to the caller for delivery and moves the
// workflow to submitting. The workflow still needs a Close afterwards,
// whether the delivery succeeds or not.
func (c *Camera) Submit() ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.status != StatusReviewing {
		return nil, stateErr("submit", c.status)
	}
	c.status = StatusSubmitting
	return c.shot, nil
}

// Close ends the workflow from any state and releases the camera. Any
// held or in-flight frame is discarded. Closing twice is a no-op.
func (c *Camera) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.status == StatusClosed {
		return nil
	}
	c.status = StatusClosed
	c.shot = nil
	return c.releaseLocked()
}

// releaseLocked releases the device stream at most once.
func (c *Camera) releaseLocked() error {
	if c.stream == nil {
		return nil
	}
	stream := c.stream
	c.stream = nil
	return stream.Close()
}
