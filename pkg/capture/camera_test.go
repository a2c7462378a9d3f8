package capture

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"testing"
)

type fakeCamStream struct {
	mu     sync.Mutex
	closes int
	shots  int
}

func (s *fakeCamStream) Snapshot(ctx context.Context) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.shots++
	return fmt.Appendf(nil, "frame-%d", s.shots), nil
}

func (s *fakeCamStream) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closes++
	return nil
}

func (s *fakeCamStream) closeCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closes
}

type fakeCamDevice struct {
	mu      sync.Mutex
	opens   int
	streams []*fakeCamStream

	// gate, if set, blocks Open until it is closed.
	gate chan struct{}
	// openErr, if set, makes Open fail.
	openErr error
}

func (d *fakeCamDevice) Open(ctx context.Context) (CameraStream, error) {
	if d.gate != nil {
		<-d.gate
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.openErr != nil {
		return nil, d.openErr
	}
	d.opens++
	stream := &fakeCamStream{}
	d.streams = append(d.streams, stream)
	return stream, nil
}

func newTestCamera(t *testing.T, device CameraDevice) *Camera {
	t.Helper()
	cam := newCamera(device, slog.Default())
	if err := cam.acquire(t.Context()); err != nil {
		t.Fatalf("acquire() error = %v", err)
	}
	return cam
}

func TestCameraLifecycle(t *testing.T) {
	device := &fakeCamDevice{}
	cam := newTestCamera(t, device)

	if cam.Status() != StatusActive {
		t.Fatalf("status = %v, want active", cam.Status())
	}

	shot, err := cam.Snap(t.Context())
	if err != nil {
		t.Fatalf("Snap() error = %v", err)
	}
	if string(shot) != "frame-1" {
		t.Errorf("shot = %q, want frame-1", shot)
	}
	if cam.Status() != StatusReviewing {
		t.Fatalf("status = %v, want reviewing", cam.Status())
	}

	held, err := cam.Image()
	if err != nil {
		t.Fatalf("Image() error = %v", err)
	}
	if string(held) != string(shot) {
		t.Errorf("Image() = %q, want %q", held, shot)
	}

	submitted, err := cam.Submit()
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if string(submitted) != string(shot) {
		t.Errorf("Submit() = %q, want %q", submitted, shot)
	}
	if cam.Status() != StatusSubmitting {
		t.Fatalf("status = %v, want submitting", cam.Status())
	}

	if err := cam.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if cam.Status() != StatusClosed {
		t.Fatalf("status = %v, want closed", cam.Status())
	}
	if got := device.streams[0].closeCount(); got != 1 {
		t.Errorf("stream closed %d times, want 1", got)
	}
}

func TestCameraRetakeDiscardsFrame(t *testing.T) {
	cam := newTestCamera(t, &fakeCamDevice{})

	if _, err := cam.Snap(t.Context()); err != nil {
		t.Fatalf("Snap() error = %v", err)
	}
	if err := cam.Retake(); err != nil {
		t.Fatalf("Retake() error = %v", err)
	}
	if cam.Status() != StatusActive {
		t.Fatalf("status = %v, want active", cam.Status())
	}
	if _, err := cam.Image(); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("Image() after retake error = %v, want ErrInvalidState", err)
	}

	// The next snapshot is a fresh frame, not the discarded one.
	shot, err := cam.Snap(t.Context())
	if err != nil {
		t.Fatalf("second Snap() error = %v", err)
	}
	if string(shot) != "frame-2" {
		t.Errorf("shot = %q, want frame-2", shot)
	}
}

func TestCameraCloseIsIdempotent(t *testing.T) {
	device := &fakeCamDevice{}
	cam := newTestCamera(t, device)

	if err := cam.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if err := cam.Close(); err != nil {
		t.Fatalf("second Close() error = %v", err)
	}
	if got := device.streams[0].closeCount(); got != 1 {
		t.Errorf("stream closed %d times, want 1", got)
	}
}

func TestCameraInvalidStateErrors(t *testing.T) {
	cam := newTestCamera(t, &fakeCamDevice{})

	// Active: no frame to retake, read or submit yet.
	if err := cam.Retake(); !errors.Is(err, ErrInvalidState) {
		t.Errorf("Retake() while active error = %v, want ErrInvalidState", err)
	}
	if _, err := cam.Submit(); !errors.Is(err, ErrInvalidState) {
		t.Errorf("Submit() while active error = %v, want ErrInvalidState", err)
	}

	if err := cam.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if _, err := cam.Snap(t.Context()); !errors.Is(err, ErrInvalidState) {
		t.Errorf("Snap() after close error = %v, want ErrInvalidState", err)
	}
}
