package capture

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
)

// Manager owns the capture devices and enforces at most one open
// workflow per kind. Its CloseAll is hooked into the session teardown
// so an ending call always releases the devices.
type Manager struct {
	camera CameraDevice
	audio  AudioDevice
	logger *slog.Logger

	mu  sync.Mutex
	cam *Camera
	rec *Recorder
}

// NewManager creates a manager. Either device may be nil when the
// corresponding capability is absent; opening that kind then fails.
func NewManager(camera CameraDevice, audio AudioDevice) *Manager {
	return &Manager{
		camera: camera,
		audio:  audio,
		logger: slog.Default(),
	}
}

// OpenCamera starts a still-image workflow. A second camera workflow
// while one is open is rejected with ErrBusy.
func (m *Manager) OpenCamera(ctx context.Context) (*Camera, error) {
	m.mu.Lock()
	if m.camera == nil {
		m.mu.Unlock()
		return nil, fmt.Errorf("capture: no camera device is configured")
	}
	if m.cam != nil && m.cam.Status().Open() {
		m.mu.Unlock()
		return nil, ErrBusy
	}
	cam := newCamera(m.camera, m.logger)
	m.cam = cam
	m.mu.Unlock()

	if err := cam.acquire(ctx); err != nil {
		return nil, err
	}
	return cam, nil
}

// OpenRecorder starts an audio workflow. A second audio workflow while
// one is open is rejected with ErrBusy.
func (m *Manager) OpenRecorder(ctx context.Context) (*Recorder, error) {
	m.mu.Lock()
	if m.audio == nil {
		m.mu.Unlock()
		return nil, fmt.Errorf("capture: no audio device is configured")
	}
	if m.rec != nil && m.rec.Status().Open() {
		m.mu.Unlock()
		return nil, ErrBusy
	}
	rec := newRecorder(m.audio, m.logger)
	m.rec = rec
	m.mu.Unlock()

	if err := rec.acquire(ctx); err != nil {
		return nil, err
	}
	return rec, nil
}

// Camera returns the current camera workflow, or nil.
func (m *Manager) Camera() *Camera {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cam
}

// Recorder returns the current audio workflow, or nil.
func (m *Manager) Recorder() *Recorder {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.rec
}

// CloseAll forces every open workflow to closed. It is safe to call at
// any time and as often as needed.
func (m *Manager) CloseAll() {
	m.mu.Lock()
	cam, rec := m.cam, m.rec
	m.mu.Unlock()

	if cam != nil {
		if err := cam.Close(); err != nil {
			m.logger.Warn("capture: closing camera workflow", "error", err)
		}
	}
	if rec != nil {
		if err := rec.Close(); err != nil {
			m.logger.Warn("capture: closing audio workflow", "error", err)
		}
	}
}
