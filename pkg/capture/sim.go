package capture

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// SimCamera is an in-process camera for development and tests. Each
// snapshot yields a small deterministic frame.
type SimCamera struct {
	// OpenDelay simulates device warm-up.
	OpenDelay time.Duration
	// Frame, if set, is returned by every snapshot instead of the
	// generated one.
	Frame []byte

	mu    sync.Mutex
	opens int
}

// Open implements CameraDevice.
func (c *SimCamera) Open(ctx context.Context) (CameraStream, error) {
	if c.OpenDelay > 0 {
		select {
		case <-time.After(c.OpenDelay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	c.mu.Lock()
	c.opens++
	c.mu.Unlock()
	return &simCameraStream{cam: c}, nil
}

// Opens reports how many times the camera has been acquired.
func (c *SimCamera) Opens() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.opens
}

type simCameraStream struct {
	cam *SimCamera

	mu     sync.Mutex
	closed bool
	shots  int
}

func (s *simCameraStream) Snapshot(ctx context.Context) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, fmt.Errorf("capture: sim camera stream is closed")
	}
	s.shots++
	if s.cam.Frame != nil {
		return s.cam.Frame, nil
	}
	// JPEG SOI marker followed by a frame counter, enough to look like
	// image data downstream.
	return fmt.Appendf([]byte{0xff, 0xd8}, "sim-frame-%d", s.shots), nil
}

func (s *simCameraStream) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

// SimMicrophone is an in-process microphone for development and tests.
// It emits fixed-size chunks at a fixed interval until closed.
type SimMicrophone struct {
	// ChunkSize is the chunk length in bytes. Defaults to 320, one
	// 10ms frame of 16kHz 16-bit mono.
	ChunkSize int
	// Interval is the emission period. Defaults to 10ms.
	Interval time.Duration
}

// Open implements AudioDevice.
func (m *SimMicrophone) Open(ctx context.Context) (AudioStream, error) {
	size := m.ChunkSize
	if size <= 0 {
		size = 320
	}
	interval := m.Interval
	if interval <= 0 {
		interval = 10 * time.Millisecond
	}
	stream := &simAudioStream{
		chunks: make(chan []byte),
		done:   make(chan struct{}),
	}
	go stream.run(size, interval)
	return stream, nil
}

type simAudioStream struct {
	chunks chan []byte
	done   chan struct{}
	once   sync.Once
}

func (s *simAudioStream) run(size int, interval time.Duration) {
	defer close(s.chunks)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	var seq byte
	for {
		select {
		case <-s.done:
			return
		case <-ticker.C:
			chunk := make([]byte, size)
			for i := range chunk {
				chunk[i] = seq
			}
			seq++
			select {
			case s.chunks <- chunk:
			case <-s.done:
				return
			}
		}
	}
}

func (s *simAudioStream) Chunks() <-chan []byte {
	return s.chunks
}

func (s *simAudioStream) Close() error {
	s.once.Do(func() { close(s.done) })
	return nil
}
