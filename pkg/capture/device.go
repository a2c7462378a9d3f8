package capture

import "context"

// CameraDevice grants exclusive access to a camera.
type CameraDevice interface {
	// Open acquires the camera. The returned stream must be closed to
	// release it.
	Open(ctx context.Context) (CameraStream, error)
}

// CameraStream is a live camera.
type CameraStream interface {
	// Snapshot captures one still frame.
	Snapshot(ctx context.Context) ([]byte, error)
	// Close releases the camera. It must be safe to call more than
	// once.
	Close() error
}

// AudioDevice grants exclusive access to a microphone.
type AudioDevice interface {
	// Open acquires the microphone and starts delivering audio. The
	// returned stream must be closed to release it.
	Open(ctx context.Context) (AudioStream, error)
}

// AudioStream is a live microphone.
type AudioStream interface {
	// Chunks returns the audio data channel. It is closed when the
	// stream is closed.
	Chunks() <-chan []byte
	// Close stops delivery and releases the microphone. It must be
	// safe to call more than once.
	Close() error
}
