package capture

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// Recorder is the audio capture workflow. It is created by a Manager;
// use Manager.OpenRecorder.
type Recorder struct {
	device AudioDevice
	logger *slog.Logger

	mu       sync.Mutex
	status   Status
	stream   AudioStream
	buf      bytes.Buffer
	started  time.Time
	duration time.Duration
	drained  chan struct{}
}

// newRecorder creates a workflow already in the acquiring state, same
// as newCamera.
func newRecorder(device AudioDevice, logger *slog.Logger) *Recorder {
	return &Recorder{device: device, logger: logger, status: StatusAcquiring}
}

// Status returns the workflow state.
func (r *Recorder) Status() Status {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.status
}

// acquire opens the microphone and begins recording. The same
// closed-while-acquiring rule as the camera applies.
func (r *Recorder) acquire(ctx context.Context) error {
	stream, err := r.device.Open(ctx)

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.status != StatusAcquiring {
		if err == nil {
			if cerr := stream.Close(); cerr != nil {
				r.logger.Warn("capture: releasing late audio stream", "error", cerr)
			}
		}
		return ErrClosed
	}
	if err != nil {
		r.status = StatusClosed
		return fmt.Errorf("%w: %v", ErrDeviceUnavailable, err)
	}
	r.beginLocked(stream)
	return nil
}

// beginLocked attaches a fresh stream and starts draining it.
func (r *Recorder) beginLocked(stream AudioStream) {
	r.stream = stream
	r.status = StatusActive
	r.started = time.Now()
	r.buf.Reset()
	r.drained = make(chan struct{})
	go r.drain(stream.Chunks(), r.drained)
}

// drain appends incoming audio until the stream's channel closes.
func (r *Recorder) drain(chunks <-chan []byte, done chan<- struct{}) {
	defer close(done)
	for chunk := range chunks {
		r.mu.Lock()
		if r.status == StatusActive {
			r.buf.Write(chunk)
		}
		r.mu.Unlock()
	}
}

// Finish stops recording and moves the workflow to reviewing. The
// microphone is released here; review only needs the buffered audio.
func (r *Recorder) Finish() error {
	r.mu.Lock()
	if r.status != StatusActive {
		s := r.status
		r.mu.Unlock()
		return stateErr("finish", s)
	}
	r.duration = time.Since(r.started)
	r.status = StatusReviewing
	stream := r.stream
	r.stream = nil
	drained := r.drained
	r.mu.Unlock()

	err := stream.Close()
	<-drained
	return err
}

// Audio returns the recorded clip and its duration for review.
func (r *Recorder) Audio() ([]byte, time.Duration, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.status != StatusReviewing {
		return nil, 0, stateErr("read the audio", r.status)
	}
	return r.buf.Bytes(), r.duration, nil
}

// Retake discards the recorded clip and starts recording again.
func (r *Recorder) Retake(ctx context.Context) error {
	r.mu.Lock()
	if r.status != StatusReviewing {
		s := r.status
		r.mu.Unlock()
		return stateErr("retake", s)
	}
	r.status = StatusAcquiring
	r.mu.Unlock()

	stream, err := r.device.Open(ctx)

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.status != StatusAcquiring {
		if err == nil {
			if cerr := stream.Close(); cerr != nil {
				r.logger.Warn("capture: releasing late audio stream", "error", cerr)
			}
		}
		return ErrClosed
	}
	if err != nil {
		r.status = StatusClosed
		return fmt.Errorf("%w: %v", ErrDeviceUnavailable, err)
	}
	r.beginLocked(stream)
	return nil
}

// Submit hands the recorded clip to the caller and moves the workflow
// to submitting. Close is still required afterwards.
func (r *Recorder) Submit() ([]byte, time.Duration, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.status != StatusReviewing {
		return nil, 0, stateErr("submit", r.status)
	}
	r.status = StatusSubmitting
	return r.buf.Bytes(), r.duration, nil
}

// Close ends the workflow from any state and releases the microphone if
// it is still held. Closing twice is a no-op.
func (r *Recorder) Close() error {
	r.mu.Lock()
	if r.status == StatusClosed {
		r.mu.Unlock()
		return nil
	}
	r.status = StatusClosed
	stream := r.stream
	r.stream = nil
	drained := r.drained
	r.mu.Unlock()

	if stream == nil {
		return nil
	}
	err := stream.Close()
	if drained != nil {
		<-drained
	}
	return err
}
