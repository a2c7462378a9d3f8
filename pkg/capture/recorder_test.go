package capture

import (
	"errors"
	"log/slog"
	"testing"
	"time"
)

func newTestRecorder(t *testing.T) *Recorder {
	t.Helper()
	device := &SimMicrophone{ChunkSize: 4, Interval: time.Millisecond}
	rec := newRecorder(device, slog.Default())
	if err := rec.acquire(t.Context()); err != nil {
		t.Fatalf("acquire() error = %v", err)
	}
	return rec
}

func TestRecorderLifecycle(t *testing.T) {
	rec := newTestRecorder(t)

	if rec.Status() != StatusActive {
		t.Fatalf("status = %v, want active", rec.Status())
	}
	time.Sleep(30 * time.Millisecond)

	if err := rec.Finish(); err != nil {
		t.Fatalf("Finish() error = %v", err)
	}
	if rec.Status() != StatusReviewing {
		t.Fatalf("status = %v, want reviewing", rec.Status())
	}

	clip, d, err := rec.Audio()
	if err != nil {
		t.Fatalf("Audio() error = %v", err)
	}
	if len(clip) == 0 {
		t.Error("recorded clip is empty")
	}
	if d <= 0 {
		t.Errorf("duration = %v, want > 0", d)
	}

	submitted, sd, err := rec.Submit()
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if len(submitted) != len(clip) || sd != d {
		t.Error("Submit() returned a different clip than Audio()")
	}

	if err := rec.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if rec.Status() != StatusClosed {
		t.Fatalf("status = %v, want closed", rec.Status())
	}
}

func TestRecorderRetakeResetsBuffer(t *testing.T) {
	rec := newTestRecorder(t)
	time.Sleep(60 * time.Millisecond)
	if err := rec.Finish(); err != nil {
		t.Fatalf("Finish() error = %v", err)
	}
	first, _, err := rec.Audio()
	if err != nil {
		t.Fatalf("Audio() error = %v", err)
	}
	if len(first) == 0 {
		t.Fatal("first clip is empty")
	}

	if err := rec.Retake(t.Context()); err != nil {
		t.Fatalf("Retake() error = %v", err)
	}
	if rec.Status() != StatusActive {
		t.Fatalf("status = %v, want active", rec.Status())
	}
	time.Sleep(5 * time.Millisecond)
	if err := rec.Finish(); err != nil {
		t.Fatalf("second Finish() error = %v", err)
	}
	second, _, err := rec.Audio()
	if err != nil {
		t.Fatalf("second Audio() error = %v", err)
	}
	// A much shorter retake cannot carry the first clip's data.
	if len(second) >= len(first) {
		t.Errorf("retake clip length = %d, want < %d", len(second), len(first))
	}

	if err := rec.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
}

func TestRecorderCloseWhileRecording(t *testing.T) {
	rec := newTestRecorder(t)
	if err := rec.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if err := rec.Close(); err != nil {
		t.Fatalf("second Close() error = %v", err)
	}
	if _, _, err := rec.Audio(); !errors.Is(err, ErrInvalidState) {
		t.Errorf("Audio() after close error = %v, want ErrInvalidState", err)
	}
}

func TestRecorderFinishRequiresActive(t *testing.T) {
	rec := newTestRecorder(t)
	if err := rec.Finish(); err != nil {
		t.Fatalf("Finish() error = %v", err)
	}
	if err := rec.Finish(); !errors.Is(err, ErrInvalidState) {
		t.Errorf("second Finish() error = %v, want ErrInvalidState", err)
	}
	if err := rec.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
}
