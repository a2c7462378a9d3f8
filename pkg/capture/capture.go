package capture

import (
	"errors"
	"fmt"
)

// Kind identifies a capture workflow type.
type Kind int

const (
	// KindCamera captures a still image.
	KindCamera Kind = iota
	// KindAudio records an audio clip.
	KindAudio
)

// String returns the string representation of the kind.
func (k Kind) String() string {
	switch k {
	case KindCamera:
		return "camera"
	case KindAudio:
		return "audio"
	default:
		return "unknown"
	}
}

// Status is a capture workflow lifecycle state.
type Status int

const (
	// StatusIdle means the workflow has not started.
	StatusIdle Status = iota
	// StatusAcquiring means the workflow is waiting for the device.
	StatusAcquiring
	// StatusActive means the device is live.
	StatusActive
	// StatusReviewing means an artifact is held for a decision.
	StatusReviewing
	// StatusSubmitting means the artifact is being delivered.
	StatusSubmitting
	// StatusClosed means the workflow is over and the device released.
	StatusClosed
)

// String returns the string representation of the status.
func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusAcquiring:
		return "acquiring"
	case StatusActive:
		return "active"
	case StatusReviewing:
		return "reviewing"
	case StatusSubmitting:
		return "submitting"
	case StatusClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// Open reports whether the workflow still holds, or is waiting for,
// the device.
func (s Status) Open() bool {
	return s == StatusAcquiring || s == StatusActive ||
		s == StatusReviewing || s == StatusSubmitting
}

var (
	// ErrBusy is returned when a workflow of the same kind is already
	// open. Requests are rejected, never queued.
	ErrBusy = errors.New("capture: a workflow of this kind is already open")

	// ErrClosed is returned by operations on a closed workflow.
	ErrClosed = errors.New("capture: workflow is closed")

	// ErrDeviceUnavailable wraps a failed device acquisition (permission
	// denied, hardware absent, held exclusively elsewhere). The workflow
	// is closed, never left half-open.
	ErrDeviceUnavailable = errors.New("capture: device unavailable")

	// ErrInvalidState is returned when an operation does not apply to
	// the workflow's current state.
	ErrInvalidState = errors.New("capture: invalid state")
)

func stateErr(op string, s Status) error {
	return fmt.Errorf("%w: cannot %s while %s", ErrInvalidState, op, s)
}
