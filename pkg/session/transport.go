package session

import "context"

// TransportEventKind identifies a normalized transport event.
type TransportEventKind int

const (
	// TransportUnknown is a transport message kind this package does not
	// interpret. Receivers must ignore it.
	TransportUnknown TransportEventKind = iota
	// TransportCallStarted means the call is established.
	TransportCallStarted
	// TransportCallEnded means the call has ended.
	TransportCallEnded
	// TransportSpeechStarted means the agent began speaking.
	TransportSpeechStarted
	// TransportSpeechEnded means the agent stopped speaking.
	TransportSpeechEnded
	// TransportVolume carries a microphone level sample.
	TransportVolume
	// TransportFragment carries a transcript fragment.
	TransportFragment
	// TransportError carries a mid-call fault.
	TransportError
)

// String returns the string representation of the kind.
func (k TransportEventKind) String() string {
	switch k {
	case TransportCallStarted:
		return "call-started"
	case TransportCallEnded:
		return "call-ended"
	case TransportSpeechStarted:
		return "agent-speech-started"
	case TransportSpeechEnded:
		return "agent-speech-ended"
	case TransportVolume:
		return "volume-sample"
	case TransportFragment:
		return "transcript-fragment"
	case TransportError:
		return "transport-error"
	default:
		return "unknown"
	}
}

// TransportEvent is a normalized event from the transport. Kind selects
// which of the remaining fields are meaningful.
type TransportEvent struct {
	Kind TransportEventKind

	// Level is the microphone level, 0..1 (TransportVolume).
	Level float64

	// Role, Text and Final describe a fragment (TransportFragment).
	Role  Role
	Text  string
	Final bool

	// Err is the fault (TransportError).
	Err error
}

// Transport is the session's view of the remote speech transport.
//
// Implementations own the underlying connection. The Events channel is
// (re)created by Connect and closed when the connection goes away, so a
// consumer loop terminates naturally on teardown; handlers never leak
// across connect/disconnect cycles.
type Transport interface {
	// Connect establishes the call. A missing credential is reported as
	// an error wrapping ErrNotConfigured before any network activity.
	Connect(ctx context.Context) error

	// Disconnect ends the call. Calling it while disconnected is a no-op.
	Disconnect() error

	// SetMuted requests a microphone mute state change.
	SetMuted(muted bool) error

	// Muted reports the current (possibly not yet acknowledged) mute state.
	Muted() bool

	// SendContextMessage injects a system message into the live
	// conversation. If no call is active the message is logged and
	// dropped; it never fails the caller for that reason.
	SendContextMessage(text string) error

	// Events returns the event channel of the current connection.
	Events() <-chan TransportEvent
}
