package session

// EventKind identifies a session event delivered on Session.Events.
type EventKind int

const (
	// EventStatus reports a session status change.
	EventStatus EventKind = iota
	// EventTranscript reports a finalized utterance appended to the log.
	EventTranscript
	// EventCaption reports a live caption update.
	EventCaption
	// EventVolume reports a microphone level sample.
	EventVolume
	// EventHotword reports a recognized capture command.
	EventHotword
	// EventError reports a recoverable session fault.
	EventError
)

// String returns the string representation of the kind.
func (k EventKind) String() string {
	switch k {
	case EventStatus:
		return "status"
	case EventTranscript:
		return "transcript"
	case EventCaption:
		return "caption"
	case EventVolume:
		return "volume"
	case EventHotword:
		return "hotword"
	case EventError:
		return "error"
	default:
		return "unknown"
	}
}

// Caption is the in-progress utterance shown while the speaker is still
// talking. Text is empty when no utterance is in flight.
type Caption struct {
	Role Role   `json:"role"`
	Text string `json:"text"`
}

// Event is a session notification. Kind selects which of the remaining
// fields are meaningful.
type Event struct {
	Kind EventKind

	// Status is the new status (EventStatus).
	Status Status

	// Transcript is the appended utterance (EventTranscript).
	Transcript TranscriptEvent

	// Caption is the live caption (EventCaption). An empty Text clears it.
	Caption Caption

	// Level is the microphone level, 0..1 (EventVolume).
	Level float64

	// Hotword is the recognized command (EventHotword).
	Hotword Match

	// Err is the fault (EventError).
	Err error
}
