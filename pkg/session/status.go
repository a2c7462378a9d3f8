package session

import "encoding/json"

// Status represents the state of a conversation session.
type Status int

const (
	// StatusIdle means no call is active.
	StatusIdle Status = iota
	// StatusConnecting means the transport is being dialed.
	StatusConnecting
	// StatusListening means the call is live and the agent is quiet.
	StatusListening
	// StatusSpeaking means the agent is producing speech output.
	StatusSpeaking
	// StatusMuted means the call is live with the microphone muted.
	StatusMuted
	// StatusEnding means the call is tearing down.
	StatusEnding
)

// String returns the string representation of the status.
func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusConnecting:
		return "connecting"
	case StatusListening:
		return "listening"
	case StatusSpeaking:
		return "speaking"
	case StatusMuted:
		return "muted"
	case StatusEnding:
		return "ending"
	default:
		return "unknown"
	}
}

// UnmarshalJSON implements json.Unmarshaler.
func (s *Status) UnmarshalJSON(b []byte) error {
	var name string
	if err := json.Unmarshal(b, &name); err != nil {
		return err
	}
	switch name {
	case "connecting":
		*s = StatusConnecting
	case "listening":
		*s = StatusListening
	case "speaking":
		*s = StatusSpeaking
	case "muted":
		*s = StatusMuted
	case "ending":
		*s = StatusEnding
	default:
		*s = StatusIdle
	}
	return nil
}

// MarshalJSON implements json.Marshaler.
func (s Status) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// Connected returns true if a call is established.
func (s Status) Connected() bool {
	switch s {
	case StatusListening, StatusSpeaking, StatusMuted:
		return true
	default:
		return false
	}
}

// Active returns true if the session is doing anything at all, including
// dialing and tearing down.
func (s Status) Active() bool {
	return s != StatusIdle
}
