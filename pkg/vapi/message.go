package vapi

// Server message types (sent from transport to client).
const (
	// Call lifecycle
	MessageTypeCallStart = "call-start"
	MessageTypeCallEnd   = "call-end"

	// Assistant speech output state
	MessageTypeSpeechStart = "speech-start"
	MessageTypeSpeechEnd   = "speech-end"

	// Microphone input level, 0..1
	MessageTypeVolumeLevel = "volume-level"

	// Recognized speech, partial or final
	MessageTypeTranscript = "transcript"

	// Acknowledgement of a mute state change
	MessageTypeMuteStatus = "mute-status"

	// Mid-call fault
	MessageTypeError = "error"
)

// Client message types (sent from client to transport).
const (
	MessageTypeStart      = "start"
	MessageTypeStop       = "stop"
	MessageTypeSetMuted   = "set-muted"
	MessageTypeAddMessage = "add-message"
)

// Transcript finality markers.
const (
	// TranscriptTypePartial marks a live caption still subject to revision.
	TranscriptTypePartial = "partial"
	// TranscriptTypeFinal marks a recognition-complete fragment.
	TranscriptTypeFinal = "final"
)

// Conversation roles.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleSystem    = "system"
)

// ServerMessage represents a message received from the transport.
//
// Type selects which of the remaining fields are meaningful. Unknown types
// are delivered as-is with only Type and Raw populated; callers should
// ignore types they do not handle.
type ServerMessage struct {
	// Type is the message type.
	Type string `json:"type"`

	// Level is the microphone input level (for volume-level).
	Level float64 `json:"level,omitzero"`

	// Role is the speaker role (for transcript).
	Role string `json:"role,omitzero"`

	// TranscriptType is "partial" or "final" (for transcript).
	TranscriptType string `json:"transcriptType,omitzero"`

	// Transcript is the recognized text (for transcript).
	Transcript string `json:"transcript,omitzero"`

	// Muted is the acknowledged mute state (for mute-status).
	Muted bool `json:"muted,omitzero"`

	// EndedReason describes why the call ended (for call-end).
	EndedReason string `json:"endedReason,omitzero"`

	// Error carries fault details (for error).
	Error *MessageError `json:"error,omitzero"`

	// Raw contains the original JSON payload.
	Raw []byte `json:"-"`
}

// Message is a conversation message injected into the live call.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ClientMessage represents a control message sent to the transport.
type ClientMessage struct {
	// Type is the message type.
	Type string `json:"type"`

	// AssistantID references a pre-provisioned assistant (for start).
	AssistantID string `json:"assistantId,omitzero"`

	// Assistant is an inline assistant definition (for start).
	Assistant *AssistantConfig `json:"assistant,omitzero"`

	// Muted is the requested mute state (for set-muted).
	Muted *bool `json:"muted,omitempty"`

	// Message is the injected conversation message (for add-message).
	Message *Message `json:"message,omitzero"`
}
