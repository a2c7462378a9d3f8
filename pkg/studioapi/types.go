package studioapi

import "time"

// Settings are the per-user studio settings.
type Settings struct {
	ID                 string    `json:"id,omitzero"`
	UserID             string    `json:"user_id,omitzero"`
	SystemPrompt       string    `json:"system_prompt,omitzero"`
	VoiceID            string    `json:"voice_id,omitzero"`
	Speed              float64   `json:"speed,omitzero"`
	SilenceSensitivity int       `json:"silence_sensitivity,omitzero"`
	CreatedAt          time.Time `json:"created_at,omitzero"`
	UpdatedAt          time.Time `json:"updated_at,omitzero"`
}

// SettingsUpdate is the mutable subset of Settings.
type SettingsUpdate struct {
	SystemPrompt       string  `json:"system_prompt,omitzero"`
	VoiceID            string  `json:"voice_id,omitzero"`
	Speed              float64 `json:"speed,omitzero"`
	SilenceSensitivity int     `json:"silence_sensitivity,omitzero"`
}

// MemoryCategory classifies a memory entry.
type MemoryCategory string

const (
	// MemoryProfile is durable information about the user.
	MemoryProfile MemoryCategory = "profile"
	// MemoryPreference is a taste or configuration choice.
	MemoryPreference MemoryCategory = "preference"
	// MemoryContext is conversational context worth keeping.
	MemoryContext MemoryCategory = "context"
)

// Memory is one long-term memory entry.
type Memory struct {
	ID        string         `json:"id,omitzero"`
	UserID    string         `json:"user_id,omitzero"`
	Content   string         `json:"content"`
	Category  MemoryCategory `json:"category"`
	CreatedAt time.Time      `json:"created_at,omitzero"`
}

// ImageAnalysis is the result of a vision analysis.
type ImageAnalysis struct {
	Description string    `json:"description"`
	Timestamp   time.Time `json:"timestamp,omitzero"`
	TokensUsed  int       `json:"tokens_used,omitzero"`
}

// CaptureResult is the backend's response to a camera capture.
type CaptureResult struct {
	Success  bool           `json:"success"`
	Message  string         `json:"message"`
	Analysis *ImageAnalysis `json:"analysis,omitzero"`
}

// Location is a geographic point used by the simulator.
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Name      string  `json:"name,omitzero"`
}

// Geofence event types.
const (
	GeofenceArrival   = "arrival"
	GeofenceDeparture = "departure"
)

// GeofenceEvent is a simulated geofence crossing.
type GeofenceEvent struct {
	Location  Location `json:"location"`
	EventType string   `json:"event_type"`
}

// Notification is a simulated push notification.
type Notification struct {
	Title   string `json:"title"`
	Body    string `json:"body"`
	AppName string `json:"app_name,omitzero"`
}

// SimulationResult is the simulator's response to a triggered event.
type SimulationResult struct {
	Success   bool           `json:"success"`
	Message   string         `json:"message"`
	Timestamp time.Time      `json:"timestamp,omitzero"`
	Data      map[string]any `json:"data,omitzero"`
}

// CalendarEvent is a Google Calendar event.
type CalendarEvent struct {
	ID          string    `json:"id,omitzero"`
	Summary     string    `json:"summary"`
	Description string    `json:"description,omitzero"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
	Location    string    `json:"location,omitzero"`
	HTMLLink    string    `json:"html_link,omitzero"`
}
