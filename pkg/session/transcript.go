package session

import (
	"sync"
	"time"
)

// Role identifies the author of a transcript entry.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
)

// TranscriptEvent is one finalized entry of the conversation log.
// Entries are immutable once appended.
type TranscriptEvent struct {
	Role       Role      `json:"role"`
	Text       string    `json:"text"`
	ProducedAt time.Time `json:"produced_at"`
}

// TranscriptLog is an ordered, append-only log of transcript events.
// Entries are appended in finalization order and never mutated or
// removed.
type TranscriptLog struct {
	mu     sync.RWMutex
	events []TranscriptEvent
}

// NewTranscriptLog creates an empty log.
func NewTranscriptLog() *TranscriptLog {
	return &TranscriptLog{}
}

// Append adds an entry to the end of the log and returns it.
func (l *TranscriptLog) Append(role Role, text string) TranscriptEvent {
	ev := TranscriptEvent{Role: role, Text: text, ProducedAt: time.Now()}
	l.mu.Lock()
	l.events = append(l.events, ev)
	l.mu.Unlock()
	return ev
}

// Events returns a snapshot copy of the log in append order.
func (l *TranscriptLog) Events() []TranscriptEvent {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]TranscriptEvent, len(l.events))
	copy(out, l.events)
	return out
}

// Len returns the number of entries.
func (l *TranscriptLog) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.events)
}
