package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

const (
	// DefaultErrorGracePeriod is how long the session waits after a
	// transport fault for a call-ended notification before forcing
	// itself back to idle.
	DefaultErrorGracePeriod = 5 * time.Second

	// DefaultEventBuffer is the capacity of the Events channel.
	DefaultEventBuffer = 64
)

// CaptureCloser releases every capture workflow the session owns. It is
// invoked exactly once per call teardown, however the call ends.
type CaptureCloser interface {
	CloseAll()
}

// Config configures a Session.
type Config struct {
	// Transport carries the call. Required.
	Transport Transport

	// Hotwords recognizes capture commands in finalized user
	// utterances. Optional; nil disables hotword dispatch.
	Hotwords *Dispatcher

	// Captures, if set, is torn down when the call ends.
	Captures CaptureCloser

	// ErrorGracePeriod overrides DefaultErrorGracePeriod.
	ErrorGracePeriod time.Duration

	// EventBuffer overrides DefaultEventBuffer.
	EventBuffer int

	// Logger overrides slog.Default().
	Logger *slog.Logger
}

// Session drives one voice conversation at a time over a Transport. It
// owns the status state machine, the transcript log, the live caption
// and hotword dispatch. All observable state is updated by a single
// goroutine per call, so consumers never see events out of order.
type Session struct {
	transport Transport
	hotwords  *Dispatcher
	captures  CaptureCloser
	grace     time.Duration
	logger    *slog.Logger

	events chan Event

	mu         sync.Mutex
	status     Status
	transcript *TranscriptLog
	caption    Caption
	graceTimer *time.Timer
	gen        int
}

// New creates a session. It panics if cfg.Transport is nil, which is a
// programming error rather than a runtime condition.
func New(cfg Config) *Session {
	if cfg.Transport == nil {
		panic("session: Config.Transport is nil")
	}
	if cfg.ErrorGracePeriod <= 0 {
		cfg.ErrorGracePeriod = DefaultErrorGracePeriod
	}
	if cfg.EventBuffer <= 0 {
		cfg.EventBuffer = DefaultEventBuffer
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &Session{
		transport:  cfg.Transport,
		hotwords:   cfg.Hotwords,
		captures:   cfg.Captures,
		grace:      cfg.ErrorGracePeriod,
		logger:     cfg.Logger,
		events:     make(chan Event, cfg.EventBuffer),
		status:     StatusIdle,
		transcript: NewTranscriptLog(),
	}
}

// Events returns the session event channel. Events are dropped, not
// blocked on, when the consumer falls behind; the transcript log always
// holds the authoritative record.
func (s *Session) Events() <-chan Event {
	return s.events
}

// Status returns the current session status.
func (s *Session) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// Transcript returns a snapshot of the finalized utterances so far.
func (s *Session) Transcript() []TranscriptEvent {
	return s.transcript.Events()
}

// Caption returns the current live caption. Text is empty when no
// utterance is in flight.
func (s *Session) Caption() Caption {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.caption
}

// Muted reports the locally cached microphone mute state.
func (s *Session) Muted() bool {
	return s.transport.Muted()
}

// Start begins a call. It returns ErrNotConfigured without touching the
// network when the transport credential is missing, ErrAlreadyActive
// when a call is already in progress, and a *ConnectionError when the
// call cannot be established.
func (s *Session) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.status != StatusIdle {
		s.mu.Unlock()
		return ErrAlreadyActive
	}
	s.gen++
	gen := s.gen
	s.setStatusLocked(StatusConnecting)
	s.mu.Unlock()

	if err := s.transport.Connect(ctx); err != nil {
		s.mu.Lock()
		if s.gen == gen {
			s.setStatusLocked(StatusIdle)
		}
		s.mu.Unlock()
		if errors.Is(err, ErrNotConfigured) {
			return err
		}
		return &ConnectionError{Err: err}
	}

	go s.pump(gen, s.transport.Events())
	return nil
}

// Stop ends the call. It is safe to call at any time; stopping an idle
// session is a no-op.
func (s *Session) Stop() error {
	s.mu.Lock()
	if s.status == StatusIdle {
		s.mu.Unlock()
		return nil
	}
	gen := s.gen
	s.setStatusLocked(StatusEnding)
	s.mu.Unlock()

	err := s.transport.Disconnect()

	s.mu.Lock()
	if s.gen == gen && s.status != StatusIdle {
		s.finishLocked()
	}
	s.mu.Unlock()
	return err
}

// SetMuted requests a microphone mute change. The visible status tracks
// the cached state immediately; the transport reconciles it when the
// remote side acknowledges.
func (s *Session) SetMuted(muted bool) error {
	if err := s.transport.SetMuted(muted); err != nil {
		return err
	}
	s.mu.Lock()
	switch {
	case muted && s.status == StatusListening:
		s.setStatusLocked(StatusMuted)
	case !muted && s.status == StatusMuted:
		s.setStatusLocked(StatusListening)
	}
	s.mu.Unlock()
	return nil
}

// InjectContext sends a system message into the live conversation so
// the agent can use it on its next turn.
func (s *Session) InjectContext(text string) error {
	return s.transport.SendContextMessage(text)
}

// AddSystemNote appends a system utterance to the transcript without
// sending anything to the agent.
func (s *Session) AddSystemNote(text string) {
	ev := s.transcript.Append(RoleSystem, text)
	s.emit(Event{Kind: EventTranscript, Transcript: ev})
}

// pump consumes one connection's transport events. It exits when the
// transport closes the channel.
func (s *Session) pump(gen int, events <-chan TransportEvent) {
	for ev := range events {
		s.handle(gen, ev)
	}
	// Connection gone without a call-ended event. Arm the grace timer
	// so the session does not stay stuck in a connected status.
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.gen != gen || s.status == StatusIdle {
		return
	}
	s.armGraceLocked(gen)
}

func (s *Session) handle(gen int, ev TransportEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.gen != gen || s.status == StatusIdle {
		return
	}

	switch ev.Kind {
	case TransportCallStarted:
		s.cancelGraceLocked()
		if s.transport.Muted() {
			s.setStatusLocked(StatusMuted)
		} else {
			s.setStatusLocked(StatusListening)
		}

	case TransportCallEnded:
		s.finishLocked()

	case TransportSpeechStarted:
		if s.status.Connected() {
			s.setStatusLocked(StatusSpeaking)
		}

	case TransportSpeechEnded:
		if s.status == StatusSpeaking {
			if s.transport.Muted() {
				s.setStatusLocked(StatusMuted)
			} else {
				s.setStatusLocked(StatusListening)
			}
		}

	case TransportVolume:
		s.emit(Event{Kind: EventVolume, Level: ev.Level})

	case TransportFragment:
		s.handleFragmentLocked(ev)

	case TransportError:
		s.logger.Warn("session: transport fault", "error", ev.Err)
		s.emit(Event{Kind: EventError, Err: ev.Err})
		s.armGraceLocked(gen)

	default:
		// Unknown transport events are ignored.
	}
}

func (s *Session) handleFragmentLocked(ev TransportEvent) {
	if !ev.Final {
		s.caption = Caption{Role: ev.Role, Text: ev.Text}
		s.emit(Event{Kind: EventCaption, Caption: s.caption})
		return
	}

	entry := s.transcript.Append(ev.Role, ev.Text)
	s.emit(Event{Kind: EventTranscript, Transcript: entry})

	if s.caption.Role == ev.Role {
		s.caption = Caption{}
		s.emit(Event{Kind: EventCaption})
	}

	if s.hotwords != nil && ev.Role == RoleUser {
		if m, ok := s.hotwords.Match(ev.Text); ok {
			s.emit(Event{Kind: EventHotword, Hotword: m})
		}
	}
}

// finishLocked tears the call down: releases captures, clears the live
// caption and returns to idle. It runs at most once per call.
func (s *Session) finishLocked() {
	s.cancelGraceLocked()
	if s.captures != nil {
		s.captures.CloseAll()
	}
	if s.caption != (Caption{}) {
		s.caption = Caption{}
		s.emit(Event{Kind: EventCaption})
	}
	s.setStatusLocked(StatusIdle)
}

func (s *Session) armGraceLocked(gen int) {
	if s.graceTimer != nil {
		s.graceTimer.Reset(s.grace)
		return
	}
	s.graceTimer = time.AfterFunc(s.grace, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.gen != gen || s.status == StatusIdle {
			return
		}
		s.logger.Warn("session: no call-ended after transport fault, forcing idle",
			"grace", s.grace)
		s.emit(Event{Kind: EventError,
			Err: fmt.Errorf("session: call did not end within %s after a transport fault", s.grace)})
		s.finishLocked()
	})
}

func (s *Session) cancelGraceLocked() {
	if s.graceTimer != nil {
		s.graceTimer.Stop()
		s.graceTimer = nil
	}
}

func (s *Session) setStatusLocked(status Status) {
	if s.status == status {
		return
	}
	s.status = status
	s.emit(Event{Kind: EventStatus, Status: status})
}

// emit never blocks. A full channel drops the event with a warning; the
// transcript log keeps the durable record regardless.
func (s *Session) emit(ev Event) {
	select {
	case s.events <- ev:
	default:
		s.logger.Warn("session: event dropped, consumer too slow", "kind", ev.Kind)
	}
}
