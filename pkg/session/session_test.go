package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"
)

type fakeTransport struct {
	connectErr error

	mu          sync.Mutex
	connected   bool
	disconnects int
	muted       bool
	sent        []string
	events      chan TransportEvent
}

func (f *fakeTransport) Connect(ctx context.Context) error {
	if f.connectErr != nil {
		return f.connectErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = make(chan TransportEvent, 16)
	f.connected = true
	return nil
}

func (f *fakeTransport) Disconnect() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.connected {
		return nil
	}
	f.connected = false
	f.disconnects++
	close(f.events)
	return nil
}

func (f *fakeTransport) SetMuted(muted bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.muted = muted
	return nil
}

func (f *fakeTransport) Muted() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.muted
}

func (f *fakeTransport) SendContextMessage(text string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, text)
	return nil
}

func (f *fakeTransport) Events() <-chan TransportEvent {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.events
}

func (f *fakeTransport) emit(ev TransportEvent) {
	f.mu.Lock()
	ch := f.events
	f.mu.Unlock()
	ch <- ev
}

type countingCloser struct {
	mu    sync.Mutex
	calls int
}

func (c *countingCloser) CloseAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls++
}

func (c *countingCloser) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls
}

func nextEvent(t *testing.T, ch <-chan Event) Event {
	t.Helper()
	select {
	case ev := <-ch:
		return ev
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for session event")
		return Event{}
	}
}

func expectStatus(t *testing.T, ch <-chan Event, want Status) {
	t.Helper()
	ev := nextEvent(t, ch)
	if ev.Kind != EventStatus {
		t.Fatalf("event kind = %v, want %v", ev.Kind, EventStatus)
	}
	if ev.Status != want {
		t.Fatalf("status = %v, want %v", ev.Status, want)
	}
}

func waitStatus(t *testing.T, s *Session, want Status) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if s.Status() == want {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("status = %v, want %v", s.Status(), want)
}

func TestSessionStart_NotConfigured(t *testing.T) {
	tr := &fakeTransport{
		connectErr: fmt.Errorf("%w: public key is missing", ErrNotConfigured),
	}
	s := New(Config{Transport: tr})

	err := s.Start(t.Context())
	if !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("Start() error = %v, want ErrNotConfigured", err)
	}
	var ce *ConnectionError
	if errors.As(err, &ce) {
		t.Error("configuration gap must not be reported as a connection error")
	}
	if s.Status() != StatusIdle {
		t.Errorf("status = %v, want idle", s.Status())
	}
}

func TestSessionStart_ConnectionError(t *testing.T) {
	tr := &fakeTransport{connectErr: errors.New("dial tcp: refused")}
	s := New(Config{Transport: tr})

	err := s.Start(t.Context())
	var ce *ConnectionError
	if !errors.As(err, &ce) {
		t.Fatalf("Start() error = %v, want *ConnectionError", err)
	}
	if s.Status() != StatusIdle {
		t.Errorf("status = %v, want idle", s.Status())
	}
}

func TestSessionStart_AlreadyActive(t *testing.T) {
	tr := &fakeTransport{}
	s := New(Config{Transport: tr})

	if err := s.Start(t.Context()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if err := s.Start(t.Context()); !errors.Is(err, ErrAlreadyActive) {
		t.Fatalf("second Start() error = %v, want ErrAlreadyActive", err)
	}
	if err := s.Stop(); err != nil {
		t.Fatalf("Stop() error = %v", err)
	}
}

func TestSessionLifecycle(t *testing.T) {
	tr := &fakeTransport{}
	captures := &countingCloser{}
	s := New(Config{
		Transport: tr,
		Hotwords:  NewDispatcher(),
		Captures:  captures,
	})
	ch := s.Events()

	if err := s.Start(t.Context()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	expectStatus(t, ch, StatusConnecting)

	tr.emit(TransportEvent{Kind: TransportCallStarted})
	expectStatus(t, ch, StatusListening)

	// Non-final fragment updates the caption only.
	tr.emit(TransportEvent{Kind: TransportFragment, Role: RoleUser, Text: "カメ"})
	ev := nextEvent(t, ch)
	if ev.Kind != EventCaption || ev.Caption.Text != "カメ" {
		t.Fatalf("event = %+v, want caption カメ", ev)
	}

	// The finalized utterance is logged, clears the caption and fires
	// the hotword, all from one fragment.
	tr.emit(TransportEvent{Kind: TransportFragment, Role: RoleUser, Text: "カメラで撮影して", Final: true})
	ev = nextEvent(t, ch)
	if ev.Kind != EventTranscript || ev.Transcript.Text != "カメラで撮影して" {
		t.Fatalf("event = %+v, want transcript", ev)
	}
	ev = nextEvent(t, ch)
	if ev.Kind != EventCaption || ev.Caption.Text != "" {
		t.Fatalf("event = %+v, want cleared caption", ev)
	}
	ev = nextEvent(t, ch)
	if ev.Kind != EventHotword || ev.Hotword.Command != CommandCaptureImage {
		t.Fatalf("event = %+v, want capture-image hotword", ev)
	}

	tr.emit(TransportEvent{Kind: TransportSpeechStarted})
	expectStatus(t, ch, StatusSpeaking)
	tr.emit(TransportEvent{Kind: TransportSpeechEnded})
	expectStatus(t, ch, StatusListening)

	tr.emit(TransportEvent{Kind: TransportVolume, Level: 0.42})
	ev = nextEvent(t, ch)
	if ev.Kind != EventVolume || ev.Level != 0.42 {
		t.Fatalf("event = %+v, want volume 0.42", ev)
	}

	// Unknown transport events must not disturb the state machine.
	tr.emit(TransportEvent{Kind: TransportUnknown})

	tr.emit(TransportEvent{Kind: TransportCallEnded})
	expectStatus(t, ch, StatusIdle)

	if got := captures.count(); got != 1 {
		t.Errorf("captures closed %d times, want 1", got)
	}
	if got := len(s.Transcript()); got != 1 {
		t.Errorf("transcript length = %d, want 1", got)
	}
}

func TestSessionStop_Idempotent(t *testing.T) {
	tr := &fakeTransport{}
	captures := &countingCloser{}
	s := New(Config{Transport: tr, Captures: captures})

	if err := s.Start(t.Context()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	tr.emit(TransportEvent{Kind: TransportCallStarted})
	waitStatus(t, s, StatusListening)

	if err := s.Stop(); err != nil {
		t.Fatalf("Stop() error = %v", err)
	}
	if s.Status() != StatusIdle {
		t.Fatalf("status = %v, want idle", s.Status())
	}
	if err := s.Stop(); err != nil {
		t.Fatalf("second Stop() error = %v", err)
	}

	if tr.disconnects != 1 {
		t.Errorf("disconnects = %d, want 1", tr.disconnects)
	}
	if got := captures.count(); got != 1 {
		t.Errorf("captures closed %d times, want 1", got)
	}
}

func TestSessionGraceTimeout(t *testing.T) {
	tr := &fakeTransport{}
	captures := &countingCloser{}
	s := New(Config{
		Transport:        tr,
		Captures:         captures,
		ErrorGracePeriod: 30 * time.Millisecond,
	})

	if err := s.Start(t.Context()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	tr.emit(TransportEvent{Kind: TransportCallStarted})
	waitStatus(t, s, StatusListening)

	// A transport fault with no call-ended must not strand the session.
	tr.emit(TransportEvent{Kind: TransportError, Err: errors.New("stream reset")})
	waitStatus(t, s, StatusIdle)

	if got := captures.count(); got != 1 {
		t.Errorf("captures closed %d times, want 1", got)
	}
}

func TestSessionGraceCancelledByCallEnded(t *testing.T) {
	tr := &fakeTransport{}
	captures := &countingCloser{}
	s := New(Config{
		Transport:        tr,
		Captures:         captures,
		ErrorGracePeriod: 50 * time.Millisecond,
	})

	if err := s.Start(t.Context()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	tr.emit(TransportEvent{Kind: TransportCallStarted})
	tr.emit(TransportEvent{Kind: TransportError, Err: errors.New("stream reset")})
	tr.emit(TransportEvent{Kind: TransportCallEnded})
	waitStatus(t, s, StatusIdle)

	// The fault timer was cancelled by the orderly end; give it a
	// chance to misfire before counting teardowns.
	time.Sleep(100 * time.Millisecond)
	if got := captures.count(); got != 1 {
		t.Errorf("captures closed %d times, want 1", got)
	}
}

func TestSessionChannelCloseArmsGrace(t *testing.T) {
	tr := &fakeTransport{}
	s := New(Config{
		Transport:        tr,
		ErrorGracePeriod: 30 * time.Millisecond,
	})

	if err := s.Start(t.Context()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	tr.emit(TransportEvent{Kind: TransportCallStarted})
	waitStatus(t, s, StatusListening)

	// The transport dying without a call-ended still returns the
	// session to idle after the grace period.
	tr.mu.Lock()
	close(tr.events)
	tr.connected = false
	tr.mu.Unlock()

	waitStatus(t, s, StatusIdle)
}

func TestSessionSetMuted(t *testing.T) {
	tr := &fakeTransport{}
	s := New(Config{Transport: tr})

	if err := s.Start(t.Context()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	tr.emit(TransportEvent{Kind: TransportCallStarted})
	waitStatus(t, s, StatusListening)

	if err := s.SetMuted(true); err != nil {
		t.Fatalf("SetMuted(true) error = %v", err)
	}
	if s.Status() != StatusMuted {
		t.Fatalf("status = %v, want muted", s.Status())
	}
	if !s.Muted() {
		t.Error("Muted() = false after SetMuted(true)")
	}

	// Mute is about the microphone; the agent speaking still shows as
	// speaking, and we return to muted when it finishes.
	tr.emit(TransportEvent{Kind: TransportSpeechStarted})
	waitStatus(t, s, StatusSpeaking)
	tr.emit(TransportEvent{Kind: TransportSpeechEnded})
	waitStatus(t, s, StatusMuted)

	if err := s.SetMuted(false); err != nil {
		t.Fatalf("SetMuted(false) error = %v", err)
	}
	if s.Status() != StatusListening {
		t.Fatalf("status = %v, want listening", s.Status())
	}

	if err := s.Stop(); err != nil {
		t.Fatalf("Stop() error = %v", err)
	}
}

func TestSessionInjectContext(t *testing.T) {
	tr := &fakeTransport{}
	s := New(Config{Transport: tr})

	if err := s.Start(t.Context()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	tr.emit(TransportEvent{Kind: TransportCallStarted})
	waitStatus(t, s, StatusListening)

	if err := s.InjectContext("現在地: 東京タワー付近"); err != nil {
		t.Fatalf("InjectContext() error = %v", err)
	}
	tr.mu.Lock()
	sent := append([]string(nil), tr.sent...)
	tr.mu.Unlock()
	if len(sent) != 1 || sent[0] != "現在地: 東京タワー付近" {
		t.Errorf("sent = %v, want the injected message", sent)
	}

	if err := s.Stop(); err != nil {
		t.Fatalf("Stop() error = %v", err)
	}
}

func TestSessionAddSystemNote(t *testing.T) {
	tr := &fakeTransport{}
	s := New(Config{Transport: tr})

	s.AddSystemNote("録音を開始しました")

	events := s.Transcript()
	if len(events) != 1 {
		t.Fatalf("transcript length = %d, want 1", len(events))
	}
	if events[0].Role != RoleSystem {
		t.Errorf("role = %v, want system", events[0].Role)
	}
	if len(tr.sent) != 0 {
		t.Error("system note must not reach the transport")
	}
}
