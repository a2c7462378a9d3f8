package session

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

type fakeAnalyzer struct {
	desc  string
	err   error
	calls int
}

func (a *fakeAnalyzer) AnalyzeImage(ctx context.Context, image []byte, prompt string) (string, error) {
	a.calls++
	return a.desc, a.err
}

func TestRelaySubmitImage(t *testing.T) {
	tr := &fakeTransport{}
	s := New(Config{Transport: tr})
	an := &fakeAnalyzer{desc: "赤いリンゴがテーブルの上にあります"}
	relay := NewRelay(s, an)

	if err := s.Start(t.Context()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	tr.emit(TransportEvent{Kind: TransportCallStarted})
	waitStatus(t, s, StatusListening)

	if err := relay.SubmitImage(t.Context(), []byte{0xff, 0xd8}, ""); err != nil {
		t.Fatalf("SubmitImage() error = %v", err)
	}

	events := s.Transcript()
	if len(events) != 1 {
		t.Fatalf("transcript length = %d, want 1", len(events))
	}
	if events[0].Role != RoleSystem || !strings.Contains(events[0].Text, an.desc) {
		t.Errorf("transcript entry = %+v, want system note with the description", events[0])
	}

	tr.mu.Lock()
	sent := append([]string(nil), tr.sent...)
	tr.mu.Unlock()
	if len(sent) != 1 || !strings.Contains(sent[0], an.desc) {
		t.Errorf("sent = %v, want one injected description", sent)
	}

	if err := s.Stop(); err != nil {
		t.Fatalf("Stop() error = %v", err)
	}
}

func TestRelaySubmitImage_FailureIsNotRetried(t *testing.T) {
	tr := &fakeTransport{}
	s := New(Config{Transport: tr})
	an := &fakeAnalyzer{err: errors.New("model overloaded")}
	relay := NewRelay(s, an)

	err := relay.SubmitImage(context.Background(), []byte{0xff, 0xd8}, "")
	var re *RelayError
	if !errors.As(err, &re) {
		t.Fatalf("SubmitImage() error = %v, want *RelayError", err)
	}
	if an.calls != 1 {
		t.Errorf("analyzer called %d times, want exactly 1", an.calls)
	}

	events := s.Transcript()
	if len(events) != 1 || events[0].Role != RoleSystem {
		t.Fatalf("transcript = %+v, want one system note", events)
	}
	if len(tr.sent) != 0 {
		t.Error("failed analysis must not inject anything into the conversation")
	}
}

func TestRelaySubmitImage_NoAnalyzer(t *testing.T) {
	tr := &fakeTransport{}
	s := New(Config{Transport: tr})
	relay := NewRelay(s, nil)

	err := relay.SubmitImage(context.Background(), []byte{0xff, 0xd8}, "")
	var re *RelayError
	if !errors.As(err, &re) {
		t.Fatalf("SubmitImage() error = %v, want *RelayError", err)
	}
}

func TestRelaySubmitAudio(t *testing.T) {
	tr := &fakeTransport{}
	s := New(Config{Transport: tr})
	relay := NewRelay(s, nil)

	relay.SubmitAudio(3500 * time.Millisecond)

	events := s.Transcript()
	if len(events) != 1 {
		t.Fatalf("transcript length = %d, want 1", len(events))
	}
	if !strings.Contains(events[0].Text, "3.5") {
		t.Errorf("note = %q, want the recorded duration", events[0].Text)
	}
	if len(tr.sent) != 0 {
		t.Error("audio results stay local, nothing may reach the transport")
	}
}
