package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/kaiwastudio/kaiwa/pkg/vapi"
)

// VapiTransport adapts a vapi.Client to the Transport interface. Each
// Connect starts a fresh call and a fresh event channel; the channel is
// closed when that call's message stream ends.
type VapiTransport struct {
	client    *vapi.Client
	assistant *vapi.AssistantOptions
	logger    *slog.Logger

	mu     sync.Mutex
	call   *vapi.Call
	muted  bool
	events chan TransportEvent
}

// NewVapiTransport creates a transport backed by client. A nil assistant
// starts calls with the default assistant configuration.
func NewVapiTransport(client *vapi.Client, assistant *vapi.AssistantOptions) *VapiTransport {
	return &VapiTransport{
		client:    client,
		assistant: assistant,
		logger:    slog.Default(),
	}
}

// Connect implements Transport.
func (t *VapiTransport) Connect(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.call != nil {
		return fmt.Errorf("session: vapi transport already connected")
	}

	call, err := t.client.Start(ctx, t.assistant)
	if err != nil {
		if errors.Is(err, vapi.ErrMissingPublicKey) {
			return fmt.Errorf("%w: vapi public key is missing", ErrNotConfigured)
		}
		return err
	}

	if t.muted {
		if err := call.SetMuted(true); err != nil {
			t.logger.Warn("session: could not restore mute state", "error", err)
		}
	}

	t.call = call
	t.events = make(chan TransportEvent, DefaultEventBuffer)
	go t.forward(call, t.events)
	return nil
}

// Disconnect implements Transport. Disconnecting while disconnected is
// a no-op.
func (t *VapiTransport) Disconnect() error {
	t.mu.Lock()
	call := t.call
	t.mu.Unlock()
	if call == nil {
		return nil
	}
	return call.Stop()
}

// SetMuted implements Transport. The requested state is cached locally
// so it survives across calls and is restored on reconnect.
func (t *VapiTransport) SetMuted(muted bool) error {
	t.mu.Lock()
	t.muted = muted
	call := t.call
	t.mu.Unlock()
	if call == nil {
		return nil
	}
	return call.SetMuted(muted)
}

// Muted implements Transport.
func (t *VapiTransport) Muted() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.call != nil {
		return t.call.Muted()
	}
	return t.muted
}

// SendContextMessage implements Transport. Without an active call the
// message is logged and dropped.
func (t *VapiTransport) SendContextMessage(text string) error {
	t.mu.Lock()
	call := t.call
	t.mu.Unlock()
	if call == nil {
		t.logger.Info("session: no active call, context message dropped", "text", text)
		return nil
	}
	return call.AddMessage(vapi.RoleSystem, text)
}

// Events implements Transport.
func (t *VapiTransport) Events() <-chan TransportEvent {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.events
}

// forward translates the call's message stream into transport events.
// It exits, and closes the event channel, when the stream ends.
func (t *VapiTransport) forward(call *vapi.Call, events chan<- TransportEvent) {
	defer func() {
		t.mu.Lock()
		if t.call == call {
			t.muted = call.Muted()
			t.call = nil
		}
		t.mu.Unlock()
		close(events)
	}()

	for msg, err := range call.Messages() {
		if err != nil {
			events <- TransportEvent{Kind: TransportError, Err: err}
			return
		}
		if ev, ok := translate(msg); ok {
			events <- ev
		}
	}
}

func translate(msg *vapi.ServerMessage) (TransportEvent, bool) {
	switch msg.Type {
	case vapi.MessageTypeCallStart:
		return TransportEvent{Kind: TransportCallStarted}, true
	case vapi.MessageTypeCallEnd:
		return TransportEvent{Kind: TransportCallEnded}, true
	case vapi.MessageTypeSpeechStart:
		return TransportEvent{Kind: TransportSpeechStarted}, true
	case vapi.MessageTypeSpeechEnd:
		return TransportEvent{Kind: TransportSpeechEnded}, true
	case vapi.MessageTypeVolumeLevel:
		return TransportEvent{Kind: TransportVolume, Level: msg.Level}, true
	case vapi.MessageTypeTranscript:
		return TransportEvent{
			Kind:  TransportFragment,
			Role:  Role(msg.Role),
			Text:  msg.Transcript,
			Final: msg.TranscriptType == vapi.TranscriptTypeFinal,
		}, true
	case vapi.MessageTypeError:
		return TransportEvent{Kind: TransportError, Err: msg.Error.ToError()}, true
	case vapi.MessageTypeMuteStatus:
		// Mute acknowledgements are reconciled inside the call.
		return TransportEvent{}, false
	default:
		return TransportEvent{Kind: TransportUnknown}, true
	}
}
