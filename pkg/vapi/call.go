package vapi

import (
	"context"
	"encoding/json"
	"fmt"
	"iter"
	"log/slog"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
)

// Call is a live realtime voice call.
type Call struct {
	conn      *websocket.Conn
	client    *Client
	closeCh   chan struct{}
	msgCh     chan messageOrError
	closeOnce sync.Once
	mu        sync.Mutex
	muted     bool
}

type messageOrError struct {
	msg *ServerMessage
	err error
}

// Start establishes a call with the given assistant.
//
// Returns ErrMissingPublicKey without dialing if the client has no public
// key. Passing nil opts starts the stock inline assistant.
func (c *Client) Start(ctx context.Context, opts *AssistantOptions) (*Call, error) {
	if c.config.publicKey == "" {
		return nil, ErrMissingPublicKey
	}
	if opts == nil {
		opts = &AssistantOptions{Assistant: DefaultAssistant("", "")}
	}

	headers := http.Header{}
	headers.Set("Authorization", "Bearer "+c.config.publicKey)

	dialer := websocket.Dialer{
		HandshakeTimeout: c.config.httpClient.Timeout,
	}

	conn, resp, err := dialer.DialContext(ctx, c.config.wsURL, headers)
	if err != nil {
		if resp != nil {
			return nil, &Error{
				Code:       "connection_failed",
				Message:    fmt.Sprintf("failed to connect: %v", err),
				HTTPStatus: resp.StatusCode,
			}
		}
		return nil, fmt.Errorf("vapi: failed to connect: %w", err)
	}

	call := &Call{
		conn:    conn,
		client:  c,
		closeCh: make(chan struct{}),
		msgCh:   make(chan messageOrError, 100),
	}

	start := &ClientMessage{Type: MessageTypeStart}
	if opts.AssistantID != "" {
		start.AssistantID = opts.AssistantID
	} else {
		start.Assistant = opts.Assistant
	}
	if err := call.Send(start); err != nil {
		conn.Close()
		return nil, fmt.Errorf("vapi: start call: %w", err)
	}

	go call.readLoop()

	return call, nil
}

// Stop ends the call and closes the connection.
// Stopping an already stopped call is a no-op.
func (c *Call) Stop() error {
	var err error
	c.closeOnce.Do(func() {
		// Best effort; the connection is closed regardless.
		c.Send(&ClientMessage{Type: MessageTypeStop})
		close(c.closeCh)
		err = c.conn.Close()
	})
	return err
}

// SetMuted requests a microphone mute state change.
//
// The new state is cached locally right away for display purposes and
// reconciled when the transport's mute-status acknowledgement arrives.
func (c *Call) SetMuted(muted bool) error {
	c.mu.Lock()
	c.muted = muted
	c.mu.Unlock()
	return c.Send(&ClientMessage{Type: MessageTypeSetMuted, Muted: &muted})
}

// Muted reports the locally-cached mute state.
func (c *Call) Muted() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.muted
}

// AddMessage injects a conversation message into the live call.
func (c *Call) AddMessage(role, content string) error {
	return c.Send(&ClientMessage{
		Type:    MessageTypeAddMessage,
		Message: &Message{Role: role, Content: content},
	})
}

// Send sends a control message to the transport.
func (c *Call) Send(msg *ClientMessage) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if slog.Default().Enabled(context.Background(), slog.LevelDebug) {
		if jsonBytes, err := json.Marshal(msg); err == nil {
			str := string(jsonBytes)
			if len(str) > 500 {
				str = str[:500] + "..."
			}
			slog.Debug("vapi: sending message", "content", str)
		}
	}

	return c.conn.WriteJSON(msg)
}

// Messages returns an iterator over server messages.
//
// The iterator yields messages until the call is stopped or the
// connection fails. Mid-call faults arrive as messages of type
// MessageTypeError and do not terminate iteration; only a read failure
// yields a non-nil error, after which iteration stops.
func (c *Call) Messages() iter.Seq2[*ServerMessage, error] {
	return func(yield func(*ServerMessage, error) bool) {
		for {
			select {
			case <-c.closeCh:
				return
			case item, ok := <-c.msgCh:
				if !ok {
					return
				}
				if !yield(item.msg, item.err) {
					return
				}
				if item.err != nil {
					return
				}
			}
		}
	}
}

// readLoop reads messages from the WebSocket connection.
func (c *Call) readLoop() {
	defer close(c.msgCh)

	for {
		select {
		case <-c.closeCh:
			return
		default:
		}

		_, data, err := c.conn.ReadMessage()
		if err != nil {
			select {
			case <-c.closeCh:
				return
			case c.msgCh <- messageOrError{err: fmt.Errorf("read error: %w", err)}:
			}
			return
		}

		if slog.Default().Enabled(context.Background(), slog.LevelDebug) {
			msgStr := string(data)
			if len(msgStr) > 1000 {
				msgStr = msgStr[:1000] + "..."
			}
			slog.Debug("vapi: received message", "len", len(data), "content", msgStr)
		}

		msg, err := parseMessage(data)
		if err != nil {
			// A malformed frame is skipped, not fatal; the stream
			// carries on exactly like an unknown message type.
			slog.Warn("vapi: dropping unparseable message", "error", err)
			continue
		}

		// Reconcile the cached mute flag with the transport's own state.
		if msg.Type == MessageTypeMuteStatus {
			c.mu.Lock()
			c.muted = msg.Muted
			c.mu.Unlock()
		}

		select {
		case <-c.closeCh:
			return
		case c.msgCh <- messageOrError{msg: msg}:
		}
	}
}

// parseMessage parses a raw JSON payload into a ServerMessage.
func parseMessage(data []byte) (*ServerMessage, error) {
	var msg ServerMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}
	msg.Raw = data
	return &msg, nil
}
