package vapi

import (
	"net/http"
)

// DefaultWebSocketURL is the default WebSocket endpoint for realtime calls.
const DefaultWebSocketURL = "wss://realtime.vapi.ai/call"

// Client creates realtime voice calls against the Vapi API.
//
// A Client is cheap and stateless; each Start establishes an independent
// Call owning its own connection.
type Client struct {
	config *clientConfig
}

// clientConfig holds the client configuration.
type clientConfig struct {
	publicKey  string
	wsURL      string
	httpClient *http.Client
}

// Option configures the Client.
type Option func(*clientConfig)

// NewClient creates a new Vapi realtime client.
//
// The public key may be empty here; Start refuses to dial without one and
// returns ErrMissingPublicKey, so a missing credential surfaces as a
// configuration error rather than a failed connection attempt.
func NewClient(publicKey string, opts ...Option) *Client {
	cfg := &clientConfig{
		publicKey:  publicKey,
		wsURL:      DefaultWebSocketURL,
		httpClient: http.DefaultClient,
	}

	for _, opt := range opts {
		opt(cfg)
	}

	return &Client{config: cfg}
}

// WithWebSocketURL sets the WebSocket URL.
func WithWebSocketURL(url string) Option {
	return func(c *clientConfig) {
		c.wsURL = url
	}
}

// WithHTTPClient sets a custom HTTP client. Its Timeout is used as the
// WebSocket handshake timeout.
func WithHTTPClient(client *http.Client) Option {
	return func(c *clientConfig) {
		c.httpClient = client
	}
}
