package studioapi

import (
	"context"
	"net/http"
	"time"
)

const (
	// DefaultBaseURL is the default backend address for local
	// development.
	DefaultBaseURL = "http://localhost:8000"

	// DefaultTimeout is the default request timeout.
	DefaultTimeout = 30 * time.Second
)

// Client is the Studio backend API client.
type Client struct {
	// Settings provides per-user studio settings operations.
	Settings *SettingsService

	// Memory provides long-term memory operations.
	Memory *MemoryService

	// Vision provides image analysis operations.
	Vision *VisionService

	// Simulation provides environment simulator operations.
	Simulation *SimulationService

	// Calendar provides Google Calendar operations.
	Calendar *CalendarService

	http *httpClient
}

// clientConfig holds the client configuration.
type clientConfig struct {
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration
}

// Option is a function that configures the client.
type Option func(*clientConfig)

// WithBaseURL sets a custom backend base URL.
func WithBaseURL(url string) Option {
	return func(c *clientConfig) {
		c.baseURL = url
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *clientConfig) {
		c.httpClient = client
	}
}

// WithTimeout sets the request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *clientConfig) {
		c.timeout = timeout
	}
}

// NewClient creates a Studio backend client.
func NewClient(opts ...Option) *Client {
	cfg := &clientConfig{
		baseURL: DefaultBaseURL,
		timeout: DefaultTimeout,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.httpClient == nil {
		cfg.httpClient = &http.Client{Timeout: cfg.timeout}
	}

	c := &Client{http: newHTTPClient(cfg)}
	c.Settings = &SettingsService{http: c.http}
	c.Memory = &MemoryService{http: c.http}
	c.Vision = &VisionService{http: c.http}
	c.Simulation = &SimulationService{http: c.http}
	c.Calendar = &CalendarService{http: c.http}
	return c
}

// Health checks backend liveness.
func (c *Client) Health(ctx context.Context) error {
	var result struct {
		Status string `json:"status"`
	}
	return c.http.request(ctx, http.MethodGet, "/health", nil, nil, &result)
}
