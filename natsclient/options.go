package natsclient

import (
	"log/slog"
	"time"
)

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the logger for connection state changes.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithClientName sets the connection name visible to the NATS server.
func WithClientName(name string) Option {
	return func(c *Client) { c.clientName = name }
}

// WithTimeout sets the initial connection timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

// WithMaxReconnects sets the reconnect attempt limit. Negative means
// unlimited.
func WithMaxReconnects(n int) Option {
	return func(c *Client) { c.maxReconnects = n }
}
