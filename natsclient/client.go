// Package natsclient manages the NATS connection used for remote log
// streaming. It wraps connection setup with sane reconnect defaults so
// callers only deal with a ready *nats.Conn.
package natsclient

import (
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"
)

// Client owns a NATS connection for the lifetime of a process.
type Client struct {
	url    string
	conn   *nats.Conn
	logger *slog.Logger

	clientName    string
	timeout       time.Duration
	maxReconnects int
	reconnectWait time.Duration
}

// New creates a client for the given server URL. The connection is not
// established until Connect.
func New(url string, opts ...Option) *Client {
	c := &Client{
		url:           url,
		logger:        slog.Default(),
		clientName:    "geoio",
		timeout:       5 * time.Second,
		maxReconnects: 10,
		reconnectWait: 2 * time.Second,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Connect establishes the connection. Reconnects are handled by the NATS
// library; connection state changes are logged.
func (c *Client) Connect() error {
	conn, err := nats.Connect(c.url,
		nats.Name(c.clientName),
		nats.Timeout(c.timeout),
		nats.MaxReconnects(c.maxReconnects),
		nats.ReconnectWait(c.reconnectWait),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			c.logger.Warn("NATS disconnected", "error", err)
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			c.logger.Info("NATS reconnected", "url", nc.ConnectedUrl())
		}),
	)
	if err != nil {
		return err
	}
	c.conn = conn
	return nil
}

// Conn returns the live connection, or nil before Connect succeeded.
// A nil connection disables log streaming rather than failing it.
func (c *Client) Conn() *nats.Conn {
	if c == nil {
		return nil
	}
	return c.conn
}

// Close drains and closes the connection. Safe to call on a client that
// never connected.
func (c *Client) Close() {
	if c == nil || c.conn == nil {
		return
	}
	if err := c.conn.Drain(); err != nil {
		c.conn.Close()
	}
	c.conn = nil
}
