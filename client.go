package resocket

import (
	"context"
)

// MessageTransform rewrites a message payload on its way in or out of the
// client. The default transform is identity; the seam exists so framing or
// serialization can be layered in without touching the connection state
// machine.
type MessageTransform func(string) string

// Client is a thin wrapper around a [Connection]: lifecycle calls delegate
// directly, and messages pass through configurable inbound/outbound
// transforms. Each Client exclusively owns the one Connection it creates at
// construction.
type Client struct {
	conn     *Connection
	outbound MessageTransform
	inbound  MessageTransform
}

// NewClient creates a Client with a fresh, disconnected Connection to
// endpoint.
func NewClient(endpoint string, opts ...Option) *Client {
	cfg := newConfig(opts)

	identity := func(s string) string { return s }
	outbound := cfg.outbound
	if outbound == nil {
		outbound = identity
	}
	inbound := cfg.inbound
	if inbound == nil {
		inbound = identity
	}

	return &Client{
		conn:     NewConnection(endpoint, opts...),
		outbound: outbound,
		inbound:  inbound,
	}
}

// Connect establishes the underlying connection.
func (c *Client) Connect(ctx context.Context) error {
	return c.conn.Connect(ctx)
}

// Disconnect releases the underlying connection.
func (c *Client) Disconnect() error {
	return c.conn.Disconnect()
}

// IsConnected reports the underlying connection's liveness.
func (c *Client) IsConnected() bool {
	return c.conn.IsConnected()
}

// SendMessage applies the outbound transform and sends the result. The
// error contract is [Connection.Send]'s.
func (c *Client) SendMessage(ctx context.Context, text string) error {
	return c.conn.Send(ctx, c.outbound(text))
}

// ReceiveMessage receives one message and applies the inbound transform.
// The error contract is [Connection.Receive]'s.
func (c *Client) ReceiveMessage(ctx context.Context) (string, error) {
	payload, err := c.conn.Receive(ctx)
	if err != nil {
		return "", err
	}
	return c.inbound(payload), nil
}

// Session runs fn inside a connect/disconnect pair. Disconnect is called
// exactly once on every exit path: normal return, error return, and panic.
// fn's error, if any, is returned to the caller after the disconnect.
func (c *Client) Session(ctx context.Context, fn func(ctx context.Context) error) error {
	if err := c.Connect(ctx); err != nil {
		return err
	}
	defer c.Disconnect()

	return fn(ctx)
}
