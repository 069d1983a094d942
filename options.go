package resocket

import (
	"context"
	"log/slog"
	"time"
)

// Option configures a Connection or Client.
type Option func(*config)

type config struct {
	dialer      Dialer
	dialOpts    *DialOptions
	retry       RetryPolicy
	logger      *slog.Logger
	onSend      func(payload string)
	onReceive   func(payload string)
	onReconnect func(attempt int, err error)
	outbound    MessageTransform
	inbound     MessageTransform
}

func newConfig(opts []Option) config {
	cfg := config{}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.dialer == nil {
		dialOpts := cfg.dialOpts
		cfg.dialer = func(ctx context.Context, url string) (Socket, error) {
			return Dial(ctx, url, dialOpts)
		}
	}
	if cfg.retry == nil {
		cfg.retry = NewFixedDelayPolicy(DefaultReconnectDelay, 0)
	}
	return cfg
}

// WithReconnectDelay sets a fixed, unbounded delay between reconnect
// attempts. Shorthand for WithRetryPolicy(NewFixedDelayPolicy(d, 0)).
func WithReconnectDelay(d time.Duration) Option {
	return func(c *config) {
		c.retry = NewFixedDelayPolicy(d, 0)
	}
}

// WithRetryPolicy sets the reconnect policy.
func WithRetryPolicy(p RetryPolicy) Option {
	return func(c *config) {
		c.retry = p
	}
}

// WithDialer sets a custom transport dialer.
// This is useful for testing or custom transport implementations.
func WithDialer(d Dialer) Option {
	return func(c *config) {
		c.dialer = d
	}
}

// WithDialOptions sets handshake options for the default WebSocket dialer.
// Ignored when a custom Dialer is supplied.
func WithDialOptions(opts *DialOptions) Option {
	return func(c *config) {
		c.dialOpts = opts
	}
}

// WithLogger sets a structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// WithOnSend sets a callback invoked before each payload is sent.
func WithOnSend(fn func(payload string)) Option {
	return func(c *config) {
		c.onSend = fn
	}
}

// WithOnReceive sets a callback invoked after each payload is received.
func WithOnReceive(fn func(payload string)) Option {
	return func(c *config) {
		c.onReceive = fn
	}
}

// WithOnReconnect sets a callback invoked after each reconnect attempt,
// with the 0-based attempt number and the attempt's error (nil on success).
func WithOnReconnect(fn func(attempt int, err error)) Option {
	return func(c *config) {
		c.onReconnect = fn
	}
}

// WithOutboundTransform sets the transform applied to messages before they
// are sent. Defaults to identity.
func WithOutboundTransform(fn MessageTransform) Option {
	return func(c *config) {
		c.outbound = fn
	}
}

// WithInboundTransform sets the transform applied to received messages
// before they are returned. Defaults to identity.
func WithInboundTransform(fn MessageTransform) Option {
	return func(c *config) {
		c.inbound = fn
	}
}
