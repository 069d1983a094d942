package resocket

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Connection owns a single transport socket and tracks its liveness. It is
// created disconnected; Connect establishes the socket and Disconnect
// releases it. When a send or receive fails on an established connection,
// the Connection runs its reconnect policy to completion and retries the
// operation exactly once.
//
// A Connection is exclusively owned by whoever constructs it: the state
// machine assumes at most one outstanding transport operation at a time.
// State accesses are still guarded so a stale liveness flag is never
// observed across operations.
type Connection struct {
	endpoint string
	cfg      config
	id       string

	mu        sync.Mutex
	socket    Socket
	connected bool
}

// NewConnection creates a disconnected Connection to endpoint.
func NewConnection(endpoint string, opts ...Option) *Connection {
	return &Connection{
		endpoint: endpoint,
		cfg:      newConfig(opts),
		id:       uuid.New().String(),
	}
}

// Endpoint returns the remote address this Connection dials.
func (c *Connection) Endpoint() string {
	return c.endpoint
}

// IsConnected reports whether the last connect attempt succeeded with no
// transport failure observed since.
func (c *Connection) IsConnected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.connected
}

// Connect establishes the socket. It is idempotent: calling it on an
// already-connected Connection returns immediately without dialing again.
// A failed dial is reported as a [*ConnectionError] naming the endpoint,
// and the Connection stays disconnected.
func (c *Connection) Connect(ctx context.Context) error {
	c.mu.Lock()
	if c.connected {
		c.mu.Unlock()
		return nil
	}
	c.mu.Unlock()

	sock, err := c.cfg.dialer(ctx, c.endpoint)
	if err != nil {
		return &ConnectionError{Op: "connect", URL: c.endpoint, Err: err}
	}

	c.mu.Lock()
	c.socket = sock
	c.connected = true
	c.mu.Unlock()

	c.cfg.retry.Reset()

	if c.cfg.logger != nil {
		c.cfg.logger.Debug("connected",
			slog.String("conn_id", c.id),
			slog.String("url", c.endpoint),
		)
	}

	return nil
}

// Disconnect releases the socket. Calling it while already disconnected is
// a no-op: no transport operation is performed.
func (c *Connection) Disconnect() error {
	c.mu.Lock()
	if !c.connected || c.socket == nil {
		c.mu.Unlock()
		return nil
	}
	sock := c.socket
	c.socket = nil
	c.connected = false
	c.mu.Unlock()

	if c.cfg.logger != nil {
		c.cfg.logger.Debug("disconnected",
			slog.String("conn_id", c.id),
			slog.String("url", c.endpoint),
		)
	}

	return sock.Close()
}

// Send writes one payload. It requires a prior successful Connect and never
// connects implicitly: on a disconnected Connection it fails with a
// [*ConnectionError] wrapping [ErrNotConnected] without touching the
// transport. If the write fails on an established connection, the
// Connection reconnects per its policy and retries the write exactly once;
// an error from that single retry propagates in the transport's native
// form, not as ConnectionError.
func (c *Connection) Send(ctx context.Context, payload string) error {
	c.mu.Lock()
	sock := c.socket
	connected := c.connected
	c.mu.Unlock()

	if !connected || sock == nil {
		return &ConnectionError{Op: "send", Err: ErrNotConnected}
	}

	if c.cfg.onSend != nil {
		c.cfg.onSend(payload)
	}
	if c.cfg.logger != nil {
		c.cfg.logger.Debug("sending payload",
			slog.String("conn_id", c.id),
			slog.Int("bytes", len(payload)),
		)
	}

	if err := sock.Send(ctx, payload); err != nil {
		c.markBroken()
		if rerr := c.reconnect(ctx); rerr != nil {
			return rerr
		}

		c.mu.Lock()
		sock = c.socket
		c.mu.Unlock()
		if sock == nil {
			return &ConnectionError{Op: "send", Err: ErrNotConnected}
		}

		return sock.Send(ctx, payload)
	}

	return nil
}

// Receive reads one payload. Its contract mirrors [Connection.Send]: a
// prior Connect is required, a failed read triggers one reconnect-then-
// retry, and the retry's error propagates unwrapped.
func (c *Connection) Receive(ctx context.Context) (string, error) {
	c.mu.Lock()
	sock := c.socket
	connected := c.connected
	c.mu.Unlock()

	if !connected || sock == nil {
		return "", &ConnectionError{Op: "receive", Err: ErrNotConnected}
	}

	payload, err := sock.Receive(ctx)
	if err != nil {
		c.markBroken()
		if rerr := c.reconnect(ctx); rerr != nil {
			return "", rerr
		}

		c.mu.Lock()
		sock = c.socket
		c.mu.Unlock()
		if sock == nil {
			return "", &ConnectionError{Op: "receive", Err: ErrNotConnected}
		}

		payload, err = sock.Receive(ctx)
		if err != nil {
			return "", err
		}
	}

	if c.cfg.onReceive != nil {
		c.cfg.onReceive(payload)
	}
	if c.cfg.logger != nil {
		c.cfg.logger.Debug("received payload",
			slog.String("conn_id", c.id),
			slog.Int("bytes", len(payload)),
		)
	}

	return payload, nil
}

// markBroken records a transport failure: the liveness flag drops before
// any further suspension point, and the dead socket is released
// best-effort.
func (c *Connection) markBroken() {
	c.mu.Lock()
	sock := c.socket
	c.socket = nil
	c.connected = false
	c.mu.Unlock()

	if sock != nil {
		_ = sock.Close()
	}
}

// reconnect re-establishes the socket after a transport failure. It loops
// until connected: wait the policy delay, dial, swallow the ConnectionError
// on failure and try again. With the default policy the loop is unbounded;
// a bounded policy that gives up, or a canceled context, ends the loop with
// a ConnectionError wrapping the last failure.
func (c *Connection) reconnect(ctx context.Context) error {
	attempt := 0
	var lastErr error

	for {
		c.mu.Lock()
		connected := c.connected
		c.mu.Unlock()
		if connected {
			return nil
		}

		delay, ok := c.cfg.retry.NextDelay(attempt, lastErr)
		if !ok {
			if lastErr == nil {
				lastErr = errors.New("reconnect abandoned by retry policy")
			}
			return &ConnectionError{Op: "reconnect", URL: c.endpoint, Err: lastErr}
		}

		// Idempotent safety net before redialing.
		_ = c.Disconnect()

		select {
		case <-ctx.Done():
			return &ConnectionError{Op: "reconnect", URL: c.endpoint, Err: ctx.Err()}
		case <-time.After(delay):
		}

		err := c.Connect(ctx)
		if c.cfg.onReconnect != nil {
			c.cfg.onReconnect(attempt, err)
		}
		if err != nil {
			if c.cfg.logger != nil {
				c.cfg.logger.Debug("reconnect attempt failed",
					slog.String("conn_id", c.id),
					slog.Int("attempt", attempt),
					slog.Any("error", err),
				)
			}

			var connErr *ConnectionError
			if errors.As(err, &connErr) {
				lastErr = err
				attempt++
				continue
			}
			return err
		}

		return nil
	}
}
