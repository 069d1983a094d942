package resocket

import (
	"errors"
	"fmt"
)

// Sentinel errors for common conditions.
var (
	// ErrNotConnected is reported when Send or Receive is called without a
	// prior successful Connect. It surfaces wrapped in a [*ConnectionError].
	ErrNotConnected = errors.New("resocket: not connected")

	// ErrSocketClosed is returned by socket operations after Close.
	ErrSocketClosed = errors.New("resocket: socket closed")
)

// ConnectionError represents a connection-level error: a failed connect, an
// operation attempted while disconnected, or an abandoned reconnect.
//
// Transport failures on the post-reconnect retry of a send or receive are
// never wrapped in ConnectionError; they propagate as the underlying
// transport's native error.
type ConnectionError struct {
	Op  string
	URL string
	Err error
}

func (e *ConnectionError) Error() string {
	if e.URL != "" {
		return fmt.Sprintf("resocket: %s %s: %v", e.Op, e.URL, e.Err)
	}
	return fmt.Sprintf("resocket: %s: %v", e.Op, e.Err)
}

func (e *ConnectionError) Unwrap() error {
	return e.Err
}
