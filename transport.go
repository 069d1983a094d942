package resocket

import (
	"context"
	"net/http"
	"sync"

	"github.com/coder/websocket"
)

// Socket is a single established transport connection. Payloads are opaque
// text frames; the remote application protocol is not this package's concern.
// Implementations must be safe for concurrent use.
type Socket interface {
	Send(ctx context.Context, payload string) error
	Receive(ctx context.Context) (string, error)
	Close() error
}

// Dialer opens a new Socket to the given endpoint. Errors are returned in
// the transport's native form; the Connection wraps them as needed.
type Dialer func(ctx context.Context, url string) (Socket, error)

// DialOptions configures the WebSocket handshake performed by [Dial].
type DialOptions struct {
	// HTTPHeader specifies additional HTTP headers to send during handshake.
	HTTPHeader http.Header

	// HTTPClient is the HTTP client used for the handshake.
	// If nil, http.DefaultClient is used.
	HTTPClient *http.Client
}

// Dial opens a WebSocket to url and returns it as a Socket. It is the
// default Dialer used by Connections; supply a custom Dialer with
// [WithDialer] to use a different transport.
func Dial(ctx context.Context, url string, opts *DialOptions) (Socket, error) {
	dialOpts := &websocket.DialOptions{}
	if opts != nil && opts.HTTPHeader != nil {
		dialOpts.HTTPHeader = opts.HTTPHeader.Clone()
	}
	if opts != nil && opts.HTTPClient != nil {
		dialOpts.HTTPClient = opts.HTTPClient
	}

	conn, _, err := websocket.Dial(ctx, url, dialOpts)
	if err != nil {
		return nil, err
	}

	// Set a large read limit for potentially large frames
	conn.SetReadLimit(32 * 1024 * 1024) // 32MB

	return &wsSocket{conn: conn}, nil
}

// wsSocket implements Socket over WebSocket.
type wsSocket struct {
	conn   *websocket.Conn
	mu     sync.Mutex
	closed bool
}

// Send writes one text frame to the peer.
func (s *wsSocket) Send(ctx context.Context, payload string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrSocketClosed
	}

	return s.conn.Write(ctx, websocket.MessageText, []byte(payload))
}

// Receive reads one frame from the peer.
func (s *wsSocket) Receive(ctx context.Context) (string, error) {
	_, data, err := s.conn.Read(ctx)
	if err != nil {
		s.mu.Lock()
		closed := s.closed
		s.mu.Unlock()
		if closed {
			return "", ErrSocketClosed
		}
		return "", err
	}

	return string(data), nil
}

// Close closes the socket.
func (s *wsSocket) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true

	return s.conn.Close(websocket.StatusNormalClosure, "")
}
