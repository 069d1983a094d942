package resocket

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func newTestClient(d *mockDialer, opts ...Option) *Client {
	opts = append([]Option{WithDialer(d.dial)}, opts...)
	return NewClient("ws://host:1", opts...)
}

func TestClient_ConnectDisconnect(t *testing.T) {
	dialer := newMockDialer()
	client := newTestClient(dialer)
	ctx := context.Background()

	if err := client.Connect(ctx); err != nil {
		t.Fatalf("Connect error: %v", err)
	}
	if !client.IsConnected() {
		t.Error("IsConnected() = false after Connect")
	}

	if err := client.Disconnect(); err != nil {
		t.Fatalf("Disconnect error: %v", err)
	}
	if client.IsConnected() {
		t.Error("IsConnected() = true after Disconnect")
	}
}

func TestClient_SendMessage_Identity(t *testing.T) {
	dialer := newMockDialer()
	client := newTestClient(dialer)
	ctx := context.Background()

	if err := client.Connect(ctx); err != nil {
		t.Fatalf("Connect error: %v", err)
	}

	if err := client.SendMessage(ctx, "Hello"); err != nil {
		t.Fatalf("SendMessage error: %v", err)
	}

	sent := dialer.sock.sentPayloads()
	if len(sent) != 1 || sent[0] != "Hello" {
		t.Errorf("sent = %v, want [Hello] (payload must pass through unchanged)", sent)
	}
}

func TestClient_ReceiveMessage_Identity(t *testing.T) {
	dialer := newMockDialer()
	dialer.sock.recvs = []recvResult{{payload: "World"}}
	client := newTestClient(dialer)
	ctx := context.Background()

	if err := client.Connect(ctx); err != nil {
		t.Fatalf("Connect error: %v", err)
	}

	got, err := client.ReceiveMessage(ctx)
	if err != nil {
		t.Fatalf("ReceiveMessage error: %v", err)
	}
	if got != "World" {
		t.Errorf("ReceiveMessage = %q, want World", got)
	}
}

func TestClient_Transforms(t *testing.T) {
	dialer := newMockDialer()
	dialer.sock.recvs = []recvResult{{payload: "WORLD"}}
	client := newTestClient(dialer,
		WithOutboundTransform(strings.ToUpper),
		WithInboundTransform(strings.ToLower),
	)
	ctx := context.Background()

	if err := client.Connect(ctx); err != nil {
		t.Fatalf("Connect error: %v", err)
	}

	if err := client.SendMessage(ctx, "hello"); err != nil {
		t.Fatalf("SendMessage error: %v", err)
	}
	sent := dialer.sock.sentPayloads()
	if len(sent) != 1 || sent[0] != "HELLO" {
		t.Errorf("sent = %v, want [HELLO]", sent)
	}

	got, err := client.ReceiveMessage(ctx)
	if err != nil {
		t.Fatalf("ReceiveMessage error: %v", err)
	}
	if got != "world" {
		t.Errorf("ReceiveMessage = %q, want world", got)
	}
}

func TestClient_SendMessage_NotConnected(t *testing.T) {
	dialer := newMockDialer()
	client := newTestClient(dialer)

	err := client.SendMessage(context.Background(), "Hello")
	if !errors.Is(err, ErrNotConnected) {
		t.Errorf("err = %v, want ErrNotConnected in the chain", err)
	}
}

func TestClient_Session(t *testing.T) {
	dialer := newMockDialer()
	client := newTestClient(dialer)

	ran := false
	err := client.Session(context.Background(), func(ctx context.Context) error {
		ran = true
		if !client.IsConnected() {
			t.Error("not connected inside session")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Session error: %v", err)
	}
	if !ran {
		t.Fatal("session body did not run")
	}

	if client.IsConnected() {
		t.Error("IsConnected() = true after session")
	}
	if _, _, closes := dialer.sock.counts(); closes != 1 {
		t.Errorf("socket closes = %d, want exactly 1", closes)
	}
}

func TestClient_Session_ErrorStillDisconnects(t *testing.T) {
	dialer := newMockDialer()
	client := newTestClient(dialer)

	bodyErr := errors.New("session body failed")
	err := client.Session(context.Background(), func(ctx context.Context) error {
		return bodyErr
	})
	if !errors.Is(err, bodyErr) {
		t.Errorf("Session err = %v, want the body error", err)
	}

	if client.IsConnected() {
		t.Error("IsConnected() = true after failed session")
	}
	if _, _, closes := dialer.sock.counts(); closes != 1 {
		t.Errorf("socket closes = %d, want exactly 1", closes)
	}
}

func TestClient_Session_PanicStillDisconnects(t *testing.T) {
	dialer := newMockDialer()
	client := newTestClient(dialer)

	func() {
		defer func() {
			if recover() == nil {
				t.Error("expected the panic to propagate")
			}
		}()
		_ = client.Session(context.Background(), func(ctx context.Context) error {
			panic("session body panicked")
		})
	}()

	if client.IsConnected() {
		t.Error("IsConnected() = true after panicking session")
	}
	if _, _, closes := dialer.sock.counts(); closes != 1 {
		t.Errorf("socket closes = %d, want exactly 1", closes)
	}
}

func TestClient_Session_ConnectFailure(t *testing.T) {
	dialer := newMockDialer()
	dialer.dialErrs = []error{errors.New("connection refused")}
	client := newTestClient(dialer)

	ran := false
	err := client.Session(context.Background(), func(ctx context.Context) error {
		ran = true
		return nil
	})
	if err == nil {
		t.Fatal("expected error")
	}

	var connErr *ConnectionError
	if !errors.As(err, &connErr) {
		t.Fatalf("expected ConnectionError, got %T", err)
	}
	if ran {
		t.Error("session body ran despite failed connect")
	}
	if _, _, closes := dialer.sock.counts(); closes != 0 {
		t.Errorf("socket closes = %d, want 0", closes)
	}
}
