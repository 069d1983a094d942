// Package resocket provides a resilient client connection layer for a
// persistent, message-oriented WebSocket to a remote service.
//
// The package treats message payloads as opaque text frames: it owns no
// wire protocol or schema, only the transport-resilience contract. A
// [Connection] holds a single underlying socket and transparently
// re-establishes it when an established connection's send or receive
// fails. A [Client] wraps a Connection with message-transform seams and
// scoped-lifetime semantics.
//
// # Reconnection
//
// Send and Receive require a prior successful Connect; they never connect
// implicitly. When a transport write or read fails on an established
// connection, the Connection marks itself disconnected, runs its reconnect
// policy to completion, and retries the operation exactly once. With the
// default [FixedDelayPolicy] the reconnect loop retries forever at a
// constant interval; substitute a bounded or backoff policy via
// [WithRetryPolicy].
//
// Note the deliberate asymmetry in the error surface: connect failures and
// not-connected operations are reported as [*ConnectionError], but if the
// single post-reconnect retry fails, the underlying transport error
// propagates unwrapped. Callers that need to distinguish the two should use
// errors.As.
//
// # Basic Usage
//
//	ctx := context.Background()
//
//	client, err := resocket.NewClient("wss://example.com/ws")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	err = client.Session(ctx, func(ctx context.Context) error {
//	    if err := client.SendMessage(ctx, "hello"); err != nil {
//	        return err
//	    }
//	    reply, err := client.ReceiveMessage(ctx)
//	    if err != nil {
//	        return err
//	    }
//	    fmt.Println(reply)
//	    return nil
//	})
//
// Session guarantees exactly one Disconnect on every exit path, including
// error returns and panics.
//
// # Observability
//
// Use [WithLogger], [WithOnSend], [WithOnReceive], and [WithOnReconnect] to
// add logging and monitoring:
//
//	client, err := resocket.NewClient(url,
//	    resocket.WithLogger(slog.Default()),
//	    resocket.WithOnReconnect(func(attempt int, err error) {
//	        metrics.ReconnectAttempts.Inc()
//	    }),
//	)
package resocket
