// Package client implements a resilient SSE stream client.
//
// A Client owns the connection lifecycle: it opens the stream, consumes
// frames, watches for silent stalls, reconnects with bounded exponential
// backoff, and suspends while the host page is hidden. Results surface
// through observable state (current value, last error, connected flag,
// retry count) and optional callbacks.
//
// # Usage
//
//	c, err := client.New(client.Config{
//	    Endpoint: "https://api.example.com/events",
//	    OnMessage: func(v any, event string) { ... },
//	})
//	if err != nil {
//	    ...
//	}
//	defer c.Shutdown()
//	c.Connect()
//
// Reconnection is automatic until the retry budget is spent; after the
// retries-exhausted callback fires, only a manual Connect resumes the
// stream. A reconnect always starts a fresh stream; missed events are
// not replayed.
package client
