// Package ssetest provides an in-process SSE server for tests.
//
// A Server replays a scripted sequence of events to every connection,
// and can simulate the failure modes the client must survive: silent
// stalls, abrupt connection drops, wrong content types, and error
// statuses.
//
//	srv := ssetest.NewServer(ssetest.CounterScript(10, 10*time.Millisecond))
//	defer srv.Close()
//	// point the stream client at srv.URL
package ssetest
