// Package stream opens server-sent event streams over HTTP.
//
// It owns the transport concerns of a streaming session: building the
// request (method, headers, query, body, auth), verifying that the
// server actually answered with an event stream, and yielding decoded
// events until the stream ends or the context is canceled.
//
// # Usage
//
//	c := stream.New(stream.Config{})
//	s, err := c.Open(ctx, stream.Request{URL: "https://api.example.com/events"})
//	if err != nil {
//	    // open rejection: bad status or wrong content type
//	}
//	defer s.Close()
//	for {
//	    ev, err := s.Next()
//	    ...
//	}
//
// Connection-lifecycle policy (reconnects, stall detection) lives in
// package client; this package fails fast and reports typed errors.
package stream
