// Package sse implements the Server-Sent Events wire format.
//
// It provides a streaming Reader that decodes events one at a time from
// an open event-stream body, handling multi-line data, comment lines,
// event ids, and server retry hints per the SSE specification.
//
// # Usage
//
//	r := sse.NewReader(resp.Body)
//	defer r.Close()
//	for {
//	    ev, err := r.Next()
//	    if err == io.EOF {
//	        break
//	    }
//	    // handle ev.Event, ev.Data
//	}
package sse
