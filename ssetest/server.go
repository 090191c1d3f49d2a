package ssetest

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"sync"
	"time"
)

// Event is one scripted frame.
type Event struct {
	// Name is the SSE event type. Empty sends a data-only event.
	Name string
	// ID is the event id line. Empty omits it.
	ID string
	// Data is the event payload.
	Data string
}

// Script describes what the server sends on each connection.
type Script struct {
	// Status is the response status. Defaults to 200.
	Status int
	// ContentType overrides the response content type.
	// Defaults to text/event-stream.
	ContentType string
	// Retry, when positive, is sent as a retry: hint before the first event.
	Retry time.Duration
	// Events are sent in order, Interval apart.
	Events []Event
	// Interval is the delay before each event. Zero sends immediately.
	Interval time.Duration
	// StallAfter, when positive, stops sending after that many events but
	// holds the connection open until the client goes away.
	StallAfter int
	// DropAfter, when positive, severs the connection abruptly after that
	// many events.
	DropAfter int
}

// CounterScript replays the canonical demo traffic: n counter events
// with ids, each carrying {count, time, random} as JSON.
func CounterScript(n int, interval time.Duration) Script {
	events := make([]Event, n)
	for i := range events {
		payload, _ := json.Marshal(map[string]any{
			"count":  i + 1,
			"time":   time.Now().Format("15:04:05"),
			"random": rand.Float64(),
		})
		events[i] = Event{
			ID:   fmt.Sprintf("%d", i+1),
			Data: string(payload),
		}
	}
	return Script{Events: events, Interval: interval}
}

// Server replays a Script to every connection.
type Server struct {
	// URL is the server's base URL.
	URL string

	httpServer *httptest.Server
	script     Script

	mu    sync.Mutex
	conns int
}

// NewServer starts a Server replaying the given script.
// Callers must Close it when done.
func NewServer(script Script) *Server {
	s := &Server{script: script}
	s.httpServer = httptest.NewServer(http.HandlerFunc(s.serve))
	s.URL = s.httpServer.URL
	return s
}

// Connections returns how many connections the server has accepted.
func (s *Server) Connections() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conns
}

// Close shuts the server down, severing any held connections.
func (s *Server) Close() {
	s.httpServer.CloseClientConnections()
	s.httpServer.Close()
}

func (s *Server) serve(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	s.conns++
	s.mu.Unlock()

	script := s.script

	contentType := script.ContentType
	if contentType == "" {
		contentType = "text/event-stream"
	}
	status := script.Status
	if status == 0 {
		status = http.StatusOK
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming not supported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(status)
	flusher.Flush()

	if status != http.StatusOK || contentType != "text/event-stream" {
		return
	}

	ctx := r.Context()

	if script.Retry > 0 {
		_, _ = fmt.Fprintf(w, "retry: %d\n\n", script.Retry.Milliseconds())
		flusher.Flush()
	}

	for i, ev := range script.Events {
		if script.StallAfter > 0 && i >= script.StallAfter {
			// Hold the connection open without sending anything further.
			<-ctx.Done()
			return
		}
		if script.DropAfter > 0 && i >= script.DropAfter {
			// Sever without a clean stream end.
			if hj, ok := w.(http.Hijacker); ok {
				if conn, _, err := hj.Hijack(); err == nil {
					_ = conn.Close()
				}
			}
			return
		}

		if script.Interval > 0 {
			select {
			case <-ctx.Done():
				return
			case <-time.After(script.Interval):
			}
		}

		if ev.Name != "" {
			_, _ = fmt.Fprintf(w, "event: %s\n", ev.Name)
		}
		if ev.ID != "" {
			_, _ = fmt.Fprintf(w, "id: %s\n", ev.ID)
		}
		_, _ = fmt.Fprintf(w, "data: %s\n\n", ev.Data)
		flusher.Flush()
	}

	if script.StallAfter > 0 && len(script.Events) <= script.StallAfter {
		<-ctx.Done()
	}
}
