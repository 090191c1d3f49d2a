package client

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/kbukum/ssekit/backoff"
	"github.com/kbukum/ssekit/logger"
	"github.com/kbukum/ssekit/observability"
	"github.com/kbukum/ssekit/observe"
	"github.com/kbukum/ssekit/sse"
	"github.com/kbukum/ssekit/stream"
	"github.com/kbukum/ssekit/visibility"
)

// Source yields decoded events from an open stream.
type Source interface {
	Next() (*sse.Event, error)
	Close() error
}

// Opener establishes event streams. stream.Client satisfies it through
// the adapter installed by default; tests substitute scripted openers.
type Opener interface {
	Open(ctx context.Context, req stream.Request) (Source, error)
}

// streamOpener adapts stream.Client to the Opener interface.
type streamOpener struct {
	c *stream.Client
}

func (o streamOpener) Open(ctx context.Context, req stream.Request) (Source, error) {
	s, err := o.c.Open(ctx, req)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// Option configures a Client.
type Option func(*Client)

// WithOpener overrides the transport used to establish streams.
func WithOpener(o Opener) Option {
	return func(c *Client) { c.opener = o }
}

// WithLogger overrides the client's logger.
func WithLogger(l *logger.Logger) Option {
	return func(c *Client) { c.log = l }
}

// Client is a resilient SSE stream client.
type Client struct {
	config  Config
	opener  Opener
	policy  backoff.Policy
	events  map[string]struct{}
	log     *logger.Logger
	metrics *observability.StreamMetrics

	value     *observe.Value[any]
	lastErr   *observe.Value[error]
	connected *observe.Value[bool]
	retries   *observe.Value[int]

	// mu guards the session fields below. State transitions happen only
	// at the lifecycle points: connect, frame, stall, close, error.
	mu         sync.Mutex
	gen        uint64
	cancel     context.CancelFunc
	stallTimer *time.Timer
	lastFrame  time.Time
	sessionID  string
	shutdown   bool

	unsubVisibility func()
}

// New creates a Client. The visibility subscription is live from
// construction until Shutdown; the stream itself opens on Connect.
func New(cfg Config, opts ...Option) (*Client, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	metrics, err := observability.NewStreamMetrics(observability.Meter())
	if err != nil {
		return nil, err
	}

	c := &Client{
		config:    cfg,
		opener:    streamOpener{c: stream.New(stream.Config{})},
		policy:    backoff.Policy{Initial: cfg.InitialRetryDelay},
		events:    make(map[string]struct{}, len(cfg.Events)),
		log:       logger.WithComponent("client"),
		metrics:   metrics,
		value:     observe.NewValue[any](nil),
		lastErr:   observe.NewValue[error](nil),
		connected: observe.NewValue(false),
		retries:   observe.NewValue(0),
	}
	for _, name := range cfg.Events {
		c.events[name] = struct{}{}
	}
	for _, opt := range opts {
		opt(c)
	}

	c.unsubVisibility = cfg.Visibility.Subscribe(c.onVisibility)

	return c, nil
}

// Value is the most recent decoded frame value.
func (c *Client) Value() *observe.Value[any] { return c.value }

// Err is the most recent transport or open error.
func (c *Client) Err() *observe.Value[error] { return c.lastErr }

// Connected reports whether a session is active.
func (c *Client) Connected() *observe.Value[bool] { return c.connected }

// Retries is the current reconnect attempt counter.
func (c *Client) Retries() *observe.Value[int] { return c.retries }

// Connect opens a fresh stream session, tearing down any prior one.
// While the host page is hidden and ConnectWhenHidden is false the call
// is deferred: nothing happens until the page becomes visible again.
func (c *Client) Connect() {
	c.mu.Lock()
	if c.shutdown {
		c.mu.Unlock()
		return
	}
	if c.config.Visibility.State() == visibility.Hidden && !c.config.ConnectWhenHidden {
		c.mu.Unlock()
		c.log.Debug("connect deferred while page hidden",
			logger.Fields(logger.FieldEndpoint, c.config.Endpoint))
		return
	}

	c.closeLocked()
	c.gen++
	gen := c.gen
	ctx, cancel := context.WithCancel(context.Background())
	c.cancel = cancel
	c.sessionID = uuid.NewString()
	c.lastFrame = time.Now()
	sessionID := c.sessionID
	c.mu.Unlock()

	c.connected.Set(true)
	c.metrics.RecordConnectAttempt(ctx)
	c.log.Info("opening stream", logger.Fields(
		logger.FieldSessionID, sessionID,
		logger.FieldEndpoint, c.config.Endpoint,
	))

	go c.run(ctx, gen, sessionID)
}

// Close tears down the active session: it cancels the session context,
// stops the pending stall check, and clears the connected flag.
// Idempotent; safe to call with no active session.
func (c *Client) Close() {
	c.mu.Lock()
	c.closeLocked()
	c.mu.Unlock()

	c.connected.Set(false)
}

// closeLocked cancels the session and stall timer and invalidates all
// callbacks of the prior session. Callers hold mu.
func (c *Client) closeLocked() {
	c.gen++
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	if c.stallTimer != nil {
		c.stallTimer.Stop()
		c.stallTimer = nil
	}
}

// Reconnect runs the retry decision for the current session: it reports
// exhaustion once the budget is spent, otherwise closes the session and
// schedules a Connect after the backoff delay.
func (c *Client) Reconnect() {
	c.mu.Lock()
	gen := c.gen
	c.mu.Unlock()
	c.reconnect(gen)
}

// Shutdown closes the session and releases the visibility subscription.
// The client is terminal afterwards; pending retry timers become no-ops.
func (c *Client) Shutdown() {
	c.mu.Lock()
	c.shutdown = true
	c.closeLocked()
	c.mu.Unlock()

	c.connected.Set(false)
	if c.unsubVisibility != nil {
		c.unsubVisibility()
		c.unsubVisibility = nil
	}
}

// run consumes a single stream session.
func (c *Client) run(ctx context.Context, gen uint64, sessionID string) {
	src, err := c.opener.Open(ctx, stream.Request{
		URL:     c.config.Endpoint,
		Method:  c.config.Method,
		Headers: c.config.Headers,
		Body:    c.config.Body,
		Auth:    c.config.Auth,
	})
	if err != nil {
		c.fail(gen, sessionID, err)
		return
	}
	defer src.Close()

	// Open succeeded with an event-stream response: the retry budget and
	// error state reset, and the liveness window starts.
	if !c.resetOnOpen(gen) {
		return
	}
	c.armStall(gen)

	for {
		ev, err := src.Next()
		if err != nil {
			if err == io.EOF {
				// Server finished the stream; not an error.
				c.log.Info("stream closed by server",
					logger.Fields(logger.FieldSessionID, sessionID))
				c.reconnect(gen)
				return
			}
			c.fail(gen, sessionID, err)
			return
		}
		c.handleFrame(gen, ev)
	}
}

// resetOnOpen clears accumulated retry state for a fresh session.
// Returns false when the session has been superseded.
func (c *Client) resetOnOpen(gen uint64) bool {
	c.mu.Lock()
	if gen != c.gen {
		c.mu.Unlock()
		return false
	}
	c.lastFrame = time.Now()
	c.mu.Unlock()

	c.lastErr.Set(nil)
	c.retries.Set(0)
	return true
}

// handleFrame delivers one frame: re-arms the liveness window, decodes
// the payload, and notifies the consumer. Named frames that were not
// subscribed are ignored.
func (c *Client) handleFrame(gen uint64, ev *sse.Event) {
	if ev.Event != "" {
		if _, ok := c.events[ev.Event]; !ok {
			return
		}
	}

	c.mu.Lock()
	if gen != c.gen {
		c.mu.Unlock()
		return
	}
	c.mu.Unlock()

	c.armStall(gen)

	if ev.Retry > 0 {
		// Server reconnection hints are informational; the backoff policy
		// governs the actual delay.
		c.log.Debug("server sent retry hint", logger.Fields(
			logger.FieldDelay, ev.Retry.Milliseconds()))
	}

	value := decodeFrame(ev.Data)
	c.value.Set(value)
	c.metrics.RecordFrame(context.Background(), ev.Event)

	if c.config.OnMessage != nil {
		c.config.OnMessage(value, ev.Event)
	}
}

// armStall stamps the last-frame time and replaces the pending stall
// check. At most one stall timer exists at any time.
func (c *Client) armStall(gen uint64) {
	c.mu.Lock()
	if gen != c.gen {
		c.mu.Unlock()
		return
	}
	c.lastFrame = time.Now()
	if c.stallTimer != nil {
		c.stallTimer.Stop()
	}
	c.stallTimer = time.AfterFunc(c.config.StallInterval, func() {
		c.onStall(gen)
	})
	c.mu.Unlock()
}

// onStall fires when no frame arrived within the stall interval.
func (c *Client) onStall(gen uint64) {
	c.mu.Lock()
	if gen != c.gen {
		c.mu.Unlock()
		return
	}
	// Stop cannot cancel a callback already in flight, so a frame landing
	// right at the stall boundary re-stamps lastFrame without killing this
	// call. Re-check the gap before acting on it.
	if time.Since(c.lastFrame) < c.config.StallInterval {
		c.mu.Unlock()
		return
	}
	sessionID := c.sessionID
	c.mu.Unlock()

	c.log.Warn("stream stalled, forcing reconnect", logger.Fields(
		logger.FieldSessionID, sessionID,
		"stall_interval_ms", c.config.StallInterval.Milliseconds(),
	))
	c.metrics.RecordStall(context.Background())
	c.reconnect(gen)
}

// fail records a session error and enters the retry path.
func (c *Client) fail(gen uint64, sessionID string, err error) {
	c.mu.Lock()
	if gen != c.gen {
		c.mu.Unlock()
		return
	}
	c.mu.Unlock()

	c.lastErr.Set(err)
	c.connected.Set(false)
	c.log.Error("stream error", logger.Fields(
		logger.FieldSessionID, sessionID,
		logger.FieldError, err.Error(),
	))

	if c.config.OnError != nil {
		c.config.OnError(err)
	}
	c.reconnect(gen)
}

// reconnect is the retry decision point shared by the error, closure,
// and stall paths.
func (c *Client) reconnect(gen uint64) {
	c.mu.Lock()
	if gen != c.gen || c.shutdown {
		c.mu.Unlock()
		return
	}

	// Informational liveness check: a stale gap here is logged but does
	// not start a second reconnection cycle.
	if gap := time.Since(c.lastFrame); gap > c.config.StallInterval {
		c.log.Warn("no frames within stall interval", logger.Fields(
			"gap_ms", gap.Milliseconds()))
	}

	n := c.retries.Get()
	if backoff.Exhausted(n, c.config.MaxRetries) {
		c.mu.Unlock()
		c.log.Error("retry budget exhausted, giving up", logger.Fields(
			logger.FieldAttempt, n,
			logger.FieldEndpoint, c.config.Endpoint,
		))
		c.metrics.RecordRetriesExhausted(context.Background())
		if c.config.OnMaxRetries != nil {
			c.config.OnMaxRetries()
		}
		return
	}

	c.closeLocked()
	attempt := n + 1
	delay := c.policy.Delay(attempt)
	time.AfterFunc(delay, c.Connect)
	c.mu.Unlock()

	c.retries.Set(attempt)
	c.connected.Set(false)
	c.metrics.RecordReconnect(context.Background(), attempt)
	c.log.Info("reconnect scheduled", logger.Fields(
		logger.FieldAttempt, attempt,
		logger.FieldDelay, delay.Milliseconds(),
	))
}

// onVisibility reacts to host page visibility transitions.
func (c *Client) onVisibility(state visibility.State) {
	switch state {
	case visibility.Visible:
		if !c.connected.Get() {
			c.log.Debug("page visible, connecting")
			c.Connect()
			return
		}
		// Connected: check liveness only; reconnect just on a stall.
		c.mu.Lock()
		gap := time.Since(c.lastFrame)
		stale := gap > c.config.StallInterval
		gen := c.gen
		c.mu.Unlock()
		if stale {
			c.log.Warn("stream stalled while hidden", logger.Fields(
				"gap_ms", gap.Milliseconds()))
			c.metrics.RecordStall(context.Background())
			c.reconnect(gen)
		}
	case visibility.Hidden:
		if !c.config.ConnectWhenHidden {
			c.log.Debug("page hidden, closing stream")
			c.Close()
		}
	}
}
