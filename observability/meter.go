package observability

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// instrumentationName identifies this library to the meter provider.
const instrumentationName = "github.com/kbukum/ssekit"

// Meter returns this library's meter from the global provider.
func Meter() metric.Meter {
	return otel.Meter(instrumentationName)
}

// StreamMetrics holds metric instruments for the stream client lifecycle.
type StreamMetrics struct {
	connectAttempts  metric.Int64Counter
	framesReceived   metric.Int64Counter
	stalls           metric.Int64Counter
	reconnects       metric.Int64Counter
	retriesExhausted metric.Int64Counter
}

// NewStreamMetrics creates the lifecycle instruments on the given meter.
func NewStreamMetrics(meter metric.Meter) (*StreamMetrics, error) {
	connectAttempts, err := meter.Int64Counter("ssekit.connect.attempts",
		metric.WithDescription("Stream connection attempts"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating connect.attempts counter: %w", err)
	}

	framesReceived, err := meter.Int64Counter("ssekit.frames.received",
		metric.WithDescription("Event frames received"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating frames.received counter: %w", err)
	}

	stalls, err := meter.Int64Counter("ssekit.stalls",
		metric.WithDescription("Silent stalls detected"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating stalls counter: %w", err)
	}

	reconnects, err := meter.Int64Counter("ssekit.reconnects",
		metric.WithDescription("Reconnect attempts scheduled"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating reconnects counter: %w", err)
	}

	retriesExhausted, err := meter.Int64Counter("ssekit.retries.exhausted",
		metric.WithDescription("Sessions that gave up after max retries"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating retries.exhausted counter: %w", err)
	}

	return &StreamMetrics{
		connectAttempts:  connectAttempts,
		framesReceived:   framesReceived,
		stalls:           stalls,
		reconnects:       reconnects,
		retriesExhausted: retriesExhausted,
	}, nil
}

// RecordConnectAttempt counts a connection attempt.
func (m *StreamMetrics) RecordConnectAttempt(ctx context.Context) {
	m.connectAttempts.Add(ctx, 1)
}

// RecordFrame counts a received frame, tagged with its event type.
func (m *StreamMetrics) RecordFrame(ctx context.Context, event string) {
	if event == "" {
		event = "message"
	}
	m.framesReceived.Add(ctx, 1, metric.WithAttributes(attribute.String("event", event)))
}

// RecordStall counts a detected stall.
func (m *StreamMetrics) RecordStall(ctx context.Context) {
	m.stalls.Add(ctx, 1)
}

// RecordReconnect counts a scheduled reconnect, tagged with the attempt number.
func (m *StreamMetrics) RecordReconnect(ctx context.Context, attempt int) {
	m.reconnects.Add(ctx, 1, metric.WithAttributes(attribute.Int("attempt", attempt)))
}

// RecordRetriesExhausted counts a session giving up.
func (m *StreamMetrics) RecordRetriesExhausted(ctx context.Context) {
	m.retriesExhausted.Add(ctx, 1)
}
