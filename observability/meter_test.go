package observability

import (
	"context"
	"testing"
)

func TestNewStreamMetrics(t *testing.T) {
	m, err := NewStreamMetrics(Meter())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m == nil {
		t.Fatal("expected non-nil metrics")
	}

	// Without a configured provider the instruments are no-ops;
	// recording must still be safe.
	ctx := context.Background()
	m.RecordConnectAttempt(ctx)
	m.RecordFrame(ctx, "")
	m.RecordFrame(ctx, "update")
	m.RecordStall(ctx)
	m.RecordReconnect(ctx, 1)
	m.RecordRetriesExhausted(ctx)
}
