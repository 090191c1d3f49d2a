package backoff

import (
	"testing"
	"time"
)

func TestPolicy_Delay(t *testing.T) {
	p := Policy{Initial: time.Second}

	tests := []struct {
		attempt  int
		expected time.Duration
	}{
		{1, 1 * time.Second},  // 1000 * 2^0
		{2, 2 * time.Second},  // 1000 * 2^1
		{3, 4 * time.Second},  // 1000 * 2^2
		{4, 8 * time.Second},  // 1000 * 2^3
		{5, 16 * time.Second}, // 1000 * 2^4
		{6, 30 * time.Second}, // 32s capped at ceiling
		{7, 30 * time.Second}, // Still capped
	}

	for _, tt := range tests {
		got := p.Delay(tt.attempt)
		if got != tt.expected {
			t.Errorf("attempt %d: expected %v, got %v", tt.attempt, tt.expected, got)
		}
	}
}

func TestPolicy_DelayDefaultsInitial(t *testing.T) {
	var p Policy

	if got := p.Delay(1); got != DefaultInitial {
		t.Errorf("expected %v, got %v", DefaultInitial, got)
	}
	if got := p.Delay(2); got != 2*DefaultInitial {
		t.Errorf("expected %v, got %v", 2*DefaultInitial, got)
	}
}

func TestPolicy_DelayClampsAttempt(t *testing.T) {
	p := Policy{Initial: 500 * time.Millisecond}

	if got := p.Delay(0); got != 500*time.Millisecond {
		t.Errorf("attempt 0: expected %v, got %v", 500*time.Millisecond, got)
	}
	if got := p.Delay(-3); got != 500*time.Millisecond {
		t.Errorf("attempt -3: expected %v, got %v", 500*time.Millisecond, got)
	}
}

func TestPolicy_LargeAttemptStaysAtCeiling(t *testing.T) {
	p := Policy{Initial: time.Second}

	// Large exponents must not overflow past the ceiling.
	if got := p.Delay(64); got != DelayCeiling {
		t.Errorf("attempt 64: expected %v, got %v", DelayCeiling, got)
	}
}

func TestExhausted(t *testing.T) {
	tests := []struct {
		retries    int
		maxRetries int
		expected   bool
	}{
		{0, 5, false},
		{4, 5, false},
		{5, 5, true}, // >= not >
		{6, 5, true},
		{0, 0, true},
	}

	for _, tt := range tests {
		if got := Exhausted(tt.retries, tt.maxRetries); got != tt.expected {
			t.Errorf("Exhausted(%d, %d) = %v, want %v", tt.retries, tt.maxRetries, got, tt.expected)
		}
	}
}
