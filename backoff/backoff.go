package backoff

import (
	"math"
	"time"
)

// DelayCeiling is the maximum delay between reconnect attempts.
const DelayCeiling = 30 * time.Second

// DefaultInitial is the delay for the first reconnect attempt when the
// policy does not specify one.
const DefaultInitial = time.Second

// Policy computes the delay before a reconnect attempt.
type Policy struct {
	// Initial is the delay for attempt 1. Defaults to DefaultInitial.
	Initial time.Duration
}

// Delay returns the backoff delay for the given attempt number.
// Attempt numbers start at 1; values below 1 are treated as 1.
func (p Policy) Delay(attempt int) time.Duration {
	initial := p.Initial
	if initial <= 0 {
		initial = DefaultInitial
	}
	if attempt < 1 {
		attempt = 1
	}

	d := float64(initial) * math.Pow(2, float64(attempt-1))
	if d > float64(DelayCeiling) {
		return DelayCeiling
	}
	return time.Duration(d)
}

// Exhausted reports whether the retry budget is spent.
// The comparison is >= so exactly maxRetries reconnect attempts are made.
func Exhausted(retries, maxRetries int) bool {
	return retries >= maxRetries
}
