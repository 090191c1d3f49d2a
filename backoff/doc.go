// Package backoff computes reconnection delays for the stream client.
//
// The policy is pure exponential backoff with a fixed ceiling: attempt n
// waits min(initial * 2^(n-1), 30s). Attempt numbers start at 1.
//
//	p := backoff.Policy{Initial: time.Second}
//	p.Delay(1) // 1s
//	p.Delay(3) // 4s
//	p.Delay(9) // 30s (capped)
package backoff
