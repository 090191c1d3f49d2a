package client

import "encoding/json"

// decodeFrame parses a frame payload as JSON. Unparseable payloads are
// delivered as the raw string rather than dropped.
func decodeFrame(raw string) any {
	var v any
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		return raw
	}
	return v
}
