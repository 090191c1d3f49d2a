package stream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/kbukum/ssekit/sse"
)

const contentTypeEventStream = "text/event-stream"

// Config configures the stream client.
type Config struct {
	// Headers are default headers applied to all requests.
	Headers map[string]string `yaml:"headers" mapstructure:"headers"`

	// Transport overrides the HTTP transport. Nil uses a clone of
	// http.DefaultTransport.
	Transport http.RoundTripper `yaml:"-" mapstructure:"-"`
}

// Request describes an event-stream request.
type Request struct {
	// URL is the stream endpoint.
	URL string
	// Method is the HTTP method. Defaults to GET.
	Method string
	// Headers are request-specific headers (merged with client defaults).
	Headers map[string]string
	// Query are URL query parameters.
	Query map[string]string
	// Body is the request body. Accepts io.Reader, []byte, string, or any
	// value that will be JSON-encoded.
	Body any
	// Auth configures request authentication.
	Auth *AuthConfig
}

// Client opens event streams.
type Client struct {
	httpClient *http.Client
	config     Config
}

// New creates a stream client.
// The underlying HTTP client carries no global timeout: event streams are
// long-lived and cancellation flows through the request context.
func New(cfg Config) *Client {
	transport := cfg.Transport
	if transport == nil {
		transport = http.DefaultTransport.(*http.Transport).Clone()
	}
	return &Client{
		httpClient: &http.Client{Transport: transport},
		config:     cfg,
	}
}

// Open establishes an event stream. It returns an open-rejection error
// for a non-2xx status or a content type other than text/event-stream,
// and a transport or cancellation error for connection failures.
func (c *Client) Open(ctx context.Context, req Request) (*Stream, error) {
	httpReq, err := c.buildRequest(ctx, req)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		if ctx.Err() != nil {
			return nil, NewCanceledError(err)
		}
		return nil, NewTransportError(err)
	}

	// Check status before starting to stream
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		_ = resp.Body.Close()
		return nil, NewOpenRejectedError(resp.StatusCode, "")
	}

	ct := resp.Header.Get("Content-Type")
	if !strings.Contains(ct, contentTypeEventStream) {
		_ = resp.Body.Close()
		return nil, NewOpenRejectedError(resp.StatusCode, ct)
	}

	return &Stream{
		StatusCode: resp.StatusCode,
		Headers:    flattenHeaders(resp.Header),
		reader:     sse.NewReader(resp.Body),
		ctx:        ctx,
	}, nil
}

// buildRequest constructs an *http.Request from the client config and request.
func (c *Client) buildRequest(ctx context.Context, req Request) (*http.Request, error) {
	method := req.Method
	if method == "" {
		method = http.MethodGet
	}

	body, contentType, err := encodeBody(req.Body)
	if err != nil {
		return nil, NewTransportError(fmt.Errorf("encode body: %w", err))
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, req.URL, body)
	if err != nil {
		return nil, NewTransportError(fmt.Errorf("create request: %w", err))
	}

	if len(req.Query) > 0 {
		q := httpReq.URL.Query()
		for k, v := range req.Query {
			q.Set(k, v)
		}
		httpReq.URL.RawQuery = q.Encode()
	}

	httpReq.Header.Set("Accept", contentTypeEventStream)
	httpReq.Header.Set("Cache-Control", "no-cache")

	// Client defaults first, request-specific headers override
	for k, v := range c.config.Headers {
		httpReq.Header.Set(k, v)
	}
	for k, v := range req.Headers {
		httpReq.Header.Set(k, v)
	}

	if body != nil && httpReq.Header.Get("Content-Type") == "" && contentType != "" {
		httpReq.Header.Set("Content-Type", contentType)
	}

	req.Auth.apply(httpReq)

	return httpReq, nil
}

// Stream is an open event stream.
type Stream struct {
	// StatusCode is the HTTP status code of the open response.
	StatusCode int
	// Headers are the response headers.
	Headers map[string]string

	reader sse.Reader
	ctx    context.Context
}

// Next returns the next event. It returns io.EOF when the server closes
// the stream cleanly and a typed *Error for transport failures or
// cancellation.
func (s *Stream) Next() (*sse.Event, error) {
	ev, err := s.reader.Next()
	if err != nil {
		if err == io.EOF {
			// A canceled body read can surface as EOF; distinguish it.
			if s.ctx.Err() != nil {
				return nil, NewCanceledError(s.ctx.Err())
			}
			return nil, io.EOF
		}
		if s.ctx.Err() != nil {
			return nil, NewCanceledError(err)
		}
		return nil, NewTransportError(err)
	}
	return ev, nil
}

// Close releases the underlying response body. Safe to call more than once.
func (s *Stream) Close() error {
	return s.reader.Close()
}

// encodeBody converts a body value into an io.Reader and content type.
func encodeBody(body any) (io.Reader, string, error) {
	if body == nil {
		return nil, "", nil
	}
	switch v := body.(type) {
	case io.Reader:
		return v, "", nil
	case []byte:
		return bytes.NewReader(v), "", nil
	case string:
		return strings.NewReader(v), "text/plain", nil
	default:
		data, err := json.Marshal(v)
		if err != nil {
			return nil, "", err
		}
		return bytes.NewReader(data), "application/json", nil
	}
}

// flattenHeaders converts multi-value headers to single-value.
func flattenHeaders(h http.Header) map[string]string {
	result := make(map[string]string, len(h))
	for k, v := range h {
		if len(v) > 0 {
			result[k] = v[0]
		}
	}
	return result
}
