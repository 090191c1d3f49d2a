package client

import (
	"net/http"
	"time"

	"github.com/kbukum/ssekit/stream"
	"github.com/kbukum/ssekit/validation"
	"github.com/kbukum/ssekit/visibility"
)

const (
	defaultStallInterval     = 30 * time.Second
	defaultMaxRetries        = 5
	defaultInitialRetryDelay = time.Second
)

// Config configures a stream client. It is immutable for the lifetime of
// the client.
type Config struct {
	// Endpoint is the stream URL.
	Endpoint string `yaml:"endpoint" mapstructure:"endpoint" validate:"required,url"`

	// Method is the HTTP method. Defaults to GET.
	Method string `yaml:"method" mapstructure:"method" validate:"omitempty,oneof=GET POST PUT PATCH DELETE"`

	// Headers are sent with every connection attempt.
	Headers map[string]string `yaml:"headers" mapstructure:"headers"`

	// Body is the request body, encoded per stream.Request rules.
	Body any `yaml:"-" mapstructure:"-"`

	// Events are the named event types to deliver. Data-only frames are
	// always delivered; named frames not listed here are ignored.
	Events []string `yaml:"events" mapstructure:"events"`

	// StallInterval is how long the stream may stay silent before a
	// reconnect is forced. Defaults to 30s.
	StallInterval time.Duration `yaml:"stall_interval" mapstructure:"stall_interval"`

	// MaxRetries bounds automatic reconnect attempts. Defaults to 5.
	MaxRetries int `yaml:"max_retries" mapstructure:"max_retries"`

	// InitialRetryDelay seeds the exponential backoff. Defaults to 1s.
	InitialRetryDelay time.Duration `yaml:"initial_retry_delay" mapstructure:"initial_retry_delay"`

	// ConnectWhenHidden keeps the stream open while the host page is
	// hidden. Defaults to false.
	ConnectWhenHidden bool `yaml:"connect_when_hidden" mapstructure:"connect_when_hidden"`

	// Auth configures request authentication.
	Auth *stream.AuthConfig `yaml:"-" mapstructure:"-"`

	// Visibility is the host page-visibility signal.
	// Nil means always visible.
	Visibility visibility.Signal `yaml:"-" mapstructure:"-"`

	// OnMessage is called for each delivered frame with the decoded value
	// and the event name (empty for data-only frames).
	OnMessage func(value any, event string) `yaml:"-" mapstructure:"-"`

	// OnError is called for open rejections and transport errors.
	OnError func(err error) `yaml:"-" mapstructure:"-"`

	// OnMaxRetries is called once when the retry budget is spent.
	OnMaxRetries func() `yaml:"-" mapstructure:"-"`
}

// ApplyDefaults fills in zero-value fields with sensible defaults.
func (c *Config) ApplyDefaults() {
	if c.Method == "" {
		c.Method = http.MethodGet
	}
	if c.StallInterval <= 0 {
		c.StallInterval = defaultStallInterval
	}
	if c.MaxRetries <= 0 {
		c.MaxRetries = defaultMaxRetries
	}
	if c.InitialRetryDelay <= 0 {
		c.InitialRetryDelay = defaultInitialRetryDelay
	}
	if c.Visibility == nil {
		c.Visibility = visibility.Static(visibility.Visible)
	}
}

// Validate checks that the configuration is valid. Call after ApplyDefaults.
func (c *Config) Validate() error {
	if err := validation.ValidateStruct(c); err != nil {
		return err
	}
	v := validation.New()
	v.Check(c.StallInterval > 0, "stall_interval", "must be positive")
	v.Check(c.InitialRetryDelay > 0, "initial_retry_delay", "must be positive")
	v.Check(c.MaxRetries > 0, "max_retries", "must be positive")
	return v.Error()
}
