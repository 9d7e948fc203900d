package formsynergy

import (
	"fmt"
	"strings"
	"time"
)

// Logger interface for logging.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// Config represents client configuration for building a formsynergy.Client.
//
// The credential fields and the endpoint are required before any request is
// transmitted. A Config is read-only once handed to a client; fsclient.New
// normalizes a copy.
//
// # Timeouts and retries
//
// Per-request timeouts should generally be controlled via the context passed
// to triggering calls. Transport retries are disabled by default because the
// remote service is not idempotent for create/update intents; set RetryMax to
// opt in for transient failures (>=500, 429, connection errors).
type Config struct {
	// APIKey identifies the account to the remote service.
	APIKey string
	// SecretKey is never transmitted; only a time-boxed hash derived from it is.
	SecretKey string
	// Protocol is the URL scheme, "https" when empty.
	Protocol string
	// Endpoint is the API host (e.g., "api.formsynergy.com").
	Endpoint string
	// Version is the API version path segment (e.g., "v1").
	Version string
	// MaxAuthCount bounds consecutive authentication handshakes. fsclient.New
	// applies a default when zero.
	MaxAuthCount int

	// Optional configurations
	// HTTPTimeout: default HTTP timeout applied by the transport.
	HTTPTimeout time.Duration
	// RetryMax: number of transport retries for transient failures. Zero disables retries.
	RetryMax int
	// RetryWaitMin: minimum backoff between retries. Applied when RetryMax > 0.
	RetryWaitMin time.Duration
	// RetryWaitMax: maximum backoff between retries. Applied when RetryMax > 0.
	RetryWaitMax time.Duration
	// Debug: enables verbose HTTP request/response logging when a Logger is provided.
	Debug bool
	// Logger: optional structured logger used by the HTTP layer and the client.
	Logger Logger
	// UserAgent: overrides the default User-Agent header sent by the client.
	UserAgent string
	// Interceptors: optional chain run around every transmission.
	Interceptors *InterceptorChain
	// Now: clock used for authentication timestamps. time.Now when nil.
	Now func() time.Time
}

// Validate reports ErrConfigurationMissing, naming the missing fields.
func (c *Config) Validate() error {
	if c == nil {
		return ErrConfigurationMissing
	}

	var missing []string

	if c.APIKey == "" {
		missing = append(missing, "apikey")
	}

	if c.SecretKey == "" {
		missing = append(missing, "secretkey")
	}

	if c.Protocol == "" {
		missing = append(missing, "protocol")
	}

	if c.Endpoint == "" {
		missing = append(missing, "endpoint")
	}

	if c.Version == "" {
		missing = append(missing, "version")
	}

	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrConfigurationMissing, strings.Join(missing, ", "))
	}

	return nil
}

// BaseURL returns "<protocol>://<endpoint>".
func (c *Config) BaseURL() string {
	return c.Protocol + "://" + c.Endpoint
}
