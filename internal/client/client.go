// Package client implements the FormSynergy fluent request builder and its
// re-authentication handshake.
package client

import (
	"time"

	"github.com/fivetwenty-io/formsynergy-client/internal/auth"
	"github.com/fivetwenty-io/formsynergy-client/internal/constants"
	"github.com/fivetwenty-io/formsynergy-client/internal/http"
	"github.com/fivetwenty-io/formsynergy-client/internal/session"
	"github.com/fivetwenty-io/formsynergy-client/pkg/formsynergy"
)

// state is the staged request: target, intent and payload.
type state struct {
	resource string
	method   formsynergy.Method
	envelope formsynergy.Envelope
	request  map[string]any
}

// snapshot is the part of a staged request parked across an authentication detour.
type snapshot struct {
	resource string
	method   formsynergy.Method
	envelope formsynergy.Envelope
}

// Client implements formsynergy.Client. A Client holds one staged request and
// is not safe for concurrent use.
type Client struct {
	config        *formsynergy.Config
	httpClient    *http.Client
	session       formsynergy.SessionStore
	authenticator *auth.Authenticator
	logger        formsynergy.Logger
	interceptors  *formsynergy.InterceptorChain

	state          state
	temp           *snapshot
	objID          string
	response       *formsynergy.Response
	aliases        map[string]any
	lastAlias      string
	authenticating bool
	err            error
}

// createHTTPClientOptions builds HTTP client options from config.
func createHTTPClientOptions(config *formsynergy.Config) []http.Option {
	var httpOpts []http.Option

	if config.Logger != nil {
		httpOpts = append(httpOpts, http.WithLogger(&loggerAdapter{logger: config.Logger}))
	}

	if config.Debug {
		httpOpts = append(httpOpts, http.WithDebug(true))
	}

	if config.UserAgent != "" {
		httpOpts = append(httpOpts, http.WithUserAgent(config.UserAgent))
	}

	if config.HTTPTimeout > 0 {
		httpOpts = append(httpOpts, http.WithTimeout(config.HTTPTimeout))
	}

	if config.RetryMax > 0 {
		retryWaitMin := constants.DefaultRetryWaitMin
		retryWaitMax := constants.DefaultRetryWaitMax

		if config.RetryWaitMin > 0 {
			retryWaitMin = config.RetryWaitMin
		}

		if config.RetryWaitMax > 0 {
			retryWaitMax = config.RetryWaitMax
		}

		httpOpts = append(httpOpts, http.WithRetryConfig(config.RetryMax, retryWaitMin, retryWaitMax))
	}

	return httpOpts
}

// sessionClock is implemented by stores that carry a reference timezone.
type sessionClock interface {
	Now() time.Time
}

// New creates a client for config. A nil store keeps session flags in memory
// for the lifetime of the client.
func New(config *formsynergy.Config, store formsynergy.SessionStore) (*Client, error) {
	if config == nil {
		return nil, formsynergy.ErrConfigRequired
	}

	if store == nil {
		store = session.New(session.NewMemoryBackend(), "")
	}

	now := config.Now
	if clock, ok := store.(sessionClock); ok && now == nil {
		now = clock.Now
	}

	maxAuthCount := config.MaxAuthCount
	if maxAuthCount <= 0 {
		maxAuthCount = constants.DefaultMaxAuthCount
	}

	return &Client{
		config:        config,
		httpClient:    http.NewClient(config.BaseURL(), createHTTPClientOptions(config)...),
		session:       store,
		authenticator: auth.New(config.APIKey, config.SecretKey, maxAuthCount, now),
		logger:        config.Logger,
		interceptors:  config.Interceptors,
		state:         state{request: map[string]any{}},
		aliases:       map[string]any{},
	}, nil
}

// Err returns the first error of the chain, if any.
func (c *Client) Err() error {
	return c.err
}

// ObjectID returns the last known object id.
func (c *Client) ObjectID() string {
	return c.objID
}

// AuthAttempts returns the number of consecutive authentication attempts
// since the last success.
func (c *Client) AuthAttempts() int {
	return c.authenticator.Attempts()
}

func (c *Client) fail(err error) {
	if c.err == nil {
		c.err = err
	}
}

func (c *Client) logInfo(msg string, fields map[string]interface{}) {
	if c.logger != nil {
		c.logger.Info(msg, fields)
	}
}

func (c *Client) logWarn(msg string, fields map[string]interface{}) {
	if c.logger != nil {
		c.logger.Warn(msg, fields)
	}
}

// loggerAdapter adapts formsynergy.Logger to http.Logger.
type loggerAdapter struct {
	logger formsynergy.Logger
}

func (l *loggerAdapter) Debug(msg string, fields map[string]interface{}) {
	l.logger.Debug(msg, fields)
}

func (l *loggerAdapter) Info(msg string, fields map[string]interface{}) {
	l.logger.Info(msg, fields)
}

func (l *loggerAdapter) Warn(msg string, fields map[string]interface{}) {
	l.logger.Warn(msg, fields)
}

func (l *loggerAdapter) Error(msg string, fields map[string]interface{}) {
	l.logger.Error(msg, fields)
}

var _ formsynergy.Client = (*Client)(nil)
