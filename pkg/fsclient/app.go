package fsclient

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/fivetwenty-io/formsynergy-client/internal/client"
	"github.com/fivetwenty-io/formsynergy-client/internal/constants"
	"github.com/fivetwenty-io/formsynergy-client/internal/session"
	"github.com/fivetwenty-io/formsynergy-client/pkg/formsynergy"
)

// App is the application context shared by the clients and resource caches
// it creates.
type App struct {
	config *formsynergy.Config

	session       formsynergy.SessionStore
	sessionCloser func() error
	sessionConfig *session.Config

	storagePath string
	storageDir  string
	storage     string

	resellerID string
	profileID  string

	mu     sync.Mutex
	errors map[string][]string
}

// Option configures an App.
type Option func(*App)

// WithSessionStore uses store for session flags. The caller owns its lifecycle.
func WithSessionStore(store formsynergy.SessionStore) Option {
	return func(a *App) {
		a.session = store
	}
}

// WithBoltSession keeps session flags in a bbolt database at path.
func WithBoltSession(path, sessionID string) Option {
	return func(a *App) {
		a.sessionConfig.Backend = constants.SessionBackendBolt
		a.sessionConfig.Bolt = &session.BoltConfig{Path: path}
		a.sessionConfig.ID = sessionID
	}
}

// WithNATSSession shares session flags through a JetStream KV bucket.
func WithNATSSession(url, bucket, sessionID string) Option {
	return func(a *App) {
		a.sessionConfig.Backend = constants.SessionBackendNATS
		a.sessionConfig.NATS = &session.NATSConfig{URL: url, Bucket: bucket}
		a.sessionConfig.ID = sessionID
	}
}

// WithTimezone sets the reference timezone of the session.
func WithTimezone(timezone string) Option {
	return func(a *App) {
		a.sessionConfig.Timezone = timezone
	}
}

// WithStorage enables local storage in path/dir.
func WithStorage(path, dir string) Option {
	return func(a *App) {
		a.storagePath = path
		a.storageDir = dir
	}
}

// WithReseller pre-stages a reseller on every client.
func WithReseller(resellerID string) Option {
	return func(a *App) {
		a.resellerID = resellerID
	}
}

// WithProfile pre-stages a profile on every client.
func WithProfile(profileID string) Option {
	return func(a *App) {
		a.profileID = profileID
	}
}

// New creates an application context from config. The config is copied and
// normalized; the caller's value is not modified.
func New(ctx context.Context, config *formsynergy.Config, opts ...Option) (*App, error) {
	if config == nil {
		return nil, formsynergy.ErrConfigRequired
	}

	app := &App{
		config:        normalizeConfig(config),
		sessionConfig: session.DefaultConfig(),
		errors:        make(map[string][]string),
	}

	if config.Logger != nil {
		app.sessionConfig.Logger = config.Logger
	}

	for _, opt := range opts {
		opt(app)
	}

	if app.session == nil {
		store, err := session.NewFromConfig(ctx, app.sessionConfig)
		if err != nil {
			return nil, fmt.Errorf("creating session store: %w", err)
		}

		app.session = store
		app.sessionCloser = store.Close
	}

	err := app.session.Enable(ctx)
	if err != nil {
		_ = app.Close()

		return nil, fmt.Errorf("enabling session: %w", err)
	}

	if app.storagePath != "" || app.storageDir != "" {
		_ = app.Storage(app.storagePath, app.storageDir)
	}

	return app, nil
}

// NewWithCredentials creates an App for endpoint and API version.
func NewWithCredentials(ctx context.Context, endpoint, version, apiKey, secretKey string) (*App, error) {
	return New(ctx, &formsynergy.Config{
		APIKey:    apiKey,
		SecretKey: secretKey,
		Endpoint:  endpoint,
		Version:   version,
	})
}

// normalizeConfig fills defaults and strips decoration from the endpoint. A
// scheme given in the endpoint wins over Protocol.
func normalizeConfig(config *formsynergy.Config) *formsynergy.Config {
	normalized := *config

	normalized.Protocol = strings.TrimSuffix(strings.TrimSpace(normalized.Protocol), "://")
	if normalized.Protocol == "" {
		normalized.Protocol = constants.DefaultProtocol
	}

	endpoint := strings.TrimSpace(normalized.Endpoint)
	if scheme, rest, found := strings.Cut(endpoint, "://"); found {
		normalized.Protocol = scheme
		endpoint = rest
	}

	normalized.Endpoint = strings.TrimRight(endpoint, "/")
	normalized.Version = strings.Trim(strings.TrimSpace(normalized.Version), "/")

	if normalized.MaxAuthCount <= 0 {
		normalized.MaxAuthCount = constants.DefaultMaxAuthCount
	}

	return &normalized
}

// Config returns a copy of the normalized configuration.
func (a *App) Config() formsynergy.Config {
	return *a.config
}

// Session returns the session store shared by the clients of this App.
func (a *App) Session() formsynergy.SessionStore {
	return a.session
}

// Reseller pre-stages a reseller on clients created afterwards.
func (a *App) Reseller(resellerID string) *App {
	a.resellerID = resellerID

	return a
}

// Load pre-stages a profile on clients created afterwards.
func (a *App) Load(profileID string) *App {
	a.profileID = profileID

	return a
}

// API creates a new client with the reseller and profile pre-staged.
func (a *App) API() formsynergy.Client {
	// client.New only fails on a nil config.
	api, _ := client.New(a.config, a.session)

	if a.resellerID != "" {
		api.Reseller(a.resellerID)
	}

	if a.profileID != "" {
		api.Load(a.profileID)
	}

	return api
}

// Close releases the session store when the App created it.
func (a *App) Close() error {
	if a.sessionCloser == nil {
		return nil
	}

	closer := a.sessionCloser
	a.sessionCloser = nil

	return closer()
}
