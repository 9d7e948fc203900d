package session

import (
	"context"
	"fmt"

	"github.com/fivetwenty-io/formsynergy-client/internal/constants"
)

// Config configures a session store.
type Config struct {
	// Backend is one of "memory", "bolt" or "nats". Empty means memory.
	Backend string

	// ID scopes the keys of this session inside the backend.
	ID string

	// Timezone is the reference timezone established by Enable.
	Timezone string

	// Bolt backend configuration
	Bolt *BoltConfig

	// NATS KV backend configuration
	NATS *NATSConfig

	// Logger receives degraded-read warnings.
	Logger Logger
}

// BoltConfig configures the bbolt file backend.
type BoltConfig struct {
	Path   string
	Bucket string
}

// DefaultConfig returns an in-memory session configuration.
func DefaultConfig() *Config {
	return &Config{
		Backend:  constants.SessionBackendMemory,
		ID:       constants.DefaultSessionID,
		Timezone: constants.DefaultTimezone,
	}
}

// NewFromConfig creates a session store from configuration.
func NewFromConfig(ctx context.Context, config *Config) (*Session, error) {
	if config == nil {
		config = DefaultConfig()
	}

	backend, err := newBackend(ctx, config)
	if err != nil {
		return nil, err
	}

	opts := []Option{}

	if config.Timezone != "" {
		opts = append(opts, WithTimezone(config.Timezone))
	}

	if config.Logger != nil {
		opts = append(opts, WithLogger(config.Logger))
	}

	return New(backend, config.ID, opts...), nil
}

func newBackend(ctx context.Context, config *Config) (Backend, error) {
	switch config.Backend {
	case "", constants.SessionBackendMemory:
		return NewMemoryBackend(), nil

	case constants.SessionBackendBolt:
		if config.Bolt == nil {
			return nil, constants.ErrBoltPathRequired
		}

		return NewBoltBackend(config.Bolt.Path, config.Bolt.Bucket)

	case constants.SessionBackendNATS:
		return NewNATSBackend(ctx, config.NATS)

	default:
		return nil, fmt.Errorf("%w: %s", constants.ErrUnsupportedSessionBackend, config.Backend)
	}
}

// Builder helps build session configurations.
type Builder struct {
	config *Config
}

// NewBuilder creates a new session builder starting from DefaultConfig.
func NewBuilder() *Builder {
	return &Builder{
		config: DefaultConfig(),
	}
}

// WithID sets the session ID.
func (b *Builder) WithID(id string) *Builder {
	b.config.ID = id

	return b
}

// WithTimezone sets the reference timezone.
func (b *Builder) WithTimezone(timezone string) *Builder {
	b.config.Timezone = timezone

	return b
}

// WithBolt selects the bbolt backend.
func (b *Builder) WithBolt(path, bucket string) *Builder {
	b.config.Backend = constants.SessionBackendBolt
	b.config.Bolt = &BoltConfig{Path: path, Bucket: bucket}

	return b
}

// WithNATS selects the NATS KV backend.
func (b *Builder) WithNATS(config *NATSConfig) *Builder {
	b.config.Backend = constants.SessionBackendNATS
	b.config.NATS = config

	return b
}

// WithLogger sets the logger.
func (b *Builder) WithLogger(logger Logger) *Builder {
	b.config.Logger = logger

	return b
}

// Build creates the session from the configuration.
func (b *Builder) Build(ctx context.Context) (*Session, error) {
	return NewFromConfig(ctx, b.config)
}
