// Package session implements formsynergy.SessionStore over pluggable backends.
package session

import (
	"context"
	"fmt"
	"time"

	"github.com/fivetwenty-io/formsynergy-client/internal/constants"
)

// Logger is the structured logger used to report degraded reads.
type Logger interface {
	Warn(msg string, fields map[string]interface{})
}

// Session is a key/value view of one user session inside a Backend. Keys are
// namespaced by session ID so several sessions can share a backend.
type Session struct {
	backend  Backend
	id       string
	timezone string
	location *time.Location
	enabled  bool
	logger   Logger
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the logger for backend failures.
func WithLogger(logger Logger) Option {
	return func(s *Session) {
		s.logger = logger
	}
}

// WithTimezone overrides the reference timezone established by Enable.
func WithTimezone(timezone string) Option {
	return func(s *Session) {
		s.timezone = timezone
	}
}

// New creates a session with the given ID on backend.
func New(backend Backend, id string, opts ...Option) *Session {
	if id == "" {
		id = constants.DefaultSessionID
	}

	session := &Session{
		backend:  backend,
		id:       id,
		timezone: constants.DefaultTimezone,
	}

	for _, opt := range opts {
		opt(session)
	}

	return session
}

// ID returns the session ID.
func (s *Session) ID() string {
	return s.id
}

// Enable establishes the reference timezone. Calling it again is a no-op.
func (s *Session) Enable(ctx context.Context) error {
	if s.enabled {
		return nil
	}

	location, err := time.LoadLocation(s.timezone)
	if err != nil {
		return fmt.Errorf("loading session timezone %q: %w", s.timezone, err)
	}

	s.location = location
	s.enabled = true

	return nil
}

// Location returns the reference timezone, UTC before Enable.
func (s *Session) Location() *time.Location {
	if s.location == nil {
		return time.UTC
	}

	return s.location
}

// Now returns the current time in the reference timezone.
func (s *Session) Now() time.Time {
	return time.Now().In(s.Location())
}

// Get returns the value for key. Backend errors are logged and read as absent.
func (s *Session) Get(ctx context.Context, key string) (string, bool) {
	value, ok, err := s.backend.Load(ctx, s.key(key))
	if err != nil {
		if s.logger != nil {
			s.logger.Warn("session read failed", map[string]interface{}{
				"session": s.id,
				"key":     key,
				"error":   err.Error(),
			})
		}

		return "", false
	}

	if !ok {
		return "", false
	}

	return string(value), true
}

// Set stores value under key.
func (s *Session) Set(ctx context.Context, key, value string) error {
	err := s.backend.Save(ctx, s.key(key), []byte(value))
	if err != nil {
		return fmt.Errorf("setting session key %s: %w", key, err)
	}

	return nil
}

// Delete removes key; missing keys are not an error.
func (s *Session) Delete(ctx context.Context, key string) error {
	err := s.backend.Remove(ctx, s.key(key))
	if err != nil {
		return fmt.Errorf("deleting session key %s: %w", key, err)
	}

	return nil
}

// Close releases the backend.
func (s *Session) Close() error {
	return s.backend.Close()
}

func (s *Session) key(key string) string {
	return s.id + "." + key
}
