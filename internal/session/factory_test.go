package session_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/fivetwenty-io/formsynergy-client/internal/constants"
	"github.com/fivetwenty-io/formsynergy-client/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFromConfig_Memory(t *testing.T) {
	t.Parallel()

	store, err := session.NewFromConfig(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, constants.DefaultSessionID, store.ID())
}

func TestNewFromConfig_Bolt(t *testing.T) {
	t.Parallel()

	config := &session.Config{
		Backend: constants.SessionBackendBolt,
		ID:      "cli",
		Bolt:    &session.BoltConfig{Path: filepath.Join(t.TempDir(), "s.db")},
	}

	store, err := session.NewFromConfig(context.Background(), config)
	require.NoError(t, err)

	defer func() { _ = store.Close() }()

	require.NoError(t, store.Set(context.Background(), "k", "v"))
}

func TestNewFromConfig_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		config *session.Config
		err    error
	}{
		{
			name:   "bolt without path",
			config: &session.Config{Backend: constants.SessionBackendBolt},
			err:    constants.ErrBoltPathRequired,
		},
		{
			name:   "nats without url",
			config: &session.Config{Backend: constants.SessionBackendNATS},
			err:    constants.ErrNATSURLRequired,
		},
		{
			name:   "unknown backend",
			config: &session.Config{Backend: "redis"},
			err:    constants.ErrUnsupportedSessionBackend,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := session.NewFromConfig(context.Background(), tt.config)
			require.ErrorIs(t, err, tt.err)
		})
	}
}

func TestBuilder(t *testing.T) {
	t.Parallel()

	store, err := session.NewBuilder().
		WithID("builder").
		WithTimezone("UTC").
		WithBolt(filepath.Join(t.TempDir(), "b.db"), "custom").
		Build(context.Background())
	require.NoError(t, err)

	defer func() { _ = store.Close() }()

	require.NoError(t, store.Enable(context.Background()))
	assert.Equal(t, "UTC", store.Location().String())
	assert.Equal(t, "builder", store.ID())
}
