package session_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/fivetwenty-io/formsynergy-client/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoltBackend_PersistsAcrossReopen(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "session.db")

	backend, err := session.NewBoltBackend(path, "")
	require.NoError(t, err)

	store := session.New(backend, "cli")
	require.NoError(t, store.Set(ctx, "AccessPoint", "ap7"))
	require.NoError(t, store.Close())

	reopened, err := session.NewBoltBackend(path, "")
	require.NoError(t, err)

	store = session.New(reopened, "cli")
	defer func() { _ = store.Close() }()

	value, ok := store.Get(ctx, "AccessPoint")
	assert.True(t, ok)
	assert.Equal(t, "ap7", value)

	require.NoError(t, store.Delete(ctx, "AccessPoint"))
	require.NoError(t, store.Delete(ctx, "missing"))

	_, ok = store.Get(ctx, "AccessPoint")
	assert.False(t, ok)
}

func TestBoltBackend_RequiresPath(t *testing.T) {
	t.Parallel()

	_, err := session.NewBoltBackend("", "")
	require.Error(t, err)
}
