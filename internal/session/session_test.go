package session_test

import (
	"context"
	"errors"
	"testing"

	"github.com/fivetwenty-io/formsynergy-client/internal/session"
	"github.com/fivetwenty-io/formsynergy-client/pkg/formsynergy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errBackendDown = errors.New("backend down")

var _ formsynergy.SessionStore = (*session.Session)(nil)

type failingBackend struct {
	*session.MemoryBackend
}

func (b *failingBackend) Load(ctx context.Context, key string) ([]byte, bool, error) {
	return nil, false, errBackendDown
}

type warnRecorder struct {
	warnings []string
}

func (w *warnRecorder) Warn(msg string, fields map[string]interface{}) {
	w.warnings = append(w.warnings, msg)
}

func TestSession_SetGetDelete(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := session.New(session.NewMemoryBackend(), "user-1")

	_, ok := store.Get(ctx, "AccessPoint")
	assert.False(t, ok)

	require.NoError(t, store.Set(ctx, "AccessPoint", "ap7"))

	value, ok := store.Get(ctx, "AccessPoint")
	assert.True(t, ok)
	assert.Equal(t, "ap7", value)

	require.NoError(t, store.Delete(ctx, "AccessPoint"))
	require.NoError(t, store.Delete(ctx, "AccessPoint"))

	_, ok = store.Get(ctx, "AccessPoint")
	assert.False(t, ok)
}

func TestSession_KeysAreScopedByID(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	backend := session.NewMemoryBackend()
	first := session.New(backend, "first")
	second := session.New(backend, "second")

	require.NoError(t, first.Set(ctx, "Authenticate", "AccessPoint"))

	_, ok := second.Get(ctx, "Authenticate")
	assert.False(t, ok)
	assert.Equal(t, "second", second.ID())
}

func TestSession_DefaultID(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "default", session.New(session.NewMemoryBackend(), "").ID())
}

func TestSession_Enable(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := session.New(session.NewMemoryBackend(), "user")

	assert.Equal(t, "UTC", store.Location().String())

	require.NoError(t, store.Enable(ctx))
	assert.Equal(t, "America/Los_Angeles", store.Location().String())
	assert.Equal(t, "America/Los_Angeles", store.Now().Location().String())

	require.NoError(t, store.Enable(ctx))
}

func TestSession_EnableBadTimezone(t *testing.T) {
	t.Parallel()

	store := session.New(session.NewMemoryBackend(), "user", session.WithTimezone("Not/AZone"))

	require.Error(t, store.Enable(context.Background()))
}

func TestSession_GetDegradesOnBackendError(t *testing.T) {
	t.Parallel()

	recorder := &warnRecorder{}
	store := session.New(&failingBackend{MemoryBackend: session.NewMemoryBackend()}, "user", session.WithLogger(recorder))

	value, ok := store.Get(context.Background(), "AccessPoint")
	assert.False(t, ok)
	assert.Empty(t, value)
	assert.Equal(t, []string{"session read failed"}, recorder.warnings)
}
