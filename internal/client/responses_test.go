package client_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/fivetwenty-io/formsynergy-client/pkg/formsynergy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func leadsService(t *testing.T) (*fakeService, formsynergy.Client) {
	t.Helper()

	service, server := newFakeService(t, func(req recordedRequest) (int, any) {
		return http.StatusOK, map[string]any{
			"data": []any{
				map[string]any{"id": "a"},
				map[string]any{"id": "b"},
			},
		}
	})
	c, _ := newTestClient(t, testConfig(server))

	return service, c
}

func TestClient_ResponseClears(t *testing.T) {
	t.Parallel()

	_, c := leadsService(t)

	c.Get("leads").Where(context.Background(), nil)
	require.NoError(t, c.Err())

	last := c.LastResponse()
	require.NotNil(t, last)
	assert.Equal(t, http.StatusOK, last.StatusCode)
	assert.Equal(t, "OK", last.ResponsePhrase)
	assert.Equal(t, "application/json", last.ResponseHeaders.Get("Content-Type"))
	assert.NotEmpty(t, last.ResponseBody)

	assert.Same(t, last, c.Response())
	assert.Nil(t, c.Response())
	assert.Nil(t, c.LastResponse())
}

func TestClient_ReadyAndThen(t *testing.T) {
	t.Parallel()

	_, c := leadsService(t)
	ctx := context.Background()

	var seen *formsynergy.Response

	response := c.Get("leads").Where(ctx, nil).Ready(func(r *formsynergy.Response) {
		seen = r
	})
	require.NotNil(t, response)
	assert.Same(t, response, seen)
	assert.Nil(t, c.LastResponse())

	var chained formsynergy.Client

	returned := c.Then(func(inner formsynergy.Client) {
		chained = inner
	})
	assert.Same(t, c, returned)
	assert.Same(t, c, chained)
}

func TestClient_Aliases(t *testing.T) {
	t.Parallel()

	_, c := leadsService(t)

	c.Get("leads").Where(context.Background(), nil).As("leads").AsIndex("first", "0").AsIndex("nothing", "9")
	require.NoError(t, c.Err())

	all, ok := c.Alias("leads")
	require.True(t, ok)
	assert.Len(t, all, 2)

	first, ok := c.Alias("first")
	require.True(t, ok)
	assert.Equal(t, map[string]any{"id": "a"}, first)

	nothing, ok := c.Alias("nothing")
	assert.True(t, ok)
	assert.Nil(t, nothing)

	missing, ok := c.Alias("missing")
	assert.False(t, ok)
	assert.Nil(t, missing)

	assert.Equal(t, "nothing", c.LastAlias())
	assert.Len(t, c.Aliases(), 3)
}

func TestClient_AliasIndex(t *testing.T) {
	t.Parallel()

	_, c := leadsService(t)

	c.Get("leads").Where(context.Background(), nil).As("leads").AsIndex("first", "0")

	second, err := c.AliasIndex("leads", "1")
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"id": "b"}, second)

	id, err := c.AliasIndex("first", "id")
	require.NoError(t, err)
	assert.Equal(t, "a", id)

	whole, err := c.AliasIndex("first", "unknown")
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"id": "a"}, whole)

	_, err = c.AliasIndex("missing", "0")
	require.ErrorIs(t, err, formsynergy.ErrAliasNotFound)
	assert.True(t, formsynergy.IsAliasNotFound(err))
}

func TestClient_AliasesReturnsCopy(t *testing.T) {
	t.Parallel()

	_, c := leadsService(t)

	c.Get("leads").Where(context.Background(), nil).As("leads")

	aliases := c.Aliases()
	delete(aliases, "leads")

	_, ok := c.Alias("leads")
	assert.True(t, ok)
}
