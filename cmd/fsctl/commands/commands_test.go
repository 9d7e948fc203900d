package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/fivetwenty-io/formsynergy-client/internal/constants"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

// setupViper isolates viper and the home directory for one test.
func setupViper(t *testing.T) string {
	t.Helper()

	home := t.TempDir()
	t.Setenv("HOME", home)

	viper.Reset()
	t.Cleanup(viper.Reset)

	return home
}

func TestParseKeyValues(t *testing.T) {
	tests := []struct {
		name    string
		pairs   []string
		want    map[string]any
		wantErr bool
	}{
		{
			name:  "strings and json values",
			pairs: []string{"fname=Joe", "age=42", "active=true", "tags=[\"a\"]", "note=a=b"},
			want: map[string]any{
				"fname":  "Joe",
				"age":    float64(42),
				"active": true,
				"tags":   []any{"a"},
				"note":   "a=b",
			},
		},
		{
			name:  "empty",
			pairs: nil,
			want:  map[string]any{},
		},
		{
			name:    "missing separator",
			pairs:   []string{"fname"},
			wantErr: true,
		},
		{
			name:    "missing key",
			pairs:   []string{"=x"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseKeyValues(tt.pairs)
			if tt.wantErr {
				require.ErrorIs(t, err, constants.ErrInvalidKeyValue)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRenderData(t *testing.T) {
	setupViper(t)

	data := []any{
		map[string]any{"id": "a", "name": "first"},
		map[string]any{"id": "b", "extra": true},
	}

	viper.Set("output", constants.FormatJSON)

	var buf bytes.Buffer
	require.NoError(t, renderData(&buf, data))
	assert.JSONEq(t, `[{"id":"a","name":"first"},{"id":"b","extra":true}]`, buf.String())

	viper.Set("output", constants.FormatYAML)
	buf.Reset()
	require.NoError(t, renderData(&buf, map[string]any{"id": "a"}))
	assert.Equal(t, "id: a\n", buf.String())

	viper.Set("output", constants.FormatTable)
	buf.Reset()
	require.NoError(t, renderData(&buf, data))
	assert.Contains(t, buf.String(), "first")
	assert.Contains(t, buf.String(), "true")

	buf.Reset()
	require.NoError(t, renderData(&buf, "plain"))
	assert.Contains(t, buf.String(), "plain")
}

func TestArrayColumns(t *testing.T) {
	columns := arrayColumns([]any{
		map[string]any{"b": 1, "a": 2},
		"scalar",
		map[string]any{"c": 3, "a": 4},
	})

	assert.Equal(t, []string{"a", "b", "c"}, columns)
}

func TestConfigSetAndUnset(t *testing.T) {
	home := setupViper(t)

	configFile := filepath.Join(home, "config.yml")
	viper.SetConfigFile(configFile)
	viper.Set("endpoint", "api.example.com")

	cmd := newConfigSetCommand()
	cmd.SetArgs([]string{"api_key", "key-1"})
	cmd.SetOut(&bytes.Buffer{})
	require.NoError(t, cmd.Execute())

	var saved Config

	raw, err := os.ReadFile(configFile)
	require.NoError(t, err)
	require.NoError(t, yaml.Unmarshal(raw, &saved))
	assert.Equal(t, "key-1", saved.APIKey)
	assert.Equal(t, "api.example.com", saved.Endpoint)

	viper.Set("api_key", "key-1")

	cmd = newConfigUnsetCommand()
	cmd.SetArgs([]string{"endpoint"})
	cmd.SetOut(&bytes.Buffer{})
	require.NoError(t, cmd.Execute())

	raw, err = os.ReadFile(configFile)
	require.NoError(t, err)

	saved = Config{}
	require.NoError(t, yaml.Unmarshal(raw, &saved))
	assert.Equal(t, "key-1", saved.APIKey)
	assert.Empty(t, saved.Endpoint)
}

func TestConfigSetRejectsUnknownKey(t *testing.T) {
	setupViper(t)

	config := &Config{}

	require.ErrorIs(t, setConfigValue(config, "token", "x"), constants.ErrUnknownConfigKey)
	require.Error(t, setConfigValue(config, "max_auth_count", "many"))

	require.NoError(t, setConfigValue(config, "max_auth_count", "5"))
	assert.Equal(t, 5, config.MaxAuthCount)
}

func TestConfigShowMasksSecret(t *testing.T) {
	setupViper(t)

	viper.Set("secret_key", "s3cr3t")
	viper.Set("output", constants.FormatJSON)

	var buf bytes.Buffer

	cmd := newConfigShowCommand()
	cmd.SetOut(&buf)
	require.NoError(t, cmd.Execute())

	var shown Config
	require.NoError(t, json.Unmarshal(buf.Bytes(), &shown))
	assert.Equal(t, masked, shown.SecretKey)
}

func TestGetCommand(t *testing.T) {
	home := setupViper(t)

	var (
		mu      sync.Mutex
		payload string
	)

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		mu.Lock()
		payload = request.URL.Query().Get("payload")
		mu.Unlock()

		assert.Equal(t, "/v1/leads/", request.URL.Path)

		_ = json.NewEncoder(writer).Encode(map[string]any{
			"data": []any{map[string]any{"id": "l-1"}},
		})
	}))
	defer server.Close()

	viper.Set("api_key", "key")
	viper.Set("secret_key", "secret")
	viper.Set("endpoint", server.URL)
	viper.Set("version", "v1")
	viper.Set("session_backend", constants.SessionBackendMemory)
	viper.Set("output", constants.FormatJSON)

	var buf bytes.Buffer

	cmd := NewGetCommand()
	cmd.SetArgs([]string{"leads", "--where", "formid=f-1", "--cache", "today"})
	cmd.SetOut(&buf)
	require.NoError(t, cmd.Execute())

	assert.JSONEq(t, `[{"id":"l-1"}]`, buf.String())

	mu.Lock()
	assert.JSONEq(t, `{"where":{"formid":"f-1"}}`, payload)
	mu.Unlock()

	cached, err := os.ReadFile(filepath.Join(home, ".fsctl", "cache", "leads-today.json"))
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":"l-1"}]`, string(cached))

	buf.Reset()

	show := newCacheShowCommand()
	show.SetArgs([]string{"leads", "today"})
	show.SetOut(&buf)
	require.NoError(t, show.ExecuteContext(context.Background()))
	assert.JSONEq(t, `[{"id":"l-1"}]`, buf.String())
}

func TestObjectCommandsRequireObjectID(t *testing.T) {
	setupViper(t)

	for _, cmd := range []*cobra.Command{
		NewUpdateCommand(),
		NewDeleteCommand(),
		NewVerifyCommand(),
		NewScanCommand(),
		NewRenewCommand(),
	} {
		cmd.SetArgs([]string{"leads"})
		cmd.SetOut(&bytes.Buffer{})
		cmd.SetErr(&bytes.Buffer{})
		require.ErrorIs(t, cmd.Execute(), constants.ErrObjectIDRequired)
	}
}

func TestRequestCommandStructure(t *testing.T) {
	get := NewGetCommand()
	assert.Equal(t, "get RESOURCE", get.Use)
	assert.NotNil(t, get.Flags().Lookup("where"))
	assert.NotNil(t, get.Flags().Lookup("with"))
	assert.NotNil(t, get.Flags().Lookup("cache"))

	update := NewUpdateCommand()
	for _, flag := range []string{"attr", "objid", "replace", "cache"} {
		assert.NotNil(t, update.Flags().Lookup(flag), "Flag %s should exist", flag)
	}

	export := NewExportCommand()
	assert.NotNil(t, export.Flags().Lookup("profile"))

	cache := NewCacheCommand()
	assert.Len(t, cache.Commands(), 2)
}

func TestVersionCommand(t *testing.T) {
	setupViper(t)
	viper.Set("output", constants.FormatJSON)

	var buf bytes.Buffer

	cmd := NewVersionCommand("1.2.3", "abc123", "2026-01-01")
	cmd.SetOut(&buf)
	require.NoError(t, cmd.Execute())

	assert.JSONEq(t, `{"version":"1.2.3","commit":"abc123","built":"2026-01-01"}`, buf.String())
}

func TestCommandContext(t *testing.T) {
	type key struct{}

	cmd := &cobra.Command{}
	assert.NotNil(t, commandContext(cmd))

	cmd.SetContext(context.WithValue(context.Background(), key{}, "v"))
	assert.Equal(t, "v", commandContext(cmd).Value(key{}))
}
