package formsynergy

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRemoteRequestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *RemoteRequestError
		expected string
	}{
		{
			name:     "with reason phrase",
			err:      &RemoteRequestError{StatusCode: 404, ReasonPhrase: "Not Found"},
			expected: "server responded with a: 404, Not Found",
		},
		{
			name:     "falls back to status text",
			err:      &RemoteRequestError{StatusCode: 503},
			expected: "server responded with a: 503, Service Unavailable",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}

func TestErrorHelpers(t *testing.T) {
	remote := fmt.Errorf("transmitting: %w", &RemoteRequestError{StatusCode: 401, ReasonPhrase: "Unauthorized"})

	assert.True(t, IsRemoteRequestFailed(remote))
	assert.Equal(t, 401, StatusCode(remote))
	assert.False(t, IsConfigurationMissing(remote))

	assert.True(t, IsConfigurationMissing(fmt.Errorf("%w: apikey", ErrConfigurationMissing)))
	assert.True(t, IsAuthorizationLimitExceeded(fmt.Errorf("wrapped: %w", ErrAuthorizationLimitExceeded)))
	assert.True(t, IsAliasNotFound(ErrAliasNotFound))
	assert.True(t, IsStorageUnwritable(ErrStorageUnwritable))
	assert.Equal(t, 0, StatusCode(errors.New("plain")))
}

func TestConfig_Validate(t *testing.T) {
	t.Run("nil config", func(t *testing.T) {
		var config *Config

		assert.ErrorIs(t, config.Validate(), ErrConfigurationMissing)
	})

	t.Run("missing fields are named", func(t *testing.T) {
		config := &Config{APIKey: "key", Protocol: "https"}

		err := config.Validate()
		assert.ErrorIs(t, err, ErrConfigurationMissing)
		assert.Contains(t, err.Error(), "secretkey")
		assert.Contains(t, err.Error(), "endpoint")
		assert.Contains(t, err.Error(), "version")
		assert.NotContains(t, err.Error(), "apikey")
	})

	t.Run("complete config", func(t *testing.T) {
		config := &Config{
			APIKey:    "key",
			SecretKey: "secret",
			Protocol:  "https",
			Endpoint:  "api.x.com",
			Version:   "v1",
		}

		assert.NoError(t, config.Validate())
		assert.Equal(t, "https://api.x.com", config.BaseURL())
	})
}
