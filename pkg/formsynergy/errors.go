package formsynergy

import (
	"errors"
	"fmt"
	"net/http"
)

// Error kinds returned by clients, sessions and resource caches.
var (
	ErrConfigurationMissing       = errors.New("API configuration details are missing")
	ErrAuthorizationLimitExceeded = errors.New("authorization count exceeds the set limit")
	ErrAuthenticationFailed       = errors.New("authentication response carried no access point")
	ErrRemoteRequestFailed        = errors.New("remote request failed")
	ErrAliasNotFound              = errors.New("unable to locate information")
	ErrStorageUnwritable          = errors.New("storage directory is not writable, local storage is disabled")
	ErrResourceRequired           = errors.New("no resource selected for request")
	ErrUnsupportedMethod          = errors.New("unsupported request method")
	ErrConfigRequired             = errors.New("config is required")
)

// RemoteRequestError carries the upstream status of a failed request.
type RemoteRequestError struct {
	StatusCode   int    `json:"statusCode"     yaml:"statusCode"`
	ReasonPhrase string `json:"responsePhrase" yaml:"responsePhrase"`
	Body         []byte `json:"-"              yaml:"-"`
}

// Error implements the error interface.
func (e *RemoteRequestError) Error() string {
	phrase := e.ReasonPhrase
	if phrase == "" {
		phrase = http.StatusText(e.StatusCode)
	}

	return fmt.Sprintf("server responded with a: %d, %s", e.StatusCode, phrase)
}

// Is makes errors.Is(err, ErrRemoteRequestFailed) match any RemoteRequestError.
func (e *RemoteRequestError) Is(target error) bool {
	return target == ErrRemoteRequestFailed
}

// IsConfigurationMissing checks if the error is a missing configuration error.
func IsConfigurationMissing(err error) bool {
	return errors.Is(err, ErrConfigurationMissing)
}

// IsAuthorizationLimitExceeded checks if the handshake retry ceiling was hit.
func IsAuthorizationLimitExceeded(err error) bool {
	return errors.Is(err, ErrAuthorizationLimitExceeded)
}

// IsRemoteRequestFailed checks if the error came from an upstream non-2xx answer.
func IsRemoteRequestFailed(err error) bool {
	return errors.Is(err, ErrRemoteRequestFailed)
}

// IsAliasNotFound checks if an indexed alias lookup failed.
func IsAliasNotFound(err error) bool {
	return errors.Is(err, ErrAliasNotFound)
}

// IsStorageUnwritable checks if local storage was disabled.
func IsStorageUnwritable(err error) bool {
	return errors.Is(err, ErrStorageUnwritable)
}

// StatusCode extracts the upstream status code, or 0 if err is not remote.
func StatusCode(err error) int {
	remoteErr := &RemoteRequestError{}
	if errors.As(err, &remoteErr) {
		return remoteErr.StatusCode
	}

	return 0
}
