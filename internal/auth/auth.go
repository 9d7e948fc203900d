// Package auth implements the FormSynergy shared-secret handshake credentials.
package auth

import (
	"crypto/md5" //nolint:gosec // md5 is mandated by the remote handshake, not used for secrecy
	"encoding/hex"
	"fmt"
	"strconv"
	"time"

	"github.com/fivetwenty-io/formsynergy-client/pkg/formsynergy"
	"golang.org/x/crypto/sha3"
)

// Credentials is the body of an authentication request.
type Credentials struct {
	APIKey     string `json:"apikey"`
	SecretHash string `json:"secrethash"`
	Timestamp  int64  `json:"timestamp"`
}

// SecretHash returns md5(sha3-512(timestamp + secret)) as lowercase hex, each
// digest hex-encoded before being fed to the next.
func SecretHash(timestamp int64, secret string) string {
	inner := sha3.New512()
	_, _ = inner.Write([]byte(strconv.FormatInt(timestamp, 10) + secret))

	outer := md5.Sum([]byte(hex.EncodeToString(inner.Sum(nil)))) //nolint:gosec

	return hex.EncodeToString(outer[:])
}

// Authenticator issues handshake credentials and bounds consecutive attempts.
// It is owned by a single client and is not safe for concurrent use.
type Authenticator struct {
	apiKey      string
	secretKey   string
	maxAttempts int
	attempts    int
	now         func() time.Time
}

// New creates an Authenticator. A nil clock means time.Now.
func New(apiKey, secretKey string, maxAttempts int, now func() time.Time) *Authenticator {
	if now == nil {
		now = time.Now
	}

	return &Authenticator{
		apiKey:      apiKey,
		secretKey:   secretKey,
		maxAttempts: maxAttempts,
		now:         now,
	}
}

// Begin counts one attempt and returns fresh credentials, or
// ErrAuthorizationLimitExceeded once the ceiling is passed.
func (a *Authenticator) Begin() (*Credentials, error) {
	a.attempts++

	if a.attempts > a.maxAttempts {
		return nil, fmt.Errorf("%w of %d", formsynergy.ErrAuthorizationLimitExceeded, a.maxAttempts)
	}

	timestamp := a.now().Unix()

	return &Credentials{
		APIKey:     a.apiKey,
		SecretHash: SecretHash(timestamp, a.secretKey),
		Timestamp:  timestamp,
	}, nil
}

// Succeeded resets the attempt counter.
func (a *Authenticator) Succeeded() {
	a.attempts = 0
}

// Attempts returns the number of consecutive attempts since the last success.
func (a *Authenticator) Attempts() int {
	return a.attempts
}

// MaxAttempts returns the configured ceiling.
func (a *Authenticator) MaxAttempts() int {
	return a.maxAttempts
}
