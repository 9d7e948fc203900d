package formsynergy

import (
	"context"
	"net/http"
	"strconv"
)

// Method is the HTTP method of a staged request.
type Method string

const (
	MethodGet    Method = http.MethodGet
	MethodPost   Method = http.MethodPost
	MethodPut    Method = http.MethodPut
	MethodDelete Method = http.MethodDelete
)

// Envelope names the semantic intent of a request, independent of its method.
type Envelope string

const (
	EnvelopeGet          Envelope = "get"
	EnvelopeCreate       Envelope = "create"
	EnvelopeFind         Envelope = "find"
	EnvelopeUpdate       Envelope = "update"
	EnvelopeDelete       Envelope = "delete"
	EnvelopeVerify       Envelope = "verify"
	EnvelopeScan         Envelope = "scan"
	EnvelopeRenew        Envelope = "renew"
	EnvelopeDownload     Envelope = "download"
	EnvelopeWith         Envelope = "with"
	EnvelopeAuthenticate Envelope = "authenticate"
)

// Response is the parsed envelope of the last transmission.
type Response struct {
	StatusCode      int         `json:"statusCode"      yaml:"statusCode"`
	ResponsePhrase  string      `json:"responsePhrase"  yaml:"responsePhrase"`
	ResponseHeaders http.Header `json:"responseHeaders" yaml:"responseHeaders"`
	ResponseBody    []byte      `json:"-"               yaml:"-"`
	Data            any         `json:"data"            yaml:"data"`
}

// DataMap returns Data as a JSON object, or nil if it is not one.
func (r *Response) DataMap() map[string]any {
	if r == nil {
		return nil
	}

	m, _ := r.Data.(map[string]any)

	return m
}

// Payload returns the "data" member of an object document, or the whole
// document when it has none. Aliases retain this value.
func (r *Response) Payload() any {
	if r == nil {
		return nil
	}

	if m, ok := r.Data.(map[string]any); ok {
		if data, ok := m["data"]; ok {
			return data
		}
	}

	return r.Data
}

// Index looks up index in a decoded JSON value: a key for objects, a decimal
// position for arrays.
func Index(value any, index string) (any, bool) {
	switch typed := value.(type) {
	case map[string]any:
		v, ok := typed[index]

		return v, ok
	case []any:
		i, err := strconv.Atoi(index)
		if err != nil || i < 0 || i >= len(typed) {
			return nil, false
		}

		return typed[i], true
	default:
		return nil, false
	}
}

// Client is the fluent request builder. Deferred methods stage state; triggering
// methods (those taking a context) stage state and transmit. All builder
// methods return the same client so calls can be chained; failures are kept
// and reported by Err.
type Client interface {
	// Deferred intents
	Get(resource string) Client
	Create(resource string) Client
	Find(resource string) Client
	Download(resource string) Client
	Replace(attributes map[string]any) Client
	Renew() Client
	With(with any) Client
	Reseller(resellerID string) Client
	Load(profileID string) Client
	Object(objID string) Client
	Reset() Client

	// Triggering calls
	Where(ctx context.Context, where any) Client
	Attributes(ctx context.Context, attributes map[string]any) Client
	Update(ctx context.Context, attributes map[string]any) Client
	Delete(ctx context.Context) Client
	Verify(ctx context.Context) Client
	Scan(ctx context.Context) Client
	Export(ctx context.Context, resources any) Client
	Send(ctx context.Context) Client
	Authenticate(ctx context.Context) error

	// Responses and aliases
	Response() *Response
	LastResponse() *Response
	Ready(fn func(*Response)) *Response
	Then(fn func(Client)) Client
	As(name string) Client
	AsIndex(name, index string) Client
	Alias(name string) (any, bool)
	AliasIndex(name, index string) (any, error)
	Aliases() map[string]any
	LastAlias() string
	ObjectID() string
	Err() error
}

// SessionStore is a key/value store scoped to one user session.
type SessionStore interface {
	// Enable initializes the session; calling it again is a no-op.
	Enable(ctx context.Context) error
	// Get never fails; a missing key or a backend error reads as absent.
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key, value string) error
	// Delete is a no-op for missing keys.
	Delete(ctx context.Context, key string) error
}

// ResourceCache persists one JSON document per named resource variant.
type ResourceCache interface {
	Store(data any, name ...string) error
	Update(newData map[string]any, name ...string) error
	Get(name ...string) (any, bool)
	Find(key string) (any, bool)
	Path(name ...string) string
}

// ErrorRecorder collects non-fatal errors by kind.
type ErrorRecorder interface {
	Error(kind, message string)
}
