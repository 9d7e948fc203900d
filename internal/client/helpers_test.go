package client_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/fivetwenty-io/formsynergy-client/internal/client"
	"github.com/fivetwenty-io/formsynergy-client/internal/session"
	"github.com/fivetwenty-io/formsynergy-client/pkg/formsynergy"
	"github.com/stretchr/testify/require"
)

const testTimestamp = 1700000000

// recordedRequest is one request as seen by the fake service.
type recordedRequest struct {
	Method      string
	Path        string
	ContentType string
	Header      http.Header
	RawPayload  string
	Payload     map[string]any
}

// fakeService records requests and answers with respond.
type fakeService struct {
	mu       sync.Mutex
	requests []recordedRequest
	respond  func(req recordedRequest) (int, any)
}

func (f *fakeService) Requests() []recordedRequest {
	f.mu.Lock()
	defer f.mu.Unlock()

	return append([]recordedRequest(nil), f.requests...)
}

func (f *fakeService) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("payload")

	if r.Method != http.MethodGet {
		body, _ := io.ReadAll(r.Body)
		values, _ := url.ParseQuery(string(body))
		raw = values.Get("payload")
	}

	rec := recordedRequest{
		Method:      r.Method,
		Path:        r.URL.Path,
		ContentType: r.Header.Get("Content-Type"),
		Header:      r.Header.Clone(),
		RawPayload:  raw,
	}

	_ = json.Unmarshal([]byte(raw), &rec.Payload)

	f.mu.Lock()
	f.requests = append(f.requests, rec)

	status, body := http.StatusOK, any(map[string]any{})
	if f.respond != nil {
		status, body = f.respond(rec)
	}
	f.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func newFakeService(t *testing.T, respond func(req recordedRequest) (int, any)) (*fakeService, *httptest.Server) {
	t.Helper()

	service := &fakeService{respond: respond}
	server := httptest.NewServer(service)
	t.Cleanup(server.Close)

	return service, server
}

func testConfig(server *httptest.Server) *formsynergy.Config {
	return &formsynergy.Config{
		APIKey:       "key-1",
		SecretKey:    "s3cr3t",
		Protocol:     "http",
		Endpoint:     strings.TrimPrefix(server.URL, "http://"),
		Version:      "v1",
		MaxAuthCount: 2,
		Now: func() time.Time {
			return time.Unix(testTimestamp, 0)
		},
	}
}

func newTestClient(t *testing.T, config *formsynergy.Config) (*client.Client, *session.Session) {
	t.Helper()

	store := session.New(session.NewMemoryBackend(), "test")

	c, err := client.New(config, store)
	require.NoError(t, err)

	return c, store
}
