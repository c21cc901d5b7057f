package testutil

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/dalemusser/schooladmin/internal/app/system/apiclient"
	"go.uber.org/zap"
)

// RecordedRequest is one call the fake API received.
type RecordedRequest struct {
	Method string
	Path   string
	Auth   string
	Body   []byte
}

type cannedResponse struct {
	status int
	body   []byte
}

// FakeAPI is an in-process stand-in for the school API. Collection GETs
// serve the fixtures in this package; writes answer 200 with {}.
type FakeAPI struct {
	Server *httptest.Server
	Client *apiclient.Client

	mu        sync.Mutex
	responses map[string]cannedResponse
	requests  []RecordedRequest
}

// NewFakeAPI starts a fake API for the duration of t.
func NewFakeAPI(t *testing.T) *FakeAPI {
	t.Helper()
	f := &FakeAPI{responses: map[string]cannedResponse{}}
	f.SetJSON(http.MethodGet, "/api/Schools", http.StatusOK, Schools())
	f.SetJSON(http.MethodGet, "/api/Centers", http.StatusOK, Centers())
	f.SetJSON(http.MethodGet, "/api/Centers/districts", http.StatusOK, Districts())
	f.SetJSON(http.MethodGet, "/api/Centers/tehsils", http.StatusOK, Tehsils())
	f.SetJSON(http.MethodGet, "/api/Teachers", http.StatusOK, Teachers())
	f.SetJSON(http.MethodGet, "/api/Students", http.StatusOK, Students())

	f.Server = httptest.NewServer(http.HandlerFunc(f.serve))
	t.Cleanup(f.Server.Close)

	c, err := apiclient.New(apiclient.Options{BaseURL: f.Server.URL}, zap.NewNop())
	if err != nil {
		t.Fatalf("apiclient.New: %v", err)
	}
	f.Client = c
	return f
}

// SetJSON makes method+path answer status with v encoded as JSON.
func (f *FakeAPI) SetJSON(method, path string, status int, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	f.mu.Lock()
	f.responses[method+" "+path] = cannedResponse{status: status, body: b}
	f.mu.Unlock()
}

// Fail makes method+path answer status with a short text body.
func (f *FakeAPI) Fail(method, path string, status int) {
	f.mu.Lock()
	f.responses[method+" "+path] = cannedResponse{status: status, body: []byte(http.StatusText(status))}
	f.mu.Unlock()
}

// Requests returns a copy of every call received so far.
func (f *FakeAPI) Requests() []RecordedRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]RecordedRequest, len(f.requests))
	copy(out, f.requests)
	return out
}

// Writes returns the non-GET calls received so far.
func (f *FakeAPI) Writes() []RecordedRequest {
	var out []RecordedRequest
	for _, r := range f.Requests() {
		if r.Method != http.MethodGet {
			out = append(out, r)
		}
	}
	return out
}

func (f *FakeAPI) serve(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	f.mu.Lock()
	f.requests = append(f.requests, RecordedRequest{
		Method: r.Method,
		Path:   r.URL.Path,
		Auth:   r.Header.Get("Authorization"),
		Body:   body,
	})
	resp, ok := f.responses[r.Method+" "+r.URL.Path]
	f.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	switch {
	case ok:
		w.WriteHeader(resp.status)
		_, _ = w.Write(resp.body)
	case r.Method == http.MethodGet:
		w.WriteHeader(http.StatusNotFound)
	default:
		_, _ = w.Write([]byte(`{}`))
	}
}
