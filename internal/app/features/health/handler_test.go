package health_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dalemusser/schooladmin/internal/app/features/health"
	"github.com/dalemusser/schooladmin/internal/testutil"
	"go.uber.org/zap"
)

type response struct {
	Status   string `json:"status"`
	Upstream string `json:"upstream"`
	Database string `json:"database"`
	Message  string `json:"message"`
}

func serve(t *testing.T, h *health.Handler) (*httptest.ResponseRecorder, response) {
	t.Helper()
	rec := httptest.NewRecorder()
	health.Routes(h).ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))

	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type: got %q, want %q", ct, "application/json")
	}
	var got response
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	return rec, got
}

func TestServe_UpstreamReachable_NoDatabase(t *testing.T) {
	api := testutil.NewFakeAPI(t)
	rec, got := serve(t, health.NewHandler(api.Client, nil, zap.NewNop()))

	if rec.Code != http.StatusOK {
		t.Errorf("expected status %d, got %d", http.StatusOK, rec.Code)
	}
	if got.Status != "ok" || got.Upstream != "reachable" || got.Database != "disabled" {
		t.Errorf("response = %+v", got)
	}
}

func TestServe_UpstreamDown(t *testing.T) {
	api := testutil.NewFakeAPI(t)
	api.Fail("GET", "/api/Centers/districts", http.StatusInternalServerError)

	rec, got := serve(t, health.NewHandler(api.Client, nil, zap.NewNop()))
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("expected status %d, got %d", http.StatusServiceUnavailable, rec.Code)
	}
	if got.Status != "error" || got.Upstream != "unreachable" || got.Message != "School API unavailable" {
		t.Errorf("response = %+v", got)
	}
}

func TestServe_DatabaseConnected(t *testing.T) {
	db := testutil.SetupTestDB(t)
	api := testutil.NewFakeAPI(t)

	rec, got := serve(t, health.NewHandler(api.Client, db.Client(), zap.NewNop()))
	if rec.Code != http.StatusOK {
		t.Errorf("expected status %d, got %d", http.StatusOK, rec.Code)
	}
	if got.Database != "connected" {
		t.Errorf("database: got %q, want %q", got.Database, "connected")
	}
}
