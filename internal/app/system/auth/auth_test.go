package auth_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dalemusser/schooladmin/internal/app/system/auth"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

var fixedNow = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func newTestSessionManager(t *testing.T) *auth.SessionManager {
	t.Helper()
	sm, err := auth.NewSessionManager(
		"test-session-key-must-be-32-chars-long",
		"test-session",
		"",
		24*time.Hour,
		false,
		zap.NewNop(),
	)
	if err != nil {
		t.Fatalf("failed to create session manager: %v", err)
	}
	sm.SetClock(func() time.Time { return fixedNow })
	return sm
}

func signToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("upstream-secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	return s
}

// requestWithSession issues token into a session and returns a request that
// carries the resulting cookie.
func requestWithSession(t *testing.T, sm *auth.SessionManager, token, target string) *http.Request {
	t.Helper()
	rec := httptest.NewRecorder()
	if err := sm.Issue(rec, httptest.NewRequest("POST", "/login", nil), token, "admin"); err != nil {
		t.Fatalf("Issue: %v", err)
	}
	req := httptest.NewRequest("GET", target, nil)
	for _, c := range rec.Result().Cookies() {
		req.AddCookie(c)
	}
	return req
}

func protected() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u, ok := auth.CurrentUser(r)
		if !ok {
			http.Error(w, "no user", http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("hello " + u.DisplayName()))
	})
}

func TestNewSessionManager_EmptyKey(t *testing.T) {
	if _, err := auth.NewSessionManager("", "s", "", time.Hour, true, zap.NewNop()); err == nil {
		t.Error("expected error for empty key with secure cookies")
	}
	if _, err := auth.NewSessionManager("", "s", "", time.Hour, false, zap.NewNop()); err != nil {
		t.Errorf("dev mode with empty key: %v", err)
	}
}

func TestRequireSession_NoSession_RedirectsToLogin(t *testing.T) {
	sm := newTestSessionManager(t)
	handler := sm.RequireSession(protected())

	req := httptest.NewRequest("GET", "/dashboard/masters/school/view?q=x", nil)
	req.Header.Set("Accept", "text/html")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected status %d, got %d", http.StatusSeeOther, rec.Code)
	}
	loc := rec.Header().Get("Location")
	if !strings.HasPrefix(loc, "/login?return=") || !strings.Contains(loc, "%2Fdashboard%2Fmasters%2Fschool%2Fview") {
		t.Errorf("Location = %q", loc)
	}
	if len(rec.Result().Cookies()) != 0 {
		t.Error("no cookie should be written when there was no session")
	}
}

func TestRequireSession_NoSession_API_Returns401(t *testing.T) {
	sm := newTestSessionManager(t)
	req := httptest.NewRequest("GET", "/dashboard", nil)
	req.Header.Set("Accept", "application/json")
	rec := httptest.NewRecorder()
	sm.RequireSession(protected()).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected status %d, got %d", http.StatusUnauthorized, rec.Code)
	}
}

func TestRequireSession_NoSession_HTMX_ReturnsHXRedirect(t *testing.T) {
	sm := newTestSessionManager(t)
	req := httptest.NewRequest("GET", "/dashboard", nil)
	req.Header.Set("HX-Request", "true")
	rec := httptest.NewRecorder()
	sm.RequireSession(protected()).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected status %d, got %d", http.StatusUnauthorized, rec.Code)
	}
	if hx := rec.Header().Get("HX-Redirect"); !strings.HasPrefix(hx, "/login") {
		t.Errorf("expected HX-Redirect to /login, got %q", hx)
	}
}

func TestRequireSession_ValidToken_Proceeds(t *testing.T) {
	sm := newTestSessionManager(t)
	token := signToken(t, jwt.MapClaims{
		"exp":  fixedNow.Add(time.Hour).Unix(),
		"name": "Asha Patil",
	})
	req := requestWithSession(t, sm, token, "/dashboard")
	req.Header.Set("Accept", "text/html")
	rec := httptest.NewRecorder()
	sm.RequireSession(protected()).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %q", rec.Code, rec.Body.String())
	}
	if rec.Body.String() != "hello Asha Patil" {
		t.Errorf("body = %q", rec.Body.String())
	}
	if len(rec.Result().Cookies()) != 0 {
		t.Error("valid session should be left untouched")
	}
}

func TestRequireSession_ExpiredToken_ClearsAndRedirects(t *testing.T) {
	sm := newTestSessionManager(t)
	token := signToken(t, jwt.MapClaims{"exp": fixedNow.Add(-time.Minute).Unix()})
	req := requestWithSession(t, sm, token, "/dashboard")
	req.Header.Set("Accept", "text/html")
	rec := httptest.NewRecorder()
	sm.RequireSession(protected()).ServeHTTP(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d", rec.Code)
	}
	assertCookieCleared(t, rec, sm.Name())
}

func TestRequireSession_GarbageToken_ClearsAndRedirects(t *testing.T) {
	sm := newTestSessionManager(t)
	req := requestWithSession(t, sm, "not-a-jwt", "/dashboard")
	req.Header.Set("Accept", "text/html")
	rec := httptest.NewRecorder()
	sm.RequireSession(protected()).ServeHTTP(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d", rec.Code)
	}
	assertCookieCleared(t, rec, sm.Name())
}

func TestRequireSession_UndecodableCookie_ClearsAndRedirects(t *testing.T) {
	sm := newTestSessionManager(t)
	req := httptest.NewRequest("GET", "/dashboard", nil)
	req.Header.Set("Accept", "text/html")
	req.AddCookie(&http.Cookie{Name: sm.Name(), Value: "tampered-or-signed-with-an-old-key"})
	rec := httptest.NewRecorder()
	sm.RequireSession(protected()).ServeHTTP(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); !strings.HasPrefix(loc, "/login?return=") {
		t.Errorf("Location = %q", loc)
	}
	assertCookieCleared(t, rec, sm.Name())
}

func assertCookieCleared(t *testing.T, rec *httptest.ResponseRecorder, name string) {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == name {
			if c.MaxAge >= 0 {
				t.Errorf("cookie MaxAge = %d, want < 0", c.MaxAge)
			}
			return
		}
	}
	t.Errorf("expected %q cookie to be expired", name)
}

func TestClear_RemovesToken(t *testing.T) {
	sm := newTestSessionManager(t)
	token := signToken(t, jwt.MapClaims{"exp": fixedNow.Add(time.Hour).Unix()})
	req := requestWithSession(t, sm, token, "/logout")

	rec := httptest.NewRecorder()
	if err := sm.Clear(rec, req); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	assertCookieCleared(t, rec, sm.Name())
}

func TestFlashes_RoundTrip(t *testing.T) {
	sm := newTestSessionManager(t)
	rec := httptest.NewRecorder()
	sm.AddFlash(rec, httptest.NewRequest("POST", "/x", nil), "Student deleted")

	req := httptest.NewRequest("GET", "/x", nil)
	for _, c := range rec.Result().Cookies() {
		req.AddCookie(c)
	}
	got := sm.Flashes(httptest.NewRecorder(), req)
	if len(got) != 1 || got[0] != "Student deleted" {
		t.Errorf("flashes = %v", got)
	}
}

func TestCurrentUser(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	if _, ok := auth.CurrentUser(req); ok {
		t.Error("expected no user")
	}
	if auth.Token(req) != "" {
		t.Error("expected empty token")
	}

	req = auth.WithTestUser(req, &auth.SessionUser{Username: "admin", Token: "t"})
	u, ok := auth.CurrentUser(req)
	if !ok || u.DisplayName() != "admin" {
		t.Errorf("user = %+v, ok=%v", u, ok)
	}
	if auth.Token(req) != "t" {
		t.Errorf("token = %q", auth.Token(req))
	}
}

func TestPeek(t *testing.T) {
	sm := newTestSessionManager(t)
	if got := sm.Peek(httptest.NewRequest("GET", "/login", nil)); got != auth.Unauthenticated {
		t.Errorf("no cookie: %v", got)
	}
	valid := signToken(t, jwt.MapClaims{"exp": fixedNow.Add(time.Hour).Unix()})
	if got := sm.Peek(requestWithSession(t, sm, valid, "/login")); got != auth.Valid {
		t.Errorf("valid token: %v", got)
	}
	expired := signToken(t, jwt.MapClaims{"exp": fixedNow.Add(-time.Hour).Unix()})
	if got := sm.Peek(requestWithSession(t, sm, expired, "/login")); got != auth.Expired {
		t.Errorf("expired token: %v", got)
	}
}
