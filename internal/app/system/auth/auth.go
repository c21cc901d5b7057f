package auth

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"
	"go.uber.org/zap"
)

/*─────────────────────────────────────────────────────────────────────────────*
| Session keys                                                                |
*─────────────────────────────────────────────────────────────────────────────*/

const (
	tokenKey    = "api_token"
	usernameKey = "username"
)

// minKeyLen is the shortest session key accepted without a warning.
const minKeyLen = 32

/*─────────────────────────────────────────────────────────────────────────────*
| Current-User helper                                                         |
*─────────────────────────────────────────────────────────────────────────────*/

// SessionUser is what the guard injects into r.Context() for a valid session.
type SessionUser struct {
	Username string // as typed at login
	Name     string // from token claims, falls back to Username
	Email    string
	Role     string
	Expires  time.Time
	Token    string
}

// DisplayName is the name shown in the page header.
func (u *SessionUser) DisplayName() string {
	if u.Name != "" {
		return u.Name
	}
	return u.Username
}

type ctxKey string

const currentUserKey ctxKey = "currentUser"

// CurrentUser returns the user and a "found?" flag.
func CurrentUser(r *http.Request) (*SessionUser, bool) {
	u, ok := r.Context().Value(currentUserKey).(*SessionUser)
	return u, ok
}

// Username returns the login name of the current user, or "".
func Username(r *http.Request) string {
	if u, ok := CurrentUser(r); ok {
		return u.Username
	}
	return ""
}

// Token returns the bearer token of the current user, or "".
func Token(r *http.Request) string {
	if u, ok := CurrentUser(r); ok {
		return u.Token
	}
	return ""
}

// WithTestUser injects u into r's context. Tests use it to skip the cookie
// round trip.
func WithTestUser(r *http.Request, u *SessionUser) *http.Request {
	return withUser(r, u)
}

/*─────────────────────────────────────────────────────────────────────────────*
| SessionManager                                                              |
*─────────────────────────────────────────────────────────────────────────────*/

// SessionManager owns the signed session cookie that holds the API token.
// Login issues it, logout clears it, and RequireSession clears it when the
// token stops being valid. Nothing else writes to it.
type SessionManager struct {
	store *sessions.CookieStore
	name  string
	log   *zap.Logger
	now   func() time.Time
}

// NewSessionManager builds a cookie store keyed by sessionKey.
//
// In production (secure=true) cookies are Secure + SameSite=None. In local
// dev over http://localhost use secure=false so cookies are accepted.
// An empty key is allowed only when secure is false; a random key is then
// generated, so sessions do not survive a restart.
func NewSessionManager(sessionKey, name, domain string, maxAge time.Duration, secure bool, logger *zap.Logger) (*SessionManager, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	key := []byte(sessionKey)
	switch {
	case len(key) == 0 && secure:
		return nil, fmt.Errorf("session key is empty; provide ≥%d random chars", minKeyLen)
	case len(key) == 0:
		key = securecookie.GenerateRandomKey(minKeyLen)
		logger.Warn("session key not set; using a random key for this process")
	case len(key) < minKeyLen:
		logger.Warn("session key is short; 32+ chars recommended", zap.Int("length", len(key)))
	}
	if name == "" {
		name = "schooladmin-session"
	}

	store := sessions.NewCookieStore(key)
	opts := &sessions.Options{
		Domain:   domain,
		Path:     "/",
		MaxAge:   int(maxAge.Seconds()),
		Secure:   secure,
		HttpOnly: true,
	}
	if secure {
		opts.SameSite = http.SameSiteNoneMode
	} else {
		opts.SameSite = http.SameSiteLaxMode
	}
	store.Options = opts

	logger.Info("session store initialized",
		zap.String("name", name),
		zap.Bool("secure", secure),
		zap.String("domain", domain))

	return &SessionManager{store: store, name: name, log: logger, now: time.Now}, nil
}

// Store exposes the cookie store (tests read cookies back through it).
func (sm *SessionManager) Store() *sessions.CookieStore { return sm.store }

// Name is the session cookie name.
func (sm *SessionManager) Name() string { return sm.name }

// SetClock replaces the time source used by RequireSession.
func (sm *SessionManager) SetClock(now func() time.Time) { sm.now = now }

// GetSession returns the session for r. A cookie that fails to decode yields
// a fresh session and the decode error.
func (sm *SessionManager) GetSession(r *http.Request) (*sessions.Session, error) {
	return sm.store.Get(r, sm.name)
}

// Issue stores token (and the login name) in the session.
func (sm *SessionManager) Issue(w http.ResponseWriter, r *http.Request, token, username string) error {
	sess, _ := sm.GetSession(r)
	sess.Values[tokenKey] = token
	sess.Values[usernameKey] = username
	sess.Options.MaxAge = sm.store.Options.MaxAge
	return sess.Save(r, w)
}

// Clear empties the session and expires its cookie.
func (sm *SessionManager) Clear(w http.ResponseWriter, r *http.Request) error {
	sess, _ := sm.GetSession(r)
	for k := range sess.Values {
		delete(sess.Values, k)
	}
	sess.Options.MaxAge = -1
	return sess.Save(r, w)
}

// Peek evaluates the session token without touching the session. Login uses
// it to skip the form for someone already signed in.
func (sm *SessionManager) Peek(r *http.Request) State {
	sess, _ := sm.GetSession(r)
	token, _ := sess.Values[tokenKey].(string)
	state, _ := Evaluate(token, sm.now())
	return state
}

// AddFlash queues a one-shot message for the next page render.
func (sm *SessionManager) AddFlash(w http.ResponseWriter, r *http.Request, msg string) {
	sess, _ := sm.GetSession(r)
	sess.AddFlash(msg)
	if err := sess.Save(r, w); err != nil {
		sm.log.Warn("save flash", zap.Error(err))
	}
}

// Flashes pops queued messages. It writes the session back, so call it
// before the response body is written.
func (sm *SessionManager) Flashes(w http.ResponseWriter, r *http.Request) []string {
	sess, _ := sm.GetSession(r)
	raw := sess.Flashes()
	if len(raw) == 0 {
		return nil
	}
	if err := sess.Save(r, w); err != nil {
		sm.log.Warn("save after flashes", zap.Error(err))
	}
	out := make([]string, 0, len(raw))
	for _, f := range raw {
		if s, ok := f.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

/*─────────────────────────────────────────────────────────────────────────────*
| Guard middleware                                                            |
*─────────────────────────────────────────────────────────────────────────────*/

// RequireSession lets the request through only when the session token is
// Valid. Otherwise the session (or an undecodable session cookie) is cleared
// and the caller is sent to login:
//   - HTMX: sends HX-Redirect to /login?return=...
//   - HTML: 303 redirect to /login?return=...
//   - API:  401 Unauthorized with a plain error body.
func (sm *SessionManager) RequireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, decodeErr := sm.GetSession(r)
		token, _ := sess.Values[tokenKey].(string)

		state, claims := Evaluate(token, sm.now())
		if state == Valid {
			username, _ := sess.Values[usernameKey].(string)
			u := &SessionUser{
				Username: username,
				Name:     claims.Name,
				Email:    claims.Email,
				Role:     claims.Role,
				Expires:  claims.Expires,
				Token:    token,
			}
			next.ServeHTTP(w, withUser(r, u))
			return
		}

		// An undecodable cookie comes back as a new session; expire it too.
		if !sess.IsNew || decodeErr != nil {
			if err := sm.Clear(w, r); err != nil {
				sm.log.Warn("clear session", zap.Error(err))
			}
			sm.log.Debug("session rejected", zap.Stringer("state", state), zap.Bool("undecodable", decodeErr != nil))
		}
		deny(w, r)
	})
}

func deny(w http.ResponseWriter, r *http.Request) {
	ret := url.QueryEscape(currentURI(r))

	// HTMX: full-page client redirect (no partial swap)
	if r.Header.Get("HX-Request") == "true" {
		w.Header().Set("HX-Redirect", "/login?return="+ret)
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	if wantsHTML(r) {
		http.Redirect(w, r, "/login?return="+ret, http.StatusSeeOther)
		return
	}

	http.Error(w, "unauthorized", http.StatusUnauthorized)
}

// helpers

func withUser(r *http.Request, u *SessionUser) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), currentUserKey, u))
}

func wantsHTML(r *http.Request) bool {
	// Very light heuristic: treat it as HTML if it's HTMX or Accepts text/html.
	if r.Header.Get("HX-Request") == "true" {
		return true
	}
	accept := r.Header.Get("Accept")
	return strings.Contains(accept, "text/html")
}

func currentURI(r *http.Request) string {
	u := *r.URL
	return u.RequestURI()
}
