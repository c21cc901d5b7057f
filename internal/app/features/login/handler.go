// internal/app/features/login/handler.go
package login

import (
	"errors"
	"net/http"
	"strings"

	uierrors "github.com/dalemusser/schooladmin/internal/app/features/errors"
	"github.com/dalemusser/schooladmin/internal/app/system/apiclient"
	"github.com/dalemusser/schooladmin/internal/app/system/auditlog"
	"github.com/dalemusser/schooladmin/internal/app/system/auth"
	"github.com/dalemusser/schooladmin/internal/app/system/navigation"
	"github.com/dalemusser/schooladmin/internal/app/system/ratelimit"
	"github.com/dalemusser/schooladmin/internal/app/system/timeouts"
	"github.com/dalemusser/schooladmin/internal/app/system/viewdata"
	"github.com/dalemusser/waffle/pantry/query"
	"go.uber.org/zap"
)

const badCredentials = "Invalid username or password."

// Handler serves the sign-in form and exchanges credentials for an API token.
type Handler struct {
	API      *apiclient.Client
	Sessions *auth.SessionManager
	ErrLog   *uierrors.ErrorLogger
	Audit    *auditlog.Logger
	Limiter  *ratelimit.LoginLimiter
	Log      *zap.Logger

	Render viewdata.Renderer
}

// NewHandler constructs a login Handler. limiter may be nil.
func NewHandler(api *apiclient.Client, sm *auth.SessionManager, errLog *uierrors.ErrorLogger, aud *auditlog.Logger, limiter *ratelimit.LoginLimiter, logger *zap.Logger) *Handler {
	return &Handler{
		API:      api,
		Sessions: sm,
		ErrLog:   errLog,
		Audit:    aud,
		Limiter:  limiter,
		Log:      logger,
		Render:   viewdata.Render,
	}
}

type formData struct {
	viewdata.BaseVM
	Error     string
	Username  string
	ReturnURL string
}

func (h *Handler) form(w http.ResponseWriter, r *http.Request, username, returnURL, msg string) formData {
	data := formData{
		BaseVM:    viewdata.NewBaseVM(r, "Login", "/"),
		Error:     msg,
		Username:  username,
		ReturnURL: returnURL,
	}
	if h.Sessions != nil {
		data.Flashes = h.Sessions.Flashes(w, r)
	}
	return data
}

// ServeLogin renders the sign-in form. Someone with a valid session goes
// straight on to where they were headed.
func (h *Handler) ServeLogin(w http.ResponseWriter, r *http.Request) {
	if h.Sessions != nil && h.Sessions.Peek(r) == auth.Valid {
		http.Redirect(w, r, navigation.SafeBackURL(r, navigation.LoginReturn), http.StatusSeeOther)
		return
	}
	ret := query.Get(r, "return")
	h.Render(w, r, "login", h.form(w, r, "", ret, ""))
}

// HandleLoginPost posts the credentials to the API and stores the token it
// returns in the session.
func (h *Handler) HandleLoginPost(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse login form", err, "The form could not be read.", "/login")
		return
	}
	username := strings.TrimSpace(r.PostFormValue("username"))
	password := r.PostFormValue("password")
	ret := strings.TrimSpace(r.PostFormValue("return"))

	fail := func(status int, msg string) {
		data := h.form(w, r, username, ret, msg)
		w.WriteHeader(status)
		h.Render(w, r, "login", data)
	}

	if username == "" || password == "" {
		fail(http.StatusOK, "Enter your username and password.")
		return
	}

	if h.Limiter != nil {
		if ok, reason := h.Limiter.Check(r, username); !ok {
			h.Log.Warn("login throttled",
				zap.String("username", username),
				zap.String("ip", ratelimit.ClientIP(r)))
			h.Audit.LoginFailed(r.Context(), r, username, "rate_limited")
			fail(http.StatusTooManyRequests, reason)
			return
		}
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Submit(), h.Log, "login")
	defer cancel()

	token, err := h.API.Login(ctx, username, password)
	if err != nil {
		h.Audit.LoginFailed(r.Context(), r, username, failReason(err))
		if rejectedCredentials(err) {
			fail(http.StatusOK, badCredentials)
			return
		}
		h.Log.Error("login call failed", zap.String("username", username), zap.Error(err))
		_, msg := uierrors.UpstreamMessage(err)
		fail(http.StatusBadGateway, msg)
		return
	}

	if err := h.Sessions.Issue(w, r, token, username); err != nil {
		h.ErrLog.LogServerError(w, r, "issue session", err, "Could not start your session.", "/login")
		return
	}
	if h.Limiter != nil {
		h.Limiter.Succeeded(username)
	}
	h.Audit.LoginSuccess(r.Context(), r, username)
	h.Log.Info("user signed in", zap.String("username", username))

	http.Redirect(w, r, navigation.SafeBackURL(r, navigation.LoginReturn), http.StatusSeeOther)
}

// rejectedCredentials is true for answers that mean "wrong username or
// password" rather than "the server is broken".
func rejectedCredentials(err error) bool {
	if errors.Is(err, apiclient.ErrNoToken) {
		return true
	}
	switch apiclient.StatusCode(err) {
	case http.StatusBadRequest, http.StatusUnauthorized, http.StatusForbidden, http.StatusNotFound:
		return true
	}
	return false
}

func failReason(err error) string {
	switch {
	case rejectedCredentials(err):
		return "bad_credentials"
	case apiclient.IsNetwork(err):
		return "upstream_unreachable"
	default:
		return "upstream_error"
	}
}
