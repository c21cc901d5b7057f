// internal/app/features/logout/handler.go
package logout

import (
	"net/http"

	"github.com/dalemusser/schooladmin/internal/app/system/auditlog"
	"github.com/dalemusser/schooladmin/internal/app/system/auth"
	"go.uber.org/zap"
)

type Handler struct {
	Log        *zap.Logger
	SessionMgr *auth.SessionManager
	Audit      *auditlog.Logger
}

func NewHandler(sessionMgr *auth.SessionManager, aud *auditlog.Logger, logger *zap.Logger) *Handler {
	return &Handler{
		Log:        logger,
		SessionMgr: sessionMgr,
		Audit:      aud,
	}
}

// ServeLogout handles GET /logout. The token is dropped from the session and
// the cookie expired; the API is not told.
func (h *Handler) ServeLogout(w http.ResponseWriter, r *http.Request) {
	username := auth.Username(r)

	if err := h.SessionMgr.Clear(w, r); err != nil {
		h.Log.Error("logout: save session", zap.Error(err))
	}
	h.Audit.Logout(r.Context(), r, username)

	// HTMX: full-page navigation rather than a swap.
	if r.Header.Get("HX-Request") != "" {
		w.Header().Set("HX-Redirect", "/")
		w.WriteHeader(http.StatusOK)
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}
