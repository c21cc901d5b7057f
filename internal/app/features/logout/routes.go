// internal/app/features/logout/routes.go
package logout

import (
	"github.com/dalemusser/schooladmin/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		// An expired session is already cleared by the guard.
		pr.Use(sm.RequireSession)
		pr.Get("/", h.ServeLogout)
	})

	return r
}
