// internal/app/features/auditlog/routes.go
package auditlog

import (
	"github.com/dalemusser/schooladmin/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the audit log under the path where this router is mounted
// (/dashboard/audit from bootstrap). It is only mounted when an audit
// store is configured.
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSession)
		pr.Get("/", h.ServeList)
	})

	return r
}
