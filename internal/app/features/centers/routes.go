// internal/app/features/centers/routes.go
package centers

import (
	"github.com/dalemusser/schooladmin/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the center pages under /dashboard/masters/center.
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()
	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSession)
		pr.Get("/view", h.ServeList)
		pr.Get("/view/export.csv", h.ServeExport)
	})
	return r
}
