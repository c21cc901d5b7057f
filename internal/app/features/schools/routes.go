// internal/app/features/schools/routes.go
package schools

import (
	"github.com/dalemusser/schooladmin/internal/app/system/auth"
	"github.com/dalemusser/schooladmin/internal/app/system/limits"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the school pages under /dashboard/masters/school.
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()
	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSession)
		pr.Get("/view", h.ServeList)
		pr.Get("/view/export.csv", h.ServeExport)
		pr.Get("/add", h.ServeAdd)
		pr.Get("/add/tehsils", h.ServeTehsilOptions)
		pr.With(limits.Body(limits.MaxFormSize)).Post("/add", h.HandleAdd)
	})
	return r
}
