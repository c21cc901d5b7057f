// internal/app/features/teachers/routes.go
package teachers

import (
	"github.com/dalemusser/schooladmin/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the teacher pages under /dashboard/masters/teacher.
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()
	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSession)
		pr.Get("/view", h.ServeList)
		pr.Get("/view/export.csv", h.ServeExport)
		pr.Get("/add", h.ServeAdd)
		pr.Get("/add/schools", h.ServeSchoolOptions)
		pr.Post("/add", h.HandleAdd)
	})
	return r
}
