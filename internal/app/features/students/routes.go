// internal/app/features/students/routes.go
package students

import (
	"github.com/dalemusser/schooladmin/internal/app/system/auth"
	"github.com/dalemusser/schooladmin/internal/app/system/limits"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the student pages under /dashboard/masters/student.
// There is no edit route; records are created and deleted only.
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()
	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSession)
		pr.Get("/view", h.ServeList)
		pr.Get("/view/export.csv", h.ServeExport)
		pr.Get("/add", h.ServeAdd)
		pr.Get("/add/schools", h.ServeSchoolOptions)
		pr.With(limits.Body(limits.MaxFormSize)).Post("/add", h.HandleAdd)
		pr.Get("/{id}/delete", h.ServeDeleteConfirm)
		pr.With(limits.Body(limits.MaxFormSize)).Post("/{id}/delete", h.HandleDelete)
	})
	return r
}
