// internal/app/features/login/routes.go
package login

import (
	"github.com/dalemusser/schooladmin/internal/app/system/limits"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the sign-in form at /login.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ServeLogin)
	r.With(limits.Body(limits.MaxFormSize)).Post("/", h.HandleLoginPost)
	return r
}
