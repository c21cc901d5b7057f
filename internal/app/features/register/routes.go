// internal/app/features/register/routes.go
package register

import (
	"github.com/dalemusser/schooladmin/internal/app/system/limits"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the sign-up form at /register. It is open to anyone who can
// reach the console; the API decides whether the account is accepted.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ServeRegister)
	r.With(limits.Body(limits.MaxFormSize)).Post("/", h.HandleRegister)
	return r
}
