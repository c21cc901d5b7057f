// internal/app/features/errors/errors.go
package errors

import (
	"net/http"

	"github.com/dalemusser/schooladmin/internal/app/system/viewdata"
)

// pageData is the basic view model for error pages.
type pageData struct {
	viewdata.BaseVM
	Message string
}

// Handler is the errors feature handler.
// No upstream needed; it just renders templates.
type Handler struct {
	Render viewdata.Renderer
}

// NewHandler constructs an errors Handler.
func NewHandler() *Handler {
	return &Handler{Render: viewdata.Render}
}

// NotFound renders a friendly "page not found" page.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	data := pageData{
		BaseVM:  viewdata.NewBaseVM(r, "Page not found", "/dashboard"),
		Message: "The page you asked for does not exist.",
	}
	w.WriteHeader(http.StatusNotFound)
	h.Render(w, r, "error_page", data)
}
