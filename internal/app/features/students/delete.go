// internal/app/features/students/delete.go
package students

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/dalemusser/schooladmin/internal/app/system/auth"
	"github.com/dalemusser/schooladmin/internal/app/system/navigation"
	"github.com/dalemusser/schooladmin/internal/app/system/timeouts"
	"github.com/dalemusser/schooladmin/internal/app/system/viewdata"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func studentID(r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	return id, err == nil && id > 0
}

// ServeDeleteConfirm asks before deleting. The student is looked up in the
// full list because the API has no single-record read.
func (h *Handler) ServeDeleteConfirm(w http.ResponseWriter, r *http.Request) {
	back := navigation.SafeBackURL(r, navigation.StudentsBackURL)
	id, ok := studentID(r)
	if !ok {
		h.ErrLog.LogBadRequest(w, r, "bad student id", nil, "Invalid student id.", back)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Fetch(), h.Log, "load student")
	defer cancel()

	students, err := h.API.WithToken(auth.Token(r)).Students(ctx)
	if err != nil {
		h.ErrLog.LogUpstreamError(w, r, "load students failed", err, back)
		return
	}

	data := deleteData{BaseVM: viewdata.NewBaseVM(r, "Delete Student", back), ID: id}
	data.BackURL = back
	found := false
	for _, s := range students {
		if s.ID == id {
			data.Name = strings.TrimSpace(s.Firstname + " " + s.Surname)
			found = true
			break
		}
	}
	if !found {
		if h.Sessions != nil {
			h.Sessions.AddFlash(w, r, "That student no longer exists.")
		}
		http.Redirect(w, r, back, http.StatusSeeOther)
		return
	}
	h.Render(w, r, "student_delete_confirm", data)
}

// HandleDelete removes the student upstream and returns to the list with
// its search, sort and page intact. The list refetches on that load.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	back := navigation.SafeBackURL(r, navigation.StudentsBackURL)
	id, ok := studentID(r)
	if !ok {
		h.ErrLog.LogBadRequest(w, r, "bad student id", nil, "Invalid student id.", back)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Submit(), h.Log, "delete student")
	defer cancel()

	if err := h.API.WithToken(auth.Token(r)).DeleteStudent(ctx, id); err != nil {
		h.ErrLog.LogUpstreamError(w, r, "delete student failed", err, back)
		return
	}

	h.Log.Info("student deleted", zap.Int("id", id))
	h.Audit.StudentDeleted(r.Context(), r, auth.Username(r), id)
	if h.Sessions != nil {
		h.Sessions.AddFlash(w, r, "Student deleted.")
	}
	http.Redirect(w, r, back, http.StatusSeeOther)
}
