// internal/app/features/register/register.go
package register

import (
	"net/http"
	"slices"
	"strings"

	uierrors "github.com/dalemusser/schooladmin/internal/app/features/errors"
	"github.com/dalemusser/schooladmin/internal/app/system/formutil"
	"github.com/dalemusser/schooladmin/internal/app/system/htmlsanitize"
	"github.com/dalemusser/schooladmin/internal/app/system/inputval"
	"github.com/dalemusser/schooladmin/internal/app/system/timeouts"
	"github.com/dalemusser/schooladmin/internal/domain/models"
	"go.uber.org/zap"
)

type formData struct {
	formutil.Base
	FirstName  string
	MiddleName string
	LastName   string
	Email      string
	Username   string
	Roles      []formutil.Option
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, data formData, role, msg string) {
	formutil.SetBase(&data.Base, r, "Create Account", "/login")
	data.Roles = formutil.StringOptions(models.RoleOptions, role)
	if msg != "" {
		data.SetError(msg)
	}
	h.Render(w, r, "register", data)
}

// ServeRegister renders the empty form. New accounts default to the User role.
func (h *Handler) ServeRegister(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, formData{}, models.RoleOptions[0], "")
}

// HandleRegister checks the form and posts the account to the API. On
// success the user is sent to the login page.
func (h *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form submission.", "/register")
		return
	}

	data := formData{
		FirstName:  htmlsanitize.PlainText(r.FormValue("firstName")),
		MiddleName: htmlsanitize.PlainText(r.FormValue("middleName")),
		LastName:   htmlsanitize.PlainText(r.FormValue("lastName")),
		Email:      strings.TrimSpace(r.FormValue("email")),
		Username:   strings.TrimSpace(r.FormValue("username")),
	}
	password := r.FormValue("password")
	role := strings.TrimSpace(r.FormValue("role"))

	missing := inputval.Missing(
		inputval.Field{Label: "First name", Value: data.FirstName},
		inputval.Field{Label: "Middle name", Value: data.MiddleName},
		inputval.Field{Label: "Last name", Value: data.LastName},
		inputval.Field{Label: "Email", Value: data.Email},
		inputval.Field{Label: "Username", Value: data.Username},
		inputval.Field{Label: "Password", Value: password},
	)
	switch {
	case len(missing) > 0:
		h.render(w, r, data, role, inputval.MissingMessage(missing))
		return
	case !inputval.IsValidEmail(data.Email):
		h.render(w, r, data, role, "Enter a valid email address.")
		return
	case !slices.Contains(models.RoleOptions, role):
		h.render(w, r, data, models.RoleOptions[0], "Choose a role.")
		return
	}

	user := models.UserDetails{
		ID:          0,
		Username:    data.Username,
		Password:    password,
		FirstName:   data.FirstName,
		MiddleName:  data.MiddleName,
		LastName:    data.LastName,
		Email:       data.Email,
		Role:        role,
		CreatedDate: models.NewTimestamp(h.Now().UTC()),
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Submit(), h.Log, "register user")
	defer cancel()

	if err := h.API.RegisterUser(ctx, user); err != nil {
		h.Log.Error("register user failed", zap.Error(err), zap.String("username", user.Username))
		h.Audit.UserRegistered(r.Context(), r, user.Username, role, "upstream_error")
		_, msg := uierrors.UpstreamMessage(err)
		h.render(w, r, data, role, "Registration failed. "+msg)
		return
	}

	h.Audit.UserRegistered(r.Context(), r, user.Username, role, "")
	if h.Sessions != nil {
		h.Sessions.AddFlash(w, r, "User registered successfully. Sign in to continue.")
	}
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}
