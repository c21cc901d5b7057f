// internal/app/features/schools/add.go
package schools

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	uierrors "github.com/dalemusser/schooladmin/internal/app/features/errors"
	"github.com/dalemusser/schooladmin/internal/app/system/auth"
	"github.com/dalemusser/schooladmin/internal/app/system/formutil"
	"github.com/dalemusser/schooladmin/internal/app/system/htmlsanitize"
	"github.com/dalemusser/schooladmin/internal/app/system/inputval"
	"github.com/dalemusser/schooladmin/internal/app/system/loader"
	"github.com/dalemusser/schooladmin/internal/app/system/navigation"
	"github.com/dalemusser/schooladmin/internal/app/system/timeouts"
	"github.com/dalemusser/schooladmin/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/query"
	"go.uber.org/zap"
)

// formRefs are the collections the add form draws its selects from.
type formRefs struct {
	centers   []models.Center
	districts []models.District
	tehsils   []models.Tehsil
}

func (h *Handler) fetchFormRefs(ctx context.Context, r *http.Request) (formRefs, error) {
	api := h.API.WithToken(auth.Token(r))
	var fr formRefs
	err := loader.All(ctx,
		loader.Into(&fr.centers, api.Centers),
		loader.Into(&fr.districts, api.Districts),
		loader.Into(&fr.tehsils, api.Tehsils),
	)
	return fr, err
}

// fill sets the select options, marking the chosen ids. Tehsils are
// limited to the chosen district; with no district there are none.
func (d *addData) fill(fr formRefs, centerID, districtID, tehsilID int) {
	d.Centers = centerOptions(fr.centers, centerID)
	d.Districts = formutil.Options(fr.districts,
		func(x models.District) string { return strconv.Itoa(x.ID) },
		func(x models.District) string { return x.Name },
		formutil.IntValue(districtID))
	d.Tehsils = tehsilOptions(fr.tehsils, districtID, tehsilID)
}

func centerOptions(centers []models.Center, selected int) []formutil.Option {
	return formutil.Options(centers,
		func(c models.Center) string { return strconv.Itoa(c.ID) },
		func(c models.Center) string { return c.Name },
		formutil.IntValue(selected))
}

func tehsilOptions(all []models.Tehsil, districtID, selected int) []formutil.Option {
	return formutil.Options(models.TehsilsInDistrict(all, districtID),
		func(t models.Tehsil) string { return strconv.Itoa(t.ID) },
		func(t models.Tehsil) string { return t.Name },
		formutil.IntValue(selected))
}

// ServeAdd renders the "Add School" form.
func (h *Handler) ServeAdd(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Fetch(), h.Log, "load school form")
	defer cancel()

	fr, err := h.fetchFormRefs(ctx, r)
	if err != nil {
		h.ErrLog.LogUpstreamError(w, r, "load school form failed", err, listPath)
		return
	}

	var data addData
	formutil.SetBase(&data.Base, r, "Add School", listPath)
	data.fill(fr, 0, formutil.ParseID(query.Get(r, "districtId")), 0)
	h.Render(w, r, "school_add", data)
}

// ServeTehsilOptions returns the tehsil <option>s for the district in the
// query string. The form swaps them in when the district changes.
func (h *Handler) ServeTehsilOptions(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Fetch(), h.Log, "load tehsils")
	defer cancel()

	tehsils, err := h.API.WithToken(auth.Token(r)).Tehsils(ctx)
	if err != nil {
		h.Log.Warn("load tehsils failed", zap.Error(err))
		http.Error(w, "could not load tehsils", http.StatusBadGateway)
		return
	}
	h.Snippet(w, "school_tehsil_options", tehsilOptions(tehsils, formutil.ParseID(query.Get(r, "districtId")), 0))
}

// HandleAdd validates the form and posts the school to the API.
func (h *Handler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form submission.", listPath)
		return
	}

	data := addData{
		SchoolID:    strings.TrimSpace(r.FormValue("schoolId")),
		Name:        htmlsanitize.PlainText(r.FormValue("name")),
		Address:     htmlsanitize.PlainTextMultiline(r.FormValue("address")),
		PinCode:     strings.TrimSpace(r.FormValue("pinCode")),
		TeacherName: htmlsanitize.PlainText(r.FormValue("teacherName")),
		ContactNo1:  strings.TrimSpace(r.FormValue("contactNo1")),
		ContactNo2:  strings.TrimSpace(r.FormValue("contactNo2")),
		Email:       strings.TrimSpace(r.FormValue("email")),
	}
	password := r.FormValue("password")
	centerID := formutil.ParseID(r.FormValue("centerId"))
	districtID := formutil.ParseID(r.FormValue("districtId"))
	tehsilID := formutil.ParseID(r.FormValue("tehsilId"))

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Submit(), h.Log, "add school")
	defer cancel()

	refs := loader.Once(func(ctx context.Context) (formRefs, error) { return h.fetchFormRefs(ctx, r) })

	// The message is shown even when the select options cannot be loaded.
	renderWithError := func(msg string) {
		fr, err := refs(ctx)
		if err != nil {
			h.Log.Warn("load school form options failed", zap.Error(err))
		}
		formutil.SetBase(&data.Base, r, "Add School", listPath)
		data.fill(fr, centerID, districtID, tehsilID)
		data.SetError(msg)
		h.Render(w, r, "school_add", data)
	}

	missing := inputval.Missing(
		inputval.Field{Label: "School name", Value: data.Name},
		inputval.Field{Label: "Address", Value: data.Address},
		inputval.Field{Label: "Center", Value: formutil.IntValue(centerID)},
		inputval.Field{Label: "Teacher name", Value: data.TeacherName},
		inputval.Field{Label: "Contact no 1", Value: data.ContactNo1},
		inputval.Field{Label: "Email", Value: data.Email},
		inputval.Field{Label: "Password", Value: password},
	)
	if len(missing) > 0 {
		renderWithError(inputval.MissingMessage(missing))
		return
	}

	schoolID, ok := optionalInt(data.SchoolID)
	if !ok {
		renderWithError("School ID must be a number.")
		return
	}
	if data.PinCode != "" && !inputval.IsPinCode(data.PinCode) {
		renderWithError("PIN code must be 6 digits.")
		return
	}
	pin, _ := optionalInt(data.PinCode)

	fr, err := refs(ctx)
	if err != nil {
		h.ErrLog.LogUpstreamError(w, r, "load school form failed", err, listPath)
		return
	}
	if tehsilID != 0 && !inDistrict(fr.tehsils, districtID, tehsilID) {
		renderWithError("Choose a tehsil in the selected district.")
		return
	}

	school := models.School{
		ID:          0,
		SchoolID:    schoolID,
		CenterID:    centerID,
		Name:        data.Name,
		Address:     data.Address,
		DistrictID:  districtID,
		TehsilID:    tehsilID,
		State:       models.DefaultSchoolState,
		PinCode:     pin,
		TeacherName: data.TeacherName,
		ContactNo1:  models.ContactNumber(data.ContactNo1),
		ContactNo2:  models.ContactNumber(data.ContactNo2),
		Email:       data.Email,
		Password:    password,
		IsDeleted:   false,
		Created:     models.NewTimestamp(h.Now().UTC()),
	}

	if err := h.API.WithToken(auth.Token(r)).CreateSchool(ctx, school); err != nil {
		h.Log.Error("create school failed", zap.Error(err), zap.String("name", school.Name))
		_, msg := uierrors.UpstreamMessage(err)
		renderWithError(msg)
		return
	}

	h.Audit.SchoolCreated(r.Context(), r, auth.Username(r), school.Name)
	if h.Sessions != nil {
		h.Sessions.AddFlash(w, r, "School added successfully.")
	}
	http.Redirect(w, r, navigation.SafeBackURL(r, navigation.SchoolsBackURL), http.StatusSeeOther)
}

func inDistrict(all []models.Tehsil, districtID, tehsilID int) bool {
	for _, t := range models.TehsilsInDistrict(all, districtID) {
		if t.ID == tehsilID {
			return true
		}
	}
	return false
}

// optionalInt parses s as a non-negative integer; "" is 0.
func optionalInt(s string) (int, bool) {
	if s == "" {
		return 0, true
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}
