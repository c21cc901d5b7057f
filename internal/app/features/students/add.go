// internal/app/features/students/add.go
package students

import (
	"context"
	"net/http"
	"slices"
	"strconv"
	"strings"
	"time"

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

const birthDateLayout = "2006-01-02"

type formRefs struct {
	centers []models.Center
	schools []models.School
}

func (h *Handler) fetchFormRefs(ctx context.Context, r *http.Request) (formRefs, error) {
	api := h.API.WithToken(auth.Token(r))
	var fr formRefs
	err := loader.All(ctx,
		loader.Into(&fr.centers, api.Centers),
		loader.Into(&fr.schools, api.Schools),
	)
	return fr, err
}

func schoolOptions(all []models.School, centerID, selected int) []formutil.Option {
	return formutil.Options(models.SchoolsInCenter(all, centerID),
		func(s models.School) string { return strconv.Itoa(s.ID) },
		func(s models.School) string { return s.Name },
		formutil.IntValue(selected))
}

func (d *addData) fill(fr formRefs, gender, class, medium string, centerID, schoolID int) {
	d.Genders = formutil.StringOptions(models.GenderOptions, gender)
	d.Classes = formutil.StringOptions(models.ClassOptions, class)
	d.Mediums = formutil.StringOptions(models.MediumOptions, medium)
	d.Centers = formutil.Options(fr.centers,
		func(c models.Center) string { return strconv.Itoa(c.ID) },
		func(c models.Center) string { return c.Name },
		formutil.IntValue(centerID))
	d.Schools = schoolOptions(fr.schools, centerID, schoolID)
}

// ServeAdd renders the student registration form.
func (h *Handler) ServeAdd(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Fetch(), h.Log, "load student form")
	defer cancel()

	fr, err := h.fetchFormRefs(ctx, r)
	if err != nil {
		h.ErrLog.LogUpstreamError(w, r, "load student form failed", err, listPath)
		return
	}

	var data addData
	formutil.SetBase(&data.Base, r, "Student Registration", listPath)
	data.fill(fr, "", "", "", formutil.ParseID(query.Get(r, "centerId")), 0)
	h.Render(w, r, "student_add", data)
}

// ServeSchoolOptions returns the school <option>s for the chosen center.
func (h *Handler) ServeSchoolOptions(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Fetch(), h.Log, "load schools")
	defer cancel()

	schools, err := h.API.WithToken(auth.Token(r)).Schools(ctx)
	if err != nil {
		h.Log.Warn("load schools failed", zap.Error(err))
		http.Error(w, "could not load schools", http.StatusBadGateway)
		return
	}
	h.Snippet(w, "student_school_options", schoolOptions(schools, formutil.ParseID(query.Get(r, "centerId")), 0))
}

// HandleAdd validates the registration form and posts the student.
func (h *Handler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form submission.", listPath)
		return
	}

	data := addData{
		Surname:    htmlsanitize.PlainText(r.FormValue("surname")),
		Firstname:  htmlsanitize.PlainText(r.FormValue("firstname")),
		Lastname:   htmlsanitize.PlainText(r.FormValue("lastname")),
		MotherName: htmlsanitize.PlainText(r.FormValue("motherName")),
		BirthDate:  strings.TrimSpace(r.FormValue("birthDate")),
		Mobile:     strings.TrimSpace(r.FormValue("mobile")),
	}
	gender := strings.TrimSpace(r.FormValue("gender"))
	class := strings.TrimSpace(r.FormValue("className"))
	medium := strings.TrimSpace(r.FormValue("medium"))
	centerID := formutil.ParseID(r.FormValue("centerId"))
	schoolID := formutil.ParseID(r.FormValue("schoolId"))

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Submit(), h.Log, "add student")
	defer cancel()

	refs := loader.Once(func(ctx context.Context) (formRefs, error) { return h.fetchFormRefs(ctx, r) })

	renderWithError := func(msg string) {
		fr, err := refs(ctx)
		if err != nil {
			h.Log.Warn("load student form options failed", zap.Error(err))
		}
		formutil.SetBase(&data.Base, r, "Student Registration", listPath)
		data.fill(fr, gender, class, medium, centerID, schoolID)
		data.SetError(msg)
		h.Render(w, r, "student_add", data)
	}

	missing := inputval.Missing(
		inputval.Field{Label: "Surname", Value: data.Surname},
		inputval.Field{Label: "First name", Value: data.Firstname},
		inputval.Field{Label: "Birth date", Value: data.BirthDate},
		inputval.Field{Label: "Gender", Value: gender},
		inputval.Field{Label: "Mobile", Value: data.Mobile},
		inputval.Field{Label: "Center", Value: formutil.IntValue(centerID)},
		inputval.Field{Label: "School", Value: formutil.IntValue(schoolID)},
		inputval.Field{Label: "Class", Value: class},
		inputval.Field{Label: "Medium", Value: medium},
	)
	if len(missing) > 0 {
		renderWithError(inputval.MissingMessage(missing))
		return
	}

	born, err := time.Parse(birthDateLayout, data.BirthDate)
	if err != nil || born.After(h.Now()) {
		renderWithError("Birth date must be a valid date that is not in the future.")
		return
	}
	if !inputval.IsContactNumber(data.Mobile) {
		renderWithError("Mobile number must be 10 or 11 digits.")
		return
	}
	if !slices.Contains(models.GenderOptions, gender) || !slices.Contains(models.ClassOptions, class) || !slices.Contains(models.MediumOptions, medium) {
		renderWithError("Choose gender, class and medium from the lists.")
		return
	}

	fr, err := refs(ctx)
	if err != nil {
		h.ErrLog.LogUpstreamError(w, r, "load student form failed", err, listPath)
		return
	}
	if !schoolInCenter(fr.schools, centerID, schoolID) {
		renderWithError("The selected school does not belong to the selected center.")
		return
	}

	student := models.Student{
		ID:         0,
		Surname:    data.Surname,
		Firstname:  data.Firstname,
		Lastname:   data.Lastname,
		MotherName: data.MotherName,
		BirthDate:  data.BirthDate,
		Gender:     gender,
		Mobile:     models.ContactNumber(data.Mobile),
		Medium:     medium,
		ClassName:  class,
		SchoolID:   schoolID,
		CenterID:   centerID,
		Created:    models.NewTimestamp(h.Now().UTC()),
	}

	if err := h.API.WithToken(auth.Token(r)).CreateStudent(ctx, student); err != nil {
		h.Log.Error("create student failed", zap.Error(err))
		_, msg := uierrors.UpstreamMessage(err)
		renderWithError(msg)
		return
	}

	h.Audit.StudentCreated(r.Context(), r, auth.Username(r), student.Firstname+" "+student.Surname)
	if h.Sessions != nil {
		h.Sessions.AddFlash(w, r, "Student registered.")
	}
	http.Redirect(w, r, navigation.SafeBackURL(r, navigation.StudentsBackURL), http.StatusSeeOther)
}

func schoolInCenter(all []models.School, centerID, schoolID int) bool {
	for _, s := range models.SchoolsInCenter(all, centerID) {
		if s.ID == schoolID {
			return true
		}
	}
	return false
}
