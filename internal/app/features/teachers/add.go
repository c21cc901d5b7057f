// internal/app/features/teachers/add.go
package teachers

import (
	"context"
	"fmt"
	"html/template"
	"net/http"
	"strconv"
	"strings"

	uierrors "github.com/dalemusser/schooladmin/internal/app/features/errors"
	"github.com/dalemusser/schooladmin/internal/app/system/auth"
	"github.com/dalemusser/schooladmin/internal/app/system/csvutil"
	"github.com/dalemusser/schooladmin/internal/app/system/formutil"
	"github.com/dalemusser/schooladmin/internal/app/system/htmlsanitize"
	"github.com/dalemusser/schooladmin/internal/app/system/limits"
	"github.com/dalemusser/schooladmin/internal/app/system/loader"
	"github.com/dalemusser/schooladmin/internal/app/system/navigation"
	"github.com/dalemusser/schooladmin/internal/app/system/timeouts"
	"github.com/dalemusser/schooladmin/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/query"
	"go.uber.org/zap"
)

// Form actions other than submit. Removing a row posts "remove:<index>".
const (
	actionAddRow = "add_row"
	actionUpload = "upload"
	removePrefix = "remove:"
)

// maxCSVErrors is how many bad upload lines the banner lists.
const maxCSVErrors = 10

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

func (d *addData) fill(fr formRefs, centerID, schoolID int) {
	d.Centers = formutil.Options(fr.centers,
		func(c models.Center) string { return strconv.Itoa(c.ID) },
		func(c models.Center) string { return c.Name },
		formutil.IntValue(centerID))
	d.Schools = schoolOptions(fr.schools, centerID, schoolID)
	for i := range d.Rows {
		d.Rows[i].Index = i
	}
}

// ServeAdd renders the bulk form with one empty teacher row.
func (h *Handler) ServeAdd(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Fetch(), h.Log, "load teacher form")
	defer cancel()

	fr, err := h.fetchFormRefs(ctx, r)
	if err != nil {
		h.ErrLog.LogUpstreamError(w, r, "load teacher form failed", err, listPath)
		return
	}

	data := addData{Rows: []teacherRow{{}}}
	formutil.SetBase(&data.Base, r, "Add Teachers", listPath)
	data.fill(fr, formutil.ParseID(query.Get(r, "centerId")), 0)
	h.Render(w, r, "teacher_add", data)
}

// ServeSchoolOptions returns the school <option>s for the center in the
// query string.
func (h *Handler) ServeSchoolOptions(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Fetch(), h.Log, "load schools")
	defer cancel()

	schools, err := h.API.WithToken(auth.Token(r)).Schools(ctx)
	if err != nil {
		h.Log.Warn("load schools failed", zap.Error(err))
		http.Error(w, "could not load schools", http.StatusBadGateway)
		return
	}
	h.Snippet(w, "teacher_school_options", schoolOptions(schools, formutil.ParseID(query.Get(r, "centerId")), 0))
}

// HandleAdd handles every button of the bulk form: add a row, remove a
// row, load rows from a CSV file, or submit all rows.
func (h *Handler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	if err := parseForm(w, r); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form submission.", listPath)
		return
	}

	centerID := formutil.ParseID(r.FormValue("centerId"))
	schoolID := formutil.ParseID(r.FormValue("schoolId"))
	rows := rowsFromForm(r)
	action := r.FormValue("action")

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Submit(), h.Log, "bulk teacher create")
	defer cancel()

	refs := loader.Once(func(ctx context.Context) (formRefs, error) { return h.fetchFormRefs(ctx, r) })

	data := addData{Rows: rows}
	render := func() {
		fr, err := refs(ctx)
		if err != nil {
			h.Log.Warn("load teacher form options failed", zap.Error(err))
		}
		formutil.SetBase(&data.Base, r, "Add Teachers", listPath)
		data.fill(fr, centerID, schoolID)
		h.Render(w, r, "teacher_add", data)
	}

	switch {
	case action == actionAddRow:
		if last := data.Rows[len(data.Rows)-1]; last.Name == "" || last.ContactNo1 == "" {
			data.SetError("Fill in the name and contact number before adding a new row.")
		} else {
			data.Rows = append(data.Rows, teacherRow{})
		}
		render()
		return

	case strings.HasPrefix(action, removePrefix):
		i, err := strconv.Atoi(strings.TrimPrefix(action, removePrefix))
		if err == nil && i >= 0 && i < len(data.Rows) {
			data.Rows = append(data.Rows[:i], data.Rows[i+1:]...)
		}
		if len(data.Rows) == 0 {
			data.Rows = []teacherRow{{}}
		}
		render()
		return

	case action == actionUpload:
		uploaded, problem := uploadedRows(r)
		if problem != "" {
			data.SetErrorHTML(problem)
		} else {
			data.Rows = append(nonBlank(data.Rows), uploaded...)
			if len(data.Rows) == 0 {
				data.Rows = []teacherRow{{}}
			}
		}
		render()
		return
	}

	// Submit.
	if centerID == 0 || schoolID == 0 {
		data.SetError("Please select a center and a school.")
		render()
		return
	}
	// Untouched rows are ignored rather than reported.
	if data.Rows = nonBlank(data.Rows); len(data.Rows) == 0 {
		data.Rows = []teacherRow{{}}
		data.SetError("Add at least one teacher.")
		render()
		return
	}
	if len(data.Rows) > csvutil.MaxRows {
		data.SetError(fmt.Sprintf("At most %d teachers can be added at once.", csvutil.MaxRows))
		render()
		return
	}
	if bad := checkRows(data.Rows); bad > 0 {
		data.SetError(fmt.Sprintf("Fix the %d highlighted teacher row(s).", bad))
		render()
		return
	}

	fr, err := refs(ctx)
	if err != nil {
		h.ErrLog.LogUpstreamError(w, r, "load teacher form failed", err, listPath)
		return
	}
	if !schoolInCenter(fr.schools, centerID, schoolID) {
		data.SetError("The selected school does not belong to the selected center.")
		render()
		return
	}

	payload := make([]models.Teacher, len(data.Rows))
	for i, t := range data.Rows {
		payload[i] = models.Teacher{
			ID:         0,
			Name:       t.Name,
			ContactNo1: models.ContactNumber(t.ContactNo1),
			ContactNo2: models.ContactNumber(t.ContactNo2),
			Email:      t.Email,
			CenterID:   centerID,
			SchoolID:   schoolID,
		}
	}

	if err := h.API.WithToken(auth.Token(r)).BulkCreateTeachers(ctx, payload); err != nil {
		h.Log.Error("bulk create teachers failed", zap.Error(err), zap.Int("count", len(payload)))
		_, msg := uierrors.UpstreamMessage(err)
		data.SetError(msg)
		render()
		return
	}

	h.Audit.TeachersCreated(r.Context(), r, auth.Username(r), schoolID, len(payload))
	if h.Sessions != nil {
		h.Sessions.AddFlash(w, r, fmt.Sprintf("%d teacher(s) added successfully.", len(payload)))
	}
	http.Redirect(w, r, navigation.SafeBackURL(r, navigation.TeachersBackURL), http.StatusSeeOther)
}

// parseForm accepts both the plain form and the multipart upload form.
func parseForm(w http.ResponseWriter, r *http.Request) error {
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		r.Body = http.MaxBytesReader(w, r.Body, csvutil.MaxUploadSize+64<<10)
		return r.ParseMultipartForm(csvutil.MaxUploadSize)
	}
	r.Body = http.MaxBytesReader(w, r.Body, limits.MaxBulkFormSize)
	return r.ParseForm()
}

// rowsFromForm zips the parallel name/contactNo1/contactNo2/email lists.
// The form always has at least one row.
func rowsFromForm(r *http.Request) []teacherRow {
	names := r.Form["name"]
	c1 := r.Form["contactNo1"]
	c2 := r.Form["contactNo2"]
	emails := r.Form["email"]

	n := max(len(names), len(c1), len(c2), len(emails))
	rows := make([]teacherRow, 0, max(n, 1))
	for i := 0; i < n; i++ {
		rows = append(rows, teacherRow{
			Name:       htmlsanitize.PlainText(at(names, i)),
			ContactNo1: strings.TrimSpace(at(c1, i)),
			ContactNo2: strings.TrimSpace(at(c2, i)),
			Email:      strings.TrimSpace(at(emails, i)),
		})
	}
	if len(rows) == 0 {
		rows = append(rows, teacherRow{})
	}
	return rows
}

func at(vals []string, i int) string {
	if i < len(vals) {
		return vals[i]
	}
	return ""
}

func nonBlank(rows []teacherRow) []teacherRow {
	out := make([]teacherRow, 0, len(rows))
	for _, t := range rows {
		if !t.blank() {
			out = append(out, t)
		}
	}
	return out
}

// checkRows sets Error on every invalid row and returns how many there are.
func checkRows(rows []teacherRow) int {
	bad := 0
	for i := range rows {
		t := &rows[i]
		t.Error = csvutil.CheckTeacherRow(csvutil.TeacherCSVRow{
			Name:       t.Name,
			ContactNo1: t.ContactNo1,
			ContactNo2: t.ContactNo2,
			Email:      t.Email,
		})
		if t.Error != "" {
			bad++
		}
	}
	return bad
}

func schoolInCenter(all []models.School, centerID, schoolID int) bool {
	for _, s := range models.SchoolsInCenter(all, centerID) {
		if s.ID == schoolID {
			return true
		}
	}
	return false
}

// uploadedRows reads the "csv" file field. When the file is missing,
// unreadable, or has bad lines, problem explains why and no rows are
// returned.
func uploadedRows(r *http.Request) (rows []teacherRow, problem template.HTML) {
	file, _, err := r.FormFile("csv")
	if err != nil {
		return nil, "Choose a CSV file to upload."
	}
	defer file.Close()

	res, err := csvutil.ParseTeacherCSV(file, csvutil.DefaultParseOptions())
	if err != nil {
		return nil, template.HTML(template.HTMLEscapeString("Could not read the CSV file: " + err.Error()))
	}
	if res.HasErrors() {
		return nil, res.FormatErrorsHTML(maxCSVErrors)
	}
	rows = make([]teacherRow, len(res.Rows))
	for i, c := range res.Rows {
		rows[i] = teacherRow{Name: c.Name, ContactNo1: c.ContactNo1, ContactNo2: c.ContactNo2, Email: c.Email}
	}
	return rows, ""
}
