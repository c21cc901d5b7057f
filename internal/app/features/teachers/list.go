// internal/app/features/teachers/list.go
package teachers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/dalemusser/schooladmin/internal/app/system/apiclient"
	"github.com/dalemusser/schooladmin/internal/app/system/auth"
	"github.com/dalemusser/schooladmin/internal/app/system/csvutil"
	"github.com/dalemusser/schooladmin/internal/app/system/listview"
	"github.com/dalemusser/schooladmin/internal/app/system/loader"
	"github.com/dalemusser/schooladmin/internal/app/system/refindex"
	"github.com/dalemusser/schooladmin/internal/app/system/timeouts"
	"github.com/dalemusser/schooladmin/internal/app/system/viewdata"
	"github.com/dalemusser/schooladmin/internal/domain/models"
	"go.uber.org/zap"
)

const (
	listPath  = "/dashboard/masters/teacher/view"
	tableWrap = "teachers-table-wrap"
)

func (h *Handler) fetchAll(ctx context.Context, r *http.Request) ([]models.Teacher, refindex.Index, refindex.Index, error) {
	api := h.API.WithToken(auth.Token(r))

	var (
		teachers []models.Teacher
		centers  []models.Center
		schools  []models.School
	)
	err := loader.All(ctx,
		loader.Into(&teachers, api.Teachers),
		loader.Into(&centers, api.Centers),
		loader.Into(&schools, api.Schools),
	)
	if err != nil {
		return nil, nil, nil, err
	}
	centerNames := refindex.Build(centers, func(c models.Center) int { return c.ID }, func(c models.Center) string { return c.Name })
	schoolNames := refindex.Build(schools, func(s models.School) int { return s.ID }, func(s models.School) string { return s.Name })
	return teachers, centerNames, schoolNames, nil
}

func listSpec(centers, schools refindex.Index, pageSize int) listview.Spec[models.Teacher] {
	name := func(t models.Teacher) string { return t.Name }
	contact1 := func(t models.Teacher) string { return t.ContactNo1.String() }
	contact2 := func(t models.Teacher) string { return t.ContactNo2.String() }
	email := func(t models.Teacher) string { return t.Email }
	center := func(t models.Teacher) string { return centers.Resolve(t.CenterID) }
	school := func(t models.Teacher) string { return schools.Resolve(t.SchoolID) }

	return listview.Spec[models.Teacher]{
		PageSize:    pageSize,
		DefaultSort: listview.Sort{Key: "name", Dir: listview.Asc},
		SortFields: []listview.SortField[models.Teacher]{
			listview.ByString("name", name),
			listview.ByString("contactNo1", contact1),
			listview.ByString("contactNo2", contact2),
			listview.ByString("email", email),
			listview.ByNumber("centerId", func(t models.Teacher) int { return t.CenterID }),
			listview.ByNumber("schoolId", func(t models.Teacher) int { return t.SchoolID }),
		},
		Search: func(t models.Teacher) []string { return []string{t.Name, t.Email} },
		Columns: []listview.Column[models.Teacher]{
			{Header: "Name", SortKey: "name", Value: name},
			{Header: "Contact No 1", SortKey: "contactNo1", Value: contact1},
			{Header: "Contact No 2", SortKey: "contactNo2", Value: contact2},
			{Header: "Email", SortKey: "email", Value: email},
			{Header: "Center", SortKey: "centerId", Value: center},
			{Header: "School", SortKey: "schoolId", Value: school},
		},
		Export: []listview.Column[models.Teacher]{
			{Header: "ID", Value: func(t models.Teacher) string { return strconv.Itoa(t.ID) }},
			{Header: "Name", Value: name},
			{Header: "Contact No 1", Value: contact1},
			{Header: "Contact No 2", Value: contact2},
			{Header: "Email", Value: email},
			{Header: "Center", Value: center},
			{Header: "School", Value: school},
		},
	}
}

// ServeList renders the teachers table.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Fetch(), h.Log, "load teachers")
	defer cancel()

	teachers, centers, schools, err := h.fetchAll(ctx, r)
	if err != nil {
		h.ErrLog.LogUpstreamError(w, r, "load teachers failed", err, "/dashboard")
		return
	}

	spec := listSpec(centers, schools, h.PageSize)
	res := spec.Run(teachers, listview.ParseState(r))

	data := listData{
		BaseVM: viewdata.NewBaseVM(r, "Teachers", "/dashboard"),
		List:   spec.View(res, listPath),
	}
	data.List.Target = tableWrap

	if viewdata.IsTableSwap(r, tableWrap) {
		h.Snippet(w, "teachers_table", data)
		return
	}
	if h.Sessions != nil {
		data.Flashes = h.Sessions.Flashes(w, r)
	}
	h.Render(w, r, "teachers_list", data)
}

// ServeExport downloads the filtered teachers as teachers.csv.
func (h *Handler) ServeExport(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Fetch(), h.Log, "export teachers")
	defer cancel()

	teachers, centers, schools, err := h.fetchAll(ctx, r)
	if err != nil {
		h.ErrLog.LogUpstreamError(w, r, "export teachers failed", err, listPath)
		return
	}

	spec := listSpec(centers, schools, h.PageSize)
	res := spec.Run(teachers, listview.ParseState(r))

	cw, err := csvutil.NewDownload(w, "teachers.csv")
	if err == nil {
		err = listview.WriteCSV(cw, res.Filtered, spec.ExportColumns())
	}
	if err != nil {
		h.Log.Warn("write teachers csv", zap.Error(err))
		return
	}
	h.Audit.Exported(r.Context(), r, auth.Username(r), apiclient.ResourceTeachers, len(res.Filtered))
}
