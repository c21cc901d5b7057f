// internal/app/features/students/list.go
package students

import (
	"net/http"
	"strconv"
	"time"

	"github.com/dalemusser/schooladmin/internal/app/system/apiclient"
	"github.com/dalemusser/schooladmin/internal/app/system/auth"
	"github.com/dalemusser/schooladmin/internal/app/system/csvutil"
	"github.com/dalemusser/schooladmin/internal/app/system/listview"
	"github.com/dalemusser/schooladmin/internal/app/system/timeouts"
	"github.com/dalemusser/schooladmin/internal/app/system/viewdata"
	"github.com/dalemusser/schooladmin/internal/domain/models"
	"go.uber.org/zap"
)

const (
	listPath  = "/dashboard/masters/student/view"
	tableWrap = "students-table-wrap"
)

// listSpec describes the students table. School and center come embedded
// on each record, so they sort by the embedded name.
func listSpec(loc *time.Location, pageSize int) listview.Spec[models.Student] {
	surname := func(s models.Student) string { return s.Surname }
	firstname := func(s models.Student) string { return s.Firstname }
	lastname := func(s models.Student) string { return s.Lastname }
	mother := func(s models.Student) string { return s.MotherName }
	class := func(s models.Student) string { return s.ClassName }
	medium := func(s models.Student) string { return s.Medium }
	school := models.Student.SchoolName
	center := models.Student.CenterName
	created := func(s models.Student) string { return s.Created.Display(loc) }

	return listview.Spec[models.Student]{
		PageSize:    pageSize,
		DefaultSort: listview.Sort{Key: "created", Dir: listview.Desc},
		SortFields: []listview.SortField[models.Student]{
			listview.ByString("surname", surname),
			listview.ByString("firstname", firstname),
			listview.ByString("lastname", lastname),
			listview.ByString("motherName", mother),
			listview.ByString("className", class),
			listview.ByString("medium", medium),
			listview.ByString("school.name", school),
			listview.ByString("center.name", center),
			listview.ByTime("created", func(s models.Student) time.Time { return s.Created.Time }),
		},
		Search: func(s models.Student) []string {
			return []string{s.Firstname, s.Surname, s.ClassName, s.Medium}
		},
		Columns: []listview.Column[models.Student]{
			{Header: "Surname", SortKey: "surname", Value: surname},
			{Header: "First Name", SortKey: "firstname", Value: firstname},
			{Header: "Last Name", SortKey: "lastname", Value: lastname},
			{Header: "Mother Name", SortKey: "motherName", Value: mother},
			{Header: "Class", SortKey: "className", Value: class},
			{Header: "Medium", SortKey: "medium", Value: medium},
			{Header: "School", SortKey: "school.name", Value: school},
			{Header: "Center", SortKey: "center.name", Value: center},
			{Header: "Created", SortKey: "created", Value: created},
		},
		Export: []listview.Column[models.Student]{
			{Header: "ID", Value: func(s models.Student) string { return strconv.Itoa(s.ID) }},
			{Header: "Surname", Value: surname},
			{Header: "First Name", Value: firstname},
			{Header: "Last Name", Value: lastname},
			{Header: "Mother Name", Value: mother},
			{Header: "Class", Value: class},
			{Header: "Medium", Value: medium},
			{Header: "School", Value: school},
			{Header: "Center", Value: center},
			{Header: "Created", Value: created},
		},
		Key: func(s models.Student) string { return strconv.Itoa(s.ID) },
	}
}

// ServeList renders the students table with a delete action per row.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Fetch(), h.Log, "load students")
	defer cancel()

	students, err := h.API.WithToken(auth.Token(r)).Students(ctx)
	if err != nil {
		h.ErrLog.LogUpstreamError(w, r, "load students failed", err, "/dashboard")
		return
	}

	spec := listSpec(h.Loc, h.PageSize)
	res := spec.Run(students, listview.ParseState(r))

	data := listData{
		BaseVM: viewdata.NewBaseVM(r, "Students", "/dashboard"),
		List:   spec.View(res, listPath),
	}
	data.List.Target = tableWrap

	if viewdata.IsTableSwap(r, tableWrap) {
		h.Snippet(w, "students_table", data)
		return
	}
	if h.Sessions != nil {
		data.Flashes = h.Sessions.Flashes(w, r)
	}
	h.Render(w, r, "students_list", data)
}

// ServeExport downloads the filtered students as students.csv.
func (h *Handler) ServeExport(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Fetch(), h.Log, "export students")
	defer cancel()

	students, err := h.API.WithToken(auth.Token(r)).Students(ctx)
	if err != nil {
		h.ErrLog.LogUpstreamError(w, r, "export students failed", err, listPath)
		return
	}

	spec := listSpec(h.Loc, h.PageSize)
	res := spec.Run(students, listview.ParseState(r))

	cw, err := csvutil.NewDownload(w, "students.csv")
	if err == nil {
		err = listview.WriteCSV(cw, res.Filtered, spec.ExportColumns())
	}
	if err != nil {
		h.Log.Warn("write students csv", zap.Error(err))
		return
	}
	h.Audit.Exported(r.Context(), r, auth.Username(r), apiclient.ResourceStudents, len(res.Filtered))
}
