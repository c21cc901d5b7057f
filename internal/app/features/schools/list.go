// internal/app/features/schools/list.go
package schools

import (
	"context"
	"net/http"
	"strconv"
	"time"

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
	listPath  = "/dashboard/masters/school/view"
	tableWrap = "schools-table-wrap"
)

// refs resolves the foreign keys a school row shows by name.
type refs struct {
	districts refindex.Index
	tehsils   refindex.Index
	centers   refindex.Index
}

// fetchAll loads schools and the three reference collections in parallel.
// Nothing is returned unless every fetch succeeds.
func (h *Handler) fetchAll(ctx context.Context, r *http.Request) ([]models.School, refs, error) {
	api := h.API.WithToken(auth.Token(r))

	var (
		schools   []models.School
		districts []models.District
		tehsils   []models.Tehsil
		centers   []models.Center
	)
	err := loader.All(ctx,
		loader.Into(&schools, api.Schools),
		loader.Into(&districts, api.Districts),
		loader.Into(&tehsils, api.Tehsils),
		loader.Into(&centers, api.Centers),
	)
	if err != nil {
		return nil, refs{}, err
	}

	return schools, refs{
		districts: refindex.Build(districts, func(d models.District) int { return d.ID }, func(d models.District) string { return d.Name }),
		tehsils:   refindex.Build(tehsils, func(t models.Tehsil) int { return t.ID }, func(t models.Tehsil) string { return t.Name }),
		centers:   refindex.Build(centers, func(c models.Center) int { return c.ID }, func(c models.Center) string { return c.Name }),
	}, nil
}

// listSpec describes the schools table. District and tehsil sort by id,
// like the column keys the API exposes, but display and search by name.
func listSpec(rf refs, loc *time.Location, pageSize int) listview.Spec[models.School] {
	return listview.Spec[models.School]{
		PageSize:    pageSize,
		DefaultSort: listview.Sort{Key: "created", Dir: listview.Desc},
		SortFields: []listview.SortField[models.School]{
			listview.ByNumber("schoolId", func(s models.School) int { return s.SchoolID }),
			listview.ByString("name", func(s models.School) string { return s.Name }),
			listview.ByString("address", func(s models.School) string { return s.Address }),
			listview.ByNumber("districtId", func(s models.School) int { return s.DistrictID }),
			listview.ByNumber("tehsilId", func(s models.School) int { return s.TehsilID }),
			listview.ByNumber("centerId", func(s models.School) int { return s.CenterID }),
			listview.ByTime("created", func(s models.School) time.Time { return s.Created.Time }),
		},
		Search: func(s models.School) []string {
			return []string{s.Name, rf.districts.Resolve(s.DistrictID), rf.tehsils.Resolve(s.TehsilID)}
		},
		Columns: []listview.Column[models.School]{
			{Header: "School ID", SortKey: "schoolId", Value: func(s models.School) string { return strconv.Itoa(s.SchoolID) }},
			{Header: "Name", SortKey: "name", Value: func(s models.School) string { return s.Name }},
			{Header: "Address", SortKey: "address", Value: func(s models.School) string { return s.Address }},
			{Header: "District", SortKey: "districtId", Value: func(s models.School) string { return rf.districts.Resolve(s.DistrictID) }},
			{Header: "Tehsil", SortKey: "tehsilId", Value: func(s models.School) string { return rf.tehsils.Resolve(s.TehsilID) }},
			{Header: "Center", SortKey: "centerId", Value: func(s models.School) string { return rf.centers.Resolve(s.CenterID) }},
			{Header: "Created", SortKey: "created", Value: func(s models.School) string { return s.Created.Display(loc) }},
		},
	}
}

// ServeList renders the schools table for the q/sort/dir/page in the URL.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Fetch(), h.Log, "load schools")
	defer cancel()

	schools, rf, err := h.fetchAll(ctx, r)
	if err != nil {
		h.ErrLog.LogUpstreamError(w, r, "load schools failed", err, "/dashboard")
		return
	}

	spec := listSpec(rf, h.Loc, h.PageSize)
	res := spec.Run(schools, listview.ParseState(r))

	data := listData{
		BaseVM: viewdata.NewBaseVM(r, "Schools", "/dashboard"),
		List:   spec.View(res, listPath),
	}
	data.List.Target = tableWrap

	// HTMX partial: just the table
	if viewdata.IsTableSwap(r, tableWrap) {
		h.Snippet(w, "schools_table", data)
		return
	}

	if h.Sessions != nil {
		data.Flashes = h.Sessions.Flashes(w, r)
	}
	h.Render(w, r, "schools_list", data)
}

// ServeExport downloads every school matching the current search, in the
// current sort order, as schools.csv.
func (h *Handler) ServeExport(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Fetch(), h.Log, "export schools")
	defer cancel()

	schools, rf, err := h.fetchAll(ctx, r)
	if err != nil {
		h.ErrLog.LogUpstreamError(w, r, "export schools failed", err, listPath)
		return
	}

	spec := listSpec(rf, h.Loc, h.PageSize)
	res := spec.Run(schools, listview.ParseState(r))

	cw, err := csvutil.NewDownload(w, "schools.csv")
	if err == nil {
		err = listview.WriteCSV(cw, res.Filtered, spec.ExportColumns())
	}
	if err != nil {
		h.Log.Warn("write schools csv", zap.Error(err))
		return
	}

	h.Audit.Exported(r.Context(), r, auth.Username(r), apiclient.ResourceSchools, len(res.Filtered))
}
