// internal/app/features/centers/list.go
package centers

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
	listPath  = "/dashboard/masters/center/view"
	tableWrap = "centers-table-wrap"
)

type listData struct {
	viewdata.BaseVM
	List listview.View
}

// listSpec describes the centers table. The API already joins district
// and tehsil names onto each center.
func listSpec(loc *time.Location, pageSize int) listview.Spec[models.Center] {
	id := func(c models.Center) string { return strconv.Itoa(c.CenterID) }
	name := func(c models.Center) string { return c.Name }
	address := func(c models.Center) string { return c.Address }
	district := func(c models.Center) string { return c.DistrictName }
	tehsil := func(c models.Center) string { return c.TehsilName }
	created := func(c models.Center) string { return c.Created.Display(loc) }

	return listview.Spec[models.Center]{
		PageSize:    pageSize,
		DefaultSort: listview.Sort{Key: "created", Dir: listview.Desc},
		SortFields: []listview.SortField[models.Center]{
			listview.ByNumber("centerId", func(c models.Center) int { return c.CenterID }),
			listview.ByString("name", name),
			listview.ByString("address", address),
			listview.ByString("districtName", district),
			listview.ByString("tehsilName", tehsil),
			listview.ByTime("created", func(c models.Center) time.Time { return c.Created.Time }),
		},
		Search: func(c models.Center) []string {
			return []string{c.Name, c.DistrictName, c.TehsilName}
		},
		Columns: []listview.Column[models.Center]{
			{Header: "Center ID", SortKey: "centerId", Value: id},
			{Header: "Name", SortKey: "name", Value: name},
			{Header: "Address", SortKey: "address", Value: address},
			{Header: "District", SortKey: "districtName", Value: district},
			{Header: "Tehsil", SortKey: "tehsilName", Value: tehsil},
			{Header: "Created", SortKey: "created", Value: created},
		},
		Export: []listview.Column[models.Center]{
			{Header: "Center ID", Value: id},
			{Header: "Name", Value: name},
			{Header: "Address", Value: address},
			{Header: "District", Value: district},
			{Header: "Taluka", Value: tehsil},
			{Header: "Created", Value: created},
		},
	}
}

// ServeList renders the centers table.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Fetch(), h.Log, "load centers")
	defer cancel()

	centers, err := h.API.WithToken(auth.Token(r)).Centers(ctx)
	if err != nil {
		h.ErrLog.LogUpstreamError(w, r, "load centers failed", err, "/dashboard")
		return
	}

	spec := listSpec(h.Loc, h.PageSize)
	res := spec.Run(centers, listview.ParseState(r))

	data := listData{
		BaseVM: viewdata.NewBaseVM(r, "Centers", "/dashboard"),
		List:   spec.View(res, listPath),
	}
	data.List.Target = tableWrap

	if viewdata.IsTableSwap(r, tableWrap) {
		h.Snippet(w, "centers_table", data)
		return
	}
	h.Render(w, r, "centers_list", data)
}

// ServeExport downloads the filtered centers as centers.csv.
func (h *Handler) ServeExport(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Fetch(), h.Log, "export centers")
	defer cancel()

	centers, err := h.API.WithToken(auth.Token(r)).Centers(ctx)
	if err != nil {
		h.ErrLog.LogUpstreamError(w, r, "export centers failed", err, listPath)
		return
	}

	spec := listSpec(h.Loc, h.PageSize)
	res := spec.Run(centers, listview.ParseState(r))

	cw, err := csvutil.NewDownload(w, "centers.csv")
	if err == nil {
		err = listview.WriteCSV(cw, res.Filtered, spec.ExportColumns())
	}
	if err != nil {
		h.Log.Warn("write centers csv", zap.Error(err))
		return
	}
	h.Audit.Exported(r.Context(), r, auth.Username(r), apiclient.ResourceCenters, len(res.Filtered))
}
