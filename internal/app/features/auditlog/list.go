// internal/app/features/auditlog/list.go
package auditlog

import (
	"net/http"
	"net/url"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/dalemusser/schooladmin/internal/app/store/audit"
	"github.com/dalemusser/schooladmin/internal/app/system/formutil"
	"github.com/dalemusser/schooladmin/internal/app/system/paging"
	"github.com/dalemusser/schooladmin/internal/app/system/timeouts"
	"github.com/dalemusser/schooladmin/internal/app/system/timezones"
	"github.com/dalemusser/schooladmin/internal/app/system/viewdata"
	"github.com/dalemusser/waffle/pantry/query"
	"go.uber.org/zap"
)

const (
	pageSize   = 25
	listPath   = "/dashboard/audit"
	dateLayout = "2006-01-02"
)

// filterForm is the decoded query string of the list page.
type filterForm struct {
	Category  string
	EventType string
	Actor     string
	StartDate string
	EndDate   string
	Page      int
}

func parseFilter(r *http.Request) filterForm {
	f := filterForm{
		Category:  query.Get(r, "category"),
		EventType: query.Get(r, "event_type"),
		Actor:     query.Get(r, "actor"),
		StartDate: query.Get(r, "start_date"),
		EndDate:   query.Get(r, "end_date"),
		Page:      paging.ParsePage(r),
	}
	if _, ok := categoryLabels[f.Category]; !ok {
		f.Category = ""
	}
	if !slices.Contains(eventTypesFor(f.Category), f.EventType) {
		f.EventType = ""
	}
	return f
}

// query turns the form into a store filter. Dates are whole days in loc;
// an unparsable date is ignored.
func (f filterForm) query(loc *time.Location) audit.QueryFilter {
	q := audit.QueryFilter{
		Actor:     f.Actor,
		Category:  f.Category,
		EventType: f.EventType,
		Limit:     pageSize,
		Offset:    int64((f.Page - 1) * pageSize),
	}
	if t, err := time.ParseInLocation(dateLayout, f.StartDate, loc); err == nil {
		q.StartTime = &t
	}
	if t, err := time.ParseInLocation(dateLayout, f.EndDate, loc); err == nil {
		end := t.AddDate(0, 0, 1).Add(-time.Nanosecond)
		q.EndTime = &end
	}
	return q
}

// href links to page p with the same filters.
func (f filterForm) href(p int) string {
	v := url.Values{}
	for k, s := range map[string]string{
		"category":   f.Category,
		"event_type": f.EventType,
		"actor":      f.Actor,
		"start_date": f.StartDate,
		"end_date":   f.EndDate,
	} {
		if s != "" {
			v.Set(k, s)
		}
	}
	if p > 1 {
		v.Set("page", strconv.Itoa(p))
	}
	if enc := v.Encode(); enc != "" {
		return listPath + "?" + enc
	}
	return listPath
}

// ServeList handles GET /dashboard/audit: recorded console events, newest
// first, filtered by category, type, user and date.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Fetch(), h.Log, "audit log list")
	defer cancel()

	f := parseFilter(r)
	filter := f.query(h.Loc)

	events, err := h.Events.Query(ctx, filter)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "query audit events", err, "The audit log could not be read.", "/dashboard")
		return
	}
	total, err := h.Events.CountByFilter(ctx, filter)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "count audit events", err, "The audit log could not be read.", "/dashboard")
		return
	}

	items := make([]listItem, 0, len(events))
	for _, e := range events {
		items = append(items, listItem{
			When:      e.Timestamp.In(h.Loc).Format("2006-01-02 15:04:05"),
			Category:  categoryLabels[e.Category],
			EventType: strings.ReplaceAll(e.EventType, "_", " "),
			Actor:     e.Actor,
			Resource:  e.Resource,
			RecordID:  e.RecordID,
			IP:        e.IP,
			Success:   e.Success,
			Reason:    e.FailureReason,
			Details:   e.Details,
		})
	}

	rng := paging.ComputeRange(f.Page, int(total), pageSize)
	data := listData{
		BaseVM:     viewdata.NewBaseVM(r, "Audit Log", "/dashboard"),
		Items:      items,
		Actor:      f.Actor,
		StartDate:  f.StartDate,
		EndDate:    f.EndDate,
		Categories: categoryOptions(f.Category),
		EventTypes: formutil.StringOptions(eventTypesFor(f.Category), f.EventType),
		Range:      rng,
		Zone:       timezones.Label(h.Loc, time.Now()),
	}
	if rng.HasPrev {
		data.PrevHref = f.href(rng.PrevPage)
	}
	if rng.HasNext {
		data.NextHref = f.href(rng.NextPage)
	}

	h.Log.Debug("audit log served", zap.Int64("total", total), zap.Int("page", f.Page))
	h.Render(w, r, "audit_list", data)
}
