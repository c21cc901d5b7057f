// internal/app/features/dashboard/dashboard.go
package dashboard

import (
	"context"
	"net/http"
	"time"

	"github.com/dalemusser/schooladmin/internal/app/store/audit"
	"github.com/dalemusser/schooladmin/internal/app/system/auth"
	"github.com/dalemusser/schooladmin/internal/app/system/loader"
	"github.com/dalemusser/schooladmin/internal/app/system/timeouts"
	"github.com/dalemusser/schooladmin/internal/app/system/timezones"
	"github.com/dalemusser/schooladmin/internal/app/system/viewdata"
	"go.uber.org/zap"
)

// tile is one count card linking to its list page.
type tile struct {
	Label string
	Count int
	Href  string
	Add   string // "" when the master has no add form
}

type activity struct {
	When    string
	Actor   string
	Event   string
	Success bool
}

type dashboardData struct {
	viewdata.BaseVM
	Tiles  []tile
	Recent []activity
	// ShowRecent is false when there is no audit store to read from.
	ShowRecent bool
	Zone       string
}

// counts fetches the four master collections in parallel and keeps only
// their sizes.
func (h *Handler) counts(ctx context.Context, r *http.Request) ([]tile, error) {
	api := h.API.WithToken(auth.Token(r))
	var centers, schools, teachers, students int
	err := loader.All(ctx,
		loader.Into(&centers, lenOf(api.Centers)),
		loader.Into(&schools, lenOf(api.Schools)),
		loader.Into(&teachers, lenOf(api.Teachers)),
		loader.Into(&students, lenOf(api.Students)),
	)
	if err != nil {
		return nil, err
	}
	return []tile{
		{Label: "Centers", Count: centers, Href: "/dashboard/masters/center/view"},
		{Label: "Schools", Count: schools, Href: "/dashboard/masters/school/view", Add: "/dashboard/masters/school/add"},
		{Label: "Teachers", Count: teachers, Href: "/dashboard/masters/teacher/view", Add: "/dashboard/masters/teacher/add"},
		{Label: "Students", Count: students, Href: "/dashboard/masters/student/view", Add: "/dashboard/masters/student/add"},
	}, nil
}

func lenOf[T any](fetch func(context.Context) ([]T, error)) func(context.Context) (int, error) {
	return func(ctx context.Context) (int, error) {
		items, err := fetch(ctx)
		return len(items), err
	}
}

// ServeDashboard shows master totals and, with an audit store, the latest
// console activity.
func (h *Handler) ServeDashboard(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Fetch(), h.Log, "dashboard")
	defer cancel()

	tiles, err := h.counts(ctx, r)
	if err != nil {
		h.ErrLog.LogUpstreamError(w, r, "dashboard counts failed", err, "/dashboard")
		return
	}

	data := dashboardData{
		BaseVM: viewdata.NewBaseVM(r, "Dashboard", "/dashboard"),
		Tiles:  tiles,
	}

	if h.Events != nil {
		data.ShowRecent = true
		data.Zone = timezones.Label(h.Loc, time.Now())
		events, err := h.Events.GetRecent(ctx, recentLimit)
		if err != nil {
			// Activity is informational; the totals still render.
			h.Log.Warn("load recent audit events", zap.Error(err))
		}
		data.Recent = h.activities(events)
	}

	h.Render(w, r, "dashboard", data)
}

func (h *Handler) activities(events []audit.Event) []activity {
	out := make([]activity, 0, len(events))
	for _, e := range events {
		out = append(out, activity{
			When:    e.Timestamp.In(h.Loc).Format("2006-01-02 15:04:05"),
			Actor:   e.Actor,
			Event:   e.EventType,
			Success: e.Success,
		})
	}
	return out
}
