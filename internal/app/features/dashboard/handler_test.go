package dashboard

import (
	"net/http"
	"testing"
	"time"

	uierrors "github.com/dalemusser/schooladmin/internal/app/features/errors"
	"github.com/dalemusser/schooladmin/internal/app/store/audit"
	"github.com/dalemusser/schooladmin/internal/testutil"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T, events *audit.Store) (*Handler, *testutil.FakeAPI, *testutil.RecordingRenderer) {
	t.Helper()
	api := testutil.NewFakeAPI(t)
	rr := &testutil.RecordingRenderer{}
	logger := zap.NewNop()
	errLog := uierrors.NewErrorLogger(logger)
	errLog.Render = rr.Render

	h := NewHandler(api.Client, events, errLog, logger)
	h.Render = rr.Render
	return h, api, rr
}

func TestServeDashboard_Counts(t *testing.T) {
	h, api, rr := newTestHandler(t, nil)

	rec := testutil.NewRecorder()
	h.ServeDashboard(rec, testutil.NewAuthenticatedRequest("GET", "/dashboard", testutil.AdminUser()))

	rec.AssertStatus(t, http.StatusOK)
	data, ok := rr.Data.(dashboardData)
	if !ok {
		t.Fatalf("rendered data is %T", rr.Data)
	}
	want := map[string]int{
		"Centers":  len(testutil.Centers()),
		"Schools":  len(testutil.Schools()),
		"Teachers": len(testutil.Teachers()),
		"Students": len(testutil.Students()),
	}
	if len(data.Tiles) != len(want) {
		t.Fatalf("tiles = %d", len(data.Tiles))
	}
	for _, tl := range data.Tiles {
		if tl.Count != want[tl.Label] {
			t.Errorf("%s = %d, want %d", tl.Label, tl.Count, want[tl.Label])
		}
	}
	if data.ShowRecent {
		t.Error("recent activity shown without a store")
	}
	if n := len(api.Requests()); n != 4 {
		t.Errorf("upstream calls = %d, want 4", n)
	}
}

func TestServeDashboard_UpstreamFailure(t *testing.T) {
	h, api, rr := newTestHandler(t, nil)
	api.Fail("GET", "/api/Teachers", http.StatusInternalServerError)

	rec := testutil.NewRecorder()
	h.ServeDashboard(rec, testutil.NewAuthenticatedRequest("GET", "/dashboard", testutil.AdminUser()))

	rec.AssertStatus(t, http.StatusBadGateway)
	if rr.Name != "error_page" {
		t.Errorf("rendered %q, want error_page", rr.Name)
	}
}

func TestServeDashboard_RecentActivity(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := audit.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	if err := store.Log(ctx, audit.Event{
		Timestamp: time.Date(2025, 6, 1, 8, 30, 0, 0, time.UTC),
		Category:  audit.CategoryMaster,
		EventType: audit.EventStudentDeleted,
		Actor:     "admin",
		Success:   true,
	}); err != nil {
		t.Fatalf("log event: %v", err)
	}

	h, _, rr := newTestHandler(t, store)
	h.Loc = time.FixedZone("IST", 5*3600+1800)

	rec := testutil.NewRecorder()
	h.ServeDashboard(rec, testutil.NewAuthenticatedRequest("GET", "/dashboard", testutil.AdminUser()))

	rec.AssertStatus(t, http.StatusOK)
	data := rr.Data.(dashboardData)
	if !data.ShowRecent || len(data.Recent) != 1 {
		t.Fatalf("recent = %+v", data.Recent)
	}
	got := data.Recent[0]
	if got.When != "2025-06-01 14:00:00" || got.Actor != "admin" || got.Event != audit.EventStudentDeleted {
		t.Errorf("activity = %+v", got)
	}
	if data.Zone != "IST (UTC+05:30)" {
		t.Errorf("Zone = %q", data.Zone)
	}
}
