package schools

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"testing"
	"time"

	uierrors "github.com/dalemusser/schooladmin/internal/app/features/errors"
	"github.com/dalemusser/schooladmin/internal/app/system/formutil"
	"github.com/dalemusser/schooladmin/internal/domain/models"
	"github.com/dalemusser/schooladmin/internal/testutil"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T) (*Handler, *testutil.FakeAPI, *testutil.RecordingRenderer) {
	t.Helper()
	api := testutil.NewFakeAPI(t)
	rr := &testutil.RecordingRenderer{}
	logger := zap.NewNop()
	errLog := uierrors.NewErrorLogger(logger)
	errLog.Render = rr.Render

	h := NewHandler(api.Client, nil, errLog, nil, logger)
	h.Render = rr.Render
	h.Snippet = rr.RenderSnippet
	h.Now = func() time.Time { return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC) }
	return h, api, rr
}

func listOf(t *testing.T, rr *testutil.RecordingRenderer) listData {
	t.Helper()
	data, ok := rr.Data.(listData)
	if !ok {
		t.Fatalf("rendered data is %T, want listData", rr.Data)
	}
	return data
}

func TestServeList_DefaultSortNewestFirst(t *testing.T) {
	h, api, rr := newTestHandler(t)

	rec := testutil.NewRecorder()
	h.ServeList(rec, testutil.NewAuthenticatedRequest("GET", listPath, testutil.AdminUser()))

	rec.AssertStatus(t, http.StatusOK)
	if rr.Name != "schools_list" {
		t.Fatalf("rendered %q, want schools_list", rr.Name)
	}
	rows := listOf(t, rr).List.Rows
	if len(rows) != 3 {
		t.Fatalf("rows = %d, want 3", len(rows))
	}
	want := []string{"Orphan School", "Blue Hills", "Green Valley"}
	for i, name := range want {
		if rows[i].Cells[1] != name {
			t.Errorf("row %d name = %q, want %q", i, rows[i].Cells[1], name)
		}
		if rows[i].Number != i+1 {
			t.Errorf("row %d number = %d", i, rows[i].Number)
		}
	}
	// Orphan School points at ids nobody knows.
	if rows[0].Cells[3] != "N/A" || rows[0].Cells[4] != "N/A" || rows[0].Cells[5] != "N/A" {
		t.Errorf("unresolved refs = %v", rows[0].Cells[3:6])
	}
	if rows[2].Cells[3] != "Pune" || rows[2].Cells[4] != "Haveli" || rows[2].Cells[5] != "Pune Center" {
		t.Errorf("resolved refs = %v", rows[2].Cells[3:6])
	}

	// All four collections were fetched with the session token.
	reqs := api.Requests()
	if len(reqs) != 4 {
		t.Fatalf("upstream calls = %d, want 4", len(reqs))
	}
	for _, r := range reqs {
		if r.Auth != "Bearer test-token" {
			t.Errorf("%s Authorization = %q", r.Path, r.Auth)
		}
	}
}

func TestServeList_SearchesResolvedNames(t *testing.T) {
	h, _, rr := newTestHandler(t)

	rec := testutil.NewRecorder()
	h.ServeList(rec, testutil.NewAuthenticatedRequest("GET", listPath+"?q=sinnar", testutil.AdminUser()))

	rows := listOf(t, rr).List.Rows
	if len(rows) != 1 || rows[0].Cells[1] != "Blue Hills" {
		t.Fatalf("rows = %+v, want only Blue Hills (tehsil Sinnar)", rows)
	}
}

func TestServeList_SortHeaderLinks(t *testing.T) {
	h, _, rr := newTestHandler(t)

	rec := testutil.NewRecorder()
	h.ServeList(rec, testutil.NewAuthenticatedRequest("GET", listPath+"?sort=name&dir=asc&q=e", testutil.AdminUser()))

	data := listOf(t, rr)
	var nameHref string
	for _, hc := range data.List.Headers {
		if hc.Label == "Name" {
			nameHref = hc.Href
			if !hc.Active {
				t.Error("Name header should be active")
			}
		}
	}
	if !strings.Contains(nameHref, "dir=desc") || !strings.Contains(nameHref, "q=e") {
		t.Errorf("Name header href = %q, want toggle to desc keeping q", nameHref)
	}
	if data.List.Rows[0].Cells[1] != "Blue Hills" {
		t.Errorf("first row = %q, want Blue Hills", data.List.Rows[0].Cells[1])
	}
}

func TestServeList_SearchAfterSortKeepsOrder(t *testing.T) {
	h, _, rr := newTestHandler(t)

	rec := testutil.NewRecorder()
	h.ServeList(rec, testutil.NewAuthenticatedRequest("GET", listPath+"?sort=name&dir=asc", testutil.AdminUser()))

	// Submit the search form the page rendered.
	form := url.Values{"q": {"l"}}
	for _, f := range listOf(t, rr).List.Keep {
		form.Set(f.Name, f.Value)
	}
	if form.Has("page") {
		t.Errorf("search form carries page: %v", form)
	}
	rec = testutil.NewRecorder()
	h.ServeList(rec, testutil.NewAuthenticatedRequest("GET", listPath+"?"+form.Encode(), testutil.AdminUser()))

	rows := listOf(t, rr).List.Rows
	want := []string{"Blue Hills", "Green Valley", "Orphan School"}
	if len(rows) != len(want) {
		t.Fatalf("rows = %d, want %d", len(rows), len(want))
	}
	for i, name := range want {
		if rows[i].Cells[1] != name {
			t.Errorf("row %d = %q, want %q (name ascending)", i, rows[i].Cells[1], name)
		}
	}
}

func TestServeList_HTMXRendersTableOnly(t *testing.T) {
	h, _, rr := newTestHandler(t)

	req := testutil.NewAuthenticatedRequest("GET", listPath+"?q=green", testutil.AdminUser())
	req.Header.Set("HX-Request", "true")
	req.Header.Set("HX-Target", tableWrap)
	rec := testutil.NewRecorder()
	h.ServeList(rec, req)

	if rr.Name != "schools_table" {
		t.Errorf("rendered %q, want schools_table", rr.Name)
	}
}

func TestServeList_UpstreamFailureBlocksPage(t *testing.T) {
	h, api, rr := newTestHandler(t)
	api.Fail(http.MethodGet, "/api/Centers/tehsils", http.StatusInternalServerError)

	rec := testutil.NewRecorder()
	h.ServeList(rec, testutil.NewAuthenticatedRequest("GET", listPath, testutil.AdminUser()))

	rec.AssertStatus(t, http.StatusBadGateway)
	if rr.Name != "error_page" {
		t.Errorf("rendered %q, want error_page", rr.Name)
	}
}

func TestServeExport_AllFilteredRows(t *testing.T) {
	h, _, _ := newTestHandler(t)

	// page=2 would be empty on screen; export ignores paging.
	rec := testutil.NewRecorder()
	h.ServeExport(rec, testutil.NewAuthenticatedRequest("GET", listPath+"/export.csv?sort=name&dir=asc&page=2", testutil.AdminUser()))

	rec.AssertStatus(t, http.StatusOK)
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/csv") {
		t.Errorf("Content-Type = %q", ct)
	}
	body := strings.TrimPrefix(rec.Body.String(), "\ufeff")
	lines := strings.Split(strings.TrimRight(body, "\r\n"), "\r\n")
	if len(lines) != 4 {
		t.Fatalf("lines = %d, want header + 3", len(lines))
	}
	if lines[0] != "School ID,Name,Address,District,Tehsil,Center,Created" {
		t.Errorf("header = %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "1002,Blue Hills,") {
		t.Errorf("first row = %q", lines[1])
	}
}

func validForm() url.Values {
	return url.Values{
		"schoolId":    {"1004"},
		"name":        {"New School"},
		"address":     {"Baner"},
		"centerId":    {"100"},
		"districtId":  {"1"},
		"tehsilId":    {"12"},
		"pinCode":     {"411045"},
		"teacherName": {"S. Deshmukh"},
		"contactNo1":  {"09800011122"},
		"email":       {"school@example.com"},
		"password":    {"secret"},
	}
}

func TestHandleAdd_Success(t *testing.T) {
	h, api, _ := newTestHandler(t)

	rec := testutil.NewRecorder()
	h.HandleAdd(rec, testutil.NewFormRequest("/dashboard/masters/school/add", validForm(), testutil.AdminUser()))

	rec.AssertRedirect(t, listPath)

	writes := api.Writes()
	if len(writes) != 1 || writes[0].Method != http.MethodPost || writes[0].Path != "/api/Schools" {
		t.Fatalf("writes = %+v", writes)
	}
	var got map[string]any
	if err := json.Unmarshal(writes[0].Body, &got); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	checks := map[string]any{
		"id":         float64(0),
		"schoolId":   float64(1004),
		"centerId":   float64(100),
		"tehsilId":   float64(12),
		"state":      models.DefaultSchoolState,
		"contactNo1": "09800011122",
		"isDeleted":  false,
		"created":    "2025-06-01T12:00:00Z",
	}
	for k, want := range checks {
		if got[k] != want {
			t.Errorf("%s = %v, want %v", k, got[k], want)
		}
	}
}

func TestHandleAdd_MissingFields(t *testing.T) {
	h, api, rr := newTestHandler(t)

	form := validForm()
	form.Set("name", "")
	form.Set("password", "")
	rec := testutil.NewRecorder()
	h.HandleAdd(rec, testutil.NewFormRequest("/dashboard/masters/school/add", form, testutil.AdminUser()))

	rec.AssertStatus(t, http.StatusOK)
	data, ok := rr.Data.(addData)
	if !ok {
		t.Fatalf("rendered data is %T", rr.Data)
	}
	if !strings.Contains(string(data.Error), "School name and Password are required.") {
		t.Errorf("error = %q", data.Error)
	}
	if data.Address != "Baner" {
		t.Errorf("address not echoed: %q", data.Address)
	}
	if len(api.Writes()) != 0 {
		t.Error("validation failure reached the API")
	}
}

func TestHandleAdd_TehsilOutsideDistrict(t *testing.T) {
	h, api, rr := newTestHandler(t)

	form := validForm()
	form.Set("tehsilId", "21") // Sinnar is in Nashik
	rec := testutil.NewRecorder()
	h.HandleAdd(rec, testutil.NewFormRequest("/dashboard/masters/school/add", form, testutil.AdminUser()))

	data := rr.Data.(addData)
	if data.Error == "" {
		t.Fatal("expected an error")
	}
	if len(data.Tehsils) != 2 {
		t.Errorf("tehsil options = %d, want the 2 in Pune", len(data.Tehsils))
	}
	if len(api.Writes()) != 0 {
		t.Error("validation failure reached the API")
	}
}

func TestHandleAdd_BadPinCodeAndMultilineAddress(t *testing.T) {
	h, api, rr := newTestHandler(t)

	form := validForm()
	form.Set("pinCode", "4110")
	form.Set("address", "  Plot 4 \r\n\r\n<b>Baner</b> Road ")
	rec := testutil.NewRecorder()
	h.HandleAdd(rec, testutil.NewFormRequest("/dashboard/masters/school/add", form, testutil.AdminUser()))

	data := rr.Data.(addData)
	if !strings.Contains(string(data.Error), "PIN code must be 6 digits.") {
		t.Errorf("error = %q", data.Error)
	}
	if data.Address != "Plot 4\nBaner Road" {
		t.Errorf("address = %q", data.Address)
	}
	if len(api.Writes()) != 0 {
		t.Error("validation failure reached the API")
	}
}

func TestHandleAdd_ValidationWithoutUpstream(t *testing.T) {
	h, api, rr := newTestHandler(t)
	api.Fail(http.MethodGet, "/api/Centers", http.StatusServiceUnavailable)

	rec := testutil.NewRecorder()
	h.HandleAdd(rec, testutil.NewFormRequest("/dashboard/masters/school/add", url.Values{}, testutil.AdminUser()))

	rec.AssertStatus(t, http.StatusOK)
	data, ok := rr.Data.(addData)
	if !ok {
		t.Fatalf("rendered %q with %T, want the form", rr.Name, rr.Data)
	}
	if !strings.Contains(string(data.Error), "are required.") {
		t.Errorf("error = %q", data.Error)
	}
	if len(api.Writes()) != 0 {
		t.Error("invalid form reached the API")
	}
}

func TestHandleAdd_RejectedByAPI(t *testing.T) {
	h, api, rr := newTestHandler(t)
	api.Fail(http.MethodPost, "/api/Schools", http.StatusBadRequest)

	rec := testutil.NewRecorder()
	h.HandleAdd(rec, testutil.NewFormRequest("/dashboard/masters/school/add", validForm(), testutil.AdminUser()))

	rec.AssertStatus(t, http.StatusOK)
	data := rr.Data.(addData)
	if !strings.Contains(string(data.Error), "rejected") {
		t.Errorf("error = %q", data.Error)
	}
	if data.Name != "New School" {
		t.Errorf("name not echoed: %q", data.Name)
	}
}

func TestServeTehsilOptions(t *testing.T) {
	h, _, rr := newTestHandler(t)

	rec := testutil.NewRecorder()
	h.ServeTehsilOptions(rec, testutil.NewAuthenticatedRequest("GET", "/dashboard/masters/school/add/tehsils?districtId=2", testutil.AdminUser()))

	opts, ok := rr.Data.([]formutil.Option)
	if !ok {
		t.Fatalf("data is %T", rr.Data)
	}
	if len(opts) != 1 || opts[0].Label != "Sinnar" {
		t.Errorf("options = %+v", opts)
	}
}

func TestServeAdd_NoDistrictNoTehsils(t *testing.T) {
	h, _, rr := newTestHandler(t)

	rec := testutil.NewRecorder()
	h.ServeAdd(rec, testutil.NewAuthenticatedRequest("GET", "/dashboard/masters/school/add", testutil.AdminUser()))

	data := rr.Data.(addData)
	if len(data.Tehsils) != 0 {
		t.Errorf("tehsils = %d, want 0 until a district is chosen", len(data.Tehsils))
	}
	if len(data.Centers) != 2 || len(data.Districts) != 2 {
		t.Errorf("centers=%d districts=%d", len(data.Centers), len(data.Districts))
	}
}
