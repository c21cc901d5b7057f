package register

import (
	"encoding/json"
	"net/http"
	"net/url"
	"testing"
	"time"

	uierrors "github.com/dalemusser/schooladmin/internal/app/features/errors"
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
	h.Now = func() time.Time { return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC) }
	return h, api, rr
}

func validForm() url.Values {
	return url.Values{
		"firstName":  {"Asha"},
		"middleName": {"Ramesh"},
		"lastName":   {"Patil"},
		"email":      {"asha@example.org"},
		"username":   {"asha"},
		"password":   {"s3cret"},
		"role":       {"Admin"},
	}
}

func formOf(t *testing.T, rr *testutil.RecordingRenderer) formData {
	t.Helper()
	data, ok := rr.Data.(formData)
	if !ok {
		t.Fatalf("rendered data is %T, want formData", rr.Data)
	}
	return data
}

func TestServeRegister_DefaultsToUserRole(t *testing.T) {
	h, _, rr := newTestHandler(t)
	rec := testutil.NewRecorder()
	h.ServeRegister(rec, testutil.NewRequest("GET", "/register"))

	rec.AssertStatus(t, http.StatusOK)
	if rr.Name != "register" {
		t.Fatalf("rendered %q", rr.Name)
	}
	roles := formOf(t, rr).Roles
	if len(roles) != 2 || !roles[0].Selected || roles[0].Value != "User" {
		t.Errorf("roles = %+v", roles)
	}
}

func TestHandleRegister_PostsPayloadAndRedirectsToLogin(t *testing.T) {
	h, api, _ := newTestHandler(t)

	rec := testutil.NewRecorder()
	h.HandleRegister(rec, testutil.NewFormRequest("/register", validForm(), nil))

	rec.AssertRedirect(t, "/login")
	writes := api.Writes()
	if len(writes) != 1 || writes[0].Method != "POST" || writes[0].Path != "/api/UserDetails" {
		t.Fatalf("writes = %+v", writes)
	}

	var got map[string]any
	if err := json.Unmarshal(writes[0].Body, &got); err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	want := map[string]any{
		"id":          float64(0),
		"username":    "asha",
		"password":    "s3cret",
		"firstName":   "Asha",
		"middleName":  "Ramesh",
		"lastName":    "Patil",
		"email":       "asha@example.org",
		"role":        "Admin",
		"createddate": "2025-06-01T12:00:00Z",
	}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("%s = %v, want %v", k, got[k], v)
		}
	}
}

func TestHandleRegister_Validation(t *testing.T) {
	tests := []struct {
		name  string
		edit  func(url.Values)
		error string
	}{
		{"missing names", func(f url.Values) { f.Del("firstName"); f.Set("lastName", "  ") },
			"First name and Last name are required."},
		{"bad email", func(f url.Values) { f.Set("email", "asha-at-example") }, "Enter a valid email address."},
		{"unknown role", func(f url.Values) { f.Set("role", "Root") }, "Choose a role."},
		{"no password", func(f url.Values) { f.Del("password") }, "Password is required."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, api, rr := newTestHandler(t)
			form := validForm()
			tt.edit(form)

			rec := testutil.NewRecorder()
			h.HandleRegister(rec, testutil.NewFormRequest("/register", form, nil))

			rec.AssertStatus(t, http.StatusOK)
			data := formOf(t, rr)
			if string(data.Error) != tt.error {
				t.Errorf("Error = %q, want %q", data.Error, tt.error)
			}
			if data.Username != "asha" {
				t.Errorf("username not echoed: %q", data.Username)
			}
			if n := len(api.Writes()); n != 0 {
				t.Errorf("upstream writes = %d, want 0", n)
			}
		})
	}
}

func TestHandleRegister_APIRejects(t *testing.T) {
	h, api, rr := newTestHandler(t)
	api.Fail("POST", "/api/UserDetails", http.StatusConflict)

	rec := testutil.NewRecorder()
	h.HandleRegister(rec, testutil.NewFormRequest("/register", validForm(), nil))

	rec.AssertStatus(t, http.StatusOK)
	data := formOf(t, rr)
	if data.Error == "" || data.Email != "asha@example.org" {
		t.Errorf("form = %+v", data)
	}
	for _, o := range data.Roles {
		if o.Value == "Admin" && !o.Selected {
			t.Error("chosen role not kept")
		}
	}
}
