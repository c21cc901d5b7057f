package testutil

import (
	"context"
	"net/http"
	"time"

	"github.com/dalemusser/schooladmin/internal/domain/models"
	"github.com/go-chi/chi/v5"
)

// WithChiURLParam adds a chi URL parameter to the request context.
// Use this in handler tests that need to access chi.URLParam values.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func at(s string) models.Timestamp {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return models.NewTimestamp(t)
}

// Districts returns two districts.
func Districts() []models.District {
	return []models.District{
		{ID: 1, Name: "Pune"},
		{ID: 2, Name: "Nashik"},
	}
}

// Tehsils returns three tehsils, two in Pune and one in Nashik.
func Tehsils() []models.Tehsil {
	return []models.Tehsil{
		{ID: 11, Name: "Haveli", DistrictID: 1},
		{ID: 12, Name: "Mulshi", DistrictID: 1},
		{ID: 21, Name: "Sinnar", DistrictID: 2},
	}
}

// Centers returns two centers.
func Centers() []models.Center {
	return []models.Center{
		{ID: 100, CenterID: 100, Name: "Pune Center", Address: "Camp", DistrictName: "Pune", TehsilName: "Haveli", Created: at("2024-01-01T09:00:00Z")},
		{ID: 200, CenterID: 200, Name: "Nashik Center", Address: "CBS", DistrictName: "Nashik", TehsilName: "Sinnar", Created: at("2024-02-01T09:00:00Z")},
	}
}

// Schools returns three schools. The last one points at an unknown center.
func Schools() []models.School {
	return []models.School{
		{ID: 1, SchoolID: 1001, CenterID: 100, Name: "Green Valley", Address: "Kothrud", DistrictID: 1, TehsilID: 11, State: models.DefaultSchoolState, Created: at("2024-03-01T10:00:00Z")},
		{ID: 2, SchoolID: 1002, CenterID: 200, Name: "Blue Hills", Address: "Sinnar Road", DistrictID: 2, TehsilID: 21, State: models.DefaultSchoolState, Created: at("2024-03-02T10:00:00Z")},
		{ID: 3, SchoolID: 1003, CenterID: 999, Name: "Orphan School", Address: "Nowhere", DistrictID: 9, TehsilID: 99, State: models.DefaultSchoolState, Created: at("2024-03-03T10:00:00Z")},
	}
}

// Teachers returns two teachers.
func Teachers() []models.Teacher {
	return []models.Teacher{
		{ID: 1, Name: "Asha Patil", ContactNo1: "09876543210", Email: "asha@example.com", CenterID: 100, SchoolID: 1},
		{ID: 2, Name: "Ravi Kale", ContactNo1: "9123456789", ContactNo2: "9000000000", CenterID: 200, SchoolID: 2},
	}
}

// Students returns three students with embedded school and center refs.
func Students() []models.Student {
	return []models.Student{
		{ID: 1, Surname: "Patil", Firstname: "Om", MotherName: "Sunita", ClassName: "1st", Medium: "Marathi", SchoolID: 1, CenterID: 100,
			School: &models.Ref{ID: 1, Name: "Green Valley"}, Center: &models.Ref{ID: 100, Name: "Pune Center"}, Created: at("2024-04-01T08:00:00Z")},
		{ID: 2, Surname: "Kale", Firstname: "Isha", MotherName: "Meera", ClassName: "3rd", Medium: "English", SchoolID: 2, CenterID: 200,
			School: &models.Ref{ID: 2, Name: "Blue Hills"}, Center: &models.Ref{ID: 200, Name: "Nashik Center"}, Created: at("2024-04-02T08:00:00Z")},
		{ID: 3, Surname: "Joshi", Firstname: "Yash", ClassName: "6th", Medium: "Semi English", Created: at("2024-04-03T08:00:00Z")},
	}
}
