// Package navigation provides helpers for safe URL navigation and redirects.
package navigation

import (
	"net/http"
	"strings"

	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/urlutil"
)

// BackURLOptions configures the behavior of SafeBackURL.
type BackURLOptions struct {
	// AllowedPrefix is the required URL prefix (e.g., "/dashboard/masters/student").
	// If empty, any safe URL is allowed.
	AllowedPrefix string

	// ExcludedSubpaths are subpath patterns to reject (e.g., "/add", "/delete").
	// These prevent redirect loops back to action pages.
	ExcludedSubpaths []string

	// Fallback is the default URL if no valid return URL is found.
	Fallback string
}

// SafeBackURL extracts and validates a return URL from the request.
//
// It checks both the query parameter and form value for "return", rejects
// anything that is not a local path, optionally checks the prefix, and
// excludes the given subpaths. A list page's query string survives, so a
// delete lands back on the same search, sort and page.
//
//	url := navigation.SafeBackURL(r, navigation.StudentsBackURL)
func SafeBackURL(r *http.Request, opts BackURLOptions) string {
	ret := urlutil.SafeReturn(query.Get(r, "return"), "", "")
	if ret == "" {
		ret = urlutil.SafeReturn(strings.TrimSpace(r.FormValue("return")), "", "")
	}
	if ret == "" {
		return opts.Fallback
	}

	if opts.AllowedPrefix != "" && !strings.HasPrefix(ret, opts.AllowedPrefix) {
		return opts.Fallback
	}
	path := ret
	if i := strings.IndexByte(path, '?'); i >= 0 {
		path = path[:i]
	}
	for _, excluded := range opts.ExcludedSubpaths {
		if strings.Contains(path, excluded) {
			return opts.Fallback
		}
	}
	return ret
}

// Common back URL configurations for reuse across packages.
var (
	// LoginReturn is where a successful login may send the user.
	LoginReturn = BackURLOptions{
		AllowedPrefix:    "/dashboard",
		ExcludedSubpaths: []string{"/export.csv"},
		Fallback:         "/dashboard",
	}

	// SchoolsBackURL returns options for school pages.
	SchoolsBackURL = BackURLOptions{
		AllowedPrefix:    "/dashboard/masters/school",
		ExcludedSubpaths: []string{"/add"},
		Fallback:         "/dashboard/masters/school/view",
	}

	// TeachersBackURL returns options for teacher pages.
	TeachersBackURL = BackURLOptions{
		AllowedPrefix:    "/dashboard/masters/teacher",
		ExcludedSubpaths: []string{"/add"},
		Fallback:         "/dashboard/masters/teacher/view",
	}

	// StudentsBackURL returns options for student pages.
	StudentsBackURL = BackURLOptions{
		AllowedPrefix:    "/dashboard/masters/student",
		ExcludedSubpaths: []string{"/add", "/delete"},
		Fallback:         "/dashboard/masters/student/view",
	}
)
