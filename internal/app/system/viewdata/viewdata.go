// internal/app/system/viewdata/viewdata.go
package viewdata

import (
	"net/http"

	"github.com/dalemusser/schooladmin/internal/app/system/auth"
	"github.com/dalemusser/waffle/pantry/httpnav"
	"github.com/dalemusser/waffle/pantry/templates"
)

// SiteName is shown in the page title and header.
const SiteName = "School Admin"

// NavItem is one entry of the dashboard sidebar.
type NavItem struct {
	Label  string
	Href   string
	Active bool
}

// BaseVM contains common fields for all view models.
// Embed this struct in your feature-specific view models.
//
// Usage:
//
//	type myPageData struct {
//	    viewdata.BaseVM
//	    // page-specific fields...
//	}
//
//	data := myPageData{
//	    BaseVM: viewdata.NewBaseVM(r, "Page Title", "/default-back"),
//	}
type BaseVM struct {
	SiteName string

	// User context (from the session guard)
	IsLoggedIn bool
	Role       string
	UserName   string

	// Page context
	Title       string
	BackURL     string
	CurrentPath string
	Nav         []NavItem

	// One-shot messages popped from the session by the handler.
	Flashes []string
}

// masterNav is the sidebar shown on every dashboard page.
var masterNav = []NavItem{
	{Label: "Dashboard", Href: "/dashboard"},
	{Label: "Centers", Href: "/dashboard/masters/center/view"},
	{Label: "Schools", Href: "/dashboard/masters/school/view"},
	{Label: "Teachers", Href: "/dashboard/masters/teacher/view"},
	{Label: "Students", Href: "/dashboard/masters/student/view"},
}

// NewBaseVM creates a populated BaseVM for a page.
//
// Parameters:
//   - r: the HTTP request
//   - title: the page title
//   - backDefault: default URL for the back button if none in request
func NewBaseVM(r *http.Request, title, backDefault string) BaseVM {
	vm := BaseVM{
		SiteName:    SiteName,
		Title:       title,
		BackURL:     httpnav.ResolveBackURL(r, backDefault),
		CurrentPath: httpnav.CurrentPath(r),
	}
	if u, ok := auth.CurrentUser(r); ok {
		vm.IsLoggedIn = true
		vm.Role = u.Role
		vm.UserName = u.DisplayName()
		vm.Nav = navFor(r.URL.Path)
	}
	return vm
}

func navFor(path string) []NavItem {
	items := make([]NavItem, len(masterNav))
	copy(items, masterNav)
	for i := range items {
		items[i].Active = items[i].Href == path
	}
	return items
}

// Renderer draws a named page template with data.
// Handlers hold one so tests can capture what would be rendered.
type Renderer func(w http.ResponseWriter, r *http.Request, name string, data any)

// Render is the production Renderer backed by the template engine.
func Render(w http.ResponseWriter, r *http.Request, name string, data any) {
	templates.Render(w, r, name, data)
}

// SnippetRenderer draws a named partial without the page layout. HTMX
// requests that only swap a table use it.
type SnippetRenderer func(w http.ResponseWriter, name string, data any)

// RenderSnippet is the production SnippetRenderer.
func RenderSnippet(w http.ResponseWriter, name string, data any) {
	templates.RenderSnippet(w, name, data)
}

// IsTableSwap reports whether r is an HTMX request targeting the element id.
func IsTableSwap(r *http.Request, target string) bool {
	return r.Header.Get("HX-Request") == "true" && r.Header.Get("HX-Target") == target
}
