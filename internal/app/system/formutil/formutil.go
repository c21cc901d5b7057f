// Package formutil provides helpers for form re-rendering with validation errors.
//
// When a form submission fails validation, the form should be re-rendered with:
// - The user's previously entered values (echoed back)
// - An error message explaining what went wrong
// - All the context data needed for the form (dropdowns, etc.)
//
// Example usage:
//
//	type addSchoolData struct {
//		formutil.Base
//		Name    string
//		Centers []formutil.Option
//	}
//
//	data := addSchoolData{Name: name}
//	formutil.SetBase(&data.Base, r, "Add School", "/dashboard/masters/school/view")
//	data.SetError("School name is required.")
//	h.Render(w, r, "school_add", data)
package formutil

import (
	"html/template"
	"net/http"
	"strconv"

	"github.com/dalemusser/schooladmin/internal/app/system/viewdata"
)

// Base contains common fields for form pages that can be embedded in form data structs.
type Base struct {
	viewdata.BaseVM
	Error template.HTML
}

// SetBase populates the common Base fields from the request.
func SetBase(b *Base, r *http.Request, title, backDefault string) {
	b.BaseVM = viewdata.NewBaseVM(r, title, backDefault)
}

// SetError sets the error message on a Base struct. msg is escaped.
func (b *Base) SetError(msg string) {
	b.Error = template.HTML(template.HTMLEscapeString(msg))
}

// SetErrorHTML sets an already-safe HTML error message.
func (b *Base) SetErrorHTML(msg template.HTML) {
	b.Error = msg
}

// Option is one <option> in a select.
type Option struct {
	Value    string
	Label    string
	Selected bool
}

// Options builds select options from items, marking the one whose value
// equals selected.
func Options[T any](items []T, value func(T) string, label func(T) string, selected string) []Option {
	out := make([]Option, 0, len(items))
	for _, it := range items {
		v := value(it)
		out = append(out, Option{Value: v, Label: label(it), Selected: v == selected})
	}
	return out
}

// StringOptions builds options whose value and label are the same string.
func StringOptions(values []string, selected string) []Option {
	return Options(values, func(s string) string { return s }, func(s string) string { return s }, selected)
}

// IntValue renders an id for use as an option value; 0 renders as "".
func IntValue(n int) string {
	if n == 0 {
		return ""
	}
	return strconv.Itoa(n)
}

// ParseID reads a positive integer id from a form value; anything else is 0.
func ParseID(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0
	}
	return n
}
