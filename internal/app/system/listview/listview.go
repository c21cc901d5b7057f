// Package listview derives the visible page of a master list from a fully
// fetched collection.
//
// Each request runs the same pipeline over a copy of the records: stable sort
// by the requested key, keep records where any searchable field contains the
// query, then cut out the requested page. The same filtered slice feeds the
// CSV export, so an export always holds every matching record.
package listview

import (
	"github.com/dalemusser/schooladmin/internal/app/system/paging"
	"github.com/dalemusser/schooladmin/internal/app/system/search"
)

// Column is one exported/displayed column.
// SortKey is empty for columns that cannot be sorted.
type Column[T any] struct {
	Header  string
	SortKey string
	Value   func(T) string
}

// Spec describes one list view.
type Spec[T any] struct {
	PageSize    int
	DefaultSort Sort
	SortFields  []SortField[T]
	// Search returns the values a query is matched against, including
	// names resolved through a reference index.
	Search  func(T) []string
	Columns []Column[T]
	// Export is the CSV projection. Nil means the display columns.
	Export []Column[T]
	// Key identifies a record for row actions such as delete. Optional.
	Key func(T) string
}

// Result is one derived page plus what the template needs to draw it.
type Result[T any] struct {
	State    State
	Filtered []T
	Items    []T
	Range    paging.Range
}

// Field returns the sort field registered under key.
func (sp Spec[T]) Field(key string) (SortField[T], bool) {
	for _, f := range sp.SortFields {
		if f.Key == key {
			return f, true
		}
	}
	return SortField[T]{}, false
}

// Normalize replaces an unknown sort key with the default sort, fills a
// missing direction with ascending, and clamps the page.
func (sp Spec[T]) Normalize(st State) State {
	if _, ok := sp.Field(st.Sort.Key); !ok {
		st.Sort = sp.DefaultSort
	} else if st.Sort.Dir == "" {
		st.Sort.Dir = Asc
	}
	st.Page = paging.Clamp(st.Page)
	return st
}

// Run sorts, filters and pages items for st. items is not modified.
func (sp Spec[T]) Run(items []T, st State) Result[T] {
	st = sp.Normalize(st)

	sorted := make([]T, len(items))
	copy(sorted, items)
	if f, ok := sp.Field(st.Sort.Key); ok {
		SortStable(sorted, f, st.Sort.Dir)
	}

	filtered := Filter(sorted, st.Query, sp.Search)
	size := sp.pageSize()
	return Result[T]{
		State:    st,
		Filtered: filtered,
		Items:    paging.Slice(filtered, st.Page, size),
		Range:    paging.ComputeRange(st.Page, len(filtered), size),
	}
}

// ExportColumns returns the columns written by a CSV export.
func (sp Spec[T]) ExportColumns() []Column[T] {
	if sp.Export != nil {
		return sp.Export
	}
	return sp.Columns
}

func (sp Spec[T]) pageSize() int {
	if sp.PageSize > 0 {
		return sp.PageSize
	}
	return paging.PageSize
}

// Filter returns a new slice of the items where any searchable field
// contains query after case folding. An empty query keeps everything.
func Filter[T any](items []T, query string, fields func(T) []string) []T {
	folded := search.Normalize(query)
	out := make([]T, 0, len(items))
	for _, it := range items {
		if folded == "" || fields == nil || search.Matches(folded, fields(it)...) {
			out = append(out, it)
		}
	}
	return out
}
