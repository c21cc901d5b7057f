package listview

import (
	"strings"

	"github.com/dalemusser/schooladmin/internal/app/system/paging"
)

// Row is one rendered table row. Number is the 1-based position in the
// filtered list, so numbering continues across pages.
type Row struct {
	Number int
	Key    string
	Cells  []string
}

// View is the template-facing form of a Result.
type View struct {
	Path       string
	Query      string
	Headers    []HeaderCell
	Rows       []Row
	Range      paging.Range
	Pager      Pager
	ExportHref string
	// Target is the id of the element an HTMX search swaps. Optional.
	Target string
	// Self links back to this exact page; row actions use it as the return URL.
	Self string
	// Keep is the state a new search carries over: the active sort, never
	// the page.
	Keep []Field
}

// Field is one hidden form input.
type Field struct {
	Name  string
	Value string
}

// searchFields returns the hidden inputs for the search form of st.
func searchFields(st State) []Field {
	next := st.WithQuery("")
	if next.Sort.Key == "" {
		return nil
	}
	return []Field{
		{Name: "sort", Value: next.Sort.Key},
		{Name: "dir", Value: string(next.Sort.Dir)},
	}
}

// View builds the template data for res drawn at path.
func (sp Spec[T]) View(res Result[T], path string) View {
	rows := make([]Row, len(res.Items))
	for i, it := range res.Items {
		cells := make([]string, len(sp.Columns))
		for j, c := range sp.Columns {
			cells[j] = c.Value(it)
		}
		rows[i] = Row{Number: res.Range.Start + i, Cells: cells}
		if sp.Key != nil {
			rows[i].Key = sp.Key(it)
		}
	}
	return View{
		Path:       path,
		Query:      res.State.Query,
		Headers:    HeaderCells(sp.Columns, res.State, path),
		Rows:       rows,
		Range:      res.Range,
		Pager:      PagerLinks(res, path),
		ExportHref: res.State.WithPage(1).Href(strings.TrimSuffix(path, "/") + "/export.csv"),
		Self:       res.State.Href(path),
		Keep:       searchFields(res.State),
	}
}
