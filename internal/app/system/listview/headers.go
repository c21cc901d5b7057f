package listview

// HeaderCell is one column heading on a list page.
type HeaderCell struct {
	Label    string
	Sortable bool
	Active   bool
	Dir      Dir
	Href     string
}

// HeaderCells builds the heading row for a list page at path. Each sortable
// heading links to the state a click would produce; q and page are kept.
func HeaderCells[T any](cols []Column[T], st State, path string) []HeaderCell {
	cells := make([]HeaderCell, len(cols))
	for i, c := range cols {
		cell := HeaderCell{Label: c.Header}
		if c.SortKey != "" {
			cell.Sortable = true
			cell.Href = st.ToggleSort(c.SortKey).Href(path)
			if st.Sort.Key == c.SortKey {
				cell.Active = true
				cell.Dir = st.Sort.Dir
			}
		}
		cells[i] = cell
	}
	return cells
}

// Pager holds the prev/next links for a list page.
type Pager struct {
	PrevHref string
	NextHref string
}

// PagerLinks builds prev/next links for res at path. Links are empty when
// there is no such page.
func PagerLinks[T any](res Result[T], path string) Pager {
	var p Pager
	if res.Range.HasPrev {
		p.PrevHref = res.State.WithPage(res.Range.PrevPage).Href(path)
	}
	if res.Range.HasNext {
		p.NextHref = res.State.WithPage(res.Range.NextPage).Href(path)
	}
	return p
}
