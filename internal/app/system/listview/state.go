package listview

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/dalemusser/schooladmin/internal/app/system/paging"
	"github.com/dalemusser/waffle/pantry/query"
)

// Dir is a sort direction.
type Dir string

const (
	Asc  Dir = "asc"
	Desc Dir = "desc"
)

// ParseDir accepts "asc" or "desc" in any case.
func ParseDir(s string) (Dir, bool) {
	switch Dir(strings.ToLower(strings.TrimSpace(s))) {
	case Asc:
		return Asc, true
	case Desc:
		return Desc, true
	}
	return "", false
}

// Sort is the active sort key and direction.
type Sort struct {
	Key string
	Dir Dir
}

// State is what one list page was asked for: the raw search text, the sort,
// and the 1-based page. It round-trips through the query string.
type State struct {
	Query string
	Sort  Sort
	Page  int
}

// WithQuery changes the search text and goes back to page 1.
func (s State) WithQuery(q string) State {
	s.Query = q
	s.Page = 1
	return s
}

// ToggleSort flips to descending when key is already the ascending sort key;
// any other click sorts key ascending. The page is left alone.
func (s State) ToggleSort(key string) State {
	if s.Sort.Key == key && s.Sort.Dir == Asc {
		s.Sort.Dir = Desc
		return s
	}
	s.Sort = Sort{Key: key, Dir: Asc}
	return s
}

// WithPage moves to page p (clamped to 1).
func (s State) WithPage(p int) State {
	s.Page = paging.Clamp(p)
	return s
}

// Values encodes s as q/sort/dir/page. Empty and default values are omitted
// so links stay short.
func (s State) Values() url.Values {
	v := url.Values{}
	if s.Query != "" {
		v.Set("q", s.Query)
	}
	if s.Sort.Key != "" {
		v.Set("sort", s.Sort.Key)
		v.Set("dir", string(s.Sort.Dir))
	}
	if s.Page > 1 {
		v.Set("page", strconv.Itoa(s.Page))
	}
	return v
}

// Href returns path with s encoded as its query string.
func (s State) Href(path string) string {
	enc := s.Values().Encode()
	if enc == "" {
		return path
	}
	return path + "?" + enc
}

// ParseState reads q/sort/dir/page from r. Validation against a Spec
// happens in Spec.Normalize.
func ParseState(r *http.Request) State {
	st := State{
		Query: query.Search(r, "q"),
		Sort:  Sort{Key: query.Get(r, "sort")},
		Page:  paging.ParsePage(r),
	}
	if d, ok := ParseDir(query.Get(r, "dir")); ok {
		st.Sort.Dir = d
	}
	return st
}
