// internal/app/system/paging/paging.go
package paging

import (
	"net/http"
	"strconv"

	"github.com/dalemusser/waffle/pantry/query"
)

// PageSize is the number of rows shown per page in the master lists.
const PageSize = 5

// ParsePage extracts the 1-based "page" query parameter.
// Returns 1 if not present, invalid, or less than 1.
func ParsePage(r *http.Request) int {
	return Clamp(atoiOr(query.Get(r, "page"), 1))
}

// Clamp treats any page below 1 as page 1.
func Clamp(page int) int {
	if page < 1 {
		return 1
	}
	return page
}

// TotalPages returns ceil(n/size). Zero items gives zero pages.
// A non-positive size is treated as PageSize.
func TotalPages(n, size int) int {
	if size <= 0 {
		size = PageSize
	}
	if n <= 0 {
		return 0
	}
	return (n + size - 1) / size
}

// Bounds returns the half-open [lo, hi) window of page within n items.
// Pages past the end yield lo == hi == n, an empty window.
func Bounds(page, n, size int) (lo, hi int) {
	if size <= 0 {
		size = PageSize
	}
	page = Clamp(page)
	lo = (page - 1) * size
	if lo > n || lo < 0 {
		return n, n
	}
	hi = lo + size
	if hi > n {
		hi = n
	}
	return lo, hi
}

// Slice returns the items on page. The result shares storage with items.
func Slice[T any](items []T, page, size int) []T {
	lo, hi := Bounds(page, len(items), size)
	return items[lo:hi]
}

// Range holds computed display values for a paged list.
type Range struct {
	Start      int // 1-based index of the first row shown (0 if none)
	End        int // 1-based index of the last row shown (0 if none)
	Total      int
	Page       int
	TotalPages int
	HasPrev    bool
	HasNext    bool
	PrevPage   int
	NextPage   int
}

// ComputeRange calculates display range values for page of n items.
func ComputeRange(page, n, size int) Range {
	page = Clamp(page)
	lo, hi := Bounds(page, n, size)
	total := TotalPages(n, size)
	r := Range{
		Total:      n,
		Page:       page,
		TotalPages: total,
		HasPrev:    page > 1,
		HasNext:    page < total,
		PrevPage:   Clamp(page - 1),
		NextPage:   page + 1,
	}
	if hi > lo {
		r.Start = lo + 1
		r.End = hi
	}
	return r
}

func atoiOr(s string, def int) int {
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}
