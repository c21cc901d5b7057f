package listview

import (
	"cmp"
	"sort"
	"time"
)

// Kind says how a sort field compares.
type Kind int

const (
	KindString Kind = iota // case-sensitive lexicographic
	KindNumber
	KindTime
)

type number interface {
	~int | ~int32 | ~int64 | ~float64
}

// SortField is one sortable key of a view and its comparator.
type SortField[T any] struct {
	Key  string
	Kind Kind

	str func(T) string
	num func(T) float64
	tm  func(T) time.Time
}

// ByString declares a lexicographic sort on f.
func ByString[T any](key string, f func(T) string) SortField[T] {
	return SortField[T]{Key: key, Kind: KindString, str: f}
}

// ByNumber declares a numeric sort on f.
func ByNumber[T any, N number](key string, f func(T) N) SortField[T] {
	return SortField[T]{Key: key, Kind: KindNumber, num: func(v T) float64 { return float64(f(v)) }}
}

// ByTime declares a chronological sort on f. Zero times sort first.
func ByTime[T any](key string, f func(T) time.Time) SortField[T] {
	return SortField[T]{Key: key, Kind: KindTime, tm: f}
}

// Compare returns -1, 0 or +1 ordering a before, equal to, or after b.
func (f SortField[T]) Compare(a, b T) int {
	switch f.Kind {
	case KindNumber:
		return cmp.Compare(f.num(a), f.num(b))
	case KindTime:
		return f.tm(a).Compare(f.tm(b))
	default:
		return cmp.Compare(f.str(a), f.str(b))
	}
}

// SortStable sorts items in place by f. Descending negates the comparison,
// so records with equal keys keep their relative order in both directions.
func SortStable[T any](items []T, f SortField[T], dir Dir) {
	sign := 1
	if dir == Desc {
		sign = -1
	}
	sort.SliceStable(items, func(i, j int) bool {
		return sign*f.Compare(items[i], items[j]) < 0
	})
}
