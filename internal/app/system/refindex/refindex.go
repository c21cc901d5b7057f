// Package refindex turns foreign-key ids into display names.
//
// An Index is built once per fetched collection and then consulted per row,
// so resolving a reference is a map lookup instead of a scan.
package refindex

// Missing is shown for any id the index does not hold.
const Missing = "N/A"

// Index maps record id to display name.
type Index map[int]string

// Build indexes items by id. When two items share an id the first one wins.
func Build[T any](items []T, id func(T) int, name func(T) string) Index {
	idx := make(Index, len(items))
	for _, it := range items {
		k := id(it)
		if _, dup := idx[k]; dup {
			continue
		}
		idx[k] = name(it)
	}
	return idx
}

// Resolve returns the name for id, or Missing. A nil Index resolves
// everything to Missing.
func (idx Index) Resolve(id int) string {
	if name, ok := idx[id]; ok {
		return name
	}
	return Missing
}
