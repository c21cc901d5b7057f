// internal/app/system/search/search.go
package search

import (
	"strings"

	"github.com/dalemusser/waffle/pantry/text"
)

// Normalize trims the raw query and folds it for comparison.
// The empty string means "no filter".
func Normalize(q string) string {
	return text.Fold(strings.TrimSpace(q))
}

// Matches reports whether any field contains the folded query as a
// substring. An empty query matches everything. Empty fields never match a
// non-empty query.
//
// folded must already be passed through Normalize.
func Matches(folded string, fields ...string) bool {
	if folded == "" {
		return true
	}
	for _, f := range fields {
		if f == "" {
			continue
		}
		if strings.Contains(text.Fold(f), folded) {
			return true
		}
	}
	return false
}
