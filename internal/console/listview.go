// Package console implements the view-state stores behind the customer
// and training pages: the fetched base collections, the search term and
// sort parameters, the derived filtered+sorted projection, and the
// modal form sessions.
//
// The projection shown to the user is always a pure function of
// (base collection, search term, sort key, sort direction). It is
// recomputed whenever any of those change and never mutated in place.
package console

import (
	"sort"
	"strings"
	"sync"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Searchable is a record exposing the scalar values free-text search
// matches against.
type Searchable interface {
	SearchValues() []string
}

// Filter returns the subsequence of records whose scalar values contain
// term, case-insensitively. An empty term matches every record. The
// input slice is never mutated.
func Filter[T Searchable](records []T, term string) []T {
	term = strings.ToLower(term)
	if term == "" {
		return append([]T(nil), records...)
	}

	matched := make([]T, 0, len(records))
	for _, r := range records {
		for _, v := range r.SearchValues() {
			if strings.Contains(strings.ToLower(v), term) {
				matched = append(matched, r)
				break
			}
		}
	}
	return matched
}

// SortDirection is the order applied to a sort key.
type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// SortState holds the active sort key and direction.
type SortState struct {
	Key       string
	Direction SortDirection
}

// Click returns the sort state after a header click: clicking the
// active key toggles the direction, clicking a different key resets to
// ascending.
func (s SortState) Click(key string) SortState {
	if s.Key == key && s.Direction == SortAsc {
		return SortState{Key: key, Direction: SortDesc}
	}
	return SortState{Key: key, Direction: SortAsc}
}

// OrderBy returns a sorted copy of records. The less function defines
// ascending order; descending order inverts it. sort.SliceStable keeps
// results repeatable for equal keys.
func OrderBy[T any](records []T, less func(a, b T) bool, dir SortDirection) []T {
	out := append([]T(nil), records...)
	if less == nil {
		return out
	}
	cmp := less
	if dir == SortDesc {
		cmp = func(a, b T) bool { return less(b, a) }
	}
	sort.SliceStable(out, func(i, j int) bool { return cmp(out[i], out[j]) })
	return out
}

var (
	collatorMu sync.Mutex
	collator   = collate.New(language.Und, collate.IgnoreCase)
)

// CompareStrings compares two strings with locale-aware, case-folded
// collation. Missing field values arrive as empty strings and sort
// before any non-empty value in ascending order.
func CompareStrings(a, b string) int {
	collatorMu.Lock()
	defer collatorMu.Unlock()
	return collator.CompareString(a, b)
}

// LessStrings reports whether a orders before b under CompareStrings.
func LessStrings(a, b string) bool {
	return CompareStrings(a, b) < 0
}
