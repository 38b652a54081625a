// Package rank orders and windows record lists for display: most-recent-N
// views over the server's recency order, and top-N-by-amount views.
package rank

import (
	"sort"

	"donordrive-tracker/internal/model"
)

// Window returns the first n records of a recency-ordered list. The input
// is never re-sorted or mutated; n larger than the list returns everything.
func Window[T any](records []T, n int) []T {
	if n < 0 {
		n = 0
	}
	if n > len(records) {
		n = len(records)
	}
	out := make([]T, n)
	copy(out, records)
	return out
}

// TopN returns up to n records sorted descending by amount. Ties keep the
// arrival order of the source list. Records without an amount are excluded.
// The input list is not mutated.
func TopN[T model.Entry](records []T, n int) []T {
	ranked := make([]T, 0, len(records))
	for _, r := range records {
		if _, ok := r.EntryAmount(); ok {
			ranked = append(ranked, r)
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		a, _ := ranked[i].EntryAmount()
		b, _ := ranked[j].EntryAmount()
		return a.GreaterThan(b)
	})
	if n < 0 {
		n = 0
	}
	if n > len(ranked) {
		n = len(ranked)
	}
	return ranked[:n]
}

// Top returns the single highest-amount record.
func Top[T model.Entry](records []T) (T, bool) {
	top := TopN(records, 1)
	if len(top) == 0 {
		var zero T
		return zero, false
	}
	return top[0], true
}

// MostRecent returns the first record in recency order.
func MostRecent[T any](records []T) (T, bool) {
	if len(records) == 0 {
		var zero T
		return zero, false
	}
	return records[0], true
}
