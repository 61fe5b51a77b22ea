package engine

import (
	"cmp"
	"slices"
)

// Ranked is anything the overlap resolver can order: an interval, a score, and
// a repeat unit length.
type Ranked interface {
	bounds() (start, end int)
	rank() int
	unit() int
}

// compareRanked orders by start ascending, score descending, length descending,
// then unit ascending. It is a total order over distinct intervals, so the
// sorted result does not depend on input order.
func compareRanked[T Ranked](a, b T) int {
	as, ae := a.bounds()
	bs, be := b.bounds()
	if c := cmp.Compare(as, bs); c != 0 {
		return c
	}
	if c := cmp.Compare(b.rank(), a.rank()); c != 0 {
		return c
	}
	if c := cmp.Compare(be-bs, ae-as); c != 0 {
		return c
	}
	return cmp.Compare(a.unit(), b.unit())
}

// Resolve sorts items and sweeps left to right, keeping an item only when it
// starts at or after the end of the last kept one. The selection is maximal
// and left-biased; it is not guaranteed to maximize total score.
//
// items is sorted in place; the returned slice is freshly allocated.
func Resolve[T Ranked](items []T) []T {
	if len(items) == 0 {
		return nil
	}
	slices.SortFunc(items, compareRanked[T])
	out := make([]T, 0, len(items))
	lastEnd := 0
	for _, it := range items {
		s, e := it.bounds()
		if s < lastEnd {
			continue
		}
		out = append(out, it)
		lastEnd = e
	}
	return out
}
