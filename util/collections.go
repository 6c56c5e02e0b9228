package util

import (
	"cmp"
	"maps"
	"slices"
)

// Map applies fn to every element of s, in order.
func Map[S ~[]E, E, R any](s S, fn func(E) R) []R {
	out := make([]R, 0, len(s))
	for _, e := range s {
		out = append(out, fn(e))
	}
	return out
}

// Filter returns a copy of s holding only the elements keep accepts. The
// result is never nil for a non-nil s.
func Filter[S ~[]E, E any](s S, keep func(E) bool) S {
	return slices.DeleteFunc(slices.Clone(s), func(e E) bool { return !keep(e) })
}

// SortedKeys returns the keys of m in ascending order.
func SortedKeys[M ~map[K]V, K cmp.Ordered, V any](m M) []K {
	return slices.Sorted(maps.Keys(m))
}
