// Package util provides small generic helpers used across posy packages.
package util

import "sort"

// CustomComparable is a type that knows how to check itself for equality
// against arbitrary other values.
type CustomComparable interface {
	Equal(other any) bool
}

// Ordered is any type usable as a sortable map key in this codebase.
type Ordered interface {
	~int | ~int32 | ~int64 | ~string
}

// OrderedKeys returns the keys of m in sorted order. Use this instead of
// ranging over a map directly anywhere iteration order can reach output.
func OrderedKeys[K Ordered, V any](m map[K]V) []K {
	keys := make([]K, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		return keys[i] < keys[j]
	})

	return keys
}

// EqualSlices checks that both slices have the same number of elements and
// that each element of sl1 is Equal to the element of sl2 at the same index.
func EqualSlices[T CustomComparable](sl1 []T, sl2 []T) bool {
	if len(sl1) != len(sl2) {
		return false
	}

	for i := range sl1 {
		if !sl1[i].Equal(sl2[i]) {
			return false
		}
	}

	return true
}
