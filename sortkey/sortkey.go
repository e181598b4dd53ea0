// Package sortkey implements three ways of ordering numeric strings by their
// integer value. They are kept as separate operations because comparing their
// cost is the point of the harness.
package sortkey

import (
	"cmp"
	"slices"

	"github.com/kochabx/keysort/dataset"
)

// SortByKey sorts d in place by Key, parsing both operands inside the
// comparator on every comparison. Equal keys keep their input order.
//
// The probe is the byte length of the new first element; ok is false when d
// is empty.
func SortByKey(d dataset.Dataset) (probe int, ok bool) {
	sortByKey(d, Key)
	return firstLen(d)
}

// SortByCachedKey sorts d in place by Key, parsing every element exactly once
// before any comparison. The resulting order is identical to SortByKey.
func SortByCachedKey(d dataset.Dataset) (probe int, ok bool) {
	sortByCachedKey(d, Key)
	return firstLen(d)
}

// ParseThenSort parses d into integers, sorts them and returns the smallest.
// d is not modified.
func ParseThenSort(d dataset.Dataset) (probe int32, ok bool) {
	parsed := ParseSorted(d)
	if len(parsed) == 0 {
		return 0, false
	}
	return parsed[0], true
}

// ParseSorted returns the keys of d in ascending order.
func ParseSorted(d dataset.Dataset) []int32 {
	parsed := make([]int32, len(d))
	for i, s := range d {
		parsed[i] = Key(s)
	}
	slices.Sort(parsed)
	return parsed
}

func sortByKey(d dataset.Dataset, key keyFunc) {
	slices.SortStableFunc(d, func(a, b string) int {
		return cmp.Compare(key(a), key(b))
	})
}

// cachedKey pairs a key with the position it was computed from. The position
// breaks ties so the unstable sort below yields a stable order.
type cachedKey struct {
	key   int32
	index int
}

func sortByCachedKey(d dataset.Dataset, key keyFunc) {
	keys := make([]cachedKey, len(d))
	for i, s := range d {
		keys[i] = cachedKey{key: key(s), index: i}
	}
	if len(keys) < 2 {
		return
	}

	slices.SortFunc(keys, func(a, b cachedKey) int {
		if c := cmp.Compare(a.key, b.key); c != 0 {
			return c
		}
		return cmp.Compare(a.index, b.index)
	})

	// Apply the permutation in place. Position i receives the element that was
	// originally at keys[i].index; slots before i have already been filled, so
	// an index below i is chased through the swaps recorded so far.
	for i := range keys {
		index := keys[i].index
		for index < i {
			index = keys[index].index
		}
		keys[i].index = index
		d[i], d[index] = d[index], d[i]
	}
}

func firstLen(d dataset.Dataset) (int, bool) {
	if len(d) == 0 {
		return 0, false
	}
	return len(d[0]), true
}
