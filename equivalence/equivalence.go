// Package equivalence checks that the sort strategies in sortkey agree.
package equivalence

import (
	"strconv"
	"strings"

	"github.com/pmezard/go-difflib/difflib"

	"github.com/kochabx/keysort/core/util/convert"
	"github.com/kochabx/keysort/dataset"
	"github.com/kochabx/keysort/errors"
	"github.com/kochabx/keysort/sortkey"
)

// Report describes a passing check.
type Report struct {
	Size int
	// Sorted is the common output of the in-place strategies.
	Sorted dataset.Dataset
	// Min is the ParseThenSort probe; HasMin is false for empty input.
	Min    int32
	HasMin bool
}

// Check runs every strategy on independent clones of src and reports an
// error of code CodeMismatch if they disagree. A malformed element aborts the
// check with the CodeInvalidNumber error raised by the strategy.
func Check(src dataset.Dataset) (report *Report, err error) {
	defer func() {
		if r := recover(); r != nil {
			ge, ok := r.(*errors.Error)
			if !ok {
				panic(r)
			}
			report, err = nil, ge
		}
	}()

	byKey := src.Clone()
	_, ok := sortkey.SortByKey(byKey)
	cached := src.Clone()
	sortkey.SortByCachedKey(cached)

	if i := firstDiff(byKey, cached); i >= 0 {
		return nil, mismatch("sort_by_key", byKey, "sort_by_cached_key", cached, i)
	}

	smallest, hasMin := sortkey.ParseThenSort(src)
	if hasMin != ok {
		return nil, errors.Mismatch("parse_then_sort probe presence %t disagrees with sort_by_key %t", hasMin, ok)
	}

	keys, err := convert.ParseStrings[int32](byKey)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInvalidNumber, "reinterpret sorted strings")
	}
	if hasMin && keys[0] != smallest {
		return nil, errors.Mismatch("parse_then_sort minimum %d differs from sort_by_key first element %q", smallest, byKey[0]).
			WithMetadata(map[string]string{"index": "0"})
	}

	parsed := dataset.FromInts(sortkey.ParseSorted(src))
	if i := firstDiff(dataset.FromInts(keys), parsed); i >= 0 {
		return nil, mismatch("sort_by_key", dataset.FromInts(keys), "parse_then_sort", parsed, i)
	}

	return &Report{
		Size:   len(src),
		Sorted: byKey,
		Min:    smallest,
		HasMin: hasMin,
	}, nil
}

// firstDiff returns the first index at which a and b differ, or -1.
func firstDiff(a, b dataset.Dataset) int {
	n := min(len(a), len(b))
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			return i
		}
	}
	if len(a) != len(b) {
		return n
	}
	return -1
}

func mismatch(nameA string, a dataset.Dataset, nameB string, b dataset.Dataset, index int) *errors.Error {
	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        lines(a),
		FromFile: nameA,
		B:        lines(b),
		ToFile:   nameB,
		Context:  3,
	})
	if err != nil {
		diff = err.Error()
	}
	return errors.Mismatch("%s and %s differ:\n%s", nameA, nameB, diff).
		WithMetadata(map[string]string{
			"index": strconv.Itoa(index),
			"size":  strconv.Itoa(len(a)),
		})
}

func lines(d dataset.Dataset) []string {
	out := make([]string, len(d))
	for i, s := range d {
		out[i] = strings.TrimRight(s, "\n") + "\n"
	}
	return out
}
