package bench

import (
	"fmt"
	"testing"

	"github.com/kochabx/keysort/dataset"
	"github.com/kochabx/keysort/sortkey"
)

// Strategy names a benchmarked operation.
type Strategy string

const (
	// OnlyClone measures the clone every sorting case pays, so it can be
	// subtracted from the others.
	OnlyClone       Strategy = "only_clone"
	SortByKey       Strategy = "sort_by_key"
	SortByCachedKey Strategy = "sort_by_cached_key"
	ParseThenSort   Strategy = "parse_then_sort"
)

// Strategies lists every strategy in reporting order.
var Strategies = []Strategy{OnlyClone, SortByKey, SortByCachedKey, ParseThenSort}

// ParseStrategy resolves a strategy name.
func ParseStrategy(s string) (Strategy, error) {
	for _, st := range Strategies {
		if string(st) == s {
			return st, nil
		}
	}
	return "", fmt.Errorf("unknown strategy %q", s)
}

// Package level sinks keep the compiler from discarding benchmarked work.
var (
	sinkLen int
	sinkMin int32
	sinkSet dataset.Dataset
)

// body returns the benchmark loop for st over input. The sorting strategies
// clone input on every iteration; parse_then_sort reads it directly.
func body(st Strategy, input dataset.Dataset) func(*testing.B) {
	switch st {
	case OnlyClone:
		return func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				sinkSet = input.Clone()
			}
		}
	case SortByKey:
		return func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				sinkLen, _ = sortkey.SortByKey(input.Clone())
			}
		}
	case SortByCachedKey:
		return func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				sinkLen, _ = sortkey.SortByCachedKey(input.Clone())
			}
		}
	case ParseThenSort:
		return func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				sinkMin, _ = sortkey.ParseThenSort(input)
			}
		}
	default:
		return nil
	}
}
