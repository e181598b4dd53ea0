// Package dataset builds the numeric-string inputs that the sort strategies
// are compared on.
package dataset

import (
	"math/rand/v2"
	"slices"

	"github.com/kochabx/keysort/core/util/convert"
)

// Dataset is an ordered sequence of decimal encoded signed integers.
// Sort strategies reorder it in place.
type Dataset []string

// Clone returns an independent copy of d.
func (d Dataset) Clone() Dataset {
	if d == nil {
		return nil
	}
	return slices.Clone(d)
}

// Source supplies the random bits a Generator draws values from.
// *rand.Rand from math/rand/v2 satisfies it.
type Source interface {
	Uint32() uint32
}

// Generator produces datasets of uniformly distributed int32 values.
type Generator struct {
	src Source
}

// New returns a Generator drawing from src. A nil src selects a
// process-seeded source.
func New(src Source) *Generator {
	if src == nil {
		src = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Generator{src: src}
}

// NewSeeded returns a Generator whose output is fully determined by seed.
func NewSeeded(seed uint64) *Generator {
	return New(rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)))
}

// Make returns n strings, each encoding an independent draw over the full
// int32 range. Negative n yields an empty dataset.
func (g *Generator) Make(n int) Dataset {
	if n < 0 {
		n = 0
	}
	d := make(Dataset, n)
	for i := range d {
		d[i] = convert.FormatString(int32(g.src.Uint32()))
	}
	return d
}

// Ints returns n raw draws; FromInts(Ints(n)) equals Make(n) on an
// identically seeded generator.
func (g *Generator) Ints(n int) []int32 {
	if n < 0 {
		n = 0
	}
	values := make([]int32, n)
	for i := range values {
		values[i] = int32(g.src.Uint32())
	}
	return values
}

// FromInts converts values to a Dataset in order.
func FromInts(values []int32) Dataset {
	return Dataset(convert.FormatStrings(values))
}

// Make draws n values from a process-seeded source.
func Make(n int) Dataset {
	return New(nil).Make(n)
}
