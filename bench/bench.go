// Package bench times the sortkey strategies at several input sizes.
package bench

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/kochabx/keysort/dataset"
	"github.com/kochabx/keysort/equivalence"
	"github.com/kochabx/keysort/errors"
	"github.com/kochabx/keysort/log"
)

// Default sizes for the small, medium and large cases.
const (
	SmallSize  = 10
	MediumSize = 1000
	LargeSize  = 100_000
)

// DefaultSizes lists the three standard case sizes.
var DefaultSizes = []int{SmallSize, MediumSize, LargeSize}

// Result is the measurement of one strategy at one size.
type Result struct {
	Strategy    Strategy      `json:"strategy"`
	Size        int           `json:"size"`
	N           int           `json:"n"`
	NsPerOp     int64         `json:"ns_per_op"`
	BytesPerOp  int64         `json:"bytes_per_op"`
	AllocsPerOp int64         `json:"allocs_per_op"`
	Elapsed     time.Duration `json:"elapsed"`
}

// Benchmarker runs a benchmark function to completion.
type Benchmarker func(func(*testing.B)) testing.BenchmarkResult

var initTesting sync.Once

// Runner drives the benchmark cases.
type Runner struct {
	gen        *dataset.Generator
	metrics    *Metrics
	logger     *log.Logger
	benchmark  Benchmarker
	verify     bool
	strategies []Strategy
}

// Option configures a Runner
type Option func(*Runner)

// WithGenerator sets the dataset generator; the default is process seeded.
func WithGenerator(g *dataset.Generator) Option {
	return func(r *Runner) {
		r.gen = g
	}
}

// WithMetrics records every result in m.
func WithMetrics(m *Metrics) Option {
	return func(r *Runner) {
		r.metrics = m
	}
}

// WithLogger sets the logger; the default is log.G.
func WithLogger(l *log.Logger) Option {
	return func(r *Runner) {
		r.logger = l
	}
}

// WithBenchmarker replaces testing.Benchmark.
func WithBenchmarker(b Benchmarker) Option {
	return func(r *Runner) {
		r.benchmark = b
	}
}

// WithVerify runs the equivalence check on every case input before timing it.
func WithVerify(verify bool) Option {
	return func(r *Runner) {
		r.verify = verify
	}
}

// WithStrategies restricts the run to the given strategies.
func WithStrategies(strategies ...Strategy) Option {
	return func(r *Runner) {
		if len(strategies) > 0 {
			r.strategies = strategies
		}
	}
}

// NewRunner creates a Runner.
func NewRunner(opts ...Option) *Runner {
	r := &Runner{
		benchmark:  testing.Benchmark,
		strategies: Strategies,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.gen == nil {
		r.gen = dataset.New(nil)
	}
	if r.logger == nil {
		r.logger = log.G
	}
	return r
}

// Run benchmarks every strategy at every size. The input of a size is
// generated once and shared by its strategies. ctx is checked between
// cases; a running case always completes.
func (r *Runner) Run(ctx context.Context, sizes []int) ([]Result, error) {
	initTesting.Do(testing.Init)

	results := make([]Result, 0, len(sizes)*len(r.strategies))
	for _, size := range sizes {
		input := r.gen.Make(size)

		if r.verify {
			if err := verify(input); err != nil {
				return results, err
			}
		}

		for _, st := range r.strategies {
			if err := ctx.Err(); err != nil {
				return results, err
			}

			res, err := r.runCase(st, input)
			if err != nil {
				return results, err
			}
			results = append(results, res)

			if r.metrics != nil {
				r.metrics.Observe(res)
			}
			r.logger.Info().
				Str("strategy", string(res.Strategy)).
				Int("size", res.Size).
				Int("n", res.N).
				Int64("ns_per_op", res.NsPerOp).
				Int64("bytes_per_op", res.BytesPerOp).
				Int64("allocs_per_op", res.AllocsPerOp).
				Msg("benchmark case done")
		}
	}
	return results, nil
}

// verify checks that the strategies agree on input. The returned error keeps
// the code of the underlying failure.
func verify(input dataset.Dataset) error {
	if _, err := equivalence.Check(input); err != nil {
		return errors.Wrap(err, errors.FromError(err).GetCode(), "verify size %d", len(input))
	}
	return nil
}

func (r *Runner) runCase(st Strategy, input dataset.Dataset) (Result, error) {
	fn := body(st, input)
	if fn == nil {
		return Result{}, errors.InvalidConfig("unknown strategy %q", st)
	}

	br := r.benchmark(fn)
	return Result{
		Strategy:    st,
		Size:        len(input),
		N:           br.N,
		NsPerOp:     br.NsPerOp(),
		BytesPerOp:  br.AllocedBytesPerOp(),
		AllocsPerOp: br.AllocsPerOp(),
		Elapsed:     br.T,
	}, nil
}

// Baseline returns the only_clone result matching res's size, if present.
func Baseline(results []Result, size int) (Result, bool) {
	for _, r := range results {
		if r.Strategy == OnlyClone && r.Size == size {
			return r, true
		}
	}
	return Result{}, false
}

// NetNsPerOp is res.NsPerOp with the clone baseline of its size subtracted,
// floored at zero. parse_then_sort does not clone and is returned as is.
func NetNsPerOp(results []Result, res Result) int64 {
	if res.Strategy == OnlyClone || res.Strategy == ParseThenSort {
		return res.NsPerOp
	}
	base, ok := Baseline(results, res.Size)
	if !ok {
		return res.NsPerOp
	}
	return max(res.NsPerOp-base.NsPerOp, 0)
}
