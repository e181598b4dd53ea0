package bench

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kochabx/keysort/dataset"
	"github.com/kochabx/keysort/errors"
	"github.com/kochabx/keysort/log"
)

// fakeBenchmark runs fn once for real so the body is exercised, then reports
// fixed numbers.
func fakeBenchmark(f func(*testing.B)) testing.BenchmarkResult {
	f(&testing.B{N: 1})
	return testing.BenchmarkResult{N: 100, T: time.Millisecond, MemAllocs: 200, MemBytes: 1600}
}

func TestRun(t *testing.T) {
	var buf bytes.Buffer
	m := NewMetrics("keysort")
	r := NewRunner(
		WithGenerator(dataset.NewSeeded(1)),
		WithBenchmarker(fakeBenchmark),
		WithMetrics(m),
		WithLogger(log.NewWriter(&buf)),
		WithVerify(true),
	)

	results, err := r.Run(context.Background(), []int{0, 10, 1000})
	require.NoError(t, err)
	require.Len(t, results, 3*len(Strategies))

	for i, res := range results {
		assert.Equal(t, Strategies[i%len(Strategies)], res.Strategy)
		assert.Equal(t, []int{0, 10, 1000}[i/len(Strategies)], res.Size)
		assert.Equal(t, 100, res.N)
		assert.Equal(t, int64(10_000), res.NsPerOp)
		assert.Equal(t, int64(2), res.AllocsPerOp)
		assert.Equal(t, int64(16), res.BytesPerOp)
	}

	assert.Equal(t, 10_000.0, testutil.ToFloat64(m.nsPerOp.WithLabelValues("sort_by_cached_key", "1000")))
	assert.Equal(t, 12, testutil.CollectAndCount(m.nsPerOp))
	assert.Contains(t, buf.String(), `"strategy":"parse_then_sort"`)
}

func TestRunStrategiesSubset(t *testing.T) {
	r := NewRunner(
		WithBenchmarker(fakeBenchmark),
		WithStrategies(SortByKey),
		WithLogger(log.NewWriter(&bytes.Buffer{})),
	)

	results, err := r.Run(context.Background(), []int{SmallSize})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, SortByKey, results[0].Strategy)
}

func TestRunCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := NewRunner(WithBenchmarker(fakeBenchmark), WithLogger(log.NewWriter(&bytes.Buffer{})))
	results, err := r.Run(ctx, DefaultSizes)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, results)
}

func TestRunUnknownStrategy(t *testing.T) {
	r := NewRunner(
		WithBenchmarker(fakeBenchmark),
		WithStrategies(Strategy("bubble")),
		WithLogger(log.NewWriter(&bytes.Buffer{})),
	)
	_, err := r.Run(context.Background(), []int{SmallSize})
	assert.Error(t, err)
}

func TestRunReal(t *testing.T) {
	if testing.Short() {
		t.Skip("runs a real timed benchmark")
	}
	r := NewRunner(WithStrategies(SortByCachedKey), WithLogger(log.NewWriter(&bytes.Buffer{})))

	results, err := r.Run(context.Background(), []int{SmallSize})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Positive(t, results[0].N)
	assert.Positive(t, results[0].NsPerOp)
}

func TestVerifyKeepsCode(t *testing.T) {
	require.NoError(t, verify(dataset.Dataset{"3", "-1", "2"}))

	err := verify(dataset.Dataset{"3", "x", "2"})
	require.Error(t, err)
	assert.Equal(t, errors.CodeInvalidNumber, errors.FromError(err).GetCode())
	assert.False(t, errors.IsCode(err, errors.CodeMismatch))
	assert.Contains(t, err.Error(), "verify size 3")
}

func TestNetNsPerOp(t *testing.T) {
	results := []Result{
		{Strategy: OnlyClone, Size: 10, NsPerOp: 50},
		{Strategy: SortByKey, Size: 10, NsPerOp: 300},
		{Strategy: SortByCachedKey, Size: 10, NsPerOp: 40},
		{Strategy: ParseThenSort, Size: 10, NsPerOp: 120},
		{Strategy: SortByKey, Size: 1000, NsPerOp: 9000},
	}

	assert.Equal(t, int64(250), NetNsPerOp(results, results[1]))
	assert.Equal(t, int64(0), NetNsPerOp(results, results[2]))
	assert.Equal(t, int64(120), NetNsPerOp(results, results[3]))
	assert.Equal(t, int64(9000), NetNsPerOp(results, results[4]))
	assert.Equal(t, int64(50), NetNsPerOp(results, results[0]))
}

func TestParseStrategy(t *testing.T) {
	st, err := ParseStrategy("parse_then_sort")
	require.NoError(t, err)
	assert.Equal(t, ParseThenSort, st)

	_, err = ParseStrategy("quick")
	assert.Error(t, err)
}

func TestWriteTextfile(t *testing.T) {
	m := NewMetrics("keysort")
	m.Observe(Result{Strategy: SortByKey, Size: 10, N: 5, NsPerOp: 123})

	path := filepath.Join(t.TempDir(), "bench.prom")
	require.NoError(t, m.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `keysort_ns_per_op{size="10",strategy="sort_by_key"} 123`)
}
