package equivalence

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kochabx/keysort/dataset"
	"github.com/kochabx/keysort/errors"
	"github.com/kochabx/keysort/log"
)

func TestCheck(t *testing.T) {
	tests := []struct {
		name    string
		src     dataset.Dataset
		want    dataset.Dataset
		min     int32
		wantMin bool
	}{
		{
			name:    "scenario",
			src:     dataset.Dataset{"3", "-1", "2", "-1", "0"},
			want:    dataset.Dataset{"-1", "-1", "0", "2", "3"},
			min:     -1,
			wantMin: true,
		},
		{
			name: "empty",
			src:  dataset.Dataset{},
			want: dataset.Dataset{},
		},
		{
			name:    "single",
			src:     dataset.Dataset{"42"},
			want:    dataset.Dataset{"42"},
			min:     42,
			wantMin: true,
		},
		{
			name:    "duplicates",
			src:     dataset.Dataset{"-8", "-8", "-8"},
			want:    dataset.Dataset{"-8", "-8", "-8"},
			min:     -8,
			wantMin: true,
		},
		{
			name:    "reverse",
			src:     dataset.FromInts([]int32{5, 4, 3, 2, 1}),
			want:    dataset.FromInts([]int32{1, 2, 3, 4, 5}),
			min:     1,
			wantMin: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			orig := tt.src.Clone()
			report, err := Check(tt.src)
			require.NoError(t, err)

			assert.Equal(t, tt.want, report.Sorted)
			assert.Equal(t, tt.wantMin, report.HasMin)
			assert.Equal(t, tt.min, report.Min)
			assert.Equal(t, len(tt.src), report.Size)
			assert.Equal(t, orig, tt.src, "source must not be modified")
		})
	}
}

func TestCheckRandom(t *testing.T) {
	gen := dataset.NewSeeded(100)
	for _, n := range []int{2, 17, 100, 5000} {
		_, err := Check(gen.Make(n))
		assert.NoError(t, err, "size %d", n)
	}
}

func TestCheckInvalidNumber(t *testing.T) {
	report, err := Check(dataset.Dataset{"1", "x1", "2"})
	assert.Nil(t, report)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.CodeInvalidNumber))
	assert.Equal(t, "x1", errors.FromError(err).GetMetadata()["value"])
}

func TestFirstDiff(t *testing.T) {
	assert.Equal(t, -1, firstDiff(dataset.Dataset{"1", "2"}, dataset.Dataset{"1", "2"}))
	assert.Equal(t, 1, firstDiff(dataset.Dataset{"1", "2"}, dataset.Dataset{"1", "3"}))
	assert.Equal(t, 2, firstDiff(dataset.Dataset{"1", "2"}, dataset.Dataset{"1", "2", "3"}))
	assert.Equal(t, -1, firstDiff(nil, dataset.Dataset{}))
}

func TestMismatchReport(t *testing.T) {
	err := mismatch("sort_by_key", dataset.Dataset{"-1", "07", "7"}, "sort_by_cached_key", dataset.Dataset{"-1", "7", "07"}, 1)

	assert.Equal(t, errors.CodeMismatch, err.GetCode())
	assert.Equal(t, "1", err.GetMetadata()["index"])
	assert.Equal(t, "3", err.GetMetadata()["size"])
	assert.Contains(t, err.GetMessage(), "--- sort_by_key")
	assert.Contains(t, err.GetMessage(), "+++ sort_by_cached_key")
	assert.Contains(t, err.GetMessage(), "@@ -1,3 +1,3 @@")
}

func TestTrials(t *testing.T) {
	var buf bytes.Buffer
	summary, err := Trials(context.Background(), TrialOptions{
		Size:    200,
		Trials:  32,
		Workers: 4,
		Seed:    1,
		Logger:  log.NewWriter(&buf),
	})
	require.NoError(t, err)
	assert.Equal(t, 32, summary.Trials)
	assert.Equal(t, 32, summary.Passed)
}

func TestTrialsDefaults(t *testing.T) {
	summary, err := Trials(context.Background(), TrialOptions{Size: 10, Logger: log.NewWriter(&bytes.Buffer{})})
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Passed)
}

func TestTrialsCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	summary, err := Trials(ctx, TrialOptions{Size: 10, Trials: 5, Logger: log.NewWriter(&bytes.Buffer{})})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, summary.Passed)
}
