package equivalence

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/kochabx/keysort/dataset"
	"github.com/kochabx/keysort/errors"
	"github.com/kochabx/keysort/log"
)

// TrialOptions configures Trials.
type TrialOptions struct {
	// Size is the length of every generated dataset.
	Size int
	// Trials is the number of datasets checked.
	Trials int
	// Workers bounds how many checks run at once.
	Workers int
	// Seed makes trial i use dataset.NewSeeded(Seed+i). Zero draws each
	// dataset from a process-seeded source.
	Seed uint64
	// Logger defaults to log.G.
	Logger *log.Logger
}

// Summary describes a Trials run.
type Summary struct {
	Trials  int
	Passed  int
	Elapsed time.Duration
}

// Trials runs Check on opts.Trials independently generated datasets using
// a pool of opts.Workers goroutines. Each check owns its dataset. The first
// failure stops further trials from starting and is returned.
func Trials(ctx context.Context, opts TrialOptions) (*Summary, error) {
	if opts.Trials < 1 {
		opts.Trials = 1
	}
	if opts.Workers < 1 {
		opts.Workers = 1
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.G
	}

	pool, err := ants.NewPool(opts.Workers)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInternal, "create worker pool")
	}
	defer pool.Release()

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
		passed   int
	)
	fail := func(err error) {
		mu.Lock()
		defer mu.Unlock()
		if firstErr == nil {
			firstErr = err
		}
	}
	failed := func() bool {
		mu.Lock()
		defer mu.Unlock()
		return firstErr != nil
	}

	start := time.Now()
	for i := 0; i < opts.Trials; i++ {
		if ctx.Err() != nil || failed() {
			break
		}

		wg.Add(1)
		submitErr := pool.Submit(func() {
			defer wg.Done()
			if failed() {
				return
			}

			gen := dataset.New(nil)
			if opts.Seed != 0 {
				gen = dataset.NewSeeded(opts.Seed + uint64(i))
			}

			if _, err := Check(gen.Make(opts.Size)); err != nil {
				fail(errors.FromError(err).WithMetadata(map[string]string{"trial": strconv.Itoa(i)}))
				return
			}

			mu.Lock()
			passed++
			mu.Unlock()
			logger.Debug().Int("trial", i).Int("size", opts.Size).Msg("trial passed")
		})
		if submitErr != nil {
			wg.Done()
			fail(errors.Wrap(submitErr, errors.CodeInternal, "submit trial %d", i))
		}
	}
	wg.Wait()

	summary := &Summary{Trials: opts.Trials, Passed: passed, Elapsed: time.Since(start)}
	if firstErr != nil {
		return summary, firstErr
	}
	if err := ctx.Err(); err != nil {
		return summary, err
	}
	return summary, nil
}
