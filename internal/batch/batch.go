// Package batch runs index-aligned jobs with bounded concurrency. Results
// land at the same index as their input, so callers can zip inputs and
// outputs without bookkeeping.
package batch

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/stat"
)

// Job computes the result for one input index.
type Job[T any] func(ctx context.Context, index int) (T, error)

// Result pairs a job's output with any per-item failure. A failed item does
// not abort its siblings.
type Result[T any] struct {
	Value T
	Err   error
}

// Run executes fn for each index in [0, n) with at most workers in flight.
// The only error returned is a context cancellation; per-item errors stay in
// the results slice.
func Run[T any](ctx context.Context, n, workers int, fn Job[T]) ([]Result[T], error) {
	if n <= 0 || fn == nil {
		return nil, nil
	}
	if workers <= 0 {
		workers = runtime.NumCPU()
		if workers < 1 {
			workers = 1
		}
	}

	results := make([]Result[T], n)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i := 0; i < n; i++ {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			v, err := fn(ctx, i)
			results[i] = Result[T]{Value: v, Err: err}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// MeanConfidence aggregates per-item confidences for batch summaries.
// An empty slice yields 0 rather than NaN.
func MeanConfidence(confidences []float64) float64 {
	if len(confidences) == 0 {
		return 0
	}
	return stat.Mean(confidences, nil)
}
