package anneal

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/kiwitsc/kiwitsc/internal/deadline"
	"github.com/kiwitsc/kiwitsc/internal/rng"
	"github.com/kiwitsc/kiwitsc/internal/tour"
)

// RunPool fans a single annealing problem out across workers independent
// RNG streams, all sharing sig, and returns the lowest-cost result.
// workers<=1 degenerates to a single Run call with no goroutine overhead.
//
// Each worker anneals its own deep copy of initial (initial.Snapshot()), so
// every worker starts from the same permutation; RunPool diversifies only
// the search trajectory, via a per-worker RNG stream.
func RunPool(initial *tour.State, maxObservedPrice uint16, sig *deadline.Signal, opts Options, base *rng.RNG, workers int) (Result, error) {
	if workers <= 1 {
		return Run(initial, maxObservedPrice, sig, opts, base)
	}

	results := make([]Result, workers)
	errs := make([]error, workers)

	g, _ := errgroup.WithContext(context.Background())
	for w := 0; w < workers; w++ {
		w := w
		workerState := initial.Snapshot()
		workerRNG := rng.Derive(base, uint64(w))
		g.Go(func() error {
			res, err := Run(workerState, maxObservedPrice, sig, opts, workerRNG)
			results[w] = res
			errs[w] = err
			return nil
		})
	}
	_ = g.Wait()

	var best Result
	haveBest := false
	for w := 0; w < workers; w++ {
		if errs[w] != nil {
			continue
		}
		if !haveBest || results[w].Best.Cost < best.Best.Cost {
			best = results[w]
			haveBest = true
		}
	}
	if !haveBest {
		return Result{}, ErrContractViolation
	}
	return best, nil
}
