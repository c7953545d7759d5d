// Package anneal implements the annealing driver: the outer
// propose-evaluate-accept-commit loop, the stretched-cooling temperature
// schedule, Metropolis acceptance, and best-so-far tracking.
//
// The loop is driven by explicit state passed as arguments rather than
// closures, keeping dependencies visible and the hot path easy to reason
// about.
package anneal

import (
	"errors"
	"math"

	"github.com/kiwitsc/kiwitsc/internal/deadline"
	"github.com/kiwitsc/kiwitsc/internal/rng"
	"github.com/kiwitsc/kiwitsc/internal/tour"
)

// ErrContractViolation is returned when the driver's own sanity checks
// fail — temperature computing to NaN, or the restored best snapshot not
// matching its tracked cost.
var ErrContractViolation = errors.New("anneal: contract violation")

// Default tuning constants.
const (
	// DefaultTn is the target iteration horizon the cooling curve is
	// stretched across.
	DefaultTn = 80_000_000

	// RecomputePeriod: temperature is recomputed every 512 iterations.
	RecomputePeriod = 512
)

// Options configures a Run. Zero value is not meaningful; use
// DefaultOptions and override fields as needed.
type Options struct {
	// Tn is the target iteration horizon for the cooling curve.
	Tn float64

	// TLast is the temperature floor the cooling curve approaches near Tn.
	// DefaultOptions chooses it from the tour length per the design.
	TLast float64

	// RecomputePeriod: iterations between temperature recomputations.
	RecomputePeriod int

	// Seed is carried for callers that build their own RNG from it. Run and
	// RunPool do not read it: they draw from the *rng.RNG passed to them.
	Seed uint64
}

// DefaultOptions returns Options tuned for a tour of k areas (legs):
// TLast is 0.005 for k<55, 0.002 for k<105, else 0.001.
func DefaultOptions(k int) Options {
	tLast := 0.001
	switch {
	case k < 55:
		tLast = 0.005
	case k < 105:
		tLast = 0.002
	}
	return Options{
		Tn:              DefaultTn,
		TLast:           tLast,
		RecomputePeriod: RecomputePeriod,
		Seed:            0,
	}
}

// Result is the outcome of a Run: the best tour found and a few
// diagnostics useful for logging (never printed to stdout — stdout is
// reserved for the wire-format result).
type Result struct {
	Best       *tour.State
	Iterations uint64
}

// Run executes the annealing loop starting from initial until sig fires,
// then restores and returns the best-so-far snapshot.
//
// Contract: initial must already satisfy every tour.State invariant (New
// guarantees this). maxObservedPrice must be > 0 for any tour of two or more
// areas; when it is 0 (no flight, or only zero-priced flights, was loaded)
// Run returns ErrContractViolation without annealing.
func Run(initial *tour.State, maxObservedPrice uint16, sig *deadline.Signal, opts Options, r *rng.RNG) (Result, error) {
	k := initial.K()
	cur := initial
	best := cur.Snapshot()
	bestCost := cur.Cost

	// A single-area tour has no interior days at all (day 0 and day K both
	// mirror the same fixed area) — there is nothing to permute or select,
	// so the loop below never needs to run, and that holds regardless of
	// whether the matrix carries any priced legs at all.
	if k < 2 {
		return Result{Best: cur, Iterations: 0}, nil
	}

	scale := float64(maxObservedPrice)
	if scale <= 0 {
		return Result{}, ErrContractViolation
	}
	const log2to32minus1 = 22.18070977768542 // ln(2^32 - 1), precomputed once

	var iter uint64
	var temperature float64 = 1.0

	for !sig.Stopped() {
		if iter%uint64(opts.RecomputePeriod) == 0 {
			t := math.Exp(math.Log(opts.TLast) * math.Pow(float64(iter)/opts.Tn, 0.3))
			if math.IsNaN(t) {
				return Result{}, ErrContractViolation
			}
			temperature = t
		}

		word := r.Next()
		raw16a, raw16b, raw32 := rng.SplitWord(word)
		i := 1 + rng.Bound(raw16a, k-1)
		j := 1 + rng.Bound(raw16b, k-1)

		deltaSwap := cur.EvalSwap(i, j)
		deltaReverse := cur.EvalReverse(i, j)
		deltaInsert := cur.EvalInsert(i, j)

		bestDelta := deltaSwap
		method := moveSwap
		if deltaReverse < bestDelta {
			bestDelta = deltaReverse
			method = moveReverse
		}
		if deltaInsert < bestDelta {
			bestDelta = deltaInsert
			method = moveInsert
		}

		var sel tour.Selectable
		if len(cur.Selectable) > 0 {
			selIdx := rng.Bound(uint16(raw32), len(cur.Selectable))
			sel = cur.Selectable[selIdx]
			deltaSelect := cur.EvalSelectCity(sel)
			if deltaSelect < bestDelta {
				bestDelta = deltaSelect
				method = moveSelectCity
			}
		}

		accept := bestDelta <= 0
		if !accept {
			rnd := raw32
			rhs := -float64(bestDelta)/(temperature*scale) + log2to32minus1
			lhs := math.Log(float64(rnd))
			accept = lhs <= rhs
		}

		if accept {
			switch method {
			case moveSwap:
				cur.CommitSwap(i, j)
			case moveReverse:
				cur.CommitReverse(i, j)
			case moveInsert:
				cur.CommitInsert(i, j)
			case moveSelectCity:
				cur.CommitSelectCity(sel)
			}
			cur.Cost = uint32(int64(cur.Cost) + int64(bestDelta))

			if cur.Cost < bestCost {
				bestCost = cur.Cost
				best = cur.Snapshot()
			}
		}

		iter++
	}

	cur.Restore(best)
	if cur.Recompute() != bestCost {
		return Result{}, ErrContractViolation
	}
	return Result{Best: cur, Iterations: iter}, nil
}

// move identifies which evaluator's Δ was committed. Tie-break order is
// swap, reverse, insert, select-city — the first strict improvement wins,
// implemented above by only replacing method on a strictly smaller Δ.
type move int

const (
	moveSwap move = iota
	moveReverse
	moveInsert
	moveSelectCity
)
