// Package deadline implements the single piece of inter-thread
// communication in the optimisation core: an atomic stop flag set once by a
// timer goroutine and polled by the annealing driver.
//
// The flag is an explicit dependency rather than a package-level global:
// the driver holds a reference to a *Signal passed in, so tests can create
// independent signals and multiple workers can share one without any
// hidden state.
package deadline

import (
	"sync/atomic"
	"time"
)

// safetyMargin is subtracted from the computed interval so the timer fires
// slightly before the external wall-clock budget, leaving headroom for the
// driver to observe the flag, restore the best snapshot, and print.
const safetyMargin = 75 * time.Millisecond

// Signal is a write-once, read-many stop flag. The zero value is a valid,
// unset Signal.
type Signal struct {
	stopped atomic.Bool
}

// Stopped reports whether the deadline has fired. Acquire ordering is
// implicit in atomic.Bool.Load; no other synchronisation is required
// because nothing else is shared between the timer and the driver.
func (s *Signal) Stopped() bool {
	return s.stopped.Load()
}

// Stop sets the flag with release ordering (implicit in atomic.Bool.Store).
// Exposed so tests and multi-worker coordination can stop a run without
// waiting out a real timer.
func (s *Signal) Stop() {
	s.stopped.Store(true)
}

// StartTimer launches a goroutine that sleeps for budget-safetyMargin (or
// fires immediately if the budget is already smaller than the margin) and
// then calls Stop. The returned cancel function stops the timer if it has
// not fired yet; it never clears a flag that is already set.
func StartTimer(s *Signal, budget time.Duration) (cancel func()) {
	wait := budget - safetyMargin
	if wait < 0 {
		wait = 0
	}
	timer := time.AfterFunc(wait, s.Stop)
	return func() { timer.Stop() }
}

// BudgetFor returns the size-dependent wall-clock interval, measured from
// program start (so parsing time reduces the budget actually available to
// the driver).
func BudgetFor(areaCount, cityCount int) time.Duration {
	switch {
	case areaCount <= 20 && cityCount < 50:
		return 3 * time.Second
	case areaCount <= 100 && cityCount < 200:
		return 5 * time.Second
	default:
		return 15 * time.Second
	}
}
