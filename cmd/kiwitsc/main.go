// Command kiwitsc reads a Kiwi Travelling Salesman Challenge instance from
// stdin, anneals it under a size-dependent wall-clock deadline, and prints
// the best itinerary found to stdout.
package main

import (
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/kiwitsc/kiwitsc/internal/anneal"
	"github.com/kiwitsc/kiwitsc/internal/deadline"
	"github.com/kiwitsc/kiwitsc/internal/ioformat"
	"github.com/kiwitsc/kiwitsc/internal/logging"
	"github.com/kiwitsc/kiwitsc/internal/rng"
	"github.com/kiwitsc/kiwitsc/internal/tour"
)

func main() {
	start := time.Now()

	problem, err := ioformat.Parse(os.Stdin)
	if err != nil {
		logging.Error("parse", err.Error())
		os.Exit(1)
	}

	budget := deadline.BudgetFor(len(problem.Areas), problem.Registry.Count())
	remaining := budget - time.Since(start)
	logging.Info("deadline", fmt.Sprintf("budget=%s areas=%d cities=%d", budget, len(problem.Areas), problem.Registry.Count()))

	sig := &deadline.Signal{}
	cancel := deadline.StartTimer(sig, remaining)
	defer cancel()

	seedRNG := rng.New(0)
	initial, err := tour.New(problem.Areas, problem.Matrix, seedRNG)
	if err != nil {
		logging.Error("tour", err.Error())
		os.Exit(1)
	}

	opts := anneal.DefaultOptions(initial.K())
	workers := runtime.GOMAXPROCS(0)
	if workers < 1 {
		workers = 1
	}
	logging.Info("workers", fmt.Sprintf("%d", workers))

	result, err := anneal.RunPool(initial, problem.Matrix.MaxObservedPrice(), sig, opts, seedRNG, workers)
	if err != nil {
		logging.Error("anneal", err.Error())
		os.Exit(1)
	}
	logging.Success("anneal", fmt.Sprintf("iterations=%d cost=%d", result.Iterations, result.Best.Cost))

	if err := ioformat.Write(os.Stdout, problem.Registry, result.Best, problem.Matrix); err != nil {
		logging.Error("write", err.Error())
		os.Exit(1)
	}
}
