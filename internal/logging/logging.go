// Package logging provides small, leveled, stderr-only diagnostics.
//
// stdout carries nothing but the strict wire-format result — the cost
// line and leg lines — so every diagnostic here is redirected to stderr,
// with color gated by a TTY check via github.com/mattn/go-isatty.
package logging

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
)

const (
	colorReset  = "\033[0m"
	colorBlue   = "\033[34m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorRed    = "\033[31m"
)

var colorEnabled = isatty.IsTerminal(os.Stderr.Fd())

// Info logs a routine progress message (worker count, chosen deadline).
func Info(tag, msg string) { emit(colorBlue, tag, msg) }

// Warn logs a non-fatal anomaly (a worker returned early, a fallback
// kicked in).
func Warn(tag, msg string) { emit(colorYellow, tag, msg) }

// Success logs a definite positive outcome (annealing finished within
// budget with iterations to spare).
func Success(tag, msg string) { emit(colorGreen, tag, msg) }

// Error logs an error the caller is about to act on; cmd/kiwitsc calls it
// just before exiting with status 1.
func Error(tag, msg string) { emit(colorRed, tag, msg) }

func emit(color, tag, msg string) {
	if colorEnabled {
		fmt.Fprintf(os.Stderr, "%s[%s]%s %s\n", color, tag, colorReset, msg)
		return
	}
	fmt.Fprintf(os.Stderr, "[%s] %s\n", tag, msg)
}
