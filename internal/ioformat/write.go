package ioformat

import (
	"bufio"
	"errors"
	"fmt"
	"io"

	"github.com/kiwitsc/kiwitsc/internal/costmatrix"
	"github.com/kiwitsc/kiwitsc/internal/registry"
	"github.com/kiwitsc/kiwitsc/internal/tour"
)

// ErrUnroutableLeg guards against printing a tour containing a leg still
// priced at costmatrix.NoFlight: a leg for which the input gave no flight,
// which the annealing driver may still keep in its best tour.
var ErrUnroutableLeg = errors.New("ioformat: best tour contains an unpriced leg")

// Write prints the output grammar: total cost, then one line per leg in
// day order. reg is used only to reverse-map interned indices back to
// their 3-letter codes for the printer.
func Write(w io.Writer, reg *registry.Registry, s *tour.State, m *costmatrix.Matrix) error {
	bw := bufio.NewWriter(w)

	if _, err := fmt.Fprintln(bw, s.Cost); err != nil {
		return err
	}

	k := s.K()
	for day := 0; day < k; day++ {
		fromArea := s.DayToArea[day]
		toArea := s.DayToArea[day+1]
		from := s.Areas[fromArea].SelectedCity()
		to := s.Areas[toArea].SelectedCity()

		price := m.Get(from, to, day)
		if price == costmatrix.NoFlight {
			return ErrUnroutableLeg
		}

		fromCode, ok := reg.Lookup(from)
		if !ok {
			return ErrUnroutableLeg
		}
		toCode, ok := reg.Lookup(to)
		if !ok {
			return ErrUnroutableLeg
		}

		if _, err := fmt.Fprintf(bw, "%s %s %d %d\n", fromCode, toCode, day+1, price); err != nil {
			return err
		}
	}

	return bw.Flush()
}
