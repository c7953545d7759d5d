// Package ioformat implements the external wire format: a
// line-oriented ASCII stdin grammar and a fixed stdout report.
//
// Parse reads one structural line at a time with bufio.ScanLines, then
// splits each line on whitespace with strings.Fields.
package ioformat

import (
	"bufio"
	"errors"
	"io"
	"strconv"
	"strings"

	"github.com/kiwitsc/kiwitsc/internal/costmatrix"
	"github.com/kiwitsc/kiwitsc/internal/registry"
	"github.com/kiwitsc/kiwitsc/internal/tour"
)

// Sentinel errors for malformed input.
var (
	ErrMalformedInput     = errors.New("ioformat: malformed input")
	ErrStartCityMultiArea = errors.New("ioformat: start city appears in more than one area")
)

// Problem is everything Parse extracts from stdin: enough to build an
// initial tour.State and run the annealing driver.
type Problem struct {
	Registry  *registry.Registry
	Areas     []tour.Area
	Matrix    *costmatrix.Matrix
	StartArea int
}

// lineReader wraps bufio.Scanner with ScanLines and exposes only what
// Parse needs: the next line, or false once the input is exhausted.
type lineReader struct {
	sc *bufio.Scanner
}

func newLineReader(r io.Reader) *lineReader {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	return &lineReader{sc: sc}
}

func (lr *lineReader) next() (string, bool) {
	if !lr.sc.Scan() {
		return "", false
	}
	return lr.sc.Text(), true
}

// Parse reads the input grammar from r: a header line, one name+cities
// line pair per area, then `<from> <to> <day> <price>` lines until EOF.
//
// Contract: on any malformed line this returns ErrMalformedInput (or
// ErrStartCityMultiArea when the start city appears in more than one
// area) and a nil Problem. There is no partial result — the whole input
// is rejected as a unit.
func Parse(r io.Reader) (*Problem, error) {
	lr := newLineReader(r)

	header, ok := lr.next()
	if !ok {
		return nil, ErrMalformedInput
	}
	headerFields := strings.Fields(header)
	if len(headerFields) != 2 {
		return nil, ErrMalformedInput
	}
	numAreas, err := strconv.Atoi(headerFields[0])
	if err != nil || numAreas <= 0 {
		return nil, ErrMalformedInput
	}
	startCity, err := parseCityCode(headerFields[1])
	if err != nil {
		return nil, err
	}

	reg := registry.New()
	if _, err := reg.Intern(startCity); err != nil {
		return nil, err
	}

	areas := make([]tour.Area, numAreas)
	startArea := -1

	for a := 0; a < numAreas; a++ {
		// Area name line: free text, ignored, but must still be consumed
		// to advance past it.
		if _, ok := lr.next(); !ok {
			return nil, ErrMalformedInput
		}

		citiesLine, ok := lr.next()
		if !ok {
			return nil, ErrMalformedInput
		}
		codes := strings.Fields(citiesLine)
		if len(codes) == 0 {
			return nil, ErrMalformedInput
		}

		cities := make([]uint16, len(codes))
		hasStart := false
		for i, tok := range codes {
			code, err := parseCityCode(tok)
			if err != nil {
				return nil, err
			}
			idx, err := reg.Intern(code)
			if err != nil {
				return nil, err
			}
			cities[i] = idx
			if code == startCity {
				hasStart = true
				// The starting city is always position 0 within its area,
				// regardless of where it appeared on the line.
				cities[0], cities[i] = cities[i], cities[0]
			}
		}
		areas[a] = tour.Area{Cities: cities}

		if hasStart {
			if startArea != -1 {
				return nil, ErrStartCityMultiArea
			}
			startArea = a
		}
	}

	if startArea == -1 {
		return nil, ErrMalformedInput
	}
	if startArea != 0 {
		areas[0], areas[startArea] = areas[startArea], areas[0]
		startArea = 0
	}

	d := numAreas

	// Flight lines may reference city codes that never appeared in any
	// area's city list (ignorable dead entries). The registry must finish
	// growing before the matrix is sized, so the flight tuples are
	// buffered first and applied in a second pass once N is final.
	type flight struct {
		from, to uint16
		day      int
		price    costmatrix.Price
	}
	var flights []flight

	for {
		line, ok := lr.next()
		if !ok {
			break
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		if len(fields) != 4 {
			return nil, ErrMalformedInput
		}
		fromCode, err := parseCityCode(fields[0])
		if err != nil {
			return nil, err
		}
		toCode, err := parseCityCode(fields[1])
		if err != nil {
			return nil, err
		}
		day, err := strconv.Atoi(fields[2])
		if err != nil || day < 0 || day > d {
			return nil, ErrMalformedInput
		}
		price, err := strconv.ParseUint(fields[3], 10, 16)
		if err != nil {
			return nil, ErrMalformedInput
		}

		fromIdx, err := reg.Intern(fromCode)
		if err != nil {
			return nil, err
		}
		toIdx, err := reg.Intern(toCode)
		if err != nil {
			return nil, err
		}
		flights = append(flights, flight{from: fromIdx, to: toIdx, day: day, price: costmatrix.Price(price)})
	}

	matrix := costmatrix.New(reg.Count(), d)
	for _, f := range flights {
		matrix.SetFromInput(f.from, f.to, f.day, f.price)
	}

	return &Problem{
		Registry:  reg,
		Areas:     areas,
		Matrix:    matrix,
		StartArea: startArea,
	}, nil
}

func parseCityCode(tok string) (registry.City, error) {
	if len(tok) != 3 {
		return registry.City{}, ErrMalformedInput
	}
	return registry.NewCity(tok), nil
}
