// Package costmatrix stores a dense, read-only-during-optimisation table of
// directional flight prices indexed by (source city, destination city,
// travel day).
//
//   - Storage is a single flat slice of length N*N*D; Get/Set compute a flat
//     offset directly, no row/col indirection, to keep the hottest lookup in
//     the program free of interface dispatch.
//   - The maximum observed price is maintained incrementally on every Set.
//   - Get is unchecked: every move evaluator calls it several times per
//     annealing iteration, and an out-of-range index is a contract violation, not a
//     recoverable error — Go's own slice bounds check already turns that
//     into a panic.
package costmatrix

import "math"

// Price is a flight ticket price in whatever currency the input uses.
type Price = uint16

// NoFlight is the sentinel "no flight exists" price: the maximum 16-bit
// value. Unset cells hold this value.
const NoFlight Price = math.MaxUint16

// Matrix is a dense N×N×D table of prices, where N is the interned city
// count and D is the number of travel days (D == area count).
type Matrix struct {
	n, d        int
	prices      []Price
	maxObserved Price
}

// New allocates an N×N×D matrix with every cell initialized to NoFlight.
//
// Complexity: O(N²·D) time and space.
func New(n, d int) *Matrix {
	prices := make([]Price, n*n*d)
	for i := range prices {
		prices[i] = NoFlight
	}
	return &Matrix{n: n, d: d, prices: prices}
}

// flatIndex computes the offset of (src,dst,day) in the row-major buffer.
func (m *Matrix) flatIndex(src, dst uint16, day int) int {
	return int(src)*m.n*m.d + int(dst)*m.d + day
}

// Get returns the price for a direct flight from src to dst departing on
// internal day index day (0 ≤ day < D). Out-of-range indices are a
// contract violation.
//
// Complexity: O(1).
func (m *Matrix) Get(src, dst uint16, day int) Price {
	return m.prices[m.flatIndex(src, dst, day)]
}

// Set stores price for (src,dst,day) and updates the tracked maximum.
//
// Complexity: O(1).
func (m *Matrix) Set(src, dst uint16, day int, price Price) {
	m.prices[m.flatIndex(src, dst, day)] = price
	if price > m.maxObserved {
		m.maxObserved = price
	}
}

// SetFromInput applies the input's day-zero wildcard semantics: a price
// given with externalDay==0 is valid on every day of the itinerary; a
// nonzero externalDay is 1-indexed and applies to that single day only.
// Internally, day indices are 0-indexed (externalDay-1).
//
// Complexity: O(D) when externalDay==0 (fills every day), else O(1).
func (m *Matrix) SetFromInput(src, dst uint16, externalDay int, price Price) {
	if externalDay == 0 {
		for day := 0; day < m.d; day++ {
			m.Set(src, dst, day, price)
		}
		return
	}
	m.Set(src, dst, externalDay-1, price)
}

// MaxObservedPrice returns the largest price ever passed to Set, or 0 when
// no nonzero price has been set. It normalises the annealing temperature;
// the parser does not reject a matrix whose maximum is 0, and the annealing
// driver reports it as a contract violation.
func (m *Matrix) MaxObservedPrice() Price {
	return m.maxObserved
}

// N returns the interned city count.
func (m *Matrix) N() int { return m.n }

// D returns the number of travel days (area count).
func (m *Matrix) D() int { return m.d }
