// Package registry interns three-letter IATA city codes into a dense 16-bit
// index space.
//
//   - Determinism: the same code always maps to the same index for the
//     lifetime of a Registry.
//   - Zero surprises: the first code interned becomes index 0, which by
//     parser convention is always the starting city.
//   - No hidden allocations on the hot path: Lookup is the only place
//     called by the printer, never the optimiser.
package registry

import "errors"

// ErrRegistryFull is returned when more than 1<<16 (65536) distinct city
// codes are interned. In practice no Kiwi Travelling Salesman Challenge
// instance approaches this; the guard exists so Intern never silently
// wraps an index.
var ErrRegistryFull = errors.New("registry: too many distinct cities")

// City is a 3-byte uppercase IATA code. Equality is bytewise.
type City [3]byte

// NewCity builds a City from a string, panicking if it is not exactly three
// bytes. Callers are expected to validate shape before calling this (the
// parser does); this is a contract, not a recoverable error.
func NewCity(code string) City {
	if len(code) != 3 {
		panic("registry: city code must be exactly 3 bytes")
	}
	return City{code[0], code[1], code[2]}
}

// String renders the City as its 3-letter code.
func (c City) String() string {
	return string(c[:])
}

// Registry interns City values into a dense index space. The zero value is
// an empty, ready-to-use registry.
type Registry struct {
	indexOf map[City]uint16
	codeOf  []City
}

// New returns an empty Registry ready for Intern calls.
func New() *Registry {
	return &Registry{indexOf: make(map[City]uint16)}
}

// Intern returns the existing index for code, or assigns and returns the
// next free one. The first code ever interned receives index 0 — by parser
// convention, the caller interns the starting city first.
//
// Complexity: O(1) amortized.
func (r *Registry) Intern(code City) (uint16, error) {
	if idx, ok := r.indexOf[code]; ok {
		return idx, nil
	}
	if len(r.codeOf) >= 1<<16 {
		return 0, ErrRegistryFull
	}
	if r.indexOf == nil {
		r.indexOf = make(map[City]uint16)
	}
	idx := uint16(len(r.codeOf))
	r.indexOf[code] = idx
	r.codeOf = append(r.codeOf, code)
	return idx, nil
}

// Lookup reverses an index back to its City. Only ever called by the
// printer, never on the annealing hot path.
//
// Complexity: O(1), a direct slice index since codeOf is dense and ordered
// by assignment.
func (r *Registry) Lookup(idx uint16) (City, bool) {
	if int(idx) >= len(r.codeOf) {
		return City{}, false
	}
	return r.codeOf[idx], true
}

// Count returns the number of distinct interned cities.
func (r *Registry) Count() int {
	return len(r.codeOf)
}
