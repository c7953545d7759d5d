// Package tour implements the candidate-tour data model: the area list, the
// day↔area permutation pair, the precomputed selectable-city index, and the
// four incremental Δcost evaluators that drive the annealing search.
//
// Design goals:
//   - Mathematical rigor: precise sentinel errors; explicit invariants.
//   - Determinism: all random-driven construction is controlled by an
//     injected *rng.RNG; there is no time-based randomness anywhere.
//   - Zero surprises: a State built by New always satisfies every invariant
//     in the design; callers never observe a half-built tour.
package tour

import (
	"errors"

	"github.com/kiwitsc/kiwitsc/internal/costmatrix"
	"github.com/kiwitsc/kiwitsc/internal/rng"
)

// ErrContractViolation marks a broken invariant: New returns it for an empty
// area list, and Validate for a permutation that is no longer a permutation,
// an area with no cities, or a recomputed cost disagreeing with the tracked
// running cost. Per the design this is always fatal — there is no recovery
// path.
var ErrContractViolation = errors.New("tour: contract violation")

// DeltaInf is the sentinel Δ returned by REVERSE-AREAS and INSERT-AREA when
// the requested range exceeds the 30-day cap. It is chosen far
// above any real Δ (prices are 16-bit, at most O(K) legs change per move)
// so it never wins a smallest-Δ comparison against a real move.
const DeltaInf int32 = 1 << 30

// Cost is a total tour price. Unsigned 32-bit suffices because prices are
// 16-bit and a tour has at most 65535 legs.
type Cost = uint32

// Delta is a signed incremental cost difference.
type Delta = int32

// Area is an ordered sequence of city indices; position 0 is the currently
// selected city. An area with a single city never changes its selection —
// this is how the one-city-per-area degenerate case falls out
// of the general model with no special-casing: its Selectable entry simply
// never exists.
type Area struct {
	Cities []uint16
}

// SelectedCity returns the city currently selected for this area.
func (a Area) SelectedCity() uint16 {
	return a.Cities[0]
}

// Selectable identifies one candidate SELECT-CITY move: change the
// selection of area AreaIdx to the city currently at position CityPos
// (CityPos ≥ 1, AreaIdx > 0 — the day-0 area is pinned to the starting
// city by construction and is never included here).
type Selectable struct {
	AreaIdx int
	CityPos int
}

// State is a candidate tour: an assignment of areas to days plus, for each
// area, a selected city.
//
// Invariants:
//  1. For d ∈ [0,K-1]: AreaToDay[DayToArea[d]] == d. Day K is the closing
//     mirror of day 0 (DayToArea[K] == DayToArea[0] == 0 always) and is
//     intentionally excluded from the inverse map's domain — it is never
//     looked up, since SELECT-CITY only ever queries the day of a non-start
//     area, and no non-start area is ever assigned day K.
//  2. DayToArea[0] == 0 and DayToArea[K] == 0; no move ever touches these.
//  3. Every day in [1,K-1] appears in DayToArea exactly once.
//  4. For every area a, Areas[a].Cities[0] is the selected city.
//  5. Cost equals the sum of matrix lookups along the tour.
type State struct {
	Areas      []Area
	DayToArea  []int
	AreaToDay  []int
	Selectable []Selectable
	Cost       Cost

	matrix *costmatrix.Matrix
}

// K returns the number of areas (== number of travel days == number of
// legs).
func (s *State) K() int {
	return len(s.Areas)
}

// New builds the initial tour state: the identity day-to-area assignment
// with interior days (1..K-1) Fisher–Yates shuffled, endpoints pinned to
// the starting area (index 0), and every area's selected city left at its
// parsed default (position 0). The initial permutation is intentionally
// unspecified beyond "uniform" — the design forbids tests from asserting a
// specific shuffle outcome.
//
// Complexity: O(K) time and space.
func New(areas []Area, matrix *costmatrix.Matrix, r *rng.RNG) (*State, error) {
	k := len(areas)
	if k < 1 {
		return nil, ErrContractViolation
	}

	dayToArea := make([]int, k+1)
	for d := 0; d <= k; d++ {
		dayToArea[d] = d % k
	}
	shuffleInterior(dayToArea, r)
	dayToArea[0] = 0
	dayToArea[k] = 0

	s := &State{
		Areas:     areas,
		DayToArea: dayToArea,
		matrix:    matrix,
	}
	s.rebuildAreaToDay()
	s.rebuildSelectable()
	s.Cost = s.Recompute()
	return s, nil
}

// shuffleInterior performs an in-place Fisher–Yates shuffle of the interior
// slice dayToArea[1:k] (positions 0 and k — the fixed endpoints — are
// excluded by construction, since the slice bounds passed in never include
// them).
func shuffleInterior(dayToArea []int, r *rng.RNG) {
	k := len(dayToArea) - 1
	interior := dayToArea[1:k]
	n := len(interior)
	for i := n - 1; i > 0; i-- {
		raw16, _, _ := rng.SplitWord(r.Next())
		j := rng.Bound(raw16, i+1)
		interior[i], interior[j] = interior[j], interior[i]
	}
}

// rebuildAreaToDay recomputes the inverse permutation from scratch. Used
// after construction and by Restore; the hot-path Commit* methods instead
// patch only the affected entries.
func (s *State) rebuildAreaToDay() {
	k := s.K()
	s.AreaToDay = make([]int, k)
	for d := 0; d < k; d++ {
		s.AreaToDay[s.DayToArea[d]] = d
	}
}

// rebuildSelectable recomputes the flat (area,cityPos) index used to sample
// SELECT-CITY moves uniformly across all alternates. Areas with exactly one
// city, or the day-0 area, never contribute entries.
func (s *State) rebuildSelectable() {
	s.Selectable = s.Selectable[:0]
	for a := 1; a < len(s.Areas); a++ {
		cities := s.Areas[a].Cities
		for pos := 1; pos < len(cities); pos++ {
			s.Selectable = append(s.Selectable, Selectable{AreaIdx: a, CityPos: pos})
		}
	}
}

// cityAt returns the selected city of the area visited on day (position)
// pos, where pos ∈ [0,K].
func (s *State) cityAt(pos int) uint16 {
	return s.Areas[s.DayToArea[pos]].SelectedCity()
}

// price is a thin accessor over the cost matrix, named to keep Δ formulas
// readable.
func (s *State) price(src, dst uint16, day int) int32 {
	return int32(s.matrix.Get(src, dst, day))
}

// Recompute sums matrix lookups along the full tour from scratch. Used to
// build the initial cost and to cross-check incremental Δ bookkeeping.
//
// Complexity: O(K).
func (s *State) Recompute() Cost {
	var total uint32
	k := s.K()
	for d := 0; d < k; d++ {
		total += uint32(s.matrix.Get(s.cityAt(d), s.cityAt(d+1), d))
	}
	return total
}

// Snapshot returns an independent deep copy of the state, suitable for a
// best-so-far checkpoint. The cost matrix pointer is shared (it is
// immutable during optimisation).
//
// Complexity: O(K + total cities).
func (s *State) Snapshot() *State {
	areas := make([]Area, len(s.Areas))
	for i, a := range s.Areas {
		areas[i] = Area{Cities: append([]uint16(nil), a.Cities...)}
	}
	cp := &State{
		Areas:     areas,
		DayToArea: append([]int(nil), s.DayToArea...),
		AreaToDay: append([]int(nil), s.AreaToDay...),
		Cost:      s.Cost,
		matrix:    s.matrix,
	}
	cp.rebuildSelectable()
	return cp
}

// Restore overwrites s in place with the contents of snap. Used exactly
// once, when the deadline fires, to reinstate the best-so-far tour.
func (s *State) Restore(snap *State) {
	s.Areas = snap.Areas
	s.DayToArea = append([]int(nil), snap.DayToArea...)
	s.AreaToDay = append([]int(nil), snap.AreaToDay...)
	s.Cost = snap.Cost
	s.rebuildSelectable()
}

// Validate checks every invariant in the design and returns ErrContractViolation
// on the first violation found. Used by tests; the driver's own
// post-restore check compares Recompute against its tracked best cost.
//
// Complexity: O(K).
func (s *State) Validate() error {
	k := s.K()
	if len(s.DayToArea) != k+1 || len(s.AreaToDay) != k {
		return ErrContractViolation
	}
	if s.DayToArea[0] != 0 || s.DayToArea[k] != 0 {
		return ErrContractViolation
	}
	seen := make([]bool, k)
	for d := 0; d < k; d++ {
		a := s.DayToArea[d]
		if a < 0 || a >= k || seen[a] {
			return ErrContractViolation
		}
		seen[a] = true
		if s.AreaToDay[a] != d {
			return ErrContractViolation
		}
	}
	for _, area := range s.Areas {
		if len(area.Cities) == 0 {
			return ErrContractViolation
		}
	}
	if s.Recompute() != s.Cost {
		return ErrContractViolation
	}
	return nil
}
