// Package tour — the four local-move Δcost evaluators and their matching
// commit operations.
//
// All four moves operate on interior days 1..K-1; the caller (the annealing
// driver) is responsible for drawing i,j already restricted to that range.
// Each Eval* function is pure — it never mutates State — and each Commit*
// mirrors it exactly: evaluating Δ then committing must always yield
// cost_after == cost_before + Δ, short-circuits aside.
package tour

// reverseInsertCap bounds REVERSE-AREAS and INSERT-AREA to ranges of at
// most 30 days — long reversals are rarely accepted at low temperature
// anyway, and capping them keeps each Eval* call O(1) in practice.
const reverseInsertCap = 30

// EvalSwap computes the Δcost of exchanging the areas visited on days i and
// j (1 ≤ i,j ≤ K-1). Three cases: non-adjacent (4 legs change), adjacent
// (3 legs change, one boundary shared), and i==j (no-op, Δ=0).
//
// Complexity: O(1).
func (s *State) EvalSwap(i, j int) Delta {
	if i == j {
		return 0
	}
	if i > j {
		i, j = j, i
	}
	// From here i < j.
	ci1, ci, cip1 := s.cityAt(i-1), s.cityAt(i), s.cityAt(i+1)
	cj1, cj, cjp1 := s.cityAt(j-1), s.cityAt(j), s.cityAt(j+1)

	if j-i > 1 {
		before := s.price(ci1, ci, i-1) + s.price(ci, cip1, i) +
			s.price(cj1, cj, j-1) + s.price(cj, cjp1, j)
		after := s.price(ci1, cj, i-1) + s.price(cj, cip1, i) +
			s.price(cj1, ci, j-1) + s.price(ci, cjp1, j)
		return after - before
	}

	// Adjacent: j == i+1. The shared boundary leg is (i -> j), priced once.
	before := s.price(ci1, ci, i-1) + s.price(ci, cj, i) + s.price(cj, cjp1, j)
	after := s.price(ci1, cj, i-1) + s.price(cj, ci, i) + s.price(ci, cjp1, j)
	return after - before
}

// CommitSwap applies the move evaluated by EvalSwap: exchange DayToArea[i]
// and DayToArea[j] and patch their inverse entries. Self-inverse: calling
// CommitSwap(i,j) twice in a row restores the prior state.
//
// Complexity: O(1).
func (s *State) CommitSwap(i, j int) {
	if i == j {
		return
	}
	ai, aj := s.DayToArea[i], s.DayToArea[j]
	s.DayToArea[i], s.DayToArea[j] = aj, ai
	s.AreaToDay[ai], s.AreaToDay[aj] = j, i
}

// EvalReverse computes the Δcost of reversing the slice DayToArea[k..l]
// (k=min(i,j), l=max(i,j)). Returns DeltaInf without inspecting the matrix
// when l-k exceeds the 30-day cap.
//
// Complexity: O(l-k), bounded by the cap.
func (s *State) EvalReverse(i, j int) Delta {
	k, l := i, j
	if k > l {
		k, l = l, k
	}
	if l-k > reverseInsertCap {
		return DeltaInf
	}
	if k == l {
		return 0
	}

	before := s.price(s.cityAt(k-1), s.cityAt(k), k-1) + s.price(s.cityAt(l), s.cityAt(l+1), l)
	after := s.price(s.cityAt(k-1), s.cityAt(l), k-1) + s.price(s.cityAt(k), s.cityAt(l+1), l)

	for idx := 0; idx < l-k; idx++ {
		before += s.price(s.cityAt(k+idx), s.cityAt(k+idx+1), k+idx)
		after += s.price(s.cityAt(l-idx), s.cityAt(l-idx-1), k+idx)
	}
	return after - before
}

// CommitReverse reverses DayToArea[k..l] in place and patches every
// affected inverse entry. Self-inverse.
//
// Complexity: O(l-k).
func (s *State) CommitReverse(i, j int) {
	k, l := i, j
	if k > l {
		k, l = l, k
	}
	for k < l {
		s.DayToArea[k], s.DayToArea[l] = s.DayToArea[l], s.DayToArea[k]
		s.AreaToDay[s.DayToArea[k]] = k
		s.AreaToDay[s.DayToArea[l]] = l
		k++
		l--
	}
}

// EvalInsert computes the Δcost of moving the area at day i to day j,
// shifting the intervening range by one. Returns DeltaInf
// without inspecting the matrix when |i-j| exceeds the 30-day cap.
//
// Complexity: O(|i-j|), bounded by the cap.
func (s *State) EvalInsert(i, j int) Delta {
	if i == j {
		return 0
	}
	if i < j {
		if j-i > reverseInsertCap {
			return DeltaInf
		}
		before := s.price(s.cityAt(i-1), s.cityAt(i), i-1) +
			s.price(s.cityAt(j-1), s.cityAt(j), j-1) +
			s.price(s.cityAt(j), s.cityAt(j+1), j)
		after := s.price(s.cityAt(i-1), s.cityAt(i+1), i-1) +
			s.price(s.cityAt(j), s.cityAt(i), j-1) +
			s.price(s.cityAt(i), s.cityAt(j+1), j)
		for k := i; k < j-1; k++ {
			before += s.price(s.cityAt(k), s.cityAt(k+1), k)
			after += s.price(s.cityAt(k+1), s.cityAt(k+2), k)
		}
		return after - before
	}

	// j < i.
	if i-j > reverseInsertCap {
		return DeltaInf
	}
	before := s.price(s.cityAt(j-1), s.cityAt(j), j-1) +
		s.price(s.cityAt(j), s.cityAt(j+1), j) +
		s.price(s.cityAt(i), s.cityAt(i+1), i)
	after := s.price(s.cityAt(j-1), s.cityAt(i), j-1) +
		s.price(s.cityAt(i), s.cityAt(j), j) +
		s.price(s.cityAt(i-1), s.cityAt(i+1), i)
	for k := j + 1; k < i; k++ {
		before += s.price(s.cityAt(k), s.cityAt(k+1), k)
		after += s.price(s.cityAt(k-1), s.cityAt(k), k)
	}
	return after - before
}

// CommitInsert applies the move evaluated by EvalInsert: rotates
// DayToArea[min(i,j)..max(i,j)] by one position and rewrites AreaToDay over
// the affected range.
//
// Complexity: O(|i-j|).
func (s *State) CommitInsert(i, j int) {
	if i == j {
		return
	}
	if i < j {
		moved := s.DayToArea[i]
		copy(s.DayToArea[i:j], s.DayToArea[i+1:j+1])
		s.DayToArea[j] = moved
		for d := i; d <= j; d++ {
			s.AreaToDay[s.DayToArea[d]] = d
		}
		return
	}
	moved := s.DayToArea[i]
	copy(s.DayToArea[j+1:i+1], s.DayToArea[j:i])
	s.DayToArea[j] = moved
	for d := j; d <= i; d++ {
		s.AreaToDay[s.DayToArea[d]] = d
	}
}

// EvalSelectCity computes the Δcost of changing the selected city of
// sel.AreaIdx to the city currently at sel.CityPos. sel.AreaIdx must be > 0
// (the day-0 area is pinned to the starting city by construction and is
// never represented in Selectable).
//
// Complexity: O(1).
func (s *State) EvalSelectCity(sel Selectable) Delta {
	day := s.AreaToDay[sel.AreaIdx]
	oldCity := s.Areas[sel.AreaIdx].Cities[0]
	newCity := s.Areas[sel.AreaIdx].Cities[sel.CityPos]
	k := s.K()

	prevCity := s.cityAt(day - 1)
	var delta Delta
	delta += s.price(prevCity, newCity, day-1) - s.price(prevCity, oldCity, day-1)

	if day < k {
		nextCity := s.cityAt(day + 1)
		delta += s.price(newCity, nextCity, day) - s.price(oldCity, nextCity, day)
	}
	return delta
}

// CommitSelectCity swaps positions 0 and sel.CityPos within the area's
// city list, making the candidate city the selected one.
//
// Complexity: O(1).
func (s *State) CommitSelectCity(sel Selectable) {
	cities := s.Areas[sel.AreaIdx].Cities
	cities[0], cities[sel.CityPos] = cities[sel.CityPos], cities[0]
}
