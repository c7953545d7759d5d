package tour_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kiwitsc/kiwitsc/internal/costmatrix"
	"github.com/kiwitsc/kiwitsc/internal/rng"
	"github.com/kiwitsc/kiwitsc/internal/tour"
)

// buildSimpleLoop constructs a one-city-per-area K-area tour with sequential
// city indices 0..K-1 and a matrix where leg (i -> i+1 mod K) on any day
// costs exactly (i+1)*10, so Recompute has an easily hand-checked value.
func buildSimpleLoop(t *testing.T, k int, seed uint64) (*tour.State, *costmatrix.Matrix) {
	t.Helper()
	m := costmatrix.New(k, k)
	for i := 0; i < k; i++ {
		next := (i + 1) % k
		for day := 0; day < k; day++ {
			m.Set(uint16(i), uint16(next), day, costmatrix.Price((i+1)*10))
		}
	}
	areas := make([]tour.Area, k)
	for i := 0; i < k; i++ {
		areas[i] = tour.Area{Cities: []uint16{uint16(i)}}
	}
	s, err := tour.New(areas, m, rng.New(seed))
	require.NoError(t, err)
	return s, m
}

func TestNew_SatisfiesInvariants(t *testing.T) {
	s, _ := buildSimpleLoop(t, 6, 1)
	require.NoError(t, s.Validate())
	require.Equal(t, 0, s.DayToArea[0])
	require.Equal(t, 0, s.DayToArea[s.K()])
}

func TestNew_OneCityPerArea_SelectableIsEmpty(t *testing.T) {
	s, _ := buildSimpleLoop(t, 5, 2)
	require.Empty(t, s.Selectable)
}

func TestNew_TrivialTwoCityOneDay(t *testing.T) {
	// Scenario: areas=[A,B], start=A, A->B@day1=100, B->A@day2=200.
	m := costmatrix.New(2, 2)
	m.SetFromInput(0, 1, 1, 100)
	m.SetFromInput(1, 0, 2, 200)
	areas := []tour.Area{
		{Cities: []uint16{0}},
		{Cities: []uint16{1}},
	}
	s, err := tour.New(areas, m, rng.New(9))
	require.NoError(t, err)
	require.Equal(t, tour.Cost(300), s.Cost)
	require.NoError(t, s.Validate())
}

func TestNew_AreaSelectionMatters(t *testing.T) {
	// Scenario: areas=[{A},{B,C}], start=A.
	// A->B@1=100, A->C@1=5, B->A@2=100, C->A@2=5.
	m := costmatrix.New(3, 2)
	m.SetFromInput(0, 1, 1, 100)
	m.SetFromInput(0, 2, 1, 5)
	m.SetFromInput(1, 0, 2, 100)
	m.SetFromInput(2, 0, 2, 5)
	areas := []tour.Area{
		{Cities: []uint16{0}},
		{Cities: []uint16{1, 2}}, // B selected by default
	}
	s, err := tour.New(areas, m, rng.New(3))
	require.NoError(t, err)
	require.Equal(t, tour.Cost(200), s.Cost)
	require.Len(t, s.Selectable, 1)
	sel := s.Selectable[0]
	require.Equal(t, 1, sel.AreaIdx)
	require.Equal(t, 1, sel.CityPos)

	delta := s.EvalSelectCity(sel)
	require.Equal(t, tour.Delta(-190), delta)

	s.CommitSelectCity(sel)
	s.Cost = tour.Cost(int64(s.Cost) + int64(delta))
	require.Equal(t, tour.Cost(10), s.Cost)
	require.NoError(t, s.Validate())
	require.Equal(t, s.Cost, s.Recompute())
}

func TestSnapshotRestore_Independent(t *testing.T) {
	s, _ := buildSimpleLoop(t, 8, 5)
	snap := s.Snapshot()

	s.CommitSwap(1, 2)
	require.NotEqual(t, snap.DayToArea, s.DayToArea)

	s.Restore(snap)
	require.Equal(t, snap.DayToArea, s.DayToArea)
	require.Equal(t, snap.Cost, s.Cost)
	require.NoError(t, s.Validate())
}

func TestValidate_DetectsBrokenPermutation(t *testing.T) {
	s, _ := buildSimpleLoop(t, 6, 4)
	s.DayToArea[2] = s.DayToArea[3] // duplicate entry, breaks bijection
	require.Error(t, s.Validate())
}
