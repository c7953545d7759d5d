package tour_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kiwitsc/kiwitsc/internal/costmatrix"
	"github.com/kiwitsc/kiwitsc/internal/rng"
	"github.com/kiwitsc/kiwitsc/internal/tour"
)

// buildRandomLoop builds a K-area, one-city-per-area tour over a matrix
// filled with a deterministic pseudo-random price for every (src,dst,day)
// triple, large enough to exercise non-adjacent swap/reverse/insert cases.
func buildRandomLoop(t *testing.T, k int, seed uint64) *tour.State {
	t.Helper()
	m := costmatrix.New(k, k)
	r := rng.New(seed)
	for src := 0; src < k; src++ {
		for dst := 0; dst < k; dst++ {
			if src == dst {
				continue
			}
			for day := 0; day < k; day++ {
				price := costmatrix.Price(1 + r.Next()%500)
				m.Set(uint16(src), uint16(dst), day, price)
			}
		}
	}
	areas := make([]tour.Area, k)
	for i := 0; i < k; i++ {
		areas[i] = tour.Area{Cities: []uint16{uint16(i)}}
	}
	s, err := tour.New(areas, m, r)
	require.NoError(t, err)
	return s
}

func TestEvalSwap_IIsJReturnsZero(t *testing.T) {
	s := buildRandomLoop(t, 10, 1)
	require.Equal(t, tour.Delta(0), s.EvalSwap(3, 3))
}

func TestEvalSwap_MatchesRecompute_NonAdjacent(t *testing.T) {
	s := buildRandomLoop(t, 12, 2)
	before := s.Cost
	delta := s.EvalSwap(2, 8)
	s.CommitSwap(2, 8)
	after := s.Recompute()
	require.Equal(t, after, tour.Cost(int64(before)+int64(delta)))
}

func TestEvalSwap_MatchesRecompute_Adjacent(t *testing.T) {
	s := buildRandomLoop(t, 12, 3)
	before := s.Cost
	delta := s.EvalSwap(4, 5)
	s.CommitSwap(4, 5)
	after := s.Recompute()
	require.Equal(t, after, tour.Cost(int64(before)+int64(delta)))
}

func TestCommitSwap_SelfInverse(t *testing.T) {
	s := buildRandomLoop(t, 10, 4)
	before := append([]int(nil), s.DayToArea...)
	s.CommitSwap(2, 6)
	s.CommitSwap(2, 6)
	require.Equal(t, before, s.DayToArea)
}

func TestEvalReverse_CapExceeded(t *testing.T) {
	s := buildRandomLoop(t, 40, 5)
	require.Equal(t, tour.DeltaInf, s.EvalReverse(5, 37))
}

func TestEvalReverse_MatchesRecompute(t *testing.T) {
	s := buildRandomLoop(t, 20, 6)
	before := s.Cost
	delta := s.EvalReverse(3, 11)
	s.CommitReverse(3, 11)
	after := s.Recompute()
	require.Equal(t, after, tour.Cost(int64(before)+int64(delta)))
}

func TestCommitReverse_SelfInverse(t *testing.T) {
	s := buildRandomLoop(t, 15, 7)
	before := append([]int(nil), s.DayToArea...)
	s.CommitReverse(2, 9)
	s.CommitReverse(2, 9)
	require.Equal(t, before, s.DayToArea)
}

func TestEvalInsert_CapExceeded(t *testing.T) {
	s := buildRandomLoop(t, 40, 8)
	require.Equal(t, tour.DeltaInf, s.EvalInsert(1, 35))
	require.Equal(t, tour.DeltaInf, s.EvalInsert(35, 1))
}

func TestEvalInsert_MatchesRecompute_Forward(t *testing.T) {
	s := buildRandomLoop(t, 20, 9)
	before := s.Cost
	delta := s.EvalInsert(2, 10)
	s.CommitInsert(2, 10)
	after := s.Recompute()
	require.Equal(t, after, tour.Cost(int64(before)+int64(delta)))
}

func TestEvalInsert_MatchesRecompute_Backward(t *testing.T) {
	s := buildRandomLoop(t, 20, 10)
	before := s.Cost
	delta := s.EvalInsert(10, 2)
	s.CommitInsert(10, 2)
	after := s.Recompute()
	require.Equal(t, after, tour.Cost(int64(before)+int64(delta)))
}

func TestEvalInsert_IEqualsJIsZero(t *testing.T) {
	s := buildRandomLoop(t, 10, 11)
	require.Equal(t, tour.Delta(0), s.EvalInsert(4, 4))
}
