package registry_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kiwitsc/kiwitsc/internal/registry"
)

func TestIntern_FirstCodeIsIndexZero(t *testing.T) {
	r := registry.New()
	idx, err := r.Intern(registry.NewCity("PRG"))
	require.NoError(t, err)
	require.Equal(t, uint16(0), idx)
}

func TestIntern_SameCodeSameIndex(t *testing.T) {
	r := registry.New()
	a, err := r.Intern(registry.NewCity("PRG"))
	require.NoError(t, err)
	b, err := r.Intern(registry.NewCity("PRG"))
	require.NoError(t, err)
	require.Equal(t, a, b)
}

func TestIntern_DistinctCodesDistinctIndices(t *testing.T) {
	r := registry.New()
	a, _ := r.Intern(registry.NewCity("PRG"))
	b, _ := r.Intern(registry.NewCity("LON"))
	require.NotEqual(t, a, b)
}

func TestLookup_RoundTrip(t *testing.T) {
	r := registry.New()
	idx, err := r.Intern(registry.NewCity("PRG"))
	require.NoError(t, err)

	code, ok := r.Lookup(idx)
	require.True(t, ok)
	require.Equal(t, "PRG", code.String())
}

func TestLookup_OutOfRange(t *testing.T) {
	r := registry.New()
	_, ok := r.Lookup(0)
	require.False(t, ok)
}

func TestCount(t *testing.T) {
	r := registry.New()
	require.Equal(t, 0, r.Count())
	r.Intern(registry.NewCity("PRG"))
	r.Intern(registry.NewCity("LON"))
	r.Intern(registry.NewCity("PRG"))
	require.Equal(t, 2, r.Count())
}

func TestNewCity_PanicsOnBadLength(t *testing.T) {
	require.Panics(t, func() {
		registry.NewCity("PR")
	})
}
