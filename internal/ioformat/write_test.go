package ioformat_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kiwitsc/kiwitsc/internal/ioformat"
	"github.com/kiwitsc/kiwitsc/internal/rng"
	"github.com/kiwitsc/kiwitsc/internal/tour"
)

func TestWrite_TrivialTwoCityOneDay(t *testing.T) {
	input := "2 AAA\n" +
		"start\nAAA\n" +
		"second\nBBB\n" +
		"AAA BBB 1 100\n" +
		"BBB AAA 2 200\n"

	p, err := ioformat.Parse(strings.NewReader(input))
	require.NoError(t, err)

	s, err := tour.New(p.Areas, p.Matrix, rng.New(1))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, ioformat.Write(&buf, p.Registry, s, p.Matrix))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Equal(t, "300", lines[0])
	require.Equal(t, "AAA BBB 1 100", lines[1])
	require.Equal(t, "BBB AAA 2 200", lines[2])
}

func TestWrite_RejectsUnroutableLeg(t *testing.T) {
	// No flight-price lines at all: every leg stays costmatrix.NoFlight.
	p, err := ioformat.Parse(strings.NewReader("2 AAA\na\nAAA\nb\nBBB\n"))
	require.NoError(t, err)
	built, err := tour.New(p.Areas, p.Matrix, rng.New(2))
	require.NoError(t, err)

	var buf bytes.Buffer
	err = ioformat.Write(&buf, p.Registry, built, p.Matrix)
	require.ErrorIs(t, err, ioformat.ErrUnroutableLeg)
}
