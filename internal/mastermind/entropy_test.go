package mastermind_test

import (
	"math"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/mastermind/internal/mastermind"
)

func entropy(t *testing.T, candidates []mastermind.Code, guess mastermind.Code) float64 {
	t.Helper()
	h, err := mastermind.Entropy(candidates, guess)
	require.NoError(t, err)
	return h
}

func TestEntropy_LengthMismatch(t *testing.T) {
	a, _ := mastermind.NewAlphabet("ABCD")
	cands := []mastermind.Code{mustParse(t, a, "ABC"), mustParse(t, a, "ABCD")}
	_, err := mastermind.Entropy(cands, mustParse(t, a, "ABC"))
	assert.ErrorIs(t, err, mastermind.ErrSequenceLength)
}

func TestEntropy_SingleCandidateIsZero(t *testing.T) {
	universe, err := mastermind.Universe(6, 4, mastermind.DefaultMaxUniverse)
	require.NoError(t, err)
	for _, g := range universe[:50] {
		assert.Zero(t, entropy(t, universe[7:8], g))
	}
	assert.Zero(t, entropy(t, nil, universe[0]))
}

func TestEntropy_IdenticalOutcomes(t *testing.T) {
	a, _ := mastermind.NewAlphabet("ABCD")
	cands := []mastermind.Code{mustParse(t, a, "CC"), mustParse(t, a, "DD")}
	assert.Zero(t, entropy(t, cands, mustParse(t, a, "AB")))
	assert.Equal(t, 1.0, entropy(t, cands, mustParse(t, a, "CA")))
}

func TestEntropy_OrderIndependent(t *testing.T) {
	universe, err := mastermind.Universe(5, 3, mastermind.DefaultMaxUniverse)
	require.NoError(t, err)
	reversed := slices.Clone(universe)
	slices.Reverse(reversed)

	for _, g := range universe {
		require.Equal(t, entropy(t, universe, g), entropy(t, reversed, g))
	}
}

func TestEntropy_Bounds(t *testing.T) {
	universe, err := mastermind.Universe(4, 3, mastermind.DefaultMaxUniverse)
	require.NoError(t, err)
	upper := math.Log2(float64(len(universe)))
	for _, g := range universe {
		h := entropy(t, universe, g)
		require.GreaterOrEqual(t, h, 0.0)
		require.LessOrEqual(t, h, upper)
	}
}

func TestEntropy_TwoCodesOneBit(t *testing.T) {
	universe, err := mastermind.Universe(2, 1, mastermind.DefaultMaxUniverse)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, entropy(t, universe, universe[0]), 1e-12)
}
