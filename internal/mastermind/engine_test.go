package mastermind_test

import (
	"errors"
	"math"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/mastermind/internal/mastermind"
)

func TestNew_Errors(t *testing.T) {
	cases := []struct {
		name   string
		colors string
		length int
		opts   []mastermind.Option
		err    error
	}{
		{"DuplicateColor", "ABCA", 4, nil, mastermind.ErrInvalidConfiguration},
		{"EmptyAlphabet", "", 4, nil, mastermind.ErrInvalidConfiguration},
		{"ZeroLength", "ABCD", 0, nil, mastermind.ErrInvalidConfiguration},
		{"NegativeLength", "ABCD", -2, nil, mastermind.ErrInvalidConfiguration},
		{"TooLarge", "ABCDEFGHIJ", 10, nil, mastermind.ErrResourceExhausted},
		{"CustomLimit", "ABCD", 2, []mastermind.Option{mastermind.WithMaxUniverse(10)}, mastermind.ErrResourceExhausted},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := mastermind.New(tc.colors, tc.length, tc.opts...)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tc.err), "got %v, want %v", err, tc.err)
		})
	}
}

func TestEngine_Candidates(t *testing.T) {
	e, err := mastermind.New("ABCDEF", 4)
	require.NoError(t, err)
	assert.Equal(t, 1296, e.NumCandidates())
	assert.Equal(t, 1296, e.NumIntents())

	first := slices.Collect(e.Candidates())
	second := slices.Collect(e.Candidates())
	require.Len(t, first, 1296)
	assert.Equal(t, first, second, "iteration restarts from the first candidate")
	assert.Equal(t, "AAAA", first[0])
	assert.Equal(t, "AAAB", first[1])
	assert.Equal(t, "FFFF", first[len(first)-1])
	assert.True(t, slices.IsSorted(first))
}

func TestEngine_SequenceErrors(t *testing.T) {
	e, err := mastermind.New("ABCDEF", 4)
	require.NoError(t, err)

	_, err = e.Entropy("ABCZ")
	assert.ErrorIs(t, err, mastermind.ErrUnknownSymbol)
	_, err = e.Entropy("ABC")
	assert.ErrorIs(t, err, mastermind.ErrSequenceLength)
	_, err = e.Update("ABCDE", 1, 0)
	assert.ErrorIs(t, err, mastermind.ErrSequenceLength)
	assert.ErrorIs(t, e.UpdateEquivalences("XXXX"), mastermind.ErrUnknownSymbol)
	_, err = e.Evaluate("ABCD", "abcd")
	assert.ErrorIs(t, err, mastermind.ErrUnknownSymbol)
	assert.Equal(t, 1296, e.NumCandidates())
}

func TestEngine_Evaluate(t *testing.T) {
	e, err := mastermind.New("ABCDEF", 4)
	require.NoError(t, err)
	out, err := e.Evaluate("ABAB", "AABB")
	require.NoError(t, err)
	assert.Equal(t, mastermind.Outcome{Black: 2, White: 2}, out)
}

func TestEngine_ChooseInitialIntent(t *testing.T) {
	e, err := mastermind.New("ABCD", 2)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 1}, e.ChooseInitialIntent())
	assert.Equal(t, "AB", e.InitialGuess())

	single, err := mastermind.New("A", 3)
	require.NoError(t, err)
	assert.Equal(t, []int{3}, single.ChooseInitialIntent())
	assert.Equal(t, "AAA", single.InitialGuess())
}

func TestEngine_ChooseInitialIntentClassic(t *testing.T) {
	e, err := mastermind.New("ABCDEF", 4)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 1, 1, 1}, e.ChooseInitialIntent())
	assert.Equal(t, "ABCD", e.InitialGuess())
}

func TestEngine_ChooseInitialIntentMatchesFullScan(t *testing.T) {
	e, err := mastermind.New("ABCD", 3)
	require.NoError(t, err)
	best, err := e.Entropy(e.ChooseIntent())
	require.NoError(t, err)
	opening, err := e.Entropy(e.InitialGuess())
	require.NoError(t, err)
	assert.InDelta(t, best, opening, 1e-12)
}

func TestEngine_Update(t *testing.T) {
	e, err := mastermind.New("ABCDEF", 4)
	require.NoError(t, err)

	const secret, guess = "CAFE", "AABB"
	out, err := e.Evaluate(secret, guess)
	require.NoError(t, err)

	before := e.NumCandidates()
	bits, err := e.Update(guess, out.Black, out.White)
	require.NoError(t, err)
	after := e.NumCandidates()

	assert.Less(t, after, before)
	assert.InDelta(t, math.Log2(float64(before)/float64(after)), bits, 1e-12)

	ok, err := e.IsCandidate(secret)
	require.NoError(t, err)
	assert.True(t, ok, "the secret survives truthful feedback")

	for c := range e.Candidates() {
		got, err := e.Evaluate(c, guess)
		require.NoError(t, err)
		require.Equal(t, out, got, "candidate %s", c)
	}
	assert.Equal(t, []string{"CDEF", "AB"}, e.Classes())
}

func TestEngine_UpdateInconsistent(t *testing.T) {
	e, err := mastermind.New("ABCDEF", 4)
	require.NoError(t, err)

	_, err = e.Update("ABCD", 3, 1)
	assert.ErrorIs(t, err, mastermind.ErrInconsistentFeedback)
	_, err = e.Update("ABCD", 0, 5)
	assert.ErrorIs(t, err, mastermind.ErrInconsistentFeedback)
	_, err = e.Update("ABCD", -1, 0)
	assert.ErrorIs(t, err, mastermind.ErrInconsistentFeedback)
	assert.Equal(t, 1296, e.NumCandidates())
	assert.True(t, e.HasEquivalences())
	assert.Equal(t, []string{"ABCDEF"}, e.Classes())

	_, err = e.Update("AAAA", 4, 0)
	require.NoError(t, err)
	require.Equal(t, 1, e.NumCandidates())
	classes := e.Classes()

	_, err = e.Update("BBBB", 4, 0)
	assert.ErrorIs(t, err, mastermind.ErrInconsistentFeedback)
	assert.Equal(t, 1, e.NumCandidates(), "candidates untouched on error")
	assert.Equal(t, classes, e.Classes(), "classes untouched on error")

	// Corrected feedback is accepted afterwards.
	bits, err := e.Update("BBBB", 0, 0)
	require.NoError(t, err)
	assert.Zero(t, bits)
}

func TestEngine_UpdateEquivalences(t *testing.T) {
	e, err := mastermind.New("ABCDEF", 4)
	require.NoError(t, err)
	require.NoError(t, e.UpdateEquivalences("AABC"))
	assert.Equal(t, []string{"DEF", "BC", "A"}, e.Classes())
	require.NoError(t, e.UpdateEquivalences("AABC"))
	assert.Equal(t, []string{"DEF", "BC", "A"}, e.Classes())

	rep, err := e.Representative("FCEB")
	require.NoError(t, err)
	assert.Equal(t, "DBEC", rep)

	classes, err := e.ColorClasses("BDDD")
	require.NoError(t, err)
	assert.Equal(t, []string{"ACEF", "B", "D"}, classes)
}

func TestEngine_ChooseIntentPrefersCandidate(t *testing.T) {
	e, err := mastermind.New("ABCD", 3)
	require.NoError(t, err)
	_, err = e.Update("AAB", 1, 1)
	require.NoError(t, err)

	g := e.ChooseIntent()
	h, err := e.Entropy(g)
	require.NoError(t, err)
	for c := range e.Candidates() {
		hc, err := e.Entropy(c)
		require.NoError(t, err)
		require.LessOrEqual(t, hc, h)
	}
}

func TestEngine_ChooseIntentSingleCandidate(t *testing.T) {
	e, err := mastermind.New("ABCD", 2)
	require.NoError(t, err)
	_, err = e.Update("AB", 2, 0)
	require.NoError(t, err)
	require.Equal(t, 1, e.NumCandidates())
	assert.Equal(t, "AB", e.ChooseIntent())
	assert.Equal(t, "AB", e.Choose2ndIntent())
}

// Class grouping ignores positions, so while colors are still grouped the
// representative's entropy can differ from the guess's own.
func TestEngine_Choose2ndIntentDiffersWhileGrouped(t *testing.T) {
	e, err := mastermind.New("ABCDEF", 4)
	require.NoError(t, err)
	out, err := e.Evaluate("BCDA", "ABCD")
	require.NoError(t, err)
	_, err = e.Update("ABCD", out.Black, out.White)
	require.NoError(t, err)
	require.True(t, e.HasEquivalences())

	plain, grouped := e.ChooseIntent(), e.Choose2ndIntent()
	assert.Equal(t, "BCAA", plain)
	assert.Equal(t, "AABC", grouped)
	hPlain, err := e.Entropy(plain)
	require.NoError(t, err)
	hGrouped, err := e.Entropy(grouped)
	require.NoError(t, err)
	assert.Greater(t, hPlain, hGrouped)
}

func TestEngine_Choose2ndIntentAgreesOnceDiscrete(t *testing.T) {
	for _, secret := range []string{"ABC", "DDA", "CCC", "BAD"} {
		t.Run(secret, func(t *testing.T) {
			e, err := mastermind.New("ABCD", 3)
			require.NoError(t, err)
			require.Equal(t, e.ChooseIntent(), e.Choose2ndIntent())

			guess := e.InitialGuess()
			for e.NumCandidates() > 1 {
				out, err := e.Evaluate(secret, guess)
				require.NoError(t, err)
				_, err = e.Update(guess, out.Black, out.White)
				require.NoError(t, err)
				plain := e.ChooseIntent()
				if !e.HasEquivalences() {
					require.Equal(t, plain, e.Choose2ndIntent())
				}
				guess = plain
			}
		})
	}
}
