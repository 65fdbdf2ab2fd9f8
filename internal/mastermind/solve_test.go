package mastermind_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/mastermind/internal/mastermind"
)

func checkTurns(t *testing.T, secret string, turns []mastermind.Turn) {
	t.Helper()
	require.NotEmpty(t, turns)
	last := turns[len(turns)-1]
	assert.Equal(t, secret, last.Guess)
	assert.Equal(t, 1, last.Remaining)
	for i := 1; i < len(turns); i++ {
		if turns[i-1].Remaining > 1 {
			assert.Less(t, turns[i].Remaining, turns[i-1].Remaining, "turn %d must shrink the candidates", i)
		}
	}
}

func TestSolve_AllSecretsSmall(t *testing.T) {
	universe, err := mastermind.Universe(4, 3, mastermind.DefaultMaxUniverse)
	require.NoError(t, err)
	a, _ := mastermind.NewAlphabet("ABCD")
	for _, code := range universe {
		secret := a.Format(code)
		turns, err := mastermind.Solve("ABCD", secret)
		require.NoError(t, err, secret)
		checkTurns(t, secret, turns)
	}
}

func TestSolve_Classic(t *testing.T) {
	for _, secret := range []string{"CAFE", "AAAA", "FDBB"} {
		t.Run(secret, func(t *testing.T) {
			turns, err := mastermind.Solve("ABCDEF", secret)
			require.NoError(t, err)
			checkTurns(t, secret, turns)
			assert.Equal(t, "ABCD", turns[0].Guess)
			assert.LessOrEqual(t, len(turns), 7)
		})
	}
}

func TestSolve_Errors(t *testing.T) {
	_, err := mastermind.Solve("ABCD", "ABX")
	assert.ErrorIs(t, err, mastermind.ErrUnknownSymbol)
	_, err = mastermind.Solve("ABCD", "")
	assert.ErrorIs(t, err, mastermind.ErrInvalidConfiguration)
}
