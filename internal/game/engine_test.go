package game_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/mastermind/internal/game"
	"github.com/robalobadob/mastermind/internal/mastermind"
)

func TestNew(t *testing.T) {
	g, err := game.New(game.Config{Colors: "ABCDEF", Length: 4})
	require.NoError(t, err)
	assert.NotEmpty(t, g.ID)
	assert.Equal(t, game.ModeAssist, g.Mode)
	assert.Equal(t, "custom", g.Preset)
	assert.Equal(t, 10, g.MaxGuesses)
	assert.Equal(t, game.StatePlaying, g.State())

	_, err = game.New(game.Config{Colors: "ABCDEF", Length: 4, Mode: "spectate"})
	assert.ErrorIs(t, err, game.ErrInvalidMode)

	_, err = game.New(game.Config{Colors: "ABCDEF", Length: 4, Secret: "ABCD"})
	assert.ErrorIs(t, err, game.ErrWrongMode)

	_, err = game.New(game.Config{Colors: "AAB", Length: 4})
	assert.ErrorIs(t, err, mastermind.ErrInvalidConfiguration)

	_, err = game.New(game.Config{Colors: "ABCDEF", Length: 4, Mode: game.ModePlay, Secret: "ABCZ"})
	assert.ErrorIs(t, err, mastermind.ErrUnknownSymbol)

	_, err = game.New(game.Config{Colors: "ABCDEF", Length: 9, MaxUniverse: 1000})
	assert.ErrorIs(t, err, mastermind.ErrResourceExhausted)
}

func TestRandomSecret(t *testing.T) {
	a, err := mastermind.NewAlphabet("XY")
	require.NoError(t, err)
	for range 20 {
		s := game.RandomSecret(a, 5)
		_, err := a.Parse(s, 5)
		require.NoError(t, err)
	}
}

func TestPlayMode(t *testing.T) {
	g, err := game.New(game.Config{Colors: "ABCDEF", Length: 4, Mode: game.ModePlay, Secret: "CAFE", MaxGuesses: 3})
	require.NoError(t, err)

	turn, st, err := g.ApplyGuess("ABCD")
	require.NoError(t, err)
	assert.Equal(t, mastermind.Outcome{Black: 0, White: 2}, turn.Outcome)
	assert.Equal(t, game.StatePlaying, st)
	assert.Empty(t, g.View().Solution, "secret stays hidden while playing")

	_, _, err = g.ApplyFeedback("ABCD", 0, 2)
	assert.ErrorIs(t, err, game.ErrWrongMode)

	_, _, err = g.ApplyGuess("ABC")
	assert.ErrorIs(t, err, mastermind.ErrSequenceLength)
	assert.Len(t, g.View().Turns, 1)

	turn, st, err = g.ApplyGuess("CAFE")
	require.NoError(t, err)
	assert.Equal(t, 4, turn.Outcome.Black)
	assert.Equal(t, game.StateWon, st)
	assert.Equal(t, 1, turn.Remaining)
	assert.Equal(t, "CAFE", g.View().Solution)

	_, _, err = g.ApplyGuess("CAFE")
	assert.ErrorIs(t, err, game.ErrFinished)
}

func TestPlayMode_Lost(t *testing.T) {
	g, err := game.New(game.Config{Colors: "ABCD", Length: 3, Mode: game.ModePlay, Secret: "DDD", MaxGuesses: 2})
	require.NoError(t, err)
	_, st, err := g.ApplyGuess("AAA")
	require.NoError(t, err)
	assert.Equal(t, game.StatePlaying, st)
	_, st, err = g.ApplyGuess("BBB")
	require.NoError(t, err)
	assert.Equal(t, game.StateLost, st)
	assert.Equal(t, "DDD", g.View().Solution)

	_, err = g.Hint()
	assert.ErrorIs(t, err, game.ErrFinished)
}

func TestAssistMode(t *testing.T) {
	g, err := game.New(game.Config{Preset: "classic", Colors: "ABCDEF", Length: 4})
	require.NoError(t, err)

	h, err := g.Hint()
	require.NoError(t, err)
	assert.Equal(t, "ABCD", h.Guess)
	assert.Equal(t, []int{1, 1, 1, 1}, h.Opening)
	assert.Equal(t, 1296, h.Candidates)
	assert.InDelta(t, 3.057, h.Entropy, 0.001)

	_, _, err = g.ApplyGuess("ABCD")
	assert.ErrorIs(t, err, game.ErrWrongMode)

	turn, st, err := g.ApplyFeedback("ABCD", 0, 2)
	require.NoError(t, err)
	assert.Equal(t, game.StatePlaying, st)
	assert.Less(t, turn.Remaining, 1296)
	assert.Greater(t, turn.Bits, 0.0)

	// contradicts the first turn: nothing is recorded
	_, _, err = g.ApplyFeedback("ABCD", 4, 0)
	assert.ErrorIs(t, err, mastermind.ErrInconsistentFeedback)
	assert.Len(t, g.View().Turns, 1)

	h, err = g.Hint()
	require.NoError(t, err)
	assert.Nil(t, h.Opening)
	assert.Equal(t, turn.Remaining, h.Candidates)

	cands, total := g.Candidates(5)
	assert.Len(t, cands, 5)
	assert.Equal(t, turn.Remaining, total)
	all, _ := g.Candidates(0)
	assert.Len(t, all, total)
}

func TestAssistMode_SolvedWhenOneLeft(t *testing.T) {
	g, err := game.New(game.Config{Colors: "AB", Length: 2})
	require.NoError(t, err)
	// AA vs secret BA → 1 black; leaves AB and BA. AB vs BA → 0 black, 2 white.
	_, st, err := g.ApplyFeedback("AA", 1, 0)
	require.NoError(t, err)
	assert.Equal(t, game.StatePlaying, st)
	_, st, err = g.ApplyFeedback("AB", 0, 2)
	require.NoError(t, err)
	assert.Equal(t, game.StateSolved, st)

	v := g.View()
	assert.Equal(t, "BA", v.Solution)
	assert.Equal(t, 1, v.Candidates)

	_, _, err = g.ApplyFeedback("BA", 2, 0)
	assert.ErrorIs(t, err, game.ErrFinished)
}

func TestView(t *testing.T) {
	g, err := game.New(game.Config{Preset: "mini", Colors: "ABCD", Length: 3, MaxGuesses: 8})
	require.NoError(t, err)
	v := g.View()
	assert.Equal(t, g.ID, v.ID)
	assert.Equal(t, "mini", v.Preset)
	assert.Equal(t, 64, v.Candidates)
	assert.Equal(t, []string{"ABCD"}, v.Classes)
	assert.NotNil(t, v.Turns)

	e, err := g.Entropy("AAA")
	require.NoError(t, err)
	assert.Greater(t, e, 0.0)
	assert.Equal(t, []string{"ABCD"}, g.Classes())
}
