package daily_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/mastermind/internal/daily"
	"github.com/robalobadob/mastermind/internal/db"
	"github.com/robalobadob/mastermind/internal/mastermind"
)

func TestDateKey(t *testing.T) {
	loc := time.FixedZone("UTC+10", 10*3600)
	// 2025-03-02 05:00 at +10 is still March 1st in UTC.
	assert.Equal(t, "2025-03-01", daily.DateKey(time.Date(2025, 3, 2, 5, 0, 0, 0, loc)))
}

func TestSecretIndex(t *testing.T) {
	day := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	a := daily.SecretIndex(day, "salt", 1296)
	b := daily.SecretIndex(day.Add(6*time.Hour), "salt", 1296)
	assert.Equal(t, a, b, "same UTC date, same index")
	assert.GreaterOrEqual(t, a, 0)
	assert.Less(t, a, 1296)
	assert.Equal(t, 0, daily.SecretIndex(day, "salt", 0))
}

func TestSecretAt(t *testing.T) {
	a, err := mastermind.NewAlphabet("ABCD")
	require.NoError(t, err)
	assert.Equal(t, "AAA", daily.SecretAt(a, 3, 0))
	assert.Equal(t, "ABC", daily.SecretAt(a, 3, 6))
	assert.Equal(t, "DDD", daily.SecretAt(a, 3, 63))

	universe, err := mastermind.Universe(4, 3, mastermind.DefaultMaxUniverse)
	require.NoError(t, err)
	for i, c := range universe {
		assert.Equal(t, a.Format(c), daily.SecretAt(a, 3, i))
	}
}

func TestSecret(t *testing.T) {
	a, err := mastermind.NewAlphabet("ABCDEF")
	require.NoError(t, err)
	day := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	s, idx := daily.Secret(day, "salt", a, 4)
	assert.Len(t, s, 4)
	assert.Equal(t, daily.SecretAt(a, 4, idx), s)
}

func TestStore(t *testing.T) {
	ctx := context.Background()
	conn, err := db.OpenAndMigrate(filepath.Join(t.TempDir(), "daily.db"))
	require.NoError(t, err)
	defer conn.Close()
	s := daily.NewStore(conn)

	played, err := s.AlreadyPlayed(ctx, "u1", "2025-03-01")
	require.NoError(t, err)
	assert.False(t, played)

	require.NoError(t, s.InsertResult(ctx, daily.Result{UserID: "u1", Date: "2025-03-01", Guesses: 5, ElapsedMs: 9000}))
	require.NoError(t, s.InsertResult(ctx, daily.Result{UserID: "u2", Date: "2025-03-01", Guesses: 4, ElapsedMs: 20000}))
	require.NoError(t, s.InsertResult(ctx, daily.Result{UserID: "u3", Date: "2025-03-01", Guesses: 4, ElapsedMs: 10000}))
	// duplicate ignored
	require.NoError(t, s.InsertResult(ctx, daily.Result{UserID: "u1", Date: "2025-03-01", Guesses: 1, ElapsedMs: 1}))

	played, err = s.AlreadyPlayed(ctx, "u1", "2025-03-01")
	require.NoError(t, err)
	assert.True(t, played)

	rows, err := s.Leaderboard(ctx, "2025-03-01", 10)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"u3", "u2", "u1"}, []string{rows[0].UserID, rows[1].UserID, rows[2].UserID})
	assert.Equal(t, 5, rows[2].Guesses)

	rows, err = s.Leaderboard(ctx, "2025-03-02", 10)
	require.NoError(t, err)
	assert.Empty(t, rows)
}
