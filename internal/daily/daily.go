// internal/daily/daily.go
//
// Deterministic daily challenge.
// Every player gets the same secret for a given UTC date: the date is
// hashed with HMAC-SHA256 under a server salt and reduced modulo the size of
// the preset's universe, then the index is spelled out in the alphabet.

package daily

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"math"
	"time"

	"github.com/robalobadob/mastermind/internal/mastermind"
)

// DateKey returns YYYY-MM-DD in UTC.
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// SecretIndex returns a deterministic index in [0, n) for a date using
// HMAC(salt, YYYY-MM-DD) % n.
func SecretIndex(date time.Time, salt string, n int) int {
	if n <= 0 {
		return 0
	}
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(DateKey(date)))
	sum := h.Sum(nil)
	// first 8 bytes as uint64 for the modulus
	v := binary.BigEndian.Uint64(sum[:8])
	return int(v % uint64(n))
}

// SecretAt spells the idx-th sequence of the lexicographic universe, so
// index 0 is all first-color and index K^L-1 is all last-color.
func SecretAt(a *mastermind.Alphabet, length, idx int) string {
	k := a.Size()
	code := make(mastermind.Code, length)
	for i := length - 1; i >= 0; i-- {
		code[i] = byte(idx % k)
		idx /= k
	}
	return a.Format(code)
}

// Secret returns the secret for date and its universe index.
func Secret(date time.Time, salt string, a *mastermind.Alphabet, length int) (string, int) {
	n, _ := mastermind.UniverseSize(a.Size(), length, math.MaxInt)
	idx := SecretIndex(date, salt, n)
	return SecretAt(a, length, idx), idx
}
