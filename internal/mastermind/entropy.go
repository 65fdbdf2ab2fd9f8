// internal/mastermind/entropy.go
//
// Expected information of a guess over a candidate set.
// The candidates are bucketed by outcome index; every candidate is assumed
// equally likely, so the entropy of the bucket distribution is the number of
// bits the guess is expected to reveal.

package mastermind

import (
	"fmt"
	"math"
)

// Entropy returns −Σ p·log2(p) over the outcome buckets of guess against
// candidates. It is 0 when len(candidates) <= 1. Every candidate must have
// the guess's length, otherwise ErrSequenceLength is returned.
func Entropy(candidates []Code, guess Code) (float64, error) {
	for _, c := range candidates {
		if len(c) != len(guess) {
			return 0, fmt.Errorf("%w: candidate has %d symbols, guess %d", ErrSequenceLength, len(c), len(guess))
		}
	}
	return newEvaluator(MaxColors, len(guess)).entropy(candidates, guess), nil
}

// evaluator owns the scratch buffers of an entropy scan.
type evaluator struct {
	sc     *scorer
	counts []int
}

func newEvaluator(colors, length int) *evaluator {
	return &evaluator{sc: newScorer(colors), counts: make([]int, NumOutcomes(length))}
}

func (ev *evaluator) entropy(candidates []Code, guess Code) float64 {
	if len(candidates) <= 1 {
		return 0
	}
	clear(ev.counts)
	for _, c := range candidates {
		ev.counts[ev.sc.index(c, guess)]++
	}
	n := float64(len(candidates))
	h := 0.0
	for _, cnt := range ev.counts {
		if cnt == 0 {
			continue
		}
		p := float64(cnt) / n
		h -= p * math.Log2(p)
	}
	return h
}
