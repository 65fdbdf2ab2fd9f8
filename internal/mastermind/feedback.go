// internal/mastermind/feedback.go
//
// Feedback scoring for a (secret, guess) pair.
//   - black: positions where secret and guess agree.
//   - white: colors shared by the mismatched positions, counted with multiplicity.
//
// White pegs come from a single pass with a signed per-color balance:
// balance[c] > 0 means the guess has unmatched c's waiting for the secret,
// balance[c] < 0 means the secret has unmatched c's waiting for the guess.

package mastermind

import "fmt"

// Outcome is the (black, white) feedback for one guess.
type Outcome struct {
	Black int `json:"black"`
	White int `json:"white"`
}

func (o Outcome) String() string { return fmt.Sprintf("%d black, %d white", o.Black, o.White) }

// OutcomeIndex maps a valid (black, white) pair for sequences of the given
// length onto 0..NumOutcomes(length)-1.
func OutcomeIndex(length, black, white int) int {
	return black*(2*length+3-black)/2 + white
}

// NumOutcomes is the size of an outcome counting buffer. It includes the
// unreachable (length-1, 1) slot.
func NumOutcomes(length int) int { return OutcomeIndex(length, length+1, 0) }

// ValidOutcome reports whether (black, white) is within range for length.
// (length-1, 1) passes: it is in range, just never produced.
func ValidOutcome(length, black, white int) bool {
	return black >= 0 && white >= 0 && black+white <= length
}

// Evaluate scores guess against secret. Codes of different lengths are
// rejected with ErrSequenceLength.
func Evaluate(secret, guess Code) (black, white int, err error) {
	if len(secret) != len(guess) {
		return 0, 0, fmt.Errorf("%w: secret has %d symbols, guess %d", ErrSequenceLength, len(secret), len(guess))
	}
	black, white = newScorer(MaxColors).score(secret, guess)
	return black, white, nil
}

// scorer reuses its balance buffer across calls; it is not safe for
// concurrent use. Callers guarantee equal lengths.
type scorer struct {
	balance []int
}

func newScorer(colors int) *scorer {
	return &scorer{balance: make([]int, colors)}
}

func (s *scorer) score(secret, guess Code) (black, white int) {
	bal := s.balance
	for i, t := range secret {
		g := guess[i]
		if t == g {
			black++
			continue
		}
		if bal[g] < 0 {
			white++
		}
		bal[g]++
		if bal[t] > 0 {
			white++
		}
		bal[t]--
	}
	// Only touched colors need clearing.
	for i, t := range secret {
		bal[t] = 0
		bal[guess[i]] = 0
	}
	return black, white
}

func (s *scorer) index(secret, guess Code) int {
	b, w := s.score(secret, guess)
	return OutcomeIndex(len(secret), b, w)
}
