package mastermind

import (
	"fmt"
	"unicode/utf8"
)

// Turn records one guess played against a secret.
type Turn struct {
	Guess     string  `json:"guess"`
	Outcome   Outcome `json:"outcome"`
	Bits      float64 `json:"bits"`
	Remaining int     `json:"remaining"`
}

// Solve plays against a known secret: the opening guess comes from
// ChooseInitialIntent, every later one from Suggest. It returns the turns up
// to and including the one that hits the secret.
func Solve(colors, secret string, opts ...Option) ([]Turn, error) {
	e, err := New(colors, utf8.RuneCountInString(secret), opts...)
	if err != nil {
		return nil, err
	}
	if _, err := e.Parse(secret); err != nil {
		return nil, err
	}

	var turns []Turn
	guess := e.InitialGuess()
	// Every turn with more than one candidate left removes at least one,
	// so this bound is never reached by a correct engine.
	for i := 0; i <= e.NumIntents(); i++ {
		out, err := e.Evaluate(secret, guess)
		if err != nil {
			return turns, err
		}
		bits, err := e.Update(guess, out.Black, out.White)
		if err != nil {
			return turns, err
		}
		turns = append(turns, Turn{Guess: guess, Outcome: out, Bits: bits, Remaining: e.NumCandidates()})
		if out.Black == e.Length() {
			return turns, nil
		}
		guess = e.Suggest()
	}
	return turns, fmt.Errorf("mastermind: no solution for %s after %d turns", secret, len(turns))
}
