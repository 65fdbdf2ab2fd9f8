// internal/mastermind/engine.go
//
// Engine: the guess-selection and candidate-refinement state of one game.
// Responsibilities:
//   - Own the candidate set (secrets still consistent with all feedback).
//   - Own the fixed intent set (every sequence, usable as a guess).
//   - Own the color partition (colors still interchangeable).
//   - Rank guesses by one-step entropy and apply feedback.
//
// Notes:
//   - Candidates and intents are kept in lexicographic order of color index,
//     which is also the tie-break order for equally informative guesses.
//   - An Engine is not safe for concurrent use.

package mastermind

import (
	"bytes"
	"fmt"
	"iter"
	"math"
	"slices"
)

type options struct {
	maxUniverse int
}

// Option configures New.
type Option func(*options)

// WithMaxUniverse sets the largest K^L New will materialize.
func WithMaxUniverse(n int) Option {
	return func(o *options) { o.maxUniverse = n }
}

// Engine suggests guesses and narrows the candidate set.
type Engine struct {
	alphabet   *Alphabet
	length     int
	intents    []Code
	candidates []Code
	classes    *ColorPartition
	ev         *evaluator
}

// New builds an engine for the given colors and sequence length.
// The candidate set starts as the full universe of len(colors)^length codes.
func New(colors string, length int, opts ...Option) (*Engine, error) {
	o := options{maxUniverse: DefaultMaxUniverse}
	for _, opt := range opts {
		opt(&o)
	}
	alphabet, err := NewAlphabet(colors)
	if err != nil {
		return nil, err
	}
	if length <= 0 {
		return nil, fmt.Errorf("%w: length %d must be positive", ErrInvalidConfiguration, length)
	}
	universe, err := Universe(alphabet.Size(), length, o.maxUniverse)
	if err != nil {
		return nil, err
	}
	return &Engine{
		alphabet:   alphabet,
		length:     length,
		intents:    universe,
		candidates: universe,
		classes:    NewColorPartition(alphabet.Size()),
		ev:         newEvaluator(alphabet.Size(), length),
	}, nil
}

// Alphabet returns the engine's colors.
func (e *Engine) Alphabet() *Alphabet { return e.alphabet }

// Length returns L, the number of positions.
func (e *Engine) Length() int { return e.length }

// NumCandidates returns the number of secrets still possible.
func (e *Engine) NumCandidates() int { return len(e.candidates) }

// NumIntents returns the number of guesses considered; it never changes.
func (e *Engine) NumIntents() int { return len(e.intents) }

// Candidates yields the remaining candidates in order. Each range over the
// returned sequence starts from the first candidate again.
func (e *Engine) Candidates() iter.Seq[string] {
	cands := e.candidates
	return func(yield func(string) bool) {
		for _, c := range cands {
			if !yield(e.alphabet.Format(c)) {
				return
			}
		}
	}
}

// Parse converts s into a Code for this engine.
func (e *Engine) Parse(s string) (Code, error) { return e.alphabet.Parse(s, e.length) }

// IsCandidate reports whether seq is still a possible secret.
func (e *Engine) IsCandidate(seq string) (bool, error) {
	code, err := e.Parse(seq)
	if err != nil {
		return false, err
	}
	return e.isCandidate(code), nil
}

func (e *Engine) isCandidate(code Code) bool {
	_, found := slices.BinarySearchFunc(e.candidates, code, func(a, b Code) int {
		return bytes.Compare(a, b)
	})
	return found
}

// Evaluate scores guess against secret.
func (e *Engine) Evaluate(secret, guess string) (Outcome, error) {
	s, err := e.Parse(secret)
	if err != nil {
		return Outcome{}, err
	}
	g, err := e.Parse(guess)
	if err != nil {
		return Outcome{}, err
	}
	b, w := e.ev.sc.score(s, g)
	return Outcome{Black: b, White: w}, nil
}

// Entropy returns the expected information, in bits, of guessing seq
// against the current candidates. seq need not be a candidate.
func (e *Engine) Entropy(seq string) (float64, error) {
	code, err := e.Parse(seq)
	if err != nil {
		return 0, err
	}
	return e.ev.entropy(e.candidates, code), nil
}

// CanonicalGuess builds the guess that repeats the i-th color partition[i] times.
func (e *Engine) CanonicalGuess(partition []int) Code {
	guess := make(Code, 0, e.length)
	for color, n := range partition {
		for j := 0; j < n; j++ {
			guess = append(guess, byte(color))
		}
	}
	return guess
}

// ChooseInitialIntent returns the partition of L into at most K parts whose
// canonical guess has maximal entropy, the first generated on ties.
func (e *Engine) ChooseInitialIntent() []int {
	var best []int
	maxH := -1.0
	for _, part := range Partitions(e.length, e.alphabet.Size()) {
		if h := e.ev.entropy(e.candidates, e.CanonicalGuess(part)); h > maxH {
			best, maxH = part, h
		}
	}
	return best
}

// InitialGuess renders the canonical guess of ChooseInitialIntent.
func (e *Engine) InitialGuess() string {
	return e.alphabet.Format(e.CanonicalGuess(e.ChooseInitialIntent()))
}

// ChooseIntent scans every intent and returns a guess of maximal entropy,
// preferring one that could itself be the secret.
func (e *Engine) ChooseIntent() string {
	return e.alphabet.Format(e.chooseBy(func(g Code) float64 {
		return e.ev.entropy(e.candidates, g)
	}))
}

// Choose2ndIntent scores each intent through its representative under the
// current color classes, so guesses with the same representative are scored
// once. Classes group colors by count only, not position, so the pick matches
// ChooseIntent only once the classes are discrete.
//
// UpdateEquivalences must have seen every guess played so far.
func (e *Engine) Choose2ndIntent() string {
	cache := make(map[string]float64)
	return e.alphabet.Format(e.chooseBy(func(g Code) float64 {
		rep := e.classes.Representative(g)
		h, ok := cache[string(rep)]
		if !ok {
			h = e.ev.entropy(e.candidates, rep)
			cache[string(rep)] = h
		}
		return h
	}))
}

// Suggest returns Choose2ndIntent while equivalent colors remain and
// ChooseIntent once the color classes are discrete.
func (e *Engine) Suggest() string {
	if e.HasEquivalences() {
		return e.Choose2ndIntent()
	}
	return e.ChooseIntent()
}

func (e *Engine) chooseBy(score func(Code) float64) Code {
	maxH := -1.0
	var optimal []int
	for i, g := range e.intents {
		h := score(g)
		if h > maxH {
			maxH = h
			optimal = optimal[:0]
		}
		if h == maxH {
			optimal = append(optimal, i)
		}
	}
	for _, i := range optimal {
		if e.isCandidate(e.intents[i]) {
			return e.intents[i]
		}
	}
	return e.intents[optimal[0]]
}

// HasEquivalences reports whether some colors are still interchangeable.
func (e *Engine) HasEquivalences() bool { return !e.classes.Discrete() }

// Classes returns the current color classes rendered as strings.
func (e *Engine) Classes() []string {
	return e.formatClasses(e.classes.Classes())
}

// ColorClasses groups the colors by how often they occur in guess.
func (e *Engine) ColorClasses(guess string) ([]string, error) {
	code, err := e.Parse(guess)
	if err != nil {
		return nil, err
	}
	return e.formatClasses(ColorClasses(e.alphabet.Size(), code)), nil
}

func (e *Engine) formatClasses(classes [][]int) []string {
	out := make([]string, len(classes))
	for i, cls := range classes {
		out[i] = e.alphabet.FormatClass(cls)
	}
	return out
}

// Representative returns the canonical form of guess under the current
// color classes.
func (e *Engine) Representative(guess string) (string, error) {
	code, err := e.Parse(guess)
	if err != nil {
		return "", err
	}
	return e.alphabet.Format(e.classes.Representative(code)), nil
}

// UpdateEquivalences refines the color classes with a played guess.
// Refining twice with the same guess is a no-op.
func (e *Engine) UpdateEquivalences(guess string) error {
	code, err := e.Parse(guess)
	if err != nil {
		return err
	}
	e.classes = e.classes.Refine(code)
	return nil
}

// Update keeps the candidates that reproduce (black, white) for guess,
// refines the color classes and returns the information gained in bits.
// If no candidate matches, nothing changes and ErrInconsistentFeedback is
// returned so the caller can retry with corrected feedback.
func (e *Engine) Update(guess string, black, white int) (float64, error) {
	code, err := e.Parse(guess)
	if err != nil {
		return 0, err
	}
	if !ValidOutcome(e.length, black, white) {
		return 0, fmt.Errorf("%w: %d black, %d white is impossible with %d positions",
			ErrInconsistentFeedback, black, white, e.length)
	}
	target := OutcomeIndex(e.length, black, white)
	var kept []Code
	for _, c := range e.candidates {
		if e.ev.sc.index(c, code) == target {
			kept = append(kept, c)
		}
	}
	if len(kept) == 0 {
		return 0, fmt.Errorf("%w: no candidate gives %d black, %d white for %s",
			ErrInconsistentFeedback, black, white, guess)
	}
	before := len(e.candidates)
	e.candidates = kept
	e.classes = e.classes.Refine(code)
	return math.Log2(float64(before) / float64(len(kept))), nil
}
