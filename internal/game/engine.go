// internal/game/engine.go
//
// Session layer over the mastermind engine.
// Responsibilities:
//   - Create games from a preset or a custom alphabet/length.
//   - Play mode: pick (or accept) a secret and score guesses against it.
//   - Assist mode: accept black/white feedback reported by the player.
//   - Serve hints: the opening partition first, entropy suggestions after.
//   - Track state transitions: playing → solved/won/lost.
//
// Notes:
//   - Every exported method takes the game's mutex; the engine itself is not
//     safe for concurrent use and hint scans can take a while.
//   - In play mode the secret never leaves this package except via View once
//     the game is over.

package game

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/robalobadob/mastermind/internal/mastermind"
)

var (
	ErrFinished    = errors.New("game: finished")
	ErrWrongMode   = errors.New("game: operation not available in this mode")
	ErrInvalidMode = errors.New("game: invalid mode")
)

const defaultMaxGuesses = 10

// Config describes a new game.
type Config struct {
	Preset      string
	Colors      string
	Length      int
	MaxGuesses  int
	Mode        Mode
	Secret      string // play mode only; random when empty
	MaxUniverse int
}

// New constructs a new game instance.
func New(cfg Config) (*Game, error) {
	if cfg.Mode == "" {
		cfg.Mode = ModeAssist
	}
	if cfg.Mode != ModeAssist && cfg.Mode != ModePlay {
		return nil, fmt.Errorf("%w: %q", ErrInvalidMode, cfg.Mode)
	}
	if cfg.Mode == ModeAssist && cfg.Secret != "" {
		return nil, fmt.Errorf("%w: a secret is only accepted in play mode", ErrWrongMode)
	}
	var opts []mastermind.Option
	if cfg.MaxUniverse > 0 {
		opts = append(opts, mastermind.WithMaxUniverse(cfg.MaxUniverse))
	}
	eng, err := mastermind.New(cfg.Colors, cfg.Length, opts...)
	if err != nil {
		return nil, err
	}

	g := &Game{
		ID:         uuid.NewString(),
		Preset:     cfg.Preset,
		Colors:     eng.Alphabet().String(),
		Length:     cfg.Length,
		MaxGuesses: cfg.MaxGuesses,
		Mode:       cfg.Mode,
		StartedAt:  time.Now().UTC(),
		engine:     eng,
	}
	if g.Preset == "" {
		g.Preset = "custom"
	}
	if g.MaxGuesses <= 0 {
		g.MaxGuesses = defaultMaxGuesses
	}
	if cfg.Mode == ModePlay {
		if cfg.Secret == "" {
			g.Secret = RandomSecret(eng.Alphabet(), cfg.Length)
		} else {
			if _, err := eng.Parse(cfg.Secret); err != nil {
				return nil, err
			}
			g.Secret = cfg.Secret
		}
	}
	return g, nil
}

// RandomSecret returns a uniformly random sequence using crypto/rand.
func RandomSecret(a *mastermind.Alphabet, length int) string {
	code := make(mastermind.Code, length)
	k := big.NewInt(int64(a.Size()))
	for i := range code {
		n, _ := rand.Int(rand.Reader, k)
		code[i] = byte(n.Int64())
	}
	return a.Format(code)
}

// ApplyGuess scores guess against the secret (play mode) and feeds the
// result to the engine. Returns the outcome, the new state, or an error.
//
// State transitions:
//   - All black → Finished = true, Won = true.
//   - Else if the number of guesses reaches MaxGuesses → Finished = true (loss).
func (g *Game) ApplyGuess(guess string) (mastermind.Turn, State, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.Mode != ModePlay {
		return mastermind.Turn{}, g.state(), ErrWrongMode
	}
	if g.Finished {
		return mastermind.Turn{}, g.state(), ErrFinished
	}
	out, err := g.engine.Evaluate(g.Secret, guess)
	if err != nil {
		return mastermind.Turn{}, g.state(), err
	}
	turn, err := g.apply(guess, out)
	if err != nil {
		return mastermind.Turn{}, g.state(), err
	}
	if out.Black == g.Length {
		g.Finished, g.Won = true, true
	} else if len(g.Turns) >= g.MaxGuesses {
		g.Finished = true
	}
	return turn, g.state(), nil
}

// ApplyFeedback records black/white reported by the player (assist mode).
// Feedback that contradicts earlier turns is rejected with
// mastermind.ErrInconsistentFeedback and leaves the game unchanged.
func (g *Game) ApplyFeedback(guess string, black, white int) (mastermind.Turn, State, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.Mode != ModeAssist {
		return mastermind.Turn{}, g.state(), ErrWrongMode
	}
	if g.Finished {
		return mastermind.Turn{}, g.state(), ErrFinished
	}
	turn, err := g.apply(guess, mastermind.Outcome{Black: black, White: white})
	if err != nil {
		return mastermind.Turn{}, g.state(), err
	}
	if black == g.Length || g.engine.NumCandidates() == 1 {
		g.Finished, g.Won = true, true
	}
	return turn, g.state(), nil
}

func (g *Game) apply(guess string, out mastermind.Outcome) (mastermind.Turn, error) {
	bits, err := g.engine.Update(guess, out.Black, out.White)
	if err != nil {
		return mastermind.Turn{}, err
	}
	turn := mastermind.Turn{Guess: guess, Outcome: out, Bits: bits, Remaining: g.engine.NumCandidates()}
	g.Turns = append(g.Turns, turn)
	return turn, nil
}

// Hint suggests the next guess: the best opening before any turn, the
// engine's entropy pick afterwards.
func (g *Game) Hint() (Hint, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.Finished {
		return Hint{}, ErrFinished
	}
	h := Hint{Candidates: g.engine.NumCandidates()}
	if len(g.Turns) == 0 {
		h.Opening = g.engine.ChooseInitialIntent()
		h.Guess = g.engine.Alphabet().Format(g.engine.CanonicalGuess(h.Opening))
	} else {
		h.Guess = g.engine.Suggest()
	}
	entropy, err := g.engine.Entropy(h.Guess)
	if err != nil {
		return Hint{}, err
	}
	h.Entropy = entropy
	return h, nil
}

// Entropy reports the expected information of guess right now.
func (g *Game) Entropy(guess string) (float64, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.engine.Entropy(guess)
}

// Candidates returns up to limit remaining candidates (all when limit <= 0)
// and the total count.
func (g *Game) Candidates(limit int) ([]string, int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := []string{}
	for c := range g.engine.Candidates() {
		if limit > 0 && len(out) >= limit {
			break
		}
		out = append(out, c)
	}
	return out, g.engine.NumCandidates()
}

// Classes returns the current color classes.
func (g *Game) Classes() []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.engine.Classes()
}

// View snapshots the game for clients.
func (g *Game) View() View {
	g.mu.Lock()
	defer g.mu.Unlock()
	v := View{
		ID:         g.ID,
		Preset:     g.Preset,
		Colors:     g.Colors,
		Length:     g.Length,
		MaxGuesses: g.MaxGuesses,
		Mode:       g.Mode,
		State:      g.state(),
		Candidates: g.engine.NumCandidates(),
		Classes:    g.engine.Classes(),
		Turns:      slices.Clone(g.Turns),
	}
	if v.Turns == nil {
		v.Turns = []mastermind.Turn{}
	}
	switch {
	case g.Mode == ModePlay && g.Finished:
		v.Solution = g.Secret
	case g.Mode == ModeAssist && g.engine.NumCandidates() == 1:
		for c := range g.engine.Candidates() {
			v.Solution = c
		}
	}
	return v
}

// State reports the current state.
func (g *Game) State() State {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state()
}

func (g *Game) state() State {
	switch {
	case !g.Finished:
		return StatePlaying
	case !g.Won:
		return StateLost
	case g.Mode == ModeAssist && (len(g.Turns) == 0 || g.Turns[len(g.Turns)-1].Outcome.Black != g.Length):
		return StateSolved
	default:
		return StateWon
	}
}
