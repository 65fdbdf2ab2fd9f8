// internal/game/types.go
//
// Core type definitions for a Mastermind game session.
// Defines:
//   - Mode: who knows the secret (the player in assist mode, the server in play mode).
//   - State: lifecycle of a session.
//   - Game: state for a single in-progress or finished session.
//   - View: the JSON shape of a Game handed to clients.

package game

import (
	"sync"
	"time"

	"github.com/robalobadob/mastermind/internal/mastermind"
)

// Mode selects how feedback reaches the engine.
//   - "assist": the secret lives elsewhere; the client reports black/white.
//   - "play":   the server holds the secret and scores guesses itself.
type Mode string

const (
	ModeAssist Mode = "assist"
	ModePlay   Mode = "play"
)

// State is the coarse lifecycle of a game.
type State string

const (
	StatePlaying State = "playing"
	StateSolved  State = "solved" // assist: a single candidate is left
	StateWon     State = "won"    // the secret was guessed
	StateLost    State = "lost"   // play: out of guesses
)

// Game holds the state of a single session.
type Game struct {
	ID         string            // Unique game identifier (uuid).
	Preset     string            // Preset name, or "custom".
	Colors     string            // Alphabet in order.
	Length     int               // Pegs per sequence.
	MaxGuesses int               // Guess limit (play mode only).
	Mode       Mode              // assist | play
	Secret     string            // Hidden secret (play mode only).
	Turns      []mastermind.Turn // Turns applied so far.
	StartedAt  time.Time         // Creation time (UTC).
	Finished   bool              // True once the game is over.
	Won        bool              // True if it ended with the secret known.

	mu     sync.Mutex
	engine *mastermind.Engine
}

// View is a read-only snapshot of a Game.
type View struct {
	ID         string            `json:"gameId"`
	Preset     string            `json:"preset"`
	Colors     string            `json:"colors"`
	Length     int               `json:"length"`
	MaxGuesses int               `json:"maxGuesses"`
	Mode       Mode              `json:"mode"`
	State      State             `json:"state"`
	Candidates int               `json:"candidates"`
	Classes    []string          `json:"classes"`
	Turns      []mastermind.Turn `json:"turns"`
	Solution   string            `json:"solution,omitempty"`
}

// Hint is a suggested next guess.
type Hint struct {
	Guess      string  `json:"guess"`
	Entropy    float64 `json:"entropy"`
	Candidates int     `json:"candidates"`
	Opening    []int   `json:"opening,omitempty"` // color grouping, first turn only
}
