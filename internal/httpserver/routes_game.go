// internal/httpserver/routes_game.go
//
// HTTP routes for solver sessions.
//   - POST /game/new            → create an assist or play game (+ opening hint)
//   - POST /game/feedback       → report black/white for a guess (assist)
//   - POST /game/guess          → score a guess against the secret (play)
//   - GET  /game/{id}           → game snapshot
//   - GET  /game/{id}/hint      → suggested next guess
//   - GET  /game/{id}/candidates?limit=N
//   - GET  /game/{id}/classes   → current color classes
//   - POST /game/{id}/entropy   → expected information of a guess
//
// Live engines stay in the in-memory store until the game ends or the janitor
// finds it idle; the games/turns tables keep a history row per game and per
// accepted turn for /games/mine and stats.

package httpserver

import (
	"database/sql"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/mastermind/internal/game"
	"github.com/robalobadob/mastermind/internal/mastermind"
	"github.com/robalobadob/mastermind/internal/presets"
)

const defaultCandidateLimit = 100

// mountGame registers the /game routes.
func (s *Server) mountGame(r chi.Router) {
	r.Route("/game", func(r chi.Router) {
		r.Post("/new", s.handleNewGame)
		r.Post("/feedback", s.handleFeedback)
		r.Post("/guess", s.handleGuess)
		r.Get("/{id}", s.handleGetGame)
		r.Get("/{id}/hint", s.handleHint)
		r.Get("/{id}/candidates", s.handleCandidates)
		r.Get("/{id}/classes", s.handleClasses)
		r.Post("/{id}/entropy", s.handleEntropy)
	})
}

// newGameReq selects either a preset or a custom alphabet/length.
type newGameReq struct {
	Preset     string `json:"preset"`
	Colors     string `json:"colors"`
	Length     int    `json:"length"`
	MaxGuesses int    `json:"maxGuesses"`
	Mode       string `json:"mode"`   // "assist" (default) | "play"
	Secret     string `json:"secret"` // optional fixed secret (play mode)
}

type newGameRes struct {
	GameID string    `json:"gameId"`
	Game   game.View `json:"game"`
	Hint   game.Hint `json:"hint"`
}

// gameConfig resolves a request into a game.Config.
func (s *Server) gameConfig(req newGameReq) (game.Config, error) {
	cfg := game.Config{
		Colors:      req.Colors,
		Length:      req.Length,
		MaxGuesses:  req.MaxGuesses,
		Mode:        game.Mode(req.Mode),
		Secret:      req.Secret,
		MaxUniverse: s.cfg.MaxUniverse,
	}
	if req.Colors != "" {
		return cfg, nil
	}
	var (
		p   presets.Preset
		err error
	)
	if req.Preset == "" {
		var ok bool
		if p, ok = presets.Default(); !ok {
			return cfg, presets.ErrUnknownPreset
		}
	} else if p, err = presets.Lookup(req.Preset); err != nil {
		return cfg, err
	}
	cfg.Preset, cfg.Colors, cfg.Length = p.Name, p.Colors, p.Length
	if cfg.MaxGuesses <= 0 {
		cfg.MaxGuesses = p.MaxGuesses
	}
	return cfg, nil
}

// handleNewGame creates a game in memory and an owner row (user_id or
// anonymous_id) in the DB.
func (s *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	var req newGameReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	cfg, err := s.gameConfig(req)
	if err != nil {
		writeErr(w, err)
		return
	}
	g, err := game.New(cfg)
	if err != nil {
		writeErr(w, err)
		return
	}
	hint, err := s.timedHint(g)
	if err != nil {
		writeErr(w, err)
		return
	}
	if err := s.store.Save(r.Context(), g); err != nil {
		log.Error().Err(err).Msg("save game")
		writeError(w, http.StatusInternalServerError, "save_failed")
		return
	}
	liveGames.Set(float64(s.store.Len()))
	gamesStarted.WithLabelValues(string(g.Mode), g.Preset).Inc()

	now := time.Now().UTC().Format(time.RFC3339)
	ownerCol, ownerArg := s.owner(w, r)
	_, err = s.db.ExecContext(r.Context(),
		`INSERT INTO games (id, `+ownerCol+`, preset, colors, length, mode, started_at, status, guesses)
		 VALUES (?,?,?,?,?,?,?,?,0)`,
		g.ID, ownerArg, g.Preset, g.Colors, g.Length, string(g.Mode), now, string(game.StatePlaying))
	if err != nil {
		log.Warn().Err(err).Str("gameId", g.ID).Msg("insert game row")
	}

	log.Info().Str("gameId", g.ID).Str("preset", g.Preset).Str("mode", string(g.Mode)).
		Int("candidates", hint.Candidates).Msg("game started")
	writeJSON(w, newGameRes{GameID: g.ID, Game: g.View(), Hint: hint})
}

// owner returns the games column and value identifying the caller.
func (s *Server) owner(w http.ResponseWriter, r *http.Request) (string, string) {
	if me, _ := r.Context().Value(ctxUserKey{}).(*authUser); me != nil {
		return "user_id", me.ID
	}
	return "anonymous_id", s.ensureAnonID(w, r)
}

// timedHint computes g's hint and records its latency.
func (s *Server) timedHint(g *game.Game) (game.Hint, error) {
	start := time.Now()
	h, err := g.Hint()
	phase := "search"
	if h.Opening != nil {
		phase = "opening"
	}
	hintLatency.WithLabelValues(phase).Observe(time.Since(start).Seconds())
	log.Debug().Str("gameId", g.ID).Str("phase", phase).Dur("duration", time.Since(start)).Msg("hint")
	return h, err
}

// feedbackReq is the payload for POST /game/feedback.
type feedbackReq struct {
	GameID string `json:"gameId"`
	Guess  string `json:"guess"`
	Black  int    `json:"black"`
	White  int    `json:"white"`
}

// guessReq is the payload for POST /game/guess.
type guessReq struct {
	GameID string `json:"gameId"`
	Guess  string `json:"guess"`
}

type turnRes struct {
	Turn       mastermind.Turn `json:"turn"`
	State      game.State      `json:"state"`
	Candidates int             `json:"candidates"`
	Solution   string          `json:"solution,omitempty"`
}

// handleFeedback applies player-reported feedback to an assist game.
func (s *Server) handleFeedback(w http.ResponseWriter, r *http.Request) {
	var req feedbackReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	g, err := s.store.Get(r.Context(), req.GameID)
	if err != nil {
		writeErr(w, err)
		return
	}
	turn, state, err := g.ApplyFeedback(req.Guess, req.Black, req.White)
	s.finishTurn(w, r, g, turn, state, err)
}

// handleGuess scores a guess in a play game.
func (s *Server) handleGuess(w http.ResponseWriter, r *http.Request) {
	var req guessReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	g, err := s.store.Get(r.Context(), req.GameID)
	if err != nil {
		writeErr(w, err)
		return
	}
	turn, state, err := g.ApplyGuess(req.Guess)
	s.finishTurn(w, r, g, turn, state, err)
}

// finishTurn records the outcome of ApplyFeedback/ApplyGuess and writes the
// response.
func (s *Server) finishTurn(w http.ResponseWriter, r *http.Request, g *game.Game, turn mastermind.Turn, state game.State, err error) {
	if err != nil {
		status := "invalid"
		if errors.Is(err, mastermind.ErrInconsistentFeedback) {
			status = "inconsistent"
		}
		turnsApplied.WithLabelValues(string(g.Mode), status).Inc()
		writeErr(w, err)
		return
	}
	turnsApplied.WithLabelValues(string(g.Mode), "ok").Inc()
	if state == game.StatePlaying {
		err = s.store.Save(r.Context(), g)
	} else {
		// history lives in the games/turns tables; the engine can go
		err = s.store.Delete(r.Context(), g.ID)
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "save_failed")
		return
	}
	liveGames.Set(float64(s.store.Len()))
	s.persistTurn(w, r, g, turn, state)

	v := g.View()
	writeJSON(w, turnRes{Turn: turn, State: state, Candidates: v.Candidates, Solution: v.Solution})
}

// persistTurn appends the turn to the DB history and, when the game ended,
// closes the row and bumps user stats. Best effort: failures are logged.
func (s *Server) persistTurn(w http.ResponseWriter, r *http.Request, g *game.Game, turn mastermind.Turn, state game.State) {
	ownerCol, ownerArg := s.owner(w, r)
	me, _ := r.Context().Value(ctxUserKey{}).(*authUser)

	tx, err := s.db.BeginTx(r.Context(), nil)
	if err != nil {
		log.Warn().Err(err).Msg("begin turn tx")
		return
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.Exec(`UPDATE games SET guesses = guesses + 1 WHERE id=? AND `+ownerCol+`=?`, g.ID, ownerArg)
	if err != nil {
		log.Warn().Err(err).Msg("update guesses")
		return
	}
	if n, _ := res.RowsAffected(); n == 0 {
		// game created by someone else (or before login); history stays with them
		return
	}
	if _, err := tx.Exec(`INSERT INTO turns (game_id, seq, guess, black, white, bits, remaining)
	                      SELECT ?, guesses, ?, ?, ?, ?, ? FROM games WHERE id=?`,
		g.ID, turn.Guess, turn.Outcome.Black, turn.Outcome.White, turn.Bits, turn.Remaining, g.ID); err != nil {
		log.Warn().Err(err).Msg("insert turn")
	}

	if state != game.StatePlaying {
		gamesFinished.WithLabelValues(string(g.Mode), string(state)).Inc()
		if _, err := tx.Exec(`UPDATE games SET status=?, finished_at=? WHERE id=?`,
			string(state), time.Now().UTC().Format(time.RFC3339), g.ID); err != nil {
			log.Warn().Err(err).Msg("finish game")
		}
		if me != nil {
			if err := bumpStats(tx, me.ID, state != game.StateLost); err != nil {
				log.Warn().Err(err).Str("user", me.ID).Msg("bump stats")
			}
		}
		log.Info().Str("gameId", g.ID).Str("state", string(state)).Msg("game finished")
	}
	if err := tx.Commit(); err != nil {
		log.Warn().Err(err).Msg("commit turn")
	}
}

// handleGetGame returns a snapshot of the game.
func (s *Server) handleGetGame(w http.ResponseWriter, r *http.Request) {
	g, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, g.View())
}

// handleHint suggests the next guess.
func (s *Server) handleHint(w http.ResponseWriter, r *http.Request) {
	g, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeErr(w, err)
		return
	}
	h, err := s.timedHint(g)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, h)
}

// handleCandidates lists remaining candidates, capped by ?limit (default 100,
// 0 for all).
func (s *Server) handleCandidates(w http.ResponseWriter, r *http.Request) {
	g, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeErr(w, err)
		return
	}
	limit := defaultCandidateLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		if limit, err = strconv.Atoi(v); err != nil || limit < 0 {
			writeError(w, http.StatusBadRequest, "limit must be a non-negative integer")
			return
		}
	}
	cands, total := g.Candidates(limit)
	writeJSON(w, map[string]any{"total": total, "candidates": cands})
}

// handleClasses returns the current color classes.
func (s *Server) handleClasses(w http.ResponseWriter, r *http.Request) {
	g, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, map[string]any{"classes": g.Classes()})
}

// handleEntropy reports the expected information of a proposed guess.
func (s *Server) handleEntropy(w http.ResponseWriter, r *http.Request) {
	g, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeErr(w, err)
		return
	}
	var req struct {
		Guess string `json:"guess"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	e, err := g.Entropy(req.Guess)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, map[string]any{"guess": req.Guess, "entropy": e})
}

// bumpStats increments games played; updates wins and streak based on result (within tx).
func bumpStats(tx *sql.Tx, userID string, won bool) error {
	var gp, wins, streak int
	row := tx.QueryRow(`SELECT games_played, wins, streak FROM users WHERE id=?`, userID)
	if err := row.Scan(&gp, &wins, &streak); err != nil {
		return err
	}
	gp++
	if won {
		wins++
		streak++
	} else {
		streak = 0
	}
	_, err := tx.Exec(`UPDATE users SET games_played=?, wins=?, streak=? WHERE id=?`, gp, wins, streak, userID)
	return err
}
