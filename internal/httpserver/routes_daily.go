// internal/httpserver/routes_daily.go
//
// HTTP routes for the "Daily Challenge" mode.
// Exposes three endpoints under /daily:
//   - POST /daily/new         → start a daily game (creates or reuses session)
//   - POST /daily/guess       → submit a guess for today's daily game
//   - GET  /daily/leaderboard → fetch top 20 results for today (or a given date)
//
// Each user can play once per day (enforced by DB + in-memory session).
// Sessions are held in memory for active play and persisted to DB on win.
// The secret is picked from the DAILY_PRESET universe by date + salt.
// Daily games are not in the main store, so /game/{id}/hint cannot see them.

package httpserver

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/mastermind/internal/daily"
	"github.com/robalobadob/mastermind/internal/game"
	"github.com/robalobadob/mastermind/internal/mastermind"
	"github.com/robalobadob/mastermind/internal/presets"
)

// dailyServer wraps dependencies for /daily endpoints.
type dailyServer struct {
	srv      *Server
	store    *daily.Store
	salt     string
	preset   string
	sessions map[string]*dailySession // active sessions keyed by userID|date
	mu       sync.Mutex               // guards sessions
}

// dailySession holds transient in-memory state for an in-progress daily game.
type dailySession struct {
	Game      *game.Game
	UserID    string
	Date      string
	SecretIdx int
	Start     time.Time
}

// mountDaily registers all /daily routes.
func (s *Server) mountDaily(r chi.Router) {
	dd := &dailyServer{
		srv:      s,
		store:    daily.NewStore(s.db),
		salt:     s.cfg.DailySalt,
		preset:   s.cfg.DailyPreset,
		sessions: make(map[string]*dailySession),
	}
	s.daily = dd
	r.Route("/daily", func(r chi.Router) {
		r.Post("/new", dd.handleNew)
		r.Post("/guess", dd.handleGuess)
		r.Get("/leaderboard", dd.handleLeaderboard)
	})
}

// today returns today's date key, the daily preset, its secret and the
// secret's universe index.
func (d *dailyServer) today() (date string, p presets.Preset, secret string, idx int, err error) {
	now := time.Now().UTC()
	date = daily.DateKey(now)
	if p, err = presets.Lookup(d.preset); err != nil {
		return
	}
	a, err := mastermind.NewAlphabet(p.Colors)
	if err != nil {
		return
	}
	secret, idx = daily.Secret(now, d.salt, a, p.Length)
	return
}

// userIDWithAnon returns the authenticated user ID if logged in,
// otherwise ensures an anonymous ID via Server.ensureAnonID.
func (d *dailyServer) userIDWithAnon(w http.ResponseWriter, r *http.Request) string {
	if me, _ := r.Context().Value(ctxUserKey{}).(*authUser); me != nil {
		return me.ID
	}
	return d.srv.ensureAnonID(w, r)
}

// -----------------------------------------------------------------------------
// /daily/new

// newRes is returned by /daily/new.
type newRes struct {
	GameID     string `json:"gameId"`
	Date       string `json:"date"`
	Played     bool   `json:"played"`
	Colors     string `json:"colors"`
	Length     int    `json:"length"`
	MaxGuesses int    `json:"maxGuesses"`
}

// handleNew creates or reuses a daily session for the current date.
//   - If user already has a DB row for today → return Played=true.
//   - Otherwise create/reuse an in-memory session and return GameID.
func (d *dailyServer) handleNew(w http.ResponseWriter, r *http.Request) {
	uid := d.userIDWithAnon(w, r)
	date, p, secret, idx, err := d.today()
	if err != nil {
		writeErr(w, fmt.Errorf("daily preset: %w", err))
		return
	}
	res := newRes{Date: date, Colors: p.Colors, Length: p.Length, MaxGuesses: p.MaxGuesses}

	// Check if already played (persisted in DB).
	if played, err := d.store.AlreadyPlayed(r.Context(), uid, date); err == nil && played {
		res.Played = true
		writeJSON(w, res)
		return
	}

	// Reuse or create session in memory.
	key := uid + "|" + date
	d.mu.Lock()
	defer d.mu.Unlock()
	d.pruneSessions(date)
	if sess, ok := d.sessions[key]; ok {
		res.GameID = sess.Game.ID
		writeJSON(w, res)
		return
	}
	g, err := game.New(game.Config{
		Preset:      p.Name,
		Colors:      p.Colors,
		Length:      p.Length,
		MaxGuesses:  p.MaxGuesses,
		Mode:        game.ModePlay,
		Secret:      secret,
		MaxUniverse: d.srv.cfg.MaxUniverse,
	})
	if err != nil {
		writeErr(w, err)
		return
	}
	d.sessions[key] = &dailySession{Game: g, UserID: uid, Date: date, SecretIdx: idx, Start: time.Now()}
	gamesStarted.WithLabelValues("daily", p.Name).Inc()

	res.GameID = g.ID
	writeJSON(w, res)
}

// pruneSessions drops sessions not dated today. Callers hold d.mu.
func (d *dailyServer) pruneSessions(today string) int {
	n := 0
	for key, sess := range d.sessions {
		if sess.Date != today {
			delete(d.sessions, key)
			n++
		}
	}
	return n
}

// -----------------------------------------------------------------------------
// /daily/guess

// dailyGuessReq is the request payload for /daily/guess.
type dailyGuessReq struct {
	GameID string `json:"gameId"`
	Guess  string `json:"guess"`
}

// dailyGuessRes is the response payload for /daily/guess.
type dailyGuessRes struct {
	Black   int        `json:"black"`
	White   int        `json:"white"`
	State   game.State `json:"state"` // playing | won | lost
	Guesses int        `json:"guesses"`
}

// handleGuess applies a guess to today's daily session and persists the
// result on a win.
func (d *dailyServer) handleGuess(w http.ResponseWriter, r *http.Request) {
	uid := d.userIDWithAnon(w, r)

	var p dailyGuessReq
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	if p.GameID == "" {
		writeError(w, http.StatusBadRequest, "gameId is required")
		return
	}

	// Find session.
	key := uid + "|" + daily.DateKey(time.Now())
	d.mu.Lock()
	sess, ok := d.sessions[key]
	d.mu.Unlock()
	if !ok || sess.Game.ID != p.GameID {
		writeError(w, http.StatusConflict, "no session")
		return
	}

	turn, state, err := sess.Game.ApplyGuess(p.Guess)
	if err != nil {
		writeErr(w, err)
		return
	}
	guesses := len(sess.Game.View().Turns)

	if state != game.StatePlaying {
		gamesFinished.WithLabelValues("daily", string(state)).Inc()
	}
	if state == game.StateWon {
		// the daily_results row now answers /daily/new; lost sessions stay
		// locked in memory until the date changes
		d.mu.Lock()
		delete(d.sessions, key)
		d.mu.Unlock()
		elapsed := int(time.Since(sess.Start).Milliseconds())
		if err := d.store.InsertResult(r.Context(), daily.Result{
			UserID: uid, Date: sess.Date, SecretIdx: sess.SecretIdx, Guesses: guesses, ElapsedMs: elapsed,
		}); err != nil {
			log.Warn().Err(err).Str("user", uid).Msg("insert daily result")
		}
	}
	writeJSON(w, dailyGuessRes{Black: turn.Outcome.Black, White: turn.Outcome.White, State: state, Guesses: guesses})
}

// -----------------------------------------------------------------------------
// /daily/leaderboard

// lbRes is returned by /daily/leaderboard.
type lbRes struct {
	Date string        `json:"date"`
	Top  []daily.LBRow `json:"top"`
}

// handleLeaderboard returns the leaderboard for the given date (default today).
func (d *dailyServer) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		date = daily.DateKey(time.Now())
	}
	rows, err := d.store.Leaderboard(r.Context(), date, 20)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, lbRes{Date: date, Top: rows})
}
