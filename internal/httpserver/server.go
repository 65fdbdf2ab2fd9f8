// internal/httpserver/server.go
//
// HTTP server wiring for the Mastermind backend.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs).
//   - Public endpoints: "/", "/health", "/metrics", "/presets".
//   - Stateless solver tools: POST /evaluate, GET /partitions.
//   - Game endpoints (optional auth): mounted by routes_game.go.
//   - Daily Challenge endpoints (optional auth): mounted under /daily.
//   - Auth + profile/stat endpoints: mounted by routes_auth.go.
//
// Notes:
//   - CORS is origin-aware and credentials-enabled (so cookies work).
//   - Errors are JSON bodies {"error":"..."}; engine errors map to statuses
//     in statusFor.

package httpserver

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"
	"unicode/utf8"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/mastermind/internal/config"
	"github.com/robalobadob/mastermind/internal/game"
	"github.com/robalobadob/mastermind/internal/mastermind"
	"github.com/robalobadob/mastermind/internal/presets"
	"github.com/robalobadob/mastermind/internal/store"
)

// maxPartitionN bounds GET /partitions; p(32) is already 8349 rows.
const maxPartitionN = 32

// Server bundles router, in-memory game store, DB handle and settings.
type Server struct {
	r     *chi.Mux
	store store.Store
	db    *sql.DB
	cfg   config.Config
	daily *dailyServer
}

// New constructs a Server, installs middleware, and registers routes.
// presets.Init must have been called.
func New(cfg config.Config, st store.Store, db *sql.DB) *Server {
	s := &Server{r: chi.NewRouter(), store: st, db: db, cfg: cfg}

	// --- middleware ---
	s.r.Use(chimw.RequestID)                 // add X-Request-ID
	s.r.Use(chimw.RealIP)                    // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(chimw.Recoverer)                 // recover from panics
	s.r.Use(chimw.Timeout(30 * time.Second)) // bound handler time
	s.r.Use(jsonContentType)                 // default JSON responses
	s.r.Use(s.cors)                          // credentials-friendly CORS

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]any{
			"service": "mastermind",
			"endpoints": []string{
				"/health", "/metrics", "/presets",
				"POST /evaluate", "/partitions",
				"POST /game/new", "POST /game/feedback", "POST /game/guess", "/game/{id}/*",
				"/daily/*", "/auth/*",
			},
		})
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]any{"ok": true, "games": s.store.Len()})
	})
	s.r.Handle("/metrics", promhttp.Handler())
	s.r.Get("/presets", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, presets.All())
	})

	// --- stateless tools ---
	s.r.Post("/evaluate", s.handleEvaluate)
	s.r.Get("/partitions", s.handlePartitions)

	// Game endpoints: OPTIONAL AUTH (guests can play)
	s.mountGame(s.r.With(s.withOptionalAuth()))

	// Daily Challenge: OPTIONAL AUTH (guests can play; progress persisted on win)
	s.mountDaily(s.r.With(s.withOptionalAuth()))

	// Auth + profile/stats
	s.mountAuthRoutes()

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "not_found", "path": r.URL.Path})
	})

	return s
}

// Start begins serving HTTP on addr.
func (s *Server) Start(addr string) error { return http.ListenAndServe(addr, s.r) }

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// cors enables credentialed CORS for the configured client origin.
func (s *Server) cors(next http.Handler) http.Handler {
	origin := s.cfg.ClientOrigin
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Vary", "Origin")
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Credentials", "true")
		w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ------------------------------ responses ----------------------------------

func writeJSON(w http.ResponseWriter, v any) {
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Warn().Err(err).Msg("encode response")
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

// writeErr maps err to a status with statusFor and writes its message.
func writeErr(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		log.Error().Err(err).Msg("request failed")
		writeError(w, status, "server_error")
		return
	}
	writeError(w, status, err.Error())
}

// statusFor maps domain errors to HTTP statuses.
func statusFor(err error) int {
	switch {
	case errors.Is(err, mastermind.ErrInvalidConfiguration),
		errors.Is(err, mastermind.ErrUnknownSymbol),
		errors.Is(err, mastermind.ErrSequenceLength),
		errors.Is(err, presets.ErrUnknownPreset),
		errors.Is(err, game.ErrInvalidMode),
		errors.Is(err, game.ErrWrongMode):
		return http.StatusBadRequest
	case errors.Is(err, mastermind.ErrInconsistentFeedback),
		errors.Is(err, game.ErrFinished):
		return http.StatusConflict
	case errors.Is(err, mastermind.ErrResourceExhausted):
		return http.StatusUnprocessableEntity
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// ------------------------------- TOOLS -------------------------------------

type evaluateReq struct {
	Colors string `json:"colors"`
	Secret string `json:"secret"`
	Guess  string `json:"guess"`
}

type evaluateRes struct {
	Black int `json:"black"`
	White int `json:"white"`
	Index int `json:"index"`
}

// handleEvaluate scores guess against secret without creating a game.
func (s *Server) handleEvaluate(w http.ResponseWriter, r *http.Request) {
	var req evaluateReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	a, err := mastermind.NewAlphabet(req.Colors)
	if err != nil {
		writeErr(w, err)
		return
	}
	length := utf8.RuneCountInString(req.Secret)
	if length == 0 {
		writeError(w, http.StatusBadRequest, "secret is required")
		return
	}
	secret, err := a.Parse(req.Secret, length)
	if err != nil {
		writeErr(w, err)
		return
	}
	guess, err := a.Parse(req.Guess, length)
	if err != nil {
		writeErr(w, err)
		return
	}
	black, white, err := mastermind.Evaluate(secret, guess)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, evaluateRes{Black: black, White: white, Index: mastermind.OutcomeIndex(length, black, white)})
}

// handlePartitions lists the partitions of n into at most k parts.
func (s *Server) handlePartitions(w http.ResponseWriter, r *http.Request) {
	n, err := strconv.Atoi(r.URL.Query().Get("n"))
	if err != nil || n < 0 || n > maxPartitionN {
		writeError(w, http.StatusBadRequest, "n must be an integer in [0, 32]")
		return
	}
	k := n
	if v := r.URL.Query().Get("k"); v != "" {
		if k, err = strconv.Atoi(v); err != nil || k < 0 {
			writeError(w, http.StatusBadRequest, "k must be a non-negative integer")
			return
		}
	}
	parts := mastermind.Partitions(n, k)
	if parts == nil {
		parts = [][]int{}
	}
	writeJSON(w, map[string]any{"n": n, "k": k, "partitions": parts})
}
