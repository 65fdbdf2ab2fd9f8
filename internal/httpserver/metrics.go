// internal/httpserver/metrics.go
//
// Prometheus metrics for the game endpoints, exposed on GET /metrics.

package httpserver

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// gamesStarted counts new games.
	// Labels: mode (assist, play, daily), preset
	gamesStarted = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "mastermind",
		Subsystem: "games",
		Name:      "started_total",
		Help:      "Total games started",
	}, []string{"mode", "preset"})

	// gamesFinished counts games by final state.
	// Labels: mode, state (solved, won, lost)
	gamesFinished = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "mastermind",
		Subsystem: "games",
		Name:      "finished_total",
		Help:      "Total games finished by final state",
	}, []string{"mode", "state"})

	// turnsApplied counts accepted and rejected turns.
	// Labels: mode, status (ok, inconsistent, invalid)
	turnsApplied = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "mastermind",
		Subsystem: "games",
		Name:      "turns_total",
		Help:      "Total turns submitted",
	}, []string{"mode", "status"})

	// hintLatency measures how long a suggestion takes.
	// Labels: phase (opening, search)
	hintLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "mastermind",
		Subsystem: "solver",
		Name:      "hint_duration_seconds",
		Help:      "Time to compute a suggested guess",
		Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
	}, []string{"phase"})

	// liveGames tracks games held in memory.
	liveGames = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "mastermind",
		Subsystem: "games",
		Name:      "live",
		Help:      "Games currently held in memory",
	})
)
