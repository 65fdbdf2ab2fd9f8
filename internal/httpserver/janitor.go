// internal/httpserver/janitor.go
//
// Periodic cleanup of in-memory state: games idle longer than GameIdleTTL
// (or finished) leave the store, and daily sessions from earlier dates are
// dropped.

package httpserver

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/mastermind/internal/daily"
)

// RunJanitor sweeps every interval until ctx is done.
func (s *Server) RunJanitor(ctx context.Context, every time.Duration) {
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			s.sweep(ctx)
		}
	}
}

func (s *Server) sweep(ctx context.Context) {
	n, err := s.store.Prune(ctx, time.Now().Add(-s.cfg.GameIdleTTL))
	if err != nil {
		log.Warn().Err(err).Msg("prune games")
		return
	}
	liveGames.Set(float64(s.store.Len()))

	s.daily.mu.Lock()
	dropped := s.daily.pruneSessions(daily.DateKey(time.Now()))
	s.daily.mu.Unlock()

	if n > 0 || dropped > 0 {
		log.Info().Int("games", n).Int("dailySessions", dropped).Int("live", s.store.Len()).Msg("janitor sweep")
	}
}
