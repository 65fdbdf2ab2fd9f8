// internal/store/memory.go
//
// In-memory Store for live game sessions.
// Each entry keeps the *game.Game (engine included) and the time it was last
// touched. Finished games carry nothing the games/turns tables do not
// already hold, so Prune drops them along with games left idle.
//
// Characteristics:
//   - Concurrency-safe via RWMutex; Get also refreshes the touch time.
//   - State is lost when the process restarts.
//   - Get returns ErrNotFound for unknown or pruned IDs.

package store

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/robalobadob/mastermind/internal/game"
)

var ErrNotFound = errors.New("store: game not found")

// Store defines the persistence interface for game sessions.
type Store interface {
	// Save persists or updates a game.
	Save(ctx context.Context, g *game.Game) error

	// Get retrieves a game by ID.
	Get(ctx context.Context, id string) (*game.Game, error)

	// Delete drops a game; unknown IDs are ignored.
	Delete(ctx context.Context, id string) error

	// Prune drops finished games and games last touched before idleBefore.
	// It returns how many were removed.
	Prune(ctx context.Context, idleBefore time.Time) (int, error)

	// Len reports how many games are held.
	Len() int
}

type entry struct {
	g       *game.Game
	touched time.Time
}

// memory is an in-memory map-based Store implementation.
type memory struct {
	mu    sync.RWMutex     // guards games
	games map[string]entry // keyed by Game.ID
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore() Store {
	return &memory{games: make(map[string]entry)}
}

func (m *memory) Save(ctx context.Context, g *game.Game) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.games[g.ID] = entry{g: g, touched: time.Now()}
	return nil
}

func (m *memory) Get(ctx context.Context, id string) (*game.Game, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.games[id]
	if !ok {
		return nil, ErrNotFound
	}
	e.touched = time.Now()
	m.games[id] = e
	return e.g, nil
}

func (m *memory) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.games, id)
	return nil
}

func (m *memory) Prune(ctx context.Context, idleBefore time.Time) (int, error) {
	// Game.State takes the game's own lock, which a running hint scan may
	// hold for a while, so states are read outside the store lock.
	m.mu.RLock()
	snapshot := make([]entry, 0, len(m.games))
	for _, e := range m.games {
		snapshot = append(snapshot, e)
	}
	m.mu.RUnlock()

	stale := make(map[string]bool) // id -> finished
	for _, e := range snapshot {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		finished := e.g.State() != game.StatePlaying
		if finished || e.touched.Before(idleBefore) {
			stale[e.g.ID] = finished
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for id, finished := range stale {
		e, ok := m.games[id]
		if !ok {
			continue
		}
		// an idle game touched again since the snapshot stays
		if !finished && !e.touched.Before(idleBefore) {
			continue
		}
		delete(m.games, id)
		n++
	}
	return n, nil
}

func (m *memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.games)
}
