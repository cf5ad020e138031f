// internal/httpserver/sessions.go
//
// Per-game bookkeeping next to the game store.
// Responsibilities:
//   - One mutex per game so moves on the same game are serialized.
//   - Remember when each game's token expires.
//   - Evict expired games from the store (run whenever a game is created),
//     so abandoned games do not pile up for the life of the process.

package httpserver

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

type session struct {
	mu      sync.Mutex
	expires time.Time // token expiry; zero for entries made by lockGame alone
}

// trackGame registers a freshly created game.
func (s *Server) trackGame(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[id] = &session{expires: s.now().Add(s.cfg.TokenTTL)}
}

// lockGame locks the game with id and returns the unlock func.
func (s *Server) lockGame(id string) func() {
	s.mu.Lock()
	ss, ok := s.sessions[id]
	if !ok {
		ss = &session{}
		s.sessions[id] = ss
	}
	s.mu.Unlock()
	ss.mu.Lock()
	return ss.mu.Unlock
}

// evictExpired drops every game whose token has expired, together with its
// lock. Games busy in a request are left for the next pass.
func (s *Server) evictExpired(ctx context.Context) int {
	now := s.now()
	s.mu.Lock()
	var expired []string
	for id, ss := range s.sessions {
		if now.Before(ss.expires) || !ss.mu.TryLock() {
			continue
		}
		delete(s.sessions, id)
		ss.mu.Unlock()
		expired = append(expired, id)
	}
	s.mu.Unlock()

	for _, id := range expired {
		if err := s.games.Delete(ctx, id); err != nil {
			log.Debug().Err(err).Str("gameId", id).Msg("evict game")
		}
	}
	if len(expired) > 0 {
		log.Info().Int("games", len(expired)).Msg("evicted expired games")
	}
	return len(expired)
}
