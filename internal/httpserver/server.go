// internal/httpserver/server.go
//
// HTTP server wiring for the fading tic-tac-toe backend.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs,
//     zerolog access logs).
//   - Public endpoints: "/", "/health".
//   - Game endpoints (per-game token): /game/*.
//   - Profile endpoints: /scores, /settings/mode, /visit.
//   - Opponent endpoints: /ai/stats, /ai/rank, /ai/patterns (admin).
//   - Finished game log: /games/recent.
//
// Notes:
//   - Websocket feeds are mounted outside the request timeout.
//   - Each game is mutated under its own lock; the opponent's memory, the
//     profile and the game log carry their own synchronization.
//   - Games are evicted once their token has expired (see sessions.go).

package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/tictactoe/internal/learner"
	"github.com/robalobadob/tictactoe/internal/match"
	"github.com/robalobadob/tictactoe/internal/profile"
	"github.com/robalobadob/tictactoe/internal/store"
)

// requestTimeout bounds every non-websocket handler.
const requestTimeout = 10 * time.Second

// Config holds the environment-driven knobs of the server.
type Config struct {
	ClientOrigin      string        // CORS origin (CLIENT_ORIGIN)
	JWTSecret         string        // game token signing key (JWT_SECRET)
	TokenTTL          time.Duration // game token lifetime (GAME_TOKEN_HOURS)
	AdminPasswordHash string        // bcrypt hash; empty disables /ai/patterns
	OpponentDelay     time.Duration // pause before the opponent's mark lands
}

// ConfigFromEnv reads Config from the process environment.
func ConfigFromEnv() Config {
	hours, err := strconv.Atoi(getEnv("GAME_TOKEN_HOURS", "12"))
	if err != nil || hours <= 0 {
		hours = 12
	}
	delay, err := strconv.Atoi(getEnv("OPPONENT_DELAY_MS", "0"))
	if err != nil || delay < 0 {
		delay = 0
	}
	return Config{
		ClientOrigin:      getEnv("CLIENT_ORIGIN", "http://localhost:5173"),
		JWTSecret:         getEnv("JWT_SECRET", "dev_secret_change_me"),
		TokenTTL:          time.Duration(hours) * time.Hour,
		AdminPasswordHash: os.Getenv("ADMIN_PASSWORD_HASH"),
		OpponentDelay:     time.Duration(delay) * time.Millisecond,
	}
}

// Deps are the collaborators the handlers drive.
type Deps struct {
	Games   store.Store
	AI      *learner.AI
	Profile *profile.Profile
	GameLog *store.GameLog // optional
}

// Server bundles router, game store, opponent and profile.
type Server struct {
	r       *chi.Mux
	httpSrv *http.Server
	cfg     Config

	games   store.Store
	ai      *learner.AI
	profile *profile.Profile
	gamelog *store.GameLog
	ref     *match.Referee
	tokens  tokenIssuer
	hub     *Hub

	mu       sync.Mutex
	sessions map[string]*session // per-game lock and expiry
	now      func() time.Time
}

// New constructs a Server, installs middleware, and registers routes.
func New(d Deps, cfg Config) *Server {
	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = 12 * time.Hour
	}
	ref := &match.Referee{
		AI:            d.AI,
		Profile:       d.Profile,
		GameLog:       d.GameLog,
		OpponentDelay: cfg.OpponentDelay,
	}
	s := &Server{
		r:        chi.NewRouter(),
		cfg:      cfg,
		games:    d.Games,
		ai:       d.AI,
		profile:  d.Profile,
		gamelog:  d.GameLog,
		ref:      ref,
		tokens:   tokenIssuer{secret: []byte(cfg.JWTSecret), ttl: cfg.TokenTTL},
		hub:      NewHub(),
		sessions: make(map[string]*session),
		now:      time.Now,
	}

	// --- middleware ---
	s.r.Use(chimw.RequestID) // add X-Request-ID
	s.r.Use(chimw.RealIP)    // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(accessLog()...)  // zerolog access lines
	s.r.Use(chimw.Recoverer) // recover from panics
	s.r.Use(jsonContentType)
	s.r.Use(cors(cfg.ClientOrigin))

	// Live feeds hold the connection open; keep them out of the timeout.
	s.r.Get("/game/{id}/ws", s.handleGameWS)

	s.r.Group(func(r chi.Router) {
		r.Use(chimw.Timeout(requestTimeout))

		// --- diagnostics ---
		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(`{"service":"tictactoe-go","endpoints":["/health","POST /game/new","POST /game/move","/scores","/ai/stats"]}`))
		})
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(`{"ok":true}`))
		})

		s.mountGame(r)
		s.mountProfile(r)
		s.mountAI(r)

		r.Get("/games/recent", s.handleRecentGames)
	})

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"not_found","path":"`+r.URL.Path+`"}`, http.StatusNotFound)
	})

	return s
}

// Start begins serving HTTP on addr and blocks until Shutdown.
func (s *Server) Start(addr string) error {
	s.mu.Lock()
	s.httpSrv = &http.Server{Addr: addr, Handler: s.r, ReadHeaderTimeout: 5 * time.Second}
	srv := s.httpSrv
	s.mu.Unlock()
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops accepting requests, drops websocket clients and waits for
// in-flight handlers until ctx expires.
func (s *Server) Shutdown(ctx context.Context) error {
	s.hub.CloseAll()
	s.mu.Lock()
	srv := s.httpSrv
	s.mu.Unlock()
	if srv == nil {
		return nil
	}
	return srv.Shutdown(ctx)
}

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// handleRecentGames lists finished games from the SQLite log.
func (s *Server) handleRecentGames(w http.ResponseWriter, r *http.Request) {
	if s.gamelog == nil {
		_ = json.NewEncoder(w).Encode([]store.GameRow{})
		return
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit > 100 {
		limit = 100
	}
	rows, err := s.gamelog.RecentGames(r.Context(), limit)
	if err != nil {
		log.Error().Err(err).Msg("recent games")
		http.Error(w, `{"error":"db_error"}`, http.StatusInternalServerError)
		return
	}
	_ = json.NewEncoder(w).Encode(rows)
}

// ------------------------------- small util --------------------------------

// getEnv returns the value of k or def if unset/empty.
func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
