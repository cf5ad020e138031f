// internal/httpserver/routes_game.go
//
// Game endpoints:
//   - POST /game/new      → start a game in the requested (or saved) mode
//   - GET  /game/{id}     → current state
//   - POST /game/move     → place a mark; in "ai" mode the opponent answers
//                           within the same request
//   - POST /game/restart  → clear the board of an existing game
//
// Every endpoint except /game/new needs the game's bearer token.

package httpserver

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/tictactoe/internal/board"
	"github.com/robalobadob/tictactoe/internal/game"
)

func (s *Server) mountGame(r chi.Router) {
	r.Route("/game", func(r chi.Router) {
		r.Post("/new", s.handleNewGame)
		r.Post("/move", s.handleMove)
		r.Post("/restart", s.handleRestart)
		r.Get("/{id}", s.handleGetGame)
	})
}

// newGameReq/Res payloads for POST /game/new.
type newGameReq struct {
	Mode string `json:"mode"` // "ai" | "human"; empty uses the saved mode
}
type newGameRes struct {
	GameID string    `json:"gameId"`
	Token  string    `json:"token"`
	State  gameState `json:"state"`
}

// handleNewGame creates a new in-memory game and a token for it.
func (s *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	var req newGameReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	s.evictExpired(r.Context())

	mode := s.profile.Mode()
	if req.Mode != "" {
		m, ok := game.ParseMode(req.Mode)
		if !ok {
			http.Error(w, `{"error":"invalid_mode"}`, http.StatusBadRequest)
			return
		}
		mode = m
	}

	g := game.New(mode)
	if err := s.games.Save(r.Context(), g); err != nil {
		log.Error().Err(err).Msg("save game")
		http.Error(w, `{"error":"save_failed"}`, http.StatusInternalServerError)
		return
	}
	tok, err := s.tokens.Sign(g.ID)
	if err != nil {
		log.Error().Err(err).Msg("sign game token")
		http.Error(w, `{"error":"sign_failed"}`, http.StatusInternalServerError)
		return
	}
	s.trackGame(g.ID)
	log.Info().Str("gameId", g.ID).Str("mode", string(mode)).Msg("game started")
	_ = json.NewEncoder(w).Encode(newGameRes{GameID: g.ID, Token: tok, State: stateOf(g)})
}

func (s *Server) handleGetGame(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !s.authorizeGame(w, r, id) {
		return
	}
	unlock := s.lockGame(id)
	defer unlock()
	g, err := s.games.Get(r.Context(), id)
	if err != nil {
		http.Error(w, `{"error":"not_found"}`, http.StatusNotFound)
		return
	}
	_ = json.NewEncoder(w).Encode(stateOf(g))
}

// moveReq is the payload for POST /game/move.
type moveReq struct {
	GameID string `json:"gameId"`
	Slot   *int   `json:"slot"`
}

// handleMove applies the caller's mark for the side to move. In "ai" mode the
// caller is always "x" and the opponent replies before the response is sent.
func (s *Server) handleMove(w http.ResponseWriter, r *http.Request) {
	var req moveReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Slot == nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	if !s.authorizeGame(w, r, req.GameID) {
		return
	}

	unlock := s.lockGame(req.GameID)
	defer unlock()
	g, err := s.games.Get(r.Context(), req.GameID)
	if err != nil {
		http.Error(w, `{"error":"not_found"}`, http.StatusNotFound)
		return
	}
	turn, err := s.ref.Move(r.Context(), g, *req.Slot)
	if err != nil {
		writeMoveError(w, err)
		return
	}

	if err := s.games.Save(r.Context(), g); err != nil {
		http.Error(w, `{"error":"save_failed"}`, http.StatusInternalServerError)
		return
	}

	st := stateOf(g)
	s.hub.Publish(g.ID, st)
	if turn.Placed.Removed != board.NoMove {
		st.Removed = &turn.Placed.Removed
	}
	st.OpponentMove = turn.Opponent
	_ = json.NewEncoder(w).Encode(st)
}

// restartReq is the payload for POST /game/restart.
type restartReq struct {
	GameID string `json:"gameId"`
}

// handleRestart clears board and history; id, mode and token stay valid.
func (s *Server) handleRestart(w http.ResponseWriter, r *http.Request) {
	var req restartReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	if !s.authorizeGame(w, r, req.GameID) {
		return
	}
	unlock := s.lockGame(req.GameID)
	defer unlock()
	g, err := s.games.Get(r.Context(), req.GameID)
	if err != nil {
		http.Error(w, `{"error":"not_found"}`, http.StatusNotFound)
		return
	}
	g.Reset()
	if err := s.games.Save(r.Context(), g); err != nil {
		http.Error(w, `{"error":"save_failed"}`, http.StatusInternalServerError)
		return
	}
	st := stateOf(g)
	s.hub.Publish(g.ID, st)
	_ = json.NewEncoder(w).Encode(st)
}

func writeMoveError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, game.ErrInvalidSlot):
		http.Error(w, `{"error":"invalid_slot"}`, http.StatusBadRequest)
	case errors.Is(err, game.ErrSlotTaken):
		http.Error(w, `{"error":"slot_taken"}`, http.StatusConflict)
	case errors.Is(err, game.ErrGameFinished):
		http.Error(w, `{"error":"game_finished"}`, http.StatusConflict)
	case errors.Is(err, game.ErrNotYourTurn):
		http.Error(w, `{"error":"not_your_turn"}`, http.StatusConflict)
	default:
		http.Error(w, `{"error":"move_failed"}`, http.StatusInternalServerError)
	}
}
