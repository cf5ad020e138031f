// internal/httpserver/routes_profile.go
//
// Profile endpoints:
//   - GET  /scores, POST /scores/reset
//   - GET  /settings/mode, PUT /settings/mode
//   - GET  /visit         → first-visit flag (true only once)

package httpserver

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/robalobadob/tictactoe/internal/game"
)

// mountProfile registers score, mode and first-visit routes.
func (s *Server) mountProfile(r chi.Router) {
	r.Get("/scores", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(s.profile.Scores())
	})
	r.Post("/scores/reset", s.handleResetScores)

	r.Get("/settings/mode", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(modeBody{Mode: string(s.profile.Mode())})
	})
	r.Put("/settings/mode", s.handleSetMode)

	r.Get("/visit", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]bool{"firstVisit": s.profile.FirstVisit(r.Context())})
	})
}

type modeBody struct {
	Mode string `json:"mode"`
}

// decodeMode reads {"mode": "..."} and validates it.
func decodeMode(w http.ResponseWriter, r *http.Request) (game.Mode, bool) {
	var body modeBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return "", false
	}
	m, ok := game.ParseMode(body.Mode)
	if !ok {
		http.Error(w, `{"error":"invalid_mode"}`, http.StatusBadRequest)
		return "", false
	}
	return m, true
}

// handleResetScores zeroes the tally of one mode.
func (s *Server) handleResetScores(w http.ResponseWriter, r *http.Request) {
	m, ok := decodeMode(w, r)
	if !ok {
		return
	}
	_ = json.NewEncoder(w).Encode(s.profile.ResetScores(r.Context(), m))
}

// handleSetMode stores the default mode for new games. Running games keep
// the mode they were started with.
func (s *Server) handleSetMode(w http.ResponseWriter, r *http.Request) {
	m, ok := decodeMode(w, r)
	if !ok {
		return
	}
	s.profile.SetMode(r.Context(), m)
	_ = json.NewEncoder(w).Encode(modeBody{Mode: string(m)})
}
