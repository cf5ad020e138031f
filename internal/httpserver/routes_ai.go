// internal/httpserver/routes_ai.go
//
// Read-only views of the adaptive opponent:
//   - GET /ai/stats       → aggregate counters and number of known boards
//   - GET /ai/rank?key=   → ranked candidates for a board key ("x-o------")
//   - GET /ai/patterns    → full serialized memory; admin only (basic auth,
//                           password checked against ADMIN_PASSWORD_HASH)

package httpserver

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/robalobadob/tictactoe/internal/board"
	"github.com/robalobadob/tictactoe/internal/learner"
)

func (s *Server) mountAI(r chi.Router) {
	r.Route("/ai", func(r chi.Router) {
		r.Get("/stats", func(w http.ResponseWriter, r *http.Request) {
			_ = json.NewEncoder(w).Encode(s.ai.Store().Totals())
		})
		r.Get("/rank", s.handleRank)
		r.With(s.requireAdmin).Get("/patterns", func(w http.ResponseWriter, r *http.Request) {
			_ = json.NewEncoder(w).Encode(s.ai.Store().Snapshot())
		})
	})
}

// rankRes is returned by /ai/rank.
type rankRes struct {
	Key        string              `json:"key"`
	Known      bool                `json:"known"`
	Candidates []learner.Candidate `json:"candidates"`
}

func (s *Server) handleRank(w http.ResponseWriter, r *http.Request) {
	key := r.URL.Query().Get("key")
	b, err := board.ParseKey(key)
	if err != nil {
		http.Error(w, `{"error":"invalid_key"}`, http.StatusBadRequest)
		return
	}
	_, known := s.ai.Store().Get(key)
	_ = json.NewEncoder(w).Encode(rankRes{Key: key, Known: known, Candidates: s.ai.Policy().Rank(b)})
}

// requireAdmin checks the basic-auth password against the configured bcrypt
// hash. Without a hash the guarded routes do not exist.
func (s *Server) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.cfg.AdminPasswordHash == "" {
			http.Error(w, `{"error":"not_found","path":"`+r.URL.Path+`"}`, http.StatusNotFound)
			return
		}
		_, pw, ok := r.BasicAuth()
		if !ok || !checkPassword(s.cfg.AdminPasswordHash, pw) {
			log.Warn().Str("path", r.URL.Path).Msg("admin auth failed")
			w.Header().Set("WWW-Authenticate", `Basic realm="tictactoe"`)
			http.Error(w, `{"error":"Unauthorized"}`, http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// checkPassword is a bcrypt verifier.
func checkPassword(hash, pw string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(pw)) == nil
}
