// internal/httpserver/tokens.go
//
// Responsibilities:
//   - Sign per-game HS256 JWTs whose subject is the game id.
//   - Check the bearer token on every request that touches a game.

package httpserver

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var errTokenMismatch = errors.New("token is for another game")

// tokenIssuer signs and checks per-game HS256 tokens. The subject is the
// game id; holding the token is what lets a client move in that game.
type tokenIssuer struct {
	secret []byte
	ttl    time.Duration
}

func (t tokenIssuer) Sign(gameID string) (string, error) {
	now := time.Now()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   gameID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
	})
	return tok.SignedString(t.secret)
}

// Verify checks signature, expiry and that the token belongs to gameID.
func (t tokenIssuer) Verify(tokenStr, gameID string) error {
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(tokenStr, claims, func(*jwt.Token) (interface{}, error) {
		return t.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return err
	}
	if claims.Subject != gameID {
		return errTokenMismatch
	}
	return nil
}

// bearerOrQuery extracts a token from the Authorization header or, for
// websocket upgrades, the "token" query parameter.
func bearerOrQuery(r *http.Request) string {
	// Authorization: Bearer <token>
	if a := r.Header.Get("Authorization"); strings.HasPrefix(strings.ToLower(a), "bearer ") {
		return strings.TrimSpace(a[7:])
	}
	return r.URL.Query().Get("token")
}

// authorizeGame writes a 401 and returns false unless the request carries a
// valid token for gameID.
func (s *Server) authorizeGame(w http.ResponseWriter, r *http.Request, gameID string) bool {
	tok := bearerOrQuery(r)
	if tok == "" {
		http.Error(w, `{"error":"Unauthorized"}`, http.StatusUnauthorized)
		return false
	}
	if err := s.tokens.Verify(tok, gameID); err != nil {
		http.Error(w, `{"error":"Invalid token"}`, http.StatusUnauthorized)
		return false
	}
	return true
}
