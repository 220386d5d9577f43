// internal/httpserver/token.go
//
// Game tokens.
// Each new session is handed an HS256 JWT whose gameId claim names it.
// Guess and board requests must present that token as a bearer credential,
// so one player cannot act on another player's session.

package httpserver

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var errBadToken = errors.New("invalid token")

// gameClaims binds a bearer token to exactly one session.
type gameClaims struct {
	GameID string `json:"gameId"`
	jwt.RegisteredClaims
}

// signGameToken creates an HS256 JWT naming gameID.
func (s *Server) signGameToken(gameID string) (string, time.Time, error) {
	now := time.Now()
	exp := now.Add(s.cfg.TokenTTL)
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, gameClaims{
		GameID: gameID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(exp),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	})
	ss, err := t.SignedString([]byte(s.cfg.JWTSecret))
	return ss, exp, err
}

// authorizeGame checks that the request carries a valid token for gameID.
func (s *Server) authorizeGame(r *http.Request, gameID string) error {
	tok := bearer(r)
	if tok == "" {
		return errBadToken
	}
	var claims gameClaims
	t, err := jwt.ParseWithClaims(tok, &claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(s.cfg.JWTSecret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !t.Valid || claims.GameID != gameID {
		return errBadToken
	}
	return nil
}

// bearer extracts a token from the Authorization header.
func bearer(r *http.Request) string {
	// Authorization: Bearer <token>
	if a := r.Header.Get("Authorization"); strings.HasPrefix(strings.ToLower(a), "bearer ") {
		return strings.TrimSpace(a[7:])
	}
	return ""
}
