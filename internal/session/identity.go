package session

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/feedzz/feedzztrab-cli/internal/models"
)

// Identity is what the JWT claims say about the signed-in user. The
// token is decoded only, never verified; verification is the server's
// responsibility.
type Identity struct {
	UserID   int64
	Username string
	Role     models.Role
	Expiry   time.Time
}

// Valid reports whether the identity is still usable at the given
// instant. A token without an exp claim never expires client-side.
func (i Identity) Valid(now time.Time) bool {
	return i.Expiry.IsZero() || now.Before(i.Expiry)
}

// Decode extracts the identity claims from a raw JWT.
func Decode(token string) (Identity, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return Identity{}, fmt.Errorf("decode token: %w", err)
	}

	id := Identity{}
	if v, ok := claims["utilizador_id"].(float64); ok {
		id.UserID = int64(v)
	}
	if v, ok := claims["nome_utilizador"].(string); ok {
		id.Username = v
	}
	if v, ok := claims["funcao"].(string); ok {
		id.Role = models.Role(v)
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		id.Expiry = exp.Time
	}

	if id.UserID == 0 {
		return Identity{}, fmt.Errorf("decode token: claim utilizador_id em falta")
	}
	return id, nil
}
