package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

var ErrInvalidToken = errors.New("invalid token")

type claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Tokens mints and verifies the HMAC tokens the storefront trusts for
// identity. It stands in for the external identity provider.
type Tokens struct {
	Secret []byte
	TTL    time.Duration
}

func (t *Tokens) Issue(userID string, role Role) (string, error) {
	ttl := t.TTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	now := time.Now()
	c := claims{
		Role: string(role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(t.Secret)
}

func (t *Tokens) Verify(tokenString string) (Identity, error) {
	var c claims
	tok, err := jwt.ParseWithClaims(tokenString, &c, func(tok *jwt.Token) (any, error) {
		if _, ok := tok.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return t.Secret, nil
	})
	if err != nil || !tok.Valid {
		return Identity{}, ErrInvalidToken
	}
	if c.Subject == "" {
		return Identity{}, ErrInvalidToken
	}
	role, ok := ParseRole(c.Role)
	if !ok {
		return Identity{}, ErrInvalidToken
	}
	return Identity{UserID: c.Subject, Role: role}, nil
}
