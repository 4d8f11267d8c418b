// Package token reads claims out of the tokens issued by the back-office API.
//
// Decoding is claims-only: signatures are never verified here. The backend is
// the sole trust boundary, so decoded claims feed session and display state
// and must never be used for an authorization decision.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	TypeAccess  = "access_token"
	TypeRefresh = "refresh_token"
)

var (
	ErrMalformed = errors.New("malformed token")
	ErrWrongType = errors.New("unexpected token type")
)

type Claims struct {
	TokenType string `json:"token_type"`
	UserID    int64  `json:"user_id"`
	Role      string `json:"role"`
	jwt.RegisteredClaims
}

// PhoneNumber is the token subject.
func (c *Claims) PhoneNumber() string { return c.Subject }

var parser = jwt.NewParser()

// Decode parses the claims of a three-segment dot-delimited token without
// verifying its signature. Malformed input of any kind yields ErrMalformed.
func Decode(raw string) (*Claims, error) {
	claims := &Claims{}
	if _, _, err := parser.ParseUnverified(raw, claims); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return claims, nil
}

// DecodeAccess decodes raw and rejects anything that is not an access token,
// so a refresh token can never stand in for one.
func DecodeAccess(raw string) (*Claims, error) {
	claims, err := Decode(raw)
	if err != nil {
		return nil, err
	}
	if claims.TokenType != TypeAccess {
		return nil, fmt.Errorf("%w: %q", ErrWrongType, claims.TokenType)
	}
	return claims, nil
}

// IsExpired reports whether raw can no longer be trusted at instant now.
// A token that fails to decode, carries no expiry, or whose expiry has been
// reached all count as expired; callers must not distinguish the three.
func IsExpired(raw string, now time.Time) bool {
	claims, err := Decode(raw)
	if err != nil {
		return true
	}
	if claims.ExpiresAt == nil {
		return true
	}
	return !now.Before(claims.ExpiresAt.Time)
}
