package jwtx

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Token purposes. Access tokens authorize resource access; refresh tokens
// only authorize minting a new access token.
const (
	TypeAccess  = "access"
	TypeRefresh = "refresh"
)

// Default token TTLs. Short access tokens bound the damage of a leak; the
// refresh token carries the session.
const (
	DefaultAccessTokenTTL  = 300 * time.Second
	DefaultRefreshTokenTTL = 24 * time.Hour
)

// Claims are the signed token payload: subject (user id), role, and the
// token purpose, on top of the registered iat/exp fields.
type Claims struct {
	jwt.RegisteredClaims

	Role      string `json:"role,omitempty"`
	TokenType string `json:"type"`
}

// Subject is the identity a token is issued for.
type Subject struct {
	ID   string
	Role string
}

// IsRefresh reports whether the claims belong to a refresh token.
func (c Claims) IsRefresh() bool { return c.TokenType == TypeRefresh }

// UserID returns the subject claim.
func (c Claims) UserID() string { return c.Subject }

// Remaining returns the time until expiry, negative when already expired
// and zero when no expiry is set.
func (c Claims) Remaining(now time.Time) time.Duration {
	if c.ExpiresAt == nil {
		return 0
	}
	return c.ExpiresAt.Time.Sub(now)
}
