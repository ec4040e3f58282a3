// Package authtoken inspects the backend-issued access token. The client
// never validates signatures (that is the server's job); it only reads claims
// to warn about expired tokens before a batch of calls is attempted.
package authtoken

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid token")

// Claims is the subset of JWT claims the client cares about.
type Claims struct {
	Subject   string
	Issuer    string
	ExpiresAt time.Time
}

// Inspect parses a JWT without verifying its signature and extracts claims.
func Inspect(token string) (Claims, error) {
	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return Claims{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	var claims Claims
	if sub, err := parsed.Claims.GetSubject(); err == nil {
		claims.Subject = sub
	}
	if iss, err := parsed.Claims.GetIssuer(); err == nil {
		claims.Issuer = iss
	}
	if exp, err := parsed.Claims.GetExpirationTime(); err == nil && exp != nil {
		claims.ExpiresAt = exp.Time
	}
	return claims, nil
}

// Expired reports whether the claims carry an expiry in the past.
func (c Claims) Expired(now time.Time) bool {
	return !c.ExpiresAt.IsZero() && c.ExpiresAt.Before(now)
}
