// Package auth inspects bearer tokens held by the client. The backend is
// the only party that verifies signatures; the client just surfaces claims.
package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenExpiry parses the token without verifying its signature and returns
// its expiry. ok is false when the token is not a JWT or carries no exp
// claim; such tokens are still sent as-is and left to the backend to judge.
func TokenExpiry(token string) (time.Time, bool) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}
