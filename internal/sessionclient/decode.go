package sessionclient

import (
	"errors"
	"time"

	"projectdesk/internal/auth"

	"github.com/golang-jwt/jwt/v5"
)

var errDecode = errors.New("token not decodable")

// decodeClaims reads a token's claims without checking the signature. The
// client is only ever inspecting a token the server already handed it over
// an authenticated channel, so a local signature check buys nothing; the
// server re-verifies on every request regardless.
func decodeClaims(token string) (auth.Claims, error) {
	if token == "" {
		return auth.Claims{}, errDecode
	}
	var claims auth.Claims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return auth.Claims{}, errDecode
	}
	return claims, nil
}

// Expiry returns the token's exp claim.
func Expiry(token string) (time.Time, error) {
	claims, err := decodeClaims(token)
	if err != nil {
		return time.Time{}, err
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, errDecode
	}
	return claims.ExpiresAt.Time, nil
}

// Role returns the token's role claim, empty for refresh-shaped tokens.
func Role(token string) (string, error) {
	claims, err := decodeClaims(token)
	if err != nil {
		return "", err
	}
	return claims.Role, nil
}
