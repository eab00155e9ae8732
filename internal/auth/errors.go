package auth

import "errors"

// Verification failures are deliberately fine-grained for server logs.
// HTTP handlers must collapse all of them into a generic 401; none of
// these messages may reach a client.
var (
	ErrInvalidClaims     = errors.New("claims missing required fields")
	ErrTokenMissing      = errors.New("token missing")
	ErrSignatureInvalid  = errors.New("token signature invalid")
	ErrTokenExpired      = errors.New("token expired")
	ErrPayloadInvalid    = errors.New("token payload invalid")
	ErrRoleInvalid       = errors.New("token role invalid")
	ErrTokenTypeMismatch = errors.New("token type mismatch")
)
