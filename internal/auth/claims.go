package auth

import "github.com/golang-jwt/jwt/v5"

type TokenType string

const (
	TokenTypeAccess  TokenType = "access"
	TokenTypeRefresh TokenType = "refresh"
)

// Claims is the only supported JWT claims shape for this service.
// Two variants share it, discriminated by TokenType:
//
//   - access:  user_id + email + role are all required
//   - refresh: only user_id is required; email and role must stay empty
//     so a leaked refresh token carries as little as possible
//
// Verification checks the variant's required-field set; a generic claim
// bag is never accepted.
type Claims struct {
	jwt.RegisteredClaims

	UserID    string    `json:"user_id"`
	Email     string    `json:"email,omitempty"`
	Role      string    `json:"role,omitempty"`
	TokenType TokenType `json:"token_type"`
}

// validatePayload enforces the required-field set of the expected variant.
func (c Claims) validatePayload(expected TokenType) error {
	if c.UserID == "" {
		return ErrPayloadInvalid
	}
	if expected == TokenTypeAccess {
		if c.Email == "" || c.Role == "" {
			return ErrPayloadInvalid
		}
	}
	if c.Role != "" && !ValidRole(c.Role) {
		return ErrRoleInvalid
	}
	return nil
}
