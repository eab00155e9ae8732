package identity

import (
	"errors"
	"time"
)

// User is an authenticated account record.
//
// Invariants:
// - Email is stored lowercased; lookups are case-insensitive as a result.
// - Role is one of auth.RoleDeveloper / auth.RoleProjectManager.
// - PasswordHash is a bcrypt hash; the plain password is never stored.
type User struct {
	ID           string    `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	Email        string    `json:"email" db:"email"`
	Role         string    `json:"role" db:"role"`
	PasswordHash string    `json:"-" db:"password_hash"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// Public returns the user shape safe to serialize in auth responses.
func (u User) Public() PublicUser {
	return PublicUser{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role}
}

type PublicUser struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

var (
	ErrNotFound   = errors.New("user not found")
	ErrEmailTaken = errors.New("email already registered")

	// ErrAuthFailed is deliberately the only error surfaced for both an
	// unknown email and a wrong password, so callers cannot enumerate users.
	ErrAuthFailed = errors.New("invalid credentials")
)
