package clients

import (
	"errors"
	"time"
)

// Client is a customer account that projects are billed to.
// Clients are managed by Project Managers only; route-level RBAC keeps
// developers out of this module entirely.
type Client struct {
	ID      string `json:"id" db:"id"`
	Name    string `json:"name" db:"name"`
	Company string `json:"company,omitempty" db:"company"`
	Email   string `json:"email,omitempty" db:"email"`
	Phone   string `json:"phone,omitempty" db:"phone"`
	Notes   string `json:"notes,omitempty" db:"notes"`

	// CreatedBy is the PM who registered the client.
	CreatedBy string `json:"created_by" db:"created_by"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

var (
	ErrNotFound        = errors.New("client not found")
	ErrInvalidArgument = errors.New("invalid argument")
)
