package projects

import (
	"errors"
	"time"
)

// Project groups missions under a client engagement.
//
// Visibility:
// - Project Managers see every project.
// - Developers see only projects they are assigned to.
type Project struct {
	ID          string `json:"id" db:"id"`
	ClientID    string `json:"client_id" db:"client_id"`
	Name        string `json:"name" db:"name"`
	Description string `json:"description,omitempty" db:"description"`

	Status Status `json:"status" db:"status"`

	// DeveloperIDs are the assigned developer user ids.
	DeveloperIDs []string `json:"developer_ids" db:"developer_ids"`

	CreatedBy string    `json:"created_by" db:"created_by"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

func (p Project) HasDeveloper(userID string) bool {
	for _, id := range p.DeveloperIDs {
		if id == userID {
			return true
		}
	}
	return false
}

type Status string

const (
	StatusActive   Status = "active"
	StatusArchived Status = "archived"
)

func validStatus(s Status) bool {
	return s == StatusActive || s == StatusArchived
}

var (
	ErrNotFound        = errors.New("project not found")
	ErrInvalidArgument = errors.New("invalid argument")
)
