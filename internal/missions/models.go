package missions

import (
	"errors"
	"time"
)

// Mission is a unit of work inside a project, assigned to one developer.
//
// Visibility:
// - Project Managers see every mission.
// - Developers see only missions assigned to them.
//
// Status may be moved by the assigned developer or any PM; everything else
// is PM-only.
type Mission struct {
	ID          string `json:"id" db:"id"`
	ProjectID   string `json:"project_id" db:"project_id"`
	Title       string `json:"title" db:"title"`
	Description string `json:"description,omitempty" db:"description"`

	Status     Status `json:"status" db:"status"`
	AssigneeID string `json:"assignee_id,omitempty" db:"assignee_id"`

	Due *time.Time `json:"due,omitempty" db:"due"`

	CreatedBy string    `json:"created_by" db:"created_by"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

type Status string

const (
	StatusTodo       Status = "todo"
	StatusInProgress Status = "in_progress"
	StatusDone       Status = "done"
)

func validStatus(s Status) bool {
	switch s {
	case StatusTodo, StatusInProgress, StatusDone:
		return true
	default:
		return false
	}
}

var (
	ErrNotFound        = errors.New("mission not found")
	ErrInvalidArgument = errors.New("invalid argument")
	ErrForbidden       = errors.New("not allowed")
)
