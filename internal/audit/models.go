package audit

import "time"

// Event is an immutable, append-only security log record for the auth path.
//
// Invariants:
// - Events are never updated or deleted.
// - Actor and ip capture are best-effort; never block an auth flow on
//   audit failures.
//
// Storage recommendation (Postgres):
// - Table auth_events with an INSERT-only policy.
// - Optional: partition by time for retention.

type Event struct {
	ID string `json:"id" db:"id"`

	// Type indicates the security category of the record.
	Type EventType `json:"type" db:"type"`

	// ActorUserID is the authenticated user causing the event (if known).
	ActorUserID string `json:"actor_user_id,omitempty" db:"actor_user_id"`
	ActorRole   string `json:"actor_role,omitempty" db:"actor_role"`

	// Email is the submitted login email for credential events; it may not
	// correspond to an existing account.
	Email string `json:"email,omitempty" db:"email"`

	// IPAddress should capture the original client IP when available.
	IPAddress string `json:"ip_address,omitempty" db:"ip_address"`

	// SessionID ties the record to a client session where one exists.
	SessionID string `json:"session_id,omitempty" db:"session_id"`

	// Message is a short human-readable description for internal ops.
	Message string `json:"message,omitempty" db:"message"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

type EventType string

const (
	EventTypeLoginSuccess EventType = "login_success"
	EventTypeLoginFailed  EventType = "login_failed"
	EventTypeSignup       EventType = "signup"
	EventTypeRefresh      EventType = "token_refresh"
	EventTypeLogout       EventType = "logout"
	EventTypeForcedLogout EventType = "forced_logout"
)
