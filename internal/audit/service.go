package audit

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Repository is the persistence contract for security events.
//
// It MUST be append-only.
// No Update/Delete methods are provided by design.
type Repository interface {
	Append(ctx context.Context, e Event) error
}

// Service records auth security events.
//
// IMPORTANT:
// - Records are internal-only; never expose them through the API.
// - Callers should treat recording as best-effort: log the error and
//   continue the auth flow.
type Service struct {
	repo  Repository
	clock func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, clock: time.Now}
}

var ErrInvalidEvent = errors.New("audit: invalid event")

func (s *Service) Append(ctx context.Context, e Event) error {
	if s.repo == nil {
		return errors.New("audit: repository not configured")
	}
	if e.Type == "" {
		return ErrInvalidEvent
	}

	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = s.clock().UTC()
	}
	return s.repo.Append(ctx, e)
}

// LogLogin records a credential check outcome. The submitted email is kept
// for failed attempts so brute-force patterns are visible in one place.
func (s *Service) LogLogin(ctx context.Context, success bool, email, userID, role, ip, sessionID string) error {
	t := EventTypeLoginSuccess
	msg := "login ok"
	if !success {
		t = EventTypeLoginFailed
		msg = "credential check failed"
	}
	return s.Append(ctx, Event{
		Type:        t,
		ActorUserID: userID,
		ActorRole:   role,
		Email:       email,
		IPAddress:   ip,
		SessionID:   sessionID,
		Message:     msg,
	})
}

// LogSession records signup, refresh, logout and forced-logout events.
func (s *Service) LogSession(ctx context.Context, t EventType, userID, role, ip, sessionID, message string) error {
	return s.Append(ctx, Event{
		Type:        t,
		ActorUserID: userID,
		ActorRole:   role,
		IPAddress:   ip,
		SessionID:   sessionID,
		Message:     message,
	})
}
