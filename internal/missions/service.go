package missions

import (
	"context"
	"strings"
	"time"

	"projectdesk/internal/auth"

	"github.com/google/uuid"
)

// Service owns mission rules and role-scoped visibility.
type Service struct {
	repo  Repository
	clock func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, clock: time.Now}
}

type CreateInput struct {
	ProjectID   string
	Title       string
	Description string
	AssigneeID  string
	Due         *time.Time
}

func (s *Service) Create(ctx context.Context, actorID string, in CreateInput) (Mission, error) {
	if strings.TrimSpace(in.Title) == "" || in.ProjectID == "" {
		return Mission{}, ErrInvalidArgument
	}

	now := s.clock().UTC()
	m := Mission{
		ID:          uuid.NewString(),
		ProjectID:   in.ProjectID,
		Title:       strings.TrimSpace(in.Title),
		Description: in.Description,
		Status:      StatusTodo,
		AssigneeID:  in.AssigneeID,
		Due:         in.Due,
		CreatedBy:   actorID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.Insert(ctx, m); err != nil {
		return Mission{}, err
	}
	return m, nil
}

// Get hides missions a developer is not assigned to behind ErrNotFound.
func (s *Service) Get(ctx context.Context, actor auth.Identity, id string) (Mission, error) {
	m, err := s.repo.Get(ctx, id)
	if err != nil {
		return Mission{}, err
	}
	if actor.Role != auth.RoleProjectManager && m.AssigneeID != actor.UserID {
		return Mission{}, ErrNotFound
	}
	return m, nil
}

func (s *Service) List(ctx context.Context, actor auth.Identity) ([]Mission, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if actor.Role == auth.RoleProjectManager {
		return all, nil
	}
	out := make([]Mission, 0, len(all))
	for _, m := range all {
		if m.AssigneeID == actor.UserID {
			out = append(out, m)
		}
	}
	return out, nil
}

type UpdateInput struct {
	Title       *string
	Description *string
	AssigneeID  *string
	Due         **time.Time
}

// Update is PM-only (route-enforced) and covers everything but status.
func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (Mission, error) {
	m, err := s.repo.Get(ctx, id)
	if err != nil {
		return Mission{}, err
	}

	if in.Title != nil {
		if strings.TrimSpace(*in.Title) == "" {
			return Mission{}, ErrInvalidArgument
		}
		m.Title = strings.TrimSpace(*in.Title)
	}
	if in.Description != nil {
		m.Description = *in.Description
	}
	if in.AssigneeID != nil {
		m.AssigneeID = *in.AssigneeID
	}
	if in.Due != nil {
		m.Due = *in.Due
	}
	m.UpdatedAt = s.clock().UTC()

	if err := s.repo.Update(ctx, m); err != nil {
		return Mission{}, err
	}
	return m, nil
}

// UpdateStatus is open to both roles: a PM may move any mission, a
// developer only their own.
func (s *Service) UpdateStatus(ctx context.Context, actor auth.Identity, id string, status Status) (Mission, error) {
	if !validStatus(status) {
		return Mission{}, ErrInvalidArgument
	}

	m, err := s.repo.Get(ctx, id)
	if err != nil {
		return Mission{}, err
	}
	if actor.Role != auth.RoleProjectManager {
		if m.AssigneeID != actor.UserID {
			return Mission{}, ErrForbidden
		}
	}

	m.Status = status
	m.UpdatedAt = s.clock().UTC()
	if err := s.repo.Update(ctx, m); err != nil {
		return Mission{}, err
	}
	return m, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
