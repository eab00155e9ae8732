package projects

import (
	"context"
	"strings"
	"time"

	"projectdesk/internal/auth"

	"github.com/google/uuid"
)

// Service owns project rules and role-scoped visibility. Mutations are
// PM-only at the route layer; reads are filtered here because the answer
// depends on assignment data, not just the role.
type Service struct {
	repo  Repository
	clock func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, clock: time.Now}
}

type CreateInput struct {
	ClientID     string
	Name         string
	Description  string
	DeveloperIDs []string
}

func (s *Service) Create(ctx context.Context, actorID string, in CreateInput) (Project, error) {
	if strings.TrimSpace(in.Name) == "" || in.ClientID == "" {
		return Project{}, ErrInvalidArgument
	}

	now := s.clock().UTC()
	p := Project{
		ID:           uuid.NewString(),
		ClientID:     in.ClientID,
		Name:         strings.TrimSpace(in.Name),
		Description:  in.Description,
		Status:       StatusActive,
		DeveloperIDs: dedupe(in.DeveloperIDs),
		CreatedBy:    actorID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.repo.Insert(ctx, p); err != nil {
		return Project{}, err
	}
	return p, nil
}

// Get hides projects a developer is not assigned to behind ErrNotFound,
// so existence is not leaked.
func (s *Service) Get(ctx context.Context, actor auth.Identity, id string) (Project, error) {
	p, err := s.repo.Get(ctx, id)
	if err != nil {
		return Project{}, err
	}
	if !visibleTo(actor, p) {
		return Project{}, ErrNotFound
	}
	return p, nil
}

func (s *Service) List(ctx context.Context, actor auth.Identity) ([]Project, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if actor.Role == auth.RoleProjectManager {
		return all, nil
	}
	out := make([]Project, 0, len(all))
	for _, p := range all {
		if p.HasDeveloper(actor.UserID) {
			out = append(out, p)
		}
	}
	return out, nil
}

type UpdateInput struct {
	Name         *string
	Description  *string
	Status       *Status
	DeveloperIDs *[]string
}

func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (Project, error) {
	p, err := s.repo.Get(ctx, id)
	if err != nil {
		return Project{}, err
	}

	if in.Name != nil {
		if strings.TrimSpace(*in.Name) == "" {
			return Project{}, ErrInvalidArgument
		}
		p.Name = strings.TrimSpace(*in.Name)
	}
	if in.Description != nil {
		p.Description = *in.Description
	}
	if in.Status != nil {
		if !validStatus(*in.Status) {
			return Project{}, ErrInvalidArgument
		}
		p.Status = *in.Status
	}
	if in.DeveloperIDs != nil {
		p.DeveloperIDs = dedupe(*in.DeveloperIDs)
	}
	p.UpdatedAt = s.clock().UTC()

	if err := s.repo.Update(ctx, p); err != nil {
		return Project{}, err
	}
	return p, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func visibleTo(actor auth.Identity, p Project) bool {
	if actor.Role == auth.RoleProjectManager {
		return true
	}
	return p.HasDeveloper(actor.UserID)
}

func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
