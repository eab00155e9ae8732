package clients

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Service owns client lifecycle rules. RBAC (PM-only) is enforced at the
// route layer; this service validates input and timestamps records.
type Service struct {
	repo  Repository
	clock func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, clock: time.Now}
}

type CreateInput struct {
	Name    string
	Company string
	Email   string
	Phone   string
	Notes   string
}

func (s *Service) Create(ctx context.Context, actorID string, in CreateInput) (Client, error) {
	if strings.TrimSpace(in.Name) == "" {
		return Client{}, ErrInvalidArgument
	}

	now := s.clock().UTC()
	c := Client{
		ID:        uuid.NewString(),
		Name:      strings.TrimSpace(in.Name),
		Company:   strings.TrimSpace(in.Company),
		Email:     strings.ToLower(strings.TrimSpace(in.Email)),
		Phone:     strings.TrimSpace(in.Phone),
		Notes:     in.Notes,
		CreatedBy: actorID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Insert(ctx, c); err != nil {
		return Client{}, err
	}
	return c, nil
}

func (s *Service) Get(ctx context.Context, id string) (Client, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]Client, error) {
	return s.repo.List(ctx)
}

type UpdateInput struct {
	Name    *string
	Company *string
	Email   *string
	Phone   *string
	Notes   *string
}

func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (Client, error) {
	c, err := s.repo.Get(ctx, id)
	if err != nil {
		return Client{}, err
	}

	if in.Name != nil {
		if strings.TrimSpace(*in.Name) == "" {
			return Client{}, ErrInvalidArgument
		}
		c.Name = strings.TrimSpace(*in.Name)
	}
	if in.Company != nil {
		c.Company = strings.TrimSpace(*in.Company)
	}
	if in.Email != nil {
		c.Email = strings.ToLower(strings.TrimSpace(*in.Email))
	}
	if in.Phone != nil {
		c.Phone = strings.TrimSpace(*in.Phone)
	}
	if in.Notes != nil {
		c.Notes = *in.Notes
	}
	c.UpdatedAt = s.clock().UTC()

	if err := s.repo.Update(ctx, c); err != nil {
		return Client{}, err
	}
	return c, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
