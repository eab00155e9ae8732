package identity

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryRepo is a simple in-memory repository useful for tests and early
// development.
//
// NOTE: This is not intended for production; use SQLRepo.
type MemoryRepo struct {
	mu    sync.RWMutex
	users map[string]User // keyed by id
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{users: make(map[string]User)}
}

func (r *MemoryRepo) FindByEmail(ctx context.Context, email string) (User, error) {
	_ = ctx
	email = NormalizeEmail(email)

	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return User{}, ErrNotFound
}

func (r *MemoryRepo) FindByID(ctx context.Context, id string) (User, error) {
	_ = ctx

	r.mu.RLock()
	defer r.mu.RUnlock()
	if u, ok := r.users[id]; ok {
		return u, nil
	}
	return User{}, ErrNotFound
}

func (r *MemoryRepo) Create(ctx context.Context, u User) (User, error) {
	_ = ctx
	u.Email = NormalizeEmail(u.Email)
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	u.CreatedAt = now
	u.UpdatedAt = now

	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Email == u.Email {
			return User{}, ErrEmailTaken
		}
	}
	r.users[u.ID] = u
	return u, nil
}

func (r *MemoryRepo) List(ctx context.Context) ([]User, error) {
	_ = ctx

	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, u)
	}
	return out, nil
}

// Delete removes a user. Used to exercise the principal-gone refresh path.
func (r *MemoryRepo) Delete(ctx context.Context, id string) {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.users, id)
}
