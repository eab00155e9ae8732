package missions

import (
	"context"
	"sort"
	"sync"
)

// Repository is the persistence contract for missions.
type Repository interface {
	Insert(ctx context.Context, m Mission) error
	Get(ctx context.Context, id string) (Mission, error)
	Update(ctx context.Context, m Mission) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]Mission, error)
}

// MemoryRepo is a simple in-memory repository useful for tests and early
// development. Not intended for production.
type MemoryRepo struct {
	mu       sync.RWMutex
	missions map[string]Mission
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{missions: make(map[string]Mission)}
}

func (r *MemoryRepo) Insert(ctx context.Context, m Mission) error {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()
	r.missions[m.ID] = m
	return nil
}

func (r *MemoryRepo) Get(ctx context.Context, id string) (Mission, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()
	if m, ok := r.missions[id]; ok {
		return m, nil
	}
	return Mission{}, ErrNotFound
}

func (r *MemoryRepo) Update(ctx context.Context, m Mission) error {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.missions[m.ID]; !ok {
		return ErrNotFound
	}
	r.missions[m.ID] = m
	return nil
}

func (r *MemoryRepo) Delete(ctx context.Context, id string) error {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.missions[id]; !ok {
		return ErrNotFound
	}
	delete(r.missions, id)
	return nil
}

func (r *MemoryRepo) List(ctx context.Context) ([]Mission, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Mission, 0, len(r.missions))
	for _, m := range r.missions {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}
