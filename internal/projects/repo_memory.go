package projects

import (
	"context"
	"sort"
	"sync"
)

// Repository is the persistence contract for projects.
type Repository interface {
	Insert(ctx context.Context, p Project) error
	Get(ctx context.Context, id string) (Project, error)
	Update(ctx context.Context, p Project) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]Project, error)
}

// MemoryRepo is a simple in-memory repository useful for tests and early
// development. Not intended for production.
type MemoryRepo struct {
	mu       sync.RWMutex
	projects map[string]Project
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{projects: make(map[string]Project)}
}

func (r *MemoryRepo) Insert(ctx context.Context, p Project) error {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()
	r.projects[p.ID] = p
	return nil
}

func (r *MemoryRepo) Get(ctx context.Context, id string) (Project, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()
	if p, ok := r.projects[id]; ok {
		return p, nil
	}
	return Project{}, ErrNotFound
}

func (r *MemoryRepo) Update(ctx context.Context, p Project) error {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.projects[p.ID]; !ok {
		return ErrNotFound
	}
	r.projects[p.ID] = p
	return nil
}

func (r *MemoryRepo) Delete(ctx context.Context, id string) error {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.projects[id]; !ok {
		return ErrNotFound
	}
	delete(r.projects, id)
	return nil
}

func (r *MemoryRepo) List(ctx context.Context) ([]Project, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Project, 0, len(r.projects))
	for _, p := range r.projects {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}
