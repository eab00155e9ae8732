package clients

import (
	"context"
	"sort"
	"sync"
)

// Repository is the persistence contract for clients.
type Repository interface {
	Insert(ctx context.Context, c Client) error
	Get(ctx context.Context, id string) (Client, error)
	Update(ctx context.Context, c Client) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]Client, error)
}

// MemoryRepo is a simple in-memory repository useful for tests and early
// development. Not intended for production.
type MemoryRepo struct {
	mu      sync.RWMutex
	clients map[string]Client
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{clients: make(map[string]Client)}
}

func (r *MemoryRepo) Insert(ctx context.Context, c Client) error {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()
	r.clients[c.ID] = c
	return nil
}

func (r *MemoryRepo) Get(ctx context.Context, id string) (Client, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()
	if c, ok := r.clients[id]; ok {
		return c, nil
	}
	return Client{}, ErrNotFound
}

func (r *MemoryRepo) Update(ctx context.Context, c Client) error {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.clients[c.ID]; !ok {
		return ErrNotFound
	}
	r.clients[c.ID] = c
	return nil
}

func (r *MemoryRepo) Delete(ctx context.Context, id string) error {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.clients[id]; !ok {
		return ErrNotFound
	}
	delete(r.clients, id)
	return nil
}

func (r *MemoryRepo) List(ctx context.Context) ([]Client, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Client, 0, len(r.clients))
	for _, c := range r.clients {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}
