package product

import (
	"context"
	"errors"
	"sort"
	"sync"

	"marketledger/internal/domain"
)

type memoryRepo struct {
	mu    sync.RWMutex
	items map[string]domain.Product
}

// NewMemory returns a process-local store, used by tests and STORE_BACKEND=memory.
func NewMemory() Repository {
	return &memoryRepo{items: make(map[string]domain.Product)}
}

func (r *memoryRepo) List(_ context.Context) ([]domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]string, 0, len(r.items))
	for id := range r.items {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	out := make([]domain.Product, 0, len(ids))
	for _, id := range ids {
		out = append(out, r.items[id].Clone())
	}
	return out, nil
}

func (r *memoryRepo) GetByID(_ context.Context, id string) (*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.items[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	clone := p.Clone()
	return &clone, nil
}

func (r *memoryRepo) Upsert(_ context.Context, p domain.Product) (*domain.Product, error) {
	if p.ID == "" {
		return nil, errors.New("product repo: upsert without id")
	}
	stored := p.Clone()

	r.mu.Lock()
	r.items[p.ID] = stored
	r.mu.Unlock()

	out := stored.Clone()
	return &out, nil
}

func (r *memoryRepo) Delete(_ context.Context, id string) (*domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.items[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	delete(r.items, id)
	return &p, nil
}

func (r *memoryRepo) Ping(_ context.Context) error {
	return nil
}
