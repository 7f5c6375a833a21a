package storefront

import (
	"context"
	"sync"
)

type InMemoryRepository struct {
	mu     sync.RWMutex
	values map[string][]byte
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		values: make(map[string][]byte),
	}
}

func (r *InMemoryRepository) Get(ctx context.Context, key string) ([]byte, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	v, ok := r.values[key]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), v...), nil
}

func (r *InMemoryRepository) Put(ctx context.Context, key string, value []byte) error {
	r.mu.Lock()
	r.values[key] = append([]byte(nil), value...)
	r.mu.Unlock()
	return nil
}

func (r *InMemoryRepository) Delete(ctx context.Context, key string) error {
	r.mu.Lock()
	delete(r.values, key)
	r.mu.Unlock()
	return nil
}
