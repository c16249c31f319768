package cache

import (
	"context"
	"sync"

	"github.com/skinsight/backend/internal/domain"
)

// MemoryStore is a thread-safe in-memory product store. Useful for tests and
// for running without any persistence configured.
type MemoryStore struct {
	mutex    sync.RWMutex
	products []domain.Product
}

// NewMemoryStore creates a new in-memory product store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// LoadAll returns a copy of the stored product set
func (s *MemoryStore) LoadAll(ctx context.Context) ([]domain.Product, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	out := make([]domain.Product, len(s.products))
	copy(out, s.products)
	return out, nil
}

// SaveAll replaces the stored product set
func (s *MemoryStore) SaveAll(ctx context.Context, products []domain.Product) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.products = make([]domain.Product, len(products))
	copy(s.products, products)
	return nil
}

// DeleteAll removes every stored product
func (s *MemoryStore) DeleteAll(ctx context.Context) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.products = nil
	return nil
}

// Size returns the current number of stored products (for debugging/monitoring)
func (s *MemoryStore) Size() int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return len(s.products)
}
