package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/skinsight/backend/internal/domain"
)

// FileStore persists the product set as a single JSON document on disk.
// Writes go through a temp file and rename so a crash mid-write cannot leave
// a truncated cache behind.
type FileStore struct {
	path  string
	mutex sync.Mutex
}

// NewFileStore creates a file-backed product store at the given path
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// LoadAll reads the full product set. A missing file is an empty cache, not
// an error.
func (s *FileStore) LoadAll(ctx context.Context) ([]domain.Product, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrCacheUnavailable, err)
	}

	var products []domain.Product
	if err := json.Unmarshal(data, &products); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCacheUnavailable, err)
	}

	return products, nil
}

// SaveAll replaces the full product set on disk
func (s *FileStore) SaveAll(ctx context.Context, products []domain.Product) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if products == nil {
		products = []domain.Product{}
	}

	data, err := json.Marshal(products)
	if err != nil {
		return fmt.Errorf("failed to encode products: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".products-*.json")
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrCacheUnavailable, err)
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("%w: %v", domain.ErrCacheUnavailable, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("%w: %v", domain.ErrCacheUnavailable, err)
	}

	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("%w: %v", domain.ErrCacheUnavailable, err)
	}

	return nil
}

// DeleteAll removes the cache file entirely
func (s *FileStore) DeleteAll(ctx context.Context) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("%w: %v", domain.ErrCacheUnavailable, err)
	}
	return nil
}
