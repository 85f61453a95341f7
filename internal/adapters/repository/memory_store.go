package repository

import (
	"context"
	"sync"

	"github.com/comitanigiacomo/kyool-companion/internal/core/domain"
)

var _ domain.DeviceStorage = (*InMemoryStorage)(nil)

type InMemoryStorage struct {
	items map[string]string

	mu sync.RWMutex
}

func NewInMemoryStorage() *InMemoryStorage {
	return &InMemoryStorage{
		items: make(map[string]string),
	}
}

func (s *InMemoryStorage) GetItem(ctx context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.items[key]
	return v, ok, nil
}

func (s *InMemoryStorage) SetItem(ctx context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items[key] = value
	return nil
}

func (s *InMemoryStorage) RemoveItem(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.items, key)
	return nil
}
