package store

import (
	"context"
	"sync"
)

// MemoryStore implements InventoryStore using an in-memory map.
type MemoryStore struct {
	mu         sync.RWMutex
	quantities map[int64]int32
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{quantities: make(map[int64]int32)}
}

func (s *MemoryStore) FindQuantity(_ context.Context, productID int64) (int32, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	quantity, ok := s.quantities[productID]
	return quantity, ok, nil
}

func (s *MemoryStore) Upsert(_ context.Context, productID int64, quantity int32) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.quantities[productID] = quantity
	return nil
}
