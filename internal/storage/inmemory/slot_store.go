package inmemory

import (
	"context"
	"sync"

	"todoQuest/internal/logger"
	"todoQuest/internal/storage"
)

type SlotStorage struct {
	mtx   sync.RWMutex
	slots map[string][]byte
}

func NewSlotStorage() *SlotStorage {
	return &SlotStorage{
		slots: make(map[string][]byte),
	}
}

func (s *SlotStorage) HealthCheck(ctx context.Context) error {
	logger.Info("Repository: хранилище в памяти доступно")
	return nil
}

func (s *SlotStorage) Get(ctx context.Context, slot string) ([]byte, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	value, ok := s.slots[slot]
	if !ok {
		return nil, storage.ErrNotFound
	}

	copied := make([]byte, len(value))
	copy(copied, value)
	return copied, nil
}

func (s *SlotStorage) Put(ctx context.Context, slot string, value []byte) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	copied := make([]byte, len(value))
	copy(copied, value)
	s.slots[slot] = copied
	return nil
}
