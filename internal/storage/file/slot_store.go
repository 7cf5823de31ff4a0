// Файловое хранилище: один слот - один json-файл в каталоге данных
package file

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"todoQuest/internal/storage"
)

type SlotStorage struct {
	dir string
	mtx sync.Mutex
}

func New(dir string) (*SlotStorage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("создание каталога данных: %w", err)
	}
	return &SlotStorage{dir: dir}, nil
}

func (s *SlotStorage) HealthCheck(ctx context.Context) error {
	if _, err := os.Stat(s.dir); err != nil {
		return fmt.Errorf("каталог данных недоступен: %w", err)
	}
	return nil
}

func (s *SlotStorage) Get(ctx context.Context, slot string) ([]byte, error) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	value, err := os.ReadFile(s.path(slot))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("чтение слота %s: %w", slot, err)
	}
	return value, nil
}

func (s *SlotStorage) Put(ctx context.Context, slot string, value []byte) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if err := os.WriteFile(s.path(slot), value, 0o644); err != nil {
		return fmt.Errorf("запись слота %s: %w", slot, err)
	}
	return nil
}

func (s *SlotStorage) path(slot string) string {
	return filepath.Join(s.dir, slot+".json")
}
