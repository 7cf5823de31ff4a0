// Пакет storage - снапшот-хранилище "слот -> значение".
// Каждый слот хранит сериализованный JSON своей коллекции или счётчика.
package storage

import (
	"context"
	"errors"
)

const (
	SlotTodos        = "todos"
	SlotDeletedTodos = "deletedTodos"
	SlotOverdueTodos = "overdueTodos"
	SlotPoints       = "points"
	SlotMMR          = "mmr"
)

var ErrNotFound = errors.New("слот не найден")

// Slots перечисляет все слоты снапшота
func Slots() []string {
	return []string{SlotTodos, SlotDeletedTodos, SlotOverdueTodos, SlotPoints, SlotMMR}
}

type SlotStore interface {
	Get(ctx context.Context, slot string) ([]byte, error)
	Put(ctx context.Context, slot string, value []byte) error
	HealthCheck(ctx context.Context) error
}
