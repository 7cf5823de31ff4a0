package handlers

import (
	"context"

	"todoQuest/internal/models/todo"
	"todoQuest/internal/service"
)

// TrackerService - операции ядра, которые дергает HTTP-слой.
// Операции по отсутствующему id - тихие no-op, ошибок от них не будет.
type TrackerService interface {
	CreateTodo(ctx context.Context, text, dueDate, dueTime string, priority todo.Priority, subtasks []string) (todo.Todo, error)
	UpdateTodo(ctx context.Context, id int64, options ...todo.Option)
	UpdateNote(ctx context.Context, id int64, notes string)
	ToggleTodo(ctx context.Context, id int64)
	DeleteTodo(ctx context.Context, id int64)
	RestoreTodo(ctx context.Context, id int64)
	PurgeDeleted(ctx context.Context, id int64)
	ClearCompleted(ctx context.Context)
	AddSubtask(ctx context.Context, todoID int64, text string) error
	ToggleSubtask(ctx context.Context, todoID, subtaskID int64)
	DeleteSubtask(ctx context.Context, todoID, subtaskID int64)

	FilteredTodos(filter service.Filter) []todo.Todo
	DeletedTodos() []todo.DeletedTodo
	IsOverdue(id int64) bool
	Stats() service.Stats
	HealthCheck(ctx context.Context) error
}
