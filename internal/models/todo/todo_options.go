package todo

import "strings"

// Option - функция частичного обновления задачи.
// nil-опции сервис пропускает, так помечаются непереданные поля.
type Option func(*Todo)

func WithText(text string) Option {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	return func(t *Todo) {
		t.Text = text
	}
}

func WithDueDate(dueDate string) Option {
	return func(t *Todo) {
		t.DueDate = dueDate
	}
}

func WithDueTime(dueTime string) Option {
	return func(t *Todo) {
		t.DueTime = dueTime
	}
}

// WithPriority меняет приоритет задачи.
// Награда points при этом не пересчитывается - она фиксируется при создании.
func WithPriority(priority Priority) Option {
	return func(t *Todo) {
		t.Priority = priority.Normalized()
	}
}

func WithSubtasks(subtasks []Subtask) Option {
	return func(t *Todo) {
		if subtasks == nil {
			subtasks = []Subtask{}
		}
		t.Subtasks = subtasks
	}
}
