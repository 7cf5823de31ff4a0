package todo

import (
	"time"
)

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Normalized приводит неизвестный приоритет к среднему
func (p Priority) Normalized() Priority {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return p
	}
	return PriorityMedium
}

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

type Todo struct {
	ID        int64     `json:"id"`
	Text      string    `json:"text"`
	Completed bool      `json:"completed"`
	DueDate   string    `json:"dueDate,omitempty"`
	DueTime   string    `json:"dueTime,omitempty"`
	Priority  Priority  `json:"priority"`
	Subtasks  []Subtask `json:"subtasks"`
	Notes     string    `json:"notes"`
	Points    int       `json:"points"`
}

type Subtask struct {
	ID        int64  `json:"id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
}

// DeletedTodo - снимок незавершённой задачи на момент удаления,
// по нему задачу можно восстановить
type DeletedTodo struct {
	ID        int64     `json:"id"`
	Text      string    `json:"text"`
	Priority  Priority  `json:"priority"`
	DueDate   string    `json:"dueDate,omitempty"`
	DueTime   string    `json:"dueTime,omitempty"`
	DeletedAt time.Time `json:"deletedAt"`
}

// OverdueTodo - отметка о просрочке, создаётся ровно один раз на задачу
type OverdueTodo struct {
	ID              int64     `json:"id"`
	Text            string    `json:"text"`
	Priority        Priority  `json:"priority"`
	DueDate         string    `json:"dueDate,omitempty"`
	DueTime         string    `json:"dueTime,omitempty"`
	BecameOverdueAt time.Time `json:"becameOverdueAt"`
}

// Deadline считает эффективный дедлайн задачи.
// Без dueTime дедлайном считается конец дня - 23:59:59.
// Возвращает false, если дата не задана или не парсится.
func (t *Todo) Deadline() (time.Time, bool) {
	if t.DueDate == "" {
		return time.Time{}, false
	}

	day, err := time.ParseInLocation(DateLayout, t.DueDate, time.Local)
	if err != nil {
		return time.Time{}, false
	}

	if t.DueTime != "" {
		clock, err := time.ParseInLocation(TimeLayout, t.DueTime, time.Local)
		if err == nil {
			return time.Date(day.Year(), day.Month(), day.Day(), clock.Hour(), clock.Minute(), 0, 0, time.Local), true
		}
	}

	return time.Date(day.Year(), day.Month(), day.Day(), 23, 59, 59, 0, time.Local), true
}

// CountSubtasks возвращает общее и завершённое количество подзадач
func (t *Todo) CountSubtasks() (total, completed int) {
	total = len(t.Subtasks)
	for _, st := range t.Subtasks {
		if st.Completed {
			completed++
		}
	}
	return total, completed
}

// Clone возвращает копию задачи с собственным срезом подзадач
func (t *Todo) Clone() Todo {
	copied := *t
	copied.Subtasks = make([]Subtask, len(t.Subtasks))
	copy(copied.Subtasks, t.Subtasks)
	return copied
}
