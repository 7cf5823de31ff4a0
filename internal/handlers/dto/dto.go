package dto

import (
	"time"

	"todoQuest/internal/models/todo"
)

type CreateTodoRequest struct {
	Text     string   `json:"text"`
	DueDate  string   `json:"dueDate"`
	DueTime  string   `json:"dueTime"`
	Priority string   `json:"priority"`
	Subtasks []string `json:"subtasks"`
}

type UpdateTodoRequest struct {
	Text     *string         `json:"text,omitempty"`
	DueDate  *string         `json:"dueDate,omitempty"`
	DueTime  *string         `json:"dueTime,omitempty"`
	Priority *string         `json:"priority,omitempty"`
	Subtasks *[]todo.Subtask `json:"subtasks,omitempty"`
}

type NoteRequest struct {
	Notes string `json:"notes"`
}

type AddSubtaskRequest struct {
	Text string `json:"text"`
}

type TodoResponse struct {
	ID        int64          `json:"id"`
	Text      string         `json:"text"`
	Completed bool           `json:"completed"`
	DueDate   string         `json:"dueDate,omitempty"`
	DueTime   string         `json:"dueTime,omitempty"`
	Priority  todo.Priority  `json:"priority"`
	Subtasks  []todo.Subtask `json:"subtasks"`
	Notes     string         `json:"notes"`
	Points    int            `json:"points"`
	IsOverdue bool           `json:"isOverdue"`
}

func FromTodo(t todo.Todo, isOverdue bool) TodoResponse {
	return TodoResponse{
		ID:        t.ID,
		Text:      t.Text,
		Completed: t.Completed,
		DueDate:   t.DueDate,
		DueTime:   t.DueTime,
		Priority:  t.Priority,
		Subtasks:  t.Subtasks,
		Notes:     t.Notes,
		Points:    t.Points,
		IsOverdue: isOverdue,
	}
}

func FromTodoList(todos []todo.Todo, isOverdue func(int64) bool) []TodoResponse {
	result := make([]TodoResponse, len(todos))
	for i, t := range todos {
		result[i] = FromTodo(t, isOverdue(t.ID))
	}
	return result
}

type DeletedTodoResponse struct {
	ID        int64         `json:"id"`
	Text      string        `json:"text"`
	Priority  todo.Priority `json:"priority"`
	DueDate   string        `json:"dueDate,omitempty"`
	DueTime   string        `json:"dueTime,omitempty"`
	DeletedAt time.Time     `json:"deletedAt"`
}

func FromDeletedList(records []todo.DeletedTodo) []DeletedTodoResponse {
	result := make([]DeletedTodoResponse, len(records))
	for i, rec := range records {
		result[i] = DeletedTodoResponse(rec)
	}
	return result
}
