package service

import (
	"todoQuest/internal/models/todo"
)

// Производные представления считаются на лету из канонических коллекций,
// никакого кешируемого состояния здесь нет.

type Filter string

const (
	FilterAll       Filter = "all"
	FilterActive    Filter = "active"
	FilterCompleted Filter = "completed"
	FilterOverdue   Filter = "overdue"
	FilterDeleted   Filter = "deleted"
)

// ParseFilter разбирает фильтр из запроса, неизвестное значение - "all"
func ParseFilter(raw string) Filter {
	switch Filter(raw) {
	case FilterActive, FilterCompleted, FilterOverdue, FilterDeleted:
		return Filter(raw)
	}
	return FilterAll
}

type Stats struct {
	Points       int `json:"points"`
	MMR          int `json:"mmr"`
	Level        int `json:"level"`
	ActiveCount  int `json:"activeCount"`
	OverdueCount int `json:"overdueCount"`
	DeletedCount int `json:"deletedCount"`
}

// FilteredTodos возвращает активные задачи под выбранный фильтр.
// Фильтр "deleted" к активной коллекции не относится и даёт пустой список.
func (s *TrackerService) FilteredTodos(filter Filter) []todo.Todo {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	result := []todo.Todo{}
	for _, t := range s.todos {
		switch filter {
		case FilterActive:
			if t.Completed {
				continue
			}
		case FilterCompleted:
			if !t.Completed {
				continue
			}
		case FilterOverdue:
			if !s.hasOverdueMark(t.ID) {
				continue
			}
		case FilterDeleted:
			continue
		}
		result = append(result, t.Clone())
	}
	return result
}

func (s *TrackerService) DeletedTodos() []todo.DeletedTodo {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	result := make([]todo.DeletedTodo, len(s.deleted))
	copy(result, s.deleted)
	return result
}

func (s *TrackerService) OverdueTodos() []todo.OverdueTodo {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	result := make([]todo.OverdueTodo, len(s.overdue))
	copy(result, s.overdue)
	return result
}

// ActiveTodoCount - количество незавершённых активных задач
func (s *TrackerService) ActiveTodoCount() int {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	count := 0
	for _, t := range s.todos {
		if !t.Completed {
			count++
		}
	}
	return count
}

// OverdueTodoCount считает отметки о просрочке.
// Отметка завершённой задачи не учитывается, отметка без активной
// задачи (например, после удаления) продолжает считаться.
func (s *TrackerService) OverdueTodoCount() int {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	count := 0
	for _, m := range s.overdue {
		if t := s.findTodo(m.ID); t != nil && t.Completed {
			continue
		}
		count++
	}
	return count
}

func (s *TrackerService) DeletedTodoCount() int {
	s.mtx.RLock()
	defer s.mtx.RUnlock()
	return len(s.deleted)
}

func (s *TrackerService) Stats() Stats {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	stats := Stats{
		Points:       s.points,
		MMR:          s.mmr,
		Level:        s.level,
		DeletedCount: len(s.deleted),
	}
	for _, t := range s.todos {
		if !t.Completed {
			stats.ActiveCount++
		}
	}
	for _, m := range s.overdue {
		if t := s.findTodo(m.ID); t != nil && t.Completed {
			continue
		}
		stats.OverdueCount++
	}
	return stats
}
