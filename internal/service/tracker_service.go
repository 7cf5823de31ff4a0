// Пакет service владеет всеми коллекциями задач и счётчиками наград.
// Все мутации проходят через TrackerService под одним мьютексом,
// поэтому пользовательские операции и фоновая проверка просрочки
// никогда не перемешиваются.
package service

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"time"

	"todoQuest/internal/logger"
	"todoQuest/internal/models/todo"
	"todoQuest/internal/scoring"
	"todoQuest/internal/storage"

	"go.uber.org/zap"
)

type TrackerService struct {
	mtx   sync.RWMutex
	store storage.SlotStore

	todos   []*todo.Todo
	deleted []todo.DeletedTodo
	overdue []todo.OverdueTodo

	points int
	mmr    int
	level  int

	lastID int64
	now    func() time.Time
}

type ServiceOption func(*TrackerService)

// WithClock подменяет источник времени, нужен тестам
func WithClock(now func() time.Time) ServiceOption {
	return func(s *TrackerService) {
		s.now = now
	}
}

// NewTrackerService загружает снапшот и приводит уровень в соответствие
// загруженным очкам. Битый или отсутствующий слот не мешает старту -
// вместо него берётся пустое значение.
func NewTrackerService(ctx context.Context, store storage.SlotStore, options ...ServiceOption) *TrackerService {
	s := &TrackerService{
		store:   store,
		todos:   []*todo.Todo{},
		deleted: []todo.DeletedTodo{},
		overdue: []todo.OverdueTodo{},
		level:   1,
		now:     time.Now,
	}

	for _, opt := range options {
		opt(s)
	}

	s.loadSnapshot(ctx)
	s.applyLevel()

	logger.Info("Service: состояние загружено",
		zap.Int("todos", len(s.todos)),
		zap.Int("deleted", len(s.deleted)),
		zap.Int("overdue", len(s.overdue)),
		zap.Int("points", s.points),
		zap.Int("mmr", s.mmr),
		zap.Int("level", s.level),
	)

	return s
}

func (s *TrackerService) loadSnapshot(ctx context.Context) {
	s.loadSlot(ctx, storage.SlotTodos, &s.todos)
	s.loadSlot(ctx, storage.SlotDeletedTodos, &s.deleted)
	s.loadSlot(ctx, storage.SlotOverdueTodos, &s.overdue)
	s.loadSlot(ctx, storage.SlotPoints, &s.points)
	s.loadSlot(ctx, storage.SlotMMR, &s.mmr)

	for _, t := range s.todos {
		if t.Subtasks == nil {
			t.Subtasks = []todo.Subtask{}
		}
		if t.ID > s.lastID {
			s.lastID = t.ID
		}
	}
}

func (s *TrackerService) loadSlot(ctx context.Context, slot string, target any) {
	value, err := s.store.Get(ctx, slot)
	if err != nil {
		if err != storage.ErrNotFound {
			logger.Warn("Service: не удалось прочитать слот", zap.String("slot", slot), zap.Error(err))
		}
		return
	}

	if err := json.Unmarshal(value, target); err != nil {
		logger.Warn("Service: слот повреждён, берём значение по умолчанию",
			zap.String("slot", slot), zap.Error(err))
	}
}

// persist сериализует и пишет перечисленные слоты.
// Ошибка записи логируется и не откатывает состояние в памяти.
func (s *TrackerService) persist(ctx context.Context, slots ...string) {
	for _, slot := range slots {
		var payload any
		switch slot {
		case storage.SlotTodos:
			payload = s.todos
		case storage.SlotDeletedTodos:
			payload = s.deleted
		case storage.SlotOverdueTodos:
			payload = s.overdue
		case storage.SlotPoints:
			payload = s.points
		case storage.SlotMMR:
			payload = s.mmr
		default:
			continue
		}

		value, err := json.Marshal(payload)
		if err != nil {
			logger.Warn("Service: ошибка сериализации слота", zap.String("slot", slot), zap.Error(err))
			continue
		}

		if err := s.store.Put(ctx, slot, value); err != nil {
			logger.Warn("Service: не удалось сохранить слот", zap.String("slot", slot), zap.Error(err))
		}
	}
}

// nextID выдаёт строго возрастающий идентификатор.
// База - unix-миллисекунды, защита от повторов при быстрых вызовах.
func (s *TrackerService) nextID() int64 {
	id := s.now().UnixMilli()
	if id <= s.lastID {
		id = s.lastID + 1
	}
	s.lastID = id
	return id
}

// applyLevel пересчитывает уровень после каждой смены очков или MMR.
// Уровень не хранится в снапшоте, он всегда выводится заново.
func (s *TrackerService) applyLevel() {
	s.level, s.mmr = scoring.ResolveLevel(s.points, s.mmr, s.level)
}

func (s *TrackerService) findTodo(id int64) *todo.Todo {
	for _, t := range s.todos {
		if t.ID == id {
			return t
		}
	}
	return nil
}

func (s *TrackerService) hasOverdueMark(id int64) bool {
	for _, m := range s.overdue {
		if m.ID == id {
			return true
		}
	}
	return false
}

// CreateTodo добавляет новую задачу.
// Награда points фиксируется по приоритету на момент создания.
func (s *TrackerService) CreateTodo(ctx context.Context, text, dueDate, dueTime string, priority todo.Priority, subtaskTexts []string) (todo.Todo, error) {
	if strings.TrimSpace(text) == "" {
		return todo.Todo{}, NewValidationError("text", "пустой текст задачи")
	}

	s.mtx.Lock()
	defer s.mtx.Unlock()

	priority = priority.Normalized()

	subtasks := []todo.Subtask{}
	for _, st := range subtaskTexts {
		if strings.TrimSpace(st) == "" {
			continue
		}
		subtasks = append(subtasks, todo.Subtask{
			ID:   s.nextID(),
			Text: st,
		})
	}

	t := &todo.Todo{
		ID:       s.nextID(),
		Text:     text,
		Priority: priority,
		Subtasks: subtasks,
		Points:   scoring.PointsForPriority(priority),
	}

	s.todos = append(s.todos, t)
	s.persist(ctx, storage.SlotTodos)

	logger.Info("Service: задача создана",
		zap.Int64("todo_id", t.ID),
		zap.String("priority", string(priority)),
		zap.Int("reward", t.Points))

	return t.Clone(), nil
}

// UpdateTodo применяет частичное обновление.
// Отсутствующая задача - тихий no-op: интерфейс может держать устаревший id.
func (s *TrackerService) UpdateTodo(ctx context.Context, id int64, options ...todo.Option) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	t := s.findTodo(id)
	if t == nil {
		logger.Info("Service: задача не найдена", zap.Int64("todo_id", id))
		return
	}

	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(t)
	}

	s.persist(ctx, storage.SlotTodos)
}

// UpdateNote меняет свободную заметку задачи
func (s *TrackerService) UpdateNote(ctx context.Context, id int64, notes string) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	t := s.findTodo(id)
	if t == nil {
		logger.Info("Service: задача не найдена", zap.Int64("todo_id", id))
		return
	}

	t.Notes = notes
	s.persist(ctx, storage.SlotTodos)
}

// ToggleTodo переключает завершённость.
// Награда начисляется только на переходе "не завершена -> завершена",
// обратный переход ничего не возвращает - снятие галочки не наказывается.
func (s *TrackerService) ToggleTodo(ctx context.Context, id int64) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	t := s.findTodo(id)
	if t == nil {
		logger.Info("Service: задача не найдена", zap.Int64("todo_id", id))
		return
	}

	if t.Completed {
		t.Completed = false
		s.persist(ctx, storage.SlotTodos)
		return
	}

	total, completed := t.CountSubtasks()
	s.points += t.Points + scoring.BonusForSubtasks(total, completed)

	// просроченная задача закрывается без прироста MMR
	gain := scoring.MMRForCompletion(t.Priority, s.hasOverdueMark(t.ID))
	s.mmr += gain

	t.Completed = true
	s.applyLevel()
	s.persist(ctx, storage.SlotTodos, storage.SlotPoints, storage.SlotMMR)

	logger.Info("Service: задача завершена",
		zap.Int64("todo_id", id),
		zap.Int("points", s.points),
		zap.Int("mmr_gain", gain))
}

// DeleteTodo убирает задачу из активных.
// Незавершённая оставляет запись для восстановления и штрафует MMR,
// завершённая просто исчезает.
func (s *TrackerService) DeleteTodo(ctx context.Context, id int64) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	index := -1
	for i, t := range s.todos {
		if t.ID == id {
			index = i
			break
		}
	}
	if index < 0 {
		logger.Info("Service: задача не найдена", zap.Int64("todo_id", id))
		return
	}

	t := s.todos[index]
	s.todos = append(s.todos[:index], s.todos[index+1:]...)

	if t.Completed {
		s.persist(ctx, storage.SlotTodos)
		return
	}

	s.deleted = append(s.deleted, todo.DeletedTodo{
		ID:        t.ID,
		Text:      t.Text,
		Priority:  t.Priority,
		DueDate:   t.DueDate,
		DueTime:   t.DueTime,
		DeletedAt: s.now(),
	})
	s.mmr += scoring.MMRPenaltyForDeletion()
	s.applyLevel()
	s.persist(ctx, storage.SlotTodos, storage.SlotDeletedTodos, storage.SlotMMR)

	logger.Info("Service: незавершённая задача удалена",
		zap.Int64("todo_id", id),
		zap.Int("mmr", s.mmr))
}

// RestoreTodo возвращает удалённую задачу в активные.
// Подзадачи и заметки не переживают удаление, награда
// пересчитывается по приоритету из записи.
func (s *TrackerService) RestoreTodo(ctx context.Context, id int64) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	index := -1
	for i, rec := range s.deleted {
		if rec.ID == id {
			index = i
			break
		}
	}
	if index < 0 {
		logger.Info("Service: запись об удалении не найдена", zap.Int64("todo_id", id))
		return
	}

	rec := s.deleted[index]
	s.deleted = append(s.deleted[:index], s.deleted[index+1:]...)

	priority := rec.Priority.Normalized()
	s.todos = append(s.todos, &todo.Todo{
		ID:       rec.ID,
		Text:     rec.Text,
		Priority: priority,
		DueDate:  rec.DueDate,
		DueTime:  rec.DueTime,
		Subtasks: []todo.Subtask{},
		Points:   scoring.PointsForPriority(priority),
	})

	s.mmr += scoring.MMRRewardForRestoration()
	s.applyLevel()
	s.persist(ctx, storage.SlotTodos, storage.SlotDeletedTodos, storage.SlotMMR)

	logger.Info("Service: задача восстановлена",
		zap.Int64("todo_id", id),
		zap.Int("mmr", s.mmr))
}

// PurgeDeleted окончательно удаляет запись, счётчики не меняются
func (s *TrackerService) PurgeDeleted(ctx context.Context, id int64) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	index := -1
	for i, rec := range s.deleted {
		if rec.ID == id {
			index = i
			break
		}
	}
	if index < 0 {
		logger.Info("Service: запись об удалении не найдена", zap.Int64("todo_id", id))
		return
	}

	s.deleted = append(s.deleted[:index], s.deleted[index+1:]...)
	s.persist(ctx, storage.SlotDeletedTodos)
}

// ClearCompleted убирает все завершённые задачи из активных
func (s *TrackerService) ClearCompleted(ctx context.Context) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	remaining := s.todos[:0]
	for _, t := range s.todos {
		if !t.Completed {
			remaining = append(remaining, t)
		}
	}
	if len(remaining) == len(s.todos) {
		return
	}

	s.todos = remaining
	s.persist(ctx, storage.SlotTodos)
}

// AddSubtask добавляет подзадачу в конец списка
func (s *TrackerService) AddSubtask(ctx context.Context, todoID int64, text string) error {
	if strings.TrimSpace(text) == "" {
		return NewValidationError("text", "пустой текст подзадачи")
	}

	s.mtx.Lock()
	defer s.mtx.Unlock()

	t := s.findTodo(todoID)
	if t == nil {
		logger.Info("Service: задача не найдена", zap.Int64("todo_id", todoID))
		return nil
	}

	t.Subtasks = append(t.Subtasks, todo.Subtask{
		ID:   s.nextID(),
		Text: text,
	})
	s.persist(ctx, storage.SlotTodos)
	return nil
}

// ToggleSubtask переключает подзадачу.
// Закрытие даёт плоские 2 очка независимо от приоритета родителя,
// открытие обратно очки не забирает.
func (s *TrackerService) ToggleSubtask(ctx context.Context, todoID, subtaskID int64) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	t := s.findTodo(todoID)
	if t == nil {
		logger.Info("Service: задача не найдена", zap.Int64("todo_id", todoID))
		return
	}

	for i := range t.Subtasks {
		if t.Subtasks[i].ID != subtaskID {
			continue
		}

		if t.Subtasks[i].Completed {
			t.Subtasks[i].Completed = false
			s.persist(ctx, storage.SlotTodos)
			return
		}

		t.Subtasks[i].Completed = true
		s.points += scoring.PointsPerSubtask
		s.applyLevel()
		s.persist(ctx, storage.SlotTodos, storage.SlotPoints, storage.SlotMMR)
		return
	}

	logger.Info("Service: подзадача не найдена",
		zap.Int64("todo_id", todoID),
		zap.Int64("subtask_id", subtaskID))
}

// DeleteSubtask убирает подзадачу, счётчики не меняются
func (s *TrackerService) DeleteSubtask(ctx context.Context, todoID, subtaskID int64) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	t := s.findTodo(todoID)
	if t == nil {
		logger.Info("Service: задача не найдена", zap.Int64("todo_id", todoID))
		return
	}

	for i := range t.Subtasks {
		if t.Subtasks[i].ID == subtaskID {
			t.Subtasks = append(t.Subtasks[:i], t.Subtasks[i+1:]...)
			s.persist(ctx, storage.SlotTodos)
			return
		}
	}
}

// CheckOverdue сверяет дедлайны активных задач с переданным временем.
// Отметка ставится не больше одного раза на задачу, повторный прогон
// по тому же состоянию ничего не меняет. Возвращает число новых отметок.
func (s *TrackerService) CheckOverdue(ctx context.Context, now time.Time) int {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	marked := 0
	for _, t := range s.todos {
		if t.Completed {
			continue
		}

		deadline, ok := t.Deadline()
		if !ok {
			continue
		}

		if !now.After(deadline) || s.hasOverdueMark(t.ID) {
			continue
		}

		s.overdue = append(s.overdue, todo.OverdueTodo{
			ID:              t.ID,
			Text:            t.Text,
			Priority:        t.Priority,
			DueDate:         t.DueDate,
			DueTime:         t.DueTime,
			BecameOverdueAt: now,
		})
		s.mmr = scoring.ApplyOverduePenalty(s.mmr)
		marked++

		logger.Info("Service: задача просрочена",
			zap.Int64("todo_id", t.ID),
			zap.Int("mmr", s.mmr))
	}

	if marked > 0 {
		s.applyLevel()
		s.persist(ctx, storage.SlotOverdueTodos, storage.SlotMMR)
	}
	return marked
}

// IsOverdue сообщает, есть ли у задачи отметка о просрочке
func (s *TrackerService) IsOverdue(id int64) bool {
	s.mtx.RLock()
	defer s.mtx.RUnlock()
	return s.hasOverdueMark(id)
}

func (s *TrackerService) Points() int {
	s.mtx.RLock()
	defer s.mtx.RUnlock()
	return s.points
}

func (s *TrackerService) MMR() int {
	s.mtx.RLock()
	defer s.mtx.RUnlock()
	return s.mmr
}

func (s *TrackerService) Level() int {
	s.mtx.RLock()
	defer s.mtx.RUnlock()
	return s.level
}

func (s *TrackerService) HealthCheck(ctx context.Context) error {
	return s.store.HealthCheck(ctx)
}
