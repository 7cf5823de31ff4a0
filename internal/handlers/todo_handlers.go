package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"todoQuest/internal/handlers/dto"
	"todoQuest/internal/logger"
	"todoQuest/internal/models/todo"
	"todoQuest/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type TrackerHandler struct {
	Service TrackerService
}

func NewTrackerHandler(trackerService TrackerService) *TrackerHandler {
	return &TrackerHandler{
		Service: trackerService,
	}
}

// Routes собирает дерево маршрутов трекера
func (h *TrackerHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Route("/todos", func(r chi.Router) {
		r.Get("/", h.GetTodos)     // GET /todos?filter=
		r.Post("/", h.PostTodo)    // POST /todos
		r.Delete("/completed", h.ClearCompleted)

		r.Route("/deleted", func(r chi.Router) {
			r.Get("/", h.GetDeletedTodos)
			r.Post("/{id}/restore", h.RestoreTodo)
			r.Delete("/{id}/purge", h.PurgeTodo)
		})

		r.Route("/{id}", func(r chi.Router) {
			r.Put("/", h.UpdateTodo)
			r.Delete("/", h.DeleteTodo)
			r.Post("/toggle", h.ToggleTodo)
			r.Put("/note", h.UpdateNote)

			r.Route("/subtasks", func(r chi.Router) {
				r.Post("/", h.AddSubtask)
				r.Post("/{subtaskId}/toggle", h.ToggleSubtask)
				r.Delete("/{subtaskId}", h.DeleteSubtask)
			})
		})
	})

	r.Get("/stats", h.GetStats)
	r.Get("/health", h.HealthCheck)

	return r
}

func parseID(w http.ResponseWriter, r *http.Request, param string) (int64, bool) {
	idParam := chi.URLParam(r, param)
	id, err := strconv.ParseInt(idParam, 10, 64)
	if err != nil {
		logger.Warn("HTTP: не удалось получить id",
			zap.String("param", param),
			zap.Error(err),
			zap.String("client_ip", r.RemoteAddr))

		respondWithError(w, http.StatusBadRequest, "не удалось получить id: "+err.Error())
		return 0, false
	}
	return id, true
}

func (h *TrackerHandler) GetTodos(w http.ResponseWriter, r *http.Request) {
	filter := service.ParseFilter(r.URL.Query().Get("filter"))

	todos := h.Service.FilteredTodos(filter)
	respondWithJSON(w, http.StatusOK, dto.FromTodoList(todos, h.Service.IsOverdue))
}

func (h *TrackerHandler) PostTodo(w http.ResponseWriter, r *http.Request) {
	var request dto.CreateTodoRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		logger.Warn("HTTP: ошибка чтения JSON",
			zap.Error(err),
			zap.String("client_ip", r.RemoteAddr))

		respondWithError(w, http.StatusBadRequest, "неверное тело запроса: "+err.Error())
		return
	}

	created, err := h.Service.CreateTodo(r.Context(), request.Text, request.DueDate, request.DueTime,
		todo.Priority(request.Priority), request.Subtasks)
	if err != nil {
		if handleBusinessError(w, err) {
			return
		}
		logger.Error("HTTP: ошибка Service", err, zap.String("operation", "create_todo"))
		respondWithError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondWithJSON(w, http.StatusCreated, dto.FromTodo(created, false))
}

func (h *TrackerHandler) UpdateTodo(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "id")
	if !ok {
		return
	}

	var request dto.UpdateTodoRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		logger.Warn("HTTP: ошибка чтения JSON",
			zap.Error(err),
			zap.String("client_ip", r.RemoteAddr))

		respondWithError(w, http.StatusBadRequest, "неверно переданы параметры обновления: "+err.Error())
		return
	}

	options := []todo.Option{}
	if request.Text != nil {
		options = append(options, todo.WithText(*request.Text))
	}
	if request.DueDate != nil {
		options = append(options, todo.WithDueDate(*request.DueDate))
	}
	if request.DueTime != nil {
		options = append(options, todo.WithDueTime(*request.DueTime))
	}
	if request.Priority != nil {
		options = append(options, todo.WithPriority(todo.Priority(*request.Priority)))
	}
	if request.Subtasks != nil {
		options = append(options, todo.WithSubtasks(*request.Subtasks))
	}

	h.Service.UpdateTodo(r.Context(), id, options...)
	respondWithJSON(w, http.StatusNoContent, nil)
}

func (h *TrackerHandler) UpdateNote(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "id")
	if !ok {
		return
	}

	var request dto.NoteRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		logger.Warn("HTTP: ошибка чтения JSON",
			zap.Error(err),
			zap.String("client_ip", r.RemoteAddr))

		respondWithError(w, http.StatusBadRequest, "неверное тело запроса: "+err.Error())
		return
	}

	h.Service.UpdateNote(r.Context(), id, request.Notes)
	respondWithJSON(w, http.StatusNoContent, nil)
}

func (h *TrackerHandler) ToggleTodo(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "id")
	if !ok {
		return
	}

	h.Service.ToggleTodo(r.Context(), id)
	respondWithJSON(w, http.StatusNoContent, nil)
}

func (h *TrackerHandler) DeleteTodo(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "id")
	if !ok {
		return
	}

	h.Service.DeleteTodo(r.Context(), id)
	respondWithJSON(w, http.StatusNoContent, nil)
}

func (h *TrackerHandler) ClearCompleted(w http.ResponseWriter, r *http.Request) {
	h.Service.ClearCompleted(r.Context())
	respondWithJSON(w, http.StatusNoContent, nil)
}

func (h *TrackerHandler) AddSubtask(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "id")
	if !ok {
		return
	}

	var request dto.AddSubtaskRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		logger.Warn("HTTP: ошибка чтения JSON",
			zap.Error(err),
			zap.String("client_ip", r.RemoteAddr))

		respondWithError(w, http.StatusBadRequest, "неверное тело запроса: "+err.Error())
		return
	}

	if err := h.Service.AddSubtask(r.Context(), id, request.Text); err != nil {
		if handleBusinessError(w, err) {
			return
		}
		logger.Error("HTTP: ошибка Service", err, zap.String("operation", "add_subtask"))
		respondWithError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondWithJSON(w, http.StatusNoContent, nil)
}

func (h *TrackerHandler) ToggleSubtask(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "id")
	if !ok {
		return
	}
	subtaskId, ok := parseID(w, r, "subtaskId")
	if !ok {
		return
	}

	h.Service.ToggleSubtask(r.Context(), id, subtaskId)
	respondWithJSON(w, http.StatusNoContent, nil)
}

func (h *TrackerHandler) DeleteSubtask(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "id")
	if !ok {
		return
	}
	subtaskId, ok := parseID(w, r, "subtaskId")
	if !ok {
		return
	}

	h.Service.DeleteSubtask(r.Context(), id, subtaskId)
	respondWithJSON(w, http.StatusNoContent, nil)
}

func (h *TrackerHandler) GetDeletedTodos(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, dto.FromDeletedList(h.Service.DeletedTodos()))
}

func (h *TrackerHandler) RestoreTodo(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "id")
	if !ok {
		return
	}

	h.Service.RestoreTodo(r.Context(), id)
	respondWithJSON(w, http.StatusNoContent, nil)
}

func (h *TrackerHandler) PurgeTodo(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "id")
	if !ok {
		return
	}

	h.Service.PurgeDeleted(r.Context(), id)
	respondWithJSON(w, http.StatusNoContent, nil)
}

func (h *TrackerHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, h.Service.Stats())
}

func (h *TrackerHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.HealthCheck(r.Context()); err != nil {
		logger.Error("HTTP: хранилище недоступно", err)
		respondWithError(w, http.StatusServiceUnavailable, "хранилище недоступно")
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
