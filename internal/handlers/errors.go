package handlers

import (
	"errors"
	"net/http"

	"todoQuest/internal/logger"
	"todoQuest/internal/service"

	"go.uber.org/zap"
)

// handleBusinessError переводит ошибку бизнес-логики в HTTP-ответ.
// Возвращает false, если ошибка не бизнесовая.
func handleBusinessError(w http.ResponseWriter, err error) bool {
	var businessErr *service.BusinessError
	if !errors.As(err, &businessErr) {
		return false
	}

	statusCode := mapBusinessErrorToHTTP(businessErr.Code)

	logger.Warn("HTTP: бизнес-ошибка",
		zap.String("error_code", businessErr.Code),
		zap.Int("http_status", statusCode))

	respondWithJSON(w, statusCode, map[string]any{
		"error":   businessErr.Code,
		"message": businessErr.Message,
		"details": businessErr.Details,
	})
	return true
}

func mapBusinessErrorToHTTP(code string) int {
	switch code {
	case "VALIDATION_ERROR":
		return http.StatusBadRequest
	case "NOT_FOUND":
		return http.StatusNotFound
	default:
		return http.StatusBadRequest
	}
}
