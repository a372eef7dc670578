package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/sorochan/lavka/pkg/api"
)

// contextKey используется для значений в request context
type contextKey string

const (
	// UserIDKey ключ для user ID в context
	UserIDKey contextKey = "user_id"
	// UsernameKey ключ для username в context
	UsernameKey contextKey = "username"
)

// UserIDFromContext извлекает user ID, положенный auth middleware
func UserIDFromContext(r *http.Request) (string, bool) {
	userID, ok := r.Context().Value(UserIDKey).(string)
	return userID, ok
}

// writeJSON сериализует payload и отправляет его с указанным статусом
func writeJSON(w http.ResponseWriter, logger *slog.Logger, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.Error("failed to encode response", slog.Any("error", err))
	}
}

// writeError отправляет структурированную ошибку с машиночитаемым кодом.
// Клиент различает исходы мутаций только по коду, поэтому каждый ответ
// с ошибкой обязан его нести.
func writeError(w http.ResponseWriter, logger *slog.Logger, status int, code, message string) {
	writeJSON(w, logger, status, api.ErrorResponse{
		Error: message,
		Code:  code,
	})
}
