package api

import (
	"errors"
	"fmt"
)

// Kind классифицирует ошибку удаленного API.
// Реконсилятор кэша принимает решения только по этой классификации
// и машиночитаемому коду, никогда по тексту сообщения.
type Kind int

const (
	// KindNetwork сетевая ошибка: запрос не дошел до сервера или ответ не прочитан
	KindNetwork Kind = iota + 1
	// KindBadRequest сервер отклонил запрос как невалидный (4xx кроме 401/403/404)
	KindBadRequest
	// KindUnauthorized сессия невалидна или отсутствует
	KindUnauthorized
	// KindNotFound объект не найден
	KindNotFound
	// KindServer внутренняя ошибка сервера (5xx)
	KindServer
)

// String возвращает текстовое представление классификации
func (k Kind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindBadRequest:
		return "bad_request"
	case KindUnauthorized:
		return "unauthorized"
	case KindNotFound:
		return "not_found"
	case KindServer:
		return "server_error"
	default:
		return "unknown"
	}
}

// Error представляет классифицированную ошибку удаленного API
type Error struct {
	Message string // человекочитаемое сообщение сервера
	Code    string // машиночитаемый код из ErrorResponse.Code, пуст для сетевых ошибок
	Kind    Kind   // классификация
	Status  int    // HTTP статус, 0 для сетевых ошибок
}

// Error реализует интерфейс error
func (e *Error) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("api error (%s, code=%s): %s", e.Kind, e.Code, e.Message)
	}
	return fmt.Sprintf("api error (%s): %s", e.Kind, e.Message)
}

// KindOf возвращает классификацию ошибки.
// Для ошибок, не являющихся *Error, возвращает KindNetwork:
// неклассифицированный сбой трактуется как сетевой (восстановимый).
func KindOf(err error) Kind {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Kind
	}
	return KindNetwork
}

// CodeOf возвращает машиночитаемый код ошибки сервера или пустую строку
func CodeOf(err error) string {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Code
	}
	return ""
}
