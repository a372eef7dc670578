package api

// Машиночитаемые коды ошибок сервера.
// Клиент принимает решения (в частности, о benign-duplicate) только по коду,
// никогда по тексту сообщения — текст может меняться и локализоваться.
const (
	// CodeValidation запрос не прошел валидацию
	CodeValidation = "validation_failed"
	// CodeUnauthorized отсутствует или невалиден токен доступа
	CodeUnauthorized = "unauthorized"
	// CodeAlreadyExists объект уже существует (например, товар уже в wishlist)
	CodeAlreadyExists = "already_exists"
	// CodeNotFound объект не найден (например, товар уже удален из коллекции)
	CodeNotFound = "not_found"
	// CodeInternal внутренняя ошибка сервера
	CodeInternal = "internal_error"
	// CodeRateLimited превышен лимит запросов, нужно повторить позже
	CodeRateLimited = "rate_limited"
)

// ErrorResponse представляет ответ с ошибкой
type ErrorResponse struct {
	Error   string `json:"error"`             // краткое описание ошибки
	Code    string `json:"code"`              // машиночитаемый код ошибки
	Message string `json:"message,omitempty"` // дополнительное сообщение
}

// StatusResponse представляет статусный ответ без полезной нагрузки.
// Используется мутациями wishlist, которые не возвращают снапшот коллекции.
type StatusResponse struct {
	Status string `json:"status"` // "ok"
}
