package notify

//go:generate moq -out notifier_mock.go . Notifier

// Notifier определяет fire-and-forget канал уведомлений пользователя.
// Кэш только классифицирует исход мутации (успех / информация / ошибка),
// форматирование и локализация — забота реализации.
type Notifier interface {
	// Success сообщает об успешном завершении операции
	Success(msg string)

	// Info сообщает информационное уведомление (не ошибка):
	// например, benign-duplicate — желаемое состояние уже достигнуто
	Info(msg string)

	// Error сообщает об ошибке операции
	Error(msg string)
}
