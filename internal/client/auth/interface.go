package auth

import (
	"context"

	"github.com/sorochan/lavka/internal/client/storage"
)

//go:generate moq -out service_mock.go . Service

// Service defines the main interface for session operations.
// Управляет и аутентификацией (register/login), и локальным хранением сессии.
type Service interface {
	// Register регистрирует нового покупателя и сразу выполняет вход
	Register(ctx context.Context, username, password string) (*Session, error)

	// Login выполняет аутентификацию и сохраняет сессию локально
	Login(ctx context.Context, username, password string) (*Session, error)

	// Logout отзывает refresh token на сервере (best effort)
	// и удаляет локальные данные сессии
	Logout(ctx context.Context) error

	// SignOut удаляет только локальные данные сессии, без обращения к серверу.
	// Вызывается кэшем при отказе авторизации: токены уже невалидны.
	SignOut(ctx context.Context) error

	// IsAuthenticated проверяет наличие валидной сессии
	IsAuthenticated(ctx context.Context) (bool, error)

	// AccessToken возвращает актуальный access token,
	// при необходимости выполняя refresh
	AccessToken(ctx context.Context) (string, error)

	// CurrentUser возвращает данные текущей сессии
	// Returns storage.ErrAuthNotFound if no session is stored
	CurrentUser(ctx context.Context) (*storage.AuthData, error)
}
