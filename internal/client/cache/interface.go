package cache

import (
	"context"

	"github.com/sorochan/lavka/internal/models"
)

//go:generate moq -out collection_mock.go . Collection

// Collection определяет удаленную серверную коллекцию, против которой
// реконсилируется кэш. Единственный путь к долговременному состоянию.
type Collection interface {
	// FetchPage загружает авторитетный снапшот страницы коллекции.
	// Для непагинируемых коллекций page игнорируется.
	FetchPage(ctx context.Context, page int) (*models.Snapshot, error)

	// ApplyMutation выполняет мутацию на сервере.
	// Возвращает полный авторитетный снапшот либо nil — статусное
	// подтверждение без снапшота.
	ApplyMutation(ctx context.Context, m models.Mutation) (*models.Snapshot, error)
}

//go:generate moq -out membership_api_mock.go . MembershipAPI

// MembershipAPI определяет батч-проверку членства ключей в коллекции
type MembershipAPI interface {
	// CheckMembership возвращает признак членства для переданных ключей.
	// Ключи, отсутствующие в ответе, считаются непроверенными.
	CheckMembership(ctx context.Context, keys []string) (map[string]bool, error)
}

//go:generate moq -out session_mock.go . Session

// Session определяет состояние аутентификации, от которого зависит кэш.
// Мутация без валидной сессии отклоняется локально, без сетевого вызова;
// ошибка авторизации от сервера приводит к SignOut.
type Session interface {
	// IsAuthenticated проверяет наличие валидной сессии
	IsAuthenticated(ctx context.Context) (bool, error)

	// SignOut завершает сессию и удаляет локальные данные авторизации
	SignOut(ctx context.Context) error
}
