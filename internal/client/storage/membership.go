package storage

import "context"

//go:generate moq -out membership_mock.go . MembershipStorage

// MembershipStorage defines interface for the local wishlist fallback.
// Используется только в режиме деградации, когда серверный wishlist API
// недоступен: коллекция сводится к локальному множеству ключей,
// реконсиляция с сервером не выполняется.
type MembershipStorage interface {
	// SetMember записывает признак членства ключа в коллекции
	SetMember(ctx context.Context, key string, member bool) error

	// IsMember проверяет членство ключа
	IsMember(ctx context.Context, key string) (bool, error)

	// ListMembers возвращает все ключи коллекции
	ListMembers(ctx context.Context) ([]string, error)

	// ClearMembers удаляет все ключи коллекции
	ClearMembers(ctx context.Context) error
}
