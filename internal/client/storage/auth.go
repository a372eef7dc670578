package storage

import "context"

//go:generate moq -out auth_mock.go . AuthStorage

// AuthData представляет данные сессии, хранимые на клиенте.
// Токены лежат в хранилище в зашифрованном виде (base64 от AES-GCM),
// шифрованием занимается слой internal/client/auth.
type AuthData struct {
	Username     string `json:"username"`
	UserID       string `json:"user_id"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresAt    int64  `json:"expires_at"` // unix time истечения access token
}

// AuthStorage defines interface for storing session data
type AuthStorage interface {
	// SaveAuth stores authentication data
	SaveAuth(ctx context.Context, auth *AuthData) error

	// GetAuth retrieves stored authentication data
	// Returns ErrAuthNotFound if no session is stored
	GetAuth(ctx context.Context) (*AuthData, error)

	// DeleteAuth removes stored authentication data
	DeleteAuth(ctx context.Context) error
}
