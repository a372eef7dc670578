package auth

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"

	"github.com/sorochan/lavka/internal/client/storage"
	"github.com/sorochan/lavka/internal/crypto"
)

// Store provides encryption layer between business logic and storage.
// Токены шифруются перед сохранением и расшифровываются при чтении:
// bbolt файл не содержит токенов в открытом виде.
type Store struct {
	storage storage.AuthStorage
	key     []byte
}

// NewStore создает слой шифрования над хранилищем сессии.
// key должен быть ровно 32 байта (см. LoadOrCreateKey).
func NewStore(authStorage storage.AuthStorage, key []byte) (*Store, error) {
	if len(key) != crypto.KeySize {
		return nil, fmt.Errorf("storage key must be %d bytes, got %d", crypto.KeySize, len(key))
	}
	return &Store{storage: authStorage, key: key}, nil
}

// LoadOrCreateKey читает ключ шифрования локального хранилища из файла,
// при первом запуске генерирует новый. Файл создается с правами 0600.
func LoadOrCreateKey(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err == nil {
		key, decErr := base64.StdEncoding.DecodeString(string(data))
		if decErr != nil {
			return nil, fmt.Errorf("failed to decode key file %s: %w", path, decErr)
		}
		if len(key) != crypto.KeySize {
			return nil, fmt.Errorf("key file %s holds %d bytes, want %d", path, len(key), crypto.KeySize)
		}
		return key, nil
	}
	if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read key file: %w", err)
	}

	key, err := crypto.NewStorageKey()
	if err != nil {
		return nil, err
	}
	encoded := base64.StdEncoding.EncodeToString(key)
	if err := os.WriteFile(path, []byte(encoded), 0o600); err != nil {
		return nil, fmt.Errorf("failed to write key file: %w", err)
	}
	return key, nil
}

// Save шифрует токены и сохраняет данные сессии
func (s *Store) Save(ctx context.Context, auth *storage.AuthData) error {
	if auth == nil {
		return fmt.Errorf("auth data is nil")
	}

	encryptedAccess, err := crypto.Encrypt([]byte(auth.AccessToken), s.key)
	if err != nil {
		return fmt.Errorf("failed to encrypt access token: %w", err)
	}
	encryptedRefresh, err := crypto.Encrypt([]byte(auth.RefreshToken), s.key)
	if err != nil {
		return fmt.Errorf("failed to encrypt refresh token: %w", err)
	}

	// Копируем структуру, чтобы не менять входящую
	authCopy := *auth
	authCopy.AccessToken = base64.StdEncoding.EncodeToString(encryptedAccess)
	authCopy.RefreshToken = base64.StdEncoding.EncodeToString(encryptedRefresh)

	return s.storage.SaveAuth(ctx, &authCopy)
}

// Get загружает данные сессии и расшифровывает токены
func (s *Store) Get(ctx context.Context) (*storage.AuthData, error) {
	stored, err := s.storage.GetAuth(ctx)
	if err != nil {
		return nil, err
	}

	encryptedAccess, err := base64.StdEncoding.DecodeString(stored.AccessToken)
	if err != nil {
		return nil, fmt.Errorf("failed to base64 decode access token: %w", err)
	}
	encryptedRefresh, err := base64.StdEncoding.DecodeString(stored.RefreshToken)
	if err != nil {
		return nil, fmt.Errorf("failed to base64 decode refresh token: %w", err)
	}

	accessToken, err := crypto.Decrypt(encryptedAccess, s.key)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt access token: %w", err)
	}
	refreshToken, err := crypto.Decrypt(encryptedRefresh, s.key)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt refresh token: %w", err)
	}

	auth := *stored
	auth.AccessToken = string(accessToken)
	auth.RefreshToken = string(refreshToken)
	return &auth, nil
}

// Delete удаляет данные сессии
func (s *Store) Delete(ctx context.Context) error {
	return s.storage.DeleteAuth(ctx)
}
