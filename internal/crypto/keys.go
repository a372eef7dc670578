package crypto

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"

	"golang.org/x/crypto/argon2"
)

// Параметры Argon2id для хеширования паролей на сервере
const (
	// Argon2Time - количество итераций (time cost)
	Argon2Time = 1
	// Argon2Memory - объем памяти в KB (64MB = 64*1024 KB)
	Argon2Memory = 64 * 1024
	// Argon2Threads - количество параллельных потоков
	Argon2Threads = 4
	// Argon2KeyLen - длина выходного хеша в байтах
	Argon2KeyLen = 32
	// SaltSize - размер соли в байтах
	SaltSize = 32
)

// GenerateSalt генерирует криптографически случайную соль указанного размера
func GenerateSalt() ([]byte, error) {
	salt := make([]byte, SaltSize)
	_, err := rand.Read(salt)
	if err != nil {
		return nil, fmt.Errorf("failed to generate salt: %w", err)
	}
	return salt, nil
}

// GenerateSaltBase64 генерирует криптографически случайную соль и возвращает ее в Base64
func GenerateSaltBase64() (string, error) {
	salt, err := GenerateSalt()
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(salt), nil
}

// NewStorageKey генерирует случайный 32-байтный ключ для шифрования
// локального хранилища клиента (токены сессии at rest)
func NewStorageKey() ([]byte, error) {
	key := make([]byte, KeySize)
	if _, err := rand.Read(key); err != nil {
		return nil, fmt.Errorf("failed to generate storage key: %w", err)
	}
	return key, nil
}

// HashPassword хеширует пароль с использованием Argon2id.
// Используется сервером, в базе хранится только хеш + соль.
// Возвращает base64-encoded хеш.
func HashPassword(password string, salt []byte) (string, error) {
	if password == "" {
		return "", fmt.Errorf("password cannot be empty")
	}
	if len(salt) != SaltSize {
		return "", fmt.Errorf("salt must be %d bytes, got %d", SaltSize, len(salt))
	}

	hash := argon2.IDKey([]byte(password), salt, Argon2Time, Argon2Memory, Argon2Threads, Argon2KeyLen)
	return base64.StdEncoding.EncodeToString(hash), nil
}

// VerifyPassword проверяет пароль против сохраненного Argon2id хеша.
// Сравнение выполняется за константное время.
func VerifyPassword(password string, salt []byte, storedHash string) error {
	computed, err := HashPassword(password, salt)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if subtle.ConstantTimeCompare([]byte(computed), []byte(storedHash)) != 1 {
		return fmt.Errorf("invalid password")
	}

	return nil
}
