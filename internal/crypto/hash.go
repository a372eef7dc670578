package crypto

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// HashToken хеширует refresh token с использованием SHA256
// Сервер хранит только хеш: утечка базы не раскрывает сами токены
func HashToken(token string) (string, error) {
	if token == "" {
		return "", fmt.Errorf("token cannot be empty")
	}

	hash := sha256.Sum256([]byte(token))

	return hex.EncodeToString(hash[:]), nil
}
