package crypto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncryptDecrypt(t *testing.T) {
	key, err := NewStorageKey()
	require.NoError(t, err)

	plaintext := []byte("access-token-value")

	encrypted, err := Encrypt(plaintext, key)
	require.NoError(t, err)
	assert.NotEqual(t, plaintext, encrypted)
	// nonce + ciphertext + auth tag
	assert.Greater(t, len(encrypted), len(plaintext)+NonceSize)

	decrypted, err := Decrypt(encrypted, key)
	require.NoError(t, err)
	assert.Equal(t, plaintext, decrypted)
}

func TestEncrypt_InvalidInput(t *testing.T) {
	key, err := NewStorageKey()
	require.NoError(t, err)

	_, err = Encrypt(nil, key)
	assert.Error(t, err)

	_, err = Encrypt([]byte("data"), []byte("short key"))
	assert.Error(t, err)
}

func TestDecrypt_WrongKey(t *testing.T) {
	key1, err := NewStorageKey()
	require.NoError(t, err)
	key2, err := NewStorageKey()
	require.NoError(t, err)

	encrypted, err := Encrypt([]byte("secret"), key1)
	require.NoError(t, err)

	_, err = Decrypt(encrypted, key2)
	assert.Error(t, err)
}

func TestDecrypt_Corrupted(t *testing.T) {
	key, err := NewStorageKey()
	require.NoError(t, err)

	encrypted, err := Encrypt([]byte("secret"), key)
	require.NoError(t, err)

	encrypted[len(encrypted)-1] ^= 0xff

	_, err = Decrypt(encrypted, key)
	assert.Error(t, err)
}

func TestHashPassword_Deterministic(t *testing.T) {
	salt, err := GenerateSalt()
	require.NoError(t, err)

	hash1, err := HashPassword("correct horse", salt)
	require.NoError(t, err)
	hash2, err := HashPassword("correct horse", salt)
	require.NoError(t, err)

	assert.Equal(t, hash1, hash2)

	otherSalt, err := GenerateSalt()
	require.NoError(t, err)
	hash3, err := HashPassword("correct horse", otherSalt)
	require.NoError(t, err)
	assert.NotEqual(t, hash1, hash3)
}

func TestVerifyPassword(t *testing.T) {
	salt, err := GenerateSalt()
	require.NoError(t, err)

	hash, err := HashPassword("correct horse", salt)
	require.NoError(t, err)

	assert.NoError(t, VerifyPassword("correct horse", salt, hash))
	assert.Error(t, VerifyPassword("wrong horse", salt, hash))
}

func TestHashToken(t *testing.T) {
	hash1, err := HashToken("refresh-token")
	require.NoError(t, err)
	hash2, err := HashToken("refresh-token")
	require.NoError(t, err)

	assert.Equal(t, hash1, hash2)
	assert.Len(t, hash1, 64) // sha256 hex

	_, err = HashToken("")
	assert.Error(t, err)
}
