package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidateToken(t *testing.T) {
	token, err := GenerateToken("secret", "7", "user@example.com", time.Hour)
	require.NoError(t, err)

	claims, err := ValidateToken("secret", token)
	require.NoError(t, err)
	assert.Equal(t, "7", claims.UserID)
	assert.Equal(t, "user@example.com", claims.Email)
	assert.Equal(t, "postpilot", claims.Issuer)
}

func TestValidateToken_WrongSecret(t *testing.T) {
	token, err := GenerateToken("secret", "7", "user@example.com", time.Hour)
	require.NoError(t, err)

	_, err = ValidateToken("other-secret", token)
	assert.Error(t, err)
}

func TestValidateToken_Expired(t *testing.T) {
	token, err := GenerateToken("secret", "7", "user@example.com", -time.Minute)
	require.NoError(t, err)

	_, err = ValidateToken("secret", token)
	assert.Error(t, err)
}

func TestEncryptDecryptRoundTrip(t *testing.T) {
	key := []byte("0123456789abcdef0123456789abcdef")

	encrypted, err := Encrypt([]byte("access-token"), key)
	require.NoError(t, err)
	assert.NotEqual(t, "access-token", encrypted)

	decrypted, err := Decrypt(encrypted, key)
	require.NoError(t, err)
	assert.Equal(t, "access-token", decrypted)
}

func TestDecrypt_Garbage(t *testing.T) {
	key := []byte("0123456789abcdef0123456789abcdef")

	_, err := Decrypt("not base64!!", key)
	assert.Error(t, err)

	_, err = Decrypt("YWJj", key)
	assert.Error(t, err)
}

func TestHashAndComparePassword(t *testing.T) {
	hash, err := HashPassword("hunter22")
	require.NoError(t, err)
	assert.NotEqual(t, "hunter22", hash)

	assert.True(t, ComparePassword(hash, "hunter22"))
	assert.False(t, ComparePassword(hash, "hunter23"))
}

func TestGenerateRandomKey(t *testing.T) {
	a, err := GenerateRandomKey(16)
	require.NoError(t, err)
	b, err := GenerateRandomKey(16)
	require.NoError(t, err)

	assert.NotEmpty(t, a)
	assert.NotEqual(t, a, b)
}
