package security

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testAESKey = "0123456789abcdef0123456789abcdef" // 32 chars, hex-decodable to 16 bytes

func TestEncryptDecryptRoundTrip(t *testing.T) {
	plaintext := "01J2ZK5M8Q"

	encrypted, err := Encrypt(plaintext, testAESKey)
	require.NoError(t, err)
	assert.NotEqual(t, plaintext, encrypted)

	decrypted, err := Decrypt(encrypted, testAESKey)
	require.NoError(t, err)
	assert.Equal(t, plaintext, decrypted)
}

func TestDecryptRejectsGarbage(t *testing.T) {
	_, err := Decrypt("not-a-token", testAESKey)
	assert.Error(t, err)
}

func TestShareTokenRoundTrip(t *testing.T) {
	token, err := NewShareToken("doc-123", testAESKey, time.Now().Add(time.Hour))
	require.NoError(t, err)

	docID, err := ParseShareToken(token, testAESKey)
	require.NoError(t, err)
	assert.Equal(t, "doc-123", docID)
}

func TestShareTokenExpiry(t *testing.T) {
	token, err := NewShareToken("doc-123", testAESKey, time.Now().Add(-time.Minute))
	require.NoError(t, err)

	_, err = ParseShareToken(token, testAESKey)
	assert.Error(t, err)
}

func TestAuthTokenRoundTrip(t *testing.T) {
	secret := "test-secret"

	token, err := GenerateAuthToken("editor", secret, time.Hour)
	require.NoError(t, err)

	claims, err := ValidateJWT(token, secret)
	require.NoError(t, err)
	assert.Equal(t, "editor", RoleFromClaims(claims))

	_, err = ValidateJWT(token, "wrong-secret")
	assert.Error(t, err)
}

func TestVerifyPassword(t *testing.T) {
	hashed, err := HashPassword("hunter2")
	require.NoError(t, err)

	assert.True(t, VerifyPassword("hunter2", hashed))
	assert.False(t, VerifyPassword("wrong", hashed))

	// Plaintext fallback
	assert.True(t, VerifyPassword("hunter2", "hunter2"))
	assert.False(t, VerifyPassword("hunter2", ""))
}

func TestGenerateULID(t *testing.T) {
	a := GenerateULID()
	b := GenerateULID()
	assert.Len(t, a, 26)
	assert.NotEqual(t, a, b)
}

func TestGenerateSecureKey(t *testing.T) {
	key, err := GenerateSecureKey(64)
	require.NoError(t, err)
	assert.Len(t, key, 64)

	// A generated key must be usable as an AES key straight away.
	token, err := NewShareToken("doc1", key, time.Now().Add(time.Hour))
	require.NoError(t, err)

	docID, err := ParseShareToken(token, key)
	require.NoError(t, err)
	assert.Equal(t, "doc1", docID)
}
