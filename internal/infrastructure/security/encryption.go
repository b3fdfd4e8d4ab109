// Package security provides JWT, encryption, and credential utilities
package security

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"
	"time"
)

// keyBytes normalizes an AES key. Hex-shaped strings of the right length
// are decoded; everything else is used as raw bytes.
func keyBytes(key string) ([]byte, error) {
	var bytes []byte
	if len(key) == 32 || len(key) == 48 || len(key) == 64 {
		if decoded, err := hex.DecodeString(key); err == nil &&
			(len(decoded) == 16 || len(decoded) == 24 || len(decoded) == 32) {
			bytes = decoded
		} else {
			bytes = []byte(key)
		}
	} else {
		bytes = []byte(key)
	}

	if len(bytes) != 16 && len(bytes) != 24 && len(bytes) != 32 {
		return nil, errors.New("invalid key length")
	}
	return bytes, nil
}

// Encrypt encrypts data using AES-GCM with the provided key
func Encrypt(data, key string) (string, error) {
	kb, err := keyBytes(key)
	if err != nil {
		log.Printf("ERROR: Invalid AES key: %v", err)
		return "", err
	}

	block, err := aes.NewCipher(kb)
	if err != nil {
		log.Printf("ERROR: aes.NewCipher failed: %v", err)
		return "", err
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		log.Printf("ERROR: cipher.NewGCM failed: %v", err)
		return "", err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		log.Printf("ERROR: Failed to generate nonce: %v", err)
		return "", err
	}

	ciphertext := gcm.Seal(nonce, nonce, []byte(data), nil)
	return base64.URLEncoding.EncodeToString(ciphertext), nil
}

// Decrypt decrypts data using AES-GCM with the provided key
func Decrypt(encrypted, key string) (string, error) {
	data, err := base64.URLEncoding.DecodeString(encrypted)
	if err != nil {
		return "", err
	}

	kb, err := keyBytes(key)
	if err != nil {
		return "", err
	}

	block, err := aes.NewCipher(kb)
	if err != nil {
		return "", err
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", err
	}

	nonceSize := gcm.NonceSize()
	if len(data) < nonceSize {
		return "", errors.New("invalid ciphertext")
	}

	nonce, ciphertext := data[:nonceSize], data[nonceSize:]
	plaintext, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return "", err
	}

	return string(plaintext), nil
}

// NewShareToken issues an encrypted read-only share token for a document,
// valid until the expiry time.
func NewShareToken(docID, aesKey string, expires time.Time) (string, error) {
	payload := docID + "|" + strconv.FormatInt(expires.UTC().Unix(), 10)
	return Encrypt(payload, aesKey)
}

// ParseShareToken decrypts a share token and returns the document ID it
// grants access to. Expired or malformed tokens are rejected.
func ParseShareToken(token, aesKey string) (string, error) {
	payload, err := Decrypt(token, aesKey)
	if err != nil {
		return "", errors.New("invalid share token")
	}

	parts := strings.SplitN(payload, "|", 2)
	if len(parts) != 2 {
		return "", errors.New("invalid share token")
	}

	expires, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return "", errors.New("invalid share token")
	}
	if time.Now().UTC().Unix() > expires {
		return "", fmt.Errorf("share token expired at %d", expires)
	}

	return parts[0], nil
}
