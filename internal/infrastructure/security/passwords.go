// Package security provides JWT, encryption, and credential utilities
package security

import (
	"golang.org/x/crypto/bcrypt"
)

// HashPassword hashes a plaintext password with bcrypt at the default cost.
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// VerifyPassword checks a plaintext password against a stored value. Bcrypt
// hashes are compared properly; anything else falls back to a plaintext
// comparison so unhashed configuration still works during transition.
func VerifyPassword(password, stored string) bool {
	if stored == "" {
		return false
	}
	if err := bcrypt.CompareHashAndPassword([]byte(stored), []byte(password)); err == nil {
		return true
	}
	return password == stored
}
