// Package services provides application-level orchestration services
package services

import (
	"time"

	"github.com/MeridianPress/slateforge-go/internal/infrastructure/observability/logging"
	"github.com/MeridianPress/slateforge-go/internal/infrastructure/security"
	"github.com/MeridianPress/slateforge-go/pkg/config"
)

// AuthService handles authentication workflows and JWT operations
type AuthService struct {
	logger *logging.ChanneledLogger
}

// NewAuthService creates a new authentication service
func NewAuthService(logger *logging.ChanneledLogger) *AuthService {
	return &AuthService{logger: logger}
}

// AuthResult holds authentication result data
type AuthResult struct {
	Token   string `json:"token"`
	Role    string `json:"role"`
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// TokenInfo holds decoded token metadata for status checks
type TokenInfo struct {
	Valid     bool   `json:"valid"`
	Role      string `json:"role,omitempty"`
	ExpiresAt int64  `json:"expiresAt,omitempty"`
}

// Authenticate validates admin or editor credentials and generates a JWT
func (a *AuthService) Authenticate(password string) *AuthResult {
	var role string

	if config.AdminPassword != "" && security.VerifyPassword(password, config.AdminPassword) {
		role = "admin"
	}
	if role == "" && config.EditorPassword != "" && security.VerifyPassword(password, config.EditorPassword) {
		role = "editor"
	}

	if role == "" {
		return &AuthResult{
			Success: false,
			Error:   "Invalid credentials",
		}
	}

	token, err := security.GenerateAuthToken(role, config.JWTSecret, 24*time.Hour)
	if err != nil {
		a.logger.Auth().Error("Token generation failed", "role", role, "error", err.Error())
		return &AuthResult{
			Success: false,
			Error:   "Token generation failed",
		}
	}

	return &AuthResult{
		Token:   token,
		Role:    role,
		Success: true,
	}
}

// GetTokenInfo validates a token and reports its role and expiry
func (a *AuthService) GetTokenInfo(tokenString string) *TokenInfo {
	claims, err := security.ValidateJWT(tokenString, config.JWTSecret)
	if err != nil {
		return &TokenInfo{Valid: false}
	}

	info := &TokenInfo{
		Valid: true,
		Role:  security.RoleFromClaims(claims),
	}
	if exp, ok := claims["exp"].(float64); ok {
		info.ExpiresAt = int64(exp)
	}
	return info
}

// ValidateRole checks a bearer header or raw token against the allowed roles
func (a *AuthService) ValidateRole(authValue string, roles ...string) bool {
	token := authValue
	if len(token) > 7 && token[:7] == "Bearer " {
		token = token[7:]
	}
	if token == "" {
		return false
	}

	claims, err := security.ValidateJWT(token, config.JWTSecret)
	if err != nil {
		return false
	}

	role := security.RoleFromClaims(claims)
	for _, allowed := range roles {
		if role == allowed {
			return true
		}
	}
	return false
}
