// Package handlers provides HTTP request handlers for the presentation layer.
package handlers

import (
	"net/http"
	"time"

	"github.com/MeridianPress/slateforge-go/internal/application/services"
	"github.com/MeridianPress/slateforge-go/internal/infrastructure/observability/logging"
	"github.com/gin-gonic/gin"
)

// AuthHandlers contains all authentication-related HTTP handlers
type AuthHandlers struct {
	authService *services.AuthService
	logger      *logging.ChanneledLogger
}

// NewAuthHandlers creates auth handlers with injected dependencies
func NewAuthHandlers(authService *services.AuthService, logger *logging.ChanneledLogger) *AuthHandlers {
	return &AuthHandlers{
		authService: authService,
		logger:      logger,
	}
}

// PostLogin handles POST /api/v1/auth/login - admin/editor authentication
func (h *AuthHandlers) PostLogin(c *gin.Context) {
	start := time.Now()
	h.logger.Auth().Debug("Received login request", "method", c.Request.Method, "path", c.Request.URL.Path)

	var loginReq struct {
		Password string `json:"password" binding:"required"`
	}

	if err := c.ShouldBindJSON(&loginReq); err != nil {
		h.logger.Auth().Error("Login request JSON binding failed", "error", err.Error())
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	result := h.authService.Authenticate(loginReq.Password)

	if !result.Success {
		h.logger.Auth().Warn("Login attempt failed", "error", result.Error, "duration", time.Since(start))
		c.JSON(http.StatusUnauthorized, gin.H{"error": result.Error})
		return
	}

	// Set role-specific HTTP-only cookie
	cookieName := "admin_auth"
	if result.Role == "editor" {
		cookieName = "editor_auth"
	}

	c.SetCookie(
		cookieName,   // name (admin_auth or editor_auth)
		result.Token, // value
		86400,        // maxAge (24 hours in seconds)
		"/",          // path
		"",           // domain (empty for current domain)
		false,        // secure (set to true in production)
		true,         // httpOnly
	)

	h.logger.Auth().Info("Login successful", "role", result.Role, "duration", time.Since(start))

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"role":    result.Role,
		"token":   result.Token,
		"message": "Login successful",
	})
}

// PostLogout handles POST /api/v1/auth/logout - clears authentication cookies
func (h *AuthHandlers) PostLogout(c *gin.Context) {
	c.SetCookie("admin_auth", "", -1, "/", "", false, true)
	c.SetCookie("editor_auth", "", -1, "/", "", false, true)

	h.logger.Auth().Info("Logout completed")

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Logout successful",
	})
}

// GetAuthStatus handles GET /api/v1/auth/status - checks current authentication status
func (h *AuthHandlers) GetAuthStatus(c *gin.Context) {
	var tokenInfo *services.TokenInfo
	var authenticated bool
	var authMethod string

	authHeader := c.GetHeader("Authorization")
	if len(authHeader) > 7 && authHeader[:7] == "Bearer " {
		tokenInfo = h.authService.GetTokenInfo(authHeader[7:])
		if tokenInfo.Valid {
			authenticated = true
			authMethod = "bearer"
		}
	}

	// If no bearer token, check cookies
	if !authenticated {
		for _, cookieName := range []string{"admin_auth", "editor_auth"} {
			cookie, err := c.Cookie(cookieName)
			if err != nil || cookie == "" {
				continue
			}
			tokenInfo = h.authService.GetTokenInfo(cookie)
			if tokenInfo.Valid {
				authenticated = true
				authMethod = "cookie"
				break
			}
		}
	}

	response := gin.H{
		"authenticated": authenticated,
		"method":        authMethod,
	}
	if authenticated && tokenInfo != nil {
		response["role"] = tokenInfo.Role
		response["expiresAt"] = tokenInfo.ExpiresAt
	}

	h.logger.Auth().Debug("Auth status check completed", "authenticated", authenticated, "method", authMethod)

	c.JSON(http.StatusOK, response)
}

// bearerOrCookie extracts the caller's credential from the Authorization
// header or the auth cookies set at login.
func bearerOrCookie(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader != "" {
		return authHeader
	}
	if adminCookie, err := c.Cookie("admin_auth"); err == nil && adminCookie != "" {
		return "Bearer " + adminCookie
	}
	if editorCookie, err := c.Cookie("editor_auth"); err == nil && editorCookie != "" {
		return "Bearer " + editorCookie
	}
	return ""
}

// AuthMiddleware requires a valid admin or editor token
func (h *AuthHandlers) AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !h.authService.ValidateRole(bearerOrCookie(c), "admin", "editor") {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// AdminOnlyMiddleware requires a valid admin token
func (h *AuthHandlers) AdminOnlyMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !h.authService.ValidateRole(bearerOrCookie(c), "admin") {
			c.JSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
			c.Abort()
			return
		}
		c.Next()
	}
}
