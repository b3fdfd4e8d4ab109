package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/MeridianPress/slateforge-go/internal/application/services"
	"github.com/MeridianPress/slateforge-go/internal/infrastructure/caching"
	"github.com/MeridianPress/slateforge-go/internal/infrastructure/observability/logging"
	"github.com/MeridianPress/slateforge-go/internal/infrastructure/observability/performance"
	"github.com/MeridianPress/slateforge-go/internal/infrastructure/security"
	"github.com/MeridianPress/slateforge-go/pkg/config"
	"github.com/gin-gonic/gin"
)

// FragmentHandlers handles HTTP requests for fragment endpoints.
// This is a thin wrapper around FragmentService following the established pattern.
type FragmentHandlers struct {
	fragmentService *services.FragmentService
	logger          *logging.ChanneledLogger
	perfTracker     *performance.Tracker
}

// NewFragmentHandlers creates a new fragment handlers instance
func NewFragmentHandlers(fragmentService *services.FragmentService, logger *logging.ChanneledLogger, perfTracker *performance.Tracker) *FragmentHandlers {
	return &FragmentHandlers{
		fragmentService: fragmentService,
		logger:          logger,
		perfTracker:     perfTracker,
	}
}

// GetFragment handles GET /api/v1/fragments/:id - cache-first rendered HTML
func (h *FragmentHandlers) GetFragment(c *gin.Context) {
	start := time.Now()
	marker := h.perfTracker.StartOperation("fragment_request")
	defer marker.Complete()
	h.logger.Content().Debug("Received get fragment request", "method", c.Request.Method, "path", c.Request.URL.Path)

	docID := c.Param("id")
	if docID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Document ID is required"})
		return
	}

	variant := caching.VariantDefault
	if c.Query("variant") == string(caching.VariantSanitized) {
		variant = caching.VariantSanitized
	}

	html, err := h.fragmentService.GenerateFragment(docID, variant)
	if err != nil {
		if errors.Is(err, services.ErrDocumentNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Document not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	marker.SetSuccess(true)
	h.logger.Content().Info("Get fragment request completed", "documentId", docID, "variant", string(variant), "duration", time.Since(start))

	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
}

// PostShareLink handles POST /api/v1/fragments/:id/share - issues an
// encrypted read-only share token for a document's rendered fragment
func (h *FragmentHandlers) PostShareLink(c *gin.Context) {
	marker := h.perfTracker.StartOperation("share_link_create")
	defer marker.Complete()

	docID := c.Param("id")
	if docID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Document ID is required"})
		return
	}

	// Verify the document exists before minting a token pointing at it.
	if _, err := h.fragmentService.GenerateFragment(docID, caching.VariantDefault); err != nil {
		if errors.Is(err, services.ErrDocumentNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Document not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	expires := time.Now().UTC().Add(config.ShareTokenTTL)
	token, err := security.NewShareToken(docID, config.AESKey, expires)
	if err != nil {
		h.logger.Auth().Error("Failed to issue share token", "documentId", docID, "error", err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create share link"})
		return
	}

	marker.SetSuccess(true)
	h.logger.Auth().Info("Share token issued", "documentId", docID, "expiresAt", expires.Format(time.RFC3339))

	c.JSON(http.StatusCreated, gin.H{
		"token":     token,
		"expiresAt": expires.Format(time.RFC3339),
	})
}

// GetSharedFragment handles GET /api/v1/shared/:token - resolves a share
// token and returns the sanitized rendered fragment it grants access to
func (h *FragmentHandlers) GetSharedFragment(c *gin.Context) {
	marker := h.perfTracker.StartOperation("shared_fragment_request")
	defer marker.Complete()

	docID, err := security.ParseShareToken(c.Param("token"), config.AESKey)
	if err != nil {
		c.JSON(http.StatusForbidden, gin.H{"error": "Invalid or expired share link"})
		return
	}

	// Shared views always get the sanitized variant.
	html, err := h.fragmentService.GenerateFragment(docID, caching.VariantSanitized)
	if err != nil {
		if errors.Is(err, services.ErrDocumentNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Document not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	marker.SetSuccess(true)
	h.logger.Content().Info("Shared fragment served", "documentId", docID)

	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
}
