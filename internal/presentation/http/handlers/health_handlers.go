package handlers

import (
	"net/http"

	"github.com/MeridianPress/slateforge-go/internal/infrastructure/caching"
	"github.com/MeridianPress/slateforge-go/internal/infrastructure/messaging"
	"github.com/MeridianPress/slateforge-go/internal/infrastructure/observability/performance"
	"github.com/MeridianPress/slateforge-go/internal/infrastructure/persistence/database"
	"github.com/gin-gonic/gin"
)

// HealthHandlers reports service liveness and dependency status
type HealthHandlers struct {
	db          *database.DB
	cache       *caching.FragmentCache
	hub         *messaging.PreviewHub
	perfTracker *performance.Tracker
}

// NewHealthHandlers creates a new health handlers instance
func NewHealthHandlers(db *database.DB, cache *caching.FragmentCache, hub *messaging.PreviewHub, perfTracker *performance.Tracker) *HealthHandlers {
	return &HealthHandlers{
		db:          db,
		cache:       cache,
		hub:         hub,
		perfTracker: perfTracker,
	}
}

// GetHealth handles GET /api/v1/health
func (h *HealthHandlers) GetHealth(c *gin.Context) {
	overall := "ok"
	dbStatus := "ok"
	status := http.StatusOK
	if err := h.db.Ping(); err != nil {
		overall = "degraded"
		dbStatus = err.Error()
		status = http.StatusServiceUnavailable
	}

	c.JSON(status, gin.H{
		"status":          overall,
		"database":        dbStatus,
		"cachedFragments": h.cache.Len(),
		"previewClients":  h.hub.ClientCount(),
		"operations":      h.perfTracker.Snapshot(),
	})
}
