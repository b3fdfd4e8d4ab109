package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/MeridianPress/slateforge-go/internal/application/services"
	"github.com/MeridianPress/slateforge-go/internal/domain/entities/document"
	"github.com/MeridianPress/slateforge-go/internal/infrastructure/observability/logging"
	"github.com/MeridianPress/slateforge-go/internal/infrastructure/observability/performance"
	"github.com/gin-gonic/gin"
)

// SerializeHandlers handles ad-hoc serialization requests
type SerializeHandlers struct {
	fragmentService *services.FragmentService
	logger          *logging.ChanneledLogger
	perfTracker     *performance.Tracker
}

// NewSerializeHandlers creates a new serialize handlers instance
func NewSerializeHandlers(fragmentService *services.FragmentService, logger *logging.ChanneledLogger, perfTracker *performance.Tracker) *SerializeHandlers {
	return &SerializeHandlers{
		fragmentService: fragmentService,
		logger:          logger,
		perfTracker:     perfTracker,
	}
}

// SerializeRequest is the request body for ad-hoc serialization. Omitted
// option fields fall back to the configured defaults.
type SerializeRequest struct {
	Nodes   json.RawMessage   `json:"nodes" binding:"required"`
	Options *SerializeOptions `json:"options"`
}

// SerializeOptions mirrors the serializer pass toggles on the wire
type SerializeOptions struct {
	StripWhitespace     *bool    `json:"stripWhitespace"`
	StripDataAttributes *bool    `json:"stripDataAttributes"`
	PreserveClassNames  []string `json:"preserveClassNames"`
	Sanitize            *bool    `json:"sanitize"`
	Minify              *bool    `json:"minify"`
}

// PostSerialize handles POST /api/v1/serialize - renders a node tree to HTML
func (h *SerializeHandlers) PostSerialize(c *gin.Context) {
	start := time.Now()
	marker := h.perfTracker.StartOperation("serialize_request")
	defer marker.Complete()
	h.logger.Serializer().Debug("Received serialize request", "method", c.Request.Method, "path", c.Request.URL.Path)

	var req SerializeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	nodes, err := document.ParseNodes(req.Nodes)
	if err != nil {
		h.logger.Serializer().Warn("Serialize request with malformed nodes", "error", err.Error())
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid node tree"})
		return
	}

	opts := services.ConfiguredOptions()
	if req.Options != nil {
		if req.Options.StripWhitespace != nil {
			opts.StripWhitespace = *req.Options.StripWhitespace
		}
		if req.Options.StripDataAttributes != nil {
			opts.StripDataAttributes = *req.Options.StripDataAttributes
		}
		if len(req.Options.PreserveClassNames) > 0 {
			opts.PreserveClassNames = req.Options.PreserveClassNames
		}
		if req.Options.Sanitize != nil {
			opts.Sanitize = *req.Options.Sanitize
		}
		if req.Options.Minify != nil {
			opts.Minify = *req.Options.Minify
		}
	}

	html := h.fragmentService.RenderNodes(nodes, opts)

	marker.SetSuccess(true)
	h.logger.Serializer().Info("Serialize request completed", "nodes", len(nodes), "bytes", len(html), "duration", time.Since(start))

	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
}
