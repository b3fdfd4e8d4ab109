package handlers

import (
	"errors"
	"net/http"

	"github.com/MeridianPress/slateforge-go/internal/application/services"
	"github.com/MeridianPress/slateforge-go/internal/infrastructure/caching"
	"github.com/MeridianPress/slateforge-go/internal/infrastructure/messaging"
	"github.com/MeridianPress/slateforge-go/internal/infrastructure/observability/logging"
	"github.com/MeridianPress/slateforge-go/pkg/config"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// PreviewHandlers upgrades preview connections and feeds them into the hub
type PreviewHandlers struct {
	hub             *messaging.PreviewHub
	fragmentService *services.FragmentService
	logger          *logging.ChanneledLogger
	upgrader        websocket.Upgrader
}

// NewPreviewHandlers creates a new preview handlers instance
func NewPreviewHandlers(hub *messaging.PreviewHub, fragmentService *services.FragmentService, logger *logging.ChanneledLogger) *PreviewHandlers {
	return &PreviewHandlers{
		hub:             hub,
		fragmentService: fragmentService,
		logger:          logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			// Origin enforcement happens in the CORS layer.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// GetPreviewSocket handles GET /ws/preview/:id - live preview websocket
func (h *PreviewHandlers) GetPreviewSocket(c *gin.Context) {
	docID := c.Param("id")
	if docID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Document ID is required"})
		return
	}

	if h.hub.ClientCount() >= config.PreviewMaxConnections {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Preview connection limit reached"})
		return
	}

	// Render before upgrading so a missing document still gets a clean 404.
	html, err := h.fragmentService.GenerateFragment(docID, caching.VariantDefault)
	if err != nil {
		if errors.Is(err, services.ErrDocumentNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Document not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Preview().Error("Websocket upgrade failed", "documentId", docID, "error", err.Error())
		return
	}

	client := &messaging.PreviewClient{
		Conn:  conn,
		DocID: docID,
		Send:  make(chan []byte, 8),
	}
	h.hub.Register(client)

	// Current rendering goes out immediately so the preview is never blank.
	client.Send <- []byte(html)

	go h.hub.WritePump(client)
	go h.hub.ReadPump(client)
}
