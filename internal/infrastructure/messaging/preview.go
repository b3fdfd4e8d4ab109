// Package messaging provides the live-preview websocket hub. Editors keep a
// preview socket open per document; the hub pushes freshly serialized HTML
// fragments whenever the document changes.
package messaging

import (
	"sync"
	"time"

	"github.com/MeridianPress/slateforge-go/internal/infrastructure/observability/logging"
	"github.com/MeridianPress/slateforge-go/pkg/config"
	"github.com/gorilla/websocket"
)

// PreviewClient represents a single connected preview socket.
type PreviewClient struct {
	Conn  *websocket.Conn
	DocID string
	Send  chan []byte
}

// PreviewHub manages all connected preview clients grouped by document ID
// and broadcasts rendered fragments to them.
type PreviewHub struct {
	docClients map[string]map[*PreviewClient]bool
	register   chan *PreviewClient
	unregister chan *PreviewClient
	logger     *logging.ChanneledLogger
	mu         sync.RWMutex
}

// NewPreviewHub creates a new hub instance.
func NewPreviewHub(logger *logging.ChanneledLogger) *PreviewHub {
	return &PreviewHub{
		docClients: make(map[string]map[*PreviewClient]bool),
		register:   make(chan *PreviewClient),
		unregister: make(chan *PreviewClient),
		logger:     logger,
	}
}

// Run starts the hub's main loop. This should be run as a goroutine.
func (h *PreviewHub) Run() {
	ticker := time.NewTicker(config.PreviewPingInterval)
	defer ticker.Stop()

	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			if _, ok := h.docClients[client.DocID]; !ok {
				h.docClients[client.DocID] = make(map[*PreviewClient]bool)
			}
			h.docClients[client.DocID][client] = true
			h.mu.Unlock()
			h.logger.Preview().Info("Preview client registered", "documentId", client.DocID)

		case client := <-h.unregister:
			h.mu.Lock()
			if clients, ok := h.docClients[client.DocID]; ok {
				if _, ok := clients[client]; ok {
					delete(clients, client)
					close(client.Send)
					if len(clients) == 0 {
						delete(h.docClients, client.DocID)
					}
				}
			}
			h.mu.Unlock()
			h.logger.Preview().Info("Preview client unregistered", "documentId", client.DocID)

		case <-ticker.C:
			h.pingClients()
		}
	}
}

// Register queues a client for registration.
func (h *PreviewHub) Register(client *PreviewClient) {
	h.register <- client
}

// Unregister queues a client for unregistration.
func (h *PreviewHub) Unregister(client *PreviewClient) {
	h.unregister <- client
}

// BroadcastFragment pushes freshly rendered HTML to every client watching
// the given document. Slow clients are skipped rather than blocked on.
func (h *PreviewHub) BroadcastFragment(docID, html string) {
	message := []byte(html)

	h.mu.RLock()
	defer h.mu.RUnlock()

	clients, ok := h.docClients[docID]
	if !ok {
		return
	}
	for client := range clients {
		select {
		case client.Send <- message:
		default:
		}
	}
	h.logger.Preview().Debug("Fragment broadcast", "documentId", docID, "clients", len(clients), "bytes", len(message))
}

// ClientCount reports the number of connected clients across all documents.
func (h *PreviewHub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	total := 0
	for _, clients := range h.docClients {
		total += len(clients)
	}
	return total
}

// pingClients writes a ping frame to every connection so dead peers are
// detected between broadcasts.
func (h *PreviewHub) pingClients() {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, clients := range h.docClients {
		for client := range clients {
			deadline := time.Now().Add(config.PreviewWriteTimeout)
			if err := client.Conn.WriteControl(websocket.PingMessage, nil, deadline); err != nil {
				h.logger.Preview().Debug("Ping failed, client likely gone", "documentId", client.DocID, "error", err.Error())
			}
		}
	}
}

// WritePump drains the client's send channel onto its websocket connection.
// It runs until the channel is closed by the hub or a write fails, and is
// started as a goroutine by the websocket handler.
func (h *PreviewHub) WritePump(client *PreviewClient) {
	defer client.Conn.Close()

	for message := range client.Send {
		client.Conn.SetWriteDeadline(time.Now().Add(config.PreviewWriteTimeout))
		if err := client.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
			return
		}
	}
	client.Conn.WriteMessage(websocket.CloseMessage, []byte{})
}

// ReadPump discards inbound frames while watching for close. Preview sockets
// are one-way; reading is only needed to process control frames and detect
// disconnects. It unregisters the client when the connection drops.
func (h *PreviewHub) ReadPump(client *PreviewClient) {
	defer func() {
		h.Unregister(client)
		client.Conn.Close()
	}()

	for {
		if _, _, err := client.Conn.ReadMessage(); err != nil {
			return
		}
	}
}
