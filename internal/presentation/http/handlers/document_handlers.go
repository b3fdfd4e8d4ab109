package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/MeridianPress/slateforge-go/internal/application/services"
	"github.com/MeridianPress/slateforge-go/internal/domain/entities/document"
	"github.com/MeridianPress/slateforge-go/internal/infrastructure/observability/logging"
	"github.com/gin-gonic/gin"
)

// DocumentHandlers handles HTTP requests for document CRUD endpoints
type DocumentHandlers struct {
	documentService *services.DocumentService
	logger          *logging.ChanneledLogger
}

// NewDocumentHandlers creates a new document handlers instance
func NewDocumentHandlers(documentService *services.DocumentService, logger *logging.ChanneledLogger) *DocumentHandlers {
	return &DocumentHandlers{
		documentService: documentService,
		logger:          logger,
	}
}

// DocumentRequest is the request body for create and update operations
type DocumentRequest struct {
	Title string          `json:"title" binding:"required"`
	Slug  string          `json:"slug" binding:"required"`
	Nodes json.RawMessage `json:"nodes" binding:"required"`
}

// documentResponse shapes a document for JSON output
func documentResponse(doc *document.Document) gin.H {
	return gin.H{
		"id":        doc.ID,
		"title":     doc.Title,
		"slug":      doc.Slug,
		"nodes":     doc.Nodes,
		"createdAt": doc.CreatedAt,
		"updatedAt": doc.UpdatedAt,
	}
}

// GetDocuments handles GET /api/v1/documents
func (h *DocumentHandlers) GetDocuments(c *gin.Context) {
	docs, err := h.documentService.List()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	response := make([]gin.H, 0, len(docs))
	for _, doc := range docs {
		response = append(response, documentResponse(doc))
	}

	c.JSON(http.StatusOK, gin.H{"documents": response})
}

// GetDocument handles GET /api/v1/documents/:id. IDs prefixed with "slug:"
// are resolved by slug instead.
func (h *DocumentHandlers) GetDocument(c *gin.Context) {
	id := c.Param("id")

	var doc *document.Document
	var err error
	if slug, ok := strings.CutPrefix(id, "slug:"); ok {
		doc, err = h.documentService.GetBySlug(slug)
	} else {
		doc, err = h.documentService.GetByID(id)
	}

	if err != nil {
		if errors.Is(err, services.ErrDocumentNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Document not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, documentResponse(doc))
}

// PostDocument handles POST /api/v1/documents
func (h *DocumentHandlers) PostDocument(c *gin.Context) {
	start := time.Now()

	var req DocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	nodes, err := document.ParseNodes(req.Nodes)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid node tree"})
		return
	}

	doc := &document.Document{
		Title: req.Title,
		Slug:  req.Slug,
		Nodes: nodes,
	}

	if err := h.documentService.Create(doc); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	h.logger.Content().Info("Create document request completed", "documentId", doc.ID, "duration", time.Since(start))

	c.JSON(http.StatusCreated, documentResponse(doc))
}

// PutDocument handles PUT /api/v1/documents/:id
func (h *DocumentHandlers) PutDocument(c *gin.Context) {
	start := time.Now()

	id := c.Param("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Document ID is required"})
		return
	}

	var req DocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	nodes, err := document.ParseNodes(req.Nodes)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid node tree"})
		return
	}

	doc := &document.Document{
		ID:    id,
		Title: req.Title,
		Slug:  req.Slug,
		Nodes: nodes,
	}

	if err := h.documentService.Update(doc); err != nil {
		if errors.Is(err, services.ErrDocumentNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Document not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	h.logger.Content().Info("Update document request completed", "documentId", id, "duration", time.Since(start))

	c.JSON(http.StatusOK, documentResponse(doc))
}

// DeleteDocument handles DELETE /api/v1/documents/:id
func (h *DocumentHandlers) DeleteDocument(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Document ID is required"})
		return
	}

	if err := h.documentService.Delete(id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
