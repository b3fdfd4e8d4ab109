package services

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/MeridianPress/slateforge-go/internal/domain/entities/document"
	"github.com/MeridianPress/slateforge-go/internal/infrastructure/caching"
	"github.com/MeridianPress/slateforge-go/internal/infrastructure/messaging"
	"github.com/MeridianPress/slateforge-go/internal/infrastructure/observability/logging"
	"github.com/MeridianPress/slateforge-go/internal/infrastructure/security"
)

// ErrDocumentNotFound is returned when a lookup matches no stored document.
var ErrDocumentNotFound = errors.New("document not found")

// DocumentService handles document CRUD plus the cache invalidation and
// preview broadcasting that follow every mutation.
type DocumentService struct {
	repo      document.Repository
	cache     *caching.FragmentCache
	fragments *FragmentService
	hub       *messaging.PreviewHub
	logger    *logging.ChanneledLogger
}

// NewDocumentService creates a new document service
func NewDocumentService(
	repo document.Repository,
	cache *caching.FragmentCache,
	fragments *FragmentService,
	hub *messaging.PreviewHub,
	logger *logging.ChanneledLogger,
) *DocumentService {
	return &DocumentService{
		repo:      repo,
		cache:     cache,
		fragments: fragments,
		hub:       hub,
		logger:    logger,
	}
}

// GetByID loads a single document
func (s *DocumentService) GetByID(id string) (*document.Document, error) {
	doc, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, ErrDocumentNotFound
	}
	return doc, nil
}

// GetBySlug loads a single document by its slug
func (s *DocumentService) GetBySlug(slug string) (*document.Document, error) {
	doc, err := s.repo.GetBySlug(slug)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, ErrDocumentNotFound
	}
	return doc, nil
}

// List returns all stored documents
func (s *DocumentService) List() ([]*document.Document, error) {
	return s.repo.List()
}

// Create stores a new document. A missing ID gets a fresh ULID.
func (s *DocumentService) Create(doc *document.Document) error {
	if doc.ID == "" {
		doc.ID = security.GenerateULID()
	}
	now := time.Now().UTC()
	doc.CreatedAt = now
	doc.UpdatedAt = now

	if err := s.repo.Create(doc); err != nil {
		return fmt.Errorf("failed to create document: %w", err)
	}

	s.logger.Content().Info("Document created", "documentId", doc.ID, "slug", doc.Slug)
	return nil
}

// Update persists document changes, invalidates cached fragments and pushes
// the fresh rendering to any open preview sockets.
func (s *DocumentService) Update(doc *document.Document) error {
	doc.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(doc); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrDocumentNotFound
		}
		return err
	}

	html := s.fragments.Regenerate(doc)
	s.hub.BroadcastFragment(doc.ID, html)

	s.logger.Content().Info("Document updated", "documentId", doc.ID, "slug", doc.Slug)
	return nil
}

// Delete removes a document and drops its cached fragments
func (s *DocumentService) Delete(id string) error {
	if err := s.repo.Delete(id); err != nil {
		return err
	}

	s.cache.Invalidate(id)
	s.logger.Content().Info("Document deleted", "documentId", id)
	return nil
}
