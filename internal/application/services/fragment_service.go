package services

import (
	"fmt"
	"time"

	"github.com/MeridianPress/slateforge-go/internal/domain/entities/document"
	"github.com/MeridianPress/slateforge-go/internal/infrastructure/caching"
	"github.com/MeridianPress/slateforge-go/internal/infrastructure/observability/logging"
	"github.com/MeridianPress/slateforge-go/internal/serializer"
	"github.com/MeridianPress/slateforge-go/pkg/config"
)

// FragmentService orchestrates document serialization with caching
type FragmentService struct {
	repo     document.Repository
	cache    *caching.FragmentCache
	registry *serializer.Registry
	logger   *logging.ChanneledLogger
}

// NewFragmentService creates a new fragment service
func NewFragmentService(
	repo document.Repository,
	cache *caching.FragmentCache,
	registry *serializer.Registry,
	logger *logging.ChanneledLogger,
) *FragmentService {
	return &FragmentService{
		repo:     repo,
		cache:    cache,
		registry: registry,
		logger:   logger,
	}
}

// ConfiguredOptions builds serialization options from environment defaults.
func ConfiguredOptions() serializer.Options {
	return serializer.Options{
		StripWhitespace:     config.SerializerStripWhitespace,
		StripDataAttributes: config.SerializerStripDataAttrs,
		PreserveClassNames:  config.SerializerPreserveClasses,
		Sanitize:            config.SerializerSanitize,
		Minify:              config.SerializerMinify,
	}
}

// optionsForVariant maps a cache variant onto concrete serialization options.
func optionsForVariant(variant caching.FragmentVariant) serializer.Options {
	opts := ConfiguredOptions()
	if variant == caching.VariantSanitized {
		opts.Sanitize = true
	}
	return opts
}

// RenderNodes serializes an ad-hoc node tree without touching the cache.
func (s *FragmentService) RenderNodes(nodes []document.Node, opts serializer.Options) string {
	start := time.Now()
	html := serializer.Serialize(nodes, s.registry, opts)
	s.logger.Serializer().Debug("Ad-hoc serialization completed", "nodes", len(nodes), "bytes", len(html), "duration", time.Since(start))
	return html
}

// GenerateFragment returns the rendered HTML for a document, serving from
// the fragment cache when possible and populating it on a miss.
func (s *FragmentService) GenerateFragment(docID string, variant caching.FragmentVariant) (string, error) {
	if cached, exists := s.cache.Get(docID, variant); exists {
		s.logger.Cache().Debug("Fragment cache hit", "documentId", docID, "variant", string(variant))
		return cached, nil
	}

	doc, err := s.repo.GetByID(docID)
	if err != nil {
		return "", fmt.Errorf("failed to load document %s: %w", docID, err)
	}
	if doc == nil {
		return "", ErrDocumentNotFound
	}

	start := time.Now()
	html := serializer.Serialize(doc.Nodes, s.registry, optionsForVariant(variant))
	s.cache.Set(docID, variant, html, []string{docID})

	s.logger.Serializer().Info("Fragment generated", "documentId", docID, "variant", string(variant), "bytes", len(html), "duration", time.Since(start))
	return html, nil
}

// Regenerate drops any cached renderings for the document and produces a
// fresh default-variant fragment. Used after document mutations.
func (s *FragmentService) Regenerate(doc *document.Document) string {
	s.cache.Invalidate(doc.ID)

	html := serializer.Serialize(doc.Nodes, s.registry, optionsForVariant(caching.VariantDefault))
	s.cache.Set(doc.ID, caching.VariantDefault, html, []string{doc.ID})
	return html
}
