// Package container provides dependency injection for all singleton services
package container

import (
	"github.com/MeridianPress/slateforge-go/internal/application/services"
	"github.com/MeridianPress/slateforge-go/internal/infrastructure/caching"
	"github.com/MeridianPress/slateforge-go/internal/infrastructure/messaging"
	"github.com/MeridianPress/slateforge-go/internal/infrastructure/observability/logging"
	"github.com/MeridianPress/slateforge-go/internal/infrastructure/observability/performance"
	"github.com/MeridianPress/slateforge-go/internal/infrastructure/persistence/content"
	"github.com/MeridianPress/slateforge-go/internal/infrastructure/persistence/database"
	"github.com/MeridianPress/slateforge-go/internal/serializer"
	"github.com/MeridianPress/slateforge-go/internal/serializer/plugins"
	"github.com/MeridianPress/slateforge-go/pkg/config"
)

// Container holds all singleton services and infrastructure dependencies
type Container struct {
	// Application services (stateless singletons)
	AuthService     *services.AuthService
	FragmentService *services.FragmentService
	DocumentService *services.DocumentService

	// Infrastructure dependencies
	DB            *database.DB
	DocumentRepo  *content.DocumentRepository
	FragmentCache *caching.FragmentCache
	Registry      *serializer.Registry
	PreviewHub    *messaging.PreviewHub
	Logger        *logging.ChanneledLogger
	PerfTracker   *performance.Tracker
}

// NewContainer creates and wires all singleton services
func NewContainer(db *database.DB, logger *logging.ChanneledLogger) *Container {
	documentRepo := content.NewDocumentRepository(db.DB, logger)
	fragmentCache := caching.NewFragmentCache(config.FragmentCacheTTL)
	registry := plugins.Default(nil)
	previewHub := messaging.NewPreviewHub(logger)
	perfTracker := performance.NewTracker()

	authService := services.NewAuthService(logger)
	fragmentService := services.NewFragmentService(documentRepo, fragmentCache, registry, logger)
	documentService := services.NewDocumentService(documentRepo, fragmentCache, fragmentService, previewHub, logger)

	return &Container{
		AuthService:     authService,
		FragmentService: fragmentService,
		DocumentService: documentService,

		DB:            db,
		DocumentRepo:  documentRepo,
		FragmentCache: fragmentCache,
		Registry:      registry,
		PreviewHub:    previewHub,
		Logger:        logger,
		PerfTracker:   perfTracker,
	}
}
