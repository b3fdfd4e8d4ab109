// Package routes provides HTTP route configuration for the presentation layer.
package routes

import (
	"github.com/MeridianPress/slateforge-go/internal/application/container"
	"github.com/MeridianPress/slateforge-go/internal/presentation/http/handlers"
	"github.com/MeridianPress/slateforge-go/internal/presentation/http/middleware"
	"github.com/gin-gonic/gin"
)

// SetupRoutes configures all HTTP routes and middleware with dependency injection.
func SetupRoutes(container *container.Container) *gin.Engine {
	r := gin.New()
	r.Use(middleware.FilteredLogger())
	r.Use(gin.Recovery())
	r.Use(middleware.CORSMiddleware())

	// Initialize handlers
	authHandlers := handlers.NewAuthHandlers(container.AuthService, container.Logger)
	serializeHandlers := handlers.NewSerializeHandlers(container.FragmentService, container.Logger, container.PerfTracker)
	fragmentHandlers := handlers.NewFragmentHandlers(container.FragmentService, container.Logger, container.PerfTracker)
	documentHandlers := handlers.NewDocumentHandlers(container.DocumentService, container.Logger)
	healthHandlers := handlers.NewHealthHandlers(container.DB, container.FragmentCache, container.PreviewHub, container.PerfTracker)
	previewHandlers := handlers.NewPreviewHandlers(container.PreviewHub, container.FragmentService, container.Logger)

	// Live preview socket stays at top level, outside the API group
	r.GET("/ws/preview/:id", previewHandlers.GetPreviewSocket)

	api := r.Group("/api/v1")
	{
		api.GET("/health", healthHandlers.GetHealth)

		// Authentication routes
		auth := api.Group("/auth")
		{
			auth.POST("/login", authHandlers.PostLogin)
			auth.POST("/logout", authHandlers.PostLogout)
			auth.GET("/status", authHandlers.GetAuthStatus)
		}

		// Rendering endpoints
		api.POST("/serialize", serializeHandlers.PostSerialize)
		api.GET("/fragments/:id", fragmentHandlers.GetFragment)

		// Share links: minting requires auth, redeeming is public
		api.POST("/fragments/:id/share", authHandlers.AuthMiddleware(), fragmentHandlers.PostShareLink)
		api.GET("/shared/:token", fragmentHandlers.GetSharedFragment)

		// Document endpoints; reads are public, mutations need a token
		documents := api.Group("/documents")
		{
			documents.GET("", documentHandlers.GetDocuments)
			documents.GET("/:id", documentHandlers.GetDocument)

			documents.POST("", authHandlers.AuthMiddleware(), documentHandlers.PostDocument)
			documents.PUT("/:id", authHandlers.AuthMiddleware(), documentHandlers.PutDocument)
			documents.DELETE("/:id", authHandlers.AdminOnlyMiddleware(), documentHandlers.DeleteDocument)
		}
	}

	return r
}
