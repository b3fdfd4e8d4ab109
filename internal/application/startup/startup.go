// Package startup prepares the application server
package startup

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/MeridianPress/slateforge-go/internal/application/container"
	"github.com/MeridianPress/slateforge-go/internal/infrastructure/observability/logging"
	"github.com/MeridianPress/slateforge-go/internal/infrastructure/persistence/database"
	"github.com/MeridianPress/slateforge-go/internal/infrastructure/security"
	"github.com/MeridianPress/slateforge-go/internal/presentation/http/server"
	"github.com/MeridianPress/slateforge-go/pkg/config"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

// Initialize performs the complete startup sequence
func Initialize() error {
	setupLogging()

	start := time.Now().UTC()

	ctx, cancelBackgroundTasks := context.WithCancel(context.Background())
	defer cancelBackgroundTasks()

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found -- config defaults will be used")
	}

	// Step 1: Channeled logging
	logger, err := logging.NewChanneledLogger(logging.DefaultLoggerConfig())
	if err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}
	logger.Startup().Info("Channeled logging initialized")

	// Step 2: Secrets
	if err := ensureSecrets(logger); err != nil {
		return fmt.Errorf("secret bootstrap failed: %w", err)
	}

	// Step 3: Database connection and schema
	logger.Startup().Info("Connecting to database...")
	db, err := database.Connect(logger)
	if err != nil {
		return fmt.Errorf("database connection failed: %w", err)
	}
	defer db.Close()

	// Step 4: Dependency injection container
	logger.Startup().Info("Initializing dependency injection container...")
	appContainer := container.NewContainer(db, logger)

	if err := appContainer.DocumentRepo.EnsureSchema(); err != nil {
		return fmt.Errorf("schema migration failed: %w", err)
	}
	logger.Startup().Info("Database schema verified")

	// Step 5: Background workers
	logger.Startup().Info("Starting background workers...")
	go appContainer.PreviewHub.Run()
	appContainer.FragmentCache.StartCleanupRoutine(config.CacheCleanupInterval, ctx.Done())

	// Step 6: HTTP server
	port := config.Port
	httpServer := server.New(port, appContainer)

	gracefulShutdown := make(chan os.Signal, 1)
	signal.Notify(gracefulShutdown, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		logger.System().Info("Starting HTTP server", "address", ":"+port)
		if err := httpServer.Start(); err != nil {
			logger.System().Error("HTTP server failed", "error", err.Error())
		}
	}()

	logger.Startup().Info("Application startup complete",
		"totalDuration", time.Since(start),
		"port", port)

	// Wait for shutdown signal
	<-gracefulShutdown
	logger.Shutdown().Info("Shutdown signal received, starting graceful shutdown...")

	shutdownStart := time.Now()

	cancelBackgroundTasks()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	logger.Shutdown().Info("Stopping HTTP server...")
	if err := httpServer.Stop(shutdownCtx); err != nil {
		logger.Shutdown().Error("Error during server shutdown", "error", err.Error())
	} else {
		logger.Shutdown().Info("HTTP server stopped successfully")
	}

	logger.Shutdown().Info("Application shutdown complete",
		"totalUptime", time.Since(start),
		"shutdownDuration", time.Since(shutdownStart))

	return nil
}

// ensureSecrets generates ephemeral JWT and AES secrets when none are
// configured. Generated secrets do not survive restarts, so issued tokens
// and share links become invalid on the next boot.
func ensureSecrets(logger *logging.ChanneledLogger) error {
	if config.JWTSecret == "" {
		key, err := security.GenerateSecureKey(64)
		if err != nil {
			return fmt.Errorf("failed to generate JWT secret: %w", err)
		}
		config.JWTSecret = key
		logger.Startup().Warn("JWT_SECRET not set, generated an ephemeral secret; auth tokens will not survive restarts")
	}

	if config.AESKey == "" {
		key, err := security.GenerateSecureKey(64)
		if err != nil {
			return fmt.Errorf("failed to generate AES key: %w", err)
		}
		config.AESKey = key
		logger.Startup().Warn("AES_KEY not set, generated an ephemeral key; share links will not survive restarts")
	}

	return nil
}

// setupLogging configures application logging
func setupLogging() {
	if os.Getenv("GIN_MODE") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	log.SetFlags(log.LstdFlags | log.Lshortfile)
}
