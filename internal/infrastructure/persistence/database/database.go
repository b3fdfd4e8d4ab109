// Package database provides the core functionality for creating and managing
// database connections in a clean, isolated manner.
package database

import (
	"database/sql"
	"fmt"
	"os"
	"time"

	_ "github.com/mattn/go-sqlite3"
	_ "github.com/tursodatabase/libsql-client-go/libsql"

	"github.com/MeridianPress/slateforge-go/internal/infrastructure/observability/logging"
	"github.com/MeridianPress/slateforge-go/pkg/config"
)

// DB represents a wrapper around the standard SQL database connection.
type DB struct {
	*sql.DB
}

// NewConnection establishes a new database connection for the specified driver.
func NewConnection(driverName, dataSourceName string) (*DB, error) {
	db, err := sql.Open(driverName, dataSourceName)
	if err != nil {
		return nil, err
	}

	if err = db.Ping(); err != nil {
		return nil, err
	}

	applyPoolSettings(db)
	return &DB{db}, nil
}

// Connect opens the service database. When TURSO_DATABASE_URL and
// TURSO_AUTH_TOKEN are set it connects to the remote libsql database;
// otherwise it falls back to a local SQLite file.
func Connect(logger *logging.ChanneledLogger) (*DB, error) {
	start := time.Now()

	dbURL := os.Getenv("TURSO_DATABASE_URL")
	authToken := os.Getenv("TURSO_AUTH_TOKEN")

	var driverName, dataSourceName, target string
	if dbURL != "" && authToken != "" {
		driverName = "libsql"
		dataSourceName = dbURL + "?authToken=" + authToken
		target = dbURL
	} else {
		driverName = "sqlite3"
		dataSourceName = config.DBPath
		target = config.DBPath
	}

	logger.Database().Debug("Creating new database connection", "driverName", driverName, "target", target)

	db, err := NewConnection(driverName, dataSourceName)
	if err != nil {
		logger.Database().Error("Failed to open database connection", "error", err.Error(), "driverName", driverName)
		return nil, fmt.Errorf("failed to connect via %s: %w", driverName, err)
	}

	if err := TestConnection(db); err != nil {
		db.Close()
		logger.Database().Error("Database connection test failed", "error", err.Error(), "driverName", driverName)
		return nil, err
	}

	logger.Database().Info("Database connection established", "driverName", driverName, "duration", time.Since(start))
	return db, nil
}

func applyPoolSettings(db *sql.DB) {
	db.SetMaxOpenConns(config.DBMaxOpenConns)
	db.SetMaxIdleConns(config.DBMaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(config.DBConnMaxLifetimeMinutes) * time.Minute)
	db.SetConnMaxIdleTime(time.Duration(config.DBConnMaxIdleMinutes) * time.Minute)
}
