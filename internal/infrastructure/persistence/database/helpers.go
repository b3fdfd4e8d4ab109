// Package database provides database helper functions
package database

import (
	"fmt"
	"time"

	"github.com/MeridianPress/slateforge-go/internal/infrastructure/observability/logging"
	"github.com/MeridianPress/slateforge-go/pkg/config"
)

// TestConnection verifies the connection can actually execute a query.
// Ping alone succeeds against a libsql URL even when the auth token is bad.
func TestConnection(db *DB) error {
	var result int
	if err := db.QueryRow("SELECT 1").Scan(&result); err != nil {
		return fmt.Errorf("connection test query failed: %w", err)
	}
	if result != 1 {
		return fmt.Errorf("unexpected query result: %d", result)
	}
	return nil
}

// CheckAndLogSlowQuery logs a warning on the database channel when a query
// duration exceeds the configured threshold.
func CheckAndLogSlowQuery(logger *logging.ChanneledLogger, query string, duration time.Duration) {
	if duration > config.SlowQueryThreshold {
		logger.Database().Warn("Slow query detected", "query", query, "duration", duration, "threshold", config.SlowQueryThreshold)
	}
}
