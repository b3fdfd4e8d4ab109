// Package config provides centralized default values for slateforge
package config

import (
	"bufio"
	"log"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"
)

var envLoaded sync.Once

func loadEnvFile() {
	envLoaded.Do(func() {
		file, err := os.Open(".env")
		if err != nil {
			return
		}
		defer file.Close()

		log.Println("Loading configuration overrides from .env file...")
		scanner := bufio.NewScanner(file)
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())

			if line == "" || strings.HasPrefix(line, "#") {
				continue
			}

			parts := strings.SplitN(line, "=", 2)
			if len(parts) != 2 {
				continue
			}

			key := strings.TrimSpace(parts[0])
			value := strings.TrimSpace(parts[1])

			if os.Getenv(key) == "" {
				os.Setenv(key, value)
			}
		}
	})
}

func getEnvInt(key string, defaultValue int) int {
	if valStr := os.Getenv(key); valStr != "" {
		if val, err := strconv.Atoi(valStr); err == nil {
			if val != defaultValue {
				log.Printf("Config override: %s=%d (default: %d)", key, val, defaultValue)
			}
			return val
		}
	}
	return defaultValue
}

func getEnvString(key string, defaultValue string) string {
	if val := os.Getenv(key); val != "" {
		if val != defaultValue {
			log.Printf("Config override: %s=%s (default: %s)", key, val, defaultValue)
		}
		return val
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if valStr := os.Getenv(key); valStr != "" {
		if val, err := strconv.ParseBool(valStr); err == nil {
			if val != defaultValue {
				log.Printf("Config override: %s=%t (default: %t)", key, val, defaultValue)
			}
			return val
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if valStr := os.Getenv(key); valStr != "" {
		if val, err := time.ParseDuration(valStr); err == nil {
			if val != defaultValue {
				log.Printf("Config override: %s=%s (default: %s)", key, val, defaultValue)
			}
			return val
		}
	}
	return defaultValue
}

var (
	// Server Configuration
	Port               string
	ServerReadTimeout  time.Duration
	ServerWriteTimeout time.Duration
	ServerIdleTimeout  time.Duration

	// Auth Configuration
	JWTSecret      string
	AESKey         string
	AdminPassword  string
	EditorPassword string

	// Database Pool
	DBMaxOpenConns           int
	DBMaxIdleConns           int
	DBConnMaxLifetimeMinutes int
	DBConnMaxIdleMinutes     int
	DBPath                   string
	SlowQueryThreshold       time.Duration

	// Serializer defaults
	SerializerStripWhitespace bool
	SerializerStripDataAttrs  bool
	SerializerPreserveClasses []string
	SerializerSanitize        bool
	SerializerMinify          bool

	// Fragment cache
	FragmentCacheTTL     time.Duration
	CacheCleanupInterval time.Duration

	// Preview websocket
	PreviewWriteTimeout   time.Duration
	PreviewPingInterval   time.Duration
	PreviewMaxConnections int

	// Share links
	ShareTokenTTL time.Duration
)

func init() {
	loadEnvFile()

	// Server Configuration
	Port = getEnvString("PORT", "8080")
	ServerReadTimeout = getEnvDuration("SERVER_READ_TIMEOUT", 15*time.Second)
	ServerWriteTimeout = getEnvDuration("SERVER_WRITE_TIMEOUT", 15*time.Second)
	ServerIdleTimeout = getEnvDuration("SERVER_IDLE_TIMEOUT", 60*time.Second)

	// Auth Configuration
	JWTSecret = getEnvString("JWT_SECRET", "")
	AESKey = getEnvString("AES_KEY", "")
	AdminPassword = getEnvString("ADMIN_PASSWORD", "")
	EditorPassword = getEnvString("EDITOR_PASSWORD", "")

	// Database Pool
	DBMaxOpenConns = getEnvInt("DB_MAX_OPEN_CONNS", 10)
	DBMaxIdleConns = getEnvInt("DB_MAX_IDLE_CONNS", 3)
	DBConnMaxLifetimeMinutes = getEnvInt("DB_CONN_MAX_LIFETIME_MINUTES", 30)
	DBConnMaxIdleMinutes = getEnvInt("DB_CONN_MAX_IDLE_MINUTES", 3)
	DBPath = getEnvString("DB_PATH", "slateforge.db")
	SlowQueryThreshold = getEnvDuration("SLOW_QUERY_THRESHOLD", 100*time.Millisecond)

	// Serializer defaults
	SerializerStripWhitespace = getEnvBool("SERIALIZER_STRIP_WHITESPACE", true)
	SerializerStripDataAttrs = getEnvBool("SERIALIZER_STRIP_DATA_ATTRS", true)
	SerializerPreserveClasses = splitList(getEnvString("SERIALIZER_PRESERVE_CLASSES", "slate-"))
	SerializerSanitize = getEnvBool("SERIALIZER_SANITIZE", false)
	SerializerMinify = getEnvBool("SERIALIZER_MINIFY", false)

	// Fragment cache
	FragmentCacheTTL = time.Duration(getEnvInt("FRAGMENT_CACHE_TTL_HOURS", 1)) * time.Hour
	CacheCleanupInterval = time.Duration(getEnvInt("CACHE_CLEANUP_INTERVAL_MINUTES", 30)) * time.Minute

	// Preview websocket
	PreviewWriteTimeout = getEnvDuration("PREVIEW_WRITE_TIMEOUT", 10*time.Second)
	PreviewPingInterval = getEnvDuration("PREVIEW_PING_INTERVAL", 30*time.Second)
	PreviewMaxConnections = getEnvInt("PREVIEW_MAX_CONNECTIONS", 256)

	// Share links
	ShareTokenTTL = getEnvDuration("SHARE_TOKEN_TTL", 7*24*time.Hour)
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
