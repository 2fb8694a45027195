package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	Server ServerConfig

	// Database configuration (the HAF SQL node)
	Database DatabaseConfig

	// Search policy configuration
	Search SearchConfig

	// Logging configuration
	Log LogConfig
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

// DatabaseConfig holds the HAF SQL connection settings.
// The defaults point at the public Mahdiyari HAF SQL node, which accepts
// the well-known hafsql_public credentials and does not support SSL.
type DatabaseConfig struct {
	Host           string
	Port           string
	User           string
	Password       string
	Name           string
	SSLMode        string
	MaxOpenConns   int
	MaxIdleConns   int
	MaxLifetime    time.Duration
	ConnectTimeout time.Duration

	// RunMigrations applies the local mirror schema on startup. Only
	// meaningful against a private Postgres; the public node is read-only.
	RunMigrations  bool
	MigrationsPath string
}

// SearchConfig holds the query construction policy
type SearchConfig struct {
	// MaxRows bounds every generated query (LIMIT clause)
	MaxRows int
	// DefaultDays is the relative window used when the request names no window
	DefaultDays int
	// MaxKeywords bounds the keyword disjunction size
	MaxKeywords int
	// PreviewLength is the server-side body truncation length
	PreviewLength int
}

// LogConfig holds logging settings
type LogConfig struct {
	Level  string
	Format string // "json" or "pretty"
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:            getEnv("PORT", "3000"),
			ReadTimeout:     getDurationEnv("SERVER_READ_TIMEOUT", 30*time.Second),
			WriteTimeout:    getDurationEnv("SERVER_WRITE_TIMEOUT", 60*time.Second),
			ShutdownTimeout: getDurationEnv("SERVER_SHUTDOWN_TIMEOUT", 30*time.Second),
		},
		Database: DatabaseConfig{
			Host:           getEnv("DB_HOST", "hafsql-sql.mahdiyari.info"),
			Port:           getEnv("DB_PORT", "5432"),
			User:           getEnv("DB_USER", "hafsql_public"),
			Password:       getEnv("DB_PASSWORD", "hafsql_public"),
			Name:           getEnv("DB_NAME", "haf_block_log"),
			SSLMode:        getEnv("DB_SSLMODE", "disable"),
			MaxOpenConns:   getIntEnv("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:   getIntEnv("DB_MAX_IDLE_CONNS", 2),
			MaxLifetime:    getDurationEnv("DB_MAX_LIFETIME", 5*time.Minute),
			ConnectTimeout: getDurationEnv("DB_CONNECT_TIMEOUT", 10*time.Second),
			RunMigrations:  getBoolEnv("DB_RUN_MIGRATIONS", false),
			MigrationsPath: getEnv("MIGRATIONS_PATH", "./migrations"),
		},
		Search: SearchConfig{
			MaxRows:       getIntEnv("SEARCH_MAX_ROWS", 50),
			DefaultDays:   getIntEnv("SEARCH_DEFAULT_DAYS", 3),
			MaxKeywords:   getIntEnv("SEARCH_MAX_KEYWORDS", 10),
			PreviewLength: getIntEnv("SEARCH_PREVIEW_LENGTH", 500),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
	}

	// Validate required configuration
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Database.Host == "" {
		return fmt.Errorf("DB_HOST is required")
	}
	if c.Database.Name == "" {
		return fmt.Errorf("DB_NAME is required")
	}
	if c.Search.MaxRows <= 0 {
		return fmt.Errorf("SEARCH_MAX_ROWS must be positive")
	}
	if c.Search.DefaultDays <= 0 {
		return fmt.Errorf("SEARCH_DEFAULT_DAYS must be positive")
	}
	return nil
}

// GetDSN returns the PostgreSQL connection string
func (c *DatabaseConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s connect_timeout=%d",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode,
		int(c.ConnectTimeout.Seconds()),
	)
}

// Helper functions for environment variable parsing

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}
