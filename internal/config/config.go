package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Data source variants
const (
	DataSourceDatabase = "database"
	DataSourceFixtures = "fixtures"
)

// Config holds all application configuration
type Config struct {
	// Server
	Port        string
	Environment string

	// Data source
	DataSource   string
	DatabaseURL  string
	FixturesPath string

	// JWT
	JWTSecret          string
	JWTExpirationHours int

	// Default account ensured at startup
	DefaultUsername string
	DefaultPassword string

	// Storage
	StoragePath string

	// Background Workers
	WorkerCount int

	// CORS
	AllowedOrigins []string

	// Requests per minute per client on /auth/login
	LoginRateLimit int

	// BCP 47 tag used to order customer and company names
	CollationLocale string

	// Sentry
	SentryDSN string
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Port:               getEnv("PORT", "8080"),
		Environment:        getEnv("ENVIRONMENT", "development"),
		DataSource:         strings.ToLower(getEnv("DATA_SOURCE", DataSourceDatabase)),
		DatabaseURL:        getEnv("DATABASE_URL", ""),
		FixturesPath:       getEnv("FIXTURES_PATH", ""),
		JWTSecret:          getEnv("JWT_SECRET", ""),
		JWTExpirationHours: getEnvAsInt("JWT_EXPIRATION_HOURS", 24),
		DefaultUsername:    getEnv("DEFAULT_USERNAME", "admin"),
		DefaultPassword:    getEnv("DEFAULT_PASSWORD", ""),
		StoragePath:        getEnv("STORAGE_PATH", "./storage"),
		WorkerCount:        getEnvAsInt("WORKER_COUNT", 5),
		AllowedOrigins:     getEnvAsSlice("ALLOWED_ORIGINS", []string{"*"}),
		LoginRateLimit:     getEnvAsInt("LOGIN_RATE_LIMIT", 20),
		CollationLocale:    getEnv("COLLATION_LOCALE", "en-IN"),
		SentryDSN:          getEnv("SENTRY_DSN", ""),
	}

	switch cfg.DataSource {
	case DataSourceDatabase:
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL is required when DATA_SOURCE is %q", DataSourceDatabase)
		}
	case DataSourceFixtures:
	default:
		return nil, fmt.Errorf("unknown DATA_SOURCE %q", cfg.DataSource)
	}

	if cfg.Environment == "production" {
		if cfg.JWTSecret == "" {
			return nil, fmt.Errorf("JWT_SECRET is required in production")
		}
		if cfg.DefaultPassword == "" {
			return nil, fmt.Errorf("DEFAULT_PASSWORD is required in production")
		}
	}

	// Development defaults
	if cfg.JWTSecret == "" {
		cfg.JWTSecret = "dev-secret-change-in-production"
	}
	if cfg.DefaultPassword == "" {
		cfg.DefaultPassword = "admin123"
	}

	return cfg, nil
}

// getEnv reads an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsInt reads an environment variable as integer
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsSlice reads an environment variable as comma-separated slice
func getEnvAsSlice(key string, defaultValue []string) []string {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	parts := strings.Split(valueStr, ",")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return parts
}
