// Package config loads runtime settings from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// StoreBackend names where the catalog is persisted.
type StoreBackend string

const (
	StorePostgres StoreBackend = "postgres"
	StoreBadger   StoreBackend = "badger"
	StoreMemory   StoreBackend = "memory"
)

// Config holds all application configuration
type Config struct {
	Server   ServerConfig
	Store    StoreConfig
	Security SecurityConfig
	CORS     CORSConfig
	Logging  LoggingConfig

	// SeedDemoData fills an empty catalog with sample songs on startup.
	SeedDemoData bool
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port int
	Host string
}

// Addr is the listen address.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// StoreConfig selects and locates the catalog backend.
type StoreConfig struct {
	Backend     StoreBackend
	DatabaseURL string
	BadgerDir   string
}

// SecurityConfig holds token settings
type SecurityConfig struct {
	JWTSecret string
	TokenTTL  time.Duration
}

// CORSConfig holds CORS settings
type CORSConfig struct {
	AllowedOrigins []string
}

// LoggingConfig holds logging settings
type LoggingConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, text
}

// Load reads configuration from environment variables. Values in envFile,
// when it exists, fill variables that are not already set.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		_ = godotenv.Load(envFile)
	}

	cfg := &Config{}
	var problems []string

	port, err := strconv.Atoi(getEnvOrDefault("PORT", "8080"))
	if err != nil {
		problems = append(problems, "PORT must be a number")
	}
	cfg.Server = ServerConfig{Port: port, Host: getEnvOrDefault("HOST", "0.0.0.0")}

	cfg.Store = StoreConfig{
		Backend:     StoreBackend(strings.ToLower(getEnvOrDefault("STORE_BACKEND", string(StoreMemory)))),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		BadgerDir:   getEnvOrDefault("BADGER_DIR", "data/badger"),
	}

	ttl, err := time.ParseDuration(getEnvOrDefault("TOKEN_TTL", "24h"))
	if err != nil {
		problems = append(problems, "TOKEN_TTL must be a duration such as 24h")
	}
	cfg.Security = SecurityConfig{JWTSecret: os.Getenv("JWT_SECRET"), TokenTTL: ttl}

	cfg.CORS.AllowedOrigins = parseAllowedOrigins(getEnvOrDefault("CORS_ALLOWED_ORIGINS", "http://localhost:5173"))

	cfg.Logging = LoggingConfig{
		Level:  getEnvOrDefault("LOG_LEVEL", "info"),
		Format: getEnvOrDefault("LOG_FORMAT", "json"),
	}

	seed, err := strconv.ParseBool(getEnvOrDefault("SEED_DEMO_DATA", "false"))
	if err != nil {
		problems = append(problems, "SEED_DEMO_DATA must be true or false")
	}
	cfg.SeedDemoData = seed

	problems = append(problems, cfg.problems()...)
	if len(problems) > 0 {
		return nil, validationError(problems)
	}
	return cfg, nil
}

// Validate checks that all required configuration is present and valid
func (c *Config) Validate() error {
	if problems := c.problems(); len(problems) > 0 {
		return validationError(problems)
	}
	return nil
}

func (c *Config) problems() []string {
	var problems []string

	switch c.Store.Backend {
	case StorePostgres:
		if c.Store.DatabaseURL == "" {
			problems = append(problems, "DATABASE_URL is required when STORE_BACKEND=postgres")
		}
	case StoreBadger:
		if c.Store.BadgerDir == "" {
			problems = append(problems, "BADGER_DIR is required when STORE_BACKEND=badger")
		}
	case StoreMemory:
	default:
		problems = append(problems, "STORE_BACKEND must be one of: postgres, badger, memory")
	}

	if c.Security.JWTSecret == "" {
		problems = append(problems, "JWT_SECRET is required")
	} else if len(c.Security.JWTSecret) < 16 {
		problems = append(problems, "JWT_SECRET must be at least 16 characters")
	}
	if c.Security.TokenTTL <= 0 {
		problems = append(problems, "TOKEN_TTL must be positive")
	}

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		problems = append(problems, "PORT must be between 1 and 65535")
	}

	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[c.Logging.Level] {
		problems = append(problems, "LOG_LEVEL must be one of: debug, info, warn, error")
	}

	validLogFormats := map[string]bool{"json": true, "text": true}
	if !validLogFormats[c.Logging.Format] {
		problems = append(problems, "LOG_FORMAT must be one of: json, text")
	}

	return problems
}

func validationError(problems []string) error {
	return fmt.Errorf("configuration validation failed:\n  - %s", strings.Join(problems, "\n  - "))
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseAllowedOrigins(raw string) []string {
	var origins []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}
