package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr                 string
	Environment          string
	DataDir              string
	DocumentName         string
	DatabaseURL          string
	JWTSecret            string
	TokenTTL             time.Duration
	SeedAdminPassword    string
	PasswordHash         string
	FrontendDir          string
	MaxDocumentBytes     int64
	MaxBodyBytes         int64
	RateLimitPerMinute   int
	AutoPopulateInterval time.Duration
	Timezone             string
	LogLevel             string
	LogFormat            string
	LogOutput            string
	MetricsEnabled       bool
}

// Load reads the configuration from the environment. A .env file in the
// working directory, or the files named by envFiles, is applied first
// without overriding variables that are already set.
func Load(envFiles ...string) Config {
	if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "config: ignoring env file: %v\n", err)
	}

	return Config{
		Addr:                 getEnv("APP_ADDR", ":3001"),
		Environment:          getEnv("APP_ENV", "development"),
		DataDir:              getEnv("DATA_DIR", "data"),
		DocumentName:         getEnv("DOCUMENT_NAME", "db.json"),
		DatabaseURL:          getEnv("DATABASE_URL", ""),
		JWTSecret:            getEnv("JWT_SECRET", ""),
		TokenTTL:             getEnvDuration("TOKEN_TTL", 12*time.Hour),
		SeedAdminPassword:    getEnv("SEED_ADMIN_PASSWORD", "admin123"),
		PasswordHash:         getEnv("PASSWORD_HASH", "sha256"),
		FrontendDir:          getEnv("FRONTEND_DIR", "frontend/dist"),
		MaxDocumentBytes:     int64(getEnvInt("MAX_DOCUMENT_BYTES", 50*1024*1024)),
		MaxBodyBytes:         int64(getEnvInt("MAX_BODY_BYTES", 51*1024*1024)),
		RateLimitPerMinute:   getEnvInt("RATE_LIMIT_PER_MINUTE", 600),
		AutoPopulateInterval: getEnvDuration("AUTOPOPULATE_INTERVAL", time.Hour),
		Timezone:             getEnv("TIMEZONE", "Local"),
		LogLevel:             getEnv("LOG_LEVEL", "info"),
		LogFormat:            getEnv("LOG_FORMAT", ""),
		LogOutput:            getEnv("LOG_OUTPUT", "stdout"),
		MetricsEnabled:       getEnvBool("METRICS_ENABLED", true),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func (c Config) IsProduction() bool {
	return c.Environment == "production"
}

// Location resolves Timezone, falling back to the process local zone.
func (c Config) Location() *time.Location {
	if c.Timezone == "" || strings.EqualFold(c.Timezone, "local") {
		return time.Local
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.DatabaseURL) == "" && strings.TrimSpace(c.DataDir) == "" {
		return fmt.Errorf("DATA_DIR is required when DATABASE_URL is not set")
	}
	if strings.TrimSpace(c.DocumentName) == "" {
		return fmt.Errorf("DOCUMENT_NAME is required")
	}
	if c.IsProduction() && strings.TrimSpace(c.JWTSecret) == "" {
		return fmt.Errorf("JWT_SECRET must be set to a strong value in production")
	}
	switch strings.ToLower(strings.TrimSpace(c.PasswordHash)) {
	case "", "sha256", "bcrypt":
	default:
		return fmt.Errorf("PASSWORD_HASH must be sha256 or bcrypt")
	}
	if c.TokenTTL <= 0 {
		return fmt.Errorf("TOKEN_TTL must be positive")
	}
	if c.MaxDocumentBytes < 1024 {
		return fmt.Errorf("MAX_DOCUMENT_BYTES must be at least 1024")
	}
	if c.MaxBodyBytes < c.MaxDocumentBytes {
		return fmt.Errorf("MAX_BODY_BYTES must be at least MAX_DOCUMENT_BYTES")
	}
	if c.RateLimitPerMinute <= 0 {
		return fmt.Errorf("RATE_LIMIT_PER_MINUTE must be positive")
	}
	if c.Timezone != "" && !strings.EqualFold(c.Timezone, "local") {
		if _, err := time.LoadLocation(c.Timezone); err != nil {
			return fmt.Errorf("TIMEZONE is invalid: %w", err)
		}
	}
	return nil
}
