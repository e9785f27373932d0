package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	ServerHost string
	ServerPort string

	// Database configuration
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Redis configuration (optional, enables rate limiting)
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
	RedisURL      string

	// JWT configuration
	JWTSecret string

	// S3 image storage (optional; empty bucket disables uploads)
	S3Bucket  string
	AWSRegion string

	// CORS
	AllowedOrigins []string

	// Name of the attachment served by the shopping-list download
	ShoppingListFilename string
}

// Load creates a Config from environment variables. In development a .env
// file next to the binary is read first, if present.
func Load() (*Config, error) {
	if GetEnvironment() == Development {
		_ = godotenv.Load()
	}

	redisDB, _ := strconv.Atoi(getEnv("REDIS_DB", "0"))

	cfg := &Config{
		ServerHost:           getEnv("SERVER_HOST", "0.0.0.0"),
		ServerPort:           getEnv("SERVER_PORT", "8080"),
		DBHost:               getEnv("DB_HOST", "localhost"),
		DBPort:               getEnv("DB_PORT", "5432"),
		DBUser:               getEnv("DB_USER", "postgres"),
		DBPassword:           os.Getenv("DB_PASSWORD"),
		DBName:               getEnv("DB_NAME", "foodgram"),
		DBSSLMode:            getEnv("DB_SSL_MODE", "disable"),
		RedisHost:            os.Getenv("REDIS_HOST"),
		RedisPort:            getEnv("REDIS_PORT", "6379"),
		RedisPassword:        os.Getenv("REDIS_PASSWORD"),
		RedisDB:              redisDB,
		RedisURL:             os.Getenv("REDIS_URL"),
		JWTSecret:            os.Getenv("JWT_SECRET"),
		S3Bucket:             os.Getenv("S3_BUCKET_NAME"),
		AWSRegion:            getEnv("AWS_REGION", "us-east-1"),
		AllowedOrigins:       splitList(getEnv("ALLOWED_ORIGINS", "http://localhost:5173")),
		ShoppingListFilename: getEnv("SHOPPING_LIST_FILENAME", "shopping_list.txt"),
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks that required configuration is present
func Validate(cfg *Config) error {
	if cfg.JWTSecret == "" {
		return ValidationError{Field: "JWT_SECRET", Message: "is required"}
	}
	if cfg.DBHost == "" || cfg.DBPort == "" || cfg.DBName == "" {
		return ValidationError{Field: "DB_HOST/DB_PORT/DB_NAME", Message: "are required"}
	}
	if IsProduction() && cfg.DBPassword == "" {
		return ValidationError{Field: "DB_PASSWORD", Message: "is required in production"}
	}
	return nil
}

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
