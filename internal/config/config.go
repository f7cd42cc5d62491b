package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"shortstr-url-shortener/internal/shortstr"
)

// Config holds the application configuration.
type Config struct {
	ServerPort          string // Address the HTTP server listens on
	DatabaseURL         string // Required
	AllowedDomains      string // Comma-separated list of allowed domains; empty allows all
	ShortStringFormat   string // shortstr format for generated identifiers
	IncludeChecksum     bool   // Append a checksum character to generated shortstrings
	MaxGenerateAttempts int    // Bound on collision retries per generation
	PoolWorkerCount     int    // Goroutines pre-generating shortstrings
	PoolSize            int    // How many pre-generated shortstrings to keep ready
}

var AppConfig *Config

// LoadConfig loads configuration from environment variables.
// It looks for a .env file in the current directory for development convenience.
func LoadConfig() error {
	// Attempt to load .env file, but don't fail if it's not there (for production)
	_ = godotenv.Load()

	AppConfig = &Config{
		ServerPort:          getEnv("SERVER_PORT", ":8080"),
		DatabaseURL:         getEnv("DATABASE_URL", ""),
		AllowedDomains:      getEnv("ALLOWED_DOMAINS", ""),
		ShortStringFormat:   getEnv("SHORTSTR_FORMAT", shortstr.DefaultFormat),
		IncludeChecksum:     getEnvAsBool("SHORTSTR_CHECKSUM", true),
		MaxGenerateAttempts: getEnvAsInt("MAX_GENERATE_ATTEMPTS", 5),
		PoolWorkerCount:     getEnvAsInt("POOL_WORKER_COUNT", 3),
		PoolSize:            getEnvAsInt("POOL_SIZE", 100),
	}

	if AppConfig.DatabaseURL == "" {
		log.Fatal("DATABASE_URL environment variable is required")
	}

	if err := shortstr.CheckFormat(AppConfig.ShortStringFormat); err != nil {
		log.Fatalf("SHORTSTR_FORMAT is not a valid shortstring format: %v", err)
	}

	return nil
}

func getEnv(key string, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil || parsed <= 0 {
		log.Printf("Invalid value %q for %s, using default %d", value, key, fallback)
		return fallback
	}
	return parsed
}

func getEnvAsBool(key string, fallback bool) bool {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		log.Printf("Invalid value %q for %s, using default %t", value, key, fallback)
		return fallback
	}
	return parsed
}
