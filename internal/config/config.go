package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type AppConfig struct {
	// HuggingFace credentials for the optional text generator. An empty key
	// means template-only responses.
	HuggingFaceAPIKey string
	HuggingFaceModel  string

	// DatabaseURL for the Postgres history store. Empty falls back to the
	// in-memory store.
	DatabaseURL string

	// DataPath points at a JSON float-profile file. Absent or unreadable
	// triggers the synthetic dataset.
	DataPath string

	// GenerateTimeout bounds a single remote text-generation call.
	GenerateTimeout time.Duration

	// History retention and cleanup cadence.
	HistoryMaxAge   time.Duration
	CleanupInterval time.Duration
	HistoryLimit    int

	Port string
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}
	cfg := &AppConfig{}

	cfg.HuggingFaceAPIKey = os.Getenv("HUGGINGFACE_API_KEY")
	cfg.HuggingFaceModel = os.Getenv("HUGGINGFACE_MODEL")
	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	cfg.DataPath = getenvDefault("ARGO_DATA_PATH", "data/sample_argo.json")

	timeoutStr := getenvDefault("GENERATE_TIMEOUT", "20s")
	timeout, err := time.ParseDuration(timeoutStr)
	if err != nil {
		return nil, fmt.Errorf("invalid GENERATE_TIMEOUT: %w", err)
	}
	cfg.GenerateTimeout = timeout

	maxAgeStr := getenvDefault("HISTORY_MAX_AGE", "720h") // 30 days
	maxAge, err := time.ParseDuration(maxAgeStr)
	if err != nil {
		return nil, fmt.Errorf("invalid HISTORY_MAX_AGE: %w", err)
	}
	cfg.HistoryMaxAge = maxAge

	cleanupStr := getenvDefault("CLEANUP_INTERVAL", "24h")
	cleanup, err := time.ParseDuration(cleanupStr)
	if err != nil {
		return nil, fmt.Errorf("invalid CLEANUP_INTERVAL: %w", err)
	}
	cfg.CleanupInterval = cleanup

	cfg.HistoryLimit = getenvInt("HISTORY_LIMIT", 50)
	cfg.Port = getenvDefault("PORT", "8080")

	return cfg, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
	}
	return def
}
