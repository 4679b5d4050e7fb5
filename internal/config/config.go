package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application.
type Config struct {
	LLMBaseURL   string
	LLMModelName string
	LLMAPIKey    string
	LLMTimeout   time.Duration

	EmbeddingBaseURL   string
	EmbeddingModelName string
	VectorSize         int

	DBPath string

	QdrantURL           string
	KnowledgeCollection string
	ResourceCollection  string
	SimilarityThreshold float32
	SearchLimit         int

	APIPort   string
	LogLevel  slog.Level
	LogFormat string
}

// Load reads configuration from environment variables and returns a Config struct.
// It applies defaults for optional fields and validates required fields.
// If a .env file exists in the current directory or project root, it is loaded
// automatically; environment variables already set take precedence.
func Load() (*Config, error) {
	_ = godotenv.Load() // Try current directory

	// Walk up to find a .env at the project root (where go.mod lives).
	wd, err := os.Getwd()
	if err == nil {
		dir := wd
		for i := 0; i < 5; i++ {
			envPath := filepath.Join(dir, ".env")
			if _, err := os.Stat(envPath); err == nil {
				_ = godotenv.Load(envPath)
				break
			}
			parent := filepath.Dir(dir)
			if parent == dir {
				break
			}
			dir = parent
		}
	}

	cfg := &Config{
		LLMBaseURL:          getEnv("LLM_BASE_URL", "http://localhost:8080"),
		LLMModelName:        getEnv("LLM_MODEL", "gemini-1.5-flash"),
		LLMAPIKey:           getEnv("LLM_API_KEY", "dummy-key"),
		EmbeddingBaseURL:    getEnv("EMBEDDING_BASE_URL", "http://localhost:8081"),
		EmbeddingModelName:  getEnv("EMBEDDING_MODEL_NAME", "text-embedding-004"),
		DBPath:              getEnv("DB_PATH", "./data/skillbase.db"),
		QdrantURL:           getEnv("QDRANT_URL", "http://localhost:6333"),
		KnowledgeCollection: getEnv("QDRANT_KNOWLEDGE_COLLECTION", "knowledge"),
		ResourceCollection:  getEnv("QDRANT_RESOURCE_COLLECTION", "resources"),
		APIPort:             getEnv("API_PORT", "9000"),
		LogFormat:           getEnv("LOG_FORMAT", "text"),
	}

	// Every external call carries a bounded timeout; exceeding it is treated
	// the same as a failed upstream response.
	timeout, err := time.ParseDuration(getEnv("LLM_TIMEOUT", "30s"))
	if err != nil {
		return nil, fmt.Errorf("LLM_TIMEOUT must be a valid duration: %w", err)
	}
	if timeout <= 0 {
		return nil, fmt.Errorf("LLM_TIMEOUT must be greater than 0")
	}
	cfg.LLMTimeout = timeout

	// VECTOR_SIZE must match the output dimension of the embedding model.
	// If the size changes, the Qdrant collections must be recreated.
	vectorSizeStr := getEnv("VECTOR_SIZE", "")
	if vectorSizeStr == "" {
		return nil, fmt.Errorf("VECTOR_SIZE is required")
	}
	vectorSize, err := strconv.Atoi(vectorSizeStr)
	if err != nil {
		return nil, fmt.Errorf("VECTOR_SIZE must be a valid integer: %w", err)
	}
	if vectorSize <= 0 {
		return nil, fmt.Errorf("VECTOR_SIZE must be greater than 0")
	}
	cfg.VectorSize = vectorSize

	threshold, err := strconv.ParseFloat(getEnv("SIMILARITY_THRESHOLD", "0.7"), 32)
	if err != nil {
		return nil, fmt.Errorf("SIMILARITY_THRESHOLD must be a valid float: %w", err)
	}
	if threshold < -1 || threshold > 1 {
		return nil, fmt.Errorf("SIMILARITY_THRESHOLD must be within [-1, 1]")
	}
	cfg.SimilarityThreshold = float32(threshold)

	limit, err := strconv.Atoi(getEnv("SEARCH_LIMIT", "5"))
	if err != nil {
		return nil, fmt.Errorf("SEARCH_LIMIT must be a valid integer: %w", err)
	}
	if limit <= 0 {
		return nil, fmt.Errorf("SEARCH_LIMIT must be greater than 0")
	}
	cfg.SearchLimit = limit

	switch getEnv("LOG_LEVEL", "info") {
	case "debug":
		cfg.LogLevel = slog.LevelDebug
	case "info":
		cfg.LogLevel = slog.LevelInfo
	case "warn":
		cfg.LogLevel = slog.LevelWarn
	case "error":
		cfg.LogLevel = slog.LevelError
	default:
		return nil, fmt.Errorf("LOG_LEVEL must be one of debug, info, warn, error")
	}

	// Create the data directory if it doesn't exist (for the SQLite file).
	dataDir := filepath.Dir(cfg.DBPath)
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	return cfg, nil
}

// getEnv gets an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
