// Package config loads service configuration from the environment,
// with optional .env file support.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all runtime configuration for the service.
type Config struct {
	// OpenAI
	OpenAIAPIKey   string
	OpenAIBaseURL  string
	LLMModel       string
	EmbeddingModel string

	// Quotation API
	QuoteAPIKey     string
	QuoteAPIBaseURL string

	// Data locations
	DataDir    string
	FAQFile    string
	OrdersCSV  string
	StorageDir string
	UploadDir  string

	// Index parameters
	CollectionName string
	ChunkSize      int
	ChunkOverlap   int
	TopK           int

	// HTTP
	ListenAddr string
}

// Load reads configuration from the environment. A .env file in the
// working directory is loaded first when present.
func Load() (*Config, error) {
	// Missing .env is fine, real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := &Config{
		OpenAIAPIKey:    os.Getenv("OPENAI_API_KEY"),
		OpenAIBaseURL:   os.Getenv("OPENAI_BASE_URL"),
		LLMModel:        getenv("LLM_MODEL", "gpt-4o"),
		EmbeddingModel:  getenv("EMBEDDING_MODEL", "text-embedding-3-small"),
		QuoteAPIKey:     os.Getenv("QUOTE_API_KEY"),
		QuoteAPIBaseURL: getenv("QUOTE_API_BASE_URL", "https://api.drivemybox.example.com"),
		DataDir:         getenv("DATA_DIR", "data"),
		StorageDir:      getenv("STORAGE_DIR", "storage"),
		UploadDir:       getenv("UPLOAD_DIR", "temp_uploads"),
		CollectionName:  getenv("COLLECTION_NAME", "eurogate_docs"),
		ChunkSize:       getenvInt("CHUNK_SIZE", 1024),
		ChunkOverlap:    getenvInt("CHUNK_OVERLAP", 200),
		TopK:            getenvInt("TOP_K", 5),
		ListenAddr:      getenv("LISTEN_ADDR", ":8080"),
	}

	cfg.FAQFile = getenv("FAQ_FILE", filepath.Join(cfg.DataDir, "Solutions.json"))
	cfg.OrdersCSV = getenv("ORDERS_CSV", filepath.Join(cfg.DataDir, "orders.csv"))

	if cfg.OpenAIAPIKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY is required")
	}
	if cfg.QuoteAPIKey == "" {
		return nil, fmt.Errorf("QUOTE_API_KEY is required")
	}

	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
