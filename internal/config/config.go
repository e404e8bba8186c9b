package config

import (
	"fmt"
	"os"
	"strconv"
)

type Config struct {
	Port string

	// Auth. Empty disables bearer-token auth on the API.
	APIKey string

	// Scrape config file (YAML). Empty uses built-in defaults.
	ScrapeConfigPath string
	ScrapeOnStart    bool

	// Local ingestion. Empty disables the startup directory load.
	IngestDir string

	// Persistence
	OutputDir  string
	RenderHTML bool

	// Chunking defaults
	DefaultChunkSize    int
	DefaultChunkOverlap int

	// Request limits
	MaxBodyBytes int64
}

func Load() Config {
	cfg := Config{
		Port: envOr("PORT", "8091"),

		APIKey: os.Getenv("MDHARVEST_API_KEY"),

		ScrapeConfigPath: os.Getenv("SCRAPE_CONFIG"),
		ScrapeOnStart:    envBool("SCRAPE_ON_START", false),

		IngestDir: os.Getenv("INGEST_DIR"),

		OutputDir:  envOr("OUTPUT_DIR", "scraped_documents"),
		RenderHTML: envBool("RENDER_HTML", false),

		DefaultChunkSize:    envInt("DEFAULT_CHUNK_SIZE", 500),
		DefaultChunkOverlap: envInt("DEFAULT_CHUNK_OVERLAP", 50),

		MaxBodyBytes: envInt64("MAX_BODY_BYTES", 10485760), // 10MB
	}

	if cfg.DefaultChunkSize <= 0 {
		cfg.DefaultChunkSize = 500
	}
	if cfg.DefaultChunkOverlap < 0 {
		cfg.DefaultChunkOverlap = 50
	}
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = 10485760
	}

	return cfg
}

func (c Config) Validate() error {
	if c.DefaultChunkOverlap >= c.DefaultChunkSize {
		return fmt.Errorf("DEFAULT_CHUNK_OVERLAP (%d) must be smaller than DEFAULT_CHUNK_SIZE (%d)",
			c.DefaultChunkOverlap, c.DefaultChunkSize)
	}
	if c.OutputDir == "" {
		return fmt.Errorf("OUTPUT_DIR must not be empty")
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}
