package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// Config holds all settings for the pipeline and the HTTP service.
type Config struct {
	// Pipeline inputs and output
	SourcePDF    string
	TemplatePath string
	MappingPath  string
	OutputPath   string

	// Intermediate artifacts
	IntermediateDir string
	IndexPath       string
	ForceReindex    bool
	Resume          bool

	// Synthesis gateway
	APIKey      string
	Model       string
	RateDelay   time.Duration
	SourceLimit int

	// HTTP service
	Port           string
	ServerAPIKey   string
	MaxUploadBytes int64
}

// Load builds a Config from environment variables with defaults.
// The CLI binary layers flags on top via LoadFromFlags.
func Load() Config {
	cfg := Config{
		SourcePDF:    os.Getenv("DSRDRAFT_SOURCE"),
		TemplatePath: os.Getenv("DSRDRAFT_TEMPLATE"),
		MappingPath:  os.Getenv("DSRDRAFT_MAPPING"),
		OutputPath:   os.Getenv("DSRDRAFT_OUTPUT"),

		IntermediateDir: envOr("DSRDRAFT_INTERMEDIATE_DIR", "data/intermediate"),
		IndexPath:       os.Getenv("DSRDRAFT_INDEX_PATH"),
		ForceReindex:    envBool("DSRDRAFT_FORCE_REINDEX", false),

		APIKey:      os.Getenv("ANTHROPIC_API_KEY"),
		Model:       envOr("ANTHROPIC_MODEL", "claude-sonnet-4-5-20250929"),
		RateDelay:   envDuration("DSRDRAFT_RATE_DELAY", 500*time.Millisecond),
		SourceLimit: envInt("DSRDRAFT_SOURCE_LIMIT", 10000),

		Port:           envOr("PORT", "8090"),
		ServerAPIKey:   os.Getenv("DSRDRAFT_API_KEY"),
		MaxUploadBytes: envInt64("MAX_UPLOAD_BYTES", 104857600), // 100MB
	}

	if cfg.RateDelay < 0 {
		cfg.RateDelay = 0
	}
	if cfg.SourceLimit <= 0 {
		cfg.SourceLimit = 10000
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 104857600
	}
	if cfg.IndexPath == "" {
		cfg.IndexPath = filepath.Join(cfg.IntermediateDir, "ib_index.json")
	}

	return cfg
}

// ValidatePipeline checks that every required input exists before any
// stage runs. A missing file aborts the whole run up front.
func (c Config) ValidatePipeline() error {
	for _, in := range []struct{ name, path string }{
		{"source PDF", c.SourcePDF},
		{"template", c.TemplatePath},
		{"mapping file", c.MappingPath},
	} {
		if in.path == "" {
			return fmt.Errorf("%s path is required", in.name)
		}
		if _, err := os.Stat(in.path); err != nil {
			return fmt.Errorf("%s not found: %s", in.name, in.path)
		}
	}
	if c.OutputPath == "" {
		return fmt.Errorf("output path is required")
	}
	return nil
}

// ValidateServer checks the settings the HTTP service needs.
func (c Config) ValidateServer() error {
	if c.ServerAPIKey == "" {
		return fmt.Errorf("DSRDRAFT_API_KEY is required")
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

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
