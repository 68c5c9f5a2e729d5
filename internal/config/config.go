// ABOUTME: Centralized configuration for the sponsorship coach
// ABOUTME: Loads from environment variables with validation and defaults
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/harper/tap-coach/internal/charm"
)

// Config holds all configuration for the coach
type Config struct {
	// Charm settings
	CharmHost   string
	CharmDBName string
	AutoSync    bool

	// OpenAI settings
	OpenAIKey         string
	OpenAIBaseURL     string
	ChatModel         string
	Temperature       float64
	MaxTokens         int
	CompletionTimeout time.Duration // 0 disables the per-call deadline
	MaxRetries        int
	RetryDelay        time.Duration

	// Retrieval settings
	TopK           int
	CorpusManifest string
	CorpusDir      string

	// Lookup integrations
	HunterAPIKey  string
	HunterBaseURL string
	ApifyToken    string
	ApifyBaseURL  string
	LookupTimeout time.Duration

	// Logging
	LogLevel string
	LogJSON  bool
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		CharmHost:         getEnv("CHARM_HOST", "cloud.charm.sh"),
		CharmDBName:       getEnv("COACH_DB", "tap-coach"),
		AutoSync:          getEnvBool("CHARM_AUTO_SYNC", false),
		OpenAIKey:         os.Getenv("OPENAI_API_KEY"),
		OpenAIBaseURL:     os.Getenv("OPENAI_BASE_URL"),
		ChatModel:         getEnv("COACH_OPENAI_MODEL", "gpt-4o-mini"),
		Temperature:       getEnvFloat("COACH_TEMPERATURE", 0.4),
		MaxTokens:         getEnvInt("COACH_MAX_TOKENS", 500),
		CompletionTimeout: getEnvDuration("COACH_COMPLETION_TIMEOUT", 60*time.Second),
		MaxRetries:        getEnvInt("COACH_MAX_RETRIES", 0),
		RetryDelay:        getEnvDuration("COACH_RETRY_DELAY", 2*time.Second),
		TopK:              getEnvInt("COACH_TOP_K", 3),
		CorpusManifest:    os.Getenv("COACH_CORPUS_MANIFEST"),
		CorpusDir:         getEnv("COACH_CORPUS_DIR", "data/modules"),
		HunterAPIKey:      os.Getenv("HUNTER_API_KEY"),
		HunterBaseURL:     os.Getenv("HUNTER_BASE_URL"),
		ApifyToken:        os.Getenv("APIFY_API_TOKEN"),
		ApifyBaseURL:      os.Getenv("APIFY_BASE_URL"),
		LookupTimeout:     getEnvDuration("COACH_LOOKUP_TIMEOUT", 30*time.Second),
		LogLevel:          getEnv("COACH_LOG_LEVEL", "warn"),
		LogJSON:           getEnvBool("COACH_LOG_JSON", false),
	}

	return cfg, cfg.Validate()
}

func (c *Config) Validate() error {
	if c.Temperature < 0 || c.Temperature > 2 {
		return fmt.Errorf("COACH_TEMPERATURE must be 0-2, got %f", c.Temperature)
	}
	if c.MaxTokens <= 0 {
		return fmt.Errorf("COACH_MAX_TOKENS must be positive, got %d", c.MaxTokens)
	}
	if c.CompletionTimeout < 0 {
		return fmt.Errorf("COACH_COMPLETION_TIMEOUT must not be negative, got %v", c.CompletionTimeout)
	}
	if c.MaxRetries < 0 || c.MaxRetries > 10 {
		return fmt.Errorf("COACH_MAX_RETRIES must be 0-10, got %d", c.MaxRetries)
	}
	if c.TopK < 1 || c.TopK > 10 {
		return fmt.Errorf("COACH_TOP_K must be 1-10, got %d", c.TopK)
	}
	return nil
}

// Charm returns the KV client configuration
func (c *Config) Charm() *charm.Config {
	return &charm.Config{
		Host:     c.CharmHost,
		DBName:   c.CharmDBName,
		AutoSync: c.AutoSync,
	}
}

// Helper functions
func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	return v == "true" || v == "1"
}

func getEnvInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvFloat(key string, defaultVal float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return defaultVal
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return defaultVal
}
