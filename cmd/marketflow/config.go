package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds cmd/marketflow's configuration, loaded from environment
// variables (a .env file is read first, if present).
type Config struct {
	LogLevel string // debug, info, warn, error
	LogJSON  bool

	Provider string
	Model    string

	AnthropicKey string
	OpenAIKey    string
	GoogleKey    string

	MaxMapConcurrency int
	InterpretTimeout  time.Duration
	PriceCacheTTL     time.Duration
	PriceSourceURL    string

	ServerName    string
	ServerVersion string
}

// LoadConfig loads configuration from environment variables.
func LoadConfig() (*Config, error) {
	godotenv.Load()

	cfg := &Config{
		LogLevel: getEnvOrDefault("MARKETFLOW_LOG_LEVEL", "info"),
		LogJSON:  getEnvBoolOrDefault("MARKETFLOW_LOG_JSON", false),

		Provider: os.Getenv("MARKETFLOW_PROVIDER"),
		Model:    os.Getenv("MARKETFLOW_MODEL"),

		AnthropicKey: os.Getenv("ANTHROPIC_API_KEY"),
		OpenAIKey:    os.Getenv("OPENAI_API_KEY"),
		GoogleKey:    os.Getenv("GOOGLE_API_KEY"),

		MaxMapConcurrency: getEnvIntOrDefault("MARKETFLOW_MAX_MAP_CONCURRENCY", 8),
		InterpretTimeout:  getEnvDurationOrDefault("MARKETFLOW_INTERPRET_TIMEOUT", 2*time.Minute),
		PriceCacheTTL:     getEnvDurationOrDefault("MARKETFLOW_PRICE_CACHE_TTL", time.Minute),
		PriceSourceURL:    os.Getenv("MARKETFLOW_PRICE_SOURCE_URL"),

		ServerName:    getEnvOrDefault("MARKETFLOW_SERVER_NAME", "marketflow"),
		ServerVersion: getEnvOrDefault("MARKETFLOW_SERVER_VERSION", "1.0.0"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks that required configuration is present.
func (c *Config) Validate() error {
	if c.Provider == "" {
		return fmt.Errorf("MARKETFLOW_PROVIDER is required (anthropic, openai, or google)")
	}

	switch c.Provider {
	case "anthropic":
		if c.AnthropicKey == "" {
			return fmt.Errorf("ANTHROPIC_API_KEY is required for anthropic provider")
		}
	case "openai":
		if c.OpenAIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY is required for openai provider")
		}
	case "google":
		if c.GoogleKey == "" {
			return fmt.Errorf("GOOGLE_API_KEY is required for google provider")
		}
	default:
		return fmt.Errorf("unknown provider: %s (must be anthropic, openai, or google)", c.Provider)
	}

	if c.MaxMapConcurrency <= 0 {
		return fmt.Errorf("MARKETFLOW_MAX_MAP_CONCURRENCY must be positive")
	}

	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getAPIKey(cfg *Config) string {
	switch cfg.Provider {
	case "anthropic":
		return cfg.AnthropicKey
	case "openai":
		return cfg.OpenAIKey
	case "google":
		return cfg.GoogleKey
	default:
		return ""
	}
}
