package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearMarketflowEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"MARKETFLOW_PROVIDER", "MARKETFLOW_MODEL", "MARKETFLOW_LOG_LEVEL",
		"MARKETFLOW_LOG_JSON", "MARKETFLOW_MAX_MAP_CONCURRENCY",
		"MARKETFLOW_INTERPRET_TIMEOUT", "MARKETFLOW_PRICE_CACHE_TTL",
		"MARKETFLOW_PRICE_SOURCE_URL", "ANTHROPIC_API_KEY", "OPENAI_API_KEY",
		"GOOGLE_API_KEY",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadConfigAppliesDefaults(t *testing.T) {
	clearMarketflowEnv(t)
	t.Setenv("MARKETFLOW_PROVIDER", "anthropic")
	t.Setenv("ANTHROPIC_API_KEY", "sk-test")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.LogLevel)
	assert.False(t, cfg.LogJSON)
	assert.Equal(t, 8, cfg.MaxMapConcurrency)
	assert.Equal(t, 2*time.Minute, cfg.InterpretTimeout)
	assert.Equal(t, time.Minute, cfg.PriceCacheTTL)
	assert.Equal(t, "marketflow", cfg.ServerName)
}

func TestLoadConfigRequiresProvider(t *testing.T) {
	clearMarketflowEnv(t)
	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestLoadConfigRequiresProviderKey(t *testing.T) {
	clearMarketflowEnv(t)
	t.Setenv("MARKETFLOW_PROVIDER", "openai")
	_, err := LoadConfig()
	assert.ErrorContains(t, err, "OPENAI_API_KEY")
}

func TestLoadConfigRejectsUnknownProvider(t *testing.T) {
	clearMarketflowEnv(t)
	t.Setenv("MARKETFLOW_PROVIDER", "carrier-pigeon")
	_, err := LoadConfig()
	assert.ErrorContains(t, err, "unknown provider")
}

func TestLoadConfigRejectsNonPositiveConcurrency(t *testing.T) {
	clearMarketflowEnv(t)
	t.Setenv("MARKETFLOW_PROVIDER", "anthropic")
	t.Setenv("ANTHROPIC_API_KEY", "sk-test")
	t.Setenv("MARKETFLOW_MAX_MAP_CONCURRENCY", "0")
	_, err := LoadConfig()
	assert.ErrorContains(t, err, "MARKETFLOW_MAX_MAP_CONCURRENCY")
}

func TestGetAPIKeySelectsByProvider(t *testing.T) {
	cfg := &Config{Provider: "google", GoogleKey: "g-key", OpenAIKey: "o-key"}
	assert.Equal(t, "g-key", getAPIKey(cfg))
}
