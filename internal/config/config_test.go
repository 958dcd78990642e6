package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, "openai", cfg.AIProvider)
	assert.Equal(t, "pt", cfg.DefaultLanguage)
	assert.Equal(t, 30*time.Second, cfg.ProviderTimeout)
	assert.Equal(t, 10, cfg.HistoryLimit)
	assert.Equal(t, "Clínica Espaço Vida", cfg.ClinicName)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("AI_PROVIDER", "Gemini")
	t.Setenv("AI_PROVIDER_TIMEOUT", "5s")
	t.Setenv("REDIS_TLS", "true")
	t.Setenv("HISTORY_LIMIT", "25")

	cfg := Load()

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "gemini", cfg.AIProvider, "provider name should be lowercased")
	assert.Equal(t, 5*time.Second, cfg.ProviderTimeout)
	assert.True(t, cfg.RedisTLS)
	assert.Equal(t, 25, cfg.HistoryLimit)
}

func TestLoadIgnoresInvalidValues(t *testing.T) {
	t.Setenv("HISTORY_LIMIT", "lots")
	t.Setenv("AI_PROVIDER_TIMEOUT", "soon")
	t.Setenv("REDIS_TLS", "sim")

	cfg := Load()

	assert.Equal(t, 10, cfg.HistoryLimit)
	assert.Equal(t, 30*time.Second, cfg.ProviderTimeout)
	assert.False(t, cfg.RedisTLS)
}
