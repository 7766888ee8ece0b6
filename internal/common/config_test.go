package common

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaultConfig(t *testing.T) {
	config := NewDefaultConfig()

	assert.Equal(t, "development", config.Environment)
	assert.Equal(t, 8080, config.Server.Port)
	assert.Equal(t, "gemini-2.5-flash", config.Clients.Gemini.Model)
	assert.Equal(t, "coingecko", config.Clients.MarketData.Provider)
	assert.False(t, config.IsProduction())
}

func TestLoadConfigMergesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "folio.toml")
	content := `
environment = "production"

[server]
port = 9090

[clients.gemini]
model = "gemini-2.5-pro"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	config, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "production", config.Environment)
	assert.True(t, config.IsProduction())
	assert.Equal(t, 9090, config.Server.Port)
	assert.Equal(t, "gemini-2.5-pro", config.Clients.Gemini.Model)
	// Untouched values keep their defaults.
	assert.Equal(t, "0.0.0.0", config.Server.Host)
	assert.Equal(t, 0.4, config.Clients.Gemini.Temperature)
}

func TestLoadConfigSkipsMissingFiles(t *testing.T) {
	config, err := LoadConfig("does/not/exist.toml")
	require.NoError(t, err)
	assert.Equal(t, 8080, config.Server.Port)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("FOLIO_ENV", "production")
	t.Setenv("FOLIO_PORT", "7777")
	t.Setenv("FOLIO_MARKET_PROVIDER", "TwelveData")

	config, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "production", config.Environment)
	assert.Equal(t, 7777, config.Server.Port)
	assert.Equal(t, "twelvedata", config.Clients.MarketData.Provider)
}

func TestResolveAPIKey(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "env-key")

	key, err := ResolveAPIKey("gemini_api_key", "config-key")
	require.NoError(t, err)
	assert.Equal(t, "env-key", key)

	key, err = ResolveAPIKey("twelvedata_api_key", "fallback")
	require.NoError(t, err)
	assert.Equal(t, "fallback", key)

	_, err = ResolveAPIKey("twelvedata_api_key", "")
	assert.Error(t, err)
}

func TestGetTimeout(t *testing.T) {
	c := MarketDataConfig{Timeout: "5s"}
	assert.Equal(t, "5s", c.GetTimeout().String())

	c.Timeout = "garbage"
	assert.Equal(t, "30s", c.GetTimeout().String())
}
