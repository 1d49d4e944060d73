package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testConfig struct {
	BaseURL  string `env:"TEST_API_BASE_URL"`
	LogLevel string `env:"TEST_LOG_LEVEL" envDefault:"info"`
	PageSize int    `env:"TEST_PAGE_SIZE" envDefault:"12"`
}

func TestLoad_Defaults(t *testing.T) {
	var cfg testConfig
	require.NoError(t, Load(&cfg))

	assert.Empty(t, cfg.BaseURL)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 12, cfg.PageSize)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("TEST_API_BASE_URL", "https://fakestoreapi.com")
	t.Setenv("TEST_LOG_LEVEL", "debug")
	t.Setenv("TEST_PAGE_SIZE", "24")

	var cfg testConfig
	require.NoError(t, Load(&cfg))

	assert.Equal(t, "https://fakestoreapi.com", cfg.BaseURL)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 24, cfg.PageSize)
}

func TestLoad_InvalidValue(t *testing.T) {
	t.Setenv("TEST_PAGE_SIZE", "not-a-number")

	var cfg testConfig
	err := Load(&cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config")
}
