package config

import (
	"fmt"

	pkgconfig "github.com/gabriel447/ProductExplorer/pkg/config"
)

// Config holds all configuration for the explorer application.
type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	// HTTP server
	HTTPPort int `env:"HTTP_PORT" envDefault:"8080"`

	// Remote catalog API. Deliberately has no default: when unset, catalog
	// calls fail fast with a configuration error instead of hitting an
	// undefined host.
	APIBaseURL string `env:"API_BASE_URL"`

	// Redis (cart persistence)
	RedisAddr      string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPass      string `env:"REDIS_PASSWORD" envDefault:""`
	RedisDB        int    `env:"REDIS_DB" envDefault:"0"`
	CartStorageKey string `env:"CART_STORAGE_KEY" envDefault:"productexplorer:cart"`

	// Catalog defaults
	PageSize int `env:"CATALOG_PAGE_SIZE" envDefault:"12"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := pkgconfig.Load(cfg); err != nil {
		return nil, fmt.Errorf("load explorer config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// validate checks configuration invariants.
func (c *Config) validate() error {
	if c.HTTPPort < 1 || c.HTTPPort > 65535 {
		return fmt.Errorf("invalid HTTP port: %d", c.HTTPPort)
	}
	if c.PageSize < 1 {
		return fmt.Errorf("invalid catalog page size: %d", c.PageSize)
	}
	return nil
}
