// ABOUTME: Environment-based configuration for the leavectl client
// ABOUTME: Loads settings via caarlos0/env with optional .env file support

package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds all client settings loaded from environment variables.
//
// A .env file in the working directory is read first when present, so
// local development does not require exporting variables by hand.
type Config struct {
	// APIURL is the base URL of the leave-management API, including any
	// path prefix the deployment mounts it under.
	APIURL string `env:"LEAVECTL_API_URL" envDefault:"http://localhost:8000/api"`

	// PageSize is the page size used for record listings.
	PageSize int `env:"LEAVECTL_PAGE_SIZE" envDefault:"20"`

	// ConfigDir overrides the directory used for the token file and
	// debug log. Empty means the XDG default.
	ConfigDir string `env:"LEAVECTL_CONFIG_DIR"`

	// Debug enables the TUI debug log file.
	Debug bool `env:"LEAVECTL_DEBUG" envDefault:"false"`
}

// Load reads configuration from the environment, applying guardrails.
func Load() (*Config, error) {
	// Missing .env is fine; only explicit variables are required.
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	cfg.Sanitize()
	return &cfg, nil
}

// Sanitize applies guardrails to values loaded from the environment.
func (c *Config) Sanitize() {
	c.APIURL = strings.TrimRight(strings.TrimSpace(c.APIURL), "/")
	if c.APIURL == "" {
		c.APIURL = "http://localhost:8000/api"
	}
	if c.PageSize < 1 {
		c.PageSize = 20
	}
	if c.PageSize > 100 {
		c.PageSize = 100
	}
	if c.ConfigDir == "" {
		c.ConfigDir = DefaultConfigDir()
	}
}

// DefaultConfigDir returns the default config directory following XDG spec.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "leavectl")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "leavectl")
}
