// Package config provides configuration management for the splitdash TUI.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Prefix is the environment prefix of every TUI setting.
const Prefix = "SPLITDASH"

// Config holds the TUI configuration.
type Config struct {
	// Backend API
	APIURL    string        `envconfig:"API_URL" default:"http://localhost:5000"`
	APIKey    string        `envconfig:"API_KEY"`
	PromptKey bool          `envconfig:"PROMPT_KEY" default:"false"`
	Timeout   time.Duration `envconfig:"TIMEOUT" default:"30s"`

	// Split addressing
	BaseDomain string `envconfig:"BASE_DOMAIN" default:"localhost"`
	Scheme     string `envconfig:"SCHEME" default:"http"`

	// Breakpoint is the terminal width, in columns, from which splits are
	// previewed inline instead of shown as a card.
	Breakpoint int `envconfig:"BREAKPOINT" default:"100"`

	// UI preferences
	StartPath    string `envconfig:"START_PATH" default:"/"`
	SettingsPath string `envconfig:"SETTINGS_PATH"`
	LogFile      string `envconfig:"LOG_FILE"`
	LogLevel     string `envconfig:"LOG_LEVEL" default:"info"`
}

// Load reads the configuration from SPLITDASH_* environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(Prefix, &cfg); err != nil {
		return nil, fmt.Errorf("process env: %w", err)
	}

	if cfg.SettingsPath == "" {
		cfg.SettingsPath = DefaultSettingsPath()
	}
	cfg.APIURL = strings.TrimRight(cfg.APIURL, "/")

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the configuration for consistency.
func (c *Config) Validate() error {
	if c.APIURL == "" {
		return fmt.Errorf("%s_API_URL is required", Prefix)
	}
	if c.Scheme != "http" && c.Scheme != "https" {
		return fmt.Errorf("%s_SCHEME must be http or https, got %q", Prefix, c.Scheme)
	}
	if c.Breakpoint <= 0 {
		return fmt.Errorf("%s_BREAKPOINT must be positive", Prefix)
	}
	if !strings.HasPrefix(c.StartPath, "/") {
		return fmt.Errorf("%s_START_PATH must start with /", Prefix)
	}
	return nil
}

// DefaultSettingsPath returns the settings file in the user config directory.
func DefaultSettingsPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "splitdash", "settings.yaml")
}
