// Package config handles configuration loading and validation for planloom.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/planloom/planloom/internal/ai"
)

// DefaultModel is used when neither config file nor environment names one.
const DefaultModel = "gemini-2.5-flash"

// Config holds the application configuration.
type Config struct {
	APIKey  string `yaml:"api_key"`
	Model   string `yaml:"model"`
	BaseURL string `yaml:"base_url"`

	LogLevel string `yaml:"log_level"`
	LogFile  string `yaml:"log_file"`
}

// DefaultPath returns the default config file location.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "planloom", "config.yaml")
}

// Load reads the config file at path, then applies environment overrides and
// defaults. A missing file is not an error; environment alone can configure
// everything.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
			// fall through to env + defaults
		case err != nil:
			return nil, fmt.Errorf("failed to read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config: %w", err)
			}
		}
	}

	applyEnv(cfg)
	applyDefaults(cfg)

	return cfg, nil
}

// applyEnv lets environment variables override file values.
func applyEnv(cfg *Config) {
	if v := os.Getenv("PLANLOOM_API_KEY"); v != "" {
		cfg.APIKey = v
	} else if v := os.Getenv("GEMINI_API_KEY"); v != "" && cfg.APIKey == "" {
		cfg.APIKey = v
	}
	if v := os.Getenv("PLANLOOM_MODEL"); v != "" {
		cfg.Model = v
	}
	if v := os.Getenv("PLANLOOM_BASE_URL"); v != "" {
		cfg.BaseURL = v
	}
	if v := os.Getenv("PLANLOOM_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("PLANLOOM_LOG_FILE"); v != "" {
		cfg.LogFile = v
	}
}

func applyDefaults(cfg *Config) {
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = ai.DefaultBaseURL
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
}

// Validate checks that the config is usable for plan generation.
func (c *Config) Validate() error {
	if c.APIKey == "" {
		return errors.New("no API key configured. Set PLANLOOM_API_KEY or add api_key to the config file")
	}
	return nil
}
