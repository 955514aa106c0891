// Package config resolves churnboard settings from defaults, an optional TOML
// file, and CHURNBOARD_* environment variables, in that order.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/kelseyhightower/envconfig"

	"github.com/emiliopalmerini/churnboard/internal/util"
)

const (
	EnvPrefix = "CHURNBOARD"

	DefaultBaseURL    = "https://api.churnkey.co/v1/data"
	DefaultWindowDays = 180
	DefaultLimit      = 10000
	DefaultTimeout    = 30 * time.Second
	DefaultPort       = 8080

	MaxLimit      = 10000
	MaxWindowDays = 3650
)

// Config is the effective configuration of one invocation.
type Config struct {
	APIKey     string        `toml:"api_key" envconfig:"API_KEY"`
	AppID      string        `toml:"app_id" envconfig:"APP_ID"`
	BaseURL    string        `toml:"base_url" envconfig:"BASE_URL"`
	Timeout    time.Duration `toml:"timeout" envconfig:"TIMEOUT"`
	WindowDays int           `toml:"window_days" envconfig:"WINDOW_DAYS"`
	Limit      int           `toml:"limit" envconfig:"LIMIT"`
	// Input, when set, reads sessions from a JSON file instead of the API.
	Input string `toml:"input" envconfig:"INPUT"`

	OTEL OTEL `toml:"otel" envconfig:"OTEL"`
	Web  Web  `toml:"web" envconfig:"WEB"`
}

// OTEL configures the OTLP run-metrics exporter.
type OTEL struct {
	Enabled  bool   `toml:"enabled" envconfig:"ENABLED"`
	Endpoint string `toml:"endpoint" envconfig:"ENDPOINT"`
	Insecure bool   `toml:"insecure" envconfig:"INSECURE"`
}

// Web configures the dashboard server.
type Web struct {
	Port int `toml:"port" envconfig:"PORT"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		BaseURL:    DefaultBaseURL,
		Timeout:    DefaultTimeout,
		WindowDays: DefaultWindowDays,
		Limit:      DefaultLimit,
		Web:        Web{Port: DefaultPort},
	}
}

// Path returns the default config file location.
func Path() (string, error) {
	dir, err := util.GetXDGConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// Load reads the default config file (if present) and the environment.
func Load() (*Config, error) {
	path, err := Path()
	if err != nil {
		return nil, err
	}
	return LoadFrom(path)
}

// LoadFrom is Load with an explicit file path. A missing file is not an error.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if _, err := toml.DecodeFile(path, &cfg); err != nil {
				return nil, fmt.Errorf("parse config %s: %w", path, err)
			}
		} else if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("stat config %s: %w", path, err)
		}
	}

	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("read environment: %w", err)
	}

	cfg.Input = util.ExpandHome(cfg.Input)
	return &cfg, nil
}

// Validate checks the bounds of the fetch parameters.
func (c *Config) Validate() error {
	var errs []error
	if c.WindowDays < 1 || c.WindowDays > MaxWindowDays {
		errs = append(errs, fmt.Errorf("window days must be between 1 and %d, got %d", MaxWindowDays, c.WindowDays))
	}
	if c.Limit < 1 || c.Limit > MaxLimit {
		errs = append(errs, fmt.Errorf("limit must be between 1 and %d, got %d", MaxLimit, c.Limit))
	}
	if c.Input == "" && c.BaseURL == "" {
		errs = append(errs, errors.New("base URL is required when no input file is given"))
	}
	if c.OTEL.Enabled && c.OTEL.Endpoint == "" {
		errs = append(errs, errors.New("otel endpoint is required when otel is enabled"))
	}
	if c.Web.Port < 0 || c.Web.Port > 65535 {
		errs = append(errs, fmt.Errorf("invalid web port %d", c.Web.Port))
	}
	return errors.Join(errs...)
}

// MaskedAPIKey shows only the last four characters of the API key.
func (c *Config) MaskedAPIKey() string {
	return mask(c.APIKey)
}

func mask(secret string) string {
	if secret == "" {
		return "(not set)"
	}
	if len(secret) <= 4 {
		return strings.Repeat("*", len(secret))
	}
	return strings.Repeat("*", len(secret)-4) + secret[len(secret)-4:]
}
