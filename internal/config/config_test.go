package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFrom_Defaults(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "missing.toml"))
	require.NoError(t, err)

	assert.Equal(t, DefaultBaseURL, cfg.BaseURL)
	assert.Equal(t, 180, cfg.WindowDays)
	assert.Equal(t, 10000, cfg.Limit)
	assert.Equal(t, 30*time.Second, cfg.Timeout)
	assert.Equal(t, 8080, cfg.Web.Port)
	assert.NoError(t, cfg.Validate())
}

func TestLoadFrom_FileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
api_key = "file-key"
app_id = "app-1"
window_days = 90
timeout = "5s"

[otel]
enabled = true
endpoint = "localhost:4317"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	t.Setenv("CHURNBOARD_WINDOW_DAYS", "30")
	t.Setenv("CHURNBOARD_OTEL_INSECURE", "true")

	cfg, err := LoadFrom(path)
	require.NoError(t, err)

	assert.Equal(t, "file-key", cfg.APIKey)
	assert.Equal(t, "app-1", cfg.AppID)
	assert.Equal(t, 30, cfg.WindowDays, "environment overrides the file")
	assert.Equal(t, 5*time.Second, cfg.Timeout)
	assert.True(t, cfg.OTEL.Enabled)
	assert.True(t, cfg.OTEL.Insecure)
	assert.Equal(t, "localhost:4317", cfg.OTEL.Endpoint)
	assert.Equal(t, 10000, cfg.Limit, "unset values keep their defaults")
}

func TestLoadFrom_InvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("window_days = ["), 0o600))

	_, err := LoadFrom(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"zero window", func(c *Config) { c.WindowDays = 0 }, true},
		{"limit too high", func(c *Config) { c.Limit = MaxLimit + 1 }, true},
		{"no base url without input", func(c *Config) { c.BaseURL = "" }, true},
		{"no base url with input", func(c *Config) { c.BaseURL = ""; c.Input = "sessions.json" }, false},
		{"otel without endpoint", func(c *Config) { c.OTEL.Enabled = true }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestMaskedAPIKey(t *testing.T) {
	tests := []struct {
		key  string
		want string
	}{
		{"", "(not set)"},
		{"abc", "***"},
		{"sk_live_12345678", "************5678"},
	}
	for _, tt := range tests {
		cfg := Config{APIKey: tt.key}
		assert.Equal(t, tt.want, cfg.MaskedAPIKey())
	}
}
