package logging

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in       string
		expected zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"DEBUG", zerolog.DebugLevel},
		{"warning", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"off", zerolog.Disabled},
		{"", zerolog.InfoLevel},
		{"verbose", zerolog.InfoLevel},
	}
	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.expected {
			t.Errorf("ParseLevel(%q): expected %v, got %v", tt.in, tt.expected, got)
		}
	}
}

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "json")
	t.Setenv("LOG_CALLER", "true")

	cfg := ConfigFromEnv()
	assert.Equal(t, "debug", cfg.Level)
	assert.Equal(t, "json", cfg.Format)
	assert.True(t, cfg.Caller)
}

func TestInit_JSONOutput(t *testing.T) {
	var buf bytes.Buffer
	Init(Config{Level: "info", Format: "json", Output: &buf})
	t.Cleanup(func() { Init(DefaultConfig()) })

	Debug().Msg("hidden")
	Info().Str("period", "2024-01").Msg("bucketed")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "bucketed", entry["message"])
	assert.Equal(t, "2024-01", entry["period"])
}

func TestAdapter(t *testing.T) {
	var buf bytes.Buffer
	prev := zerolog.GlobalLevel()
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	t.Cleanup(func() { zerolog.SetGlobalLevel(prev) })

	a := NewAdapter(NewTestLogger(&buf))
	a.Info("fetched", "sessions", 4)
	a.Error("fetch failed", errors.New("boom"), "attempt", 2)

	out := buf.String()
	assert.Contains(t, out, `"sessions":4`)
	assert.Contains(t, out, `"error":"boom"`)
	assert.Contains(t, out, `"attempt":2`)
}
