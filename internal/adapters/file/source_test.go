package file

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emiliopalmerini/churnboard/internal/domain"
	"github.com/emiliopalmerini/churnboard/internal/ports"
)

const payload = `[
	{"id":"s1","createdAt":"2024-01-02","saveType":"DISCOUNT","customer":{"id":"C1","planPrice":2000}},
	{"id":"s2","createdAt":"2024-01-03","canceled":true,"customer":{"id":"C2","planPrice":1500}},
	{"id":"s3","createdAt":"2024-02-01","saveType":"ABANDON","canceled":true}
]`

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sessions.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestSource_FetchSessions(t *testing.T) {
	src := NewSource(writeFile(t, payload))

	sessions, err := src.FetchSessions(context.Background(), ports.FetchWindow{Limit: 10000})
	require.NoError(t, err)
	require.Len(t, sessions, 3)
	assert.Equal(t, "s3", sessions[2].ID)
}

func TestSource_HonoursLimit(t *testing.T) {
	src := NewSource(writeFile(t, payload))

	sessions, err := src.FetchSessions(context.Background(), ports.FetchWindow{Limit: 1})
	require.NoError(t, err)
	assert.Len(t, sessions, 1)
}

func TestSource_Stdin(t *testing.T) {
	src := NewSource(Stdin)
	src.stdin = strings.NewReader(payload)

	sessions, err := src.FetchSessions(context.Background(), ports.FetchWindow{})
	require.NoError(t, err)
	assert.Len(t, sessions, 3)
}

func TestSource_Errors(t *testing.T) {
	_, err := NewSource(filepath.Join(t.TempDir(), "missing.json")).FetchSessions(context.Background(), ports.FetchWindow{})
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = NewSource(writeFile(t, `{"sessions":[]}`)).FetchSessions(context.Background(), ports.FetchWindow{})
	assert.ErrorIs(t, err, domain.ErrInvalidPayload)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = NewSource(writeFile(t, payload)).FetchSessions(ctx, ports.FetchWindow{})
	assert.ErrorIs(t, err, context.Canceled)
}
