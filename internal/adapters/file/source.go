// Package file reads churn sessions from a JSON export on disk or stdin.
package file

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/emiliopalmerini/churnboard/internal/domain"
	"github.com/emiliopalmerini/churnboard/internal/ports"
)

// Stdin is the path that selects standard input.
const Stdin = "-"

// Source reads sessions from a file containing the same JSON array the API returns.
type Source struct {
	path  string
	stdin io.Reader
}

// NewSource creates a source for path, or standard input when path is "-".
func NewSource(path string) *Source {
	return &Source{path: path, stdin: os.Stdin}
}

// FetchSessions decodes the file and truncates to window.Limit. The window start is
// not applied; exports are taken as already scoped.
func (s *Source) FetchSessions(ctx context.Context, window ports.FetchWindow) ([]domain.RawSession, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := s.read()
	if err != nil {
		return nil, err
	}

	sessions, err := domain.DecodeRawSessions(data)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", s.name(), err)
	}

	if window.Limit > 0 && len(sessions) > window.Limit {
		sessions = sessions[:window.Limit]
	}
	return sessions, nil
}

func (s *Source) read() ([]byte, error) {
	if s.path == Stdin {
		data, err := io.ReadAll(s.stdin)
		if err != nil {
			return nil, fmt.Errorf("reading stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", s.path, err)
	}
	return data, nil
}

func (s *Source) name() string {
	if s.path == Stdin {
		return "stdin"
	}
	return s.path
}
