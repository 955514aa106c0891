package churnkey

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/emiliopalmerini/churnboard/internal/domain"
	"github.com/emiliopalmerini/churnboard/internal/ports"
)

const (
	headerAPIKey = "x-ck-api-key"
	headerApp    = "x-ck-app"

	// maxErrorBody caps how much of an error response ends up in the error message.
	maxErrorBody = 512
)

// StatusError is returned for non-200 responses.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("churnkey: unexpected status %d: %s", e.StatusCode, e.Body)
}

// Client fetches cancel-flow sessions from the Churnkey data API.
type Client struct {
	baseURL    string
	apiKey     string
	appID      string
	httpClient *http.Client
}

// NewClient creates a new Churnkey client.
func NewClient(cfg Config) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:     cfg.APIKey,
		appID:      cfg.AppID,
		httpClient: &http.Client{Timeout: timeout},
	}, nil
}

// FetchSessions retrieves sessions created on or after window.Start.
func (c *Client) FetchSessions(ctx context.Context, window ports.FetchWindow) ([]domain.RawSession, error) {
	u, err := url.Parse(c.baseURL + "/sessions")
	if err != nil {
		return nil, fmt.Errorf("parsing URL: %w", err)
	}

	q := u.Query()
	if window.Limit > 0 {
		q.Set("limit", strconv.Itoa(window.Limit))
	}
	if !window.Start.IsZero() {
		q.Set("startDate", window.Start.UTC().Format("2006-01-02"))
	}
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set(headerAPIKey, c.apiKey)
	req.Header.Set(headerApp, c.appID)
	req.Header.Set("content-type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: truncate(string(body), maxErrorBody)}
	}

	sessions, err := domain.DecodeRawSessions(body)
	if err != nil {
		return nil, fmt.Errorf("decoding sessions: %w", err)
	}

	if window.Limit > 0 && len(sessions) > window.Limit {
		sessions = sessions[:window.Limit]
	}
	return sessions, nil
}

func truncate(s string, n int) string {
	s = strings.TrimSpace(s)
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
