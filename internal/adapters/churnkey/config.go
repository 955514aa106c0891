package churnkey

import (
	"errors"
	"time"
)

// ErrMissingCredentials is returned when the API key or app id is empty.
var ErrMissingCredentials = errors.New("churnkey: api key and app id are required")

const defaultTimeout = 30 * time.Second

// Config holds the Churnkey data API connection settings.
type Config struct {
	BaseURL string
	APIKey  string
	AppID   string
	Timeout time.Duration
}

// Validate reports missing credentials or endpoint.
func (c Config) Validate() error {
	if c.APIKey == "" || c.AppID == "" {
		return ErrMissingCredentials
	}
	if c.BaseURL == "" {
		return errors.New("churnkey: base URL is required")
	}
	return nil
}
