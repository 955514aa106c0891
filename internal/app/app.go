// Package app wires configuration into a ready report service.
package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/emiliopalmerini/churnboard/internal/adapters/churnkey"
	"github.com/emiliopalmerini/churnboard/internal/adapters/file"
	"github.com/emiliopalmerini/churnboard/internal/adapters/otel"
	"github.com/emiliopalmerini/churnboard/internal/adapters/prometheus"
	"github.com/emiliopalmerini/churnboard/internal/config"
	"github.com/emiliopalmerini/churnboard/internal/logging"
	"github.com/emiliopalmerini/churnboard/internal/ports"
	"github.com/emiliopalmerini/churnboard/internal/report"
)

// App holds the dependencies shared by every command.
type App struct {
	Config    *config.Config
	Source    ports.SessionSource
	Exporters []ports.MetricsExporter
	Service   *report.Service
}

// New validates cfg and builds the session source, the exporters and the report service.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	source, err := NewSource(cfg)
	if err != nil {
		return nil, err
	}

	exporters := []ports.MetricsExporter{prometheus.NewExporter()}
	otelExp, err := otel.NewExporter(ctx, otel.Config{
		Enabled:  cfg.OTEL.Enabled,
		Endpoint: cfg.OTEL.Endpoint,
		Insecure: cfg.OTEL.Insecure,
	})
	switch {
	case errors.Is(err, otel.ErrDisabled):
		exporters = append(exporters, otel.NewNoOpExporter())
	case err != nil:
		logging.Warn().Err(err).Msg("otel exporter unavailable, continuing without it")
		exporters = append(exporters, otel.NewNoOpExporter())
	default:
		exporters = append(exporters, otelExp)
	}

	svc := report.NewService(source, report.Options{
		WindowDays: cfg.WindowDays,
		Limit:      cfg.Limit,
	}, logging.Component("report"), exporters...)

	return &App{
		Config:    cfg,
		Source:    source,
		Exporters: exporters,
		Service:   svc,
	}, nil
}

// NewSource reads from cfg.Input when set and from the Churnkey API otherwise.
func NewSource(cfg *config.Config) (ports.SessionSource, error) {
	if cfg.Input != "" {
		return file.NewSource(cfg.Input), nil
	}
	client, err := churnkey.NewClient(churnkey.Config{
		BaseURL: cfg.BaseURL,
		APIKey:  cfg.APIKey,
		AppID:   cfg.AppID,
		Timeout: cfg.Timeout,
	})
	if err != nil {
		return nil, err
	}
	return churnkey.NewCircuitBreakerClient(client, churnkey.BreakerSettings{}), nil
}

// Close flushes the exporters.
func (a *App) Close(ctx context.Context) error {
	if a.Service == nil {
		return nil
	}
	return a.Service.Close(ctx)
}
