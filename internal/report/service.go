// Package report runs the fetch, build and export steps of one churnboard run.
package report

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/emiliopalmerini/churnboard/internal/domain"
	"github.com/emiliopalmerini/churnboard/internal/ports"
)

// Options bounds the fetch of every run.
type Options struct {
	WindowDays int
	Limit      int
}

// Service generates reports. It keeps no state between runs.
type Service struct {
	source    ports.SessionSource
	exporters []ports.MetricsExporter
	logger    domain.Logger
	opts      Options

	now   func() time.Time
	newID func() string
}

// NewService creates a new report service
func NewService(
	source ports.SessionSource,
	opts Options,
	logger domain.Logger,
	exporters ...ports.MetricsExporter,
) *Service {
	if logger == nil {
		logger = domain.NopLogger{}
	}
	return &Service{
		source:    source,
		exporters: exporters,
		logger:    logger,
		opts:      opts,
		now:       time.Now,
		newID:     uuid.NewString,
	}
}

// Generate fetches the sessions of the configured window and builds a report.
// Exporter failures are logged and do not fail the run.
func (s *Service) Generate(ctx context.Context) (*domain.Report, error) {
	window := ports.NewFetchWindow(s.now(), s.opts.WindowDays, s.opts.Limit)
	s.logger.Debug("fetching sessions",
		"start", window.Start.Format(time.DateOnly),
		"limit", window.Limit,
	)

	raws, err := s.source.FetchSessions(ctx, window)
	if err != nil {
		s.logger.Error("fetch failed", err)
		return nil, fmt.Errorf("fetch sessions: %w", err)
	}

	r := domain.BuildReport(raws, window.Domain())
	r.RunID = s.newID()
	r.GeneratedAt = window.End

	s.export(ctx, r)

	s.logger.Info("report generated",
		"run_id", r.RunID,
		"sessions", r.Totals.TotalSessions,
		"excluded", r.Totals.ExcludedSessions,
		"acceptance_rate", r.Totals.OverallAcceptanceRate,
		"reactivation_rate", r.Totals.OverallReactivationRate,
	)
	return r, nil
}

func (s *Service) export(ctx context.Context, r *domain.Report) {
	for _, e := range s.exporters {
		if err := e.ExportReport(ctx, r); err != nil {
			s.logger.Error("metrics export failed", err, "exporter", fmt.Sprintf("%T", e))
		}
	}
}

// Close closes every exporter, returning the first error.
func (s *Service) Close(ctx context.Context) error {
	var first error
	for _, e := range s.exporters {
		if err := e.Close(ctx); err != nil && first == nil {
			first = err
		}
	}
	return first
}
