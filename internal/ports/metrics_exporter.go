package ports

import (
	"context"

	"github.com/emiliopalmerini/churnboard/internal/domain"
)

// MetricsExporter publishes the headline numbers of a report to an observability system.
type MetricsExporter interface {
	// ExportReport records the run totals and latest period figures of r.
	ExportReport(ctx context.Context, r *domain.Report) error
	// Close shuts down the exporter and flushes any pending metrics.
	Close(ctx context.Context) error
}
