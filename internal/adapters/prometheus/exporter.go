package prometheus

import (
	"context"

	"github.com/emiliopalmerini/churnboard/internal/domain"
)

// Exporter mirrors the latest report into the package gauges.
type Exporter struct{}

// NewExporter creates a report exporter backed by Registry.
func NewExporter() *Exporter {
	return &Exporter{}
}

// ExportReport replaces the report gauges with the values of r.
func (e *Exporter) ExportReport(ctx context.Context, r *domain.Report) error {
	t := r.Totals

	ReportRuns.Inc()
	if !r.GeneratedAt.IsZero() {
		ReportLastRun.Set(float64(r.GeneratedAt.Unix()))
	}

	ReportSessions.WithLabelValues("total").Set(float64(t.TotalSessions))
	ReportSessions.WithLabelValues("accepted").Set(float64(t.TotalAccepted))
	ReportSessions.WithLabelValues("canceled").Set(float64(t.TotalCanceled))
	ReportSessions.WithLabelValues("excluded").Set(float64(t.ExcludedSessions))

	ReportRate.WithLabelValues("acceptance").Set(t.OverallAcceptanceRate)
	ReportRate.WithLabelValues("cancellation").Set(t.OverallCancellationRate)
	ReportRate.WithLabelValues("reactivation").Set(t.OverallReactivationRate)

	ReportRevenue.WithLabelValues("saved").Set(t.TotalRevenueSaved)
	ReportRevenue.WithLabelValues("lost").Set(t.TotalRevenueLost)
	ReportRevenue.WithLabelValues("net").Set(t.NetRevenue)

	ReportFlowSessions.Reset()
	if f := r.Flows.Flow1; f != nil {
		ReportFlowSessions.WithLabelValues(domain.Flow1.String(), f.BlueprintID).Set(float64(f.Sessions))
	}
	if f := r.Flows.Flow2; f != nil {
		ReportFlowSessions.WithLabelValues(domain.Flow2.String(), f.BlueprintID).Set(float64(f.Sessions))
	}

	for _, g := range []domain.Granularity{domain.Weekly, domain.Monthly} {
		buckets := r.Tables(g).Combined
		if len(buckets) == 0 {
			PeriodAcceptanceRate.DeleteLabelValues(string(g))
			continue
		}
		PeriodAcceptanceRate.WithLabelValues(string(g)).Set(buckets[0].AcceptanceRate)
	}
	return nil
}

// Close is a no-op; the registry lives for the whole process.
func (e *Exporter) Close(ctx context.Context) error {
	return nil
}
