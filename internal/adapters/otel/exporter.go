package otel

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/emiliopalmerini/churnboard/internal/domain"
)

const (
	serviceName    = "churnboard"
	serviceVersion = "1.0.0"
)

// ErrDisabled is returned by NewExporter when the exporter is not configured.
var ErrDisabled = errors.New("OTEL exporter is disabled or endpoint not configured")

// Exporter publishes report figures to an OTEL Collector. Window-level figures are
// observable gauges read from the latest exported report at collection time.
type Exporter struct {
	provider *sdkmetric.MeterProvider
	runs     metric.Int64Counter
	sessions metric.Int64Counter

	mu     sync.RWMutex
	latest *domain.Totals
}

// NewExporter creates an exporter pushing over OTLP gRPC.
func NewExporter(ctx context.Context, cfg Config) (*Exporter, error) {
	if !cfg.Enabled || cfg.Endpoint == "" {
		return nil, ErrDisabled
	}

	opts := []otlpmetricgrpc.Option{
		otlpmetricgrpc.WithEndpoint(cfg.Endpoint),
	}
	if cfg.Insecure {
		opts = append(opts, otlpmetricgrpc.WithDialOption(grpc.WithTransportCredentials(insecure.NewCredentials())))
		opts = append(opts, otlpmetricgrpc.WithInsecure())
	}

	exp, err := otlpmetricgrpc.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating OTLP exporter: %w", err)
	}

	return newExporter(ctx, sdkmetric.NewPeriodicReader(exp))
}

// newExporter wires instruments onto a provider reading through reader.
func newExporter(ctx context.Context, reader sdkmetric.Reader) (*Exporter, error) {
	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(serviceName),
			semconv.ServiceVersion(serviceVersion),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	provider := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(reader),
		sdkmetric.WithResource(res),
	)
	meter := provider.Meter(serviceName)

	e := &Exporter{provider: provider}

	e.runs, err = meter.Int64Counter(
		"churnboard_report_runs_total",
		metric.WithDescription("Reports generated"),
		metric.WithUnit("{run}"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating runs counter: %w", err)
	}

	e.sessions, err = meter.Int64Counter(
		"churnboard_sessions_processed_total",
		metric.WithDescription("Sessions processed across report runs"),
		metric.WithUnit("{session}"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating sessions counter: %w", err)
	}

	rates, err := meter.Float64ObservableGauge(
		"churnboard_rate_percent",
		metric.WithDescription("Window-level rates of the latest report"),
		metric.WithUnit("%"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating rate gauge: %w", err)
	}

	revenue, err := meter.Float64ObservableGauge(
		"churnboard_revenue_usd",
		metric.WithDescription("Revenue saved, lost and net over the latest report window"),
		metric.WithUnit("USD"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating revenue gauge: %w", err)
	}

	customers, err := meter.Int64ObservableGauge(
		"churnboard_customers",
		metric.WithDescription("Customers seen in the latest report window"),
		metric.WithUnit("{customer}"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating customers gauge: %w", err)
	}

	_, err = meter.RegisterCallback(func(_ context.Context, o metric.Observer) error {
		e.mu.RLock()
		t := e.latest
		e.mu.RUnlock()
		if t == nil {
			return nil
		}

		o.ObserveFloat64(rates, t.OverallAcceptanceRate, metric.WithAttributes(attribute.String("rate", "acceptance")))
		o.ObserveFloat64(rates, t.OverallCancellationRate, metric.WithAttributes(attribute.String("rate", "cancellation")))
		o.ObserveFloat64(rates, t.OverallReactivationRate, metric.WithAttributes(attribute.String("rate", "reactivation")))

		o.ObserveFloat64(revenue, t.TotalRevenueSaved, metric.WithAttributes(attribute.String("kind", "saved")))
		o.ObserveFloat64(revenue, t.TotalRevenueLost, metric.WithAttributes(attribute.String("kind", "lost")))
		o.ObserveFloat64(revenue, t.NetRevenue, metric.WithAttributes(attribute.String("kind", "net")))

		o.ObserveInt64(customers, int64(t.TotalCustomers), metric.WithAttributes(attribute.String("status", "all")))
		o.ObserveInt64(customers, int64(t.ReactivatedCustomers), metric.WithAttributes(attribute.String("status", "reactivated")))
		return nil
	}, rates, revenue, customers)
	if err != nil {
		return nil, fmt.Errorf("registering callback: %w", err)
	}

	return e, nil
}

// ExportReport records one run and makes r the source of the window gauges.
func (e *Exporter) ExportReport(ctx context.Context, r *domain.Report) error {
	totals := r.Totals

	e.mu.Lock()
	e.latest = &totals
	e.mu.Unlock()

	e.runs.Add(ctx, 1)
	e.sessions.Add(ctx, int64(totals.TotalSessions), metric.WithAttributes(attribute.String("outcome", "all")))
	e.sessions.Add(ctx, int64(totals.TotalAccepted), metric.WithAttributes(attribute.String("outcome", "accepted")))
	e.sessions.Add(ctx, int64(totals.TotalCanceled), metric.WithAttributes(attribute.String("outcome", "canceled")))
	return nil
}

// Close shuts down the exporter and flushes any pending metrics.
func (e *Exporter) Close(ctx context.Context) error {
	return e.provider.Shutdown(ctx)
}
