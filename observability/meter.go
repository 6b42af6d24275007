package observability

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"github.com/kbukum/tablekit/logger"
)

// InitMeter installs a periodic OTLP/HTTP meter provider as the global one.
func InitMeter(ctx context.Context, cfg Config, service, serviceVersion string) (*sdkmetric.MeterProvider, error) {
	opts := []otlpmetrichttp.Option{otlpmetrichttp.WithEndpoint(cfg.Endpoint)}
	if cfg.Insecure {
		opts = append(opts, otlpmetrichttp.WithInsecure())
	}
	exporter, err := otlpmetrichttp.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating metric exporter: %w", err)
	}

	res, err := newResource(service, serviceVersion)
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter, sdkmetric.WithInterval(cfg.Interval))),
		sdkmetric.WithResource(res),
	)
	otel.SetMeterProvider(mp)

	logger.WithComponent("telemetry").Info("meter initialized", logger.Fields(
		"endpoint", cfg.Endpoint,
		"interval", cfg.Interval.String(),
	))
	return mp, nil
}

// Metrics holds the tablekit instruments.
type Metrics struct {
	operations metric.Int64Counter
	duration   metric.Float64Histogram
	snapshots  metric.Int64Histogram
	exports    metric.Int64Counter
	mailSent   metric.Int64Counter
}

// NewMetrics creates the instruments on meter.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	operations, err := meter.Int64Counter("tablekit.operation.total",
		metric.WithDescription("Pipeline collects, renders and other tracked operations"))
	if err != nil {
		return nil, fmt.Errorf("creating tablekit.operation.total counter: %w", err)
	}
	duration, err := meter.Float64Histogram("tablekit.operation.duration",
		metric.WithDescription("Duration of tracked operations"),
		metric.WithUnit("s"))
	if err != nil {
		return nil, fmt.Errorf("creating tablekit.operation.duration histogram: %w", err)
	}
	snapshots, err := meter.Int64Histogram("tablekit.pipeline.snapshots",
		metric.WithDescription("Snapshots produced per pipeline collect"))
	if err != nil {
		return nil, fmt.Errorf("creating tablekit.pipeline.snapshots histogram: %w", err)
	}
	exports, err := meter.Int64Counter("tablekit.export.total",
		metric.WithDescription("Tables written to files by format"))
	if err != nil {
		return nil, fmt.Errorf("creating tablekit.export.total counter: %w", err)
	}
	mailSent, err := meter.Int64Counter("tablekit.mail.sent",
		metric.WithDescription("Mail send attempts by status"))
	if err != nil {
		return nil, fmt.Errorf("creating tablekit.mail.sent counter: %w", err)
	}
	return &Metrics{
		operations: operations,
		duration:   duration,
		snapshots:  snapshots,
		exports:    exports,
		mailSent:   mailSent,
	}, nil
}

var (
	defaultMetrics     *Metrics
	defaultMetricsOnce sync.Once
)

// Default returns instruments on the global meter provider. The global
// provider delegates, so instruments created before Setup still export.
func Default() *Metrics {
	defaultMetricsOnce.Do(func() {
		m, err := NewMetrics(otel.Meter(instrumentationName))
		if err != nil {
			logger.WithComponent("telemetry").Warn("metrics unavailable", logger.ErrorFields("create instruments", err))
			return
		}
		defaultMetrics = m
	})
	return defaultMetrics
}

// RecordOperation records one tracked operation.
func (m *Metrics) RecordOperation(ctx context.Context, component, operation, status string, d time.Duration) {
	if m == nil {
		return
	}
	attrs := metric.WithAttributes(
		attribute.String(AttrComponent, component),
		attribute.String(AttrOperation, operation),
		attribute.String(AttrStatus, status),
	)
	m.operations.Add(ctx, 1, attrs)
	m.duration.Record(ctx, d.Seconds(), attrs)
}

// RecordSnapshots records the snapshot count of a collected pipeline.
func (m *Metrics) RecordSnapshots(ctx context.Context, n int) {
	if m == nil {
		return
	}
	m.snapshots.Record(ctx, int64(n))
}

// RecordExport counts a table written in format.
func (m *Metrics) RecordExport(ctx context.Context, format, status string) {
	if m == nil {
		return
	}
	m.exports.Add(ctx, 1, metric.WithAttributes(
		attribute.String(AttrFormat, format),
		attribute.String(AttrStatus, status),
	))
}

// RecordMail counts a mail send attempt.
func (m *Metrics) RecordMail(ctx context.Context, status string) {
	if m == nil {
		return
	}
	m.mailSent.Add(ctx, 1, metric.WithAttributes(attribute.String(AttrStatus, status)))
}
