package observability

import (
	"context"
	"errors"
	"testing"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func newTestMetrics(t *testing.T) (*Metrics, *sdkmetric.ManualReader) {
	t.Helper()
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	m, err := NewMetrics(mp.Meter("test"))
	if err != nil {
		t.Fatalf("NewMetrics: %v", err)
	}
	return m, reader
}

func sumOf(t *testing.T, reader *sdkmetric.ManualReader, name string) int64 {
	t.Helper()
	var rm metricdata.ResourceMetrics
	if err := reader.Collect(context.Background(), &rm); err != nil {
		t.Fatalf("collect: %v", err)
	}
	var total int64
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name != name {
				continue
			}
			if sum, ok := m.Data.(metricdata.Sum[int64]); ok {
				for _, dp := range sum.DataPoints {
					total += dp.Value
				}
			}
		}
	}
	return total
}

func TestSetupDisabled(t *testing.T) {
	shutdown, err := Setup(context.Background(), Config{}, "tablekit", "dev")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Errorf("noop shutdown failed: %v", err)
	}
}

func TestConfigDefaultsAndValidate(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()
	if cfg.Endpoint != "localhost:4318" || cfg.SampleRate != 1.0 || cfg.Interval <= 0 {
		t.Errorf("unexpected defaults %+v", cfg)
	}
	if err := (&Config{SampleRate: 1.5}).Validate(); err == nil {
		t.Error("expected sample rate above 1 to fail")
	}
	if _, err := Setup(context.Background(), Config{Enabled: true, SampleRate: -0.5}, "tablekit", "dev"); err == nil {
		t.Error("expected Setup to reject an invalid config")
	}
}

func TestSampler(t *testing.T) {
	if sampler(1).Description() != sdktrace.AlwaysSample().Description() {
		t.Error("rate 1 should always sample")
	}
	if sampler(0).Description() != sdktrace.NeverSample().Description() {
		t.Error("rate 0 should never sample")
	}
	if sampler(0.25).Description() != sdktrace.TraceIDRatioBased(0.25).Description() {
		t.Error("fractional rate should be ratio based")
	}
}

func TestMetricsRecord(t *testing.T) {
	m, reader := newTestMetrics(t)
	ctx := context.Background()

	m.RecordExport(ctx, "html", "ok")
	m.RecordExport(ctx, "png", "error")
	m.RecordMail(ctx, "sent")
	m.RecordSnapshots(ctx, 7)

	if got := sumOf(t, reader, "tablekit.export.total"); got != 2 {
		t.Errorf("expected 2 exports, got %d", got)
	}
	if got := sumOf(t, reader, "tablekit.mail.sent"); got != 1 {
		t.Errorf("expected 1 mail, got %d", got)
	}
}

func TestNilMetricsIsSafe(t *testing.T) {
	var m *Metrics
	ctx := context.Background()
	m.RecordExport(ctx, "html", "ok")
	m.RecordMail(ctx, "sent")
	m.RecordSnapshots(ctx, 1)
	m.RecordOperation(ctx, "c", "o", "ok", 0)
}

func TestNoopMeter(t *testing.T) {
	m, err := NewMetrics(noop.NewMeterProvider().Meter("test"))
	if err != nil || m == nil {
		t.Fatalf("expected instruments on noop meter, got %v", err)
	}
}

func TestOperationSpanAndCounter(t *testing.T) {
	sr := tracetest.NewSpanRecorder()
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr)))
	t.Cleanup(func() { otel.SetTracerProvider(prev) })

	m, reader := newTestMetrics(t)

	op := StartWith(context.Background(), m, "lazytable", "collect")
	SetSpanAttribute(op.Context(), AttrSnapshots, 3)
	op.End(nil)

	failed := StartWith(context.Background(), m, "lazytable", "render")
	failed.End(errors.New("boom"))

	spans := sr.Ended()
	if len(spans) != 2 {
		t.Fatalf("expected 2 spans, got %d", len(spans))
	}
	if spans[0].Name() != "lazytable.collect" {
		t.Errorf("unexpected span name %q", spans[0].Name())
	}
	var sawSnapshots bool
	for _, kv := range spans[0].Attributes() {
		if string(kv.Key) == AttrSnapshots && kv.Value.AsInt64() == 3 {
			sawSnapshots = true
		}
	}
	if !sawSnapshots {
		t.Error("expected snapshot attribute on span")
	}
	if spans[1].Status().Code != codes.Error {
		t.Errorf("expected error status, got %v", spans[1].Status().Code)
	}

	if got := sumOf(t, reader, "tablekit.operation.total"); got != 2 {
		t.Errorf("expected 2 operations, got %d", got)
	}
}

type staticChecker Health

func (s staticChecker) CheckHealth(context.Context) Health { return Health(s) }

func TestServiceHealth(t *testing.T) {
	sh := NewServiceHealth("tablekit", "1.0.0").Check(context.Background(),
		staticChecker{Name: "chrome", Status: HealthStatusUp},
		staticChecker{Name: "resend", Status: HealthStatusDegraded},
	)
	if sh.Status != HealthStatusDegraded {
		t.Errorf("expected degraded, got %s", sh.Status)
	}
	sh.AddComponent(Health{Name: "config", Status: HealthStatusDown})
	sh.AddComponent(Health{Name: "late", Status: HealthStatusDegraded})
	if sh.Status != HealthStatusDown {
		t.Errorf("degraded must not override down, got %s", sh.Status)
	}
	if len(sh.Components) != 4 {
		t.Errorf("expected 4 components, got %d", len(sh.Components))
	}
}
