package observability

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Operation is one traced and counted unit of work.
type Operation struct {
	Component string
	Name      string
	Started   time.Time
	Metrics   *Metrics

	ctx  context.Context
	span trace.Span
}

// Start opens a span named component.name and returns the operation.
// Use Context for calls that should nest under it.
func Start(ctx context.Context, component, name string) *Operation {
	return StartWith(ctx, Default(), component, name)
}

// StartWith is Start recording into m instead of the default instruments.
func StartWith(ctx context.Context, m *Metrics, component, name string) *Operation {
	ctx, span := StartSpan(ctx, component+"."+name, trace.WithAttributes(
		attribute.String(AttrComponent, component),
		attribute.String(AttrOperation, name),
	))
	return &Operation{
		Component: component,
		Name:      name,
		Started:   time.Now(),
		Metrics:   m,
		ctx:       ctx,
		span:      span,
	}
}

// Context returns the context carrying the operation span.
func (o *Operation) Context() context.Context {
	return o.ctx
}

// End closes the span and records the outcome.
func (o *Operation) End(err error) {
	status := "ok"
	if err != nil {
		status = "error"
		o.span.RecordError(err)
		o.span.SetStatus(codes.Error, err.Error())
	}
	o.span.SetAttributes(attribute.String(AttrStatus, status))
	o.span.End()
	o.Metrics.RecordOperation(o.ctx, o.Component, o.Name, status, time.Since(o.Started))
}
