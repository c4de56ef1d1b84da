package oteladapters

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/peergraph/datalog-client-go/datalog"
)

// TracingCollector implements datalog.TracingCollector using the
// OpenTelemetry tracing API, creating one span per query round trip and
// propagating trace context through the query's context.Context.
type TracingCollector struct {
	tracer trace.Tracer
}

// NewTracingCollector creates a tracing collector over the given tracer. The
// tracer should come from your OpenTelemetry TracerProvider.
func NewTracingCollector(tracer trace.Tracer) *TracingCollector {
	return &TracingCollector{tracer: tracer}
}

// StartSpan starts a span with the given name and string attributes and
// returns the derived context together with a handle for finishing the span.
func (t *TracingCollector) StartSpan(ctx context.Context, name string, attrs map[string]string) (context.Context, datalog.SpanContext) {
	spanOptions := make([]trace.SpanStartOption, 0, len(attrs))
	for key, value := range attrs {
		spanOptions = append(spanOptions, trace.WithAttributes(attribute.String(key, value)))
	}

	spanCtx, span := t.tracer.Start(ctx, name, spanOptions...)

	return spanCtx, &OTelSpanContext{span: span}
}

// FinishSpan sets the final attributes and status on the span and ends it.
// Span handles not created by this collector are ignored.
func (t *TracingCollector) FinishSpan(spanCtx datalog.SpanContext, status string, attrs map[string]string) {
	otelSpanCtx, ok := spanCtx.(*OTelSpanContext)
	if !ok {
		return
	}

	for key, value := range attrs {
		otelSpanCtx.span.SetAttributes(attribute.String(key, value))
	}

	otelSpanCtx.setSpanStatus(status)
	otelSpanCtx.span.End()
}

var _ datalog.TracingCollector = (*TracingCollector)(nil)

// OTelSpanContext implements datalog.SpanContext by wrapping an OpenTelemetry
// span.
type OTelSpanContext struct {
	span trace.Span
}

// SetStatus sets the span status from a generic status string.
func (s *OTelSpanContext) SetStatus(status string) {
	s.setSpanStatus(status)
}

// AddAttribute adds a string attribute to the span.
func (s *OTelSpanContext) AddAttribute(key, value string) {
	s.span.SetAttributes(attribute.String(key, value))
}

// setSpanStatus maps generic status strings to OpenTelemetry status codes.
// Unknown strings are kept as a span attribute instead of a status.
func (s *OTelSpanContext) setSpanStatus(status string) {
	switch status {
	case "ok", "success", "completed":
		s.span.SetStatus(codes.Ok, "")
	case "error", "failed", "failure":
		s.span.SetStatus(codes.Error, "Query failed")
	case "cancelled", "canceled":
		s.span.SetStatus(codes.Error, "Query cancelled")
	case "timeout":
		s.span.SetStatus(codes.Error, "Query timed out")
	default:
		s.span.SetAttributes(attribute.String("status", status))
	}
}

var _ datalog.SpanContext = (*OTelSpanContext)(nil)
