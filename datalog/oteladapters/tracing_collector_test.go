package oteladapters_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/peergraph/datalog-client-go/datalog"
	"github.com/peergraph/datalog-client-go/datalog/oteladapters"
)

func newTestTracer(t *testing.T) (*tracetest.InMemoryExporter, *oteladapters.TracingCollector) {
	t.Helper()

	exporter := tracetest.NewInMemoryExporter()
	provider := trace.NewTracerProvider(trace.WithSyncer(exporter))

	return exporter, oteladapters.NewTracingCollector(provider.Tracer("test"))
}

func Test_TracingCollector_StartAndFinishSpan(t *testing.T) {
	exporter, collector := newTestTracer(t)

	attrs := map[string]string{
		"operation": "untyped_query",
		"engine":    "postgres",
	}

	ctx, spanCtx := collector.StartSpan(context.Background(), "datalog.query", attrs)
	require.NotNil(t, ctx)
	require.NotNil(t, spanCtx)

	collector.FinishSpan(spanCtx, "success", map[string]string{"row_count": "2"})

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)

	span := spans[0]
	assert.Equal(t, "datalog.query", span.Name)
	assert.Equal(t, codes.Ok, span.Status.Code)

	assertSpanHasAttribute(t, span, "operation", "untyped_query")
	assertSpanHasAttribute(t, span, "engine", "postgres")
	assertSpanHasAttribute(t, span, "row_count", "2")
}

func Test_TracingCollector_FinishSpan_ErrorStatus(t *testing.T) {
	exporter, collector := newTestTracer(t)

	_, spanCtx := collector.StartSpan(context.Background(), "datalog.query", nil)
	collector.FinishSpan(spanCtx, "error", map[string]string{"error_type": "engine"})

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)

	assert.Equal(t, codes.Error, spans[0].Status.Code)
	assertSpanHasAttribute(t, spans[0], "error_type", "engine")
}

func Test_TracingCollector_FinishSpan_UnknownStatusBecomesAttribute(t *testing.T) {
	exporter, collector := newTestTracer(t)

	_, spanCtx := collector.StartSpan(context.Background(), "datalog.query", nil)
	collector.FinishSpan(spanCtx, "partially-applied", nil)

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)

	assert.Equal(t, codes.Unset, spans[0].Status.Code)
	assertSpanHasAttribute(t, spans[0], "status", "partially-applied")
}

func Test_TracingCollector_FinishSpan_IgnoresForeignSpanContext(t *testing.T) {
	exporter, collector := newTestTracer(t)

	assert.NotPanics(t, func() {
		collector.FinishSpan(foreignSpanContext{}, "success", nil)
	})

	assert.Empty(t, exporter.GetSpans())
}

func Test_OTelSpanContext_AddAttributeAndSetStatus(t *testing.T) {
	exporter, collector := newTestTracer(t)

	_, spanCtx := collector.StartSpan(context.Background(), "datalog.query", nil)

	spanCtx.AddAttribute("query_hash", "abc123")
	spanCtx.SetStatus("timeout")

	collector.FinishSpan(spanCtx, "timeout", nil)

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)

	assert.Equal(t, codes.Error, spans[0].Status.Code)
	assertSpanHasAttribute(t, spans[0], "query_hash", "abc123")
}

type foreignSpanContext struct{}

func (foreignSpanContext) SetStatus(string)         {}
func (foreignSpanContext) AddAttribute(_, _ string) {}

var _ datalog.SpanContext = foreignSpanContext{}

func assertSpanHasAttribute(t *testing.T, span tracetest.SpanStub, key, value string) {
	t.Helper()

	for _, attr := range span.Attributes {
		if attr.Key == attribute.Key(key) {
			assert.Equal(t, value, attr.Value.AsString())

			return
		}
	}

	t.Errorf("span is missing attribute %s=%s", key, value)
}
