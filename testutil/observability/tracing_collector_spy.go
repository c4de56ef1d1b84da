package observability

import (
	"context"
	"sync"

	"github.com/peergraph/datalog-client-go/datalog"
)

// SpanContextSpy implements datalog.SpanContext and records the status and
// attributes set on it.
type SpanContextSpy struct {
	mu         sync.Mutex
	status     string
	attributes map[string]string
}

// SetStatus implements datalog.SpanContext.
func (c *SpanContextSpy) SetStatus(status string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.status = status
}

// AddAttribute implements datalog.SpanContext.
func (c *SpanContextSpy) AddAttribute(key, value string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.attributes == nil {
		c.attributes = make(map[string]string)
	}
	c.attributes[key] = value
}

// Status returns the last status set on the span.
func (c *SpanContextSpy) Status() string {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.status
}

// Attributes returns a copy of all attributes set on the span.
func (c *SpanContextSpy) Attributes() map[string]string {
	c.mu.Lock()
	defer c.mu.Unlock()

	return copyLabels(c.attributes)
}

var _ datalog.SpanContext = (*SpanContextSpy)(nil)

// TracingCollectorSpy captures span lifecycles for testing. It implements
// datalog.TracingCollector.
type TracingCollectorSpy struct {
	mu          sync.Mutex
	spanRecords []SpanRecord
}

// SpanRecord represents one recorded span from start to finish.
type SpanRecord struct {
	Name            string
	StartAttributes map[string]string
	Status          string
	EndAttributes   map[string]string
	SpanContext     *SpanContextSpy
}

// NewTracingCollectorSpy creates an empty spy.
func NewTracingCollectorSpy() *TracingCollectorSpy {
	return &TracingCollectorSpy{}
}

// StartSpan implements datalog.TracingCollector.
func (s *TracingCollectorSpy) StartSpan(ctx context.Context, name string, attrs map[string]string) (context.Context, datalog.SpanContext) {
	s.mu.Lock()
	defer s.mu.Unlock()

	spanCtx := &SpanContextSpy{}

	s.spanRecords = append(s.spanRecords, SpanRecord{
		Name:            name,
		StartAttributes: copyLabels(attrs),
		SpanContext:     spanCtx,
	})

	return ctx, spanCtx
}

// FinishSpan implements datalog.TracingCollector. Span handles not created
// by this spy are ignored.
func (s *TracingCollectorSpy) FinishSpan(spanCtx datalog.SpanContext, status string, attrs map[string]string) {
	spy, ok := spanCtx.(*SpanContextSpy)
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.spanRecords {
		if s.spanRecords[i].SpanContext == spy {
			s.spanRecords[i].Status = status
			s.spanRecords[i].EndAttributes = copyLabels(attrs)

			break
		}
	}
}

// SpanRecords returns a copy of all captured span records.
func (s *TracingCollectorSpy) SpanRecords() []SpanRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	records := make([]SpanRecord, len(s.spanRecords))
	copy(records, s.spanRecords)

	return records
}

// HasSpanRecord checks for a finished span with the given name and status.
func (s *TracingCollectorSpy) HasSpanRecord(name, status string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, record := range s.spanRecords {
		if record.Name == name && record.Status == status {
			return true
		}
	}

	return false
}

// Reset clears all captured span records.
func (s *TracingCollectorSpy) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.spanRecords = nil
}

var _ datalog.TracingCollector = (*TracingCollectorSpy)(nil)
