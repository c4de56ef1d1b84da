// Package observability provides spy implementations of the datalog
// observability interfaces that capture calls for inspection in tests.
package observability

import (
	"context"
	"sync"
	"time"

	"github.com/peergraph/datalog-client-go/datalog"
)

// MetricsCollectorSpy captures metrics calls for testing. It implements both
// datalog.MetricsCollector and datalog.ContextualMetricsCollector.
type MetricsCollectorSpy struct {
	mu              sync.Mutex
	durationRecords []DurationRecord
	counterRecords  []CounterRecord
	valueRecords    []ValueRecord
	contextualCalls int
}

// DurationRecord represents one recorded duration metric call.
type DurationRecord struct {
	Metric   string
	Duration time.Duration
	Labels   map[string]string
}

// CounterRecord represents one recorded counter increment call.
type CounterRecord struct {
	Metric string
	Labels map[string]string
}

// ValueRecord represents one recorded value metric call.
type ValueRecord struct {
	Metric string
	Value  float64
	Labels map[string]string
}

// NewMetricsCollectorSpy creates an empty spy.
func NewMetricsCollectorSpy() *MetricsCollectorSpy {
	return &MetricsCollectorSpy{}
}

// RecordDuration implements datalog.MetricsCollector.
func (s *MetricsCollectorSpy) RecordDuration(metric string, duration time.Duration, labels map[string]string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.durationRecords = append(s.durationRecords, DurationRecord{
		Metric:   metric,
		Duration: duration,
		Labels:   copyLabels(labels),
	})
}

// IncrementCounter implements datalog.MetricsCollector.
func (s *MetricsCollectorSpy) IncrementCounter(metric string, labels map[string]string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.counterRecords = append(s.counterRecords, CounterRecord{
		Metric: metric,
		Labels: copyLabels(labels),
	})
}

// RecordValue implements datalog.MetricsCollector.
func (s *MetricsCollectorSpy) RecordValue(metric string, value float64, labels map[string]string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.valueRecords = append(s.valueRecords, ValueRecord{
		Metric: metric,
		Value:  value,
		Labels: copyLabels(labels),
	})
}

// RecordDurationContext implements datalog.ContextualMetricsCollector.
func (s *MetricsCollectorSpy) RecordDurationContext(_ context.Context, metric string, duration time.Duration, labels map[string]string) {
	s.markContextual()
	s.RecordDuration(metric, duration, labels)
}

// IncrementCounterContext implements datalog.ContextualMetricsCollector.
func (s *MetricsCollectorSpy) IncrementCounterContext(_ context.Context, metric string, labels map[string]string) {
	s.markContextual()
	s.IncrementCounter(metric, labels)
}

// RecordValueContext implements datalog.ContextualMetricsCollector.
func (s *MetricsCollectorSpy) RecordValueContext(_ context.Context, metric string, value float64, labels map[string]string) {
	s.markContextual()
	s.RecordValue(metric, value, labels)
}

// DurationRecords returns a copy of all captured duration records.
func (s *MetricsCollectorSpy) DurationRecords() []DurationRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	records := make([]DurationRecord, len(s.durationRecords))
	copy(records, s.durationRecords)

	return records
}

// CounterRecords returns a copy of all captured counter records.
func (s *MetricsCollectorSpy) CounterRecords() []CounterRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	records := make([]CounterRecord, len(s.counterRecords))
	copy(records, s.counterRecords)

	return records
}

// ValueRecords returns a copy of all captured value records.
func (s *MetricsCollectorSpy) ValueRecords() []ValueRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	records := make([]ValueRecord, len(s.valueRecords))
	copy(records, s.valueRecords)

	return records
}

// ContextualCallCount returns how many calls arrived through the
// context-aware methods.
func (s *MetricsCollectorSpy) ContextualCallCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.contextualCalls
}

// HasDurationRecord checks for a duration record with the given metric name
// and labels. Labels in the record beyond the given ones are ignored.
func (s *MetricsCollectorSpy) HasDurationRecord(metric string, labels map[string]string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, record := range s.durationRecords {
		if record.Metric == metric && labelsMatch(record.Labels, labels) {
			return true
		}
	}

	return false
}

// HasCounterRecord checks for a counter record with the given metric name
// and labels.
func (s *MetricsCollectorSpy) HasCounterRecord(metric string, labels map[string]string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, record := range s.counterRecords {
		if record.Metric == metric && labelsMatch(record.Labels, labels) {
			return true
		}
	}

	return false
}

// HasValueRecord checks for a value record with the given metric name and
// labels.
func (s *MetricsCollectorSpy) HasValueRecord(metric string, labels map[string]string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, record := range s.valueRecords {
		if record.Metric == metric && labelsMatch(record.Labels, labels) {
			return true
		}
	}

	return false
}

// Reset clears all captured records.
func (s *MetricsCollectorSpy) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.durationRecords = nil
	s.counterRecords = nil
	s.valueRecords = nil
	s.contextualCalls = 0
}

func (s *MetricsCollectorSpy) markContextual() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.contextualCalls++
}

func copyLabels(labels map[string]string) map[string]string {
	labelsCopy := make(map[string]string, len(labels))
	for k, v := range labels {
		labelsCopy[k] = v
	}

	return labelsCopy
}

func labelsMatch(recorded, expected map[string]string) bool {
	for key, value := range expected {
		if recorded[key] != value {
			return false
		}
	}

	return true
}

var (
	_ datalog.MetricsCollector           = (*MetricsCollectorSpy)(nil)
	_ datalog.ContextualMetricsCollector = (*MetricsCollectorSpy)(nil)
)
