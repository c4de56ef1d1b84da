package observability

import (
	"context"
	"sync"

	"github.com/peergraph/datalog-client-go/datalog"
)

// LogRecord represents one captured log call.
type LogRecord struct {
	Level   string
	Message string
	Args    []any
}

// LoggerSpy captures log calls for testing. It implements datalog.Logger.
type LoggerSpy struct {
	mu      sync.Mutex
	records []LogRecord
}

// NewLoggerSpy creates an empty spy.
func NewLoggerSpy() *LoggerSpy {
	return &LoggerSpy{}
}

// Debug implements datalog.Logger.
func (s *LoggerSpy) Debug(msg string, args ...any) { s.record("debug", msg, args) }

// Info implements datalog.Logger.
func (s *LoggerSpy) Info(msg string, args ...any) { s.record("info", msg, args) }

// Warn implements datalog.Logger.
func (s *LoggerSpy) Warn(msg string, args ...any) { s.record("warn", msg, args) }

// Error implements datalog.Logger.
func (s *LoggerSpy) Error(msg string, args ...any) { s.record("error", msg, args) }

func (s *LoggerSpy) record(level, msg string, args []any) {
	s.mu.Lock()
	defer s.mu.Unlock()

	argsCopy := make([]any, len(args))
	copy(argsCopy, args)

	s.records = append(s.records, LogRecord{Level: level, Message: msg, Args: argsCopy})
}

// Records returns a copy of all captured log records.
func (s *LoggerSpy) Records() []LogRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	records := make([]LogRecord, len(s.records))
	copy(records, s.records)

	return records
}

// HasRecord checks for a record with the given level and message.
func (s *LoggerSpy) HasRecord(level, msg string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, record := range s.records {
		if record.Level == level && record.Message == msg {
			return true
		}
	}

	return false
}

// Reset clears all captured records.
func (s *LoggerSpy) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = nil
}

var _ datalog.Logger = (*LoggerSpy)(nil)

// ContextualLoggerSpy captures context-aware log calls for testing. It
// implements datalog.ContextualLogger.
type ContextualLoggerSpy struct {
	mu      sync.Mutex
	records []LogRecord
}

// NewContextualLoggerSpy creates an empty spy.
func NewContextualLoggerSpy() *ContextualLoggerSpy {
	return &ContextualLoggerSpy{}
}

// DebugContext implements datalog.ContextualLogger.
func (s *ContextualLoggerSpy) DebugContext(_ context.Context, msg string, args ...any) {
	s.record("debug", msg, args)
}

// InfoContext implements datalog.ContextualLogger.
func (s *ContextualLoggerSpy) InfoContext(_ context.Context, msg string, args ...any) {
	s.record("info", msg, args)
}

// WarnContext implements datalog.ContextualLogger.
func (s *ContextualLoggerSpy) WarnContext(_ context.Context, msg string, args ...any) {
	s.record("warn", msg, args)
}

// ErrorContext implements datalog.ContextualLogger.
func (s *ContextualLoggerSpy) ErrorContext(_ context.Context, msg string, args ...any) {
	s.record("error", msg, args)
}

func (s *ContextualLoggerSpy) record(level, msg string, args []any) {
	s.mu.Lock()
	defer s.mu.Unlock()

	argsCopy := make([]any, len(args))
	copy(argsCopy, args)

	s.records = append(s.records, LogRecord{Level: level, Message: msg, Args: argsCopy})
}

// Records returns a copy of all captured log records.
func (s *ContextualLoggerSpy) Records() []LogRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	records := make([]LogRecord, len(s.records))
	copy(records, s.records)

	return records
}

// HasRecord checks for a record with the given level and message.
func (s *ContextualLoggerSpy) HasRecord(level, msg string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, record := range s.records {
		if record.Level == level && record.Message == msg {
			return true
		}
	}

	return false
}

// Reset clears all captured records.
func (s *ContextualLoggerSpy) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = nil
}

var _ datalog.ContextualLogger = (*ContextualLoggerSpy)(nil)
