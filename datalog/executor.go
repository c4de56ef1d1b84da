package datalog

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"
)

const (
	logMsgEngineQueryFailed = "engine query execution failed"
	logMsgReadRowFailed     = "failed to read engine row"
	logMsgDecodeRowFailed   = "failed to decode engine row"
	logMsgCloseRowsFailed   = "failed to close engine rows"
	logMsgQueryCompleted    = "query completed"
	logMsgQueryExecuted     = "executed query for: "
	logMsgOperation         = "executor operation: "
	logAttrError            = "error"
	logAttrQuery            = "query"
	logAttrArgCount         = "arg_count"
	logAttrRowCount         = "row_count"
	logAttrDurationMS       = "duration_ms"
	metricQueryDuration     = "datalog_query_duration_seconds"
	metricQueryErrors       = "datalog_query_errors_total"
	metricQueryRows         = "datalog_query_rows"
	spanNameQuery           = "datalog.query"
	spanAttrOperation       = "operation"
	spanAttrErrorType       = "error_type"
	spanAttrRowCount        = "row_count"
	spanAttrDurationMS      = "duration_ms"
	statusSuccess           = "success"
	statusError             = "error"
	errorTypeEngine         = "engine"
	errorTypeDecode         = "decode"
	operationQuery          = "query"
	operationTypedQuery     = "typed_query"
)

type queryDuration = time.Duration

// Executor submits rendered queries to an Engine and shapes the results. It
// holds no mutable state and is safe to share across concurrent callers;
// each call performs one synchronous round trip and blocks until the engine
// returns the full row collection or fails. No retries, no timeouts: a
// caller wanting a deadline imposes it through the context at the call
// boundary, and engine non-response surfaces as ErrEngineQuery.
type Executor struct {
	engine           Engine
	logger           Logger
	metricsCollector MetricsCollector
	tracingCollector TracingCollector
	contextualLogger ContextualLogger
}

// Option defines a functional option for configuring an Executor.
type Option func(*Executor) error

// WithLogger sets the logger for the Executor.
//
// Debug level: rendered query text with execution timing (development use)
// Info level: row counts and durations (production-safe)
// Warn level: non-critical issues like cursor cleanup failures
// Error level: engine and decode failures.
func WithLogger(logger Logger) Option {
	return func(ex *Executor) error {
		ex.logger = logger
		return nil
	}
}

// WithMetrics sets the metrics collector for the Executor. The collector
// receives query durations, returned row counts, and error counters.
func WithMetrics(collector MetricsCollector) Option {
	return func(ex *Executor) error {
		ex.metricsCollector = collector
		return nil
	}
}

// WithTracing sets the tracing collector for the Executor. One span is
// created per engine round trip.
func WithTracing(collector TracingCollector) Option {
	return func(ex *Executor) error {
		ex.tracingCollector = collector
		return nil
	}
}

// WithContextualLogger sets the contextual logger for the Executor. When
// both loggers are configured the contextual one wins, since it can attach
// trace correlation from the context.
func WithContextualLogger(logger ContextualLogger) Option {
	return func(ex *Executor) error {
		ex.contextualLogger = logger
		return nil
	}
}

// NewExecutor creates an Executor in front of the given engine.
func NewExecutor(engine Engine, options ...Option) (Executor, error) {
	if engine == nil {
		return Executor{}, ErrNilEngine
	}

	ex := Executor{engine: engine}

	for _, option := range options {
		if err := option(&ex); err != nil {
			return Executor{}, err
		}
	}

	return ex, nil
}

// Execute renders src exactly once, invokes the engine with the native
// arguments in declaration order, and returns the result as a lazy
// single-pass RowSeq. The sequence is fresh per call and must be consumed
// by a single caller; see RowSeq.
func (ex Executor) Execute(ctx context.Context, src Source, args ...Value) (*RowSeq, error) {
	queryText := src.Render()

	// A Query declares its full In source order; weave the caller arguments
	// through it so a rule alias source receives its rendered definitions.
	if query, ok := src.(Query); ok {
		args = query.engineArgs(args)
	}

	ctx, span := ex.startQuerySpan(ctx, operationQuery)

	rows, duration, queryErr := ex.executeEngineQuery(ctx, queryText, args, operationQuery)
	if queryErr != nil {
		ex.finishQuerySpanError(ctx, span, errorTypeEngine, operationQuery, duration)
		return nil, queryErr
	}

	// The span covers the engine round trip only; row consumption is lazy
	// and owned by the caller.
	ex.finishQuerySpanSuccess(ctx, span, -1, operationQuery, duration)

	return newRowSeq(rows), nil
}

// ExecuteTyped renders src exactly once, invokes the engine, and decodes
// every row through the decoder before returning. Decoding is all-or-nothing:
// the first row that fails with ErrArityMismatch or ErrTypeMismatch aborts
// the whole call and no partial result is returned. An empty engine result
// yields an empty slice, not an error.
//
// This is a free function because Go methods cannot introduce type
// parameters; it is the typed path of the Executor.
func ExecuteTyped[R any](
	ctx context.Context,
	ex Executor,
	src Source,
	decoder RowDecoder[R],
	args ...Value,
) ([]R, error) {

	queryText := src.Render()

	ctx, span := ex.startQuerySpan(ctx, operationTypedQuery)

	rows, duration, queryErr := ex.executeEngineQuery(ctx, queryText, args, operationTypedQuery)
	if queryErr != nil {
		ex.finishQuerySpanError(ctx, span, errorTypeEngine, operationTypedQuery, duration)
		return nil, queryErr
	}
	defer ex.closeRows(ctx, rows)

	results := make([]R, 0)

	for rows.Next() {
		row, rowErr := rows.Row()
		if rowErr != nil {
			ex.logError(ctx, logMsgReadRowFailed, rowErr)
			ex.finishQuerySpanError(ctx, span, errorTypeEngine, operationTypedQuery, duration)

			return nil, errors.Join(ErrEngineQuery, rowErr)
		}

		decoded, decodeErr := decoder.DecodeRow(row)
		if decodeErr != nil {
			ex.logError(ctx, logMsgDecodeRowFailed, decodeErr, logAttrRowCount, len(results))
			ex.finishQuerySpanError(ctx, span, errorTypeDecode, operationTypedQuery, duration)

			return nil, decodeErr
		}

		results = append(results, decoded)
	}

	ex.finishQuerySpanSuccess(ctx, span, len(results), operationTypedQuery, duration)
	ex.logOperation(
		ctx,
		logMsgQueryCompleted,
		logAttrRowCount, len(results),
		logAttrDurationMS, ex.toMilliseconds(duration))

	return results, nil
}

// executeEngineQuery performs the engine round trip with timing information.
func (ex Executor) executeEngineQuery(
	ctx context.Context,
	queryText string,
	args []Value,
	action string,
) (Rows, queryDuration, error) {

	start := time.Now()
	rows, queryErr := ex.engine.Query(ctx, queryText, args...)
	duration := time.Since(start)
	ex.logQueryWithDuration(ctx, queryText, action, duration)

	if queryErr != nil {
		ex.logError(ctx, logMsgEngineQueryFailed, queryErr, logAttrQuery, queryText, logAttrArgCount, len(args))
		ex.recordErrorMetrics(ctx, action, errorTypeEngine)

		return nil, duration, errors.Join(ErrEngineQuery, queryErr)
	}

	ex.recordDurationMetrics(ctx, metricQueryDuration, duration, action, statusSuccess)

	return rows, duration, nil
}

// closeRows safely closes the engine cursor and logs any errors.
func (ex Executor) closeRows(ctx context.Context, rows Rows) {
	if closeErr := rows.Close(); closeErr != nil {
		ex.logWarn(ctx, logMsgCloseRowsFailed, logAttrError, closeErr.Error())
	}
}

/***** observability helpers *****/

// logQueryWithDuration logs rendered queries with execution time at debug level.
func (ex Executor) logQueryWithDuration(ctx context.Context, queryText, action string, duration time.Duration) {
	if ex.contextualLogger != nil {
		ex.contextualLogger.DebugContext(ctx, logMsgQueryExecuted+action, logAttrDurationMS, ex.toMilliseconds(duration), logAttrQuery, queryText)
		return
	}

	if ex.logger != nil {
		ex.logger.Debug(logMsgQueryExecuted+action, logAttrDurationMS, ex.toMilliseconds(duration), logAttrQuery, queryText)
	}
}

// logOperation logs operational information at info level.
func (ex Executor) logOperation(ctx context.Context, action string, args ...any) {
	if ex.contextualLogger != nil {
		ex.contextualLogger.InfoContext(ctx, logMsgOperation+action, args...)
		return
	}

	if ex.logger != nil {
		ex.logger.Info(logMsgOperation+action, args...)
	}
}

// logWarn logs non-critical issues at warn level.
func (ex Executor) logWarn(ctx context.Context, message string, args ...any) {
	if ex.contextualLogger != nil {
		ex.contextualLogger.WarnContext(ctx, message, args...)
		return
	}

	if ex.logger != nil {
		ex.logger.Warn(message, args...)
	}
}

// logError logs error information at error level.
func (ex Executor) logError(ctx context.Context, message string, err error, args ...any) {
	allArgs := append([]any{logAttrError, err.Error()}, args...)

	if ex.contextualLogger != nil {
		ex.contextualLogger.ErrorContext(ctx, message, allArgs...)
		return
	}

	if ex.logger != nil {
		ex.logger.Error(message, allArgs...)
	}
}

// toMilliseconds converts a time.Duration to float64 milliseconds with 3 decimal places.
func (ex Executor) toMilliseconds(d time.Duration) float64 {
	return math.Round(float64(d.Nanoseconds())/1e6*1000) / 1000
}

// recordErrorMetrics records error counters, context-aware when the collector supports it.
func (ex Executor) recordErrorMetrics(ctx context.Context, operation, errorType string) {
	if ex.metricsCollector == nil {
		return
	}

	labels := map[string]string{
		spanAttrOperation: operation,
		"status":          statusError,
		spanAttrErrorType: errorType,
	}

	if contextualCollector, ok := ex.metricsCollector.(ContextualMetricsCollector); ok {
		contextualCollector.IncrementCounterContext(ctx, metricQueryErrors, labels)
	} else {
		ex.metricsCollector.IncrementCounter(metricQueryErrors, labels)
	}
}

// recordDurationMetrics records query durations, context-aware when the collector supports it.
func (ex Executor) recordDurationMetrics(
	ctx context.Context,
	metricName string,
	duration time.Duration,
	operation, status string,
) {
	if ex.metricsCollector == nil {
		return
	}

	labels := map[string]string{
		spanAttrOperation: operation,
		"status":          status,
	}

	if contextualCollector, ok := ex.metricsCollector.(ContextualMetricsCollector); ok {
		contextualCollector.RecordDurationContext(ctx, metricName, duration, labels)
	} else {
		ex.metricsCollector.RecordDuration(metricName, duration, labels)
	}
}

// recordRowCountMetrics records the number of rows a typed execution returned.
func (ex Executor) recordRowCountMetrics(ctx context.Context, rowCount int, operation string) {
	if ex.metricsCollector == nil {
		return
	}

	labels := map[string]string{
		spanAttrOperation: operation,
		"status":          statusSuccess,
	}

	if contextualCollector, ok := ex.metricsCollector.(ContextualMetricsCollector); ok {
		contextualCollector.RecordValueContext(ctx, metricQueryRows, float64(rowCount), labels)
	} else {
		ex.metricsCollector.RecordValue(metricQueryRows, float64(rowCount), labels)
	}
}

// startQuerySpan starts a tracing span for one engine round trip.
func (ex Executor) startQuerySpan(ctx context.Context, operation string) (context.Context, SpanContext) {
	if ex.tracingCollector == nil {
		return ctx, nil
	}

	return ex.tracingCollector.StartSpan(ctx, spanNameQuery, map[string]string{
		spanAttrOperation: operation,
	})
}

// finishQuerySpanSuccess finishes a successful query span. A negative
// rowCount means the row count is unknown because consumption is lazy.
func (ex Executor) finishQuerySpanSuccess(
	ctx context.Context,
	span SpanContext,
	rowCount int,
	operation string,
	duration time.Duration,
) {
	if rowCount >= 0 {
		ex.recordRowCountMetrics(ctx, rowCount, operation)
	}

	if ex.tracingCollector == nil || span == nil {
		return
	}

	attrs := map[string]string{
		spanAttrDurationMS: fmt.Sprintf("%.3f", ex.toMilliseconds(duration)),
	}

	if rowCount >= 0 {
		attrs[spanAttrRowCount] = fmt.Sprintf("%d", rowCount)
	}

	ex.tracingCollector.FinishSpan(span, statusSuccess, attrs)
}

// finishQuerySpanError finishes a query span with error details.
func (ex Executor) finishQuerySpanError(
	ctx context.Context,
	span SpanContext,
	errorType string,
	operation string,
	duration time.Duration,
) {
	if errorType == errorTypeDecode {
		ex.recordErrorMetrics(ctx, operation, errorType)
	}

	if ex.tracingCollector == nil || span == nil {
		return
	}

	ex.tracingCollector.FinishSpan(span, statusError, map[string]string{
		spanAttrErrorType:  errorType,
		spanAttrDurationMS: fmt.Sprintf("%.3f", ex.toMilliseconds(duration)),
	})
}
