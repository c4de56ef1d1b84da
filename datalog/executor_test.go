package datalog_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peergraph/datalog-client-go/datalog"
	"github.com/peergraph/datalog-client-go/testutil/enginetest"
	"github.com/peergraph/datalog-client-go/testutil/observability"
)

func personNameQuery(t *testing.T) datalog.Query {
	t.Helper()

	query, err := datalog.BuildQuery().
		Find("?e", "?name").
		Where(datalog.P("?e", ":person/name", "?name")).
		Finalize()
	require.NoError(t, err)

	return query
}

func Test_NewExecutor_RejectsNilEngine(t *testing.T) {
	_, err := datalog.NewExecutor(nil)

	require.Error(t, err)
	assert.ErrorIs(t, err, datalog.ErrNilEngine)
}

func Test_Executor_Execute_StreamsRawRows(t *testing.T) {
	query := personNameQuery(t)

	engine := enginetest.NewFakeEngine().FixResult(
		query.Render(),
		datalog.Row{datalog.Ref(1001), datalog.String("alice")},
		datalog.Row{datalog.Ref(1002), datalog.String("bob")},
	)

	executor, err := datalog.NewExecutor(engine)
	require.NoError(t, err)

	seq, err := executor.Execute(context.Background(), query)
	require.NoError(t, err)
	defer func() { require.NoError(t, seq.Close()) }()

	var rows []datalog.Row
	for seq.Next() {
		rows = append(rows, seq.Row())
	}
	require.NoError(t, seq.Err())

	require.Len(t, rows, 2)
	assert.True(t, rows[0][0].Equal(datalog.Ref(1001)))
	assert.True(t, rows[1][1].Equal(datalog.String("bob")))
}

func Test_Executor_Execute_RendersOncePerCall(t *testing.T) {
	query := personNameQuery(t)
	engine := enginetest.NewFakeEngine()

	executor, err := datalog.NewExecutor(engine)
	require.NoError(t, err)

	seq, err := executor.Execute(context.Background(), query)
	require.NoError(t, err)
	require.NoError(t, seq.Close())

	require.Equal(t, 1, engine.CallCount())
	call, ok := engine.LastCall()
	require.True(t, ok)
	assert.Equal(t, "[ :find ?e ?name :where [ ?e :person/name ?name ] ]", call.QueryText)
}

func Test_Executor_Execute_WeavesRuleAliasIntoArguments(t *testing.T) {
	rules, err := datalog.NewRuleAlias("social", "[(follows ?a ?b) [?a :user/follows ?b]]")
	require.NoError(t, err)

	query, err := datalog.BuildQuery().
		Find("?b").
		In(datalog.DB(), datalog.Scalar("?a"), datalog.Rules()).
		Where(datalog.Rule("follows", "?a", "?b")).
		UsingRules(rules).
		Finalize()
	require.NoError(t, err)

	engine := enginetest.NewFakeEngine()

	executor, err := datalog.NewExecutor(engine)
	require.NoError(t, err)

	seq, err := executor.Execute(context.Background(), query, datalog.Ref(1001))
	require.NoError(t, err)
	require.NoError(t, seq.Close())

	call, ok := engine.LastCall()
	require.True(t, ok)
	require.Len(t, call.Args, 2, "the rule alias travels as an engine argument")
	assert.True(t, call.Args[0].Equal(datalog.Ref(1001)))
	assert.True(t, call.Args[1].Equal(datalog.String(rules.Render())))
}

func Test_Executor_Execute_EngineFailure(t *testing.T) {
	query := personNameQuery(t)
	connectionErr := errors.New("connection refused")
	engine := enginetest.NewFakeEngine().FixError(query.Render(), connectionErr)

	executor, err := datalog.NewExecutor(engine)
	require.NoError(t, err)

	_, err = executor.Execute(context.Background(), query)

	require.Error(t, err)
	assert.ErrorIs(t, err, datalog.ErrEngineQuery)
	assert.ErrorIs(t, err, connectionErr, "the engine's error must stay inspectable")
}

func Test_ExecuteTyped_DecodesAllRows(t *testing.T) {
	query := personNameQuery(t)

	engine := enginetest.NewFakeEngine().FixResult(
		query.Render(),
		datalog.Row{datalog.Ref(1001), datalog.String("alice")},
		datalog.Row{datalog.Ref(1002), datalog.String("bob")},
	)

	executor, err := datalog.NewExecutor(engine)
	require.NoError(t, err)

	decoder := datalog.Shape2[datalog.EntityID, string](datalog.EntityIDCodec{}, datalog.StringCodec{})

	results, err := datalog.ExecuteTyped(context.Background(), executor, query, decoder)
	require.NoError(t, err)

	require.Len(t, results, 2)
	assert.Equal(t, datalog.EntityID(1001), results[0].V1)
	assert.Equal(t, "alice", results[0].V2)
	assert.Equal(t, datalog.EntityID(1002), results[1].V1)
	assert.Equal(t, "bob", results[1].V2)
}

func Test_ExecuteTyped_EmptyResultYieldsEmptySlice(t *testing.T) {
	query := personNameQuery(t)
	engine := enginetest.NewFakeEngine()

	executor, err := datalog.NewExecutor(engine)
	require.NoError(t, err)

	results, err := datalog.ExecuteTyped(context.Background(), executor, query, datalog.Unshaped())

	require.NoError(t, err)
	assert.NotNil(t, results)
	assert.Empty(t, results)
}

func Test_ExecuteTyped_DecodeFailureAbortsWholeCall(t *testing.T) {
	query := personNameQuery(t)

	// The second row misdeclares its name column; the first row alone must
	// never be surfaced.
	engine := enginetest.NewFakeEngine().FixResult(
		query.Render(),
		datalog.Row{datalog.Ref(1001), datalog.String("alice")},
		datalog.Row{datalog.Ref(1002), datalog.Int(42)},
	)

	executor, err := datalog.NewExecutor(engine)
	require.NoError(t, err)

	decoder := datalog.Shape2[datalog.EntityID, string](datalog.EntityIDCodec{}, datalog.StringCodec{})

	results, err := datalog.ExecuteTyped(context.Background(), executor, query, decoder)

	require.Error(t, err)
	assert.ErrorIs(t, err, datalog.ErrTypeMismatch)
	assert.Nil(t, results)
}

func Test_ExecuteTyped_ArityMismatchAbortsWholeCall(t *testing.T) {
	query := personNameQuery(t)

	engine := enginetest.NewFakeEngine().FixResult(
		query.Render(),
		datalog.Row{datalog.Ref(1001)},
	)

	executor, err := datalog.NewExecutor(engine)
	require.NoError(t, err)

	decoder := datalog.Shape2[datalog.EntityID, string](datalog.EntityIDCodec{}, datalog.StringCodec{})

	_, err = datalog.ExecuteTyped(context.Background(), executor, query, decoder)

	require.Error(t, err)
	assert.ErrorIs(t, err, datalog.ErrArityMismatch)
}

func Test_Executor_RecordsMetricsAndSpans(t *testing.T) {
	query := personNameQuery(t)

	engine := enginetest.NewFakeEngine().FixResult(
		query.Render(),
		datalog.Row{datalog.Ref(1001), datalog.String("alice")},
	)

	metrics := observability.NewMetricsCollectorSpy()
	tracing := observability.NewTracingCollectorSpy()

	executor, err := datalog.NewExecutor(engine,
		datalog.WithMetrics(metrics),
		datalog.WithTracing(tracing),
	)
	require.NoError(t, err)

	_, err = datalog.ExecuteTyped(context.Background(), executor, query, datalog.Unshaped())
	require.NoError(t, err)

	assert.True(t, metrics.HasDurationRecord("datalog_query_duration_seconds", map[string]string{
		"operation": "typed_query",
		"status":    "success",
	}))
	assert.True(t, metrics.HasValueRecord("datalog_query_rows", map[string]string{
		"operation": "typed_query",
	}))
	assert.Positive(t, metrics.ContextualCallCount(), "the spy supports contextual recording, so it must be used")
	assert.True(t, tracing.HasSpanRecord("datalog.query", "success"))
}

func Test_Executor_RecordsErrorMetricsOnEngineFailure(t *testing.T) {
	query := personNameQuery(t)
	engine := enginetest.NewFakeEngine().FixError(query.Render(), errors.New("boom"))

	metrics := observability.NewMetricsCollectorSpy()
	tracing := observability.NewTracingCollectorSpy()

	executor, err := datalog.NewExecutor(engine,
		datalog.WithMetrics(metrics),
		datalog.WithTracing(tracing),
	)
	require.NoError(t, err)

	_, err = datalog.ExecuteTyped(context.Background(), executor, query, datalog.Unshaped())
	require.Error(t, err)

	assert.True(t, metrics.HasCounterRecord("datalog_query_errors_total", map[string]string{
		"operation":  "typed_query",
		"status":     "error",
		"error_type": "engine",
	}))
	assert.True(t, tracing.HasSpanRecord("datalog.query", "error"))
}

func Test_Executor_PrefersContextualLogger(t *testing.T) {
	query := personNameQuery(t)
	engine := enginetest.NewFakeEngine().FixError(query.Render(), errors.New("boom"))

	plain := observability.NewLoggerSpy()
	contextual := observability.NewContextualLoggerSpy()

	executor, err := datalog.NewExecutor(engine,
		datalog.WithLogger(plain),
		datalog.WithContextualLogger(contextual),
	)
	require.NoError(t, err)

	_, err = executor.Execute(context.Background(), query)
	require.Error(t, err)

	assert.True(t, contextual.HasRecord("error", "engine query execution failed"))
	assert.Empty(t, plain.Records(), "the contextual logger wins when both are configured")
}

func Test_Executor_LogsThroughPlainLoggerWhenAlone(t *testing.T) {
	query := personNameQuery(t)
	engine := enginetest.NewFakeEngine()

	plain := observability.NewLoggerSpy()

	executor, err := datalog.NewExecutor(engine, datalog.WithLogger(plain))
	require.NoError(t, err)

	_, err = datalog.ExecuteTyped(context.Background(), executor, query, datalog.Unshaped())
	require.NoError(t, err)

	assert.True(t, plain.HasRecord("info", "executor operation: query completed"))
}

func Test_ExecuteTyped_ClosesEngineCursor(t *testing.T) {
	query := personNameQuery(t)

	rows := enginetest.NewSliceRows(datalog.Row{datalog.Ref(1001), datalog.String("alice")})
	engine := datalog.EngineFunc(func(context.Context, string, ...datalog.Value) (datalog.Rows, error) {
		return rows, nil
	})

	executor, err := datalog.NewExecutor(engine)
	require.NoError(t, err)

	_, err = datalog.ExecuteTyped(context.Background(), executor, query, datalog.Unshaped())
	require.NoError(t, err)

	assert.True(t, rows.Closed())
}

func Test_ExecuteTyped_RowReadFailure(t *testing.T) {
	query := personNameQuery(t)
	readErr := errors.New("cursor gone")

	engine := datalog.EngineFunc(func(context.Context, string, ...datalog.Value) (datalog.Rows, error) {
		return enginetest.NewErrRows(readErr), nil
	})

	executor, err := datalog.NewExecutor(engine)
	require.NoError(t, err)

	_, err = datalog.ExecuteTyped(context.Background(), executor, query, datalog.Unshaped())

	require.Error(t, err)
	assert.ErrorIs(t, err, datalog.ErrEngineQuery)
	assert.ErrorIs(t, err, readErr)
}
