package datalog_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peergraph/datalog-client-go/datalog"
	"github.com/peergraph/datalog-client-go/testutil/enginetest"
)

func Test_Exec0_NoArguments(t *testing.T) {
	query, err := datalog.BuildQuery().
		Find("?e", "?name").
		Where(datalog.P("?e", ":person/name", "?name")).
		Finalize()
	require.NoError(t, err)

	engine := enginetest.NewFakeEngine().FixResult(
		query.Render(),
		datalog.Row{datalog.Ref(1001), datalog.String("alice")},
	)

	executor, err := datalog.NewExecutor(engine)
	require.NoError(t, err)

	typed, err := datalog.NewTypedQuery0(
		query,
		datalog.Shape2[datalog.EntityID, string](datalog.EntityIDCodec{}, datalog.StringCodec{}),
	)
	require.NoError(t, err)

	results, err := datalog.Exec0(context.Background(), executor, typed)
	require.NoError(t, err)

	require.Len(t, results, 1)
	assert.Equal(t, datalog.EntityID(1001), results[0].V1)

	call, ok := engine.LastCall()
	require.True(t, ok)
	assert.Empty(t, call.Args)
}

func Test_Exec1_ConvertsArgumentThroughCodec(t *testing.T) {
	query, err := datalog.BuildQuery().
		Find("?e").
		In(datalog.DB(), datalog.Scalar("?name")).
		Where(datalog.P("?e", ":person/name", "?name")).
		Finalize()
	require.NoError(t, err)

	engine := enginetest.NewFakeEngine().FixResult(
		query.Render(),
		datalog.Row{datalog.Ref(1001)},
	)

	executor, err := datalog.NewExecutor(engine)
	require.NoError(t, err)

	typed, err := datalog.NewTypedQuery1(
		query,
		datalog.Shape1[datalog.EntityID](datalog.EntityIDCodec{}),
		datalog.StringCodec{},
	)
	require.NoError(t, err)

	results, err := datalog.Exec1(context.Background(), executor, typed, "alice")
	require.NoError(t, err)

	require.Len(t, results, 1)
	assert.Equal(t, datalog.EntityID(1001), results[0])

	call, ok := engine.LastCall()
	require.True(t, ok)
	require.Len(t, call.Args, 1)
	assert.True(t, call.Args[0].Equal(datalog.String("alice")))
}

func Test_Exec2_PassesArgumentsInDeclarationOrder(t *testing.T) {
	query, err := datalog.BuildQuery().
		Find("?e").
		In(datalog.DB(), datalog.Scalar("?name"), datalog.Scalar("?age")).
		Where(
			datalog.P("?e", ":person/name", "?name"),
			datalog.P("?e", ":person/age", "?age"),
		).
		Finalize()
	require.NoError(t, err)

	engine := enginetest.NewFakeEngine()

	executor, err := datalog.NewExecutor(engine)
	require.NoError(t, err)

	typed, err := datalog.NewTypedQuery2(
		query,
		datalog.Shape1[datalog.EntityID](datalog.EntityIDCodec{}),
		datalog.StringCodec{},
		datalog.Int64Codec{},
	)
	require.NoError(t, err)

	_, err = datalog.Exec2(context.Background(), executor, typed, "alice", 30)
	require.NoError(t, err)

	call, ok := engine.LastCall()
	require.True(t, ok)
	require.Len(t, call.Args, 2)
	assert.True(t, call.Args[0].Equal(datalog.String("alice")))
	assert.True(t, call.Args[1].Equal(datalog.Int(30)))
}

func Test_Exec1_WeavesRuleAliasIntoArguments(t *testing.T) {
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

	typed, err := datalog.NewTypedQuery1(
		query,
		datalog.Shape1[datalog.EntityID](datalog.EntityIDCodec{}),
		datalog.EntityIDCodec{},
	)
	require.NoError(t, err)

	_, err = datalog.Exec1(context.Background(), executor, typed, datalog.EntityID(1001))
	require.NoError(t, err)

	call, ok := engine.LastCall()
	require.True(t, ok)
	require.Len(t, call.Args, 2, "the rule alias travels as an engine argument")
	assert.True(t, call.Args[0].Equal(datalog.Ref(1001)))
	assert.True(t, call.Args[1].Equal(datalog.String(rules.Render())))
}

func Test_Exec8_PassesAllEightArguments(t *testing.T) {
	sources := []datalog.InSource{datalog.DB()}
	patterns := make([]datalog.WhereClause, 0, 8)
	for _, v := range []string{"?a1", "?a2", "?a3", "?a4", "?a5", "?a6", "?a7", "?a8"} {
		sources = append(sources, datalog.Scalar(v))
		patterns = append(patterns, datalog.P("?e", ":doc/field", v))
	}

	query, err := datalog.NewQuery(
		datalog.NewFind("?e"),
		datalog.NewWhere(patterns[0], patterns[1:]...),
		datalog.UsingIn(datalog.NewIn(sources...)),
	)
	require.NoError(t, err)

	engine := enginetest.NewFakeEngine()

	executor, err := datalog.NewExecutor(engine)
	require.NoError(t, err)

	c := datalog.Int64Codec{}
	typed, err := datalog.NewTypedQuery8(
		query,
		datalog.Shape1[datalog.EntityID](datalog.EntityIDCodec{}),
		c, c, c, c, c, c, c, c,
	)
	require.NoError(t, err)

	_, err = datalog.Exec8(context.Background(), executor, typed, 1, 2, 3, 4, 5, 6, 7, 8)
	require.NoError(t, err)

	call, ok := engine.LastCall()
	require.True(t, ok)
	require.Len(t, call.Args, 8)

	for i, arg := range call.Args {
		assert.True(t, arg.Equal(datalog.Int(int64(i+1))), "argument %d out of order", i+1)
	}
}
