package datalog_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peergraph/datalog-client-go/datalog"
)

func Test_NewFind_DropsEmptySpecsAndPreservesOrder(t *testing.T) {
	find := datalog.NewFind("?e", "", "?name", "?e")

	assert.Equal(t, []string{"?e", "?name", "?e"}, find.Specs(), "order and duplicates are positionally meaningful")
	assert.Equal(t, 3, find.Len())
}

func Test_Find_Equal(t *testing.T) {
	assert.True(t, datalog.NewFind("?e", "?name").Equal(datalog.NewFind("?e", "?name")))
	assert.False(t, datalog.NewFind("?e", "?name").Equal(datalog.NewFind("?name", "?e")), "order matters")
	assert.False(t, datalog.NewFind("?e").Equal(datalog.NewFind("?e", "?name")))
}

func Test_In_ScalarArity_CountsOnlyScalarSources(t *testing.T) {
	in := datalog.NewIn(datalog.DB(), datalog.Scalar("?name"), datalog.Rules(), datalog.Scalar("?age"))

	assert.Equal(t, 4, in.Len())
	assert.Equal(t, 2, in.ScalarArity(), "neither $ nor % consumes a caller argument")
}

func Test_InSource_Constructors(t *testing.T) {
	tests := []struct {
		name         string
		source       datalog.InSource
		expectedKind datalog.SourceKind
		expectedName string
	}{
		{name: "database source", source: datalog.DB(), expectedKind: datalog.SourceDatabase, expectedName: "$"},
		{name: "scalar source", source: datalog.Scalar("?name"), expectedKind: datalog.SourceScalar, expectedName: "?name"},
		{name: "rules source", source: datalog.Rules(), expectedKind: datalog.SourceRules, expectedName: "%"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expectedKind, tc.source.Kind())
			assert.Equal(t, tc.expectedName, tc.source.Name())
		})
	}
}

func Test_Pattern_Accessors(t *testing.T) {
	p := datalog.P("?e", ":person/name", "?name")

	assert.Equal(t, "?e", p.Entity())
	assert.Equal(t, ":person/name", p.Attribute())
	assert.Equal(t, "?name", p.Value())
}

func Test_Pred_TrimsWhitespace(t *testing.T) {
	assert.Equal(t, "> ?age 21", datalog.Pred("  > ?age 21 ").Expr())
}

func Test_Rule_CopiesArgs(t *testing.T) {
	args := []string{"?e", "?c"}
	rule := datalog.Rule("community", args...)

	args[0] = "?mutated"

	assert.Equal(t, []string{"?e", "?c"}, rule.Args())
	assert.Equal(t, "community", rule.Name())
}

func Test_NewRuleAlias_RequiresNameAndDefinition(t *testing.T) {
	tests := []struct {
		name        string
		build       func() (datalog.RuleAlias, error)
		expectError bool
	}{
		{
			name: "name and one definition",
			build: func() (datalog.RuleAlias, error) {
				return datalog.NewRuleAlias("social", "[(follows ?a ?b) [?a :user/follows ?b]]")
			},
			expectError: false,
		},
		{
			name: "empty name",
			build: func() (datalog.RuleAlias, error) {
				return datalog.NewRuleAlias("", "[(follows ?a ?b) [?a :user/follows ?b]]")
			},
			expectError: true,
		},
		{
			name: "only empty definitions",
			build: func() (datalog.RuleAlias, error) {
				return datalog.NewRuleAlias("social", "", "")
			},
			expectError: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			alias, err := tc.build()

			if tc.expectError {
				require.Error(t, err)
				assert.ErrorIs(t, err, datalog.ErrInvalidQueryShape)
				assert.True(t, alias.IsZero())

				return
			}

			require.NoError(t, err)
			assert.False(t, alias.IsZero())
		})
	}
}

func Test_RuleAlias_Render_JoinsDefinitionsInline(t *testing.T) {
	alias, err := datalog.NewRuleAlias(
		"social",
		"[(follows ?a ?b) [?a :user/follows ?b]]",
		"[(follows ?a ?b) [?a :user/follows ?x] (follows ?x ?b)]",
	)
	require.NoError(t, err)

	expected := "[ [(follows ?a ?b) [?a :user/follows ?b]] [(follows ?a ?b) [?a :user/follows ?x] (follows ?x ?b)] ]"
	assert.Equal(t, expected, alias.Render())
}

func Test_Where_Equal_ComparesClauseKinds(t *testing.T) {
	patterns := datalog.NewWhere(datalog.P("?e", ":person/name", "?name"))
	samePatterns := datalog.NewWhere(datalog.P("?e", ":person/name", "?name"))
	predicate := datalog.NewWhere(datalog.Pred("some ?e"))

	assert.True(t, patterns.Equal(samePatterns))
	assert.False(t, patterns.Equal(predicate), "a pattern never equals a predicate")
}
