package datalog_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peergraph/datalog-client-go/datalog"
)

func Test_StructuralValidator_AcceptsWellFormedText(t *testing.T) {
	validator := datalog.NewStructuralValidator()

	src, err := validator.Validate("[ :find ?e ?name :where [ ?e :person/name ?name ] ]")
	require.NoError(t, err)

	assert.Equal(t, "[ :find ?e ?name :where [ ?e :person/name ?name ] ]", src.Render())
}

func Test_StructuralValidator_TrimsSurroundingWhitespace(t *testing.T) {
	validator := datalog.NewStructuralValidator()

	src, err := validator.Validate("  [ :find ?e :where [ ?e :doc/id _ ] ]\n")
	require.NoError(t, err)

	assert.Equal(t, "[ :find ?e :where [ ?e :doc/id _ ] ]", src.Render())
}

func Test_StructuralValidator_Rejections(t *testing.T) {
	tests := []struct {
		name            string
		src             string
		expectedMessage string
	}{
		{name: "empty source", src: "   ", expectedMessage: "empty query source"},
		{name: "missing find", src: "[ :where [ ?e :doc/id _ ] ]", expectedMessage: "missing :find clause"},
		{name: "missing where", src: "[ :find ?e ]", expectedMessage: "missing :where clause"},
		{name: "where before find", src: "[ :where [ ?e :doc/id _ ] :find ?e ]", expectedMessage: ":where must follow :find"},
		{name: "unbalanced open bracket", src: "[ :find ?e :where [ ?e :doc/id _ ]", expectedMessage: "unbalanced '['"},
		{name: "unbalanced close bracket", src: ":find ?e ] :where", expectedMessage: "unbalanced ']'"},
		{name: "unbalanced parenthesis", src: "[ :find (count ?e :where [ ?e :doc/id _ ] ]", expectedMessage: "unbalanced '('"},
	}

	validator := datalog.NewStructuralValidator()

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := validator.Validate(tc.src)

			require.Error(t, err)

			var syntaxErr *datalog.SyntaxError
			require.ErrorAs(t, err, &syntaxErr)
			assert.Equal(t, tc.expectedMessage, syntaxErr.Message)
		})
	}
}

func Test_SyntaxError_ReportsOffset(t *testing.T) {
	err := &datalog.SyntaxError{Offset: 12, Message: "unbalanced ']'"}

	assert.Equal(t, "query syntax error at offset 12: unbalanced ']'", err.Error())
}

func Test_ValidatedSource_IsExecutable(t *testing.T) {
	validator := datalog.NewStructuralValidator()

	src, err := validator.Validate("[ :find ?e :where [ ?e :doc/id _ ] ]")
	require.NoError(t, err)

	// ValidatedSource satisfies the same execution contract as Query.
	var _ datalog.Source = src
}
