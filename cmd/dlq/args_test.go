package main

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/peergraph/datalog-client-go/datalog"
)

func Test_ParseArg_Heuristics(t *testing.T) {
	id := uuid.MustParse("0196a4c3-dc2f-7b1c-9f7e-2f6a9a4c3dc2")

	tests := []struct {
		name     string
		token    string
		expected datalog.Value
	}{
		{name: "ref prefix", token: "ref:1001", expected: datalog.Ref(1001)},
		{name: "keyword", token: ":person/name", expected: datalog.Keyword("person/name")},
		{name: "true", token: "true", expected: datalog.Bool(true)},
		{name: "false", token: "false", expected: datalog.Bool(false)},
		{name: "integer", token: "42", expected: datalog.Int(42)},
		{name: "float", token: "1.5", expected: datalog.Float(1.5)},
		{name: "uuid", token: id.String(), expected: datalog.UUIDVal(id)},
		{name: "plain text falls back to string", token: "alice", expected: datalog.String("alice")},
		{name: "malformed ref prefix falls back to string", token: "ref:abc", expected: datalog.String("ref:abc")},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.True(t, tc.expected.Equal(parseArg(tc.token)), "token %q", tc.token)
		})
	}
}

func Test_ParseArgs_PreservesOrder(t *testing.T) {
	args := parseArgs([]string{"alice", "30", "ref:1001"})

	assert.Len(t, args, 3)
	assert.True(t, args[0].Equal(datalog.String("alice")))
	assert.True(t, args[1].Equal(datalog.Int(30)))
	assert.True(t, args[2].Equal(datalog.Ref(1001)))
}
