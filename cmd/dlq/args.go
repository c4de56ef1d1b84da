package main

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/peergraph/datalog-client-go/datalog"
)

// parseArg maps a command line token to a native value. Tokens are untyped
// text, so the mapping is heuristic: prefixed forms win, then literal forms
// in order of specificity, and plain text falls back to a string.
//
//	ref:1001        entity reference
//	:person/name    keyword
//	true / false    boolean
//	42              integer
//	1.5             float
//	uuid literal    uuid
//	RFC3339 stamp   instant
//	anything else   string
func parseArg(token string) datalog.Value {
	if id, ok := strings.CutPrefix(token, "ref:"); ok {
		if n, err := strconv.ParseInt(id, 10, 64); err == nil {
			return datalog.Ref(n)
		}
	}

	if strings.HasPrefix(token, ":") {
		return datalog.Keyword(token)
	}

	if token == "true" || token == "false" {
		return datalog.Bool(token == "true")
	}

	if n, err := strconv.ParseInt(token, 10, 64); err == nil {
		return datalog.Int(n)
	}

	if f, err := strconv.ParseFloat(token, 64); err == nil {
		return datalog.Float(f)
	}

	if u, err := uuid.Parse(token); err == nil {
		return datalog.UUIDVal(u)
	}

	if ts, err := time.Parse(time.RFC3339, token); err == nil {
		return datalog.Instant(ts)
	}

	return datalog.String(token)
}

func parseArgs(tokens []string) []datalog.Value {
	args := make([]datalog.Value, len(tokens))
	for i, token := range tokens {
		args[i] = parseArg(token)
	}

	return args
}
