package datalog

import (
	"errors"
)

// ErrInvalidQueryShape is returned when a query or typed wrapper is constructed
// from clauses that violate the grammar: an empty :find, an empty :where, or
// declared arities that disagree with the wrapped query.
var ErrInvalidQueryShape = errors.New("invalid query shape")

// ErrUnsupportedValueType is returned when a domain value has no mapping to the
// engine's native value representation.
var ErrUnsupportedValueType = errors.New("unsupported value type")

// ErrArityMismatch is returned when a result row's length disagrees with the
// declared output arity.
var ErrArityMismatch = errors.New("row arity mismatch")

// ErrTypeMismatch is returned when a positional native value cannot be coerced
// to the expected domain type.
var ErrTypeMismatch = errors.New("value type mismatch")

// ErrEngineQuery is returned when the engine rejects or fails a query call.
// The engine's own diagnostic is always joined in verbatim.
var ErrEngineQuery = errors.New("engine query failed")

// ErrNilEngine is returned when an Executor is constructed without an engine.
var ErrNilEngine = errors.New("nil engine supplied")
