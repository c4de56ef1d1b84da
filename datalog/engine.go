package datalog

import (
	"context"
)

// Engine is the single I/O boundary of this package: one synchronous call
// that takes rendered query text plus native arguments and returns rows. The
// datalog evaluation behind it is a black box; implementations live in
// subpackages (e.g. postgresengine) or in client code.
type Engine interface {
	Query(ctx context.Context, queryText string, args ...Value) (Rows, error)
}

// Rows is a stateful cursor over one engine result. It is consumed by a
// single caller and closed once.
type Rows interface {
	// Next advances to the next row, reporting false when exhausted.
	Next() bool

	// Row returns the current row's native values.
	Row() (Row, error)

	// Close releases the cursor.
	Close() error
}

// EngineFunc adapts a function to the Engine interface.
type EngineFunc func(ctx context.Context, queryText string, args ...Value) (Rows, error)

// Query calls the wrapped function.
func (f EngineFunc) Query(ctx context.Context, queryText string, args ...Value) (Rows, error) {
	return f(ctx, queryText, args...)
}
