package postgresengine

import (
	"errors"

	"github.com/peergraph/datalog-client-go/datalog"
)

var (
	// ErrNilDatabaseConnection is returned when an Engine is created with a
	// nil database handle.
	ErrNilDatabaseConnection = errors.New("database connection must not be nil")

	// ErrEmptyFunctionName is returned when WithFunctionName is given an
	// empty name.
	ErrEmptyFunctionName = errors.New("engine function name must not be empty")
)

// Option configures an Engine.
type Option func(*Engine) error

// WithFunctionName overrides the name of the server-side function the Engine
// calls. The default is "datalog_query".
func WithFunctionName(name string) Option {
	return func(e *Engine) error {
		if name == "" {
			return ErrEmptyFunctionName
		}

		e.functionName = name

		return nil
	}
}

// WithLogger supplies a logger for debug and error output.
func WithLogger(logger datalog.Logger) Option {
	return func(e *Engine) error {
		e.logger = logger

		return nil
	}
}

// WithContextualLogger supplies a context-aware logger, preferred over the
// plain logger for error output when both are configured.
func WithContextualLogger(logger datalog.ContextualLogger) Option {
	return func(e *Engine) error {
		e.contextualLogger = logger

		return nil
	}
}
