package postgresengine

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // register the dialect
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"

	"github.com/peergraph/datalog-client-go/datalog"
	"github.com/peergraph/datalog-client-go/datalog/postgresengine/internal/adapters"
)

const (
	defaultFunctionName = "datalog_query"
	resultColumnName    = "result"
)

var postgresDialect = goqu.Dialect("postgres") //nolint:gochecknoglobals

// Engine runs rendered query text against a Postgres database by calling a
// set-returning SQL function that evaluates the query server-side and returns
// one jsonb array per result row.
//
// Engine implements datalog.Engine.
type Engine struct {
	db               adapters.DBAdapter
	functionName     string
	logger           datalog.Logger
	contextualLogger datalog.ContextualLogger
}

// NewEngineFromPGXPool creates an Engine using the pgx connection pool library.
func NewEngineFromPGXPool(pool *pgxpool.Pool, options ...Option) (*Engine, error) {
	if pool == nil {
		return nil, ErrNilDatabaseConnection
	}

	return newEngine(adapters.NewPGXAdapter(pool), options...)
}

// NewEngineFromPGXPoolWithReplica creates an Engine that routes queries to a
// read replica pool.
func NewEngineFromPGXPoolWithReplica(pool *pgxpool.Pool, replicaPool *pgxpool.Pool, options ...Option) (*Engine, error) {
	if pool == nil || replicaPool == nil {
		return nil, ErrNilDatabaseConnection
	}

	return newEngine(adapters.NewPGXAdapterWithReplica(pool, replicaPool), options...)
}

// NewEngineFromSQLDB creates an Engine using the database/sql library.
func NewEngineFromSQLDB(db *sql.DB, options ...Option) (*Engine, error) {
	if db == nil {
		return nil, ErrNilDatabaseConnection
	}

	return newEngine(adapters.NewSQLAdapter(db), options...)
}

// NewEngineFromSQLX creates an Engine using the sqlx library.
func NewEngineFromSQLX(db *sqlx.DB, options ...Option) (*Engine, error) {
	if db == nil {
		return nil, ErrNilDatabaseConnection
	}

	return newEngine(adapters.NewSQLXAdapter(db), options...)
}

func newEngine(adapter adapters.DBAdapter, options ...Option) (*Engine, error) {
	engine := &Engine{
		db:           adapter,
		functionName: defaultFunctionName,
	}

	for _, option := range options {
		if err := option(engine); err != nil {
			return nil, fmt.Errorf("applying option: %w", err)
		}
	}

	return engine, nil
}

// Query implements datalog.Engine by encoding the native arguments to the
// jsonb wire form, invoking the configured server-side function, and exposing
// the resulting jsonb rows as a lazily decoded cursor.
func (e *Engine) Query(ctx context.Context, queryText string, args ...datalog.Value) (datalog.Rows, error) {
	argsJSON, err := encodeArgs(args)
	if err != nil {
		return nil, err
	}

	sqlQuery, err := e.buildStatement(queryText, argsJSON)
	if err != nil {
		return nil, err
	}

	e.logDebug("querying datalog engine function", "function", e.functionName)

	dbRows, err := e.db.Query(ctx, sqlQuery)
	if err != nil {
		e.logError(ctx, "datalog engine function query failed", "error", err.Error())

		return nil, err
	}

	return &engineRows{rows: dbRows}, nil
}

// buildStatement renders the SELECT over the engine function with the query
// text and the argument array interpolated as literals, so the statement can
// be sent without a separate parameter round trip.
func (e *Engine) buildStatement(queryText string, argsJSON []byte) (string, error) {
	call := fmt.Sprintf("%s(?::text, ?::jsonb)", e.functionName)

	sqlQuery, _, err := postgresDialect.
		From(goqu.L(call, queryText, string(argsJSON))).
		Select(goqu.C(resultColumnName)).
		ToSQL()
	if err != nil {
		return "", fmt.Errorf("building engine statement: %w", err)
	}

	return sqlQuery, nil
}

func (e *Engine) logDebug(msg string, keysAndValues ...any) {
	if e.logger != nil {
		e.logger.Debug(msg, keysAndValues...)
	}
}

func (e *Engine) logError(ctx context.Context, msg string, keysAndValues ...any) {
	if e.contextualLogger != nil {
		e.contextualLogger.ErrorContext(ctx, msg, keysAndValues...)

		return
	}

	if e.logger != nil {
		e.logger.Error(msg, keysAndValues...)
	}
}

// engineRows adapts a database cursor of single-column jsonb rows to
// datalog.Rows, decoding each row on demand.
type engineRows struct {
	rows adapters.DBRows
	err  error
}

func (r *engineRows) Next() bool {
	if r.err != nil {
		return false
	}

	return r.rows.Next()
}

func (r *engineRows) Row() (datalog.Row, error) {
	var raw []byte
	if err := r.rows.Scan(&raw); err != nil {
		r.err = errors.Join(datalog.ErrEngineQuery, err)

		return nil, r.err
	}

	row, err := decodeWireRow(raw)
	if err != nil {
		r.err = err

		return nil, r.err
	}

	return row, nil
}

func (r *engineRows) Close() error {
	return r.rows.Close()
}
