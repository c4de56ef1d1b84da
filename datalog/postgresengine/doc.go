// Package postgresengine reaches a datalog engine hosted behind PostgreSQL.
//
// The engine itself is opaque: it is exposed as a server-side set-returning
// function (datalog_query by default) that takes the rendered query text and
// a jsonb array of native arguments and returns one jsonb array per result
// row. This package builds the SELECT around that function, encodes the
// native arguments to the engine's JSON wire form, and decodes each returned
// row back into native values.
//
// Three database adapters are supported (pgx pool, database/sql, sqlx), all
// presenting the same behavior through a common internal adapter interface.
//
// Usage:
//
//	pool, _ := pgxpool.New(ctx, dsn)
//	engine, _ := postgresengine.NewEngineFromPGXPool(pool)
//	executor, _ := datalog.NewExecutor(engine)
package postgresengine
