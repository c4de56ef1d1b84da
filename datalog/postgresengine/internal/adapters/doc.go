// Package adapters provides database adapter implementations for the
// PostgreSQL-hosted datalog engine.
//
// The adapter pattern supports multiple PostgreSQL client libraries
// (pgx.Pool, sql.DB, sqlx.DB) behind a common DBAdapter interface, so the
// engine works with whichever connection type the application already holds.
package adapters
