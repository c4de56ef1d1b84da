package adapters

import "context"

// DBAdapter defines the interface for database operations needed by the
// engine. The engine call path is read-only, so query execution is all an
// adapter has to provide.
type DBAdapter interface {
	Query(ctx context.Context, query string) (DBRows, error)
}

// DBRows defines the interface for query result rows.
type DBRows interface {
	Next() bool
	Scan(dest ...any) error
	Close() error
}
