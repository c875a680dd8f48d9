package postgres

import (
	"context"
	"database/sql"
)

// Queryer is the read surface repositories need; *sql.DB, *sql.Tx and Connection satisfy it
type Queryer interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Execer runs statements that return no rows
type Execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}
