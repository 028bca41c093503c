// Package dbx holds the minimal database/sql surface shared by the
// repositories. Both *sql.DB and *sql.Tx satisfy DBTX, so a repository can
// run against a plain connection or inside a caller-managed transaction.
package dbx

import (
	"context"
	"database/sql"
)

type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}
