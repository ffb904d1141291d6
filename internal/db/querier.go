package db

import (
	"context"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// *DB satisfies Querier itself, with instrumentation: repositories built
// on the plain Querier interface get their statements recorded under the
// SQL text without knowing about the metrics layer.
var _ Querier = (*DB)(nil)

// Exec runs the statement on the pool and records it.
func (d *DB) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	return Execute(ctx, d, opName(sql), func(ctx context.Context) (pgconn.CommandTag, error) {
		return d.pool.Exec(ctx, sql, args...)
	})
}

// Query runs the query on the pool and records it.
func (d *DB) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return Execute(ctx, d, opName(sql), func(ctx context.Context) (pgx.Rows, error) {
		return d.pool.Query(ctx, sql, args...)
	})
}

// QueryRow returns a row whose Scan records the operation. pgx defers
// execution of a QueryRow until Scan is called, so timing the QueryRow
// call itself would always measure zero.
func (d *DB) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return &timedRow{
		row:   d.pool.QueryRow(ctx, sql, args...),
		d:     d,
		name:  opName(sql),
		start: time.Now(),
	}
}

type timedRow struct {
	row   pgx.Row
	d     *DB
	name  string
	start time.Time
}

func (r *timedRow) Scan(dest ...any) error {
	err := r.row.Scan(dest...)
	r.d.record(r.name, time.Since(r.start), err != nil && err != pgx.ErrNoRows)
	return err
}

// opName normalizes a SQL statement into a metric label: whitespace runs
// collapse so multi-line constants label the same as their single-line
// form. The set of statements is static, so label cardinality stays
// bounded.
func opName(sql string) string {
	return strings.Join(strings.Fields(sql), " ")
}
