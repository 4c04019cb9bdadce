// Package mssql implements a SQL Server storage.Repository on the go-mssqldb
// bulk copy API. Each batch is streamed with one CopyIn statement inside its
// own transaction.
package mssql

import (
	"context"
	"database/sql"
	"fmt"

	mssql "github.com/microsoft/go-mssqldb"
	"github.com/microsoft/go-mssqldb/msdsn"
)

// Config holds MSSQL repository configuration.
type Config struct {
	DSN   string
	Table string
}

// Repository writes athlete batches into one SQL Server table.
type Repository struct {
	db    *sql.DB
	table string
}

// NewRepository validates the DSN, opens the pool and pings the server.
func NewRepository(ctx context.Context, cfg Config) (*Repository, func(), error) {
	if _, err := msdsn.Parse(cfg.DSN); err != nil {
		return nil, nil, fmt.Errorf("mssql dsn: %w", err)
	}
	db, err := sql.Open("sqlserver", cfg.DSN)
	if err != nil {
		return nil, nil, fmt.Errorf("mssql open: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("mssql ping: %w", err)
	}
	return &Repository{db: db, table: cfg.Table}, func() { _ = db.Close() }, nil
}

// bulkOptions keeps explicit NULLs (missing city, weight, ...) instead of
// letting column defaults fill them, and locks the table for the batch.
func bulkOptions(n int) mssql.BulkOptions {
	return mssql.BulkOptions{KeepNulls: true, Tablock: true, RowsPerBatch: n}
}

// CopyFrom bulk-inserts rows into the table. A failure rolls the batch back.
func (r *Repository) CopyFrom(ctx context.Context, columns []string, rows [][]any) (n int64, err error) {
	if len(rows) == 0 {
		return 0, nil
	}
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	n, err = copyIn(ctx, tx, mssql.CopyIn(r.table, bulkOptions(len(rows)), columns...), rows)
	if err != nil {
		return 0, err
	}
	if err = tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	return n, nil
}

func copyIn(ctx context.Context, tx *sql.Tx, query string, rows [][]any) (int64, error) {
	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("prepare bulk copy: %w", err)
	}
	defer stmt.Close()

	for i, row := range rows {
		if _, err := stmt.ExecContext(ctx, row...); err != nil {
			return 0, fmt.Errorf("bulk row %d: %w", i, err)
		}
	}
	// Exec with no arguments flushes the buffered rows to the server.
	res, err := stmt.ExecContext(ctx)
	if err != nil {
		return 0, fmt.Errorf("bulk flush: %w", err)
	}
	return res.RowsAffected()
}

// Exec runs one statement outside any batch transaction.
func (r *Repository) Exec(ctx context.Context, sqlText string) error {
	if _, err := r.db.ExecContext(ctx, sqlText); err != nil {
		return fmt.Errorf("mssql exec: %w", err)
	}
	return nil
}
