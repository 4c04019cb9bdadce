package sink

import (
	"context"
	"fmt"
	"log"

	"athletes/internal/config"
	"athletes/internal/ddl"
	"athletes/internal/records"
	"athletes/internal/schema"
	"athletes/internal/storage"
)

// Database mirrors the table into a storage backend. Batches are committed
// as they load, so the returned Staged has nothing left to publish.
type Database struct {
	Kind       string
	DSN        string
	Table      string
	AutoCreate bool
	BatchSize  int
}

// FromStorage returns the database sink for cfg, or nil when storage is
// disabled.
func FromStorage(cfg config.Storage) *Database {
	if !cfg.Enabled() {
		return nil
	}
	table := cfg.DB.Table
	if table == "" {
		table = "athletes"
	}
	return &Database{
		Kind:       cfg.Kind,
		DSN:        cfg.DB.DSN,
		Table:      table,
		AutoCreate: cfg.DB.AutoCreateTable,
		BatchSize:  cfg.DB.BatchSize,
	}
}

func (d *Database) Name() string { return d.Kind + ":" + d.Table }

func (d *Database) Write(ctx context.Context, s schema.Schema, rows []records.Record) (Staged, error) {
	columns := s.Names()
	repo, err := storage.New(ctx, storage.Config{Kind: d.Kind, DSN: d.DSN, Table: d.Table, Columns: columns})
	if err != nil {
		return Staged{}, fmt.Errorf("%s sink: open: %w", d.Kind, err)
	}
	defer repo.Close()

	if d.AutoCreate {
		dialect, err := dialectFor(d.Kind)
		if err != nil {
			return Staged{}, err
		}
		if err := storage.EnsureTable(ctx, d.Kind, repo, dialect.FromSchema(d.Table, s)); err != nil {
			return Staged{}, err
		}
		log.Printf("%s sink: ensured table %s", d.Kind, d.Table)
	}

	values := make([][]any, len(rows))
	for i, r := range rows {
		values[i] = s.Values(r)
	}
	n, err := storage.Load(ctx, repo, columns, values, d.BatchSize)
	if err != nil {
		return Staged{}, err
	}
	return Staged{Rows: n}, nil
}

func dialectFor(kind string) (ddl.Dialect, error) {
	switch kind {
	case "sqlite":
		return ddl.SQLite, nil
	case "postgres":
		return ddl.Postgres, nil
	case "mssql":
		return ddl.MSSQL, nil
	case "mysql":
		return ddl.MySQL, nil
	}
	return ddl.Dialect{}, fmt.Errorf("no SQL dialect for storage kind %q", kind)
}
