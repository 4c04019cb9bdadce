package sqlite

import (
	"context"

	"athletes/internal/ddl"
	"athletes/internal/storage"
)

// newRepository is swapped by tests to avoid a live server.
var newRepository = NewRepository

func init() {
	storage.Register("sqlite", open)
	storage.RegisterDDL("sqlite", storage.DialectBootstrapper(ddl.SQLite))
}

func open(ctx context.Context, cfg storage.Config) (storage.Repository, error) {
	r, closeFn, err := newRepository(ctx, Config{DSN: cfg.DSN, Table: cfg.Table})
	if err != nil {
		return nil, err
	}
	return storage.WithClose(r, closeFn), nil
}
