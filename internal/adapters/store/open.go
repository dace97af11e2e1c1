package store

import (
	"designer-finder-service/internal/config"
	"designer-finder-service/internal/platform/db"
	"fmt"
)

// Backend is a designer store that can initialize its own storage and take
// imported records.
type Backend interface {
	Importer
	Init() error
}

// Open builds and initializes the store selected by cfg.StoreDriver.
// The returned close func releases the underlying connection, if any.
func Open(cfg config.Config) (Backend, func() error, error) {
	var (
		backend Backend
		closeFn = func() error { return nil }
	)

	switch cfg.StoreDriver {
	case config.StoreJSON:
		backend = NewJSONFileStore(cfg.DataFile)
	case config.StoreSQLite:
		conn, err := db.OpenSQLite(cfg.DBPath)
		if err != nil {
			return nil, nil, fmt.Errorf("open store: %w", err)
		}
		backend, closeFn = NewSQLStore(conn, SQLite), conn.Close
	case config.StorePostgres:
		conn, err := db.OpenPostgres(cfg.DatabaseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("open store: %w", err)
		}
		backend, closeFn = NewSQLStore(conn, Postgres), conn.Close
	default:
		return nil, nil, fmt.Errorf("open store: unknown driver %q", cfg.StoreDriver)
	}

	if err := backend.Init(); err != nil {
		_ = closeFn()
		return nil, nil, fmt.Errorf("open store: %w", err)
	}

	return backend, closeFn, nil
}
