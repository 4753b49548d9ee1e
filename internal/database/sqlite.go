package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/duallane/go-shop-api/internal/config"
)

// sqliteStore is the embedded backend: one durable file on local disk, no
// external service. The engine commits each mutating statement to the file
// itself, so there is no separate flush step. Writes all go through a single
// connection; the file must not be mutated from two connections at once.
type sqliteStore struct {
	db *sql.DB
}

func newSQLiteStore(ctx context.Context, cfg config.DBConfig, log *slog.Logger) (*sqliteStore, error) {
	if err := os.MkdirAll(filepath.Dir(cfg.SQLitePath), 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	db, err := sql.Open("sqlite", cfg.SQLitePath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)

	if err := pingWithTimeout(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	for _, ddl := range sqliteSchema {
		if _, err := db.ExecContext(ctx, ddl); err != nil {
			db.Close()
			return nil, fmt.Errorf("create sqlite schema: %w", err)
		}
	}

	log.Info("sqlite database ready", "path", cfg.SQLitePath)
	return &sqliteStore{db: db}, nil
}

func (s *sqliteStore) Execute(ctx context.Context, query string, args ...any) (*Result, error) {
	return execute(ctx, s.db, query, args...)
}

func (s *sqliteStore) Close() error { return s.db.Close() }
