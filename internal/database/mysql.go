package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/go-sql-driver/mysql"

	"github.com/duallane/go-shop-api/internal/config"
)

// mysqlStore is the networked backend: durability is the server's concern,
// the process only holds a connection pool.
type mysqlStore struct {
	db *sql.DB
}

func newMySQLStore(ctx context.Context, cfg config.DBConfig, log *slog.Logger) (*mysqlStore, error) {
	db, err := sql.Open("mysql", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("open mysql: %w", err)
	}
	db.SetMaxOpenConns(cfg.MaxConns)
	db.SetMaxIdleConns(cfg.MaxConns / 2)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := pingWithTimeout(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping mysql: %w", err)
	}

	for _, ddl := range mysqlSchema {
		if _, err := db.ExecContext(ctx, ddl); err != nil {
			db.Close()
			return nil, fmt.Errorf("create mysql schema: %w", err)
		}
	}

	log.Info("mysql database ready", "host", cfg.Host, "name", cfg.Name)
	return &mysqlStore{db: db}, nil
}

// newMySQLStoreFromDB wraps an existing handle. Used by tests.
func newMySQLStoreFromDB(db *sql.DB) *mysqlStore {
	return &mysqlStore{db: db}
}

func (s *mysqlStore) Execute(ctx context.Context, query string, args ...any) (*Result, error) {
	return execute(ctx, s.db, query, args...)
}

func (s *mysqlStore) Close() error { return s.db.Close() }
