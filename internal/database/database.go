// Package database provides a single parameterized-SQL execution contract
// over two interchangeable engines: an embedded single-file SQLite database
// and a networked MySQL server. Both normalize their native result shapes
// into one Result form so repositories never branch on the engine.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/duallane/go-shop-api/internal/config"
)

// Row is one result row keyed by output column name. Values carry the
// driver's native scalar types (int64, string, time.Time, nil).
type Row map[string]any

// Result is the normalized outcome of Execute:
//   - SELECT/WITH populate Rows,
//   - INSERT populates InsertID and Changes,
//   - everything else populates Changes only.
type Result struct {
	Rows     []Row
	InsertID int64
	Changes  int64
}

type Store interface {
	// Execute runs one parameterized statement with ? placeholders.
	Execute(ctx context.Context, query string, args ...any) (*Result, error)
	Close() error
}

// New selects the configured engine, connects, and creates the schema.
// An unknown backend identifier is a configuration error, never a fallback.
func New(ctx context.Context, cfg config.DBConfig, log *slog.Logger) (Store, error) {
	switch cfg.Backend {
	case config.DBBackendSQLite:
		return newSQLiteStore(ctx, cfg, log)
	case config.DBBackendMySQL:
		return newMySQLStore(ctx, cfg, log)
	default:
		return nil, fmt.Errorf("unsupported DB_BACKEND %q", cfg.Backend)
	}
}

type stmtKind int

const (
	stmtQuery stmtKind = iota
	stmtInsert
	stmtExec
)

// classify determines the result shape by leading keyword, case-insensitive
// with leading whitespace trimmed.
func classify(query string) stmtKind {
	q := strings.ToUpper(strings.TrimSpace(query))
	switch {
	case strings.HasPrefix(q, "SELECT"), strings.HasPrefix(q, "WITH"):
		return stmtQuery
	case strings.HasPrefix(q, "INSERT"):
		return stmtInsert
	default:
		return stmtExec
	}
}

// scanRows materializes a *sql.Rows into []Row. []byte values are converted
// to string since the MySQL driver returns text columns as byte slices.
func scanRows(rows *sql.Rows) ([]Row, error) {
	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("columns: %w", err)
	}

	var out []Row
	for rows.Next() {
		values := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}

		row := make(Row, len(cols))
		for i, col := range cols {
			v := values[i]
			if b, ok := v.([]byte); ok {
				v = string(b)
			}
			row[col] = v
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}
	return out, nil
}

// execute is the shared normalization path once a backend holds a *sql.DB.
func execute(ctx context.Context, db *sql.DB, query string, args ...any) (*Result, error) {
	switch classify(query) {
	case stmtQuery:
		rows, err := db.QueryContext(ctx, query, args...)
		if err != nil {
			return nil, fmt.Errorf("query: %w", err)
		}
		defer rows.Close()

		out, err := scanRows(rows)
		if err != nil {
			return nil, err
		}
		return &Result{Rows: out}, nil

	case stmtInsert:
		res, err := db.ExecContext(ctx, query, args...)
		if err != nil {
			return nil, fmt.Errorf("insert: %w", err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return nil, fmt.Errorf("insert id: %w", err)
		}
		changes, err := res.RowsAffected()
		if err != nil {
			return nil, fmt.Errorf("rows affected: %w", err)
		}
		return &Result{InsertID: id, Changes: changes}, nil

	default:
		res, err := db.ExecContext(ctx, query, args...)
		if err != nil {
			return nil, fmt.Errorf("exec: %w", err)
		}
		changes, err := res.RowsAffected()
		if err != nil {
			return nil, fmt.Errorf("rows affected: %w", err)
		}
		return &Result{Changes: changes}, nil
	}
}

func pingWithTimeout(ctx context.Context, db *sql.DB) error {
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return db.PingContext(pingCtx)
}
