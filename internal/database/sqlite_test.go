package database

import (
	"context"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/duallane/go-shop-api/internal/config"
)

func newTestSQLiteStore(t *testing.T) Store {
	t.Helper()
	cfg := config.DBConfig{
		Backend:    config.DBBackendSQLite,
		SQLitePath: filepath.Join(t.TempDir(), "test.db"),
	}
	store, err := New(context.Background(), cfg, slog.Default())
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestNew_UnknownBackend(t *testing.T) {
	_, err := New(context.Background(), config.DBConfig{Backend: "oracle"}, slog.Default())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "oracle")
}

func TestSQLite_SchemaInitIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")
	cfg := config.DBConfig{Backend: config.DBBackendSQLite, SQLitePath: path}

	first, err := New(context.Background(), cfg, slog.Default())
	require.NoError(t, err)
	require.NoError(t, first.Close())

	// Reopening the same file re-runs the DDL against existing tables.
	second, err := New(context.Background(), cfg, slog.Default())
	require.NoError(t, err)
	defer second.Close()

	res, err := second.Execute(context.Background(), `SELECT COUNT(*) AS n FROM products`)
	require.NoError(t, err)
	require.Len(t, res.Rows, 1)
	assert.Zero(t, res.Rows[0].Int64("n"))
}

func TestSQLite_InsertSelectRoundTrip(t *testing.T) {
	store := newTestSQLiteStore(t)
	ctx := context.Background()

	ins, err := store.Execute(ctx,
		`INSERT INTO products (name, description, price, image_url, category, stock)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		"Keyboard", "wireless", int64(49900), "", "electronics", int64(5),
	)
	require.NoError(t, err)
	assert.Equal(t, int64(1), ins.InsertID)
	assert.Equal(t, int64(1), ins.Changes)

	sel, err := store.Execute(ctx, `SELECT id, name, price, stock FROM products WHERE id = ?`, ins.InsertID)
	require.NoError(t, err)
	require.Len(t, sel.Rows, 1)
	assert.Equal(t, "Keyboard", sel.Rows[0].String("name"))
	assert.Equal(t, int64(49900), sel.Rows[0].Int64("price"))
	assert.Equal(t, int64(5), sel.Rows[0].Int64("stock"))
}

func TestSQLite_UpdateReportsAffectedRows(t *testing.T) {
	store := newTestSQLiteStore(t)
	ctx := context.Background()

	_, err := store.Execute(ctx,
		`INSERT INTO products (name, price, stock) VALUES (?, ?, ?)`, "A", int64(100), int64(3))
	require.NoError(t, err)
	_, err = store.Execute(ctx,
		`INSERT INTO products (name, price, stock) VALUES (?, ?, ?)`, "B", int64(200), int64(3))
	require.NoError(t, err)

	res, err := store.Execute(ctx, `UPDATE products SET stock = 0 WHERE stock = ?`, int64(3))
	require.NoError(t, err)
	assert.Equal(t, int64(2), res.Changes)

	res, err = store.Execute(ctx, `DELETE FROM products WHERE id = ?`, int64(999))
	require.NoError(t, err)
	assert.Zero(t, res.Changes)
}

func TestSQLite_InsertIDsAreSequential(t *testing.T) {
	store := newTestSQLiteStore(t)
	ctx := context.Background()

	first, err := store.Execute(ctx,
		`INSERT INTO users (email, password_hash, name) VALUES (?, ?, ?)`, "a@b.com", "h", "Ann")
	require.NoError(t, err)
	second, err := store.Execute(ctx,
		`INSERT INTO users (email, password_hash, name) VALUES (?, ?, ?)`, "c@d.com", "h", "Cam")
	require.NoError(t, err)

	assert.Equal(t, first.InsertID+1, second.InsertID)
}
