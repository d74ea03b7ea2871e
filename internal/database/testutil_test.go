package database

import (
	"context"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
)

// testPool returns a pgxpool.Pool connected to the test database with the
// schema ensured and both tables emptied. It skips the test if
// DATABASE_URL is not set.
func testPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		t.Skip("DATABASE_URL not set, skipping integration test")
	}
	pool, err := pgxpool.New(context.Background(), dsn)
	if err != nil {
		t.Fatalf("connecting to test database: %v", err)
	}
	t.Cleanup(func() { pool.Close() })

	ctx := context.Background()
	if err := EnsureSchema(ctx, pool); err != nil {
		t.Fatalf("ensuring schema: %v", err)
	}
	if _, err := pool.Exec(ctx, `DELETE FROM messages`); err != nil {
		t.Fatalf("clearing messages: %v", err)
	}
	if _, err := pool.Exec(ctx, `DELETE FROM files`); err != nil {
		t.Fatalf("clearing files: %v", err)
	}
	return pool
}
