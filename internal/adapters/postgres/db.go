// Package postgres implements the catalog, baseline-store and executor ports
// against a PostgreSQL database.
package postgres

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
)

// Open connects to the database described by conninfo and verifies the
// connection before returning it.
func Open(ctx context.Context, conninfo string) (*sql.DB, error) {
	db, err := sql.Open("postgres", conninfo)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}
