package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/example/collcheck/internal/ports/secondary"
)

// CatalogRepository implements secondary.Catalog using the system catalogs.
type CatalogRepository struct {
	db *sql.DB
}

// NewCatalogRepository creates a new CatalogRepository.
func NewCatalogRepository(db *sql.DB) *CatalogRepository {
	return &CatalogRepository{db: db}
}

// ReferencedCollations returns the distinct collations any index depends on.
// Only libc-backed collations (and the database-default sentinel) are
// returned; ICU collations carry no LC_COLLATE file to fingerprint.
func (r *CatalogRepository) ReferencedCollations(ctx context.Context) ([]secondary.CollationRef, error) {
	query := `SELECT DISTINCT co.collname, co.collcollate
		FROM pg_catalog.pg_index i
		CROSS JOIN LATERAL unnest(i.indcollation::oid[]) AS ic(colloid)
		JOIN pg_catalog.pg_collation co ON co.oid = ic.colloid
		WHERE co.collprovider IN ('c', 'd')
		ORDER BY co.collname`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var refs []secondary.CollationRef
	for rows.Next() {
		var ref secondary.CollationRef
		var collate sql.NullString
		if err := rows.Scan(&ref.Name, &collate); err != nil {
			return nil, err
		}
		ref.Collate = collate.String
		refs = append(refs, ref)
	}
	return refs, rows.Err()
}

// DatabaseCollation returns the current database's LC_COLLATE setting.
func (r *CatalogRepository) DatabaseCollation(ctx context.Context) (string, error) {
	query := `SELECT datcollate FROM pg_catalog.pg_database WHERE datname = current_database()`

	var collate string
	if err := r.db.QueryRowContext(ctx, query).Scan(&collate); err != nil {
		return "", fmt.Errorf("failed to query database collation: %w", err)
	}
	return collate, nil
}

// IndexesForCollation returns the schema-qualified indexes whose definition
// depends on the named collation.
func (r *CatalogRepository) IndexesForCollation(ctx context.Context, name string) ([]secondary.QualifiedIndex, error) {
	query := `SELECT DISTINCT n.nspname, c.relname
		FROM pg_catalog.pg_index i
		JOIN pg_catalog.pg_class c ON c.oid = i.indexrelid
		JOIN pg_catalog.pg_namespace n ON n.oid = c.relnamespace
		CROSS JOIN LATERAL unnest(i.indcollation::oid[]) AS ic(colloid)
		JOIN pg_catalog.pg_collation co ON co.oid = ic.colloid
		WHERE co.collname = $1
		ORDER BY n.nspname, c.relname`

	rows, err := r.db.QueryContext(ctx, query, name)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var indexes []secondary.QualifiedIndex
	for rows.Next() {
		var idx secondary.QualifiedIndex
		if err := rows.Scan(&idx.Schema, &idx.Name); err != nil {
			return nil, err
		}
		indexes = append(indexes, idx)
	}
	return indexes, rows.Err()
}

// Ensure CatalogRepository implements the interface
var _ secondary.Catalog = (*CatalogRepository)(nil)
