package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/example/collcheck/internal/core/plan"
	"github.com/example/collcheck/internal/ports/secondary"
)

// BaselineRepository implements secondary.BaselineStore against the
// persisted checksum table.
type BaselineRepository struct {
	db     *sql.DB
	schema string
	table  string
}

// NewBaselineRepository creates a new BaselineRepository for the given table.
func NewBaselineRepository(db *sql.DB, schema, table string) *BaselineRepository {
	return &BaselineRepository{db: db, schema: schema, table: table}
}

// TableExists reports whether the baseline table is present.
func (r *BaselineRepository) TableExists(ctx context.Context) (bool, error) {
	query := `SELECT EXISTS (
		SELECT 1 FROM pg_catalog.pg_tables WHERE schemaname = $1 AND tablename = $2
	)`

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, r.schema, r.table).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

// Get retrieves the baseline record for a locale, or nil when none exists.
func (r *BaselineRepository) Get(ctx context.Context, localeID string) (*secondary.BaselineRecord, error) {
	query := `SELECT path, extract(epoch FROM modified)::bigint, checksum FROM ` +
		plan.QualifyIdent(r.schema, r.table) + ` WHERE lc_collate = $1`

	rec := secondary.BaselineRecord{Locale: localeID}
	err := r.db.QueryRowContext(ctx, query, localeID).Scan(&rec.Path, &rec.Modified, &rec.Checksum)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// Ensure BaselineRepository implements the interface
var _ secondary.BaselineStore = (*BaselineRepository)(nil)
