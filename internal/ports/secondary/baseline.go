package secondary

import "context"

// BaselineRecord is the persisted fingerprint last observed for one locale.
// At most one record exists per locale (primary key on the baseline table).
type BaselineRecord struct {
	Locale   string
	Path     string
	Modified int64 // epoch seconds
	Checksum string
}

// BaselineStore defines the secondary port for reading the persisted
// baseline table. Writes go through the generated plan, never through this
// port, so that rebuild statements always precede the baseline update that
// records them.
type BaselineStore interface {
	// TableExists reports whether the baseline table is present.
	TableExists(ctx context.Context) (bool, error)

	// Get retrieves the record for a locale, or nil if none exists.
	Get(ctx context.Context, localeID string) (*BaselineRecord, error)
}
