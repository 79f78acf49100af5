// Package secondary defines the secondary ports (driven adapters) for the
// application: the database catalog, the persisted baseline store, and the
// filesystem prober the planning engine is driven through.
package secondary

import "context"

// DefaultCollationName is the catalog's sentinel for "use the database
// default collation".
const DefaultCollationName = "default"

// CollationRef is a collation as referenced by at least one index. Name is
// the catalog identifier the index dependency is keyed on; Collate is the OS
// locale identifier behind it, empty for the database-default sentinel.
type CollationRef struct {
	Name    string
	Collate string
}

// IsDefault reports whether the reference is the database-default sentinel.
func (r CollationRef) IsDefault() bool {
	return r.Name == DefaultCollationName
}

// QualifiedIndex is a schema-qualified index name.
type QualifiedIndex struct {
	Schema string
	Name   string
}

// Catalog defines the secondary port for system-catalog queries.
type Catalog interface {
	// ReferencedCollations returns the distinct collations referenced by
	// any index, restricted to collations backed by OS locale data.
	ReferencedCollations(ctx context.Context) ([]CollationRef, error)

	// DatabaseCollation returns the database's default LC_COLLATE setting.
	DatabaseCollation(ctx context.Context) (string, error)

	// IndexesForCollation returns the indexes depending on the named
	// collation reference, in stable (schema, name) order.
	IndexesForCollation(ctx context.Context, name string) ([]QualifiedIndex, error)
}
