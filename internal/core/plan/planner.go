package plan

import (
	"fmt"
	"strings"
)

// Locale state constants after comparison against the baseline.
const (
	StateUnseen    = "unseen"    // no baseline record exists
	StateChanged   = "changed"   // checksum differs from the baseline
	StateUnchanged = "unchanged" // checksum matches the baseline
)

// pseudoLocales are collation identifiers with no on-disk data file.
var pseudoLocales = map[string]bool{
	"C":     true,
	"POSIX": true,
}

// IsPseudoLocale reports whether a locale identifier has no on-disk
// representation and must be skipped entirely.
func IsPseudoLocale(localeID string) bool {
	return pseudoLocales[localeID]
}

// Baseline mirrors the persisted record fields the planner compares against.
type Baseline struct {
	Path     string
	Modified int64
	Checksum string
}

// Classify compares a fresh fingerprint against the stored baseline.
// It returns the locale state and, for unchanged locales, whether the
// informational path/mtime metadata moved. Metadata drift never triggers
// remediation on its own.
func Classify(checksum, path string, modified int64, prev *Baseline) (state string, metadataDrift bool) {
	switch {
	case prev == nil:
		return StateUnseen, false
	case checksum != prev.Checksum:
		return StateChanged, false
	default:
		return StateUnchanged, path != prev.Path || modified != prev.Modified
	}
}

// IndexRef is a schema-qualified index dependent on a collation.
type IndexRef struct {
	Schema string
	Name   string
}

// LocaleInput carries everything the planner needs about one effective
// locale. All values are pre-fetched by the caller - no I/O in the planner.
type LocaleInput struct {
	Locale   string   // effective locale identifier
	Refs     []string // catalog references resolving to this locale, catalog order
	Path     string
	Modified int64
	Checksum string

	State            string // StateUnseen, StateChanged or StateUnchanged
	PreviousChecksum string // baseline checksum, set when State == StateChanged
	MetadataDrift    bool   // unchanged checksum but path or mtime moved

	// Indexes depending on this locale's references, pre-fetched only for
	// locales that need remediation.
	Indexes []IndexRef
}

// Input contains the pre-fetched data for one planning run.
type Input struct {
	Schema      string
	Table       string
	TableExists bool
	AssumeGood  bool // treat first-seen locales as already consistent
	Locales     []LocaleInput
}

// Generate builds the remediation plan. This is a pure function - all input
// data must be pre-fetched.
//
// Statement order is load-bearing: the baseline-table creation comes first,
// every REINDEX precedes every baseline write, and each index appears at
// most once even when several changed collations share it.
func Generate(input Input) Plan {
	var p Plan
	table := QualifyIdent(input.Schema, input.Table)

	if !input.TableExists {
		p.Statements = append(p.Statements, Statement{
			Comment: fmt.Sprintf("baseline table %s.%s does not exist, creating it", input.Schema, input.Table),
			SQL: "CREATE TABLE " + table +
				" (lc_collate text PRIMARY KEY, path text NOT NULL, modified timestamptz NOT NULL, checksum text NOT NULL)",
		})
	}

	var inserts, updates []LocaleInput
	emitted := make(map[IndexRef]bool)

	for _, l := range input.Locales {
		switch {
		case l.State == StateUnseen && input.AssumeGood:
			p.Statements = append(p.Statements, Statement{
				Comment: fmt.Sprintf("collation %q%s has not been seen before; assuming its indexes are consistent", l.Locale, refNote(l)),
			})
			inserts = append(inserts, l)

		case l.State == StateUnseen:
			p.Statements = append(p.Statements, Statement{
				Comment: fmt.Sprintf("collation %q%s has not been seen before; rebuilding dependent indexes", l.Locale, refNote(l)),
			})
			p.Statements = append(p.Statements, reindexStatements(l.Indexes, emitted)...)
			inserts = append(inserts, l)

		case l.State == StateChanged:
			p.Statements = append(p.Statements, Statement{
				Comment: fmt.Sprintf("collation %q%s changed (checksum %s -> %s); rebuilding dependent indexes",
					l.Locale, refNote(l), l.PreviousChecksum, l.Checksum),
			})
			p.Statements = append(p.Statements, reindexStatements(l.Indexes, emitted)...)
			updates = append(updates, l)

		case l.MetadataDrift:
			p.Statements = append(p.Statements, Statement{
				Comment: fmt.Sprintf("collation %q unchanged; refreshing recorded path and modification time", l.Locale),
			})
			updates = append(updates, l)
		}
	}

	if len(inserts)+len(updates) > 0 {
		p.Statements = append(p.Statements, Statement{
			Comment: fmt.Sprintf("record current locale fingerprints in %s.%s", input.Schema, input.Table),
		})
		for _, l := range inserts {
			p.Statements = append(p.Statements, Statement{
				SQL: "INSERT INTO " + table +
					" (lc_collate, path, modified, checksum) VALUES ($1, $2, to_timestamp($3), $4)",
				Args: []any{l.Locale, l.Path, l.Modified, l.Checksum},
			})
		}
		for _, l := range updates {
			p.Statements = append(p.Statements, Statement{
				SQL: "UPDATE " + table +
					" SET path = $2, modified = to_timestamp($3), checksum = $4 WHERE lc_collate = $1",
				Args: []any{l.Locale, l.Path, l.Modified, l.Checksum},
			})
		}
	}

	return p
}

// reindexStatements emits one REINDEX per index not already planned this run.
func reindexStatements(indexes []IndexRef, emitted map[IndexRef]bool) []Statement {
	var stmts []Statement
	for _, idx := range indexes {
		if emitted[idx] {
			continue
		}
		emitted[idx] = true
		stmts = append(stmts, Statement{
			SQL: "REINDEX INDEX " + QualifyIdent(idx.Schema, idx.Name),
		})
	}
	return stmts
}

// refNote annotates a locale comment with the catalog references behind it
// when they are not simply the locale's own name.
func refNote(l LocaleInput) string {
	if len(l.Refs) == 1 && l.Refs[0] == l.Locale {
		return ""
	}
	quoted := make([]string, len(l.Refs))
	for i, r := range l.Refs {
		quoted[i] = fmt.Sprintf("%q", r)
	}
	return " (referenced as " + strings.Join(quoted, ", ") + ")"
}
