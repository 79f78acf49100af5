// Package app contains the imperative-shell services that orchestrate the
// secondary ports and feed the pure planning core.
package app

import (
	"context"
	"fmt"

	"github.com/example/collcheck/internal/core/plan"
	"github.com/example/collcheck/internal/ports/primary"
	"github.com/example/collcheck/internal/ports/secondary"
)

// CheckServiceImpl implements the CheckService interface.
type CheckServiceImpl struct {
	catalog  secondary.Catalog
	baseline secondary.BaselineStore
	prober   secondary.LocaleProber
	schema   string
	table    string
}

// NewCheckService creates a new CheckService with injected dependencies.
func NewCheckService(catalog secondary.Catalog, baseline secondary.BaselineStore, prober secondary.LocaleProber, schema, table string) *CheckServiceImpl {
	return &CheckServiceImpl{
		catalog:  catalog,
		baseline: baseline,
		prober:   prober,
		schema:   schema,
		table:    table,
	}
}

// localeEntry accumulates per-effective-locale state during one run.
type localeEntry struct {
	locale  string
	refs    []string
	probe   secondary.LocaleFingerprint
	state   string
	prevSum string
	drift   bool
	indexes []plan.IndexRef
}

// BuildPlan runs the full detection pass and produces a remediation plan.
//
// Every referenced locale is probed before any remediation is planned. That
// keeps the window between fingerprinting and acting as small as one run's
// planning phase instead of spanning the whole remediation; it cannot close
// the window entirely, which the emitted plan documents.
func (s *CheckServiceImpl) BuildPlan(ctx context.Context, req primary.CheckRequest) (plan.Plan, error) {
	refs, err := s.catalog.ReferencedCollations(ctx)
	if err != nil {
		return plan.Plan{}, fmt.Errorf("failed to query referenced collations: %w", err)
	}

	entries, err := s.collectLocales(ctx, refs)
	if err != nil {
		return plan.Plan{}, err
	}

	// Probe everything up front; any unresolvable or unreadable locale file
	// aborts the run with no partial plan.
	for _, e := range entries {
		fp, err := s.prober.Probe(e.locale)
		if err != nil {
			return plan.Plan{}, err
		}
		e.probe = fp
	}

	tableExists, err := s.baseline.TableExists(ctx)
	if err != nil {
		return plan.Plan{}, fmt.Errorf("failed to check baseline table: %w", err)
	}

	for _, e := range entries {
		var prev *plan.Baseline
		if tableExists {
			rec, err := s.baseline.Get(ctx, e.locale)
			if err != nil {
				return plan.Plan{}, fmt.Errorf("failed to read baseline for %q: %w", e.locale, err)
			}
			if rec != nil {
				prev = &plan.Baseline{Path: rec.Path, Modified: rec.Modified, Checksum: rec.Checksum}
			}
		}

		e.state, e.drift = plan.Classify(e.probe.Checksum, e.probe.Path, e.probe.Modified, prev)
		if e.state == plan.StateChanged {
			e.prevSum = prev.Checksum
		}

		needsRemediation := e.state == plan.StateChanged ||
			(e.state == plan.StateUnseen && !req.AssumeGood)
		if !needsRemediation {
			continue
		}

		// The catalog dependency is keyed on the literal collation
		// reference, not the effective locale, so fetch per reference.
		for _, name := range e.refs {
			indexes, err := s.catalog.IndexesForCollation(ctx, name)
			if err != nil {
				return plan.Plan{}, fmt.Errorf("failed to query indexes for collation %q: %w", name, err)
			}
			for _, idx := range indexes {
				e.indexes = append(e.indexes, plan.IndexRef{Schema: idx.Schema, Name: idx.Name})
			}
		}
	}

	input := plan.Input{
		Schema:      s.schema,
		Table:       s.table,
		TableExists: tableExists,
		AssumeGood:  req.AssumeGood,
	}
	for _, e := range entries {
		input.Locales = append(input.Locales, plan.LocaleInput{
			Locale:           e.locale,
			Refs:             e.refs,
			Path:             e.probe.Path,
			Modified:         e.probe.Modified,
			Checksum:         e.probe.Checksum,
			State:            e.state,
			PreviousChecksum: e.prevSum,
			MetadataDrift:    e.drift,
			Indexes:          e.indexes,
		})
	}

	return plan.Generate(input), nil
}

// collectLocales resolves references to effective locales, skipping
// pseudo-locales and deduplicating references that share a locale. The
// database default collation is queried at most once per run; it cannot
// change mid-run.
func (s *CheckServiceImpl) collectLocales(ctx context.Context, refs []secondary.CollationRef) ([]*localeEntry, error) {
	var entries []*localeEntry
	byLocale := make(map[string]*localeEntry)
	defaultLocale := ""

	for _, ref := range refs {
		locale := ref.Collate
		if ref.IsDefault() {
			if defaultLocale == "" {
				dl, err := s.catalog.DatabaseCollation(ctx)
				if err != nil {
					return nil, fmt.Errorf("failed to query database collation: %w", err)
				}
				defaultLocale = dl
			}
			locale = defaultLocale
		}
		if locale == "" {
			return nil, fmt.Errorf("collation %q has no locale identifier", ref.Name)
		}
		if plan.IsPseudoLocale(locale) {
			continue
		}

		e, ok := byLocale[locale]
		if !ok {
			e = &localeEntry{locale: locale}
			byLocale[locale] = e
			entries = append(entries, e)
		}
		e.refs = append(e.refs, ref.Name)
	}

	return entries, nil
}

// Ensure CheckServiceImpl implements the interface
var _ primary.CheckService = (*CheckServiceImpl)(nil)
