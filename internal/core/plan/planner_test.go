package plan

import (
	"strings"
	"testing"
)

func TestClassify(t *testing.T) {
	base := &Baseline{Path: "/usr/lib/locale/fr_FR.utf8/LC_COLLATE", Modified: 1700000000, Checksum: "abc"}

	tests := []struct {
		name      string
		checksum  string
		path      string
		modified  int64
		prev      *Baseline
		wantState string
		wantDrift bool
	}{
		{"no baseline", "abc", base.Path, base.Modified, nil, StateUnseen, false},
		{"checksum differs", "def", base.Path, base.Modified, base, StateChanged, false},
		{"identical", "abc", base.Path, base.Modified, base, StateUnchanged, false},
		{"path moved", "abc", "/other/LC_COLLATE", base.Modified, base, StateUnchanged, true},
		{"mtime moved", "abc", base.Path, 1800000000, base, StateUnchanged, true},
		{"checksum wins over metadata", "def", "/other/LC_COLLATE", 1800000000, base, StateChanged, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state, drift := Classify(tt.checksum, tt.path, tt.modified, tt.prev)
			if state != tt.wantState {
				t.Errorf("state = %q, want %q", state, tt.wantState)
			}
			if drift != tt.wantDrift {
				t.Errorf("drift = %v, want %v", drift, tt.wantDrift)
			}
		})
	}
}

func TestIsPseudoLocale(t *testing.T) {
	for _, id := range []string{"C", "POSIX"} {
		if !IsPseudoLocale(id) {
			t.Errorf("IsPseudoLocale(%q) = false, want true", id)
		}
	}
	if IsPseudoLocale("fr_FR.utf8") {
		t.Error("IsPseudoLocale(fr_FR.utf8) = true, want false")
	}
}

func TestGenerate_FirstRunEndToEnd(t *testing.T) {
	// Empty baseline, one referenced collation with two dependent indexes.
	input := Input{
		Schema:      "public",
		Table:       "lc_collate_checksums",
		TableExists: false,
		Locales: []LocaleInput{
			{
				Locale:   "fr_FR.utf8",
				Refs:     []string{"fr_FR.utf8"},
				Path:     "/usr/lib/locale/fr_FR.utf8/LC_COLLATE",
				Modified: 1700000000,
				Checksum: "5aee0123",
				State:    StateUnseen,
				Indexes: []IndexRef{
					{Schema: "public", Name: "a_idx"},
					{Schema: "public", Name: "b_idx"},
				},
			},
		},
	}

	p := Generate(input)

	var sqls []string
	for _, s := range p.Statements {
		if s.SQL != "" {
			sqls = append(sqls, s.InlineSQL())
		}
	}

	want := []string{
		`CREATE TABLE "public"."lc_collate_checksums" (lc_collate text PRIMARY KEY, path text NOT NULL, modified timestamptz NOT NULL, checksum text NOT NULL)`,
		`REINDEX INDEX "public"."a_idx"`,
		`REINDEX INDEX "public"."b_idx"`,
		`INSERT INTO "public"."lc_collate_checksums" (lc_collate, path, modified, checksum) VALUES ('fr_FR.utf8', '/usr/lib/locale/fr_FR.utf8/LC_COLLATE', to_timestamp(1700000000), '5aee0123')`,
	}
	if len(sqls) != len(want) {
		t.Fatalf("statement count = %d, want %d\ngot: %v", len(sqls), len(want), sqls)
	}
	for i := range want {
		if sqls[i] != want[i] {
			t.Errorf("statement %d = %q, want %q", i, sqls[i], want[i])
		}
	}
}

func TestGenerate_AtMostOneReindexPerIndex(t *testing.T) {
	// Two changed collations sharing one index (e.g. a multi-column index
	// with two differently-collated columns).
	shared := IndexRef{Schema: "public", Name: "shared_idx"}
	input := Input{
		Schema:      "public",
		Table:       "lc_collate_checksums",
		TableExists: true,
		Locales: []LocaleInput{
			{
				Locale: "fr_FR.utf8", Refs: []string{"fr_FR.utf8"},
				Checksum: "new1", PreviousChecksum: "old1", State: StateChanged,
				Indexes: []IndexRef{shared, {Schema: "public", Name: "fr_idx"}},
			},
			{
				Locale: "de_DE.utf8", Refs: []string{"de_DE.utf8"},
				Checksum: "new2", PreviousChecksum: "old2", State: StateChanged,
				Indexes: []IndexRef{shared, {Schema: "public", Name: "de_idx"}},
			},
		},
	}

	p := Generate(input)

	count := 0
	for _, s := range p.Statements {
		if s.SQL == `REINDEX INDEX "public"."shared_idx"` {
			count++
		}
	}
	if count != 1 {
		t.Errorf("shared index reindexed %d times, want exactly 1", count)
	}

	// Both locales still get their own baseline update.
	updates := 0
	for _, s := range p.Statements {
		if strings.HasPrefix(s.SQL, "UPDATE ") {
			updates++
		}
	}
	if updates != 2 {
		t.Errorf("update count = %d, want 2", updates)
	}
}

func TestGenerate_AssumeGoodFirstSeen(t *testing.T) {
	input := Input{
		Schema:      "public",
		Table:       "lc_collate_checksums",
		TableExists: true,
		AssumeGood:  true,
		Locales: []LocaleInput{
			{
				Locale: "sv_SE.utf8", Refs: []string{"sv_SE.utf8"},
				Path: "/usr/lib/locale/sv_SE.utf8/LC_COLLATE", Modified: 1, Checksum: "aa",
				State: StateUnseen,
			},
		},
	}

	p := Generate(input)

	reindexes, inserts := 0, 0
	for _, s := range p.Statements {
		switch {
		case strings.HasPrefix(s.SQL, "REINDEX"):
			reindexes++
		case strings.HasPrefix(s.SQL, "INSERT"):
			inserts++
		}
	}
	if reindexes != 0 {
		t.Errorf("reindex count = %d, want 0", reindexes)
	}
	if inserts != 1 {
		t.Errorf("insert count = %d, want 1", inserts)
	}
}

func TestGenerate_MetadataDriftOnly(t *testing.T) {
	input := Input{
		Schema:      "public",
		Table:       "lc_collate_checksums",
		TableExists: true,
		Locales: []LocaleInput{
			{
				Locale: "fr_FR.utf8", Refs: []string{"fr_FR.utf8"},
				Path: "/new/path/LC_COLLATE", Modified: 2, Checksum: "aa",
				State: StateUnchanged, MetadataDrift: true,
			},
		},
	}

	p := Generate(input)

	for _, s := range p.Statements {
		if strings.HasPrefix(s.SQL, "REINDEX") {
			t.Errorf("unexpected REINDEX for metadata-only drift: %q", s.SQL)
		}
	}
	updates := 0
	for _, s := range p.Statements {
		if strings.HasPrefix(s.SQL, "UPDATE") {
			updates++
		}
	}
	if updates != 1 {
		t.Errorf("update count = %d, want 1", updates)
	}
}

func TestGenerate_UnchangedProducesNothing(t *testing.T) {
	input := Input{
		Schema:      "public",
		Table:       "lc_collate_checksums",
		TableExists: true,
		Locales: []LocaleInput{
			{Locale: "fr_FR.utf8", Refs: []string{"fr_FR.utf8"}, Checksum: "aa", State: StateUnchanged},
		},
	}

	if p := Generate(input); !p.Empty() {
		t.Errorf("plan not empty: %+v", p.Statements)
	}
}

func TestGenerate_Idempotence(t *testing.T) {
	// First run: unseen, remediation planned.
	first := Generate(Input{
		Schema: "public", Table: "lc_collate_checksums", TableExists: false,
		Locales: []LocaleInput{
			{
				Locale: "fr_FR.utf8", Refs: []string{"fr_FR.utf8"},
				Path: "/usr/lib/locale/fr_FR.utf8/LC_COLLATE", Modified: 10, Checksum: "aa",
				State: StateUnseen, Indexes: []IndexRef{{Schema: "public", Name: "a_idx"}},
			},
		},
	})
	if len(first.SQLStatements()) == 0 {
		t.Fatal("first run produced no statements")
	}

	// Second run with the baseline now recorded and nothing changed on disk.
	state, drift := Classify("aa", "/usr/lib/locale/fr_FR.utf8/LC_COLLATE", 10,
		&Baseline{Path: "/usr/lib/locale/fr_FR.utf8/LC_COLLATE", Modified: 10, Checksum: "aa"})
	second := Generate(Input{
		Schema: "public", Table: "lc_collate_checksums", TableExists: true,
		Locales: []LocaleInput{
			{
				Locale: "fr_FR.utf8", Refs: []string{"fr_FR.utf8"},
				Path: "/usr/lib/locale/fr_FR.utf8/LC_COLLATE", Modified: 10, Checksum: "aa",
				State: state, MetadataDrift: drift,
			},
		},
	})
	if !second.Empty() {
		t.Errorf("second run not empty: %+v", second.Statements)
	}
}

func TestGenerate_RemediationPrecedesBaselineWrites(t *testing.T) {
	input := Input{
		Schema: "public", Table: "lc_collate_checksums", TableExists: false,
		Locales: []LocaleInput{
			{
				Locale: "fr_FR.utf8", Refs: []string{"fr_FR.utf8"},
				Checksum: "aa", State: StateUnseen,
				Indexes: []IndexRef{{Schema: "public", Name: "a_idx"}},
			},
			{
				Locale: "de_DE.utf8", Refs: []string{"de_DE.utf8"},
				Checksum: "bb", PreviousChecksum: "old", State: StateChanged,
				Indexes: []IndexRef{{Schema: "public", Name: "b_idx"}},
			},
		},
	}

	p := Generate(input)

	lastReindex, firstWrite := -1, -1
	for i, s := range p.Statements {
		if strings.HasPrefix(s.SQL, "REINDEX") {
			lastReindex = i
		}
		if firstWrite == -1 && (strings.HasPrefix(s.SQL, "INSERT") || strings.HasPrefix(s.SQL, "UPDATE")) {
			firstWrite = i
		}
	}
	if lastReindex == -1 || firstWrite == -1 {
		t.Fatalf("plan missing reindex or baseline write: %+v", p.Statements)
	}
	if lastReindex > firstWrite {
		t.Errorf("baseline write at %d precedes reindex at %d", firstWrite, lastReindex)
	}

	// Table creation sits at the very front.
	if !strings.HasPrefix(p.Statements[0].SQL, "CREATE TABLE") {
		t.Errorf("first statement = %q, want CREATE TABLE", p.Statements[0].SQL)
	}
}
