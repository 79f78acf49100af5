package locale

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// writeLocaleFile lays out root/<dir>/LC_COLLATE with the given content.
func writeLocaleFile(t *testing.T, root, dir, content string) string {
	t.Helper()
	path := filepath.Join(root, dir)
	if err := os.MkdirAll(path, 0755); err != nil {
		t.Fatalf("failed to create locale dir: %v", err)
	}
	file := filepath.Join(path, "LC_COLLATE")
	if err := os.WriteFile(file, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write LC_COLLATE: %v", err)
	}
	return file
}

func TestResolve_VerbatimName(t *testing.T) {
	root := t.TempDir()
	want := writeLocaleFile(t, root, "fr_FR.UTF-8", "collation data")

	got, err := Resolve(root, "fr_FR.UTF-8")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if got != want {
		t.Errorf("Resolve() = %q, want %q", got, want)
	}
}

func TestResolve_MangledName(t *testing.T) {
	tests := []struct {
		name     string
		onDisk   string
		localeID string
	}{
		{"utf8 suffix", "fr_FR.utf8", "fr_FR.UTF-8"},
		{"iso suffix", "de_DE.iso88591", "de_DE.ISO-8859-1"},
		{"already lowercase", "en_US.utf8", "en_US.UTF8"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := t.TempDir()
			want := writeLocaleFile(t, root, tt.onDisk, "data")

			got, err := Resolve(root, tt.localeID)
			if err != nil {
				t.Fatalf("Resolve() error = %v", err)
			}
			if got != want {
				t.Errorf("Resolve() = %q, want %q", got, want)
			}
		})
	}
}

func TestResolve_VerbatimWinsWhenBothExist(t *testing.T) {
	root := t.TempDir()
	want := writeLocaleFile(t, root, "fr_FR.UTF-8", "verbatim")
	writeLocaleFile(t, root, "fr_FR.utf8", "mangled")

	got, err := Resolve(root, "fr_FR.UTF-8")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if got != want {
		t.Errorf("Resolve() = %q, want verbatim path %q", got, want)
	}
}

func TestResolve_SamePathUnderEitherConvention(t *testing.T) {
	// The same locale identifier must resolve to equivalent content no
	// matter which naming convention the filesystem uses.
	for _, onDisk := range []string{"fr_FR.UTF-8", "fr_FR.utf8"} {
		root := t.TempDir()
		writeLocaleFile(t, root, onDisk, "data")

		got, err := Resolve(root, "fr_FR.UTF-8")
		if err != nil {
			t.Fatalf("Resolve() with %s layout: %v", onDisk, err)
		}
		if filepath.Base(got) != "LC_COLLATE" {
			t.Errorf("Resolve() = %q, want an LC_COLLATE path", got)
		}
	}
}

func TestResolve_NotFound(t *testing.T) {
	root := t.TempDir()

	_, err := Resolve(root, "xx_XX.UTF-8")
	if !errors.Is(err, ErrLocaleNotFound) {
		t.Fatalf("Resolve() error = %v, want ErrLocaleNotFound", err)
	}
	if got := err.Error(); !strings.Contains(got, "xx_XX.UTF-8") {
		t.Errorf("error %q does not name the locale", got)
	}
}

func TestResolve_NoSeparatorNoSecondAttempt(t *testing.T) {
	root := t.TempDir()
	writeLocaleFile(t, root, "frfr", "data")

	// "fr_FR" has no encoding suffix, so only the verbatim lookup runs.
	_, err := Resolve(root, "fr_FR")
	if !errors.Is(err, ErrLocaleNotFound) {
		t.Fatalf("Resolve() error = %v, want ErrLocaleNotFound", err)
	}
}

func TestMangleEncoding(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"UTF-8", "utf8"},
		{"ISO-8859-1", "iso88591"},
		{"utf8", "utf8"},
		{"EUC-JP", "eucjp"},
	}

	for _, tt := range tests {
		if got := mangleEncoding(tt.in); got != tt.want {
			t.Errorf("mangleEncoding(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
