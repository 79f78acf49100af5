// Package locale locates and fingerprints OS locale collation data files.
package locale

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"
)

// ErrLocaleNotFound indicates no LC_COLLATE file exists for a locale under
// either on-disk naming convention.
var ErrLocaleNotFound = errors.New("locale data file not found")

// Resolve finds the LC_COLLATE file for localeID under searchRoot.
//
// It first tries the locale name verbatim (searchRoot/<localeID>/LC_COLLATE).
// If that directory is missing and the locale carries an encoding suffix
// (e.g. "fr_FR.UTF-8"), it retries with the suffix mangled the way glibc
// installs it: lower-cased with everything but letters and digits stripped
// ("fr_FR.utf8"). Both conventions exist in the wild; trying both avoids
// guessing which one the host uses.
func Resolve(searchRoot, localeID string) (string, error) {
	candidate := filepath.Join(searchRoot, localeID, "LC_COLLATE")
	if fileExists(candidate) {
		return candidate, nil
	}

	if base, enc, ok := strings.Cut(localeID, "."); ok {
		mangled := filepath.Join(searchRoot, base+"."+mangleEncoding(enc), "LC_COLLATE")
		if fileExists(mangled) {
			return mangled, nil
		}
	}

	return "", fmt.Errorf("%w: %q under %s", ErrLocaleNotFound, localeID, searchRoot)
}

// mangleEncoding normalizes an encoding suffix to glibc's installed form:
// lower-case, letters and digits only.
func mangleEncoding(enc string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(enc) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
