package locale

import (
	"fmt"
	"os"
	"strings"
)

// searchRootCandidates lists conventional locale-archive directories, most
// common first. The first one that exists wins.
var searchRootCandidates = []string{
	"/usr/lib/locale",
	"/usr/share/locale",
	"/usr/local/lib/locale",
}

// DiscoverSearchRoot returns the first conventional locale directory present
// on this host. Callers with a known layout should pass an explicit root and
// skip discovery.
func DiscoverSearchRoot() (string, error) {
	for _, dir := range searchRootCandidates {
		info, err := os.Stat(dir)
		if err == nil && info.IsDir() {
			return dir, nil
		}
	}
	return "", fmt.Errorf("no locale directory found (tried %s); use --locale-path",
		strings.Join(searchRootCandidates, ", "))
}

// SearchRootCandidates returns the discovery list, for diagnostics.
func SearchRootCandidates() []string {
	return append([]string(nil), searchRootCandidates...)
}
