// Package filesystem adapts the OS locale directory to the LocaleProber port.
package filesystem

import (
	"github.com/example/collcheck/internal/locale"
	"github.com/example/collcheck/internal/ports/secondary"
)

// Prober implements secondary.LocaleProber against a locale search root.
type Prober struct {
	root string
}

// NewProber creates a Prober rooted at the given locale directory.
func NewProber(root string) *Prober {
	return &Prober{root: root}
}

// Probe resolves the locale's LC_COLLATE file under the configured root and
// fingerprints it.
func (p *Prober) Probe(localeID string) (secondary.LocaleFingerprint, error) {
	path, err := locale.Resolve(p.root, localeID)
	if err != nil {
		return secondary.LocaleFingerprint{}, err
	}
	res, err := locale.Probe(path)
	if err != nil {
		return secondary.LocaleFingerprint{}, err
	}
	return secondary.LocaleFingerprint{
		Path:     res.Path,
		Modified: res.Modified,
		Checksum: res.Checksum,
	}, nil
}

// Ensure Prober implements the interface
var _ secondary.LocaleProber = (*Prober)(nil)
