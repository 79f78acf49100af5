package secondary

// LocaleFingerprint is the result of probing one locale's on-disk collation
// data, computed fresh every run.
type LocaleFingerprint struct {
	Path     string
	Modified int64 // epoch seconds
	Checksum string
}

// LocaleProber defines the secondary port for resolving a locale identifier
// to its collation data file and fingerprinting the contents.
type LocaleProber interface {
	Probe(localeID string) (LocaleFingerprint, error)
}
