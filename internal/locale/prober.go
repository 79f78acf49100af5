package locale

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
)

// probeBlockSize bounds memory use when hashing large locale files.
const probeBlockSize = 64 * 1024

// ProbeResult is the fingerprint of one locale data file, taken fresh each
// run. Checksum is a hex-encoded SHA-256 digest of the full file contents.
type ProbeResult struct {
	Path     string
	Modified int64 // mtime, epoch seconds
	Checksum string
}

// Probe fingerprints the file at path. Read errors propagate without retry:
// a file that cannot be read cleanly mid-run usually means the OS is
// rewriting locale data right now, and the caller must not proceed.
func Probe(path string) (ProbeResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return ProbeResult{}, fmt.Errorf("failed to open locale file: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return ProbeResult{}, fmt.Errorf("failed to stat locale file: %w", err)
	}

	h := sha256.New()
	buf := make([]byte, probeBlockSize)
	if _, err := io.CopyBuffer(h, f, buf); err != nil {
		return ProbeResult{}, fmt.Errorf("failed to read %s: %w", path, err)
	}

	return ProbeResult{
		Path:     path,
		Modified: info.ModTime().Unix(),
		Checksum: hex.EncodeToString(h.Sum(nil)),
	}, nil
}
