package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"io"
	"os"

	"github.com/bengalssg/bengal/pkg/logging"
)

// fingerprintChunkSize bounds how much of the file HashFile holds in memory
// at once. New code (the teacher never chunks file reads); justified in
// DESIGN.md as plain stdlib crypto/sha256 + io.CopyBuffer, no ecosystem
// library reasonably replaces stdlib hashing.
const fingerprintChunkSize = 8 * 1024

// HashFile returns the hex-encoded SHA-256 of path's content, read in
// fingerprintChunkSize chunks. It returns "" on any read error, after
// logging a warning with enough context to act on it.
func HashFile(path string) string {
	f, err := os.Open(path)
	if err != nil {
		logging.Default().Warn("cache: hash file open failed", "path", path, "err", err)
		return ""
	}
	defer f.Close()

	h := sha256.New()
	buf := make([]byte, fingerprintChunkSize)
	if _, err := io.CopyBuffer(h, f, buf); err != nil {
		logging.Default().Warn("cache: hash file read failed", "path", path, "err", err)
		return ""
	}
	return hex.EncodeToString(h.Sum(nil))
}

// ShortFingerprint truncates a full 64-char hex digest to the 16-char form
// used for AST cache keys; digests already shorter than 16 chars pass
// through unchanged.
func ShortFingerprint(hash string) string {
	if len(hash) <= 16 {
		return hash
	}
	return hash[:16]
}

// hashMetadata returns the hex-encoded SHA-256 of metadata marshaled as
// JSON. encoding/json sorts map keys when marshaling a map[string]any, which
// is exactly the "json-sorted" stability get_parsed_content's hit check
// needs without any extra canonicalization step.
func hashMetadata(metadata map[string]interface{}) (string, error) {
	data, err := sortedJSON(metadata)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}
