// Package fingerprint computes the content digest that makes pipeline runs
// idempotent: unchanged case inputs hash to the same value, so the
// orchestrator can skip extraction and comps entirely on a cache hit.
package fingerprint

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strconv"
)

// missingSentinel is hashed in place of size/mtime for a file that
// disappears between listing and stat, so a vanished file changes the
// digest without aborting fingerprinting.
const missingSentinel = "missing"

// Compute returns the hex SHA-256 digest over the case's identity, its
// media file listing (name, byte size, mtime truncated to whole seconds)
// and the canonical JSON form of the hint map. Media files are hashed in
// sorted-by-name order, so the digest is independent of OS directory
// iteration order.
func Compute(caseID string, mediaPaths []string, hints map[string]any) string {
	hasher := sha256.New()
	hasher.Write([]byte(caseID))

	sorted := make([]string, len(mediaPaths))
	copy(sorted, mediaPaths)
	sort.Slice(sorted, func(i, j int) bool {
		return filepath.Base(sorted[i]) < filepath.Base(sorted[j])
	})

	for _, path := range sorted {
		hasher.Write([]byte(filepath.Base(path)))

		info, err := os.Stat(path)
		if err != nil {
			hasher.Write([]byte(missingSentinel))
			continue
		}
		hasher.Write([]byte(strconv.FormatInt(info.Size(), 10)))
		hasher.Write([]byte(strconv.FormatInt(info.ModTime().Unix(), 10)))
	}

	// encoding/json sorts map keys and emits no extraneous whitespace,
	// which is exactly the canonical form the digest needs.
	if hints == nil {
		hints = map[string]any{}
	}
	canonical, err := json.Marshal(hints)
	if err != nil {
		canonical = []byte("{}")
	}
	hasher.Write(canonical)

	return hex.EncodeToString(hasher.Sum(nil))
}
