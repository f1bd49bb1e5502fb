// Package discovery enumerates case directories, their media files and
// their optional hint payloads under the products root.
package discovery

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// supportedExtensions is the fixed set of image extensions treated as case
// media. Lookup is against the lowercased extension.
var supportedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
	".heic": true,
}

// hintFilenames are the candidate hint files inside a case directory, in
// priority order; the first one present wins.
var hintFilenames = []string{"product.json", "case.json"}

// Cases returns the immediate subdirectories of root whose name does not
// start with ignorePrefix, in lexicographic order. A missing or unreadable
// root yields an empty list rather than an error: an empty products tree is
// a valid (if useless) batch.
func Cases(root, ignorePrefix string) []string {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil
	}

	var cases []string
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		if ignorePrefix != "" && strings.HasPrefix(entry.Name(), ignorePrefix) {
			continue
		}
		cases = append(cases, filepath.Join(root, entry.Name()))
	}
	sort.Strings(cases)
	return cases
}

// Media returns the case's image files — supported extension, name not
// ignore-prefixed — in lexicographic order.
func Media(caseDir, ignorePrefix string) []string {
	entries, err := os.ReadDir(caseDir)
	if err != nil {
		return nil
	}

	var media []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if ignorePrefix != "" && strings.HasPrefix(name, ignorePrefix) {
			continue
		}
		if !supportedExtensions[strings.ToLower(filepath.Ext(name))] {
			continue
		}
		media = append(media, filepath.Join(caseDir, name))
	}
	sort.Strings(media)
	return media
}

// Hints loads the case's hint payload from the first candidate hint file
// present. Absent, unreadable or malformed hint files all yield an empty
// map: bad hints degrade a case, they never fail it.
func Hints(caseDir string) map[string]any {
	for _, name := range hintFilenames {
		data, err := os.ReadFile(filepath.Join(caseDir, name))
		if err != nil {
			continue
		}

		var hints map[string]any
		if err := json.Unmarshal(data, &hints); err != nil || hints == nil {
			continue
		}
		return hints
	}
	return map[string]any{}
}
