package file

import (
	"os"
	"path/filepath"
	"strings"
)

// FindByExt lists regular files directly under dir whose extension is in
// exts (case-insensitive, leading dot required in exts). Subdirectories
// are not descended into.
func FindByExt(dir string, exts []string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	allowed := make(map[string]bool, len(exts))
	for _, ext := range exts {
		allowed[strings.ToLower(ext)] = true
	}

	var matches []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if allowed[strings.ToLower(filepath.Ext(entry.Name()))] {
			matches = append(matches, filepath.Join(dir, entry.Name()))
		}
	}

	return matches, nil
}
