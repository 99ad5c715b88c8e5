package file

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// EnsureDir creates dir and any missing parents.
func EnsureDir(dir string) error {
	return os.MkdirAll(dir, 0755)
}

// Exists reports whether path refers to an existing file or directory.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// NextAvailable returns path if nothing exists there, otherwise the first
// collision-free variant with a numeric suffix before the extension:
// a.txt, a_1.txt, a_2.txt, ...
func NextAvailable(path string) string {
	if !Exists(path) {
		return path
	}

	dir := filepath.Dir(path)
	base := filepath.Base(path)
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)

	for n := 1; ; n++ {
		candidate := filepath.Join(dir, fmt.Sprintf("%s_%d%s", stem, n, ext))
		if !Exists(candidate) {
			return candidate
		}
	}
}
