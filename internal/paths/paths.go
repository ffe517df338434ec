// Package paths provides path resolution utilities.
package paths

import (
	"os"
	"path/filepath"
	"strings"
)

// Expand resolves a leading ~ to the home directory and substitutes
// environment variables. Paths that need neither are returned unchanged.
//
//   - "~/notes.txt" -> "/home/me/notes.txt"
//   - "$LOGS/app.log" -> "/var/log/app.log"
//   - "~other/x" -> "~other/x" (other users' homes are not resolved)
func Expand(path string) string {
	if path == "" {
		return path
	}
	path = os.ExpandEnv(path)
	if path != "~" && !strings.HasPrefix(path, "~"+string(filepath.Separator)) && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return path
	}
	return filepath.Join(home, path[1:])
}

// Abbrev replaces the home directory prefix of an absolute path with ~.
func Abbrev(path string) string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" || !filepath.IsAbs(path) {
		return path
	}
	rel, err := filepath.Rel(home, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return path
	}
	if rel == "." {
		return "~"
	}
	return "~" + string(filepath.Separator) + rel
}
