// Package paths turns configured search paths into a minimal set of scan roots.
package paths

import (
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// Normalizer expands and canonicalizes configured search paths.
//
// Home and WorkDir are read once at startup and injected, so normalization
// itself never consults process state.
type Normalizer struct {
	Home    string // Replaces a leading "~"
	WorkDir string // Base for relative entries; empty leaves them relative
	Logger  *slog.Logger
}

// NewNormalizer creates a Normalizer from the invoking user's home directory
// and the current working directory. Either may be empty if it cannot be
// determined. logger may be nil.
func NewNormalizer(logger *slog.Logger) Normalizer {
	home, _ := os.UserHomeDir()
	wd, _ := os.Getwd()
	return Normalizer{Home: home, WorkDir: wd, Logger: logger}
}

// Normalize returns the deduplicated, sorted set of paths with every entry
// that lies inside another entry removed. Nil and blank entries are skipped,
// as are "~" entries when no home directory is known.
func (n Normalizer) Normalize(raw []*string) []string {
	cleaned := make([]string, 0, len(raw))
	for _, entry := range raw {
		if entry == nil || strings.TrimSpace(*entry) == "" {
			continue
		}
		if n.Home == "" && homeRelative(*entry) {
			if n.Logger != nil {
				n.Logger.Warn("skipping search path, home directory unknown", "path", *entry)
			}
			continue
		}
		cleaned = append(cleaned, n.clean(*entry))
	}

	slices.SortFunc(cleaned, compareComponents)
	cleaned = slices.Compact(cleaned)

	result := make([]string, 0, len(cleaned))
	for _, path := range cleaned {
		contained := false
		for _, other := range cleaned {
			if other != path && IsWithin(path, other) {
				contained = true
				break
			}
		}
		if !contained {
			result = append(result, path)
		}
	}

	return result
}

// clean expands the home shorthand, anchors relative paths and resolves
// "." and ".." lexically.
func (n Normalizer) clean(path string) string {
	path = ExpandHome(path, n.Home)
	if !filepath.IsAbs(path) && n.WorkDir != "" {
		path = filepath.Join(n.WorkDir, path)
	}
	return filepath.Clean(path)
}

// ExpandHome replaces a leading "~" or "~/" with home. Other forms,
// including "~user", are returned unchanged.
func ExpandHome(path, home string) string {
	if home == "" {
		return path
	}
	if path == "~" {
		return home
	}
	if homeRelative(path) {
		return filepath.Join(home, path[2:])
	}
	return path
}

// homeRelative reports whether path is "~" or starts with "~/".
func homeRelative(path string) bool {
	return path == "~" || strings.HasPrefix(path, "~/") || strings.HasPrefix(path, "~"+string(filepath.Separator))
}

// IsWithin reports whether path is a strict descendant of ancestor, comparing
// whole path components. Both arguments are expected to be cleaned.
func IsWithin(path, ancestor string) bool {
	if path == ancestor {
		return false
	}
	if ancestor == string(filepath.Separator) {
		return strings.HasPrefix(path, ancestor)
	}
	return strings.HasPrefix(path, ancestor+string(filepath.Separator))
}

// compareComponents orders paths by their component sequence, so "/a/b"
// sorts before "/a-b".
func compareComponents(a, b string) int {
	return slices.Compare(split(a), split(b))
}

func split(path string) []string {
	return strings.Split(path, string(filepath.Separator))
}
