// Package git identifies version-controlled project directories.
package git

import (
	"os"
	"path/filepath"
)

// MarkerName is the entry whose presence makes a directory a repository.
const MarkerName = ".git"

// IsGitRepo checks if a path directly contains a .git entry. Both the
// directory form and the file form used by worktrees and submodules count;
// the repository itself is not validated any further, so a .git link counts
// even when its target is gone.
func IsGitRepo(path string) bool {
	_, err := os.Lstat(filepath.Join(path, MarkerName))
	return err == nil
}
