// Package git probes directories for git repository markers.
//
// dirk never shells out to git; knowing whether a directory is a repository
// root only takes a filesystem check, and the picker runs that check over
// hundreds of results at a time.
package git

import (
	"os"
	"path/filepath"
)

// HasGitDir reports whether path contains a .git entry (directory for a
// normal repository, file for a worktree or submodule). Filesystem errors,
// including a missing path, report false.
func HasGitDir(path string) bool {
	_, err := os.Stat(filepath.Join(path, ".git"))
	return err == nil
}
