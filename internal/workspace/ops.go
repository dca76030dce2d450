package workspace

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rvth/dirk/internal/search"
)

// OpKind identifies a two-step workspace operation.
type OpKind int

const (
	OpNone OpKind = iota
	OpMove
	OpCopy
)

func (k OpKind) String() string {
	switch k {
	case OpMove:
		return "move"
	case OpCopy:
		return "copy"
	default:
		return "none"
	}
}

// PendingOperation carries the first half of a move/copy flow: the
// sources are chosen first, then a destination pick completes the
// operation. The value is passed explicitly between the two steps.
type PendingOperation struct {
	Kind    OpKind
	Sources []search.DirectoryItem
}

// Pending reports whether the operation still needs a destination.
func (p PendingOperation) Pending() bool {
	return p.Kind != OpNone && len(p.Sources) > 0
}

// Complete applies the pending operation with destDir as the target
// directory, updating the workspace entries for every source that was
// a workspace folder. Returns the new paths of the moved/copied items.
func (p PendingOperation) Complete(w *Workspace, destDir string) ([]string, error) {
	if !p.Pending() {
		return nil, fmt.Errorf("no pending operation")
	}

	newPaths := make([]string, 0, len(p.Sources))
	for _, src := range p.Sources {
		var (
			newPath string
			err     error
		)
		switch p.Kind {
		case OpMove:
			newPath, err = Move(w, src.FullPath, destDir)
		case OpCopy:
			newPath, err = Copy(w, src.FullPath, destDir)
		}
		if err != nil {
			return newPaths, fmt.Errorf("%s %s: %w", p.Kind, src.FullPath, err)
		}
		newPaths = append(newPaths, newPath)
	}
	return newPaths, nil
}

// Move relocates srcPath into destDir and updates the workspace entry
// if srcPath was a workspace folder. Returns the new path.
func Move(w *Workspace, srcPath, destDir string) (string, error) {
	newPath := filepath.Join(destDir, filepath.Base(srcPath))
	if newPath == srcPath {
		return newPath, nil
	}
	if _, err := os.Stat(newPath); err == nil {
		return "", fmt.Errorf("destination already exists: %s", newPath)
	}

	if err := os.Rename(srcPath, newPath); err != nil {
		// Rename fails across filesystems; fall back to copy+remove.
		if copyErr := copyDir(srcPath, newPath); copyErr != nil {
			return "", fmt.Errorf("move directory: %w", err)
		}
		if err := os.RemoveAll(srcPath); err != nil {
			return "", fmt.Errorf("remove source after copy: %w", err)
		}
	}

	if w != nil && w.Contains(srcPath) {
		folder, _ := w.Find(newPath)
		if folder == nil {
			old, err := w.Find(srcPath)
			if err == nil {
				name := old.Name
				_ = w.Remove(srcPath)
				_ = w.Add(Folder{Path: newPath, Name: name})
			}
		}
	}
	return newPath, nil
}

// Copy duplicates srcPath into destDir recursively. The copy is not
// added to the workspace. Returns the new path.
func Copy(w *Workspace, srcPath, destDir string) (string, error) {
	newPath := filepath.Join(destDir, filepath.Base(srcPath))
	if newPath == srcPath {
		return "", fmt.Errorf("source and destination are the same: %s", srcPath)
	}
	if _, err := os.Stat(newPath); err == nil {
		return "", fmt.Errorf("destination already exists: %s", newPath)
	}

	if err := copyDir(srcPath, newPath); err != nil {
		return "", fmt.Errorf("copy directory: %w", err)
	}
	return newPath, nil
}

// CreateDir creates a new directory under parent and adds it to the
// workspace. Returns the new path.
func CreateDir(w *Workspace, parent, name string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("directory name is empty")
	}
	newPath := filepath.Join(parent, name)
	if _, err := os.Stat(newPath); err == nil {
		return "", fmt.Errorf("directory already exists: %s", newPath)
	}

	if err := os.MkdirAll(newPath, 0o755); err != nil {
		return "", fmt.Errorf("create directory: %w", err)
	}

	if w != nil {
		if err := w.Add(Folder{Path: newPath}); err != nil {
			return "", err
		}
	}
	return newPath, nil
}

// Delete removes the directory tree at path and drops its workspace
// entry if present.
func Delete(w *Workspace, path string) error {
	if err := os.RemoveAll(path); err != nil {
		return fmt.Errorf("delete directory: %w", err)
	}
	if w != nil && w.Contains(path) {
		return w.Remove(path)
	}
	return nil
}

// copyDir recursively copies a directory tree, preserving file modes.
// Symlinks are recreated pointing at their original targets.
func copyDir(src, dst string) error {
	return filepath.WalkDir(src, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)

		info, err := d.Info()
		if err != nil {
			return err
		}

		switch {
		case d.IsDir():
			return os.MkdirAll(target, info.Mode().Perm())
		case info.Mode()&os.ModeSymlink != 0:
			link, err := os.Readlink(path)
			if err != nil {
				return err
			}
			return os.Symlink(link, target)
		default:
			return copyFile(path, target, info.Mode().Perm())
		}
	})
}

func copyFile(src, dst string, perm os.FileMode) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, perm)
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
