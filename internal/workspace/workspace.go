// Package workspace manages the workspace file and its folder entries.
package workspace

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/rvth/dirk/internal/storage"
)

// Folder is a single workspace entry.
type Folder struct {
	Path string `json:"path"`           // Absolute path to the directory
	Name string `json:"name,omitempty"` // Optional display name
}

// Workspace holds all workspace folders.
type Workspace struct {
	Folders []Folder `json:"folders"`
}

// Load reads the workspace file at path.
// Returns an empty workspace if the file doesn't exist.
func Load(path string) (*Workspace, error) {
	var ws Workspace
	if err := storage.LoadJSON(path, &ws); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Workspace{Folders: []Folder{}}, nil
		}
		return nil, fmt.Errorf("read workspace file: %w", err)
	}
	if ws.Folders == nil {
		ws.Folders = []Folder{}
	}
	return &ws, nil
}

// Save writes the workspace file atomically.
func (w *Workspace) Save(path string) error {
	if err := storage.SaveJSON(path, w); err != nil {
		return fmt.Errorf("save workspace file: %w", err)
	}
	return nil
}

// Add appends a folder. Returns an error if the path is already present.
func (w *Workspace) Add(folder Folder) error {
	absPath, err := filepath.Abs(folder.Path)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}
	folder.Path = absPath

	if w.Contains(folder.Path) {
		return fmt.Errorf("folder already in workspace: %s", folder.Path)
	}

	w.Folders = append(w.Folders, folder)
	return nil
}

// Replace swaps the folder at oldPath for a new one, keeping its position.
func (w *Workspace) Replace(oldPath string, folder Folder) error {
	absPath, err := filepath.Abs(folder.Path)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}
	folder.Path = absPath

	for i := range w.Folders {
		if w.Folders[i].Path == oldPath {
			w.Folders[i] = folder
			return nil
		}
	}
	return fmt.Errorf("folder not in workspace: %s", oldPath)
}

// Remove drops the folder with the given path.
func (w *Workspace) Remove(path string) error {
	for i := range w.Folders {
		if w.Folders[i].Path == path {
			w.Folders = slices.Delete(w.Folders, i, i+1)
			return nil
		}
	}
	return fmt.Errorf("folder not in workspace: %s", path)
}

// Contains reports whether path is a workspace folder.
func (w *Workspace) Contains(path string) bool {
	for _, f := range w.Folders {
		if f.Path == path {
			return true
		}
	}
	return false
}

// Find returns the folder with the given path.
func (w *Workspace) Find(path string) (*Folder, error) {
	for i := range w.Folders {
		if w.Folders[i].Path == path {
			return &w.Folders[i], nil
		}
	}
	return nil, fmt.Errorf("folder not in workspace: %s", path)
}

// Paths returns all folder paths in workspace order.
func (w *Workspace) Paths() []string {
	paths := make([]string, len(w.Folders))
	for i, f := range w.Folders {
		paths[i] = f.Path
	}
	return paths
}

// DisplayName returns the folder's name, falling back to the path's base.
func (f Folder) DisplayName() string {
	if f.Name != "" {
		return f.Name
	}
	return filepath.Base(f.Path)
}
