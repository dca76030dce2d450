// Package history tracks recently picked directories.
// This backs `dirk recent` and ranks repeat picks first.
package history

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/rvth/dirk/internal/storage"
)

// maxEntries caps the history file size.
const maxEntries = 50

// Entry is a single picked directory.
type Entry struct {
	Path        string    `json:"path"`
	AccessCount int       `json:"access_count"`
	LastAccess  time.Time `json:"last_access"`
}

// History stores recently picked directories, most recent first.
type History struct {
	Entries []Entry `json:"entries"`
}

// Path returns the default history file location.
func Path() string {
	dir, err := storage.Dir()
	if err != nil {
		home, _ := os.UserHomeDir()
		dir = filepath.Join(home, ".dirk")
	}
	return filepath.Join(dir, "history.json")
}

// Load reads the history from path.
func Load(path string) (*History, error) {
	var h History
	if err := storage.LoadJSON(path, &h); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &History{}, nil
		}
		// Corrupted - start fresh
		return &History{}, nil
	}
	return &h, nil
}

// Save writes the history to path atomically.
func (h *History) Save(path string) error {
	return storage.SaveJSON(path, h)
}

// RecordPick marks dirPath as just picked, bumping its count and moving
// it to the front.
func RecordPick(dirPath, historyPath string) error {
	h, err := Load(historyPath)
	if err != nil {
		return err
	}

	entry := Entry{Path: dirPath, AccessCount: 1, LastAccess: time.Now()}
	for i, e := range h.Entries {
		if e.Path == dirPath {
			entry.AccessCount = e.AccessCount + 1
			h.Entries = slices.Delete(h.Entries, i, i+1)
			break
		}
	}

	h.Entries = append([]Entry{entry}, h.Entries...)
	if len(h.Entries) > maxEntries {
		h.Entries = h.Entries[:maxEntries]
	}

	return h.Save(historyPath)
}

// MostRecent returns the last picked path, or "" if there is none.
func MostRecent(historyPath string) (string, error) {
	h, err := Load(historyPath)
	if err != nil {
		return "", err
	}
	if len(h.Entries) == 0 {
		return "", nil
	}
	return h.Entries[0].Path, nil
}

// Recent returns up to n recently picked paths, most recent first.
func Recent(historyPath string, n int) ([]string, error) {
	h, err := Load(historyPath)
	if err != nil {
		return nil, err
	}
	if n > len(h.Entries) {
		n = len(h.Entries)
	}
	paths := make([]string, n)
	for i := range n {
		paths[i] = h.Entries[i].Path
	}
	return paths, nil
}
