package cache

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/rvth/dirk/internal/kv"
	"github.com/rvth/dirk/internal/log"
	"github.com/rvth/dirk/internal/search"
	"github.com/rvth/dirk/internal/storage"
)

// StructuredKeyPrefix namespaces cache entries in the key/value store.
const StructuredKeyPrefix = "dirk-cache-"

// structuredMaxItems is the result-set size ceiling for the structured tier.
// Larger payloads only go to the file tier.
const structuredMaxItems = 1000

// DefaultStaleAge is the age past which CleanupStale removes file entries.
const DefaultStaleAge = 24 * time.Hour

// TieredStore persists entries across three tiers: an in-process map, a
// key/value store, and JSON files in the cache directory.
type TieredStore struct {
	mu       sync.Mutex
	memory   map[string]*Entry
	store    *kv.Store // nil when the structured tier is unavailable
	cacheDir func() (string, error)

	// fileTierDisabled is the sticky circuit breaker: set on the first file
	// write failure and never reset for the process lifetime.
	fileTierDisabled bool

	preload sync.Once
}

// NewTieredStore creates a store over the given key/value store. A nil store
// disables the structured tier; memory and file tiers keep working.
func NewTieredStore(store *kv.Store) *TieredStore {
	return &TieredStore{
		memory:   make(map[string]*Entry),
		store:    store,
		cacheDir: storage.CacheDir,
	}
}

// NewTieredStoreAt is like NewTieredStore but uses dir as the cache
// directory instead of ~/.dirk/cache. Used by tests.
func NewTieredStoreAt(store *kv.Store, dir string) *TieredStore {
	t := NewTieredStore(store)
	t.cacheDir = func() (string, error) {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", err
		}
		return dir, nil
	}
	return t
}

// Get returns the entry for key, or nil on a miss. Memory is checked first;
// on a miss the file tier is consulted and a valid hit repopulates memory.
// Corrupt or versioned-out file content is a miss, never an error, and the
// offending file is deleted rather than retried.
func (t *TieredStore) Get(ctx context.Context, key string) *Entry {
	t.mu.Lock()
	defer t.mu.Unlock()

	if entry, ok := t.memory[key]; ok {
		return entry
	}

	entry := t.readFile(ctx, key)
	if entry == nil {
		return nil
	}
	t.memory[key] = entry
	return entry
}

// readFile loads and validates the file-tier entry for key.
// Caller holds t.mu.
func (t *TieredStore) readFile(ctx context.Context, key string) *Entry {
	l := log.FromContext(ctx)

	dir, err := t.cacheDir()
	if err != nil {
		l.Debug("cache dir unavailable", "err", err)
		return nil
	}
	path := filepath.Join(dir, search.DeriveFileName(key))

	var entry Entry
	if err := storage.LoadJSON(path, &entry); err != nil {
		if !os.IsNotExist(err) {
			// Unreadable or corrupt: purge on sight.
			l.Debug("removing unreadable cache file", "path", path, "err", err)
			_ = os.Remove(path)
		}
		return nil
	}
	if !entry.Valid() {
		l.Debug("removing cache file with unsupported version", "path", path, "version", entry.Version)
		_ = os.Remove(path)
		return nil
	}
	if entry.SearchParams != key {
		// Hash aliasing between distinct keys; the full key string decides.
		l.Debug("cache file key mismatch", "path", path)
		return nil
	}
	return &entry
}

// Set writes the entry through all tiers: memory unconditionally, the
// structured tier when the result set is under the size ceiling, and the
// file tier unless the circuit breaker has tripped. Tier failures are
// logged, never returned.
func (t *TieredStore) Set(ctx context.Context, key string, entry *Entry) {
	l := log.FromContext(ctx)

	t.mu.Lock()
	defer t.mu.Unlock()

	t.memory[key] = entry

	if t.store != nil {
		storeKey := StructuredKeyPrefix + search.DeriveFileName(key)
		if len(entry.Directories) <= structuredMaxItems {
			if data, err := json.Marshal(entry); err == nil {
				if err := t.store.Set(storeKey, data); err != nil {
					l.Debug("structured tier write failed", "key", storeKey, "err", err)
				}
			}
		} else {
			// Oversized for this tier; drop any stale copy so the file tier
			// stays authoritative.
			if err := t.store.Delete(storeKey); err != nil {
				l.Debug("structured tier delete failed", "key", storeKey, "err", err)
			}
		}
	}

	t.writeFile(ctx, key, entry)
}

// writeFile persists the entry to the file tier. The cache directory is
// re-created immediately before the write since it can be removed externally
// between writes. The first failure disables the tier for the rest of the
// process. Caller holds t.mu.
func (t *TieredStore) writeFile(ctx context.Context, key string, entry *Entry) {
	if t.fileTierDisabled {
		return
	}
	l := log.FromContext(ctx)

	dir, err := t.cacheDir()
	if err != nil {
		l.Debug("disabling file cache tier: cannot create cache dir", "err", err)
		t.fileTierDisabled = true
		return
	}

	path := filepath.Join(dir, search.DeriveFileName(key))
	if err := storage.SaveJSON(path, entry); err != nil {
		_, dirStatErr := os.Stat(dir)
		l.Debug("disabling file cache tier: write failed",
			"path", path, "err", err, "dirExists", dirStatErr == nil)
		t.fileTierDisabled = true
	}
}

// Clear empties every tier and returns the number of memory entries removed.
// A failure in one tier does not abort clearing the others.
func (t *TieredStore) Clear(ctx context.Context) int {
	l := log.FromContext(ctx)

	t.mu.Lock()
	defer t.mu.Unlock()

	removed := len(t.memory)
	t.memory = make(map[string]*Entry)

	if t.store != nil {
		if _, err := t.store.DeletePrefix(StructuredKeyPrefix); err != nil {
			l.Debug("structured tier clear failed", "err", err)
		}
	}

	if dir, err := t.cacheDir(); err == nil {
		files, _ := filepath.Glob(filepath.Join(dir, search.FileNamePrefix+"*.json"))
		for _, file := range files {
			if err := os.Remove(file); err != nil {
				l.Debug("cache file remove failed", "path", file, "err", err)
			}
		}
	} else {
		l.Debug("cache dir unavailable during clear", "err", err)
	}

	return removed
}

// Preload bulk-loads the structured and file tiers into memory. Idempotent
// and single-flight: concurrent callers share one load, later calls are
// no-ops. File entries win over structured entries for the same key; keys
// already in memory are never overwritten.
func (t *TieredStore) Preload(ctx context.Context) {
	t.preload.Do(func() { t.preloadTiers(ctx) })
}

func (t *TieredStore) preloadTiers(ctx context.Context) {
	l := log.FromContext(ctx)

	t.mu.Lock()
	defer t.mu.Unlock()

	existing := make(map[string]bool, len(t.memory))
	for key := range t.memory {
		existing[key] = true
	}

	if t.store != nil {
		values, err := t.store.List(StructuredKeyPrefix)
		if err != nil {
			l.Debug("structured tier preload failed", "err", err)
		}
		for _, data := range values {
			var entry Entry
			if err := json.Unmarshal(data, &entry); err != nil || !entry.Valid() {
				continue
			}
			if !existing[entry.SearchParams] {
				t.memory[entry.SearchParams] = &entry
			}
		}
	}

	dir, err := t.cacheDir()
	if err != nil {
		l.Debug("cache dir unavailable during preload", "err", err)
		return
	}
	files, _ := filepath.Glob(filepath.Join(dir, search.FileNamePrefix+"*.json"))
	for _, file := range files {
		var entry Entry
		if err := storage.LoadJSON(file, &entry); err != nil || !entry.Valid() {
			continue
		}
		// Files are written last, so they win over structured entries.
		if !existing[entry.SearchParams] {
			t.memory[entry.SearchParams] = &entry
		}
	}
}

// CleanupStale removes file-tier entries older than maxAge or carrying an
// unsupported version. Unreadable files are deleted, not retried. Returns
// the number of files removed.
func (t *TieredStore) CleanupStale(ctx context.Context, maxAge time.Duration) int {
	l := log.FromContext(ctx)

	dir, err := t.cacheDir()
	if err != nil {
		l.Debug("cache dir unavailable during cleanup", "err", err)
		return 0
	}

	removed := 0
	files, _ := filepath.Glob(filepath.Join(dir, search.FileNamePrefix+"*.json"))
	for _, file := range files {
		var entry Entry
		if err := storage.LoadJSON(file, &entry); err == nil && entry.Valid() && entry.Age() <= maxAge {
			continue
		}
		if err := os.Remove(file); err != nil {
			l.Debug("stale cache file remove failed", "path", file, "err", err)
			continue
		}
		removed++
	}
	return removed
}
