package cache

import (
	"time"

	"github.com/rvth/dirk/internal/search"
)

// SupportedVersion is the current entry schema version. Entries carrying any
// other version are treated as absent and purged opportunistically.
const SupportedVersion = 1

// Entry is one cached result set. Immutable once written; a refresh replaces
// the entry, it never mutates one in place. The JSON field names are the
// on-disk format and must not change.
type Entry struct {
	Directories  []search.DirectoryItem `json:"directories"`
	Timestamp    int64                  `json:"timestamp"` // epoch milliseconds
	SearchParams string                 `json:"searchParams"`
	Version      int                    `json:"version"`
}

// NewEntry builds an entry for key with the current timestamp. A nil
// directory slice is stored as empty so an empty result set is still a hit.
func NewEntry(key string, directories []search.DirectoryItem) *Entry {
	if directories == nil {
		directories = []search.DirectoryItem{}
	}
	return &Entry{
		Directories:  directories,
		Timestamp:    time.Now().UnixMilli(),
		SearchParams: key,
		Version:      SupportedVersion,
	}
}

// Valid reports whether the entry carries the supported schema version.
func (e *Entry) Valid() bool {
	return e != nil && e.Version == SupportedVersion
}

// Age returns how long ago the entry was written.
func (e *Entry) Age() time.Duration {
	return time.Since(time.UnixMilli(e.Timestamp))
}
