package search

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// FileNamePrefix tags cache files so stray files in the cache directory are
// never mistaken for entries. The prefix and the hash length are part of the
// on-disk format and must never change.
const FileNamePrefix = "cache_"

const fileNameHashLen = 16

// DeriveKey returns the canonical cache key for params: a JSON array of the
// three parameter arrays. Arrays keep element order, so equal tuples always
// serialize identically and reordered tuples never collide. The full string
// is used as the in-memory key; only file names hash it.
func DeriveKey(p Params) string {
	fields := [3][]string{p.SearchPaths, p.ExcludePatterns, p.AdditionalArgs}
	for i, f := range fields {
		if f == nil {
			fields[i] = []string{}
		}
	}
	// Marshal of string slices cannot fail.
	data, _ := json.Marshal(fields)
	return string(data)
}

// DeriveFileName returns the file name for a cache key:
// cache_<16 hex chars of sha256(key)>.json. Stable across versions.
func DeriveFileName(key string) string {
	sum := sha256.Sum256([]byte(key))
	return FileNamePrefix + hex.EncodeToString(sum[:])[:fileNameHashLen] + ".json"
}
