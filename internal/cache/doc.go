// Package cache stores directory search results across three tiers and
// refreshes them in the background.
//
// # Tiers
//
// Lookups go memory → file, fastest first; a file hit repopulates memory.
// The structured tier (a SQLite key/value store) is only read in bulk by
// Preload at startup, because enumerating it per lookup is expensive. Writes
// go to all tiers, with two exceptions: result sets above 1000 items skip
// the structured tier (large blobs are slow there, the file tier is
// authoritative for them), and after the first file write failure the file
// tier is disabled for the rest of the process.
//
// # Refresh
//
// A cache hit can trigger a background refresh: debounced, at most one
// in-flight refresh per key, bounded by a timeout, and never surfaced to the
// user. A failed refresh leaves the existing entry untouched — stale data
// beats no data.
//
// # Errors
//
// The facade never returns errors. Corrupt stored entries are misses (and
// deleted), failing tiers are logged and skipped, and git probes that fail
// are cached as false.
package cache
