// Package config handles loading and validation of dirk configuration.
//
// Configuration is read from ~/.config/dirk/config.toml, with per-project
// overrides from a .dirk.toml file in the working directory.
//
// # Key Settings
//
//   - search_paths: Directories to search (must be absolute or ~/...)
//   - exclude_patterns: Patterns passed to fd --exclude
//   - additional_args: Extra arguments appended to every fd invocation
//   - cache.enabled: Result caching on/off (default: on)
//   - cache.background_refresh: Refresh stale results in the background
//     (default: on)
//   - workspace.file: Path of the workspace file the add/remove/move/copy
//     commands operate on
//
// # Path Validation
//
// Search paths must be absolute or start with ~ (no relative paths like "."
// or "..") to avoid confusion about the working directory. The paths that
// actually reach fd — and the cache key — come from ValidatedSearchPaths,
// which resolves the configured list to existing absolute directories.
package config
