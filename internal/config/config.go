package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// CacheConfig holds cache-related configuration
type CacheConfig struct {
	Enabled           bool `toml:"enabled"`
	BackgroundRefresh bool `toml:"background_refresh"`
}

// WorkspaceConfig holds workspace-related configuration
type WorkspaceConfig struct {
	File string `toml:"file"` // path of the workspace file
}

// Config holds the dirk configuration
type Config struct {
	SearchPaths     []string        `toml:"search_paths"`
	ExcludePatterns []string        `toml:"exclude_patterns"`
	AdditionalArgs  []string        `toml:"additional_args"`
	Cache           CacheConfig     `toml:"cache"`
	Workspace       WorkspaceConfig `toml:"workspace"`
}

// Default returns the default configuration
func Default() Config {
	return Config{
		ExcludePatterns: []string{"node_modules", ".git"},
		Cache: CacheConfig{
			Enabled:           true,
			BackgroundRefresh: true,
		},
	}
}

// CacheEnabled reports whether result caching is enabled.
func (c *Config) CacheEnabled() bool {
	return c.Cache.Enabled
}

// BackgroundRefreshEnabled reports whether cached results are refreshed in
// the background.
func (c *Config) BackgroundRefreshEnabled() bool {
	return c.Cache.BackgroundRefresh
}

// ValidatedSearchPaths resolves the configured search paths to existing,
// absolute directories, preserving order and dropping everything else.
// Returns the working directory when nothing valid is configured. Cache keys
// are derived from this resolved list, never the raw configured one, so the
// key matches what is actually searched.
func (c *Config) ValidatedSearchPaths() []string {
	var paths []string
	for _, p := range c.SearchPaths {
		expanded, err := expandPath(p)
		if err != nil || expanded == "" {
			continue
		}
		abs, err := filepath.Abs(expanded)
		if err != nil {
			continue
		}
		if info, err := os.Stat(abs); err != nil || !info.IsDir() {
			continue
		}
		paths = append(paths, abs)
	}
	if len(paths) == 0 {
		if cwd, err := os.Getwd(); err == nil {
			paths = []string{cwd}
		}
	}
	return paths
}

// ValidatePath checks that the path is absolute or starts with ~
// Returns error if path is relative (like "." or "..")
func ValidatePath(path, fieldName string) error {
	if path == "" {
		return nil // Empty is allowed (means not configured)
	}
	// Allow ~ paths
	if len(path) >= 1 && path[0] == '~' {
		return nil
	}
	// Must be absolute
	if !filepath.IsAbs(path) {
		return fmt.Errorf("%s must be absolute or start with ~, got: %q", fieldName, path)
	}
	return nil
}

// expandPath expands ~ to the user's home directory
func expandPath(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	if len(path) >= 2 && path[:2] == "~/" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("expand ~: %w", err)
		}
		return filepath.Join(home, path[2:]), nil
	}
	if path == "~" {
		return os.UserHomeDir()
	}
	return path, nil
}

// configPath returns the path to the config file
func configPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "dirk", "config.toml"), nil
}

// rawConfig distinguishes unset booleans from explicit false during parsing
type rawConfig struct {
	SearchPaths     []string        `toml:"search_paths"`
	ExcludePatterns []string        `toml:"exclude_patterns"`
	AdditionalArgs  []string        `toml:"additional_args"`
	Cache           rawCacheConfig  `toml:"cache"`
	Workspace       WorkspaceConfig `toml:"workspace"`
}

type rawCacheConfig struct {
	Enabled           *bool `toml:"enabled"`
	BackgroundRefresh *bool `toml:"background_refresh"`
}

// Load reads config from ~/.config/dirk/config.toml
// Returns Default() if file doesn't exist (no error)
// Returns error only if file exists but is invalid
func Load() (Config, error) {
	path, err := configPath()
	if err != nil {
		return Default(), nil
	}
	return loadFile(path)
}

// loadFile reads and validates a config file. Split from Load for tests.
func loadFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return Default(), fmt.Errorf("failed to read config file: %w", err)
	}

	var raw rawConfig
	if err := toml.Unmarshal(data, &raw); err != nil {
		return Default(), fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg := Default()
	cfg.SearchPaths = raw.SearchPaths
	if raw.ExcludePatterns != nil {
		cfg.ExcludePatterns = raw.ExcludePatterns
	}
	cfg.AdditionalArgs = raw.AdditionalArgs
	cfg.Workspace = raw.Workspace
	if raw.Cache.Enabled != nil {
		cfg.Cache.Enabled = *raw.Cache.Enabled
	}
	if raw.Cache.BackgroundRefresh != nil {
		cfg.Cache.BackgroundRefresh = *raw.Cache.BackgroundRefresh
	}

	// Validate search paths (must be absolute or start with ~)
	for _, p := range cfg.SearchPaths {
		if err := ValidatePath(p, "search_paths"); err != nil {
			return Default(), err
		}
	}
	if err := ValidatePath(cfg.Workspace.File, "workspace.file"); err != nil {
		return Default(), err
	}

	// Expand ~ in workspace.file (shell doesn't expand in config files)
	if cfg.Workspace.File != "" {
		expanded, err := expandPath(cfg.Workspace.File)
		if err != nil {
			return Default(), fmt.Errorf("expand workspace.file: %w", err)
		}
		cfg.Workspace.File = expanded
	}

	return cfg, nil
}

const defaultConfig = `# dirk configuration

# Directories to search for folders
# Must be absolute paths or start with ~ (no relative paths like "." or "..")
# Paths that don't exist are skipped at search time.
# search_paths = ["~/Code", "~/Documents"]

# Patterns passed to fd --exclude
exclude_patterns = ["node_modules", ".git"]

# Extra arguments appended to every fd invocation
# additional_args = ["--hidden", "--follow"]

# Cache settings
# Results are cached in memory, in ~/.dirk/cache.db, and as JSON files
# under ~/.dirk/cache/. Stale results are served immediately and refreshed
# in the background.
# [cache]
# enabled = true
# background_refresh = true

# Workspace file operated on by add/remove/move/copy
# [workspace]
# file = "~/dirk.workspace.json"
`

// Init creates a default config file at ~/.config/dirk/config.toml
// If force is true, overwrites existing file
// Returns the path to the created file
func Init(force bool) (string, error) {
	path, err := configPath()
	if err != nil {
		return "", err
	}

	// Check if file already exists (skip if force)
	if !force {
		if _, err := os.Stat(path); err == nil {
			return "", errors.New("config file already exists: " + path)
		}
	}

	// Create directory
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	// Write default config
	if err := os.WriteFile(path, []byte(defaultConfig), 0o644); err != nil {
		return "", err
	}

	return path, nil
}
