package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// LocalConfigFileName is the per-project config file looked up in the
// working directory.
const LocalConfigFileName = ".dirk.toml"

// LocalConfig holds per-project configuration overrides from .dirk.toml.
// Pointer fields and nil slices indicate "not set" (inherit from global).
type LocalConfig struct {
	SearchPaths     []string       `toml:"search_paths"`     // replaces global
	ExcludePatterns []string       `toml:"exclude_patterns"` // appended to global
	AdditionalArgs  []string       `toml:"additional_args"`  // replaces global
	Cache           rawCacheConfig `toml:"cache"`
	Workspace       struct {
		File string `toml:"file"`
	} `toml:"workspace"`
}

// LoadLocal reads a per-project .dirk.toml from the given directory.
// Returns nil (no error) if the file doesn't exist.
// Returns an error only on parse or validation failure.
func LoadLocal(dir string) (*LocalConfig, error) {
	configFile := filepath.Join(dir, LocalConfigFileName)

	data, err := os.ReadFile(configFile)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read local config %s: %w", configFile, err)
	}

	var local LocalConfig
	if err := toml.Unmarshal(data, &local); err != nil {
		return nil, fmt.Errorf("failed to parse local config %s: %w", configFile, err)
	}

	for _, p := range local.SearchPaths {
		if err := ValidatePath(p, "search_paths"); err != nil {
			return nil, fmt.Errorf("%w in %s", err, configFile)
		}
	}

	return &local, nil
}

// MergeLocal merges a local per-project config into a global config,
// returning a new Config without mutating the global.
// Returns global unchanged if local is nil.
func MergeLocal(global *Config, local *LocalConfig) *Config {
	if local == nil {
		return global
	}

	merged := *global

	if local.SearchPaths != nil {
		merged.SearchPaths = local.SearchPaths
	}
	if len(local.ExcludePatterns) > 0 {
		merged.ExcludePatterns = appendUnique(global.ExcludePatterns, local.ExcludePatterns)
	}
	if local.AdditionalArgs != nil {
		merged.AdditionalArgs = local.AdditionalArgs
	}
	if local.Cache.Enabled != nil {
		merged.Cache.Enabled = *local.Cache.Enabled
	}
	if local.Cache.BackgroundRefresh != nil {
		merged.Cache.BackgroundRefresh = *local.Cache.BackgroundRefresh
	}
	if local.Workspace.File != "" {
		merged.Workspace.File = local.Workspace.File
	}

	return &merged
}

// appendUnique appends items from extra to base, skipping duplicates.
// Returns a new slice (never mutates base).
func appendUnique(base, extra []string) []string {
	seen := make(map[string]bool, len(base))
	for _, v := range base {
		seen[v] = true
	}

	result := make([]string, len(base))
	copy(result, base)

	for _, v := range extra {
		if !seen[v] {
			result = append(result, v)
			seen[v] = true
		}
	}

	return result
}
