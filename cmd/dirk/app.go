package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mattn/go-isatty"

	"github.com/rvth/dirk/internal/cache"
	"github.com/rvth/dirk/internal/config"
	"github.com/rvth/dirk/internal/kv"
	"github.com/rvth/dirk/internal/log"
	"github.com/rvth/dirk/internal/search"
	"github.com/rvth/dirk/internal/storage"
	"github.com/rvth/dirk/internal/ui/picker"
	"github.com/rvth/dirk/internal/workspace"
)

// openFacade wires up the tiered cache and search executor. The returned
// cleanup disposes the facade and closes the structured store.
func openFacade(ctx context.Context, cfg *config.Config) (*cache.Facade, func()) {
	l := log.FromContext(ctx)

	var store *kv.Store
	if dir, err := storage.Dir(); err == nil {
		store, err = kv.Open(filepath.Join(dir, "cache.db"))
		if err != nil {
			// Memory and file tiers still work without it
			l.Debug("structured cache store unavailable", "error", err)
			store = nil
		}
	}

	facade := cache.NewFacade(cache.NewTieredStore(store), search.FdExecutor{}, cfg)
	facade.Preload(ctx)

	cleanup := func() {
		facade.Dispose()
		if store != nil {
			if err := store.Close(); err != nil {
				l.Debug("close structured cache store", "error", err)
			}
		}
	}
	return facade, cleanup
}

// searchParams builds the search parameters from the effective config.
func searchParams(cfg *config.Config) search.Params {
	return search.Params{
		SearchPaths:     cfg.ValidatedSearchPaths(),
		ExcludePatterns: cfg.ExcludePatterns,
		AdditionalArgs:  cfg.AdditionalArgs,
	}
}

// findDirectories returns search results, served from the cache when
// possible. A cache hit triggers a background refresh; a miss runs fd in
// the foreground and stores the result.
func findDirectories(ctx context.Context, facade *cache.Facade, cfg *config.Config) ([]search.DirectoryItem, error) {
	if err := search.CheckFd(); err != nil {
		return nil, err
	}

	params := searchParams(cfg)
	if items := facade.LookupWithRefresh(ctx, params, true); items != nil {
		return items, nil
	}

	items, err := search.FdExecutor{}.Search(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("search directories: %w", err)
	}
	facade.Store(ctx, params, items)
	return items, nil
}

// workspaceFilePath returns the configured workspace file location,
// defaulting to workspace.json under ~/.dirk/.
func workspaceFilePath(cfg *config.Config) (string, error) {
	if cfg.Workspace.File != "" {
		return cfg.Workspace.File, nil
	}
	dir, err := storage.Dir()
	if err != nil {
		return "", fmt.Errorf("locate workspace file: %w", err)
	}
	return filepath.Join(dir, "workspace.json"), nil
}

// loadWorkspace loads the workspace file, returning its path alongside.
func loadWorkspace(cfg *config.Config) (*workspace.Workspace, string, error) {
	path, err := workspaceFilePath(cfg)
	if err != nil {
		return nil, "", err
	}
	ws, err := workspace.Load(path)
	if err != nil {
		return nil, "", err
	}
	return ws, path, nil
}

// interactive reports whether stdout is a terminal.
func interactive() bool {
	return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
}

// pickDirectory searches and shows the interactive picker. Returns the
// chosen item, or cancelled=true if the user backed out.
func pickDirectory(ctx context.Context, facade *cache.Facade, cfg *config.Config, title string) (search.DirectoryItem, bool, error) {
	items, err := findDirectories(ctx, facade, cfg)
	if err != nil {
		return search.DirectoryItem{}, false, err
	}
	if len(items) == 0 {
		return search.DirectoryItem{}, false, fmt.Errorf("no directories found under %v", cfg.ValidatedSearchPaths())
	}

	ws, _, err := loadWorkspace(cfg)
	if err != nil {
		log.FromContext(ctx).Debug("load workspace for decorations", "error", err)
		ws = nil
	}

	gitRepos := facade.BatchCheckGitRepositories(ctx, items)
	decorated := workspace.Decorate(items, func(path string) bool { return gitRepos[path] }, ws)

	result, err := picker.Pick(title, decorated)
	if err != nil {
		return search.DirectoryItem{}, false, err
	}
	if result.Cancelled {
		return search.DirectoryItem{}, true, nil
	}
	return result.Item.DirectoryItem, false, nil
}

// resolveTarget returns the explicitly given path if any, otherwise runs
// the interactive picker.
func resolveTarget(ctx context.Context, facade *cache.Facade, cfg *config.Config, args []string, title string) (string, bool, error) {
	if len(args) > 0 {
		abs, err := filepath.Abs(args[0])
		if err != nil {
			return "", false, fmt.Errorf("resolve path: %w", err)
		}
		if info, err := os.Stat(abs); err != nil || !info.IsDir() {
			return "", false, fmt.Errorf("not a directory: %s", abs)
		}
		return abs, false, nil
	}

	if !interactive() {
		return "", false, fmt.Errorf("no path given and stdout is not a terminal")
	}

	item, cancelled, err := pickDirectory(ctx, facade, cfg, title)
	if err != nil || cancelled {
		return "", cancelled, err
	}
	return item.FullPath, false, nil
}
