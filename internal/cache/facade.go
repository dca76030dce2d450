package cache

import (
	"context"
	"runtime"
	"sync"
	"time"

	"github.com/rvth/dirk/internal/git"
	"github.com/rvth/dirk/internal/log"
	"github.com/rvth/dirk/internal/search"
)

const (
	// gitCacheMaxAge is the shared expiry for the git repository cache. The
	// whole map is cleared on rollover, not per entry.
	gitCacheMaxAge = 5 * time.Minute

	// gitBatchSize bounds how many git probes run between yields.
	gitBatchSize = 50
)

// Config resolves the cache-related settings the facade consults. Satisfied
// by *config.Config.
type Config interface {
	CacheEnabled() bool
	BackgroundRefreshEnabled() bool
	ValidatedSearchPaths() []string
}

// Facade is the public cache surface. Its operations never return errors:
// the worst outcome for a caller is a miss or stale data.
type Facade struct {
	store     *TieredStore
	scheduler *RefreshScheduler
	executor  search.Executor
	cfg       Config

	gitMu      sync.Mutex
	gitRepos   map[string]bool
	gitCleared time.Time
	gitProbe   func(path string) bool
}

// Option configures a Facade.
type Option func(*Facade)

// WithGitProbe replaces the filesystem probe used by IsGitRepository.
// Used by tests to inject fault-counting stubs.
func WithGitProbe(probe func(path string) bool) Option {
	return func(f *Facade) { f.gitProbe = probe }
}

// WithScheduler replaces the default refresh scheduler.
func WithScheduler(s *RefreshScheduler) Option {
	return func(f *Facade) { f.scheduler = s }
}

// NewFacade creates a facade over the given tiers, search executor, and
// configuration provider.
func NewFacade(store *TieredStore, executor search.Executor, cfg Config, opts ...Option) *Facade {
	f := &Facade{
		store:     store,
		scheduler: NewRefreshScheduler(),
		executor:  executor,
		cfg:       cfg,
		gitRepos:  make(map[string]bool),
		gitProbe:  git.HasGitDir,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Lookup returns the cached directories for params, or nil on a total miss
// or when caching is disabled.
func (f *Facade) Lookup(ctx context.Context, params search.Params) []search.DirectoryItem {
	if !f.cfg.CacheEnabled() {
		return nil
	}
	entry := f.store.Get(ctx, search.DeriveKey(params))
	if entry == nil {
		return nil
	}
	if entry.Directories == nil {
		// Deserialized null still counts as a hit with zero results.
		return []search.DirectoryItem{}
	}
	return entry.Directories
}

// LookupWithRefresh is Lookup plus an optional background refresh trigger.
// On a hit, if trigger is set, background refresh is enabled, and the
// scheduler allows it, a refresh is scheduled fire-and-forget; the cached
// result is returned immediately either way.
func (f *Facade) LookupWithRefresh(ctx context.Context, params search.Params, trigger bool) []search.DirectoryItem {
	items := f.Lookup(ctx, params)
	if items == nil {
		return nil
	}

	key := search.DeriveKey(params)
	if trigger && f.cfg.BackgroundRefreshEnabled() && f.scheduler.ShouldRefresh(key) {
		log.FromContext(ctx).Debug("scheduling background refresh", "key", key)
		f.scheduler.Schedule(ctx, key, func(workCtx context.Context) error {
			return f.refresh(workCtx, params)
		})
	}
	return items
}

// refresh re-runs the search and stores the fresh result. The search paths
// are re-resolved through the configuration provider so the stored key
// matches what was actually searched.
func (f *Facade) refresh(ctx context.Context, params search.Params) error {
	refreshed := search.Params{
		SearchPaths:     f.cfg.ValidatedSearchPaths(),
		ExcludePatterns: params.ExcludePatterns,
		AdditionalArgs:  params.AdditionalArgs,
	}
	items, err := f.executor.Search(ctx, refreshed)
	if err != nil {
		return err
	}
	f.Store(ctx, refreshed, items)
	return nil
}

// Store caches the directories for params across all tiers. A no-op when
// caching is disabled.
func (f *Facade) Store(ctx context.Context, params search.Params, directories []search.DirectoryItem) {
	if !f.cfg.CacheEnabled() {
		return
	}
	key := search.DeriveKey(params)
	f.store.Set(ctx, key, NewEntry(key, directories))
}

// Preload bulk-loads the durable tiers into memory. See TieredStore.Preload.
func (f *Facade) Preload(ctx context.Context) {
	f.store.Preload(ctx)
}

// CleanupStale removes old file-tier entries. See TieredStore.CleanupStale.
func (f *Facade) CleanupStale(ctx context.Context, maxAge time.Duration) int {
	return f.store.CleanupStale(ctx, maxAge)
}

// IsGitRepository reports whether path contains a .git entry. Results,
// including negative ones from filesystem errors, are cached under a single
// shared expiry: once the map is older than five minutes it is cleared
// wholesale and repopulated lazily. Never returns an error.
func (f *Facade) IsGitRepository(path string) bool {
	f.gitMu.Lock()
	defer f.gitMu.Unlock()

	if f.gitCleared.IsZero() {
		f.gitCleared = time.Now()
	} else if time.Since(f.gitCleared) > gitCacheMaxAge {
		f.gitRepos = make(map[string]bool)
		f.gitCleared = time.Now()
	}

	if isRepo, ok := f.gitRepos[path]; ok {
		return isRepo
	}

	isRepo := f.gitProbe(path)
	f.gitRepos[path] = isRepo
	return isRepo
}

// BatchCheckGitRepositories resolves git-repository membership for every
// item, probing in fixed-size batches and yielding between batches so
// concurrent work is not starved.
func (f *Facade) BatchCheckGitRepositories(ctx context.Context, items []search.DirectoryItem) map[string]bool {
	result := make(map[string]bool, len(items))
	for i, item := range items {
		if i > 0 && i%gitBatchSize == 0 {
			if ctx.Err() != nil {
				break
			}
			runtime.Gosched()
		}
		result[item.FullPath] = f.IsGitRepository(item.FullPath)
	}
	return result
}

// Clear empties every cache tier and the git repository cache, returning the
// number of memory entries removed for user-facing confirmation.
func (f *Facade) Clear(ctx context.Context) int {
	removed := f.store.Clear(ctx)

	f.gitMu.Lock()
	f.gitRepos = make(map[string]bool)
	f.gitCleared = time.Time{}
	f.gitMu.Unlock()

	return removed
}

// Dispose cancels pending refresh timers. In-flight refreshes finish on
// their own; their stores are idempotent and harmless after disposal.
func (f *Facade) Dispose() {
	f.scheduler.Stop()
}
