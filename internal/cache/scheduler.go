package cache

import (
	"context"
	"sync"
	"time"

	"github.com/rvth/dirk/internal/log"
)

// Default refresh intervals. Overridable per scheduler so tests can run with
// millisecond values.
const (
	DefaultDebounce       = 500 * time.Millisecond
	DefaultMinInterval    = 10 * time.Second
	DefaultRefreshTimeout = 30 * time.Second
)

// refreshState tracks one key's position in the Idle → Debouncing →
// Refreshing → Idle cycle. Held only in process memory; lost on restart.
type refreshState struct {
	timer       *time.Timer // pending debounce timer, nil when none
	refreshing  bool
	lastAttempt time.Time
}

// RefreshScheduler debounces refresh triggers and guarantees at most one
// in-flight refresh per key. Refresh work runs in a detached goroutine under
// a timeout; failures are logged and swallowed so stale cache entries are
// never invalidated by a failed refresh.
type RefreshScheduler struct {
	// Debounce collapses rapid triggers for the same key into one refresh.
	Debounce time.Duration
	// MinInterval is the minimum time between refresh attempts per key.
	MinInterval time.Duration
	// Timeout bounds each refresh; on expiry the work's context is
	// cancelled and the refresh counts as a soft failure.
	Timeout time.Duration

	mu      sync.Mutex
	states  map[string]*refreshState
	stopped bool
}

// NewRefreshScheduler creates a scheduler with the default intervals.
func NewRefreshScheduler() *RefreshScheduler {
	return &RefreshScheduler{
		Debounce:    DefaultDebounce,
		MinInterval: DefaultMinInterval,
		Timeout:     DefaultRefreshTimeout,
		states:      make(map[string]*refreshState),
	}
}

// ShouldRefresh reports whether a refresh for key may be scheduled now:
// false while one is in flight or within MinInterval of the last attempt.
func (s *RefreshScheduler) ShouldRefresh(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.states[key]
	if !ok {
		return true
	}
	if st.refreshing {
		return false
	}
	if !st.lastAttempt.IsZero() && time.Since(st.lastAttempt) < s.MinInterval {
		return false
	}
	return true
}

// Refreshing reports whether a refresh for key is currently in flight.
func (s *RefreshScheduler) Refreshing(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.states[key]
	return ok && st.refreshing
}

// Schedule arms (or re-arms) the debounce timer for key. When the timer
// fires, work runs in a detached goroutine under the scheduler's timeout;
// the caller never waits on it. Scheduling while a refresh for the same key
// is in flight is a no-op once the timer fires.
//
// The work context is detached from ctx's cancellation: disposing the caller
// does not abort an in-flight refresh, only the timeout does.
func (s *RefreshScheduler) Schedule(ctx context.Context, key string, work func(context.Context) error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped {
		return
	}

	st, ok := s.states[key]
	if !ok {
		st = &refreshState{}
		s.states[key] = st
	}
	if st.timer != nil {
		st.timer.Stop()
	}
	st.timer = time.AfterFunc(s.Debounce, func() {
		s.run(ctx, key, work)
	})
}

// run executes one refresh attempt for key. Called from the debounce timer's
// goroutine.
func (s *RefreshScheduler) run(ctx context.Context, key string, work func(context.Context) error) {
	s.mu.Lock()
	st, ok := s.states[key]
	if !ok || st.refreshing || s.stopped {
		// In-flight marker is checked independently of the timer.
		s.mu.Unlock()
		return
	}
	st.timer = nil
	st.refreshing = true
	st.lastAttempt = time.Now()
	timeout := s.Timeout
	s.mu.Unlock()

	workCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), timeout)
	defer cancel()

	if err := work(workCtx); err != nil {
		// Soft failure: the existing cache entry stays untouched.
		log.FromContext(ctx).Debug("background refresh failed", "key", key, "err", err)
	}

	s.mu.Lock()
	st.refreshing = false
	s.mu.Unlock()
}

// Stop cancels all pending debounce timers. In-flight refreshes are not
// interrupted; they complete independently.
func (s *RefreshScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stopped = true
	for _, st := range s.states {
		if st.timer != nil {
			st.timer.Stop()
			st.timer = nil
		}
	}
}
