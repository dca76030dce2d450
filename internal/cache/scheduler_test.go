package cache

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func testScheduler() *RefreshScheduler {
	s := NewRefreshScheduler()
	s.Debounce = 10 * time.Millisecond
	s.MinInterval = 100 * time.Millisecond
	s.Timeout = time.Second
	return s
}

// waitFor polls cond until it returns true or the deadline passes.
func waitFor(t *testing.T, d time.Duration, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(d)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatal("condition not met before deadline")
}

func TestScheduler_DebounceCollapsesTriggers(t *testing.T) {
	t.Parallel()

	s := testScheduler()
	var runs atomic.Int32

	work := func(context.Context) error {
		runs.Add(1)
		return nil
	}

	// Rapid triggers within the debounce window collapse into one run.
	for range 5 {
		s.Schedule(testCtx(), "key", work)
	}

	waitFor(t, time.Second, func() bool { return runs.Load() == 1 })
	time.Sleep(3 * s.Debounce)
	if got := runs.Load(); got != 1 {
		t.Errorf("refresh ran %d times, want 1", got)
	}
}

func TestScheduler_ShouldRefresh(t *testing.T) {
	t.Parallel()

	s := testScheduler()

	if !s.ShouldRefresh("key") {
		t.Error("ShouldRefresh = false for unknown key, want true")
	}

	started := make(chan struct{})
	release := make(chan struct{})
	s.Schedule(testCtx(), "key", func(context.Context) error {
		close(started)
		<-release
		return nil
	})

	<-started
	if s.ShouldRefresh("key") {
		t.Error("ShouldRefresh = true while refreshing, want false")
	}
	close(release)

	waitFor(t, time.Second, func() bool { return !s.Refreshing("key") })
	if s.ShouldRefresh("key") {
		t.Error("ShouldRefresh = true within MinInterval of last attempt, want false")
	}

	waitFor(t, time.Second, func() bool { return s.ShouldRefresh("key") })
}

func TestScheduler_SingleInFlightPerKey(t *testing.T) {
	t.Parallel()

	s := testScheduler()
	var runs atomic.Int32
	release := make(chan struct{})

	s.Schedule(testCtx(), "key", func(context.Context) error {
		runs.Add(1)
		<-release
		return nil
	})
	waitFor(t, time.Second, func() bool { return runs.Load() == 1 })

	// Scheduling while refreshing must not start a second run, even after
	// the new debounce timer fires.
	s.Schedule(testCtx(), "key", func(context.Context) error {
		runs.Add(1)
		return nil
	})
	time.Sleep(3 * s.Debounce)
	if got := runs.Load(); got != 1 {
		t.Errorf("%d refreshes ran concurrently for one key, want 1", got)
	}
	close(release)
}

func TestScheduler_KeysIndependent(t *testing.T) {
	t.Parallel()

	s := testScheduler()
	var runs atomic.Int32

	var wg sync.WaitGroup
	for _, key := range []string{"a", "b", "c"} {
		wg.Add(1)
		s.Schedule(testCtx(), key, func(context.Context) error {
			defer wg.Done()
			runs.Add(1)
			return nil
		})
	}
	wg.Wait()
	if got := runs.Load(); got != 3 {
		t.Errorf("refreshes across keys = %d, want 3", got)
	}
}

func TestScheduler_FailureLeavesStateIdle(t *testing.T) {
	t.Parallel()

	s := testScheduler()
	s.MinInterval = 0

	done := make(chan struct{})
	s.Schedule(testCtx(), "key", func(context.Context) error {
		defer close(done)
		return context.DeadlineExceeded
	})
	<-done

	waitFor(t, time.Second, func() bool { return s.ShouldRefresh("key") })
}

func TestScheduler_WorkContextHasTimeout(t *testing.T) {
	t.Parallel()

	s := testScheduler()
	s.Timeout = 20 * time.Millisecond

	timedOut := make(chan bool, 1)
	s.Schedule(testCtx(), "key", func(ctx context.Context) error {
		select {
		case <-ctx.Done():
			timedOut <- true
		case <-time.After(2 * time.Second):
			timedOut <- false
		}
		return ctx.Err()
	})

	select {
	case ok := <-timedOut:
		if !ok {
			t.Error("work context did not time out")
		}
	case <-time.After(3 * time.Second):
		t.Fatal("refresh never completed")
	}
}

func TestScheduler_WorkContextDetachedFromCaller(t *testing.T) {
	t.Parallel()

	s := testScheduler()

	callerCtx, cancel := context.WithCancel(testCtx())
	alive := make(chan bool, 1)
	s.Schedule(callerCtx, "key", func(ctx context.Context) error {
		// The caller cancels immediately; the refresh must keep running.
		select {
		case <-ctx.Done():
			alive <- false
		case <-time.After(50 * time.Millisecond):
			alive <- true
		}
		return nil
	})
	cancel()

	select {
	case ok := <-alive:
		if !ok {
			t.Error("caller cancellation propagated into refresh work")
		}
	case <-time.After(3 * time.Second):
		t.Fatal("refresh never completed")
	}
}

func TestScheduler_StopCancelsPendingTimers(t *testing.T) {
	t.Parallel()

	s := testScheduler()
	var runs atomic.Int32

	s.Schedule(testCtx(), "key", func(context.Context) error {
		runs.Add(1)
		return nil
	})
	s.Stop()

	time.Sleep(3 * s.Debounce)
	if got := runs.Load(); got != 0 {
		t.Errorf("refresh ran %d times after Stop, want 0", got)
	}

	// Scheduling after Stop is a no-op.
	s.Schedule(testCtx(), "key2", func(context.Context) error {
		runs.Add(1)
		return nil
	})
	time.Sleep(3 * s.Debounce)
	if got := runs.Load(); got != 0 {
		t.Errorf("refresh ran %d times after Stop, want 0", got)
	}
}
