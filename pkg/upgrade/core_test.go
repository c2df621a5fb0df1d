package upgrade

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajxudir/pipup/pkg/constants"
	"github.com/ajxudir/pipup/pkg/packages"
	"github.com/ajxudir/pipup/pkg/pipenv"
)

// withUpgrader swaps the single-package upgrade function for the duration
// of a test.
func withUpgrader(t *testing.T, fn func(ctx context.Context, env *pipenv.Environment, rec packages.PackageRecord, timeoutSeconds int) packages.UpgradeResult) {
	t.Helper()
	original := UpgradePackageFunc
	UpgradePackageFunc = fn
	t.Cleanup(func() { UpgradePackageFunc = original })
}

// withBatchUpgrader swaps the batch upgrade function for the duration of a test.
func withBatchUpgrader(t *testing.T, fn func(ctx context.Context, env *pipenv.Environment, records []packages.PackageRecord, timeoutSeconds int) []packages.UpgradeResult) {
	t.Helper()
	original := BatchUpgradeFunc
	BatchUpgradeFunc = fn
	t.Cleanup(func() { BatchUpgradeFunc = original })
}

func selection(names ...string) []packages.PackageRecord {
	records := make([]packages.PackageRecord, len(names))
	for i, name := range names {
		records[i] = rec(name)
	}
	return records
}

func successFor(p packages.PackageRecord, d time.Duration) packages.UpgradeResult {
	return packages.UpgradeResult{Package: p, Status: constants.StatusSuccess, Duration: d}
}

func TestDispatcherOneResultPerPackageInSelectionOrder(t *testing.T) {
	// Later packages finish first; the results slice must still follow
	// selection order.
	delays := map[string]time.Duration{"alpha": 30 * time.Millisecond, "beta": 15 * time.Millisecond, "gamma": 0}
	withUpgrader(t, func(ctx context.Context, env *pipenv.Environment, p packages.PackageRecord, timeout int) packages.UpgradeResult {
		time.Sleep(delays[p.Name])
		return successFor(p, time.Millisecond)
	})

	d := NewDispatcher(fakeEnv(), Options{MaxWorkers: 3, TimeoutSeconds: 300}, Hooks{})
	results := d.Run(context.Background(), selection("alpha", "beta", "gamma"))

	require.Len(t, results, 3)
	assert.Equal(t, "alpha", results[0].Package.Name)
	assert.Equal(t, "beta", results[1].Package.Name)
	assert.Equal(t, "gamma", results[2].Package.Name)
	for _, res := range results {
		assert.Equal(t, constants.StatusSuccess, res.Status)
	}
}

func TestDispatcherBoundsConcurrency(t *testing.T) {
	const maxWorkers = 3
	var current, peak atomic.Int64
	withUpgrader(t, func(ctx context.Context, env *pipenv.Environment, p packages.PackageRecord, timeout int) packages.UpgradeResult {
		now := current.Add(1)
		for {
			old := peak.Load()
			if now <= old || peak.CompareAndSwap(old, now) {
				break
			}
		}
		time.Sleep(10 * time.Millisecond)
		current.Add(-1)
		return successFor(p, time.Millisecond)
	})

	names := make([]string, 12)
	for i := range names {
		names[i] = string(rune('a' + i))
	}

	d := NewDispatcher(fakeEnv(), Options{MaxWorkers: maxWorkers, TimeoutSeconds: 300}, Hooks{})
	results := d.Run(context.Background(), selection(names...))

	assert.Len(t, results, 12)
	assert.LessOrEqual(t, peak.Load(), int64(maxWorkers))
	assert.Greater(t, peak.Load(), int64(1), "pool should actually run workers concurrently")
}

func TestDispatcherStopsAfterFirstFailure(t *testing.T) {
	// One worker makes dispatch strictly sequential: nothing may start once
	// the first failure lands.
	var attempts atomic.Int64
	withUpgrader(t, func(ctx context.Context, env *pipenv.Environment, p packages.PackageRecord, timeout int) packages.UpgradeResult {
		attempts.Add(1)
		return packages.UpgradeResult{Package: p, Status: constants.StatusFailed, ErrorMessage: "boom"}
	})

	d := NewDispatcher(fakeEnv(), Options{MaxWorkers: 1, TimeoutSeconds: 300}, Hooks{})
	results := d.Run(context.Background(), selection("alpha", "beta", "gamma"))

	require.Len(t, results, 3)
	assert.Equal(t, int64(1), attempts.Load())
	assert.Equal(t, constants.StatusFailed, results[0].Status)
	for _, res := range results[1:] {
		assert.Equal(t, constants.StatusSkipped, res.Status)
		assert.Equal(t, SkipReasonStopped, res.ErrorMessage)
	}
}

func TestDispatcherStopSkipsQueuedButFinishesInFlight(t *testing.T) {
	// alpha fails immediately while beta is still running; gamma is queued
	// behind the failure and must be skipped, beta must still finish.
	withUpgrader(t, func(ctx context.Context, env *pipenv.Environment, p packages.PackageRecord, timeout int) packages.UpgradeResult {
		switch p.Name {
		case "alpha":
			return packages.UpgradeResult{Package: p, Status: constants.StatusFailed, ErrorMessage: "boom"}
		case "beta":
			time.Sleep(50 * time.Millisecond)
		}
		return successFor(p, time.Millisecond)
	})

	d := NewDispatcher(fakeEnv(), Options{MaxWorkers: 2, TimeoutSeconds: 300}, Hooks{})
	results := d.Run(context.Background(), selection("alpha", "beta", "gamma"))

	require.Len(t, results, 3)
	assert.Equal(t, constants.StatusFailed, results[0].Status)
	assert.Equal(t, constants.StatusSuccess, results[1].Status)
	assert.Equal(t, constants.StatusSkipped, results[2].Status)
	assert.Equal(t, SkipReasonStopped, results[2].ErrorMessage)
}

func TestDispatcherContinueOnErrorAttemptsEverything(t *testing.T) {
	var attempts atomic.Int64
	withUpgrader(t, func(ctx context.Context, env *pipenv.Environment, p packages.PackageRecord, timeout int) packages.UpgradeResult {
		attempts.Add(1)
		if p.Name == "alpha" {
			return packages.UpgradeResult{Package: p, Status: constants.StatusFailed, ErrorMessage: "boom"}
		}
		return successFor(p, time.Millisecond)
	})

	d := NewDispatcher(fakeEnv(), Options{MaxWorkers: 1, TimeoutSeconds: 300, ContinueOnError: true}, Hooks{})
	results := d.Run(context.Background(), selection("alpha", "beta", "gamma"))

	require.Len(t, results, 3)
	assert.Equal(t, int64(3), attempts.Load())
	assert.Equal(t, constants.StatusFailed, results[0].Status)
	assert.Equal(t, constants.StatusSuccess, results[1].Status)
	assert.Equal(t, constants.StatusSuccess, results[2].Status)
}

func TestDispatcherTimeoutStopsRunLikeFailure(t *testing.T) {
	withUpgrader(t, func(ctx context.Context, env *pipenv.Environment, p packages.PackageRecord, timeout int) packages.UpgradeResult {
		return packages.UpgradeResult{Package: p, Status: constants.StatusTimedOut, ErrorMessage: "timed out after 5s"}
	})

	d := NewDispatcher(fakeEnv(), Options{MaxWorkers: 1, TimeoutSeconds: 5}, Hooks{})
	results := d.Run(context.Background(), selection("alpha", "beta"))

	require.Len(t, results, 2)
	assert.Equal(t, constants.StatusTimedOut, results[0].Status)
	assert.Equal(t, constants.StatusSkipped, results[1].Status)
}

func TestDispatcherInteractiveConfirm(t *testing.T) {
	var attempted []string
	var mu sync.Mutex
	withUpgrader(t, func(ctx context.Context, env *pipenv.Environment, p packages.PackageRecord, timeout int) packages.UpgradeResult {
		mu.Lock()
		attempted = append(attempted, p.Name)
		mu.Unlock()
		return successFor(p, time.Millisecond)
	})

	hooks := Hooks{Confirm: func(p packages.PackageRecord) bool { return p.Name != "beta" }}
	d := NewDispatcher(fakeEnv(), Options{MaxWorkers: 1, TimeoutSeconds: 300, Interactive: true}, hooks)
	results := d.Run(context.Background(), selection("alpha", "beta", "gamma"))

	require.Len(t, results, 3)
	assert.Equal(t, []string{"alpha", "gamma"}, attempted)
	assert.Equal(t, constants.StatusSuccess, results[0].Status)
	assert.Equal(t, constants.StatusSkipped, results[1].Status)
	assert.Equal(t, SkipReasonDeclined, results[1].ErrorMessage)
	assert.Equal(t, constants.StatusSuccess, results[2].Status)
}

func TestDispatcherConfirmIgnoredWhenNotInteractive(t *testing.T) {
	withUpgrader(t, func(ctx context.Context, env *pipenv.Environment, p packages.PackageRecord, timeout int) packages.UpgradeResult {
		return successFor(p, time.Millisecond)
	})

	hooks := Hooks{Confirm: func(p packages.PackageRecord) bool { return false }}
	d := NewDispatcher(fakeEnv(), Options{MaxWorkers: 1, TimeoutSeconds: 300}, hooks)
	results := d.Run(context.Background(), selection("alpha"))

	require.Len(t, results, 1)
	assert.Equal(t, constants.StatusSuccess, results[0].Status)
}

func TestDispatcherOnResultHook(t *testing.T) {
	withUpgrader(t, func(ctx context.Context, env *pipenv.Environment, p packages.PackageRecord, timeout int) packages.UpgradeResult {
		return successFor(p, time.Millisecond)
	})

	var seen []string
	hooks := Hooks{OnResult: func(res packages.UpgradeResult) {
		// Called from the collector goroutine only, so no locking is needed.
		seen = append(seen, res.Package.Name)
	}}

	d := NewDispatcher(fakeEnv(), Options{MaxWorkers: 4, TimeoutSeconds: 300}, hooks)
	d.Run(context.Background(), selection("alpha", "beta", "gamma"))

	assert.ElementsMatch(t, []string{"alpha", "beta", "gamma"}, seen)
}

func TestDispatcherStats(t *testing.T) {
	withUpgrader(t, func(ctx context.Context, env *pipenv.Environment, p packages.PackageRecord, timeout int) packages.UpgradeResult {
		if p.Name == "beta" {
			return packages.UpgradeResult{Package: p, Status: constants.StatusFailed, ErrorMessage: "boom"}
		}
		return successFor(p, time.Millisecond)
	})

	d := NewDispatcher(fakeEnv(), Options{MaxWorkers: 2, TimeoutSeconds: 300, ContinueOnError: true}, Hooks{})
	d.Run(context.Background(), selection("alpha", "beta", "gamma"))

	snap := d.Stats()
	assert.Equal(t, int64(2), snap.Success)
	assert.Equal(t, int64(1), snap.Failed)
	assert.Equal(t, int64(3), snap.Total())
}

func TestDispatcherEmptySelection(t *testing.T) {
	called := false
	withUpgrader(t, func(ctx context.Context, env *pipenv.Environment, p packages.PackageRecord, timeout int) packages.UpgradeResult {
		called = true
		return successFor(p, time.Millisecond)
	})

	d := NewDispatcher(fakeEnv(), Options{MaxWorkers: 2, TimeoutSeconds: 300}, Hooks{})
	results := d.Run(context.Background(), nil)

	assert.Nil(t, results)
	assert.False(t, called)
}

func TestDispatcherNormalizesWorkerCount(t *testing.T) {
	withUpgrader(t, func(ctx context.Context, env *pipenv.Environment, p packages.PackageRecord, timeout int) packages.UpgradeResult {
		return successFor(p, time.Millisecond)
	})

	d := NewDispatcher(fakeEnv(), Options{MaxWorkers: 0, TimeoutSeconds: 300}, Hooks{})
	results := d.Run(context.Background(), selection("alpha"))

	require.Len(t, results, 1)
	assert.Equal(t, constants.StatusSuccess, results[0].Status)
}

func TestDispatcherBatchMode(t *testing.T) {
	var gotRecords []packages.PackageRecord
	var gotTimeout int
	calls := 0
	withBatchUpgrader(t, func(ctx context.Context, env *pipenv.Environment, records []packages.PackageRecord, timeout int) []packages.UpgradeResult {
		calls++
		gotRecords = records
		gotTimeout = timeout
		results := make([]packages.UpgradeResult, len(records))
		for i, p := range records {
			results[i] = successFor(p, 4*time.Second)
		}
		return results
	})

	var seen []string
	hooks := Hooks{OnResult: func(res packages.UpgradeResult) { seen = append(seen, res.Package.Name) }}

	d := NewDispatcher(fakeEnv(), Options{MaxWorkers: 10, TimeoutSeconds: 900, Batch: true}, hooks)
	results := d.Run(context.Background(), selection("alpha", "beta"))

	assert.Equal(t, 1, calls)
	assert.Len(t, gotRecords, 2)
	assert.Equal(t, 900, gotTimeout)
	require.Len(t, results, 2)
	assert.Equal(t, []string{"alpha", "beta"}, seen)

	snap := d.Stats()
	assert.Equal(t, int64(2), snap.Success)
}
