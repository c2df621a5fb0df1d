// Package upgrade dispatches pip upgrade subprocesses for a selection of
// outdated packages. The default mode runs one subprocess per package
// through a bounded worker pool; batch mode hands the whole selection to a
// single pip invocation. Either way the dispatcher returns exactly one
// result per selected package, in selection order.
package upgrade

import (
	"context"
	"sync/atomic"

	"github.com/gammazero/workerpool"

	"github.com/ajxudir/pipup/pkg/constants"
	"github.com/ajxudir/pipup/pkg/packages"
	"github.com/ajxudir/pipup/pkg/pipenv"
	"github.com/ajxudir/pipup/pkg/report"
)

// Skip reasons recorded on results whose package never ran a subprocess.
const (
	// SkipReasonStopped marks packages still queued when an earlier failure
	// stopped the run.
	SkipReasonStopped = "not attempted: stopped after earlier failure"

	// SkipReasonDeclined marks packages the user declined at the
	// interactive prompt.
	SkipReasonDeclined = "declined by user"
)

// Options configure one dispatch run.
//
// Fields:
//   - MaxWorkers: Worker pool size; values below 1 are treated as 1
//   - TimeoutSeconds: Per-subprocess time budget; 0 disables the limit
//   - ContinueOnError: Keep dispatching after a failure instead of stopping
//   - Interactive: Ask the Confirm hook before each package
//   - Batch: Upgrade everything with a single pip invocation
type Options struct {
	MaxWorkers      int
	TimeoutSeconds  int
	ContinueOnError bool
	Interactive     bool
	Batch           bool
}

// Hooks let the command layer observe and steer a dispatch run.
//
// Fields:
//   - Confirm: Called before each package in interactive mode; returning
//     false skips the package. Ignored when nil or when Interactive is off.
//   - OnResult: Called from the collector goroutine as each result lands,
//     in completion order. Ignored when nil.
type Hooks struct {
	Confirm  func(rec packages.PackageRecord) bool
	OnResult func(res packages.UpgradeResult)
}

// Dispatcher runs upgrade subprocesses for a selection of packages.
//
// Fields:
//   - env: Resolved pip invocation shared by all subprocesses
//   - opts: Run options, normalized at construction
//   - hooks: Command-layer callbacks
//   - stats: Outcome counters, updated as results land
//   - stop: Set after the first failure when ContinueOnError is off;
//     packages still pending when it is set are skipped without a subprocess
type Dispatcher struct {
	env   *pipenv.Environment
	opts  Options
	hooks Hooks
	stats *report.Stats
	stop  atomic.Bool
}

// NewDispatcher creates a dispatcher for one run.
//
// Parameters:
//   - env: Resolved pip invocation
//   - opts: Run options; MaxWorkers below 1 is raised to 1
//   - hooks: Optional command-layer callbacks
//
// Returns:
//   - *Dispatcher: Ready to Run
func NewDispatcher(env *pipenv.Environment, opts Options, hooks Hooks) *Dispatcher {
	if opts.MaxWorkers < 1 {
		opts.MaxWorkers = 1
	}
	return &Dispatcher{
		env:   env,
		opts:  opts,
		hooks: hooks,
		stats: report.NewStats(),
	}
}

// Stats returns a snapshot of the outcome counters.
//
// Safe to call while Run is in flight; the counters are atomic.
//
// Returns:
//   - report.Snapshot: Counts recorded so far
func (d *Dispatcher) Stats() report.Snapshot {
	return d.stats.Snapshot()
}

// Run upgrades the selected packages and returns one result per package.
//
// Results are indexed by selection order regardless of completion order.
// Every selected package yields exactly one result; packages that never ran
// a subprocess (declined, or queued behind a stopping failure) come back as
// Skipped rather than being dropped.
//
// Parameters:
//   - ctx: Cancels in-flight subprocesses
//   - records: Selection to upgrade
//
// Returns:
//   - []packages.UpgradeResult: One result per record, in selection order
func (d *Dispatcher) Run(ctx context.Context, records []packages.PackageRecord) []packages.UpgradeResult {
	if len(records) == 0 {
		return nil
	}
	if d.opts.Batch {
		return d.runBatch(ctx, records)
	}
	return d.runPool(ctx, records)
}

// indexedResult pairs a result with its selection-order slot.
type indexedResult struct {
	index  int
	result packages.UpgradeResult
}

// runPool dispatches one subprocess per package through the worker pool.
//
// It performs the following operations:
//   - Step 1: Starts a collector goroutine, the only writer to the results
//     slice, which also feeds stats and the OnResult hook
//   - Step 2: Submits every package to a pool of MaxWorkers workers
//   - Step 3: Waits for the pool to drain, then closes the result channel
//     and waits for the collector to finish
func (d *Dispatcher) runPool(ctx context.Context, records []packages.PackageRecord) []packages.UpgradeResult {
	results := make([]packages.UpgradeResult, len(records))
	resultCh := make(chan indexedResult)
	collectorDone := make(chan struct{})

	go func() {
		defer close(collectorDone)
		for ir := range resultCh {
			results[ir.index] = ir.result
			d.stats.Record(ir.result.Status)
			if d.hooks.OnResult != nil {
				d.hooks.OnResult(ir.result)
			}
		}
	}()

	pool := workerpool.New(d.opts.MaxWorkers)
	for i, rec := range records {
		i, rec := i, rec
		pool.Submit(func() {
			resultCh <- indexedResult{index: i, result: d.upgradeOne(ctx, rec)}
		})
	}
	pool.StopWait()
	close(resultCh)
	<-collectorDone

	return results
}

// upgradeOne runs one package through its lifecycle.
//
// The lifecycle state machine is the source of truth for the reported
// status: the result status is derived from the terminal state, so an
// illegal transition can never produce a double-counted or contradictory
// outcome.
//
// When ContinueOnError is off, the worker flips the stop flag itself the
// moment it observes its own failure. The flag is set before the result is
// handed to the collector, so with any pool size the next task a worker
// picks up already sees it.
func (d *Dispatcher) upgradeOne(ctx context.Context, rec packages.PackageRecord) packages.UpgradeResult {
	lc := newLifecycle(rec.Name)

	if d.stop.Load() {
		_ = lc.Event(ctx, eventSkip)
		return packages.UpgradeResult{
			Package:      rec,
			Status:       statusForState(lc.Current()),
			ErrorMessage: SkipReasonStopped,
		}
	}

	if d.opts.Interactive && d.hooks.Confirm != nil && !d.hooks.Confirm(rec) {
		_ = lc.Event(ctx, eventSkip)
		return packages.UpgradeResult{
			Package:      rec,
			Status:       statusForState(lc.Current()),
			ErrorMessage: SkipReasonDeclined,
		}
	}

	_ = lc.Event(ctx, eventStart)
	res := UpgradePackageFunc(ctx, d.env, rec, d.opts.TimeoutSeconds)

	switch res.Status {
	case constants.StatusSuccess:
		_ = lc.Event(ctx, eventSucceed)
	case constants.StatusTimedOut:
		_ = lc.Event(ctx, eventTimeout)
	default:
		_ = lc.Event(ctx, eventFail)
	}
	res.Status = statusForState(lc.Current())

	if !d.opts.ContinueOnError && (res.Status == constants.StatusFailed || res.Status == constants.StatusTimedOut) {
		d.stop.Store(true)
	}
	return res
}

// runBatch hands the whole selection to a single pip invocation.
//
// Batch mode has no per-package stop semantics: there is only one
// subprocess, so ContinueOnError and the stop flag do not apply.
func (d *Dispatcher) runBatch(ctx context.Context, records []packages.PackageRecord) []packages.UpgradeResult {
	results := BatchUpgradeFunc(ctx, d.env, records, d.opts.TimeoutSeconds)
	for _, res := range results {
		d.stats.Record(res.Status)
		if d.hooks.OnResult != nil {
			d.hooks.OnResult(res)
		}
	}
	return results
}
