// Package report aggregates upgrade results into run statistics, renders the
// end-of-run summary, and reads and writes the selection files used by
// --export and --import.
package report

import (
	"sync/atomic"
	"time"

	"github.com/ajxudir/pipup/pkg/constants"
)

// Stats counts upgrade outcomes as they complete.
//
// Counters are atomic so the dispatcher's collector can record outcomes while
// other goroutines read consistent snapshots for live progress display.
//
// Fields:
//   - started: When counting began; snapshots measure elapsed time from here
type Stats struct {
	started  time.Time
	success  atomic.Int64
	failed   atomic.Int64
	timedOut atomic.Int64
	skipped  atomic.Int64
}

// NewStats creates a Stats tracker with the elapsed clock started.
//
// Returns:
//   - *Stats: Zeroed counters, started now
func NewStats() *Stats {
	return &Stats{started: time.Now()}
}

// Record increments the counter for a terminal status.
//
// Unknown statuses are ignored; the dispatcher only ever produces the four
// terminal statuses.
//
// Parameters:
//   - status: One of the constants.Status* values
func (s *Stats) Record(status string) {
	switch status {
	case constants.StatusSuccess:
		s.success.Add(1)
	case constants.StatusFailed:
		s.failed.Add(1)
	case constants.StatusTimedOut:
		s.timedOut.Add(1)
	case constants.StatusSkipped:
		s.skipped.Add(1)
	}
}

// Snapshot is a point-in-time copy of the counters.
//
// Fields:
//   - Success: Packages upgraded successfully so far
//   - Failed: Packages whose upgrade subprocess exited non-zero
//   - TimedOut: Packages whose upgrade subprocess was terminated on timeout
//   - Skipped: Packages that never ran a subprocess
//   - Elapsed: Time since counting began
type Snapshot struct {
	Success  int64
	Failed   int64
	TimedOut int64
	Skipped  int64
	Elapsed  time.Duration
}

// Snapshot returns a consistent copy of the current counters.
//
// Returns:
//   - Snapshot: Counter values and elapsed time at the moment of the call
func (s *Stats) Snapshot() Snapshot {
	return Snapshot{
		Success:  s.success.Load(),
		Failed:   s.failed.Load(),
		TimedOut: s.timedOut.Load(),
		Skipped:  s.skipped.Load(),
		Elapsed:  time.Since(s.started),
	}
}

// Total returns the number of recorded outcomes.
//
// Returns:
//   - int64: Sum of all four counters
func (n Snapshot) Total() int64 {
	return n.Success + n.Failed + n.TimedOut + n.Skipped
}

// Attempted returns the number of packages that actually ran a subprocess.
//
// Returns:
//   - int64: Success + Failed + TimedOut counts; skipped packages never ran
func (n Snapshot) Attempted() int64 {
	return n.Success + n.Failed + n.TimedOut
}

// SuccessRate returns the percentage of attempted upgrades that succeeded.
//
// Returns:
//   - float64: 0 to 100; 0 when nothing was attempted
func (n Snapshot) SuccessRate() float64 {
	attempted := n.Attempted()
	if attempted == 0 {
		return 0
	}
	return float64(n.Success) / float64(attempted) * 100
}
