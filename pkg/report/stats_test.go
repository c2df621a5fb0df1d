package report

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ajxudir/pipup/pkg/constants"
)

func TestStatsRecord(t *testing.T) {
	stats := NewStats()

	stats.Record(constants.StatusSuccess)
	stats.Record(constants.StatusSuccess)
	stats.Record(constants.StatusFailed)
	stats.Record(constants.StatusTimedOut)
	stats.Record(constants.StatusSkipped)
	stats.Record("Bogus")

	snap := stats.Snapshot()
	assert.Equal(t, int64(2), snap.Success)
	assert.Equal(t, int64(1), snap.Failed)
	assert.Equal(t, int64(1), snap.TimedOut)
	assert.Equal(t, int64(1), snap.Skipped)
	assert.Equal(t, int64(5), snap.Total())
	assert.Equal(t, int64(4), snap.Attempted())
}

func TestStatsConcurrentRecord(t *testing.T) {
	stats := NewStats()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			stats.Record(constants.StatusSuccess)
			stats.Record(constants.StatusFailed)
		}()
	}
	wg.Wait()

	snap := stats.Snapshot()
	assert.Equal(t, int64(50), snap.Success)
	assert.Equal(t, int64(50), snap.Failed)
	assert.Equal(t, int64(100), snap.Total())
}

func TestSnapshotSuccessRate(t *testing.T) {
	tests := []struct {
		name     string
		snap     Snapshot
		expected float64
	}{
		{"nothing attempted", Snapshot{Skipped: 3}, 0},
		{"all succeeded", Snapshot{Success: 4}, 100},
		{"half succeeded", Snapshot{Success: 2, Failed: 1, TimedOut: 1}, 50},
		{"skips do not count", Snapshot{Success: 1, Skipped: 9}, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, tt.snap.SuccessRate(), 0.001)
		})
	}
}

func TestStatsSnapshotElapsed(t *testing.T) {
	stats := NewStats()
	snap := stats.Snapshot()
	assert.GreaterOrEqual(t, snap.Elapsed.Nanoseconds(), int64(0))
}
