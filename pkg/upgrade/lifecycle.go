package upgrade

import (
	"context"

	"github.com/looplab/fsm"

	"github.com/ajxudir/pipup/pkg/constants"
	"github.com/ajxudir/pipup/pkg/verbose"
)

// Lifecycle states for a single package inside a run. Every package starts
// pending and ends in exactly one terminal state; terminal states have no
// outgoing transitions, so a package can never be re-dispatched or change
// its outcome after completion.
const (
	statePending   = "pending"
	stateRunning   = "running"
	stateSucceeded = "succeeded"
	stateFailed    = "failed"
	stateTimedOut  = "timed_out"
	stateSkipped   = "skipped"
)

// Lifecycle events. skip is only legal from pending: a package that already
// started a subprocess always finishes with succeed, fail, or timeout.
const (
	eventStart   = "start"
	eventSucceed = "succeed"
	eventFail    = "fail"
	eventTimeout = "timeout"
	eventSkip    = "skip"
)

// newLifecycle builds the state machine that tracks one package through a
// run. State changes are logged through the verbose sink so --verbose shows
// each package's progression.
//
// Parameters:
//   - name: Package name, used only for verbose logging
//
// Returns:
//   - *fsm.FSM: Machine positioned at the pending state
func newLifecycle(name string) *fsm.FSM {
	return fsm.NewFSM(
		statePending,
		fsm.Events{
			{Name: eventStart, Src: []string{statePending}, Dst: stateRunning},
			{Name: eventSucceed, Src: []string{stateRunning}, Dst: stateSucceeded},
			{Name: eventFail, Src: []string{stateRunning}, Dst: stateFailed},
			{Name: eventTimeout, Src: []string{stateRunning}, Dst: stateTimedOut},
			{Name: eventSkip, Src: []string{statePending}, Dst: stateSkipped},
		},
		fsm.Callbacks{
			"enter_state": func(_ context.Context, e *fsm.Event) {
				verbose.PackageState(name, e.Dst)
			},
		},
	)
}

// statusForState maps a terminal lifecycle state to its reported status.
//
// Parameters:
//   - state: Lifecycle state, normally terminal
//
// Returns:
//   - string: The constants.Status* value for the state; StatusFailed for
//     anything that is not a known terminal state, so an interrupted
//     lifecycle is never misreported as success
func statusForState(state string) string {
	switch state {
	case stateSucceeded:
		return constants.StatusSuccess
	case stateTimedOut:
		return constants.StatusTimedOut
	case stateSkipped:
		return constants.StatusSkipped
	default:
		return constants.StatusFailed
	}
}
