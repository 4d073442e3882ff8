package evidence

import (
	"time"

	"github.com/hmcts/sscs-dwp/internal/ccd"
	dErrors "github.com/hmcts/sscs-dwp/pkg/domain-errors"
)

// RunState tracks where a distribution run is in its lifecycle.
type RunState string

const (
	RunNotStarted    RunState = "notStarted"
	RunResolving     RunState = "resolving"
	RunDispatching   RunState = "perRecipientDispatch"
	RunMarkingIssued RunState = "markingIssued"
	RunCompleted     RunState = "completed"
	RunFailed        RunState = "failed"
)

var runTransitions = map[RunState][]RunState{
	RunNotStarted:    {RunResolving},
	RunResolving:     {RunDispatching, RunCompleted},
	RunDispatching:   {RunMarkingIssued},
	RunMarkingIssued: {RunCompleted},
}

// Run is the record of a single distribution attempt for one case. Dispatch
// is at-least-once: letters already handed to the print provider are never
// recalled when a later recipient fails, so a failed run may leave some
// letters in flight while the issued flags stay untouched.
type Run struct {
	CaseID    string
	Event     ccd.EventType
	StartedAt time.Time

	state RunState

	// Dispatched counts letters handed to the print provider, Diverted
	// counts letters withheld for a reasonable adjustment, Suppressed
	// counts letters not sent because dispatch is disabled, Marked counts
	// documents flagged as issued.
	Dispatched int
	Diverted   int
	Suppressed int
	Marked     int
}

func newRun(caseID string, event ccd.EventType) *Run {
	return &Run{
		CaseID:    caseID,
		Event:     event,
		StartedAt: time.Now().UTC(),
		state:     RunNotStarted,
	}
}

func (r *Run) to(next RunState) error {
	for _, allowed := range runTransitions[r.state] {
		if allowed == next {
			r.state = next
			return nil
		}
	}
	return dErrors.Newf(dErrors.CodeInternal, "illegal run transition %s -> %s", r.state, next)
}

// fail is reachable from any state.
func (r *Run) fail() {
	r.state = RunFailed
}

// State returns the run's current lifecycle state.
func (r *Run) State() RunState {
	return r.state
}

// Changed reports whether the run altered the case: at least one document
// was flagged as issued. Callers use this to decide whether a case update
// is owed.
func (r *Run) Changed() bool {
	return r.Marked > 0
}
