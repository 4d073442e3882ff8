package evidence

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hmcts/sscs-dwp/internal/ccd"
)

func TestRunTransitions(t *testing.T) {
	t.Run("walks the full lifecycle in order", func(t *testing.T) {
		run := newRun("1", ccd.EventIssueFurtherEvidence)
		assert.Equal(t, RunNotStarted, run.State())

		require.NoError(t, run.to(RunResolving))
		require.NoError(t, run.to(RunDispatching))
		require.NoError(t, run.to(RunMarkingIssued))
		require.NoError(t, run.to(RunCompleted))
		assert.Equal(t, RunCompleted, run.State())
	})

	t.Run("resolving may short-circuit straight to completed", func(t *testing.T) {
		run := newRun("1", ccd.EventIssueFurtherEvidence)
		require.NoError(t, run.to(RunResolving))
		require.NoError(t, run.to(RunCompleted))
	})

	t.Run("rejects skipping a state", func(t *testing.T) {
		run := newRun("1", ccd.EventIssueFurtherEvidence)
		require.NoError(t, run.to(RunResolving))
		assert.Error(t, run.to(RunMarkingIssued))
	})

	t.Run("rejects leaving a terminal state", func(t *testing.T) {
		run := newRun("1", ccd.EventIssueFurtherEvidence)
		require.NoError(t, run.to(RunResolving))
		require.NoError(t, run.to(RunCompleted))
		assert.Error(t, run.to(RunResolving))
	})

	t.Run("failure is reachable from anywhere", func(t *testing.T) {
		run := newRun("1", ccd.EventIssueFurtherEvidence)
		run.fail()
		assert.Equal(t, RunFailed, run.State())
	})

	t.Run("changed only once documents are marked", func(t *testing.T) {
		run := newRun("1", ccd.EventIssueFurtherEvidence)
		assert.False(t, run.Changed())
		run.Marked = 2
		assert.True(t, run.Changed())
	})
}
