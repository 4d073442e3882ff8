package callback

import (
	"context"
	"log/slog"

	"github.com/hmcts/sscs-dwp/internal/ccd"
	"github.com/hmcts/sscs-dwp/internal/evidence"
	"github.com/hmcts/sscs-dwp/internal/idam"
	dErrors "github.com/hmcts/sscs-dwp/pkg/domain-errors"
)

// Distributor runs evidence distribution for a case. Implementations
// should return the run record alongside an error, but handlers tolerate a
// nil run on the error path.
type Distributor interface {
	Issue(ctx context.Context, caseData *ccd.CaseData) (*evidence.Run, error)
	Reissue(ctx context.Context, caseData *ccd.CaseData, selection ccd.ReissueSelection) (*evidence.Run, error)
}

// runState reads the run's state for error logs, treating a missing run as
// a failed one.
func runState(run *evidence.Run) evidence.RunState {
	if run == nil {
		return evidence.RunFailed
	}
	return run.State()
}

// IssueFurtherEvidenceHandler distributes every outstanding evidence
// document when the issue event fires, then writes the flipped issued flags
// back with a single case update.
type IssueFurtherEvidenceHandler struct {
	distributor Distributor
	updater     ccd.Client
	tokens      idam.Provider
	logger      *slog.Logger
}

// NewIssueFurtherEvidenceHandler builds the issue handler.
func NewIssueFurtherEvidenceHandler(distributor Distributor, updater ccd.Client, tokens idam.Provider, logger *slog.Logger) *IssueFurtherEvidenceHandler {
	return &IssueFurtherEvidenceHandler{distributor: distributor, updater: updater, tokens: tokens, logger: logger}
}

// CanHandle claims submitted issue events with outstanding evidence.
func (h *IssueFurtherEvidenceHandler) CanHandle(callbackType Type, cb *Callback) bool {
	return callbackType == Submitted &&
		cb.Event == ccd.EventIssueFurtherEvidence &&
		evidence.CanHandleAny(&cb.CaseDetails.CaseData)
}

// Handle runs distribution. On failure the processing-state marker is set on
// the callback's case data for the caller to persist; no update call is
// made for a failed run.
func (h *IssueFurtherEvidenceHandler) Handle(ctx context.Context, callbackType Type, cb *Callback) error {
	if !h.CanHandle(callbackType, cb) {
		return dErrors.New(dErrors.CodePrecondition, "cannot handle callback")
	}

	caseData := &cb.CaseDetails.CaseData
	run, err := h.distributor.Issue(ctx, caseData)
	if err != nil {
		caseData.ProcessingState = ccd.ProcessingFailedSendingFurtherEvidence
		h.logger.Error("failed to issue further evidence",
			"case_id", cb.CaseDetails.CaseID(),
			"state", runState(run),
			"error", err,
		)
		return err
	}
	if !run.Changed() {
		return nil
	}

	tokens, err := h.tokens.Tokens(ctx)
	if err != nil {
		return err
	}
	updated, err := h.updater.UpdateCase(ctx, caseData, cb.CaseDetails.CaseID(), ccd.EventCaseUpdated,
		"Update case data", "Update issued evidence document flags after issuing further evidence", tokens)
	if err != nil {
		return err
	}
	cb.CaseDetails.CaseData = *updated
	return nil
}
