package callback

import (
	"context"
	"log/slog"

	"github.com/hmcts/sscs-dwp/internal/ccd"
	"github.com/hmcts/sscs-dwp/internal/idam"
	dErrors "github.com/hmcts/sscs-dwp/pkg/domain-errors"
)

// ReissueFurtherEvidenceHandler re-sends one chosen document to the subset
// of parties an operator selected on the reissue event.
type ReissueFurtherEvidenceHandler struct {
	distributor Distributor
	updater     ccd.Client
	tokens      idam.Provider
	logger      *slog.Logger
}

// NewReissueFurtherEvidenceHandler builds the reissue handler.
func NewReissueFurtherEvidenceHandler(distributor Distributor, updater ccd.Client, tokens idam.Provider, logger *slog.Logger) *ReissueFurtherEvidenceHandler {
	return &ReissueFurtherEvidenceHandler{distributor: distributor, updater: updater, tokens: tokens, logger: logger}
}

// CanHandle claims submitted reissue events carrying a document selection.
func (h *ReissueFurtherEvidenceHandler) CanHandle(callbackType Type, cb *Callback) bool {
	return callbackType == Submitted &&
		cb.Event == ccd.EventReissueFurtherEvidence &&
		cb.CaseDetails.CaseData.Reissue != nil &&
		cb.CaseDetails.CaseData.Reissue.DocumentURL != ""
}

// Handle re-distributes the selected document. The selection is consumed:
// it is cleared before the case update so a later reissue starts clean.
func (h *ReissueFurtherEvidenceHandler) Handle(ctx context.Context, callbackType Type, cb *Callback) error {
	if !h.CanHandle(callbackType, cb) {
		return dErrors.New(dErrors.CodePrecondition, "cannot handle callback")
	}

	caseData := &cb.CaseDetails.CaseData
	selection := *caseData.Reissue

	run, err := h.distributor.Reissue(ctx, caseData, selection)
	if err != nil {
		h.logger.Error("failed to reissue further evidence",
			"case_id", cb.CaseDetails.CaseID(),
			"document_url", selection.DocumentURL,
			"state", runState(run),
			"error", err,
		)
		return err
	}
	if !run.Changed() {
		return nil
	}

	caseData.Reissue = nil
	tokens, err := h.tokens.Tokens(ctx)
	if err != nil {
		return err
	}
	updated, err := h.updater.UpdateCase(ctx, caseData, cb.CaseDetails.CaseID(), ccd.EventCaseUpdated,
		"Update case data", "Update issued evidence document flags after re-issuing further evidence", tokens)
	if err != nil {
		return err
	}
	cb.CaseDetails.CaseData = *updated
	return nil
}
