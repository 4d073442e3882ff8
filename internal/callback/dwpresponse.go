package callback

import (
	"context"
	"log/slog"

	"github.com/hmcts/sscs-dwp/internal/ccd"
	"github.com/hmcts/sscs-dwp/internal/idam"
	dErrors "github.com/hmcts/sscs-dwp/pkg/domain-errors"
)

// DwpUploadResponseHandler routes a case onward once the department uploads
// its response: urgent cases go straight to the respond state, settled
// cases go to ready-to-list, and disputed universal-credit cases get a
// respond event explaining why.
type DwpUploadResponseHandler struct {
	updater ccd.Client
	tokens  idam.Provider
	logger  *slog.Logger
}

// NewDwpUploadResponseHandler builds the response router.
func NewDwpUploadResponseHandler(updater ccd.Client, tokens idam.Provider, logger *slog.Logger) *DwpUploadResponseHandler {
	return &DwpUploadResponseHandler{updater: updater, tokens: tokens, logger: logger}
}

// CanHandle claims submitted response-upload events for digital cases with
// a benefit recorded, except industrial-injuries cases which follow a
// different listing route.
func (h *DwpUploadResponseHandler) CanHandle(callbackType Type, cb *Callback) bool {
	caseData := &cb.CaseDetails.CaseData
	return callbackType == Submitted &&
		cb.Event == ccd.EventDwpUploadResponse &&
		caseData.CreatedInGapsFrom == ccd.StateReadyToList &&
		caseData.Appeal.BenefitType != "" &&
		!caseData.Appeal.BenefitType.Is(ccd.BenefitIIDB)
}

// Handle picks the follow-up event and triggers it with a case update.
func (h *DwpUploadResponseHandler) Handle(ctx context.Context, callbackType Type, cb *Callback) error {
	if !h.CanHandle(callbackType, cb) {
		return dErrors.New(dErrors.CodePrecondition, "cannot handle callback")
	}

	if cb.CaseDetails.CaseData.Appeal.BenefitType.Is(ccd.BenefitUC) {
		return h.handleUniversalCredit(ctx, cb)
	}
	return h.handleDefault(ctx, cb)
}

func (h *DwpUploadResponseHandler) handleDefault(ctx context.Context, cb *Callback) error {
	caseData := &cb.CaseDetails.CaseData
	if caseData.UrgentCase {
		return h.triggerRespondForUrgentCase(ctx, cb)
	}
	if !caseData.DwpFurtherInfo {
		caseData.DwpState = ccd.DwpStateResponseSubmitted
		return h.updateCase(ctx, cb, ccd.EventReadyToList, "ready to list",
			"update to ready to list event as there is no further information to assist the tribunal and no dispute.")
	}
	// Further information is expected; the case stays where it is.
	return nil
}

func (h *DwpUploadResponseHandler) handleUniversalCredit(ctx context.Context, cb *Callback) error {
	caseData := &cb.CaseDetails.CaseData
	furtherInfo := caseData.DwpFurtherInfo
	disputed := caseData.DisputedByOthers

	var err error
	switch {
	case caseData.UrgentCase:
		err = h.triggerRespondForUrgentCase(ctx, cb)
	case !furtherInfo && !disputed:
		caseData.DwpState = ccd.DwpStateResponseSubmitted
		err = h.updateCase(ctx, cb, ccd.EventReadyToList, "ready to list",
			"update to ready to list event as there is no further information to assist the tribunal and no dispute.")
	default:
		caseData.DwpState = ccd.DwpStateResponseSubmitted
		err = h.updateCase(ctx, cb, ccd.EventDwpRespond, "Response received",
			respondDescription(furtherInfo, disputed))
	}
	if err != nil {
		return err
	}

	if isNewJointParty(cb) {
		return h.updateCase(ctx, cb, ccd.EventJointPartyAdded, "Joint party added",
			"A joint party was added to the appeal")
	}
	return nil
}

func (h *DwpUploadResponseHandler) triggerRespondForUrgentCase(ctx context.Context, cb *Callback) error {
	cb.CaseDetails.CaseData.DwpState = ccd.DwpStateResponseSubmitted
	return h.updateCase(ctx, cb, ccd.EventDwpRespond, "Response received",
		"urgent hearing set to response received event")
}

func respondDescription(furtherInfo, disputed bool) string {
	switch {
	case furtherInfo && disputed:
		return "update to response received event as there is further information to assist the tribunal and there is a dispute."
	case furtherInfo:
		return "update to response received event as there is further information to assist the tribunal."
	default:
		return "update to response received event as there is a dispute."
	}
}

// isNewJointParty reports whether this event introduced the joint party.
func isNewJointParty(cb *Callback) bool {
	if !cb.CaseDetails.CaseData.HasJointParty() {
		return false
	}
	return cb.OldCaseDetails == nil || !cb.OldCaseDetails.CaseData.HasJointParty()
}

func (h *DwpUploadResponseHandler) updateCase(ctx context.Context, cb *Callback, event ccd.EventType, summary, description string) error {
	tokens, err := h.tokens.Tokens(ctx)
	if err != nil {
		return err
	}
	h.logger.Info("triggering follow-up event",
		"case_id", cb.CaseDetails.CaseID(),
		"event", event,
	)
	updated, err := h.updater.UpdateCase(ctx, &cb.CaseDetails.CaseData, cb.CaseDetails.CaseID(), event, summary, description, tokens)
	if err != nil {
		return err
	}
	cb.CaseDetails.CaseData = *updated
	return nil
}
