package callback

import (
	"context"

	"github.com/hmcts/sscs-dwp/internal/ccd"
	"github.com/hmcts/sscs-dwp/internal/evidence"
	"github.com/hmcts/sscs-dwp/internal/idam"
)

type fakeDistributor struct {
	issueRun   *evidence.Run
	issueErr   error
	issueCalls int

	reissueRun *evidence.Run
	reissueErr error
	selections []ccd.ReissueSelection
}

func (d *fakeDistributor) Issue(ctx context.Context, caseData *ccd.CaseData) (*evidence.Run, error) {
	d.issueCalls++
	return d.issueRun, d.issueErr
}

func (d *fakeDistributor) Reissue(ctx context.Context, caseData *ccd.CaseData, selection ccd.ReissueSelection) (*evidence.Run, error) {
	d.selections = append(d.selections, selection)
	return d.reissueRun, d.reissueErr
}

type updateCall struct {
	caseID      string
	event       ccd.EventType
	summary     string
	description string
	dwpState    ccd.DwpState
}

type fakeUpdater struct {
	calls []updateCall
	err   error
}

func (u *fakeUpdater) UpdateCase(ctx context.Context, caseData *ccd.CaseData, caseID string, event ccd.EventType, summary, description string, tokens idam.Tokens) (*ccd.CaseData, error) {
	if u.err != nil {
		return nil, u.err
	}
	u.calls = append(u.calls, updateCall{
		caseID:      caseID,
		event:       event,
		summary:     summary,
		description: description,
		dwpState:    caseData.DwpState,
	})
	updated := *caseData
	return &updated, nil
}

type staticTokens struct{}

func (staticTokens) Tokens(ctx context.Context) (idam.Tokens, error) {
	return idam.Tokens{UserToken: "Bearer user", ServiceToken: "service"}, nil
}

func (staticTokens) ServiceToken(ctx context.Context) (string, error) {
	return "service", nil
}
