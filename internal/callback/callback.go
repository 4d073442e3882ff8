// Package callback receives case-event callbacks and routes them to the
// distribution and state-routing handlers.
package callback

import (
	"strconv"

	"github.com/hmcts/sscs-dwp/internal/ccd"
)

// Type is the stage of the case-event lifecycle a callback fires at.
type Type string

const (
	AboutToSubmit Type = "aboutToSubmit"
	Submitted     Type = "submitted"
)

// CaseDetails is the case snapshot carried on a callback.
type CaseDetails struct {
	ID       int64        `json:"id"`
	State    ccd.State    `json:"state"`
	CaseData ccd.CaseData `json:"case_data"`
}

// CaseID returns the numeric id as the string form used everywhere else.
func (d *CaseDetails) CaseID() string {
	return strconv.FormatInt(d.ID, 10)
}

// Callback is one case-event notification. OldCaseDetails carries the case
// as it stood before the event, when the sender includes it.
type Callback struct {
	Event          ccd.EventType `json:"event_id"`
	CaseDetails    CaseDetails   `json:"case_details"`
	OldCaseDetails *CaseDetails  `json:"case_details_before,omitempty"`
}
