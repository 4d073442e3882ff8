package ccd

import (
	"sort"
	"strings"
	"time"
)

// LanguagePreference selects the template language for a case. English is the
// default; Welsh is the only enabled alternate.
type LanguagePreference string

const (
	LanguageEnglish LanguagePreference = "english"
	LanguageWelsh   LanguagePreference = "welsh"
)

// LetterType is the closed set of party roles a cover letter can be
// addressed to.
type LetterType string

const (
	AppellantLetter      LetterType = "appellantLetter"
	RepresentativeLetter LetterType = "representativeLetter"
	DwpLetter            LetterType = "dwpLetter"
	JointPartyLetter     LetterType = "jointPartyLetter"
)

// AllLetterTypes is the default allowed-recipients list for the automatic
// issue path.
var AllLetterTypes = []LetterType{AppellantLetter, RepresentativeLetter, DwpLetter, JointPartyLetter}

// EventType identifies a case lifecycle event on the case-management
// platform.
type EventType string

const (
	EventIssueFurtherEvidence   EventType = "issueFurtherEvidence"
	EventReissueFurtherEvidence EventType = "reissueFurtherEvidence"
	EventDwpUploadResponse      EventType = "dwpUploadResponse"

	// EventCaseUpdated is the fixed "update only" event emitted exactly once
	// per successful distribution run.
	EventCaseUpdated EventType = "caseUpdated"

	EventReadyToList     EventType = "readyToList"
	EventDwpRespond      EventType = "dwpRespond"
	EventJointPartyAdded EventType = "jointPartyAdded"
)

// State is a case state on the case-management platform.
type State string

const (
	StateReadyToList State = "readyToList"
	StateValidAppeal State = "validAppeal"
)

// Benefit is a benefit category code.
type Benefit string

const (
	BenefitUC   Benefit = "UC"
	BenefitPIP  Benefit = "PIP"
	BenefitESA  Benefit = "ESA"
	BenefitIIDB Benefit = "IIDB"
)

// Is compares benefit codes case-insensitively, matching how the platform
// stores them.
func (b Benefit) Is(other Benefit) bool {
	return strings.EqualFold(string(b), string(other))
}

// ProcessingState marks the engine's processing outcome on the case.
type ProcessingState string

// ProcessingFailedSendingFurtherEvidence flags a distribution run that
// aborted; the surrounding platform retries the triggering event.
const ProcessingFailedSendingFurtherEvidence ProcessingState = "failedSendingFurtherEvidence"

// DwpState tracks where the opposing department's response sits.
type DwpState string

const DwpStateResponseSubmitted DwpState = "responseSubmitted"

// Name is a person's name as recorded on the appeal.
type Name struct {
	Title     string `json:"title,omitempty"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// FullNameNoTitle renders "First Last" for addressing metadata.
func (n Name) FullNameNoTitle() string {
	return strings.TrimSpace(n.FirstName + " " + n.LastName)
}

// Address is a postal address.
type Address struct {
	Line1    string `json:"line1"`
	Line2    string `json:"line2,omitempty"`
	Town     string `json:"town,omitempty"`
	County   string `json:"county,omitempty"`
	Postcode string `json:"postcode"`
}

// Appellant is the appealing party.
type Appellant struct {
	Name    Name    `json:"name"`
	Address Address `json:"address"`
}

// Representative acts for the appellant when present and enabled.
type Representative struct {
	HasRepresentative bool    `json:"hasRepresentative"`
	Name              Name    `json:"name"`
	Address           Address `json:"address"`
}

// JointParty is an additional party recorded on the case. A nil pointer on
// CaseData means no joint party exists.
type JointParty struct {
	Name                   Name    `json:"name"`
	AddressSameAsAppellant bool    `json:"addressSameAsAppellant"`
	Address                Address `json:"address"`
}

// Appeal groups the appeal-level party and benefit data the engine reads.
type Appeal struct {
	Appellant      Appellant       `json:"appellant"`
	BenefitType    Benefit         `json:"benefitType"`
	Representative *Representative `json:"rep,omitempty"`
}

// ReasonableAdjustmentDetails records one party's adjustment request.
type ReasonableAdjustmentDetails struct {
	Wanted       bool   `json:"wantsReasonableAdjustment"`
	Requirements string `json:"reasonableAdjustmentRequirements,omitempty"`
}

// ReasonableAdjustments holds per-party adjustment flags. Only the appellant
// and representative can divert letters; the opposing department and joint
// party always receive physical dispatch.
type ReasonableAdjustments struct {
	Appellant      *ReasonableAdjustmentDetails `json:"appellant,omitempty"`
	Representative *ReasonableAdjustmentDetails `json:"representative,omitempty"`
}

// CorrespondenceType classifies a correspondence history record.
type CorrespondenceType string

const CorrespondenceLetter CorrespondenceType = "Letter"

// Correspondence is one record in the case's correspondence history.
// Appended, never removed.
type Correspondence struct {
	To     string             `json:"to"`
	Type   CorrespondenceType `json:"correspondenceType"`
	SentOn time.Time          `json:"sentOn"`
	Event  string             `json:"eventType"`
}

// ReissueSelection is the operator's choice on the reissue event: one
// specific document by stable reference plus the subset of parties to resend
// to.
type ReissueSelection struct {
	DocumentURL            string `json:"documentUrl"`
	ResendToAppellant      bool   `json:"resendToAppellant"`
	ResendToRepresentative bool   `json:"resendToRepresentative"`
	ResendToDwp            bool   `json:"resendToDwp"`
	ResendToJointParty     bool   `json:"resendToJointParty"`
}

// AllowedLetterTypes translates the operator's resend flags into the
// allowed-recipients list for the reissue path. An empty result means
// "reissue to nobody".
func (r ReissueSelection) AllowedLetterTypes() []LetterType {
	var allowed []LetterType
	if r.ResendToAppellant {
		allowed = append(allowed, AppellantLetter)
	}
	if r.ResendToRepresentative {
		allowed = append(allowed, RepresentativeLetter)
	}
	if r.ResendToDwp {
		allowed = append(allowed, DwpLetter)
	}
	if r.ResendToJointParty {
		allowed = append(allowed, JointPartyLetter)
	}
	return allowed
}

// CaseData is the persistent aggregate for one appeal, restricted to the
// fields this engine reads and writes.
type CaseData struct {
	CaseID string `json:"ccdCaseId"`

	Appeal     Appeal      `json:"appeal"`
	Documents  []Document  `json:"sscsDocument"`
	JointParty *JointParty `json:"jointParty,omitempty"`

	LanguagePreferenceWelsh bool `json:"languagePreferenceWelsh"`

	ReasonableAdjustments            ReasonableAdjustments `json:"reasonableAdjustments"`
	ReasonableAdjustmentsLetters     []Correspondence      `json:"reasonableAdjustmentsLetters,omitempty"`
	ReasonableAdjustmentsOutstanding bool                  `json:"reasonableAdjustmentsOutstanding"`

	Reissue *ReissueSelection `json:"reissueFurtherEvidenceDocument,omitempty"`

	// Fields read by the DWP-response state router.
	CreatedInGapsFrom State `json:"createdInGapsFrom,omitempty"`
	DwpFurtherInfo    bool  `json:"dwpFurtherInfo"`
	DisputedByOthers  bool  `json:"elementsDisputedIsDecisionDisputedByOthers"`
	UrgentCase        bool  `json:"urgentCase"`

	ProcessingState ProcessingState `json:"hmctsDwpState,omitempty"`
	DwpState        DwpState        `json:"dwpState,omitempty"`
}

// HasRepresentative reports whether a representative is present and enabled.
func (c *CaseData) HasRepresentative() bool {
	return c.Appeal.Representative != nil && c.Appeal.Representative.HasRepresentative
}

// HasJointParty reports whether a joint party is recorded on the case.
func (c *CaseData) HasJointParty() bool {
	return c.JointParty != nil
}

// LanguagePreference returns the case's enabled letter language.
func (c *CaseData) LanguagePreference() LanguagePreference {
	if c.LanguagePreferenceWelsh {
		return LanguageWelsh
	}
	return LanguageEnglish
}

// PartyComposition is the read-only view recipient resolution works from.
type PartyComposition struct {
	HasRepresentative bool
	HasJointParty     bool
	Language          LanguagePreference
}

// PartyComposition derives the composition view from the case record.
func (c *CaseData) PartyComposition() PartyComposition {
	return PartyComposition{
		HasRepresentative: c.HasRepresentative(),
		HasJointParty:     c.HasJointParty(),
		Language:          c.LanguagePreference(),
	}
}

// WantsReasonableAdjustment reports whether the party behind the letter type
// has an active adjustment request. Only the appellant and representative
// can divert.
func (c *CaseData) WantsReasonableAdjustment(letterType LetterType) bool {
	switch letterType {
	case AppellantLetter:
		a := c.ReasonableAdjustments.Appellant
		return a != nil && a.Wanted
	case RepresentativeLetter:
		r := c.ReasonableAdjustments.Representative
		return r != nil && r.Wanted
	}
	return false
}

// AppendReasonableAdjustments merges new diverted-correspondence records into
// the history, keeps it sorted most recent first, and sets the outstanding
// marker. A no-op for an empty batch.
func (c *CaseData) AppendReasonableAdjustments(records []Correspondence) {
	if len(records) == 0 {
		return
	}
	c.ReasonableAdjustmentsLetters = append(c.ReasonableAdjustmentsLetters, records...)
	sort.SliceStable(c.ReasonableAdjustmentsLetters, func(i, j int) bool {
		return c.ReasonableAdjustmentsLetters[i].SentOn.After(c.ReasonableAdjustmentsLetters[j].SentOn)
	})
	c.ReasonableAdjustmentsOutstanding = true
}

// PartyName returns the recorded name for the party behind a letter type.
// The opposing department has no person name; callers address it by office.
func (c *CaseData) PartyName(letterType LetterType) string {
	switch letterType {
	case AppellantLetter:
		return c.Appeal.Appellant.Name.FullNameNoTitle()
	case RepresentativeLetter:
		if c.Appeal.Representative != nil {
			return c.Appeal.Representative.Name.FullNameNoTitle()
		}
	case JointPartyLetter:
		if c.JointParty != nil {
			return c.JointParty.Name.FullNameNoTitle()
		}
	}
	return ""
}
