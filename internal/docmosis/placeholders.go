package docmosis

import (
	"time"

	"github.com/hmcts/sscs-dwp/internal/ccd"
)

// Placeholder keys shared by the original-sender and other-parties cover
// letter templates.
const (
	placeholderCaseID        = "case_id"
	placeholderAppellantName = "appellant_full_name"
	placeholderBenefitType   = "benefit_type"
	placeholderName          = "name"
	placeholderAddressLine1  = "letter_address_line_1"
	placeholderAddressLine2  = "letter_address_line_2"
	placeholderAddressTown   = "letter_address_town"
	placeholderAddressCounty = "letter_address_county"
	placeholderPostcode      = "letter_address_postcode"
	placeholderGeneratedDate = "generated_date"
	placeholderWelshDate     = "welsh_generated_date"
)

// dwpOfficeName addresses opposing-department letters; the department has no
// person name on the case.
const dwpOfficeName = "The Department for Work and Pensions"

// PlaceholderService builds the placeholder maps the cover-letter templates
// expect. Deterministic given a fixed clock, which tests install.
type PlaceholderService struct {
	now func() time.Time
}

// NewPlaceholderService builds the service with the real clock.
func NewPlaceholderService() *PlaceholderService {
	return &PlaceholderService{now: time.Now}
}

// NewPlaceholderServiceWithClock is for tests needing stable output.
func NewPlaceholderServiceWithClock(now func() time.Time) *PlaceholderService {
	return &PlaceholderService{now: now}
}

// ForLetter populates the placeholders for one recipient's cover letter.
func (s *PlaceholderService) ForLetter(caseData *ccd.CaseData, letterType ccd.LetterType) map[string]any {
	name := caseData.PartyName(letterType)
	if letterType == ccd.DwpLetter {
		name = dwpOfficeName
	}
	address := letterAddress(caseData, letterType)
	generated := s.now().Format("02-01-2006")

	return map[string]any{
		placeholderCaseID:        caseData.CaseID,
		placeholderAppellantName: caseData.Appeal.Appellant.Name.FullNameNoTitle(),
		placeholderBenefitType:   string(caseData.Appeal.BenefitType),
		placeholderName:          name,
		placeholderAddressLine1:  address.Line1,
		placeholderAddressLine2:  address.Line2,
		placeholderAddressTown:   address.Town,
		placeholderAddressCounty: address.County,
		placeholderPostcode:      address.Postcode,
		placeholderGeneratedDate: generated,
		placeholderWelshDate:     generated,
	}
}

// letterAddress picks the postal address for a letter type. Joint parties
// may share the appellant's address; opposing-department letters carry no
// address because dispatch routes them by office.
func letterAddress(caseData *ccd.CaseData, letterType ccd.LetterType) ccd.Address {
	switch letterType {
	case ccd.AppellantLetter:
		return caseData.Appeal.Appellant.Address
	case ccd.RepresentativeLetter:
		if caseData.Appeal.Representative != nil {
			return caseData.Appeal.Representative.Address
		}
	case ccd.JointPartyLetter:
		if jp := caseData.JointParty; jp != nil {
			if jp.AddressSameAsAppellant {
				return caseData.Appeal.Appellant.Address
			}
			return jp.Address
		}
	}
	return ccd.Address{}
}
