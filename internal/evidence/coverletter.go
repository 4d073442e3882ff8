package evidence

import (
	"context"

	"github.com/hmcts/sscs-dwp/internal/ccd"
	"github.com/hmcts/sscs-dwp/internal/docmosis"
	dErrors "github.com/hmcts/sscs-dwp/pkg/domain-errors"
)

// dwpDocName distinguishes the respondent's copy of the other-parties
// letter in the print batch listing.
const dwpDocName = "609-98-template (DWP)"

// CoverLetterService renders the cover letter that fronts every bundle.
type CoverLetterService struct {
	generator    docmosis.Generator
	placeholders *docmosis.PlaceholderService
}

// NewCoverLetterService builds a CoverLetterService.
func NewCoverLetterService(generator docmosis.Generator, placeholders *docmosis.PlaceholderService) *CoverLetterService {
	return &CoverLetterService{generator: generator, placeholders: placeholders}
}

// Generate renders the cover letter for one recipient as a named Pdf.
func (s *CoverLetterService) Generate(ctx context.Context, caseData *ccd.CaseData, recipient Recipient, template Template) (docmosis.Pdf, error) {
	placeholders := s.placeholders.ForLetter(caseData, recipient.LetterType)
	content, err := s.generator.Generate(ctx, template.ID, placeholders)
	if err != nil {
		return docmosis.Pdf{}, dErrors.Wrap(err, dErrors.CodeOf(err), "failed to generate cover letter")
	}
	name := template.DocName
	if recipient.Role == RoleOtherParties && recipient.LetterType == ccd.DwpLetter {
		name = dwpDocName
	}
	return docmosis.Pdf{Data: content, Name: name}, nil
}

// Bundle prepends the cover letter to the evidence so it prints first.
func Bundle(cover docmosis.Pdf, evidence []docmosis.Pdf) []docmosis.Pdf {
	bundle := make([]docmosis.Pdf, 0, len(evidence)+1)
	bundle = append(bundle, cover)
	bundle = append(bundle, evidence...)
	return bundle
}
