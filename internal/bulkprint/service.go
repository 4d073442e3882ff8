package bulkprint

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/hmcts/sscs-dwp/internal/ccd"
	"github.com/hmcts/sscs-dwp/internal/docmosis"
)

// Service decides whether a bundle is printed or withheld. A party who has
// asked for a reasonable adjustment never receives unsolicited print: the
// letter is recorded on the case's correspondence history instead and an
// operator sends it manually later.
type Service struct {
	client  PrintClient
	enabled bool
	logger  *slog.Logger
	now     func() time.Time
}

// Option configures optional Service collaborators.
type Option func(*Service)

// WithLogger sets the service logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

// WithClock overrides the correspondence timestamp source.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// Outcome classifies what happened to one bundle.
type Outcome string

const (
	// OutcomePrinted means the bundle was handed to the print provider.
	OutcomePrinted Outcome = "printed"
	// OutcomeDiverted means a reasonable adjustment withheld the letter and
	// a correspondence entry records it on the case.
	OutcomeDiverted Outcome = "diverted"
	// OutcomeSuppressed means dispatch is disabled by configuration.
	OutcomeSuppressed Outcome = "suppressed"
)

// Correspondence history is recorded in the tribunal's local time.
var londonTime = func() *time.Location {
	loc, err := time.LoadLocation("Europe/London")
	if err != nil {
		return time.UTC
	}
	return loc
}()

// NewService builds the print dispatch service. When enabled is false no
// letter ever reaches the provider; dispatch degrades to a logged no-op.
func NewService(client PrintClient, enabled bool, opts ...Option) *Service {
	s := &Service{
		client:  client,
		enabled: enabled,
		logger:  slog.Default(),
		now:     func() time.Time { return time.Now().In(londonTime) },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SendToBulkPrint dispatches one bundle for one recipient. The returned
// outcome says whether the bundle was printed, diverted for a reasonable
// adjustment, or suppressed because dispatch is disabled; the letter id is
// set only when the outcome is printed.
func (s *Service) SendToBulkPrint(ctx context.Context, pdfs []docmosis.Pdf, caseData *ccd.CaseData, letterType ccd.LetterType, event ccd.EventType) (*uuid.UUID, Outcome, error) {
	if caseData.WantsReasonableAdjustment(letterType) {
		s.divert(caseData, letterType)
		s.logger.Info("letter diverted for reasonable adjustment",
			"case_id", caseData.CaseID,
			"letter_type", letterType,
			"event", event,
		)
		return nil, OutcomeDiverted, nil
	}
	if !s.enabled {
		s.logger.Warn("bulk print disabled, letter not sent",
			"case_id", caseData.CaseID,
			"letter_type", letterType,
		)
		return nil, OutcomeSuppressed, nil
	}

	id, err := s.client.Send(ctx, pdfs, map[string]string{
		"letterType":     string(letterType),
		"appellantName":  caseData.Appeal.Appellant.Name.FullNameNoTitle(),
		"caseIdentifier": caseData.CaseID,
	})
	if err != nil {
		return nil, "", err
	}
	return &id, OutcomePrinted, nil
}

// divert records a correspondence entry so the withheld letter stays
// visible and actionable on the case.
func (s *Service) divert(caseData *ccd.CaseData, letterType ccd.LetterType) {
	caseData.AppendReasonableAdjustments([]ccd.Correspondence{{
		To:     caseData.PartyName(letterType),
		Type:   ccd.CorrespondenceLetter,
		SentOn: s.now(),
		Event:  "stoppedForReasonableAdjustment",
	}})
}
