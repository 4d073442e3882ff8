// Package evidence decides who receives paper copies of newly arrived
// further evidence and drives the distribution run for a case.
package evidence

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/hmcts/sscs-dwp/internal/bulkprint"
	"github.com/hmcts/sscs-dwp/internal/ccd"
	"github.com/hmcts/sscs-dwp/internal/docmosis"
	"github.com/hmcts/sscs-dwp/internal/evidence/metrics"
	dErrors "github.com/hmcts/sscs-dwp/pkg/domain-errors"
)

// Printer hands a bundle to the bulk print provider. A withheld letter is
// not an error: the outcome distinguishes a reasonable-adjustment diversion
// from dispatch being disabled, and the letter id is set only for a printed
// bundle.
type Printer interface {
	SendToBulkPrint(ctx context.Context, pdfs []docmosis.Pdf, caseData *ccd.CaseData, letterType ccd.LetterType, event ccd.EventType) (*uuid.UUID, bulkprint.Outcome, error)
}

// Service orchestrates distribution runs: it classifies outstanding
// evidence, resolves recipients, bundles cover letters with content and
// dispatches each bundle, then flips the issued flags.
type Service struct {
	templates *TemplateRegistry
	letters   *CoverLetterService
	documents *DocumentService
	printer   Printer

	logger  *slog.Logger
	metrics *metrics.Metrics
}

// Option configures optional Service collaborators.
type Option func(*Service)

// WithLogger sets the service logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

// WithMetrics enables run instrumentation.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// NewService builds the distribution service.
func NewService(templates *TemplateRegistry, letters *CoverLetterService, documents *DocumentService, printer Printer, opts ...Option) *Service {
	s := &Service{
		templates: templates,
		letters:   letters,
		documents: documents,
		printer:   printer,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Issue distributes every outstanding evidence document on the case,
// category by category, to all structurally applicable parties.
func (s *Service) Issue(ctx context.Context, caseData *ccd.CaseData) (*Run, error) {
	batches := ClassifyNotIssued(caseData)
	return s.distribute(ctx, caseData, batches, ccd.AllLetterTypes, ccd.EventIssueFurtherEvidence)
}

// Reissue re-sends a single, already issued document to an explicit subset
// of parties. An empty subset completes as a no-op. The targeted document
// must exist on the case.
func (s *Service) Reissue(ctx context.Context, caseData *ccd.CaseData, selection ccd.ReissueSelection) (*Run, error) {
	allowed := selection.AllowedLetterTypes()
	if len(allowed) == 0 {
		run := newRun(caseData.CaseID, ccd.EventReissueFurtherEvidence)
		run.to(RunResolving)
		run.to(RunCompleted)
		return run, nil
	}

	doc := FindByReference(caseData, selection.DocumentURL)
	if doc == nil {
		run := newRun(caseData.CaseID, ccd.EventReissueFurtherEvidence)
		run.fail()
		return run, dErrors.Newf(dErrors.CodeNotFound, "no document with url %q on case %s", selection.DocumentURL, caseData.CaseID)
	}
	if !doc.Type.IsEvidence() {
		run := newRun(caseData.CaseID, ccd.EventReissueFurtherEvidence)
		run.fail()
		return run, dErrors.Newf(dErrors.CodeValidation, "document %q is not distributable evidence", selection.DocumentURL)
	}

	batches := []Batch{{Category: doc.Type, Docs: []*ccd.Document{doc}}}
	return s.distribute(ctx, caseData, batches, allowed, ccd.EventReissueFurtherEvidence)
}

func (s *Service) distribute(ctx context.Context, caseData *ccd.CaseData, batches []Batch, allowed []ccd.LetterType, event ccd.EventType) (*Run, error) {
	run := newRun(caseData.CaseID, event)
	defer s.observe(run)

	if err := run.to(RunResolving); err != nil {
		return run, err
	}
	if len(batches) == 0 {
		run.to(RunCompleted)
		s.logger.Info("nothing to distribute", "case_id", caseData.CaseID, "event", event)
		return run, nil
	}
	if err := run.to(RunDispatching); err != nil {
		return run, err
	}

	comp := caseData.PartyComposition()
	for _, batch := range batches {
		pdfs, err := s.documents.CollectPdfs(ctx, batch.Docs)
		if err != nil {
			run.fail()
			return run, err
		}
		recipients := ResolveRecipients(batch.Category, comp, allowed)
		for _, recipient := range recipients {
			if err := s.dispatch(ctx, caseData, batch, recipient, comp, pdfs, run); err != nil {
				run.fail()
				return run, err
			}
		}
	}

	if err := run.to(RunMarkingIssued); err != nil {
		return run, err
	}
	for _, batch := range batches {
		for _, doc := range batch.Docs {
			doc.EvidenceIssued = true
			run.Marked++
		}
	}
	if err := run.to(RunCompleted); err != nil {
		return run, err
	}

	s.logger.Info("distribution run completed",
		"case_id", caseData.CaseID,
		"event", event,
		"dispatched", run.Dispatched,
		"diverted", run.Diverted,
		"marked", run.Marked,
	)
	return run, nil
}

func (s *Service) dispatch(ctx context.Context, caseData *ccd.CaseData, batch Batch, recipient Recipient, comp ccd.PartyComposition, pdfs []docmosis.Pdf, run *Run) error {
	template, err := s.templates.Lookup(comp.Language, recipient.Role)
	if err != nil {
		return err
	}
	cover, err := s.letters.Generate(ctx, caseData, recipient, template)
	if err != nil {
		return err
	}

	id, outcome, err := s.printer.SendToBulkPrint(ctx, Bundle(cover, pdfs), caseData, recipient.LetterType, run.Event)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeOf(err), "failed to send bundle to bulk print")
	}
	switch outcome {
	case bulkprint.OutcomeDiverted:
		run.Diverted++
		if s.metrics != nil {
			s.metrics.AdjustmentRecorded()
		}
		return nil
	case bulkprint.OutcomeSuppressed:
		run.Suppressed++
		if s.metrics != nil {
			s.metrics.SendSuppressed()
		}
		return nil
	}

	run.Dispatched++
	if s.metrics != nil {
		s.metrics.LetterPrinted(string(recipient.LetterType))
	}
	s.logger.Info("bundle sent to bulk print",
		"case_id", caseData.CaseID,
		"letter_type", recipient.LetterType,
		"category", batch.Category,
		"letter_id", id.String(),
	)
	return nil
}

func (s *Service) observe(run *Run) {
	if s.metrics != nil {
		s.metrics.RunFinished(string(run.State()), run.StartedAt)
	}
}
