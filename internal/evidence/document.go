package evidence

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/hmcts/sscs-dwp/internal/ccd"
	"github.com/hmcts/sscs-dwp/internal/docmosis"
	"github.com/hmcts/sscs-dwp/internal/docstore"
	dErrors "github.com/hmcts/sscs-dwp/pkg/domain-errors"
)

const fetchTimeout = 60 * time.Second

// DocumentService turns stored document references into printable content.
type DocumentService struct {
	fetcher docstore.Fetcher
}

// NewDocumentService builds a DocumentService over the given fetcher.
func NewDocumentService(fetcher docstore.Fetcher) *DocumentService {
	return &DocumentService{fetcher: fetcher}
}

// CollectPdfs downloads the content for every document in the batch,
// fetching in parallel with shared cancellation on the first failure. The
// result preserves batch order. When a document carries a resized rendering,
// that rendering is preferred over the original so oversized uploads never
// reach the printer.
func (s *DocumentService) CollectPdfs(ctx context.Context, docs []*ccd.Document) ([]docmosis.Pdf, error) {
	ctx, cancel := context.WithTimeout(ctx, fetchTimeout)
	defer cancel()

	g, ctx := errgroup.WithContext(ctx)

	pdfs := make([]docmosis.Pdf, len(docs))
	for i, doc := range docs {
		i := i
		link := doc.Link
		if doc.ResizedLink != nil {
			link = *doc.ResizedLink
		}
		if link.BinaryURL == "" {
			return nil, dErrors.Newf(dErrors.CodeValidation, "document %q has no binary link", doc.FileName)
		}
		name := doc.FileName
		if name == "" {
			name = doc.Link.Filename
		}

		g.Go(func() error {
			content, err := s.fetcher.Fetch(ctx, link.BinaryURL)
			if err != nil {
				return dErrors.Wrap(err, dErrors.CodeUnavailable, "failed to fetch document content")
			}
			pdfs[i] = docmosis.Pdf{Data: content, Name: name}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return pdfs, nil
}
