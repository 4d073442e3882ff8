// Package docstore downloads stored evidence binaries from the document
// store so they can be bundled behind a cover letter.
package docstore

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/hmcts/sscs-dwp/internal/idam"
	dErrors "github.com/hmcts/sscs-dwp/pkg/domain-errors"
	"github.com/hmcts/sscs-dwp/pkg/platform/sentinel"
)

// Fetcher retrieves document content by its binary URL.
type Fetcher interface {
	Fetch(ctx context.Context, binaryURL string) ([]byte, error)
}

// HTTPFetcher is the production Fetcher.
type HTTPFetcher struct {
	tokens idam.Provider
	client *http.Client
}

// NewHTTPFetcher builds the document store client.
func NewHTTPFetcher(tokens idam.Provider) *HTTPFetcher {
	return &HTTPFetcher{
		tokens: tokens,
		client: &http.Client{Timeout: 60 * time.Second},
	}
}

// Fetch downloads the document bytes. A missing document surfaces as
// sentinel.ErrNotFound so callers can distinguish it from outages.
func (f *HTTPFetcher) Fetch(ctx context.Context, binaryURL string) ([]byte, error) {
	serviceToken, err := f.tokens.ServiceToken(ctx)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, binaryURL, nil)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to build document request")
	}
	req.Header.Set("ServiceAuthorization", serviceToken)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "document store call failed")
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode == http.StatusNotFound:
		return nil, dErrors.Wrap(sentinel.ErrNotFound, dErrors.CodeNotFound, "document "+binaryURL)
	default:
		return nil, dErrors.Newf(dErrors.CodeUnavailable,
			"document store returned status %d for %s", resp.StatusCode, binaryURL)
	}

	content, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "failed to read document content")
	}
	return content, nil
}
