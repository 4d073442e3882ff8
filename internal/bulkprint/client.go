// Package bulkprint dispatches letter bundles to the print provider, or
// withholds them when a party has asked for a reasonable adjustment.
package bulkprint

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/hmcts/sscs-dwp/internal/docmosis"
	"github.com/hmcts/sscs-dwp/internal/idam"
	"github.com/hmcts/sscs-dwp/internal/platform/config"
	dErrors "github.com/hmcts/sscs-dwp/pkg/domain-errors"
	"github.com/hmcts/sscs-dwp/pkg/platform/sentinel"
)

const letterContentType = "application/vnd.uk.gov.hmcts.letter-service.in.letter.v2+json"

// PrintClient submits a letter to the print provider and returns its id.
type PrintClient interface {
	Send(ctx context.Context, pdfs []docmosis.Pdf, additionalData map[string]string) (uuid.UUID, error)
}

// HTTPClient calls the send-letter service.
type HTTPClient struct {
	baseURL string
	tokens  idam.Provider
	client  *http.Client
}

// NewHTTPClient builds a send-letter client.
func NewHTTPClient(cfg config.SendLetter, tokens idam.Provider) *HTTPClient {
	return &HTTPClient{
		baseURL: cfg.URL,
		tokens:  tokens,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

type letterRequest struct {
	Documents      []string          `json:"documents"`
	Type           string            `json:"type"`
	AdditionalData map[string]string `json:"additional_data,omitempty"`
}

type letterResponse struct {
	LetterID string `json:"letter_id"`
}

// Send submits the bundle. Every document must be a PDF; the provider
// rejects anything else, so the payload is validated before it leaves.
func (c *HTTPClient) Send(ctx context.Context, pdfs []docmosis.Pdf, additionalData map[string]string) (uuid.UUID, error) {
	documents := make([]string, 0, len(pdfs))
	for _, pdf := range pdfs {
		if !bytes.HasPrefix(pdf.Data, []byte("%PDF")) {
			return uuid.Nil, dErrors.Newf(dErrors.CodeValidation, "document %q is not a PDF", pdf.Name)
		}
		documents = append(documents, base64.StdEncoding.EncodeToString(pdf.Data))
	}

	serviceToken, err := c.tokens.ServiceToken(ctx)
	if err != nil {
		return uuid.Nil, err
	}

	body, err := json.Marshal(letterRequest{
		Documents:      documents,
		Type:           "sscs-lor",
		AdditionalData: additionalData,
	})
	if err != nil {
		return uuid.Nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to encode letter request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/letters", bytes.NewReader(body))
	if err != nil {
		return uuid.Nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to build letter request")
	}
	req.Header.Set("Content-Type", letterContentType)
	req.Header.Set("ServiceAuthorization", serviceToken)

	resp, err := c.client.Do(req)
	if err != nil {
		return uuid.Nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "send-letter request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 && resp.StatusCode < 500 {
		return uuid.Nil, dErrors.Wrap(
			fmt.Errorf("%w: send-letter returned status %d", sentinel.ErrRejected, resp.StatusCode),
			dErrors.CodeValidation, "letter rejected by print provider")
	}
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return uuid.Nil, dErrors.Newf(dErrors.CodeUnavailable, "send-letter returned status %d", resp.StatusCode)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return uuid.Nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "failed to read send-letter response")
	}
	var parsed letterResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return uuid.Nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "failed to decode send-letter response")
	}
	id, err := uuid.Parse(parsed.LetterID)
	if err != nil {
		return uuid.Nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "send-letter returned malformed letter id")
	}
	return id, nil
}
