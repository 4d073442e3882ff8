// Package docmosis talks to the document-rendering service: template id plus
// placeholder map in, PDF bytes out.
package docmosis

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/hmcts/sscs-dwp/internal/platform/config"
	dErrors "github.com/hmcts/sscs-dwp/pkg/domain-errors"
)

// Pdf is one rendered document plus its display name. Cover letters are
// prepended to the evidence Pdfs of their print batch.
type Pdf struct {
	Data []byte
	Name string
}

// Generator renders a template into PDF bytes. One call per recipient per
// distribution run.
type Generator interface {
	Generate(ctx context.Context, templateID string, placeholders map[string]any) ([]byte, error)
}

// HTTPGenerator is the production Generator.
type HTTPGenerator struct {
	url       string
	accessKey string
	client    *http.Client
}

// NewHTTPGenerator builds the rendering client.
func NewHTTPGenerator(cfg config.Docmosis) *HTTPGenerator {
	return &HTTPGenerator{
		url:       cfg.URL,
		accessKey: cfg.AccessKey,
		client:    &http.Client{Timeout: 60 * time.Second},
	}
}

type renderRequest struct {
	TemplateName string         `json:"templateName"`
	OutputName   string         `json:"outputName"`
	AccessKey    string         `json:"accessKey"`
	PdfArchive   bool           `json:"pdfArchiveMode"`
	Data         map[string]any `json:"data"`
}

// Generate renders the template. An unknown template is a configuration
// fault and must not be retried; anything else is a transport fault that
// aborts the distribution run.
func (g *HTTPGenerator) Generate(ctx context.Context, templateID string, placeholders map[string]any) ([]byte, error) {
	body, err := json.Marshal(renderRequest{
		TemplateName: templateID,
		OutputName:   "letter.pdf",
		AccessKey:    g.accessKey,
		PdfArchive:   true,
		Data:         placeholders,
	})
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to encode render request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.url, bytes.NewReader(body))
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to build render request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "render call failed")
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode == http.StatusBadRequest || resp.StatusCode == http.StatusNotFound:
		return nil, dErrors.Newf(dErrors.CodeConfiguration,
			"rendering service does not know template %s (status %d)", templateID, resp.StatusCode)
	default:
		return nil, dErrors.Newf(dErrors.CodeUnavailable,
			"rendering service returned status %d for template %s", resp.StatusCode, templateID)
	}

	pdf, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "failed to read rendered PDF")
	}
	if !strings.HasPrefix(string(pdf), "%PDF") {
		return nil, dErrors.Newf(dErrors.CodeUnavailable,
			"rendering service returned non-PDF content for template %s", templateID)
	}
	return pdf, nil
}
