package ccd

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/hmcts/sscs-dwp/internal/idam"
	"github.com/hmcts/sscs-dwp/internal/platform/config"
	dErrors "github.com/hmcts/sscs-dwp/pkg/domain-errors"
)

// Client persists case mutations and fires follow-up events on the
// case-management platform. The engine calls UpdateCase exactly once per
// successful distribution run.
type Client interface {
	UpdateCase(ctx context.Context, caseData *CaseData, caseID string, event EventType, summary, description string, tokens idam.Tokens) (*CaseData, error)
}

// HTTPClient is the production Client.
type HTTPClient struct {
	baseURL      string
	jurisdiction string
	caseType     string
	client       *http.Client
	logger       *slog.Logger
}

// NewHTTPClient builds the case-management client.
func NewHTTPClient(cfg config.CoreCaseData, logger *slog.Logger) *HTTPClient {
	return &HTTPClient{
		baseURL:      strings.TrimRight(cfg.URL, "/"),
		jurisdiction: cfg.Jurisdiction,
		caseType:     cfg.CaseType,
		client:       &http.Client{Timeout: 60 * time.Second},
		logger:       logger,
	}
}

type updateEventRequest struct {
	EventType   EventType `json:"event_id"`
	Summary     string    `json:"summary"`
	Description string    `json:"description"`
	Data        *CaseData `json:"data"`
}

type updateEventResponse struct {
	ID   string    `json:"id"`
	Data *CaseData `json:"case_data"`
}

// UpdateCase submits the mutated case data as a single platform event and
// returns the updated record.
func (c *HTTPClient) UpdateCase(ctx context.Context, caseData *CaseData, caseID string, event EventType, summary, description string, tokens idam.Tokens) (*CaseData, error) {
	body, err := json.Marshal(updateEventRequest{
		EventType:   event,
		Summary:     summary,
		Description: description,
		Data:        caseData,
	})
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to encode case update")
	}

	endpoint := fmt.Sprintf("%s/jurisdictions/%s/case-types/%s/cases/%s/events",
		c.baseURL, c.jurisdiction, c.caseType, caseID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to build case update request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", tokens.UserToken)
	req.Header.Set("ServiceAuthorization", tokens.ServiceToken)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "case update call failed")
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, dErrors.Newf(dErrors.CodeUnavailable,
			"case update for case %s rejected with status %d", caseID, resp.StatusCode)
	}

	var decoded updateEventResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to decode case update response")
	}
	c.logger.Info("case updated", "case_id", caseID, "event", event)
	return decoded.Data, nil
}
