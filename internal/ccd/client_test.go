package ccd

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hmcts/sscs-dwp/internal/idam"
	"github.com/hmcts/sscs-dwp/internal/platform/config"
	dErrors "github.com/hmcts/sscs-dwp/pkg/domain-errors"
)

func TestHTTPClientUpdateCase(t *testing.T) {
	ctx := context.Background()
	tokens := idam.Tokens{UserToken: "Bearer user", ServiceToken: "service"}
	caseData := &CaseData{CaseID: "1234567890123456"}

	t.Run("posts the event and returns the updated record", func(t *testing.T) {
		var got updateEventRequest
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/jurisdictions/SSCS/case-types/Benefit/cases/1234567890123456/events", r.URL.Path)
			assert.Equal(t, "Bearer user", r.Header.Get("Authorization"))
			assert.Equal(t, "service", r.Header.Get("ServiceAuthorization"))
			require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
			_ = json.NewEncoder(w).Encode(updateEventResponse{
				ID:   "1234567890123456",
				Data: &CaseData{CaseID: "1234567890123456", ProcessingState: "persisted"},
			})
		}))
		defer server.Close()

		client := NewHTTPClient(config.CoreCaseData{URL: server.URL, Jurisdiction: "SSCS", CaseType: "Benefit"}, slog.Default())

		updated, err := client.UpdateCase(ctx, caseData, "1234567890123456", EventCaseUpdated, "Update case data", "flags", tokens)

		require.NoError(t, err)
		assert.Equal(t, EventCaseUpdated, got.EventType)
		assert.Equal(t, "Update case data", got.Summary)
		assert.Equal(t, ProcessingState("persisted"), updated.ProcessingState)
	})

	t.Run("non-2xx responses are unavailability errors", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusConflict)
		}))
		defer server.Close()

		client := NewHTTPClient(config.CoreCaseData{URL: server.URL, Jurisdiction: "SSCS", CaseType: "Benefit"}, slog.Default())

		_, err := client.UpdateCase(ctx, caseData, "1234567890123456", EventCaseUpdated, "s", "d", tokens)

		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeUnavailable))
	})
}
