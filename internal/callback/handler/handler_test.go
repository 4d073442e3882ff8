package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hmcts/sscs-dwp/internal/callback"
	"github.com/hmcts/sscs-dwp/internal/ccd"
	dErrors "github.com/hmcts/sscs-dwp/pkg/domain-errors"
)

type markingHandler struct {
	claim bool
	err   error
}

func (h *markingHandler) CanHandle(callbackType callback.Type, cb *callback.Callback) bool {
	return h.claim
}

func (h *markingHandler) Handle(ctx context.Context, callbackType callback.Type, cb *callback.Callback) error {
	cb.CaseDetails.CaseData.ProcessingState = "handled"
	return h.err
}

func newRouter(h *markingHandler) chi.Router {
	dispatcher := callback.NewDispatcher(slog.Default(), h)
	router := chi.NewRouter()
	New(dispatcher, slog.Default()).Register(router)
	return router
}

const callbackBody = `{
  "event_id": "issueFurtherEvidence",
  "case_details": {
    "id": 1234567890123456,
    "state": "withDwp",
    "case_data": {"ccdCaseId": "1234567890123456"}
  }
}`

func TestCallbackEndpoint(t *testing.T) {
	t.Run("dispatches and echoes the mutated case data", func(t *testing.T) {
		router := newRouter(&markingHandler{claim: true})
		req := httptest.NewRequest(http.MethodPost, "/callback/submitted", strings.NewReader(callbackBody))
		rec := httptest.NewRecorder()

		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		var body struct {
			Data   ccd.CaseData `json:"data"`
			Errors []string     `json:"errors"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, ccd.ProcessingState("handled"), body.Data.ProcessingState)
		assert.Empty(t, body.Errors)
	})

	t.Run("rejects malformed payloads", func(t *testing.T) {
		router := newRouter(&markingHandler{claim: true})
		req := httptest.NewRequest(http.MethodPost, "/callback/submitted", strings.NewReader("{not json"))
		rec := httptest.NewRecorder()

		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("maps downstream unavailability to a server error", func(t *testing.T) {
		router := newRouter(&markingHandler{claim: true, err: dErrors.New(dErrors.CodeUnavailable, "print provider down")})
		req := httptest.NewRequest(http.MethodPost, "/callback/submitted", strings.NewReader(callbackBody))
		rec := httptest.NewRecorder()

		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusInternalServerError, rec.Code)
		var body struct {
			Errors []string `json:"errors"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		require.Len(t, body.Errors, 1)
		assert.Contains(t, body.Errors[0], "print provider down")
	})

	t.Run("maps validation failures to unprocessable entity", func(t *testing.T) {
		router := newRouter(&markingHandler{claim: true, err: dErrors.New(dErrors.CodeValidation, "bad document")})
		req := httptest.NewRequest(http.MethodPost, "/callback/submitted", strings.NewReader(callbackBody))
		rec := httptest.NewRecorder()

		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})

	t.Run("unclaimed callbacks still succeed", func(t *testing.T) {
		router := newRouter(&markingHandler{claim: false})
		req := httptest.NewRequest(http.MethodPost, "/callback/about-to-submit", strings.NewReader(callbackBody))
		rec := httptest.NewRecorder()

		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})
}
